// ABOUTME: Root command for the grocery CLI
// ABOUTME: Handles global flags, exit codes and wiring of session, cache and API client

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/cache"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/client"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/config"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/logger"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/session"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

// Exit codes shared by every command
const (
	exitOK      = 0
	exitFailure = 1 // a request or check failed
	exitUsage   = 2 // bad input or backend unreachable
	exitReauth  = 3 // no session, or the session expired
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "grocery",
	Short: "CLI for the Smart Grocery household food manager",
	Long: `grocery is a command-line and terminal UI client for the Smart Grocery backend.

Track what is in the fridge and freezer, share shopping lists with your
family, keep recipes and plan meals for the week.

Exit codes:
  0 - Success
  1 - Request or check failed
  2 - Invalid input or backend unreachable
  3 - Not logged in or session expired

Environment Variables:
  GROCERY_API_URL         Backend API URL (default: http://localhost:8000)
  GROCERY_STATE_DIR       Directory for the session file and debug log
  GROCERY_LOG_LEVEL       debug, info, warn, error (default: info)
  GROCERY_NEAR_EXPIRY_DAYS  Window for "expiring soon" (default: 3)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides GROCERY_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("GROCERY_API_URL"); envURL != "" {
		return envURL
	}
	return config.DefaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// env is everything a command needs to talk to the backend
type env struct {
	cfg     *config.Config
	store   *session.Store
	client  *client.Client
	cache   *cache.Cache
	metrics *client.Metrics
}

// newEnv loads configuration and wires the session store and client
// together. Logs go to stderr so stdout stays parseable.
func newEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.APIURL = GetAPIURL()

	logger.Init(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	store := session.New(session.NewFileStorage(cfg.SessionFile()))
	metrics := client.NewMetrics()
	c := client.New(cfg.APIURL,
		client.WithTokens(store),
		client.WithTimeout(cfg.HTTPTimeout),
		client.WithMetrics(metrics),
	)
	store.Attach(c)

	ch := cache.New(cfg.CacheTTL)
	store.OnClear(ch.Clear)

	return &env{cfg: cfg, store: store, client: c, cache: ch, metrics: metrics}, nil
}

// close releases background resources
func (e *env) close() {
	e.cache.Stop()
}

// requireSession returns the persisted session or writes a login hint
func (e *env) requireSession(w io.Writer) (session.State, bool) {
	state := e.store.Load()
	if !state.IsAuthenticated() {
		fmt.Fprintln(w, "Error: not logged in. Run `grocery login` first.")
		return state, false
	}
	return state, true
}

// fail prints err and maps it onto an exit code
func fail(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %s\n", client.Message(err))

	var verr *models.ValidationError
	var netErr *client.NetworkError
	switch {
	case errors.Is(err, client.ErrReauthRequired):
		fmt.Fprintln(w, "Session expired, run `grocery login`.")
		return exitReauth
	case errors.As(err, &verr), errors.As(err, &netErr):
		return exitUsage
	default:
		return exitFailure
	}
}

// setupFailed reports a configuration error
func setupFailed(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	return exitUsage
}

// runAndExit runs fn with a context cancelled on SIGINT/SIGTERM and exits
// with its code when non-zero
func runAndExit(fn func(ctx context.Context, w io.Writer) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := fn(ctx, os.Stdout)
	cancel()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
