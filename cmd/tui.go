// ABOUTME: Interactive terminal UI command
// ABOUTME: Starts the full-screen app with logs redirected to the state directory

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/logger"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/tui/recentusers"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal UI",
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runTUI(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.Run = tuiCmd.Run
}

func runTUI(w io.Writer) int {
	e, err := newEnv()
	if err != nil {
		return setupFailed(w, err)
	}
	defer e.close()

	logFile, err := logger.InitFile(e.cfg.StateDir, e.cfg.LogLevel, e.cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(w, "Warning: debug log disabled: %v\n", err)
	} else {
		defer logFile.Close()
	}

	err = tui.Run(tui.Deps{
		Store:  e.store,
		Client: e.client,
		Cache:  e.cache,
		Config: e.cfg,
		Recent: recentusers.New(e.cfg.StateDir),
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitFailure
	}
	return exitOK
}
