// ABOUTME: Typed failures returned by the API client
// ABOUTME: Separates network, server, validation and reauthentication errors

package client

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

// ErrReauthRequired means the refresh token was rejected or missing; the
// session has been cleared and the user must log in again.
var ErrReauthRequired = errors.New("reauthentication required")

// ValidationError is raised before a request is sent
type ValidationError = models.ValidationError

// ErrorCode is a machine-readable classification of a server failure
type ErrorCode string

const (
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeRateLimit    ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeUnavailable  ErrorCode = "SERVICE_UNAVAILABLE"
	CodeUnknown      ErrorCode = "UNKNOWN"
	CodeNetwork      ErrorCode = "NETWORK_ERROR"
	CodeTimeout      ErrorCode = "TIMEOUT"
)

// codeForStatus maps an HTTP status onto an ErrorCode
func codeForStatus(status int) ErrorCode {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return CodeInvalidInput
	case status == http.StatusUnauthorized:
		return CodeUnauthorized
	case status == http.StatusForbidden:
		return CodeForbidden
	case status == http.StatusNotFound:
		return CodeNotFound
	case status == http.StatusConflict:
		return CodeConflict
	case status == http.StatusTooManyRequests:
		return CodeRateLimit
	case status == http.StatusServiceUnavailable, status == http.StatusBadGateway, status == http.StatusGatewayTimeout:
		return CodeUnavailable
	case status >= 500:
		return CodeInternal
	default:
		return CodeUnknown
	}
}

// APIError is a non-2xx response from the backend
type APIError struct {
	Status  int
	Code    ErrorCode
	Message string
	// ServerCode is the backend's own code field, e.g. "token_not_valid"
	ServerCode string
	// Fields holds per-field messages from validation responses
	Fields map[string][]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend error: %s", e.Message)
}

// NetworkError is a transport failure; no response was received
type NetworkError struct {
	Code ErrorCode
	Msg  string
	Err  error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err is an APIError with the given status
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Message renders err as a one-line message for display next to a form or list
func Message(err error) string {
	if err == nil {
		return ""
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	if errors.Is(err, ErrReauthRequired) {
		return "Your session has expired. Please log in again."
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Msg
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if len(apiErr.Fields) > 0 {
			msg = joinFieldErrors(apiErr.Fields, msg)
		}
		switch apiErr.Code {
		case CodeForbidden:
			if msg == "" {
				msg = "You do not have permission to do that."
			}
		case CodeNotFound:
			if msg == "" {
				msg = "Not found."
			}
		}
		if msg == "" {
			msg = fmt.Sprintf("Request failed with status %d.", apiErr.Status)
		}
		return msg
	}

	return err.Error()
}

func joinFieldErrors(fields map[string][]string, lead string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	if lead != "" {
		parts = append(parts, lead)
	}
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(fields[k], " ")))
	}
	return strings.Join(parts, "; ")
}
