// ABOUTME: HTTP transport that tags requests with correlation IDs
// ABOUTME: Logs method, path, status and latency and feeds the metrics recorder

package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// loggingTransport wraps another RoundTripper
type loggingTransport struct {
	next    http.RoundTripper
	metrics *Metrics
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	requestID := req.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
		// RoundTrippers must not modify the caller's request
		req = req.Clone(req.Context())
		req.Header.Set("X-Request-ID", requestID)
	}

	slog.Debug("Request started",
		"request_id", requestID,
		"method", req.Method,
		"path", req.URL.Path,
	)

	resp, err := t.next.RoundTrip(req)
	latency := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if t.metrics != nil {
		t.metrics.Record(status, latency)
	}

	if err != nil {
		slog.Debug("Request failed",
			"request_id", requestID,
			"method", req.Method,
			"path", req.URL.Path,
			"error", err,
			"latency_ms", latency.Milliseconds(),
		)
		return resp, err
	}

	slog.Debug("Request completed",
		"request_id", requestID,
		"method", req.Method,
		"path", req.URL.Path,
		"status", status,
		"latency_ms", latency.Milliseconds(),
	)
	return resp, nil
}
