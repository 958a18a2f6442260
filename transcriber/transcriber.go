// Package transcriber uploads recorded audio to a speech-to-text API.
package transcriber

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type NetworkMetrics struct {
	DNS        time.Duration
	ConnWait   time.Duration
	TCP        time.Duration
	TLS        time.Duration
	ReqHeaders time.Duration
	ReqBody    time.Duration
	TTFB       time.Duration
	Download   time.Duration
	Total      time.Duration
	ConnReused bool
}

func (m *NetworkMetrics) Sum() time.Duration {
	return m.ConnWait + m.DNS + m.TCP + m.TLS + m.ReqHeaders + m.ReqBody + m.TTFB + m.Download
}

// APIError is returned for any non-2xx response from the remote endpoint.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Body)
}

type Result struct {
	Text      string
	Metrics   *NetworkMetrics
	RateLimit string // "remaining/limit" or empty
}

type Transcriber interface {
	Name() string
	// Transcribe uploads the audio file at path and returns the recognized
	// text. A response without a text field yields empty Text, not an error.
	// No retries; a failed call surfaces directly.
	Transcribe(ctx context.Context, path string) (Result, error)
	// Warm pre-establishes the TLS connection so the upload after a
	// recording stops does not pay the handshake.
	Warm()
}

func firstNonEmpty(h http.Header, keys ...string) string {
	for _, k := range keys {
		if v := h.Get(k); v != "" {
			return v
		}
	}
	return "?"
}
