package transcriber

import (
	"context"
	"sync"
)

// Fake returns canned results for tests and the headless test mode.
type Fake struct {
	mu    sync.Mutex
	Text  string
	Err   error
	calls []string
}

func NewFake(text string) *Fake {
	return &Fake{Text: text}
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) Warm() {}

func (f *Fake) Transcribe(_ context.Context, path string) (Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, path)
	f.mu.Unlock()
	if f.Err != nil {
		return Result{}, f.Err
	}
	return Result{Text: f.Text, Metrics: &NetworkMetrics{}}, nil
}

// Calls returns the paths Transcribe was invoked with.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
