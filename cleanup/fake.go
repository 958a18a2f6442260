package cleanup

import (
	"context"
	"sync"
)

// Fake returns canned cleanups for tests and the headless test mode.
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

func (f *Fake) Clean(_ context.Context, text string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	return f.Text, nil
}

// Calls returns the texts Clean was invoked with.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
