//go:build darwin || windows

package hotkey

import (
	"golang.design/x/hotkey"
)

// xHotkey relies on OS-level hotkey registration; the OS handles the chord
// matching and edge-triggering that the Linux path does with a Tracker.
type xHotkey struct {
	hk      *hotkey.Hotkey
	toggled chan struct{}
}

func New() Hotkey {
	return &xHotkey{
		hk:      hotkey.New(toggleModifiers, hotkey.KeyH),
		toggled: make(chan struct{}, 1),
	}
}

// NewWithChord ignores the chord; registration is fixed per platform.
func NewWithChord(_ Chord) Hotkey {
	return New()
}

func (h *xHotkey) Register() error {
	if err := h.hk.Register(); err != nil {
		return err
	}
	go func() {
		for {
			<-h.hk.Keydown()
			select {
			case h.toggled <- struct{}{}:
			default:
			}
		}
	}()
	return nil
}

func (h *xHotkey) Unregister() {
	h.hk.Unregister()
}

func (h *xHotkey) Toggled() <-chan struct{} {
	return h.toggled
}
