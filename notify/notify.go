// Package notify carries events from background goroutines to the single
// dispatch loop. Workers never touch presentation state directly; they
// publish here and the loop applies the result.
package notify

import "time"

// Event is one of the fixed set of notification types below.
type Event interface {
	event()
}

type RecordingStarted struct{}

// RecordingStopped reports the captured file path. Path is empty when the
// recording was too short to contain audio.
type RecordingStopped struct{ Path string }

// Transcribed carries the final text plus the details the display layer
// shows next to it.
type Transcribed struct {
	Text      string
	Duration  time.Duration // length of the recording
	RateLimit string        // "remaining/limit", "?" parts when absent
}

type Cleaned struct{ Text string }

type Error struct{ Message string }

type Status struct{ Message string }

type HotkeyToggled struct{}

func (RecordingStarted) event() {}
func (RecordingStopped) event() {}
func (Transcribed) event()      {}
func (Cleaned) event()          {}
func (Error) event()            {}
func (Status) event()           {}
func (HotkeyToggled) event()    {}

// Channel is a many-publisher, single-consumer event queue. Publishes from
// one goroutine are delivered in publication order.
type Channel struct {
	ch chan Event
}

const defaultBuffer = 64

func NewChannel() *Channel {
	return &Channel{ch: make(chan Event, defaultBuffer)}
}

// Publish enqueues ev. It blocks if the consumer has fallen more than the
// buffer size behind, which keeps ordering intact instead of dropping.
func (c *Channel) Publish(ev Event) {
	c.ch <- ev
}

// Events returns the consumer side. Exactly one goroutine may range over it.
func (c *Channel) Events() <-chan Event {
	return c.ch
}
