// Package controller owns the recording state machine: it is the single
// source of truth for whether a recording or transcription is in flight.
package controller

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"murmur/cleanup"
	"murmur/log"
	"murmur/notify"
	"murmur/transcriber"
)

type State int

const (
	Idle State = iota
	Recording
	Transcribing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Transcribing:
		return "transcribing"
	}
	return "unknown"
}

// Recorder is the slice of capture.Recorder the controller needs.
type Recorder interface {
	Start() error
	Stop() string
}

type Controller struct {
	mu        sync.Mutex
	state     State
	cleaning  bool
	startedAt time.Time

	rec    Recorder
	stt    transcriber.Transcriber
	llm    cleanup.Cleaner
	events *notify.Channel
}

func New(rec Recorder, stt transcriber.Transcriber, llm cleanup.Cleaner, events *notify.Channel) *Controller {
	return &Controller{
		rec:    rec,
		stt:    stt,
		llm:    llm,
		events: events,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Toggle starts a recording from Idle or finishes one from Recording. A
// toggle while a transcription is in flight is ignored, so only one
// recording/transcription cycle ever runs at a time.
func (c *Controller) Toggle() {
	c.mu.Lock()
	switch c.state {
	case Transcribing:
		c.mu.Unlock()
		log.Info("toggle_ignored_transcribing")
		return

	case Idle:
		if err := c.rec.Start(); err != nil {
			c.mu.Unlock()
			log.Errorf("capture start error: %v", err)
			c.events.Publish(notify.Error{Message: "Failed to start recording: " + err.Error()})
			return
		}
		c.state = Recording
		c.startedAt = time.Now()
		c.mu.Unlock()
		log.Info("recording_start")
		go c.stt.Warm()
		c.events.Publish(notify.RecordingStarted{})

	case Recording:
		c.state = Transcribing
		started := c.startedAt
		c.mu.Unlock()
		log.Info("recording_stop")
		go c.finishRecording(started)
	}
}

func (c *Controller) finishRecording(started time.Time) {
	defer func() {
		c.mu.Lock()
		c.state = Idle
		c.startedAt = time.Time{}
		c.mu.Unlock()
	}()

	path := c.rec.Stop()
	recordDur := time.Since(started)
	c.events.Publish(notify.RecordingStopped{Path: path})
	if path == "" {
		log.Info("no_audio")
		c.events.Publish(notify.Status{Message: "No audio captured"})
		return
	}

	c.events.Publish(notify.Status{Message: "Transcribing..."})
	res, err := c.stt.Transcribe(context.Background(), path)
	os.Remove(path)
	if err != nil {
		log.Errorf("transcription error: %v", err)
		c.events.Publish(notify.Error{Message: "Transcription failed: " + err.Error()})
		return
	}

	log.Transcription(res, c.stt.Name(), recordDur)
	c.events.Publish(notify.Transcribed{
		Text:      res.Text,
		Duration:  recordDur,
		RateLimit: res.RateLimit,
	})
}

// CleaningUp reports whether a cleanup call is in flight.
func (c *Controller) CleaningUp() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cleaning
}

// CleanUp rewrites text via the cleanup endpoint on a background goroutine.
// No-op when text is empty or a cleanup is already running. Independent of
// the recording state machine.
func (c *Controller) CleanUp(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	c.mu.Lock()
	if c.cleaning {
		c.mu.Unlock()
		return
	}
	c.cleaning = true
	c.mu.Unlock()

	go func() {
		defer func() {
			c.mu.Lock()
			c.cleaning = false
			c.mu.Unlock()
		}()
		c.events.Publish(notify.Status{Message: "Cleaning up..."})
		cleaned, err := c.llm.Clean(context.Background(), text)
		if err != nil {
			log.Errorf("cleanup error: %v", err)
			c.events.Publish(notify.Error{Message: "Cleanup failed: " + err.Error()})
			return
		}
		log.Info("cleanup_done")
		c.events.Publish(notify.Cleaned{Text: cleaned})
	}()
}
