package controller

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"murmur/cleanup"
	"murmur/notify"
	"murmur/transcriber"
)

// fakeRecorder writes a small WAV-sized file on Stop so the controller has
// something to hand to the transcriber and to clean up.
type fakeRecorder struct {
	t        *testing.T
	startErr error
	noAudio  bool
	started  bool
	path     string
	stopGate chan struct{}
}

func (r *fakeRecorder) Start() error {
	if r.startErr != nil {
		return r.startErr
	}
	r.started = true
	return nil
}

func (r *fakeRecorder) Stop() string {
	if r.stopGate != nil {
		<-r.stopGate
	}
	if !r.started {
		return ""
	}
	r.started = false
	if r.noAudio {
		return ""
	}
	r.path = filepath.Join(r.t.TempDir(), "voice_test.wav")
	if err := os.WriteFile(r.path, make([]byte, 1024), 0o644); err != nil {
		r.t.Fatal(err)
	}
	return r.path
}

func nextEvent(t *testing.T, ch <-chan notify.Event) notify.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func waitForState(t *testing.T, c *Controller, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.State() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("controller stuck in %v, want %v", c.State(), want)
}

func TestToggleRecordTranscribe(t *testing.T) {
	rec := &fakeRecorder{t: t}
	stt := transcriber.NewFake("hello world")
	events := notify.NewChannel()
	c := New(rec, stt, cleanup.NewFake(""), events)

	c.Toggle()
	if c.State() != Recording {
		t.Fatalf("state = %v, want Recording", c.State())
	}
	if _, ok := nextEvent(t, events.Events()).(notify.RecordingStarted); !ok {
		t.Fatal("expected RecordingStarted first")
	}

	c.Toggle()
	if _, ok := nextEvent(t, events.Events()).(notify.RecordingStopped); !ok {
		t.Fatal("expected RecordingStopped")
	}
	if st, ok := nextEvent(t, events.Events()).(notify.Status); !ok || st.Message != "Transcribing..." {
		t.Fatalf("expected Transcribing status, got %#v", st)
	}
	tr, ok := nextEvent(t, events.Events()).(notify.Transcribed)
	if !ok {
		t.Fatal("expected Transcribed")
	}
	if tr.Text != "hello world" {
		t.Errorf("text = %q, want %q", tr.Text, "hello world")
	}

	waitForState(t, c, Idle)
	if len(stt.Calls()) != 1 {
		t.Errorf("transcribe calls = %d, want 1", len(stt.Calls()))
	}
	if _, err := os.Stat(rec.path); !os.IsNotExist(err) {
		t.Error("captured file should be removed after transcription")
	}
}

func TestToggleIgnoredWhileTranscribing(t *testing.T) {
	rec := &fakeRecorder{t: t, stopGate: make(chan struct{})}
	stt := transcriber.NewFake("first take")
	events := notify.NewChannel()
	c := New(rec, stt, cleanup.NewFake(""), events)

	c.Toggle() // idle -> recording
	c.Toggle() // recording -> transcribing

	// The finish goroutine is parked in Stop, so the state is pinned to
	// Transcribing. A toggle here must not start a second recording.
	c.Toggle()
	if c.State() != Transcribing {
		t.Fatalf("state = %v, want Transcribing", c.State())
	}
	close(rec.stopGate)

	waitForState(t, c, Idle)
	if got := len(stt.Calls()); got != 1 {
		t.Errorf("transcribe calls = %d, want 1", got)
	}
}

func TestNoAudioSkipsTranscription(t *testing.T) {
	rec := &fakeRecorder{t: t, noAudio: true}
	stt := transcriber.NewFake("should not appear")
	events := notify.NewChannel()
	c := New(rec, stt, cleanup.NewFake(""), events)

	c.Toggle()
	nextEvent(t, events.Events()) // RecordingStarted
	c.Toggle()

	stopped, ok := nextEvent(t, events.Events()).(notify.RecordingStopped)
	if !ok || stopped.Path != "" {
		t.Fatalf("expected empty RecordingStopped, got %#v", stopped)
	}
	st, ok := nextEvent(t, events.Events()).(notify.Status)
	if !ok || st.Message != "No audio captured" {
		t.Fatalf("expected no-audio status, got %#v", st)
	}

	waitForState(t, c, Idle)
	if len(stt.Calls()) != 0 {
		t.Error("transcriber called despite empty capture")
	}
}

func TestStartFailureStaysIdle(t *testing.T) {
	rec := &fakeRecorder{t: t, startErr: errors.New("parecord missing")}
	events := notify.NewChannel()
	c := New(rec, transcriber.NewFake(""), cleanup.NewFake(""), events)

	c.Toggle()
	if c.State() != Idle {
		t.Fatalf("state = %v, want Idle after start failure", c.State())
	}
	ev, ok := nextEvent(t, events.Events()).(notify.Error)
	if !ok {
		t.Fatal("expected Error event")
	}
	if ev.Message == "" {
		t.Error("error event should carry a message")
	}
}

func TestTranscribeErrorPublished(t *testing.T) {
	rec := &fakeRecorder{t: t}
	stt := transcriber.NewFake("")
	stt.Err = errors.New("api down")
	events := notify.NewChannel()
	c := New(rec, stt, cleanup.NewFake(""), events)

	c.Toggle()
	nextEvent(t, events.Events()) // RecordingStarted
	c.Toggle()
	nextEvent(t, events.Events()) // RecordingStopped
	nextEvent(t, events.Events()) // Status Transcribing...

	ev, ok := nextEvent(t, events.Events()).(notify.Error)
	if !ok {
		t.Fatalf("expected Error event, got %#v", ev)
	}
	waitForState(t, c, Idle)
}

func TestCleanUp(t *testing.T) {
	llm := cleanup.NewFake("I think we should go.")
	events := notify.NewChannel()
	c := New(&fakeRecorder{t: t}, transcriber.NewFake(""), llm, events)

	c.CleanUp("um I think uh we should go")

	if st, ok := nextEvent(t, events.Events()).(notify.Status); !ok || st.Message != "Cleaning up..." {
		t.Fatalf("expected cleaning status, got %#v", st)
	}
	cl, ok := nextEvent(t, events.Events()).(notify.Cleaned)
	if !ok {
		t.Fatal("expected Cleaned event")
	}
	if cl.Text != "I think we should go." {
		t.Errorf("cleaned text = %q", cl.Text)
	}
	if got := llm.Calls(); len(got) != 1 || got[0] != "um I think uh we should go" {
		t.Errorf("clean calls = %v", got)
	}
}

func TestCleanUpEmptyTextNoop(t *testing.T) {
	llm := cleanup.NewFake("nope")
	events := notify.NewChannel()
	c := New(&fakeRecorder{t: t}, transcriber.NewFake(""), llm, events)

	c.CleanUp("   ")
	time.Sleep(50 * time.Millisecond)
	if len(llm.Calls()) != 0 {
		t.Error("cleanup called with blank text")
	}
	if c.CleaningUp() {
		t.Error("cleaning flag set for no-op")
	}
}

func TestCleanUpErrorPublished(t *testing.T) {
	llm := cleanup.NewFake("")
	llm.Err = errors.New("quota exceeded")
	events := notify.NewChannel()
	c := New(&fakeRecorder{t: t}, transcriber.NewFake(""), llm, events)

	c.CleanUp("some text")
	nextEvent(t, events.Events()) // Status Cleaning up...
	if _, ok := nextEvent(t, events.Events()).(notify.Error); !ok {
		t.Fatal("expected Error event")
	}
}
