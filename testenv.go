package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"murmur/beep"
	"murmur/capture"
	"murmur/cleanup"
	"murmur/config"
	"murmur/controller"
	"murmur/log"
	"murmur/notify"
	"murmur/transcriber"
)

// runTestMode drives a full session from stdin without a hotkey, a
// microphone, or a terminal UI. The recorder is replaced by a command that
// copies the given WAV file, so TOGGLE pairs exercise the real stop,
// upload, and transcription path. Events are echoed to stdout, one per
// line, for the harness to assert on.
//
// Commands: TOGGLE, CLEANUP <text>, SLEEP <ms>, QUIT.
func runTestMode(cfg *config.Config, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: murmur -test <wav-file>")
		os.Exit(1)
	}
	wavPath := args[0]
	if _, err := os.Stat(wavPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	beep.Disable()

	events := notify.NewChannel()
	rec := capture.NewWithCommand(os.TempDir(), func(outPath string) []string {
		return []string{"sh", "-c", fmt.Sprintf("cp %q \"$0\"; sleep 600", wavPath), outPath}
	})
	stt := transcriber.NewGroq(cfg.GroqAPIKey, cfg.TranscribeModel)
	llm := cleanup.NewGroq(cfg.GroqAPIKey, cfg.CleanupModel)
	ctrl := controller.New(rec, stt, llm, events)

	log.SessionStart(stt.Name())

	// Stdin driver. Runs commands in order; SLEEP gives the background
	// goroutines time to finish between steps.
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			cmd := strings.TrimSpace(scanner.Text())
			switch {
			case cmd == "TOGGLE":
				ctrl.Toggle()
			case strings.HasPrefix(cmd, "CLEANUP "):
				ctrl.CleanUp(strings.TrimPrefix(cmd, "CLEANUP "))
			case strings.HasPrefix(cmd, "SLEEP "):
				if ms, err := strconv.Atoi(strings.TrimPrefix(cmd, "SLEEP ")); err == nil {
					time.Sleep(time.Duration(ms) * time.Millisecond)
				}
			case cmd == "QUIT":
				gracefulShutdown()
			}
		}
		gracefulShutdown()
	}()

	for ev := range events.Events() {
		switch ev := ev.(type) {
		case notify.RecordingStarted:
			fmt.Println("RECORDING_STARTED")
		case notify.RecordingStopped:
			fmt.Printf("RECORDING_STOPPED %q\n", ev.Path)
		case notify.Transcribed:
			transcriptMu.Lock()
			transcriptCount++
			lastText = ev.Text
			transcriptMu.Unlock()
			log.TranscriptionText(ev.Text)
			fmt.Printf("TRANSCRIBED %q\n", ev.Text)
		case notify.Cleaned:
			fmt.Printf("CLEANED %q\n", ev.Text)
		case notify.Status:
			fmt.Printf("STATUS %q\n", ev.Message)
		case notify.Error:
			fmt.Printf("ERROR %q\n", ev.Message)
		}
	}
}
