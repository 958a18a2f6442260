package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"murmur/beep"
	"murmur/capture"
	"murmur/cleanup"
	"murmur/clipboard"
	"murmur/config"
	"murmur/controller"
	"murmur/doctor"
	"murmur/hotkey"
	"murmur/log"
	"murmur/notify"
	"murmur/shutdown"
	"murmur/transcriber"
	"murmur/tray"
)

var version = "dev"

var (
	transcriptMu    sync.Mutex
	transcriptCount int
	lastText        string
)

var shutdownOnce sync.Once

func gracefulShutdown() {
	shutdownOnce.Do(func() {
		transcriptMu.Lock()
		n := transcriptCount
		transcriptMu.Unlock()
		if n > 0 {
			log.SessionEnd(n)
		}
		log.Close()
		tray.Quit()
		tuiMu.Lock()
		p := tuiProgram
		tuiMu.Unlock()
		if p != nil {
			p.Quit()
		}
		os.Exit(0)
	})
}

func setLastText(text string) {
	transcriptMu.Lock()
	lastText = text
	transcriptMu.Unlock()
}

func getLastText() string {
	transcriptMu.Lock()
	defer transcriptMu.Unlock()
	return lastText
}

func run() {
	versionFlag := flag.Bool("version", false, "Print version and exit")
	doctorFlag := flag.Bool("doctor", false, "Run system diagnostics and exit")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	tuiFlag := flag.Bool("tui", true, "Run with terminal UI")
	testFlag := flag.Bool("test", false, "Test mode (headless, stdin-driven)")
	nobeepFlag := flag.Bool("nobeep", false, "Disable audio cues")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("murmur %s\n", version)
		os.Exit(0)
	}

	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)
	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	cfg := config.Load()

	if *doctorFlag {
		os.Exit(doctor.Run(cfg))
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *nobeepFlag || !cfg.Beep {
		beep.Disable()
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}

	if *testFlag {
		runTestMode(cfg, flag.Args())
		return
	}

	if err := capture.CheckCommand(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Fix with: install pulseaudio-utils (provides parecord)")
		os.Exit(1)
	}

	events := notify.NewChannel()
	rec := capture.New()
	stt := transcriber.NewGroq(cfg.GroqAPIKey, cfg.TranscribeModel)
	llm := cleanup.NewGroq(cfg.GroqAPIKey, cfg.CleanupModel)
	ctrl := controller.New(rec, stt, llm, events)

	log.SessionStart(stt.Name())

	// All toggle sources funnel through the events channel so the dispatch
	// loop below is the only place state transitions start from.
	requestToggle := func() { events.Publish(notify.HotkeyToggled{}) }

	// Start TUI
	if *tuiFlag {
		tuiMu.Lock()
		tuiProgram = NewTUIProgram(tuiActions{
			Toggle: requestToggle,
			Copy: func(text string) {
				go func() {
					if copyTranscript(text) {
						tuiSend(CopiedMsg{})
					}
				}()
			},
			Cleanup: func(text string) { ctrl.CleanUp(text) },
		})
		tuiMu.Unlock()

		go func() {
			if _, err := tuiProgram.Run(); err != nil {
				log.Errorf("TUI error: %v", err)
				os.Exit(1)
			}
			gracefulShutdown()
		}()
	}

	tray.OnToggle(requestToggle)
	tray.OnCopyLast(func() {
		if text := getLastText(); text != "" {
			copyTranscript(text)
		}
	})
	tray.OnCleanup(func() {
		if text := getLastText(); text != "" {
			ctrl.CleanUp(text)
		}
	})
	trayQuit := tray.Init()

	sigChan := make(chan os.Signal, 1)
	shutdown.Notify(sigChan)
	go func() {
		select {
		case <-sigChan:
		case <-trayQuit:
		}
		gracefulShutdown()
	}()

	hk := hotkey.New()
	if err := hk.Register(); err != nil {
		log.Errorf("hotkey register error: %v", err)
		fmt.Fprintf(os.Stderr, "Error registering hotkey: %v\n", err)
		os.Exit(1)
	}
	defer hk.Unregister()

	go func() {
		for range hk.Toggled() {
			requestToggle()
		}
	}()

	dispatch(ctrl, events)
}

// dispatch is the single consumer of the event channel. It applies each
// event to the tray, the TUI, and the clipboard in publication order.
func dispatch(ctrl *controller.Controller, events *notify.Channel) {
	for ev := range events.Events() {
		switch ev := ev.(type) {
		case notify.HotkeyToggled:
			log.Info("toggle_requested")
			ctrl.Toggle()

		case notify.RecordingStarted:
			beep.RecordStart()
			tray.SetRecording(true)
			tuiSend(RecordingStartMsg{})

		case notify.RecordingStopped:
			beep.RecordStop()
			tray.SetRecording(false)
			tuiSend(RecordingStopMsg{})

		case notify.Transcribed:
			setLastText(ev.Text)
			transcriptMu.Lock()
			transcriptCount++
			transcriptMu.Unlock()
			log.TranscriptionText(ev.Text)
			copied := copyTranscript(ev.Text)
			tray.SetLastTranscript(ev.Duration)
			tuiSend(TranscriptMsg{Text: ev.Text, Copied: copied})
			if ev.RateLimit != "" {
				tuiSend(RateLimitMsg{Text: "requests: " + ev.RateLimit + " remaining"})
			}

		case notify.Cleaned:
			setLastText(ev.Text)
			copied := copyTranscript(ev.Text)
			tuiSend(TranscriptMsg{Text: ev.Text, Copied: copied, Cleaned: true})

		case notify.Status:
			tuiSend(StatusMsg{Text: ev.Message})

		case notify.Error:
			beep.Failure()
			tray.SetError(ev.Message)
			tuiSend(ErrorMsg{Text: ev.Message})
		}
	}
}

func copyTranscript(text string) bool {
	if err := clipboard.Copy(text); err != nil {
		log.Errorf("clipboard copy error: %v", err)
		return false
	}
	return true
}
