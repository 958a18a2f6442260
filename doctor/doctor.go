// Package doctor runs interactive diagnostics for the pieces that tend to
// break on a fresh machine: the recorder binary, the API key, the global
// hotkey, the clipboard, and a full record-and-transcribe round trip.
package doctor

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"murmur/capture"
	"murmur/clipboard"
	"murmur/config"
	"murmur/hotkey"
	"murmur/transcriber"
)

// Run executes the checks in order and returns an exit code (0=all pass,
// 1=any fail). Later checks are skipped once one fails since they depend
// on the earlier ones.
func Run(cfg *config.Config) int {
	resetTerminal()
	setupInterruptHandler()

	fmt.Println("murmur doctor - interactive system diagnostics")
	fmt.Println("==============================================")

	allPass := true

	if !checkRecorderBinary() {
		allPass = false
	}
	if allPass && !checkAPIKey(cfg) {
		allPass = false
	}
	if allPass && !checkHotkey() {
		allPass = false
	}
	if allPass && !checkClipboard() {
		allPass = false
	}
	if allPass && !checkRecordAndTranscribe(cfg) {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkRecorderBinary() bool {
	fmt.Println()
	fmt.Println("[1/5] Recorder binary")

	if err := capture.CheckCommand(); err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		fmt.Println("  Fix with: install pulseaudio-utils (provides parecord)")
		return false
	}
	fmt.Println("  PASS: parecord found on PATH")
	return true
}

func checkAPIKey(cfg *config.Config) bool {
	fmt.Println()
	fmt.Println("[2/5] API key")

	if err := cfg.Validate(); err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	fmt.Printf("  PASS: key configured (models: %s, %s)\n", cfg.TranscribeModel, cfg.CleanupModel)
	return true
}

func checkHotkey() bool {
	fmt.Println()
	fmt.Println("[3/5] Hotkey detection")

	msg, err := hotkey.Diagnose()
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	fmt.Printf("  %s\n", msg)
	fmt.Println("Press the toggle hotkey (Super+H)...")

	hk := hotkey.New()
	if err := hk.Register(); err != nil {
		fmt.Printf("  FAIL: could not register hotkey: %v\n", err)
		return false
	}
	defer hk.Unregister()

	select {
	case <-hk.Toggled():
		fmt.Println("  PASS: hotkey detected")
		// Keyboard grabbing can leave the terminal in raw mode.
		resetTerminal()
		return true
	case <-time.After(10 * time.Second):
		fmt.Println("  FAIL: timeout waiting for hotkey")
		return false
	}
}

func checkClipboard() bool {
	fmt.Println()
	fmt.Println("[4/5] Clipboard round trip")

	if !clipboard.Available() {
		fmt.Println("  FAIL: no clipboard backend (install xclip, xsel, or wl-clipboard)")
		return false
	}

	testStr := fmt.Sprintf("murmur-doctor-%d", time.Now().UnixNano())

	type cbResult struct {
		readback string
		err      error
		phase    string
	}
	ch := make(chan cbResult, 1)
	go func() {
		if err := clipboard.Copy(testStr); err != nil {
			ch <- cbResult{err: err, phase: "write"}
			return
		}
		got, err := clipboard.Read()
		if err != nil {
			ch <- cbResult{err: err, phase: "read"}
			return
		}
		ch <- cbResult{readback: got}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			fmt.Printf("  FAIL: clipboard %s failed: %v\n", res.phase, res.err)
			return false
		}
		if res.readback != testStr {
			fmt.Printf("  FAIL: clipboard mismatch: wrote %q, got %q\n", testStr, res.readback)
			return false
		}
		fmt.Println("  PASS: clipboard write/read verified")
		return true
	case <-time.After(3 * time.Second):
		fmt.Println("  FAIL: clipboard timed out (compositor not accessible?)")
		return false
	}
}

func checkRecordAndTranscribe(cfg *config.Config) bool {
	fmt.Println()
	fmt.Println("[5/5] Microphone and transcription")

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Press Enter, then say a short sentence; press Enter again to stop: ")
	reader.ReadString('\n')

	rec := capture.New()
	if err := rec.Start(); err != nil {
		fmt.Printf("  FAIL: cannot start recording: %v\n", err)
		return false
	}

	fmt.Print("  Recording")
	done := make(chan struct{})
	ticker := time.NewTicker(500 * time.Millisecond)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fmt.Print(".")
			}
		}
	}()

	reader.ReadString('\n')
	close(done)

	path := rec.Stop()
	fmt.Println(" done")
	if path == "" {
		fmt.Println("  FAIL: no audio captured (microphone muted or wrong default source?)")
		return false
	}
	defer os.Remove(path)

	if info, err := os.Stat(path); err == nil {
		fmt.Printf("  Recorded %.1f KB, transcribing...\n", float64(info.Size())/1024)
	}

	groq := transcriber.NewGroq(cfg.GroqAPIKey, cfg.TranscribeModel)
	res, err := groq.Transcribe(context.Background(), path)
	if err != nil {
		fmt.Printf("  FAIL: transcription error: %v\n", err)
		return false
	}

	text := strings.TrimSpace(res.Text)
	if text == "" {
		text = "(no speech detected)"
	}
	fmt.Printf("\n  Transcribed text: %s\n\n", text)

	confirmReader := bufio.NewReader(os.Stdin)
	fmt.Print("Is this correct? [y/n]: ")
	confirm, _ := confirmReader.ReadString('\n')
	confirm = strings.TrimSpace(strings.ToLower(confirm))

	if confirm == "y" || confirm == "yes" {
		fmt.Println("  PASS: transcription verified by user")
		return true
	}
	fmt.Println("  FAIL: transcription not confirmed")
	return false
}
