// Package tray puts a status icon in the system tray with a small menu
// mirroring the hotkey actions. The icon doubles as the recording
// indicator.
package tray

import (
	"fmt"
	"sync"
	"time"

	"github.com/energye/systray"
)

const idleTooltip = "murmur – Super+H toggles recording"

var (
	quitCh    = make(chan struct{})
	closeOnce sync.Once

	toggleFn   func()
	copyLastFn func()
	cleanupFn  func()

	recording bool

	mRecord  *systray.MenuItem
	mCopy    *systray.MenuItem
	mCleanup *systray.MenuItem
)

// OnToggle registers the recording toggle callback. Must be called before
// Init so the menu has its handler when it first appears.
func OnToggle(fn func())   { toggleFn = fn }
func OnCopyLast(fn func()) { copyLastFn = fn }
func OnCleanup(fn func())  { cleanupFn = fn }

// SetRecording flips the icon and menu label between idle and recording.
func SetRecording(rec bool) {
	recording = rec
	if mRecord == nil {
		return
	}
	if rec {
		systray.SetIcon(iconRecHi)
		mRecord.SetTitle("Stop Recording")
	} else {
		systray.SetTemplateIcon(iconIdleHi, iconIdle)
		mRecord.SetTitle("Start Recording")
	}
}

// SetLastTranscript enables the copy and cleanup entries once a transcript
// exists and shows the recording length in the copy label.
func SetLastTranscript(dur time.Duration) {
	if mCopy != nil {
		mCopy.SetTitle(fmt.Sprintf("Copy Last Text (%.1fs)", dur.Seconds()))
		mCopy.Enable()
	}
	if mCleanup != nil {
		mCleanup.Enable()
	}
}

// SetError surfaces msg in the tooltip for a few seconds.
func SetError(msg string) {
	systray.SetTooltip("murmur – " + msg)
	go func() {
		time.Sleep(10 * time.Second)
		systray.SetTooltip(idleTooltip)
	}()
}

func Quit() {
	closeOnce.Do(func() { close(quitCh) })
}

func onReady() {
	systray.SetTemplateIcon(iconIdleHi, iconIdle)
	systray.SetTooltip(idleTooltip)

	mCopy = systray.AddMenuItem("Copy Last Text", "Copy the last transcript to the clipboard")
	mCopy.Disable()
	mCopy.Click(func() {
		if copyLastFn != nil {
			copyLastFn()
		}
	})

	mCleanup = systray.AddMenuItem("Clean Up Last Text", "Rewrite the last transcript as clear prose")
	mCleanup.Disable()
	mCleanup.Click(func() {
		if cleanupFn != nil {
			cleanupFn()
		}
	})

	systray.AddSeparator()

	mRecord = systray.AddMenuItem("Start Recording", "Start or stop recording")
	mRecord.Click(func() {
		if toggleFn != nil {
			toggleFn()
		}
	})

	systray.AddSeparator()

	mQuit := systray.AddMenuItem("Quit", "Quit murmur")
	mQuit.Click(Quit)
}

func onExit() {
	Quit()
}
