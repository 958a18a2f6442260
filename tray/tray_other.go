//go:build !darwin

package tray

import "github.com/energye/systray"

// Init starts the tray loop on its own goroutine and returns the quit
// channel. On Linux the icon appears via the StatusNotifier D-Bus
// interface; desktops without a tray host just never show it.
func Init() <-chan struct{} {
	go systray.Run(onReady, onExit)
	return quitCh
}
