//go:build !windows

// Package shutdown registers the OS signals that end a session cleanly.
// SIGTERM does not exist on Windows, hence the split.
package shutdown

import (
	"os"
	"os/signal"
	"syscall"
)

func Notify(ch chan os.Signal) {
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
}
