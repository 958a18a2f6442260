//go:build !linux

package main

import (
	"runtime"

	"golang.design/x/hotkey/mainthread"
)

func init() {
	runtime.LockOSThread()
}

// The OS-level hotkey registration needs the process main thread, so run()
// becomes a mainthread callback here.
func main() {
	mainthread.Init(run)
}
