// Package clipboard wraps the system clipboard. Transcripts are delivered
// here on copy, never typed into the focused window.
package clipboard

import cb "github.com/atotto/clipboard"

func Copy(text string) error {
	return cb.WriteAll(text)
}

func Read() (string, error) {
	return cb.ReadAll()
}

// Available reports whether a clipboard backend is usable. On Linux this
// means xclip, xsel, or a Wayland equivalent is installed.
func Available() bool {
	return !cb.Unsupported
}
