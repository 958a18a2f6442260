// Package hotkey delivers global toggle events for the recording chord.
package hotkey

// Hotkey fires one toggle event each time the configured chord is pressed.
// Holding the chord does not repeat; it must be fully released and pressed
// again to fire another toggle.
type Hotkey interface {
	Register() error
	Unregister()
	Toggled() <-chan struct{}
}
