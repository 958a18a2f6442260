package hotkey

// Key is a keyboard key identifier using Linux evdev key codes. The codes
// double as the canonical identifiers on every platform since only the Linux
// listener deals in raw codes.
type Key uint16

const (
	KeyLeftCtrl   Key = 29
	KeyH          Key = 35
	KeyLeftShift  Key = 42
	KeyRightShift Key = 54
	KeyLeftAlt    Key = 56
	KeyRightCtrl  Key = 97
	KeyRightAlt   Key = 100
	KeyLeftMeta   Key = 125
	KeyRightMeta  Key = 126
)

// Normalize folds the left/right variants of modifier keys onto a single
// canonical code, so a chord matches regardless of which side is held.
func Normalize(k Key) Key {
	switch k {
	case KeyRightCtrl:
		return KeyLeftCtrl
	case KeyRightShift:
		return KeyLeftShift
	case KeyRightAlt:
		return KeyLeftAlt
	case KeyRightMeta:
		return KeyLeftMeta
	}
	return k
}

// Chord is the set of canonical keys that must all be held to toggle.
type Chord map[Key]struct{}

func NewChord(keys ...Key) Chord {
	c := make(Chord, len(keys))
	for _, k := range keys {
		c[Normalize(k)] = struct{}{}
	}
	return c
}

// DefaultChord is Super+H, matching the Cmd+H / Win+H registration on the
// other platforms.
func DefaultChord() Chord {
	return NewChord(KeyLeftMeta, KeyH)
}

// Tracker maintains the set of currently depressed keys and decides when the
// chord fires. Firing is edge-triggered: Press returns true only on the
// transition from not-satisfied to satisfied, and the tracker re-arms only
// once the chord is no longer fully held.
type Tracker struct {
	chord   Chord
	pressed map[Key]struct{} // raw key codes as reported by the listener
	fired   bool
}

func NewTracker(chord Chord) *Tracker {
	return &Tracker{
		chord:   chord,
		pressed: make(map[Key]struct{}),
	}
}

// Press records k as held and reports whether a toggle fires.
func (t *Tracker) Press(k Key) bool {
	t.pressed[k] = struct{}{}
	if !t.satisfied() {
		return false
	}
	if t.fired {
		return false
	}
	t.fired = true
	return true
}

// Release records k as no longer held.
func (t *Tracker) Release(k Key) {
	delete(t.pressed, k)
	if !t.satisfied() {
		t.fired = false
	}
}

func (t *Tracker) satisfied() bool {
	held := make(map[Key]struct{}, len(t.pressed))
	for k := range t.pressed {
		held[Normalize(k)] = struct{}{}
	}
	for k := range t.chord {
		if _, ok := held[k]; !ok {
			return false
		}
	}
	return true
}
