package hotkey

import (
	"testing"
	"time"
)

var _ Hotkey = (*FakeHotkey)(nil)

func TestFakeDeliversToggles(t *testing.T) {
	f := NewFake()
	if err := f.Register(); err != nil {
		t.Fatal(err)
	}
	defer f.Unregister()

	f.SimToggle()
	select {
	case <-f.Toggled():
	case <-time.After(time.Second):
		t.Fatal("toggle not delivered")
	}
}
