//go:build darwin

package hotkey

import "golang.design/x/hotkey"

var toggleModifiers = []hotkey.Modifier{hotkey.ModCmd}

func Diagnose() (string, error) {
	return "hotkey support available (Cmd+H)", nil
}
