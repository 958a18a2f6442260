//go:build windows

package hotkey

import "golang.design/x/hotkey"

var toggleModifiers = []hotkey.Modifier{hotkey.ModWin}

func Diagnose() (string, error) {
	return "hotkey support available (Win+H)", nil
}
