package keymap

import (
	"fmt"
	"strings"

	"github.com/reavox/reavox/internal/host"
)

var vkNames = map[int]string{
	host.VKBackspace: "Backspace",
	host.VKTab:       "Tab",
	host.VKEnter:     "Enter",
	host.VKEscape:    "Escape",
	host.VKSpace:     "Space",
	host.VKPageUp:    "Page Up",
	host.VKPageDown:  "Page Down",
	host.VKEnd:       "End",
	host.VKHome:      "Home",
	host.VKLeft:      "Left",
	host.VKUp:        "Up",
	host.VKRight:     "Right",
	host.VKDown:      "Down",
	host.VKInsert:    "Insert",
	host.VKDelete:    "Delete",
	host.VKF1:        "F1",
	host.VKF2:        "F2",
	host.VKF3:        "F3",
	host.VKF4:        "F4",
	host.VKF5:        "F5",
	host.VKF6:        "F6",
	host.VKF7:        "F7",
	host.VKF8:        "F8",
	host.VKF9:        "F9",
	host.VKF10:       "F10",
	host.VKF11:       "F11",
	host.VKF12:       "F12",
}

func modPrefix(modifier int) string {
	var b strings.Builder
	if modifier&host.ModCtrl != 0 {
		b.WriteString("Ctrl+")
	}
	if modifier&host.ModAlt != 0 {
		b.WriteString("Alt+")
	}
	if modifier&host.ModShift != 0 {
		b.WriteString("Shift+")
	}
	return b.String()
}

// keyboardName builds the display name for a keyboard KEY entry as stored
// in a keymap file. The file encodes the key either as an ASCII character
// code or as a virtual key code, and the modifier's low bit tells which:
// even modifiers carry ASCII, odd carry virtual keys.
func keyboardName(modifier, code int) string {
	if modifier%2 == 0 {
		return modPrefix(modifier) + asciiName(code)
	}
	return modPrefix(modifier) + vkName(code)
}

// KeyName renders an accelerator the bridge registered, which always
// stores a virtual key code.
func KeyName(a host.Accel) string {
	if a.IsZero() {
		return ""
	}
	return modPrefix(int(a.Mod)) + vkName(int(a.Key))
}

func asciiName(code int) string {
	if code > 32 && code < 127 {
		return string(rune(code))
	}
	if name, ok := vkNames[code]; ok {
		return name
	}
	return fmt.Sprintf("key %d", code)
}

func vkName(code int) string {
	if name, ok := vkNames[code]; ok {
		return name
	}
	if code > 32 && code < 127 {
		return string(rune(code))
	}
	return fmt.Sprintf("key %d", code)
}
