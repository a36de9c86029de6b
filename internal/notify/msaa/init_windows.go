//go:build windows

package msaa

import "github.com/reavox/reavox/internal/notify"

func init() {
	notify.NewEmitterFunc = func(hwnd uintptr) (notify.Emitter, error) {
		return New(hwnd)
	}
}
