// Package notify delivers focus announcements to the OS accessibility
// service. Backends register themselves the same way platform providers do:
// an OS-specific package sets NewEmitterFunc from init().
package notify

import (
	"fmt"
	"runtime"

	"github.com/reavox/reavox/internal/focus"
)

// Emitter is one announcement backend. Every accepted call results in
// exactly one emission, in call order; the emitter performs no comparison or
// de-duplication of its own. Delivery failure is absorbed inside the
// implementation, so Announce always returns normally.
type Emitter interface {
	Announce(d focus.Description)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(focus.Description)

func (f EmitterFunc) Announce(d focus.Description) { f(d) }

// ErrUnsupported is returned where no OS backend is registered.
var ErrUnsupported = fmt.Errorf("no accessibility notifier for %s/%s; screen-reader output requires windows", runtime.GOOS, runtime.GOARCH)

// NewEmitterFunc is set by OS-specific packages via init().
// See internal/notify/msaa for the Windows registration.
var NewEmitterFunc func(hwnd uintptr) (Emitter, error)

// NewEmitter returns the OS backend bound to the host's top-level window,
// or ErrUnsupported when none is registered.
func NewEmitter(hwnd uintptr) (Emitter, error) {
	if NewEmitterFunc == nil {
		return nil, ErrUnsupported
	}
	return NewEmitterFunc(hwnd)
}

// Null drops every announcement. It stands in wherever no OS service is
// available, keeping the bridge inert rather than failing.
type Null struct{}

func (Null) Announce(focus.Description) {}

// Multi fans each announcement out to every non-nil emitter, in argument
// order.
func Multi(emitters ...Emitter) Emitter {
	kept := make([]Emitter, 0, len(emitters))
	for _, e := range emitters {
		if e != nil {
			kept = append(kept, e)
		}
	}
	return multiEmitter(kept)
}

type multiEmitter []Emitter

func (m multiEmitter) Announce(d focus.Description) {
	for _, e := range m {
		e.Announce(d)
	}
}
