//go:build windows

package msaa

import (
	"fmt"
	"log/slog"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"

	"github.com/reavox/reavox/internal/focus"
	"github.com/reavox/reavox/internal/wintext"
)

var (
	clsidAccPropServices = ole.NewGUID("{B5F8350B-0548-48B1-A6EE-88BD00B4A5E7}")
	iidIAccPropServices  = ole.NewGUID("{6E26E776-04F0-495D-80E4-3330352E3169}")
	propidAccName        = ole.NewGUID("{608D3DF8-8128-4AA7-A428-F55E49267291}")
)

const (
	objidClient      = 0xFFFFFFFC // OBJID_CLIENT as a DWORD
	childidSelf      = 0
	eventObjectFocus = 0x8005
)

var (
	user32         = windows.NewLazySystemDLL("user32.dll")
	notifyWinEvent = user32.NewProc("NotifyWinEvent")
)

// accPropServicesVtbl covers the IAccPropServices methods used here; the
// trailing methods of the real vtable are omitted.
type accPropServicesVtbl struct {
	ole.IUnknownVtbl
	SetPropValue      uintptr
	SetPropServer     uintptr
	ClearProps        uintptr
	SetHwndProp       uintptr
	SetHwndPropStr    uintptr
	SetHwndPropServer uintptr
	ClearHwndProps    uintptr
}

// Emitter annotates the host window and raises focus events. Failures are
// logged at debug level and otherwise swallowed; announcing must never
// destabilize the host.
type Emitter struct {
	hwnd  uintptr
	props *ole.IUnknown
	log   *slog.Logger
}

// New binds an Emitter to the host's top-level window handle.
func New(hwnd uintptr) (*Emitter, error) {
	if hwnd == 0 {
		return nil, fmt.Errorf("msaa: no host window handle")
	}
	// The host UI thread normally has COM initialized already; S_FALSE and
	// RPC_E_CHANGED_MODE both leave COM usable, so the result is ignored.
	_ = ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED)
	unk, err := ole.CreateInstance(clsidAccPropServices, iidIAccPropServices)
	if err != nil {
		return nil, fmt.Errorf("msaa: create IAccPropServices: %w", err)
	}
	return &Emitter{hwnd: hwnd, props: unk, log: slog.Default()}, nil
}

func (e *Emitter) vtbl() *accPropServicesVtbl {
	return (*accPropServicesVtbl)(unsafe.Pointer(e.props.RawVTable))
}

// Announce tags the window's accessible name with the description text and
// fires EVENT_OBJECT_FOCUS on the client object.
func (e *Emitter) Announce(d focus.Description) {
	text := d.Text()
	if text == "" {
		return
	}
	wide := wintext.WidenZ(text)
	// MSAAPROPID is declared pass-by-value; on win64 a 16-byte struct is
	// handed over as a pointer to a caller-owned copy.
	prop := *propidAccName
	hr, _, _ := syscall.SyscallN(e.vtbl().SetHwndPropStr,
		uintptr(unsafe.Pointer(e.props)),
		e.hwnd,
		uintptr(objidClient),
		uintptr(childidSelf),
		uintptr(unsafe.Pointer(&prop)),
		uintptr(unsafe.Pointer(&wide[0])),
	)
	if int32(hr) < 0 {
		e.log.Debug("msaa annotation failed", "hresult", uint32(hr), "text", text)
		return
	}
	notifyWinEvent.Call(uintptr(eventObjectFocus), e.hwnd, uintptr(objidClient), uintptr(childidSelf))
}

// Close clears the window annotation and releases the COM object.
func (e *Emitter) Close() error {
	if e.props == nil {
		return nil
	}
	prop := *propidAccName
	syscall.SyscallN(e.vtbl().ClearHwndProps,
		uintptr(unsafe.Pointer(e.props)),
		e.hwnd,
		uintptr(objidClient),
		uintptr(childidSelf),
		uintptr(unsafe.Pointer(&prop)),
		1,
	)
	e.props.Release()
	e.props = nil
	return nil
}
