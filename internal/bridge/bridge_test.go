package bridge

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/reavox/reavox/internal/command"
	"github.com/reavox/reavox/internal/focus"
	"github.com/reavox/reavox/internal/host"
	"github.com/reavox/reavox/internal/host/sim"
	"github.com/reavox/reavox/internal/notify"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func trackSelect(ctx *command.Context) error {
	idx, ok := ctx.Host.LastTouchedTrack()
	if !ok {
		return fmt.Errorf("no track touched")
	}
	name, ok := ctx.Host.TrackName(idx)
	if !ok {
		return fmt.Errorf("track %d gone", idx)
	}
	ctx.Focus.Set(focus.Track, focus.Description{Role: "track", Name: name})
	return nil
}

func newTestBridge(t *testing.T, h *sim.Host, em notify.Emitter) *Bridge {
	t.Helper()
	reg := command.NewRegistry()
	if err := reg.Register(&command.Command{
		Section:     command.SectionMain,
		ID:          "REAVOX_TRACK_SELECT",
		DisplayName: "Report selected track",
		Handler:     trackSelect,
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	b, err := New(h, reg, em, quietLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func TestNew_RegistersCommandsWithHost(t *testing.T) {
	h := sim.New()
	reg := command.NewRegistry()
	cmds := []*command.Command{
		{Section: command.SectionMain, ID: "REAVOX_NEXT_TRACK", DisplayName: "Go to next track", Accel: host.Accel{Key: 0x28}, Handler: func(*command.Context) error { return nil }},
		{Section: command.SectionMain, ID: "REAVOX_PREV_TRACK", DisplayName: "Go to previous track", Accel: host.Accel{Key: 0x26}, Handler: func(*command.Context) error { return nil }},
	}
	for _, c := range cmds {
		if err := reg.Register(c); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}

	if _, err := New(h, reg, notify.Null{}, quietLogger()); err != nil {
		t.Fatalf("New: %v", err)
	}

	regs := h.Registrations()
	if len(regs) != 2 {
		t.Fatalf("host saw %d registrations, want 2", len(regs))
	}
	if regs[0].ID != "REAVOX_NEXT_TRACK" || regs[1].ID != "REAVOX_PREV_TRACK" {
		t.Errorf("registration order = %q, %q", regs[0].ID, regs[1].ID)
	}
	if cmds[0].Handle == 0 || cmds[1].Handle == 0 {
		t.Error("handles not retained on commands")
	}
	if got, ok := reg.LookupHandle(command.SectionMain, cmds[1].Handle); !ok || got != cmds[1] {
		t.Errorf("LookupHandle(%d) = %v, %v", cmds[1].Handle, got, ok)
	}
}

type failingRegHost struct {
	*sim.Host
}

func (f *failingRegHost) RegisterAction(section int, id, displayName string, accel host.Accel) (int, error) {
	return 0, errors.New("host rejected registration")
}

func TestNew_HostRegistrationFailureFailsStartup(t *testing.T) {
	reg := command.NewRegistry()
	if err := reg.Register(&command.Command{Section: command.SectionMain, ID: "REAVOX_X", Handler: func(*command.Context) error { return nil }}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := New(&failingRegHost{sim.New()}, reg, notify.Null{}, quietLogger())
	if err == nil {
		t.Fatal("expected startup failure when host rejects registration")
	}
}

func TestInvoke_MissIsNotMine(t *testing.T) {
	h := sim.New()
	rec := notify.NewRecorder(0)
	b := newTestBridge(t, h, rec)

	if got := b.Invoke(command.SectionMain, "nonexistent"); got != NotMine {
		t.Errorf("Invoke(unknown id) = %v, want NotMine", got)
	}
	if got := b.Invoke(command.SectionMIDIEditor, "REAVOX_TRACK_SELECT"); got != NotMine {
		t.Errorf("Invoke(wrong section) = %v, want NotMine", got)
	}
	if got := b.Tracker().Current(); got != focus.None {
		t.Errorf("tracker moved on miss: %v", got)
	}
	if rec.Len() != 0 {
		t.Errorf("miss produced %d announcements, want 0", rec.Len())
	}
	if b.Registry().Len() != 1 {
		t.Errorf("table changed on miss: %d commands", b.Registry().Len())
	}
}

func TestInvoke_HandlerErrorIsContained(t *testing.T) {
	h := sim.New()
	h.AddTrack("Drums")
	h.TouchTrack(0)
	rec := notify.NewRecorder(0)
	b := newTestBridge(t, h, rec)

	// Establish a known focus, then fail a later command.
	if got := b.Invoke(command.SectionMain, "REAVOX_TRACK_SELECT"); got != Handled {
		t.Fatalf("Invoke = %v, want Handled", got)
	}
	if err := b.Registry().Register(&command.Command{
		Section: command.SectionMain,
		ID:      "REAVOX_BROKEN",
		Handler: func(*command.Context) error { return errors.New("query exploded") },
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if got := b.Invoke(command.SectionMain, "REAVOX_BROKEN"); got != HandledWithFailure {
		t.Errorf("Invoke(failing) = %v, want HandledWithFailure", got)
	}
	if got := b.Tracker().Current(); got != focus.Track {
		t.Errorf("failure moved focus to %v, want Track unchanged", got)
	}
	if got := rec.Texts(); len(got) != 1 || got[0] != "Drums" {
		t.Errorf("announcements = %v, want just the earlier Drums", got)
	}
}

func TestInvoke_HandlerPanicIsContained(t *testing.T) {
	h := sim.New()
	b := newTestBridge(t, h, notify.Null{})
	if err := b.Registry().Register(&command.Command{
		Section: command.SectionMain,
		ID:      "REAVOX_PANICS",
		Handler: func(*command.Context) error { panic("handler bug") },
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if got := b.Invoke(command.SectionMain, "REAVOX_PANICS"); got != HandledWithFailure {
		t.Errorf("Invoke(panicking) = %v, want HandledWithFailure", got)
	}
	if got := b.Tracker().Current(); got != focus.None {
		t.Errorf("panic moved focus to %v", got)
	}
}

func TestInvoke_ScenarioDrums(t *testing.T) {
	h := sim.New()
	h.AddTrack("Drums")
	h.TouchTrack(0)
	rec := notify.NewRecorder(0)
	b := newTestBridge(t, h, rec)

	if got := b.Invoke(command.SectionMain, "REAVOX_TRACK_SELECT"); got != Handled {
		t.Fatalf("Invoke = %v, want Handled", got)
	}
	if got := rec.Texts(); len(got) != 1 || got[0] != "Drums" {
		t.Fatalf("announcements = %v, want exactly [Drums]", got)
	}
	if got := b.Tracker().Current(); got != focus.Track {
		t.Errorf("Current() = %v, want Track", got)
	}

	// Same host state re-invoked: no second announcement.
	if got := b.Invoke(command.SectionMain, "REAVOX_TRACK_SELECT"); got != Handled {
		t.Fatalf("second Invoke = %v, want Handled", got)
	}
	if got := rec.Len(); got != 1 {
		t.Errorf("after re-invoke, %d announcements, want 1", got)
	}

	// A real change announces again.
	h.RenameTrack(0, "Drums (comp)")
	b.Invoke(command.SectionMain, "REAVOX_TRACK_SELECT")
	if got := rec.Texts(); len(got) != 2 || got[1] != "Drums (comp)" {
		t.Errorf("announcements = %v, want rename announced", got)
	}
}

func TestInvokeHandle_RoutesLikeInvoke(t *testing.T) {
	h := sim.New()
	h.AddTrack("Drums")
	h.TouchTrack(0)
	rec := notify.NewRecorder(0)
	b := newTestBridge(t, h, rec)

	cmd, _ := b.Registry().Lookup(command.SectionMain, "REAVOX_TRACK_SELECT")
	if cmd.Handle == 0 {
		t.Fatal("command has no handle after New")
	}
	if got := b.InvokeHandle(command.SectionMain, cmd.Handle); got != Handled {
		t.Errorf("InvokeHandle = %v, want Handled", got)
	}
	if got := b.InvokeHandle(command.SectionMain, 99999); got != NotMine {
		t.Errorf("InvokeHandle(unknown) = %v, want NotMine", got)
	}
}

func TestOSEmitter_FallsBack(t *testing.T) {
	orig := notify.NewEmitterFunc
	defer func() { notify.NewEmitterFunc = orig }()

	notify.NewEmitterFunc = nil
	em := OSEmitter(sim.New(), quietLogger())
	if _, ok := em.(notify.Null); !ok {
		t.Errorf("emitter = %T, want notify.Null fallback", em)
	}

	rec := notify.NewRecorder(0)
	notify.NewEmitterFunc = func(hwnd uintptr) (notify.Emitter, error) { return rec, nil }
	if em := OSEmitter(sim.New(), quietLogger()); em != notify.Emitter(rec) {
		t.Errorf("emitter = %T, want registered backend", em)
	}
}

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		o    Outcome
		want string
	}{
		{NotMine, "not_mine"},
		{Handled, "handled"},
		{HandledWithFailure, "handled_with_failure"},
		{Outcome(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(tt.o), got, tt.want)
		}
	}
}
