// Package bridge wires the command table, focus tracker, and notifier into
// the two entry points the host calls: startup registration and per-action
// invocation.
package bridge

import (
	"fmt"
	"log/slog"

	"github.com/reavox/reavox/internal/command"
	"github.com/reavox/reavox/internal/focus"
	"github.com/reavox/reavox/internal/host"
	"github.com/reavox/reavox/internal/notify"
	_ "github.com/reavox/reavox/internal/notify/msaa" // registers the Windows emitter
)

// Outcome is what the host learns from one invocation.
type Outcome int

const (
	// NotMine: the id belongs to someone else; the host continues its own
	// default handling. Not an error.
	NotMine Outcome = iota
	// Handled: the command ran to completion.
	Handled
	// HandledWithFailure: the command was ours but failed. The failure is
	// logged and contained; the host proceeds as if nothing happened.
	HandledWithFailure
)

var outcomeNames = map[Outcome]string{
	NotMine:            "not_mine",
	Handled:            "handled",
	HandledWithFailure: "handled_with_failure",
}

func (o Outcome) String() string {
	if n, ok := outcomeNames[o]; ok {
		return n
	}
	return "unknown"
}

// Bridge is the composition root. The host delivers invocations one at a
// time on its UI thread; Bridge and everything under it assume exactly
// that and take no locks. Concurrent outer layers serialize around it.
type Bridge struct {
	registry *command.Registry
	tracker  *focus.Tracker
	api      host.API
	log      *slog.Logger
}

// New registers every command in reg with the host, retains the handles
// the host assigns, and wires the tracker to emitter. A registration
// problem is a configuration error that fails startup. A nil logger means
// slog.Default(); a nil emitter drops announcements.
func New(api host.API, reg *command.Registry, emitter notify.Emitter, logger *slog.Logger) (*Bridge, error) {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bridge{
		registry: reg,
		tracker:  focus.NewTracker(emitter),
		api:      api,
		log:      logger,
	}
	for _, section := range reg.Sections() {
		for _, binding := range reg.Bindings(section) {
			handle, err := api.RegisterAction(section, binding.ID, binding.DisplayName, binding.Accel)
			if err != nil {
				return nil, fmt.Errorf("register %q with host: %w", binding.ID, err)
			}
			if err := reg.SetHandle(section, binding.ID, handle); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// OSEmitter returns the platform announcement backend bound to the host's
// main window, falling back to the null emitter when none is available.
// The absence of assistive technology is the normal case and is logged at
// info, not treated as a failure.
func OSEmitter(api host.API, logger *slog.Logger) notify.Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	em, err := notify.NewEmitter(api.MainWindow())
	if err != nil {
		logger.Info("accessibility notifier unavailable", "error", err)
		return notify.Null{}
	}
	return em
}

// Invoke is the host entry point for id-routed invocations.
func (b *Bridge) Invoke(section int, id string) Outcome {
	cmd, ok := b.registry.Lookup(section, id)
	if !ok {
		return NotMine
	}
	return b.run(cmd)
}

// InvokeHandle is the host entry point for hosts that route by the numeric
// handle assigned at registration.
func (b *Bridge) InvokeHandle(section, handle int) Outcome {
	cmd, ok := b.registry.LookupHandle(section, handle)
	if !ok {
		return NotMine
	}
	return b.run(cmd)
}

// run executes one handler synchronously on the calling thread. Panics and
// errors stop here: handlers update focus as their last step, so the
// tracker's pre-call state stays the last consistent one.
func (b *Bridge) run(cmd *command.Command) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("command panicked", "id", cmd.ID, "section", cmd.Section, "panic", r)
			out = HandledWithFailure
		}
	}()
	ctx := &command.Context{Host: b.api, Focus: b.tracker}
	if err := cmd.Handler(ctx); err != nil {
		b.log.Error("command failed", "id", cmd.ID, "section", cmd.Section, "error", err)
		return HandledWithFailure
	}
	return Handled
}

// Tracker exposes the focus tracker for inspection.
func (b *Bridge) Tracker() *focus.Tracker { return b.tracker }

// Registry exposes the command table for listing.
func (b *Bridge) Registry() *command.Registry { return b.registry }
