package command

import (
	"errors"
	"fmt"
)

// ErrDuplicate reports a (section, id) collision at registration time. A
// duplicate is a programming error in the command table, surfaced at
// startup, never retried.
var ErrDuplicate = errors.New("duplicate command id")

type tableKey struct {
	section int
	id      string
}

type handleKey struct {
	section int
	handle  int
}

// Registry owns the command table. It is populated once at startup and read
// afterward; it is not safe for concurrent mutation, which the
// single-threaded dispatch model never requires.
type Registry struct {
	commands map[tableKey]*Command
	byHandle map[handleKey]*Command
	order    []*Command
}

// NewRegistry returns an empty table.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[tableKey]*Command),
		byHandle: make(map[handleKey]*Command),
	}
}

// Register adds cmd to the table. Registering a (section, id) pair twice is
// a configuration error, as is an empty id or nil handler.
func (r *Registry) Register(cmd *Command) error {
	if cmd.ID == "" {
		return fmt.Errorf("register in section %d: empty command id", cmd.Section)
	}
	if cmd.Handler == nil {
		return fmt.Errorf("register %q in section %d: nil handler", cmd.ID, cmd.Section)
	}
	key := tableKey{section: cmd.Section, id: cmd.ID}
	if _, exists := r.commands[key]; exists {
		return fmt.Errorf("%w: %q in section %d", ErrDuplicate, cmd.ID, cmd.Section)
	}
	r.commands[key] = cmd
	r.order = append(r.order, cmd)
	return nil
}

// Lookup resolves (section, id). A miss is a normal outcome: the host
// routes ids belonging to other plugins through the same path.
func (r *Registry) Lookup(section int, id string) (*Command, bool) {
	cmd, ok := r.commands[tableKey{section: section, id: id}]
	return cmd, ok
}

// LookupHandle resolves (section, handle) for hosts that route invocations
// by the numeric handle assigned at registration.
func (r *Registry) LookupHandle(section, handle int) (*Command, bool) {
	cmd, ok := r.byHandle[handleKey{section: section, handle: handle}]
	return cmd, ok
}

// SetHandle records the host-assigned handle for (section, id) and indexes
// it for LookupHandle.
func (r *Registry) SetHandle(section int, id string, handle int) error {
	cmd, ok := r.Lookup(section, id)
	if !ok {
		return fmt.Errorf("set handle: unknown command %q in section %d", id, section)
	}
	cmd.Handle = handle
	r.byHandle[handleKey{section: section, handle: handle}] = cmd
	return nil
}

// Bindings returns the accelerator bindings for one section in registration
// order, including unbound commands with a zero accel.
func (r *Registry) Bindings(section int) []Binding {
	var out []Binding
	for _, cmd := range r.order {
		if cmd.Section != section {
			continue
		}
		out = append(out, Binding{Accel: cmd.Accel, ID: cmd.ID, DisplayName: cmd.DisplayName})
	}
	return out
}

// All returns every command in registration order.
func (r *Registry) All() []*Command {
	out := make([]*Command, len(r.order))
	copy(out, r.order)
	return out
}

// Sections returns the distinct section ids present, in first-seen order.
func (r *Registry) Sections() []int {
	seen := make(map[int]bool)
	var out []int
	for _, cmd := range r.order {
		if !seen[cmd.Section] {
			seen[cmd.Section] = true
			out = append(out, cmd.Section)
		}
	}
	return out
}

// Len reports the number of registered commands.
func (r *Registry) Len() int { return len(r.order) }
