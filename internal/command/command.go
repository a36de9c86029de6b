// Package command holds the table of user-invocable actions the bridge
// registers with its host: ids, display text, accelerator bindings, and the
// handler behind each.
package command

import (
	"fmt"

	"github.com/reavox/reavox/internal/focus"
	"github.com/reavox/reavox/internal/host"
)

// Host keymap sections. A command id is unique only within its section.
const (
	SectionMain          = 0
	SectionMainAlt       = 100
	SectionMIDIEditor    = 32060
	SectionMIDIEventList = 32061
	SectionMIDIInline    = 32062
	SectionMediaExplorer = 32063
)

var sectionNames = map[int]string{
	SectionMain:          "Main",
	SectionMainAlt:       "Main (alt recording)",
	SectionMIDIEditor:    "MIDI Editor",
	SectionMIDIEventList: "MIDI Event List Editor",
	SectionMIDIInline:    "MIDI Inline Editor",
	SectionMediaExplorer: "Media Explorer",
}

// SectionName returns the host keymap name for a section id.
func SectionName(section int) string {
	if name, ok := sectionNames[section]; ok {
		return name
	}
	return fmt.Sprintf("section %d", section)
}

// Context is handed to a handler for the duration of one invocation.
// Handlers keep no state of their own: anything durable lives in the focus
// tracker or is queried fresh from the host.
type Context struct {
	Host  host.API
	Focus *focus.Tracker
}

// Handler executes one invocation. A non-nil error marks the invocation as
// handled-with-failure; the dispatcher absorbs it and the host proceeds as
// if nothing happened.
type Handler func(ctx *Context) error

// Command is one user-invocable action. Commands are built once at startup
// into an immutable table and never mutated afterward, except for Handle,
// which the host assigns during registration.
type Command struct {
	Section     int        `yaml:"section"          json:"section"`
	ID          string     `yaml:"id"               json:"id"`
	DisplayName string     `yaml:"display"          json:"display"`
	Accel       host.Accel `yaml:"accel,omitempty"  json:"accel,omitempty"`
	Handler     Handler    `yaml:"-"                json:"-"`

	// Handle is the host-assigned routing number, zero until registration.
	// Retained because hosts use it for toggle and enable state queries.
	Handle int `yaml:"handle,omitempty" json:"handle,omitempty"`
}

// Binding pairs an accelerator with the command it should route to. The
// slice is built on demand and consumed once at startup when the host is
// told which keystrokes belong to the bridge.
type Binding struct {
	Accel       host.Accel `yaml:"accel"   json:"accel"`
	ID          string     `yaml:"id"      json:"id"`
	DisplayName string     `yaml:"display" json:"display"`
}
