// Package keymap reads and writes the host's keymap file format
// (reaper-kb.ini): ACT custom actions, SCR script bindings, and KEY
// key-to-command bindings. The bridge uses it to let users inspect their
// keymap for conflicts with its own accelerators and to export its
// bindings as lines they can merge.
package keymap

import (
	"github.com/reavox/reavox/internal/command"
)

// KeyClass categorizes what a KEY entry binds. Only keyboard entries are
// decoded fully; MIDI and special bindings are detected and categorized
// but left for the host to interpret.
type KeyClass string

const (
	ClassKeyboard  KeyClass = "keyboard"
	ClassMIDINote  KeyClass = "midi-note"
	ClassMIDICC    KeyClass = "midi-cc"
	ClassMIDIPC    KeyClass = "midi-pc"
	ClassMIDIPitch KeyClass = "midi-pitch"
	ClassMIDIRaw   KeyClass = "midi-raw"
	ClassSpecial   KeyClass = "special"
)

// ActFlags are the decoded settings bits of an ACT entry.
type ActFlags struct {
	ConsolidateUndo       bool `yaml:"consolidate_undo,omitempty"        json:"consolidate_undo,omitempty"`
	ShowInMenu            bool `yaml:"show_in_menu,omitempty"            json:"show_in_menu,omitempty"`
	ActiveIfAll           bool `yaml:"active_if_all,omitempty"           json:"active_if_all,omitempty"`
	ActiveOrIndeterminate bool `yaml:"active_or_indeterminate,omitempty" json:"active_or_indeterminate,omitempty"`
}

// Act is one custom action: a named sequence of component action ids.
type Act struct {
	Settings   int      `yaml:"settings"    json:"settings"`
	Section    int      `yaml:"section"     json:"section"`
	ID         string   `yaml:"id"          json:"id"`
	Desc       string   `yaml:"desc"        json:"desc"`
	Components []string `yaml:"components"  json:"components"`
	Flags      ActFlags `yaml:"flags"       json:"flags"`
	Line       int      `yaml:"line"        json:"line"`
}

// Scr binds a script file to an action id.
type Scr struct {
	Settings int    `yaml:"settings" json:"settings"`
	Section  int    `yaml:"section"  json:"section"`
	ID       string `yaml:"id"       json:"id"`
	Desc     string `yaml:"desc"     json:"desc"`
	Script   string `yaml:"script"   json:"script"`
	Line     int    `yaml:"line"     json:"line"`
}

// Key routes one keystroke, MIDI event, or special input to a command id
// within a section.
type Key struct {
	Modifier int      `yaml:"modifier"          json:"modifier"`
	Code     int      `yaml:"code"              json:"code"`
	Command  string   `yaml:"command"           json:"command"`
	Section  int      `yaml:"section"           json:"section"`
	Class    KeyClass `yaml:"class"             json:"class"`
	Channel  int      `yaml:"channel,omitempty" json:"channel,omitempty"`
	Data     int      `yaml:"data,omitempty"    json:"data,omitempty"`
	Name     string   `yaml:"name,omitempty"    json:"name,omitempty"`
	Global   string   `yaml:"global,omitempty"  json:"global,omitempty"`
	Line     int      `yaml:"line"              json:"line"`
}

// Skipped records one line the parser could not use. Malformed lines never
// fail the file wholesale; they are counted and reported instead.
type Skipped struct {
	Line   int    `yaml:"line"   json:"line"`
	Text   string `yaml:"text"   json:"text"`
	Reason string `yaml:"reason" json:"reason"`
}

// Keymap is one parsed keymap file.
type Keymap struct {
	Actions []Act     `yaml:"actions,omitempty" json:"actions,omitempty"`
	Scripts []Scr     `yaml:"scripts,omitempty" json:"scripts,omitempty"`
	Keys    []Key     `yaml:"keys,omitempty"    json:"keys,omitempty"`
	Skipped []Skipped `yaml:"skipped,omitempty" json:"skipped,omitempty"`
}

// Len reports the number of parsed entries across all record types.
func (km *Keymap) Len() int {
	return len(km.Actions) + len(km.Scripts) + len(km.Keys)
}

// KeysIn returns the KEY entries for one section, in file order.
func (km *Keymap) KeysIn(section int) []Key {
	var out []Key
	for _, k := range km.Keys {
		if k.Section == section {
			out = append(out, k)
		}
	}
	return out
}

// Conflict is one (modifier, key) combination bound to more than one
// command within a section.
type Conflict struct {
	Section  int      `yaml:"section"        json:"section"`
	Modifier int      `yaml:"modifier"       json:"modifier"`
	Code     int      `yaml:"code"           json:"code"`
	Name     string   `yaml:"name,omitempty" json:"name,omitempty"`
	Commands []string `yaml:"commands"       json:"commands"`
}

type conflictKey struct {
	section  int
	modifier int
	code     int
}

// Conflicts reports keyboard bindings that collide within a section, in
// first-seen order. MIDI and special bindings are excluded; the host
// resolves those per input device.
func (km *Keymap) Conflicts() []Conflict {
	groups := make(map[conflictKey][]string)
	var order []conflictKey
	names := make(map[conflictKey]string)
	for _, k := range km.Keys {
		if k.Class != ClassKeyboard {
			continue
		}
		ck := conflictKey{section: k.Section, modifier: k.Modifier, code: k.Code}
		if _, seen := groups[ck]; !seen {
			order = append(order, ck)
			names[ck] = k.Name
		}
		groups[ck] = append(groups[ck], k.Command)
	}
	var out []Conflict
	for _, ck := range order {
		cmds := groups[ck]
		if len(cmds) < 2 {
			continue
		}
		out = append(out, Conflict{
			Section:  ck.section,
			Modifier: ck.modifier,
			Code:     ck.code,
			Name:     names[ck],
			Commands: cmds,
		})
	}
	return out
}

// SectionName names a keymap section, including ids that only appear in
// keymap files and never carry bridge commands.
func SectionName(section int) string {
	if section == 1 {
		return "Action stays invisible but is kept"
	}
	return command.SectionName(section)
}
