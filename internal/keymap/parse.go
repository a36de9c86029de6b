package keymap

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ACT settings bits.
const (
	actConsolidateUndo       = 1
	actShowInMenu            = 2
	actActiveIfAll           = 16
	actActiveOrIndeterminate = 32
)

// Global key scopes, stored in the section field of a KEY entry.
const (
	sectionGlobal           = 102
	sectionGlobalTextFields = 103
)

// ParseFile reads and parses one keymap file. Files are normally UTF-8;
// older hosts wrote Latin-1, so byte content that is not valid UTF-8 is
// re-decoded as Latin-1 rather than rejected.
func ParseFile(path string) (*Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keymap: %w", err)
	}
	if !utf8.Valid(data) {
		data, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decode keymap %s: %w", path, err)
		}
	}
	return Parse(bytes.NewReader(data))
}

// Parse parses keymap records from r. Blank lines and # comment lines are
// ignored; a # also starts a trailing comment on any record line. Records
// the parser cannot use are collected in Keymap.Skipped, never returned as
// an error: a keymap with one bad line is still a keymap.
func Parse(r io.Reader) (*Keymap, error) {
	km := &Keymap{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if i := strings.Index(text, "#"); i >= 0 {
			text = strings.TrimSpace(text[:i])
		}
		switch {
		case strings.HasPrefix(text, "ACT "):
			km.parseAct(line, text)
		case strings.HasPrefix(text, "SCR "):
			km.parseScr(line, text)
		case strings.HasPrefix(text, "KEY "):
			km.parseKey(line, text)
		default:
			km.skip(line, text, "unknown record type")
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read keymap: %w", err)
	}
	return km, nil
}

func (km *Keymap) skip(line int, text, reason string) {
	km.Skipped = append(km.Skipped, Skipped{Line: line, Text: text, Reason: reason})
}

// ACT <settings> <section> "<id>" "<desc>" <component> [<component> ...]
func (km *Keymap) parseAct(line int, text string) {
	fields := splitQuoted(text[len("ACT "):])
	if len(fields) < 5 {
		km.skip(line, text, "ACT needs settings, section, id, desc and components")
		return
	}
	settings, err := strconv.Atoi(fields[0])
	if err != nil {
		km.skip(line, text, "ACT settings is not a number")
		return
	}
	section, err := strconv.Atoi(fields[1])
	if err != nil {
		km.skip(line, text, "ACT section is not a number")
		return
	}
	km.Actions = append(km.Actions, Act{
		Settings:   settings,
		Section:    section,
		ID:         fields[2],
		Desc:       fields[3],
		Components: fields[4:],
		Flags: ActFlags{
			ConsolidateUndo:       settings&actConsolidateUndo != 0,
			ShowInMenu:            settings&actShowInMenu != 0,
			ActiveIfAll:           settings&actActiveIfAll != 0,
			ActiveOrIndeterminate: settings&actActiveOrIndeterminate != 0,
		},
		Line: line,
	})
}

// SCR <settings> <section> <id> "<desc>" <script>
func (km *Keymap) parseScr(line int, text string) {
	fields := splitQuoted(text[len("SCR "):])
	if len(fields) < 5 {
		km.skip(line, text, "SCR needs settings, section, id, desc and script")
		return
	}
	settings, err := strconv.Atoi(fields[0])
	if err != nil {
		km.skip(line, text, "SCR settings is not a number")
		return
	}
	section, err := strconv.Atoi(fields[1])
	if err != nil {
		km.skip(line, text, "SCR section is not a number")
		return
	}
	km.Scripts = append(km.Scripts, Scr{
		Settings: settings,
		Section:  section,
		ID:       fields[2],
		Desc:     fields[3],
		Script:   fields[4],
		Line:     line,
	})
}

// KEY <modifier> <code> <command> <section>
func (km *Keymap) parseKey(line int, text string) {
	fields := strings.Fields(text[len("KEY "):])
	if len(fields) < 4 {
		km.skip(line, text, "KEY needs modifier, code, command and section")
		return
	}
	modifier, err := strconv.Atoi(fields[0])
	if err != nil {
		km.skip(line, text, "KEY modifier is not a number")
		return
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		km.skip(line, text, "KEY code is not a number")
		return
	}
	section, err := strconv.Atoi(fields[3])
	if err != nil {
		km.skip(line, text, "KEY section is not a number")
		return
	}
	k := Key{
		Modifier: modifier,
		Code:     code,
		Command:  fields[2],
		Section:  section,
		Line:     line,
	}
	k.Class, k.Channel = classifyKey(modifier)
	switch k.Class {
	case ClassKeyboard:
		k.Name = keyboardName(modifier, code)
	case ClassMIDINote, ClassMIDICC, ClassMIDIPC:
		k.Data = code % 128
	}
	if section == sectionGlobal || section == sectionGlobalTextFields {
		switch k.Command {
		case "1":
			k.Global = "global"
		case "101":
			k.Global = "global+textfields"
		default:
			k.Global = "unknown"
		}
	}
	km.Keys = append(km.Keys, k)
}

// classifyKey reads the modifier byte the way the host does: values at or
// above 128 are MIDI status bytes or the special-input marker 255, not
// keyboard modifiers. For channel-voice statuses the low nibble is the MIDI
// channel, reported 1-based.
func classifyKey(modifier int) (KeyClass, int) {
	switch {
	case modifier >= 144 && modifier <= 159:
		return ClassMIDINote, modifier - 143
	case modifier >= 176 && modifier <= 191:
		return ClassMIDICC, modifier - 175
	case modifier >= 192 && modifier <= 207:
		return ClassMIDIPC, modifier - 191
	case modifier >= 224 && modifier <= 239:
		return ClassMIDIPitch, modifier - 223
	case modifier >= 128 && modifier <= 254:
		return ClassMIDIRaw, 0
	case modifier == 255:
		return ClassSpecial, 0
	default:
		return ClassKeyboard, 0
	}
}

// splitQuoted splits s on whitespace while keeping double-quoted runs as
// single fields, quotes removed. An empty quoted pair produces an empty
// field.
func splitQuoted(s string) []string {
	var out []string
	i := 0
	for i < len(s) {
		switch {
		case s[i] == ' ' || s[i] == '\t':
			i++
		case s[i] == '"':
			j := i + 1
			for j < len(s) && s[j] != '"' {
				j++
			}
			out = append(out, s[i+1:j])
			if j < len(s) {
				j++
			}
			i = j
		default:
			j := i
			for j < len(s) && s[j] != ' ' && s[j] != '\t' && s[j] != '"' {
				j++
			}
			out = append(out, s[i:j])
			i = j
		}
	}
	return out
}
