package keymap

import (
	"fmt"
	"io"
	"strings"

	"github.com/reavox/reavox/internal/command"
)

// FormatKey renders k as a keymap KEY line.
func FormatKey(k Key) string {
	return fmt.Sprintf("KEY %d %d %s %d", k.Modifier, k.Code, k.Command, k.Section)
}

// FormatAct renders a as a keymap ACT line.
func FormatAct(a Act) string {
	return fmt.Sprintf("ACT %d %d \"%s\" \"%s\" %s",
		a.Settings, a.Section, a.ID, a.Desc, strings.Join(a.Components, " "))
}

// FormatScr renders s as a keymap SCR line.
func FormatScr(s Scr) string {
	return fmt.Sprintf("SCR %d %d %s \"%s\" %s",
		s.Settings, s.Section, s.ID, s.Desc, s.Script)
}

// ExportBindings writes the bridge's registered accelerators for one
// section as KEY lines a user can merge into their keymap file. Named
// command ids get the leading underscore the host expects for non-numeric
// action references. Each binding is preceded by a comment line naming it;
// the parser skips those on re-import.
func ExportBindings(w io.Writer, section int, bindings []command.Binding) error {
	for _, b := range bindings {
		if b.Accel.IsZero() {
			continue
		}
		_, err := fmt.Fprintf(w, "# %s: %s\nKEY %d %d _%s %d\n",
			KeyName(b.Accel), b.DisplayName, b.Accel.Mod, b.Accel.Key, b.ID, section)
		if err != nil {
			return fmt.Errorf("write keymap line: %w", err)
		}
	}
	return nil
}
