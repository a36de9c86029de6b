package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/reavox/reavox/internal/command"
	"github.com/reavox/reavox/internal/keymap"
	"github.com/reavox/reavox/internal/output"
	"github.com/spf13/cobra"
)

var keymapCmd = &cobra.Command{
	Use:   "keymap",
	Short: "Inspect and export host keymap files",
}

var keymapListCmd = &cobra.Command{
	Use:   "list",
	Short: "Parse a keymap file and list its entries",
	Long: `Parse a host keymap file (reaper-kb.ini) and list its ACT, SCR, and KEY
entries. Lines the parser cannot use are reported under skipped, never
fatal.`,
	RunE: runKeymapList,
}

var keymapConflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "Report key bindings that collide within a section",
	RunE:  runKeymapConflicts,
}

var keymapExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the bridge's key bindings as keymap KEY lines",
	Long: `Render the bridge's registered accelerators as KEY lines to merge into a
host keymap file. Named command ids carry the leading underscore the
host expects for non-numeric action references.`,
	RunE: runKeymapExport,
}

func init() {
	rootCmd.AddCommand(keymapCmd)
	keymapCmd.AddCommand(keymapListCmd)
	keymapCmd.AddCommand(keymapConflictsCmd)
	keymapCmd.AddCommand(keymapExportCmd)

	keymapListCmd.Flags().String("file", "", "Keymap file to parse (required)")
	keymapListCmd.Flags().Int("section", -1, "Filter entries by section id (-1 = all)")
	keymapListCmd.Flags().String("type", "", "Filter by record type: ACT, SCR, KEY")
	keymapListCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")

	keymapConflictsCmd.Flags().String("file", "", "Keymap file to parse (required)")
	keymapConflictsCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")

	keymapExportCmd.Flags().Int("section", command.SectionMain, "Section to export bindings for")
	keymapExportCmd.Flags().String("settings", "", "Announcement settings YAML file")
	keymapExportCmd.Flags().String("out", "", "Write to file instead of stdout")
}

func runKeymapList(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	section, _ := cmd.Flags().GetInt("section")
	recordType, _ := cmd.Flags().GetString("type")
	if path == "" {
		return fmt.Errorf("specify a keymap file with --file")
	}

	km, err := keymap.ParseFile(path)
	if err != nil {
		return err
	}
	filtered, err := filterKeymap(km, section, recordType)
	if err != nil {
		return err
	}
	return output.Print(filtered)
}

// filterKeymap narrows a parsed keymap to one section and/or record type.
// Skipped lines are always kept so a filtered listing still shows what the
// parser could not use.
func filterKeymap(km *keymap.Keymap, section int, recordType string) (*keymap.Keymap, error) {
	wantType := strings.ToUpper(recordType)
	switch wantType {
	case "", "ACT", "SCR", "KEY":
	default:
		return nil, fmt.Errorf("unknown record type %q (use ACT, SCR, or KEY)", recordType)
	}

	out := &keymap.Keymap{Skipped: km.Skipped}
	if wantType == "" || wantType == "ACT" {
		for _, a := range km.Actions {
			if section < 0 || a.Section == section {
				out.Actions = append(out.Actions, a)
			}
		}
	}
	if wantType == "" || wantType == "SCR" {
		for _, s := range km.Scripts {
			if section < 0 || s.Section == section {
				out.Scripts = append(out.Scripts, s)
			}
		}
	}
	if wantType == "" || wantType == "KEY" {
		for _, k := range km.Keys {
			if section < 0 || k.Section == section {
				out.Keys = append(out.Keys, k)
			}
		}
	}
	return out, nil
}

func runKeymapConflicts(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return fmt.Errorf("specify a keymap file with --file")
	}

	km, err := keymap.ParseFile(path)
	if err != nil {
		return err
	}
	conflicts := km.Conflicts()
	if conflicts == nil {
		conflicts = []keymap.Conflict{}
	}
	return output.Print(conflicts)
}

func runKeymapExport(cmd *cobra.Command, args []string) error {
	section, _ := cmd.Flags().GetInt("section")
	settingsPath, _ := cmd.Flags().GetString("settings")
	outPath, _ := cmd.Flags().GetString("out")

	set, err := loadSettings(settingsPath)
	if err != nil {
		return err
	}
	reg, err := buildRegistry(set)
	if err != nil {
		return err
	}
	bindings := reg.Bindings(section)
	if len(bindings) == 0 {
		return fmt.Errorf("no commands registered in section %d", section)
	}

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}
	return keymap.ExportBindings(w, section, bindings)
}
