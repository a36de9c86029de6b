package cmd

import (
	"github.com/reavox/reavox/internal/command"
	"github.com/reavox/reavox/internal/keymap"
	"github.com/reavox/reavox/internal/output"
	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the bridge's command table",
	Long:  "List every command the bridge registers with its host: section, id,\ndisplay name, and default key binding.",
	RunE:  runCommands,
}

func init() {
	rootCmd.AddCommand(commandsCmd)
	commandsCmd.Flags().Int("section", -1, "Filter by section id (-1 = all)")
	commandsCmd.Flags().String("settings", "", "Announcement settings YAML file")
	commandsCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

// commandRow is the listing output for one command.
type commandRow struct {
	Section     int    `yaml:"section"       json:"section"`
	SectionName string `yaml:"section_name"  json:"section_name"`
	ID          string `yaml:"id"            json:"id"`
	Display     string `yaml:"display"       json:"display"`
	Key         string `yaml:"key,omitempty" json:"key,omitempty"`
}

func runCommands(cmd *cobra.Command, args []string) error {
	section, _ := cmd.Flags().GetInt("section")
	settingsPath, _ := cmd.Flags().GetString("settings")

	set, err := loadSettings(settingsPath)
	if err != nil {
		return err
	}
	reg, err := buildRegistry(set)
	if err != nil {
		return err
	}

	return output.Print(commandRows(reg, section))
}

// commandRows flattens the registry into listing rows, in registration
// order. A negative section keeps everything.
func commandRows(reg *command.Registry, section int) []commandRow {
	rows := make([]commandRow, 0, reg.Len())
	for _, c := range reg.All() {
		if section >= 0 && c.Section != section {
			continue
		}
		rows = append(rows, commandRow{
			Section:     c.Section,
			SectionName: command.SectionName(c.Section),
			ID:          c.ID,
			Display:     c.DisplayName,
			Key:         keymap.KeyName(c.Accel),
		})
	}
	return rows
}
