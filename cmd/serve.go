package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/reavox/reavox/internal/bridge"
	"github.com/reavox/reavox/internal/notify"
	"github.com/reavox/reavox/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing bridge tools",
	Long: `Start a Model Context Protocol (MCP) server exposing the bridge and a
simulated session as tools. Agents can invoke commands, inspect the
virtual focus, and replay announcements without a live host process.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  reavox serve
  reavox serve --transport streamable-http --port 8080
  reavox serve --project session.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().String("project", "", "Project fixture YAML (default: built-in demo session)")
	serveCmd.Flags().String("settings", "", "Announcement settings YAML file")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	projectPath, _ := cmd.Flags().GetString("project")
	settingsPath, _ := cmd.Flags().GetString("settings")

	h, err := loadSim(projectPath)
	if err != nil {
		return err
	}
	set, err := loadSettings(settingsPath)
	if err != nil {
		return err
	}
	reg, err := buildRegistry(set)
	if err != nil {
		return err
	}

	// stdout belongs to the stdio transport; logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	rec := notify.NewRecorder(0)
	br, err := bridge.New(h, reg, rec, logger)
	if err != nil {
		return err
	}

	srv := server.New(br, h, rec)
	return srv.Serve(server.Config{Transport: transport, Port: port})
}
