// Package server exposes a bridge session over the Model Context Protocol
// so agents can drive it remotely: invoke commands, inspect the virtual
// focus, and replay announcements. Tool calls may arrive concurrently; the
// bridge core assumes single-threaded dispatch, so every handler
// serializes on one mutex before touching it.
package server

import (
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/reavox/reavox/internal/bridge"
	"github.com/reavox/reavox/internal/host/sim"
	"github.com/reavox/reavox/internal/notify"
	"github.com/reavox/reavox/internal/version"
)

// Config holds server transport configuration.
type Config struct {
	Transport string
	Port      int
}

// Server wraps the MCP server around one bridge session.
type Server struct {
	bridge *bridge.Bridge
	host   *sim.Host
	rec    *notify.Recorder

	// bridgeMu serializes tool handlers around the unlocked core.
	bridgeMu sync.Mutex

	mcp *mcpserver.MCPServer
}

// New builds a Server exposing the session's tools. The recorder must be
// the emitter the bridge announces into, so the announcements tool sees
// what a screen reader would have spoken.
func New(br *bridge.Bridge, h *sim.Host, rec *notify.Recorder) *Server {
	s := &Server{bridge: br, host: h, rec: rec}
	s.mcp = mcpserver.NewMCPServer("reavox", version.Version)
	s.registerTools()
	return s
}

// Serve blocks, running the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	// commands
	s.mcp.AddTool(
		mcp.NewTool("commands",
			mcp.WithDescription("List the bridge's registered commands: section, id, display name, and key binding"),
			mcp.WithNumber("section", mcp.Description("Filter by section id")),
		),
		s.handleCommands,
	)

	// invoke
	s.mcp.AddTool(
		mcp.NewTool("invoke",
			mcp.WithDescription("Invoke a bridge command by id and report the outcome, what was announced, and the focus afterward"),
			mcp.WithString("id", mcp.Description("Command id (e.g. REAVOX_NEXT_TRACK)"), mcp.Required()),
			mcp.WithNumber("section", mcp.Description("Section id (default: 0, the main section)")),
		),
		s.handleInvoke,
	)

	// focus
	s.mcp.AddTool(
		mcp.NewTool("focus",
			mcp.WithDescription("Report the current virtual focus: kind and the description last announced for it"),
		),
		s.handleFocus,
	)

	// announcements
	s.mcp.AddTool(
		mcp.NewTool("announcements",
			mcp.WithDescription("List recorded announcements, oldest first"),
			mcp.WithNumber("last", mcp.Description("Only the most recent N announcements")),
			mcp.WithBoolean("clear", mcp.Description("Clear the log after reading")),
		),
		s.handleAnnouncements,
	)

	// project
	s.mcp.AddTool(
		mcp.NewTool("project",
			mcp.WithDescription("Snapshot the simulated session: tracks, items, markers, cursor, and transport"),
		),
		s.handleProject,
	)
}
