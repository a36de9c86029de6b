package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/reavox/reavox/internal/bridge"
	"github.com/reavox/reavox/internal/command"
	"github.com/reavox/reavox/internal/keymap"
	"github.com/reavox/reavox/internal/notify"
)

// toYAML serializes a tool result for the text response.
func toYAML(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

func (s *Server) handleCommands(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	section := intParam(params, "section", -1)

	s.bridgeMu.Lock()
	defer s.bridgeMu.Unlock()

	type row struct {
		Section int    `yaml:"section"`
		ID      string `yaml:"id"`
		Display string `yaml:"display"`
		Key     string `yaml:"key,omitempty"`
	}
	rows := []row{}
	for _, c := range s.bridge.Registry().All() {
		if section >= 0 && c.Section != section {
			continue
		}
		rows = append(rows, row{
			Section: c.Section,
			ID:      c.ID,
			Display: c.DisplayName,
			Key:     keymap.KeyName(c.Accel),
		})
	}
	return mcp.NewToolResultText(toYAML(rows)), nil
}

// invokeResult is the invoke tool's response body.
type invokeResult struct {
	Outcome   string   `yaml:"outcome"`
	Announced []string `yaml:"announced,omitempty"`
	Focus     string   `yaml:"focus"`
}

func (s *Server) handleInvoke(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := stringParam(params, "id", "")
	section := intParam(params, "section", command.SectionMain)
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	s.bridgeMu.Lock()
	defer s.bridgeMu.Unlock()

	before := s.rec.Len()
	outcome := s.bridge.Invoke(section, id)

	res := invokeResult{
		Outcome: outcome.String(),
		Focus:   s.bridge.Tracker().Current().String(),
	}
	if texts := s.rec.Texts(); before < len(texts) {
		res.Announced = texts[before:]
	}
	if outcome != bridge.Handled {
		return mcp.NewToolResultError(toYAML(res)), nil
	}
	return mcp.NewToolResultText(toYAML(res)), nil
}

func (s *Server) handleFocus(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.bridgeMu.Lock()
	defer s.bridgeMu.Unlock()

	type focusResult struct {
		Kind string `yaml:"kind"`
		Role string `yaml:"role,omitempty"`
		Text string `yaml:"text,omitempty"`
	}
	tracker := s.bridge.Tracker()
	kind := tracker.Current()
	res := focusResult{Kind: kind.String()}
	if d, ok := tracker.LastAnnounced(kind); ok {
		res.Role = d.Role
		res.Text = d.Text()
	}
	return mcp.NewToolResultText(toYAML(res)), nil
}

func (s *Server) handleAnnouncements(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	last := intParam(params, "last", 0)
	clear := boolParam(params, "clear", false)

	s.bridgeMu.Lock()
	defer s.bridgeMu.Unlock()

	all := s.rec.All()
	if last > 0 && last < len(all) {
		all = all[len(all)-last:]
	}
	if clear {
		s.rec.Clear()
	}
	if all == nil {
		all = []notify.Announcement{}
	}
	return mcp.NewToolResultText(toYAML(all)), nil
}

func (s *Server) handleProject(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.bridgeMu.Lock()
	defer s.bridgeMu.Unlock()

	return mcp.NewToolResultText(toYAML(s.host.Snapshot())), nil
}

// Parameter extraction helpers for tool argument maps.

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}
