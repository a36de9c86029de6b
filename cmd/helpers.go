package cmd

import (
	"github.com/reavox/reavox/internal/actions"
	"github.com/reavox/reavox/internal/command"
	"github.com/reavox/reavox/internal/host/sim"
)

// loadSim builds the simulated session: the canned demo project unless a
// fixture path is given.
func loadSim(projectPath string) (*sim.Host, error) {
	if projectPath == "" {
		return sim.Demo(), nil
	}
	return sim.LoadFile(projectPath)
}

// loadSettings reads announcement settings, defaulting when no path is
// given.
func loadSettings(settingsPath string) (actions.Settings, error) {
	if settingsPath == "" {
		return actions.DefaultSettings(), nil
	}
	return actions.LoadSettingsFile(settingsPath)
}

// buildRegistry assembles the command table under the given settings.
func buildRegistry(set actions.Settings) (*command.Registry, error) {
	reg := command.NewRegistry()
	if err := actions.Register(reg, set); err != nil {
		return nil, err
	}
	return reg, nil
}
