package actions

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings toggles what announcements include. Handlers bind a Settings
// value at registration time; changing behavior means rebuilding the table.
type Settings struct {
	ReportTrackNumbers bool `yaml:"report_track_numbers"`
	ReportTrackState   bool `yaml:"report_track_state"`
	ReportPosition     bool `yaml:"report_position"`
	ReportMarkers      bool `yaml:"report_markers"`
}

// DefaultSettings matches a fresh install: everything reported.
func DefaultSettings() Settings {
	return Settings{
		ReportTrackNumbers: true,
		ReportTrackState:   true,
		ReportPosition:     true,
		ReportMarkers:      true,
	}
}

// LoadSettings reads YAML settings over the defaults. Unknown keys are an
// error so misspelled settings do not silently fall back. An empty document
// means defaults.
func LoadSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return DefaultSettings(), nil
		}
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// LoadSettingsFile is LoadSettings for a file path.
func LoadSettingsFile(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("open settings: %w", err)
	}
	defer f.Close()
	return LoadSettings(f)
}
