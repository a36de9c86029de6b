package sim

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reavox/reavox/internal/host"
)

// Project is the YAML fixture format for simulated sessions.
type Project struct {
	Tempo   float64         `yaml:"tempo,omitempty"`
	TimeSig int             `yaml:"timesig,omitempty"`
	Tracks  []ProjectTrack  `yaml:"tracks"`
	Markers []ProjectMarker `yaml:"markers,omitempty"`
}

type ProjectTrack struct {
	Name   string        `yaml:"name"`
	Muted  bool          `yaml:"muted,omitempty"`
	Soloed bool          `yaml:"soloed,omitempty"`
	Armed  bool          `yaml:"armed,omitempty"`
	Volume *float64      `yaml:"volume,omitempty"` // linear gain, omitted = unity
	Pan    float64       `yaml:"pan,omitempty"`
	Items  []ProjectItem `yaml:"items,omitempty"`
}

type ProjectItem struct {
	Name     string  `yaml:"name"`
	Position float64 `yaml:"position"`
	Length   float64 `yaml:"length,omitempty"`
}

type ProjectMarker struct {
	Name     string  `yaml:"name"`
	Position float64 `yaml:"position"`
	Region   bool    `yaml:"region,omitempty"`
	End      float64 `yaml:"end,omitempty"`
}

// Load builds a Host from YAML project fixture data.
func Load(r io.Reader) (*Host, error) {
	var p Project
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	return Build(p), nil
}

// LoadFile is Load for a file path.
func LoadFile(path string) (*Host, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Build assembles a Host from a parsed Project.
func Build(p Project) *Host {
	h := New()
	h.SetTempo(p.Tempo, p.TimeSig)
	for _, pt := range p.Tracks {
		i := h.AddTrack(pt.Name)
		t := h.tracks[i]
		t.Muted = pt.Muted
		t.Soloed = pt.Soloed
		t.Armed = pt.Armed
		if pt.Volume != nil {
			t.Volume = *pt.Volume
		}
		t.Pan = pt.Pan
		for _, it := range pt.Items {
			h.AddItem(i, it.Name, it.Position, it.Length)
		}
	}
	for _, m := range p.Markers {
		if m.Region {
			h.AddRegion(m.Name, m.Position, m.End)
		} else {
			h.AddMarker(m.Name, m.Position)
		}
	}
	return h
}

// Demo returns the canned session used when no project file is given.
func Demo() *Host {
	h := New()
	drums := h.AddTrack("Drums")
	h.AddItem(drums, "Drums take 1", 0, 8)
	h.AddItem(drums, "Drums take 2", 8, 8)
	bass := h.AddTrack("Bass")
	h.AddItem(bass, "Bass groove", 0, 16)
	vox := h.AddTrack("Vox")
	h.AddItem(vox, "Verse vocal", 8, 8)
	h.AddItem(vox, "Chorus vocal", 16, 8)
	h.AddMarker("Intro", 0)
	h.AddMarker("Verse", 8)
	h.AddRegion("Chorus", 16, 24)
	h.TouchTrack(drums)
	return h
}

// TrackState is one track in a state snapshot.
type TrackState struct {
	Number int    `yaml:"number"           json:"number"`
	Name   string `yaml:"name"             json:"name"`
	Muted  bool   `yaml:"muted,omitempty"  json:"muted,omitempty"`
	Soloed bool   `yaml:"soloed,omitempty" json:"soloed,omitempty"`
	Armed  bool   `yaml:"armed,omitempty"  json:"armed,omitempty"`
	Volume string `yaml:"volume"           json:"volume"`
	Pan    string `yaml:"pan"              json:"pan"`
	Items  int    `yaml:"items"            json:"items"`
}

// State is a serializable snapshot of the simulated session.
type State struct {
	Cursor    string        `yaml:"cursor"             json:"cursor"`
	PlayState string        `yaml:"play_state"         json:"play_state"`
	Touched   string        `yaml:"touched,omitempty"  json:"touched,omitempty"`
	Tracks    []TrackState  `yaml:"tracks"             json:"tracks"`
	Markers   []host.Marker `yaml:"markers,omitempty"  json:"markers,omitempty"`
}

// Snapshot captures the current session state for display.
func (h *Host) Snapshot() State {
	s := State{
		Cursor:    h.FormatTime(h.cursor),
		PlayState: h.state.String(),
		Markers:   append([]host.Marker(nil), h.markers...),
	}
	if h.touchedOK {
		if name, ok := h.TrackName(h.touched); ok {
			s.Touched = name
		}
	}
	for i, t := range h.tracks {
		s.Tracks = append(s.Tracks, TrackState{
			Number: i + 1,
			Name:   t.Name,
			Muted:  t.Muted,
			Soloed: t.Soloed,
			Armed:  t.Armed,
			Volume: h.FormatVolume(t.Volume),
			Pan:    h.FormatPan(t.Pan),
			Items:  len(t.Items),
		})
	}
	return s
}
