// Package sim provides an in-memory host implementation with a small
// project model: tracks, items, markers, a cursor, and a transport. It
// backs unit tests, the simulate command, and the serve tools, so bridge
// behavior can be exercised without a live host process.
package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/reavox/reavox/internal/host"
)

// Track is one simulated track.
type Track struct {
	Name   string
	Muted  bool
	Soloed bool
	Armed  bool
	Volume float64 // linear gain, 1.0 = 0 dB
	Pan    float64 // -1 full left .. 1 full right
	Items  []Item
}

// Item is one media item on a track.
type Item struct {
	Name     string
	Position float64
	Length   float64
}

// Registration records one RegisterAction call, in call order.
type Registration struct {
	Section     int
	ID          string
	DisplayName string
	Accel       host.Accel
	Handle      int
}

// Host is the simulated host. Like the live dispatch path it models, it is
// not safe for concurrent use; concurrent layers serialize around it.
type Host struct {
	tracks []*Track
	master Track

	touched   int
	touchedOK bool

	selTrack int
	selItem  int
	selOK    bool

	cursor  float64
	playPos float64
	state   host.PlayState

	tempo   float64
	timeSig int

	markers    []host.Marker
	nextMarker int

	undo []string
	redo []string

	toggles map[int]bool
	native  map[int]func()

	nextHandle    int
	registrations []Registration
}

// New returns an empty project at 120 BPM in 4/4.
func New() *Host {
	h := &Host{
		master:     Track{Name: "Master", Volume: 1},
		tempo:      120,
		timeSig:    4,
		toggles:    make(map[int]bool),
		nextHandle: 50000,
	}
	h.native = map[int]func(){
		host.NativePlayStop: func() {
			if h.state == host.Playing || h.state == host.Recording {
				h.state = host.Stopped
				h.playPos = h.cursor
			} else {
				h.state = host.Playing
				h.playPos = h.cursor
			}
		},
		host.NativeRecord: func() {
			if h.state == host.Recording {
				h.state = host.Stopped
				h.playPos = h.cursor
			} else {
				h.state = host.Recording
				h.playPos = h.cursor
			}
		},
		host.NativeToggleRepeat: func() {
			h.toggles[host.NativeToggleRepeat] = !h.toggles[host.NativeToggleRepeat]
		},
	}
	return h
}

// AddTrack appends a track at unity volume and returns its index.
func (h *Host) AddTrack(name string) int {
	h.tracks = append(h.tracks, &Track{Name: name, Volume: 1})
	return len(h.tracks) - 1
}

// AddItem appends an item to a track.
func (h *Host) AddItem(track int, name string, pos, length float64) {
	if t, ok := h.trackAt(track); ok {
		t.Items = append(t.Items, Item{Name: name, Position: pos, Length: length})
	}
}

// AddMarker inserts a marker in timeline order. Marker numbers follow
// insertion order, as host marker ids do.
func (h *Host) AddMarker(name string, pos float64) {
	h.insertMarker(host.Marker{Name: name, Position: pos})
}

// AddRegion inserts a region in timeline order.
func (h *Host) AddRegion(name string, pos, end float64) {
	h.insertMarker(host.Marker{Name: name, Position: pos, IsRegion: true, End: end})
}

func (h *Host) insertMarker(m host.Marker) {
	h.nextMarker++
	m.Index = h.nextMarker
	h.markers = append(h.markers, m)
	sort.SliceStable(h.markers, func(i, j int) bool {
		return h.markers[i].Position < h.markers[j].Position
	})
}

// SetTempo sets the project tempo and beats per measure.
func (h *Host) SetTempo(bpm float64, beatsPerMeasure int) {
	if bpm > 0 {
		h.tempo = bpm
	}
	if beatsPerMeasure > 0 {
		h.timeSig = beatsPerMeasure
	}
}

// RenameTrack changes a track name in place.
func (h *Host) RenameTrack(track int, name string) {
	if t, ok := h.trackAt(track); ok {
		t.Name = name
	}
}

// PushUndo records an undoable action label, clearing the redo stack.
func (h *Host) PushUndo(label string) {
	h.undo = append(h.undo, label)
	h.redo = nil
}

// SetToggle sets the reported state of a native toggle action.
func (h *Host) SetToggle(commandID int, on bool) {
	h.toggles[commandID] = on
}

// AdvancePlay moves the play cursor forward while the transport runs.
func (h *Host) AdvancePlay(seconds float64) {
	if h.state == host.Playing || h.state == host.Recording {
		h.playPos += seconds
	}
}

// Registrations returns every RegisterAction call seen, in call order.
func (h *Host) Registrations() []Registration {
	out := make([]Registration, len(h.registrations))
	copy(out, h.registrations)
	return out
}

func (h *Host) trackAt(track int) (*Track, bool) {
	if track == host.MasterTrack {
		return &h.master, true
	}
	if track < 0 || track >= len(h.tracks) {
		return nil, false
	}
	return h.tracks[track], true
}

// host.API implementation.

func (h *Host) RegisterAction(section int, id, displayName string, accel host.Accel) (int, error) {
	if id == "" {
		return 0, fmt.Errorf("register action: empty id")
	}
	h.nextHandle++
	reg := Registration{Section: section, ID: id, DisplayName: displayName, Accel: accel, Handle: h.nextHandle}
	h.registrations = append(h.registrations, reg)
	return reg.Handle, nil
}

func (h *Host) MainWindow() uintptr { return 0 }

func (h *Host) TrackCount() int { return len(h.tracks) }

func (h *Host) TrackName(track int) (string, bool) {
	t, ok := h.trackAt(track)
	if !ok {
		return "", false
	}
	return t.Name, true
}

func (h *Host) LastTouchedTrack() (int, bool) {
	return h.touched, h.touchedOK
}

func (h *Host) TouchTrack(track int) {
	if _, ok := h.trackAt(track); !ok {
		return
	}
	h.touched = track
	h.touchedOK = true
}

func (h *Host) TrackMuted(track int) bool {
	t, ok := h.trackAt(track)
	return ok && t.Muted
}

func (h *Host) SetTrackMuted(track int, muted bool) {
	if t, ok := h.trackAt(track); ok {
		t.Muted = muted
	}
}

func (h *Host) TrackSoloed(track int) bool {
	t, ok := h.trackAt(track)
	return ok && t.Soloed
}

func (h *Host) SetTrackSoloed(track int, soloed bool) {
	if t, ok := h.trackAt(track); ok {
		t.Soloed = soloed
	}
}

func (h *Host) TrackArmed(track int) bool {
	t, ok := h.trackAt(track)
	return ok && t.Armed
}

func (h *Host) SetTrackArmed(track int, armed bool) {
	if t, ok := h.trackAt(track); ok {
		t.Armed = armed
	}
}

func (h *Host) TrackVolume(track int) float64 {
	if t, ok := h.trackAt(track); ok {
		return t.Volume
	}
	return 0
}

func (h *Host) SetTrackVolume(track int, vol float64) {
	if t, ok := h.trackAt(track); ok {
		t.Volume = math.Max(vol, 0)
	}
}

func (h *Host) TrackPan(track int) float64 {
	if t, ok := h.trackAt(track); ok {
		return t.Pan
	}
	return 0
}

func (h *Host) SetTrackPan(track int, pan float64) {
	if t, ok := h.trackAt(track); ok {
		t.Pan = math.Max(-1, math.Min(1, pan))
	}
}

func (h *Host) FormatVolume(vol float64) string {
	if vol <= 0 {
		return "-inf dB"
	}
	db := 20 * math.Log10(vol)
	if math.Abs(db) < 0.005 {
		db = 0 // keep "-0.00" out of announcements
	}
	return fmt.Sprintf("%.2f dB", db)
}

func (h *Host) FormatPan(pan float64) string {
	p := int(math.Round(pan * 100))
	switch {
	case p == 0:
		return "center"
	case p < 0:
		return fmt.Sprintf("%d%%L", -p)
	default:
		return fmt.Sprintf("%d%%R", p)
	}
}

func (h *Host) ItemCount(track int) int {
	if t, ok := h.trackAt(track); ok {
		return len(t.Items)
	}
	return 0
}

func (h *Host) ItemName(track, item int) (string, bool) {
	t, ok := h.trackAt(track)
	if !ok || item < 0 || item >= len(t.Items) {
		return "", false
	}
	return t.Items[item].Name, true
}

func (h *Host) ItemPosition(track, item int) (float64, bool) {
	t, ok := h.trackAt(track)
	if !ok || item < 0 || item >= len(t.Items) {
		return 0, false
	}
	return t.Items[item].Position, true
}

func (h *Host) ItemLength(track, item int) (float64, bool) {
	t, ok := h.trackAt(track)
	if !ok || item < 0 || item >= len(t.Items) {
		return 0, false
	}
	return t.Items[item].Length, true
}

func (h *Host) SelectedItem() (int, int, bool) {
	return h.selTrack, h.selItem, h.selOK
}

func (h *Host) SelectItem(track, item int) {
	t, ok := h.trackAt(track)
	if !ok || item < 0 || item >= len(t.Items) {
		return
	}
	h.selTrack = track
	h.selItem = item
	h.selOK = true
}

func (h *Host) CursorPosition() float64 { return h.cursor }

func (h *Host) SetCursorPosition(pos float64) {
	h.cursor = math.Max(pos, 0)
}

func (h *Host) PlayPosition() float64 { return h.playPos }

func (h *Host) PlayState() host.PlayState { return h.state }

func (h *Host) TimeToBeats(pos float64) (int, float64) {
	beatLen := 60 / h.tempo
	totalBeats := pos / beatLen
	measure := int(totalBeats) / h.timeSig
	return measure, totalBeats - float64(measure*h.timeSig)
}

func (h *Host) BeatsToTime(measure int, beat float64) float64 {
	beatLen := 60 / h.tempo
	return (float64(measure*h.timeSig) + beat) * beatLen
}

func (h *Host) TimeSignature(pos float64) int { return h.timeSig }

func (h *Host) FormatTime(pos float64) string {
	measure, beat := h.TimeToBeats(pos)
	whole := math.Floor(beat)
	if beat-whole < 0.005 {
		return fmt.Sprintf("bar %d beat %d", measure+1, int(whole)+1)
	}
	return fmt.Sprintf("bar %d beat %.1f", measure+1, beat+1)
}

func (h *Host) MarkerCount() int { return len(h.markers) }

func (h *Host) Marker(i int) (host.Marker, bool) {
	if i < 0 || i >= len(h.markers) {
		return host.Marker{}, false
	}
	return h.markers[i], true
}

func (h *Host) InvokeAction(commandID int) {
	if fn, ok := h.native[commandID]; ok {
		fn()
	}
}

func (h *Host) ToggleState(commandID int) (bool, bool) {
	on, known := h.toggles[commandID]
	return on, known
}

func (h *Host) UndoLabel() (string, bool) {
	if len(h.undo) == 0 {
		return "", false
	}
	return h.undo[len(h.undo)-1], true
}

func (h *Host) RedoLabel() (string, bool) {
	if len(h.redo) == 0 {
		return "", false
	}
	return h.redo[len(h.redo)-1], true
}

func (h *Host) Undo() bool {
	if len(h.undo) == 0 {
		return false
	}
	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, last)
	return true
}

func (h *Host) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, last)
	return true
}
