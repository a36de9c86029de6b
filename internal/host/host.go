// Package host defines the surface the bridge needs from the application it
// runs inside. Handlers never touch host globals; they receive one API value
// and query everything fresh per invocation, which keeps them testable
// against the in-memory implementation in host/sim.
package host

// Accel is an accelerator binding in the host's native form: a modifier
// bitmask (Ctrl=1, Alt=2, Shift=4) plus a virtual key code. The host owns
// the interpretation; the bridge stores and forwards it.
type Accel struct {
	Mod uint8  `yaml:"mod" json:"mod"`
	Key uint16 `yaml:"key" json:"key"`
}

// IsZero reports whether no key is bound.
func (a Accel) IsZero() bool { return a.Mod == 0 && a.Key == 0 }

// PlayState is the host transport state.
type PlayState int

const (
	Stopped PlayState = iota
	Playing
	Paused
	Recording
)

var playStateNames = map[PlayState]string{
	Stopped:   "stopped",
	Playing:   "playing",
	Paused:    "paused",
	Recording: "recording",
}

func (s PlayState) String() string {
	if n, ok := playStateNames[s]; ok {
		return n
	}
	return "unknown"
}

// Marker is one project marker or region, in timeline order.
type Marker struct {
	Index    int     `yaml:"index"              json:"index"`
	Name     string  `yaml:"name"               json:"name"`
	Position float64 `yaml:"position"           json:"position"`
	IsRegion bool    `yaml:"region,omitempty"   json:"region,omitempty"`
	End      float64 `yaml:"end,omitempty"      json:"end,omitempty"`
}

// MasterTrack addresses the master track where a track index is expected.
const MasterTrack = -1

// Well-known native action ids, numbered as the host numbers them.
const (
	NativeRecord       = 1013
	NativeToggleRepeat = 1068
	NativePlayStop     = 40044
)

// API is the host capability surface handed to command handlers. It mirrors
// the slice of the host's action/query API the bridge needs and nothing
// more. Query methods return ok=false for indexes that do not resolve;
// mutators on unresolvable indexes are no-ops.
//
// Track indexes are 0-based. MasterTrack addresses the master.
type API interface {
	// RegisterAction adds one bridge command to the host's action system and
	// returns the numeric handle the host routes invocations with. Called
	// once per command at startup.
	RegisterAction(section int, id, displayName string, accel Accel) (handle int, err error)

	// MainWindow returns the host's top-level window handle, the anchor for
	// accessibility notifications.
	MainWindow() uintptr

	// Tracks.
	TrackCount() int
	TrackName(track int) (string, bool)
	LastTouchedTrack() (int, bool)
	TouchTrack(track int)
	TrackMuted(track int) bool
	SetTrackMuted(track int, muted bool)
	TrackSoloed(track int) bool
	SetTrackSoloed(track int, soloed bool)
	TrackArmed(track int) bool
	SetTrackArmed(track int, armed bool)
	TrackVolume(track int) float64
	SetTrackVolume(track int, vol float64)
	TrackPan(track int) float64
	SetTrackPan(track int, pan float64)
	FormatVolume(vol float64) string
	FormatPan(pan float64) string

	// Items. Item indexes are 0-based within their track.
	ItemCount(track int) int
	ItemName(track, item int) (string, bool)
	ItemPosition(track, item int) (float64, bool)
	ItemLength(track, item int) (float64, bool)
	SelectedItem() (track, item int, ok bool)
	SelectItem(track, item int)

	// Timeline. Positions are seconds from project start.
	CursorPosition() float64
	SetCursorPosition(pos float64)
	PlayPosition() float64
	PlayState() PlayState
	TimeToBeats(pos float64) (measure int, beat float64)
	BeatsToTime(measure int, beat float64) float64
	TimeSignature(pos float64) (beatsPerMeasure int)
	FormatTime(pos float64) string

	// Markers, in timeline order.
	MarkerCount() int
	Marker(i int) (Marker, bool)

	// Native actions and undo.
	InvokeAction(commandID int)
	ToggleState(commandID int) (on bool, known bool)
	UndoLabel() (string, bool)
	RedoLabel() (string, bool)
	Undo() bool
	Redo() bool
}
