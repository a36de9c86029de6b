// Package focus tracks the bridge's fake focus: the process-wide belief
// about which part of the host's custom UI the user is working in. The host
// draws its own widgets, so the OS accessibility layer cannot observe focus
// on its own; every announcement downstream derives from this value.
package focus

// Kind enumerates what can hold the fake focus. It is independent of the
// host's selection state, which does not always match what the user is
// currently interacting with.
type Kind int

const (
	None Kind = iota
	Track
	Item
	Ruler
)

var kindNames = map[Kind]string{
	None:  "none",
	Track: "track",
	Item:  "item",
	Ruler: "ruler",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Description carries what the screen reader should say for one focus
// transition. Values are ephemeral: a handler produces one, the announcer
// consumes it, neither side keeps it.
type Description struct {
	Role   string `yaml:"role,omitempty"   json:"role,omitempty"`
	Name   string `yaml:"name"             json:"name"`
	Detail string `yaml:"detail,omitempty" json:"detail,omitempty"`
}

// Text returns the spoken form of the description.
func (d Description) Text() string {
	if d.Detail == "" {
		return d.Name
	}
	return d.Name + " " + d.Detail
}
