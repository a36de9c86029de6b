package notify

import (
	"sync"
	"time"

	"github.com/reavox/reavox/internal/focus"
)

// Announcement is one recorded emission.
type Announcement struct {
	Seq  int       `yaml:"seq"            json:"seq"`
	At   time.Time `yaml:"at"             json:"at"`
	Role string    `yaml:"role,omitempty" json:"role,omitempty"`
	Text string    `yaml:"text"           json:"text"`
}

// Recorder keeps the most recent announcements in memory. It backs tests,
// the simulator, and the serve announcements tool. Unlike the core, the
// recorder may be read from tool goroutines, so it locks.
type Recorder struct {
	mu      sync.Mutex
	limit   int
	seq     int
	entries []Announcement
}

const defaultRecorderLimit = 256

// NewRecorder returns a Recorder that retains the latest limit
// announcements. A limit of 0 or less selects the default.
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = defaultRecorderLimit
	}
	return &Recorder{limit: limit}
}

func (r *Recorder) Announce(d focus.Description) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.entries = append(r.entries, Announcement{
		Seq:  r.seq,
		At:   time.Now(),
		Role: d.Role,
		Text: d.Text(),
	})
	if len(r.entries) > r.limit {
		r.entries = r.entries[len(r.entries)-r.limit:]
	}
}

// All returns the retained announcements, oldest first.
func (r *Recorder) All() []Announcement {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Announcement, len(r.entries))
	copy(out, r.entries)
	return out
}

// Texts returns just the spoken strings, oldest first.
func (r *Recorder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	for i, a := range r.entries {
		out[i] = a.Text
	}
	return out
}

// Last returns the most recent announcement.
func (r *Recorder) Last() (Announcement, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return Announcement{}, false
	}
	return r.entries[len(r.entries)-1], true
}

// Len reports how many announcements are retained.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Clear drops all retained announcements. The sequence counter keeps
// counting across clears.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
