package focus

// Announcer receives one announcement per accepted focus change. Delivery
// problems are absorbed by the implementation; Announce always returns
// normally.
type Announcer interface {
	Announce(Description)
}

// Tracker owns the fake focus value. All mutation funnels through Set, so
// every transition is attributable to the command that caused it.
//
// Not safe for concurrent use: the host delivers invocations one at a time
// on its UI thread. Layers that are inherently concurrent must serialize
// around the whole dispatch path.
type Tracker struct {
	announcer Announcer
	current   Kind
	last      map[Kind]Description
}

// NewTracker returns a Tracker starting at None. A nil announcer drops
// announcements.
func NewTracker(a Announcer) *Tracker {
	return &Tracker{announcer: a, last: make(map[Kind]Description)}
}

// Current returns the focus value as last set. No side effects.
func (t *Tracker) Current() Kind { return t.current }

// Set records newFocus as current and forwards desc to the announcer
// synchronously, before returning. Re-asserting the current kind with a
// description identical to the last one emitted for that kind is a no-op,
// so handlers can set focus unconditionally without producing duplicate
// announcements. There is no unset; None is set like any other kind.
func (t *Tracker) Set(newFocus Kind, desc Description) {
	if newFocus == t.current {
		if prev, ok := t.last[newFocus]; ok && prev == desc {
			return
		}
	}
	t.current = newFocus
	t.last[newFocus] = desc
	if t.announcer != nil {
		t.announcer.Announce(desc)
	}
}

// LastAnnounced returns the most recent description emitted for k, if any.
func (t *Tracker) LastAnnounced(k Kind) (Description, bool) {
	d, ok := t.last[k]
	return d, ok
}
