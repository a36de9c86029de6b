package focus

import (
	"reflect"
	"testing"
)

type recordingAnnouncer struct {
	got []Description
}

func (r *recordingAnnouncer) Announce(d Description) {
	r.got = append(r.got, d)
}

func TestTracker_StartsAtNone(t *testing.T) {
	tr := NewTracker(&recordingAnnouncer{})
	if got := tr.Current(); got != None {
		t.Errorf("Current() = %v, want None", got)
	}
}

func TestSet_AnnouncesChange(t *testing.T) {
	rec := &recordingAnnouncer{}
	tr := NewTracker(rec)

	tr.Set(Track, Description{Role: "track", Name: "Drums"})

	if got := tr.Current(); got != Track {
		t.Errorf("Current() = %v, want Track", got)
	}
	if len(rec.got) != 1 || rec.got[0].Name != "Drums" {
		t.Errorf("announcements = %v, want single %q", rec.got, "Drums")
	}
}

func TestSet_RepeatedIdenticalSetAnnouncesOnce(t *testing.T) {
	rec := &recordingAnnouncer{}
	tr := NewTracker(rec)
	d := Description{Role: "track", Name: "Drums"}

	tr.Set(Track, d)
	tr.Set(Track, d)

	if len(rec.got) != 1 {
		t.Errorf("got %d announcements, want 1", len(rec.got))
	}
}

func TestSet_DistinctDescriptionsKeepOrder(t *testing.T) {
	rec := &recordingAnnouncer{}
	tr := NewTracker(rec)
	d1 := Description{Role: "track", Name: "Drums"}
	d2 := Description{Role: "track", Name: "Bass"}
	d3 := Description{Role: "track", Name: "Vox"}

	tr.Set(Track, d1)
	tr.Set(Track, d2)
	tr.Set(Track, d3)

	want := []Description{d1, d2, d3}
	if !reflect.DeepEqual(rec.got, want) {
		t.Errorf("announcements = %v, want %v", rec.got, want)
	}
}

func TestSet_SameKindNewDetailAnnounces(t *testing.T) {
	rec := &recordingAnnouncer{}
	tr := NewTracker(rec)

	tr.Set(Track, Description{Role: "track", Name: "Drums"})
	tr.Set(Track, Description{Role: "track", Name: "Drums", Detail: "muted"})

	if len(rec.got) != 2 {
		t.Errorf("got %d announcements, want 2", len(rec.got))
	}
}

func TestSet_ReturningToKindAnnouncesAgain(t *testing.T) {
	rec := &recordingAnnouncer{}
	tr := NewTracker(rec)
	d := Description{Role: "track", Name: "Drums"}

	tr.Set(Track, d)
	tr.Set(Item, Description{Role: "item", Name: "Take 1"})
	tr.Set(Track, d)

	// Moving away and back is a real transition the user should hear.
	if len(rec.got) != 3 {
		t.Errorf("got %d announcements, want 3", len(rec.got))
	}
	if got := tr.Current(); got != Track {
		t.Errorf("Current() = %v, want Track", got)
	}
}

func TestSet_NoneIsReachable(t *testing.T) {
	rec := &recordingAnnouncer{}
	tr := NewTracker(rec)

	tr.Set(Track, Description{Role: "track", Name: "Drums"})
	tr.Set(None, Description{Name: "no selection"})

	if got := tr.Current(); got != None {
		t.Errorf("Current() = %v, want None", got)
	}
	if len(rec.got) != 2 {
		t.Errorf("got %d announcements, want 2", len(rec.got))
	}
}

func TestSet_NilAnnouncerDropsQuietly(t *testing.T) {
	tr := NewTracker(nil)
	tr.Set(Ruler, Description{Role: "ruler", Name: "bar 5"})
	if got := tr.Current(); got != Ruler {
		t.Errorf("Current() = %v, want Ruler", got)
	}
}

func TestDescription_Text(t *testing.T) {
	tests := []struct {
		desc Description
		want string
	}{
		{Description{Name: "Drums"}, "Drums"},
		{Description{Name: "Drums", Detail: "muted"}, "Drums muted"},
		{Description{Role: "ruler", Name: "bar 5 beat 1"}, "bar 5 beat 1"},
	}
	for _, tt := range tests {
		if got := tt.desc.Text(); got != tt.want {
			t.Errorf("Text() = %q, want %q", got, tt.want)
		}
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{None, "none"},
		{Track, "track"},
		{Item, "item"},
		{Ruler, "ruler"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
