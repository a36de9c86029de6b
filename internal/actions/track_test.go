package actions

import (
	"reflect"
	"testing"

	"github.com/reavox/reavox/internal/focus"
	"github.com/reavox/reavox/internal/host"
	"github.com/reavox/reavox/internal/host/sim"
)

func threeTracks() *sim.Host {
	h := sim.New()
	h.AddTrack("Drums")
	h.AddTrack("Bass")
	h.AddTrack("Vox")
	return h
}

func TestNextTrack_MovesAndAnnounces(t *testing.T) {
	h := threeTracks()
	ctx, rec := newCtx(h)
	set := DefaultSettings()

	run(t, nextTrack(set), ctx)
	run(t, nextTrack(set), ctx)

	want := []string{"1 Drums", "2 Bass"}
	if got := rec.Texts(); !reflect.DeepEqual(got, want) {
		t.Errorf("announcements = %v, want %v", got, want)
	}
	if got := ctx.Focus.Current(); got != focus.Track {
		t.Errorf("Current() = %v, want Track", got)
	}
	if got, _ := h.LastTouchedTrack(); got != 1 {
		t.Errorf("touched track = %d, want 1", got)
	}
}

func TestNextTrack_ClampsQuietlyAtLastTrack(t *testing.T) {
	h := threeTracks()
	h.TouchTrack(2)
	ctx, rec := newCtx(h)
	set := DefaultSettings()

	run(t, nextTrack(set), ctx)
	run(t, nextTrack(set), ctx)

	// The second call re-asserts the same focus; idempotence keeps it to
	// one announcement.
	if got := rec.Texts(); len(got) != 1 || got[0] != "3 Vox" {
		t.Errorf("announcements = %v, want exactly [3 Vox]", got)
	}
}

func TestNextTrack_NoTracks(t *testing.T) {
	ctx, rec := newCtx(sim.New())

	run(t, nextTrack(DefaultSettings()), ctx)

	if got := ctx.Focus.Current(); got != focus.None {
		t.Errorf("Current() = %v, want None", got)
	}
	if got := rec.Texts(); len(got) != 1 || got[0] != "no tracks" {
		t.Errorf("announcements = %v, want [no tracks]", got)
	}
}

func TestPrevTrack_StopsAtFirst(t *testing.T) {
	h := threeTracks()
	h.TouchTrack(1)
	ctx, rec := newCtx(h)
	set := DefaultSettings()

	run(t, prevTrack(set), ctx)
	run(t, prevTrack(set), ctx)

	if got := rec.Texts(); len(got) != 1 || got[0] != "1 Drums" {
		t.Errorf("announcements = %v, want exactly [1 Drums]", got)
	}
}

func TestMasterTrack_NavigationAndReturn(t *testing.T) {
	h := threeTracks()
	ctx, rec := newCtx(h)
	set := DefaultSettings()

	run(t, gotoMaster(set), ctx)
	if got, _ := h.LastTouchedTrack(); got != host.MasterTrack {
		t.Fatalf("touched = %d, want master", got)
	}
	run(t, prevTrack(set), ctx) // stays on master
	run(t, nextTrack(set), ctx) // leaves master onto track 1

	want := []string{"Master", "1 Drums"}
	if got := rec.Texts(); !reflect.DeepEqual(got, want) {
		t.Errorf("announcements = %v, want %v", got, want)
	}
}

func TestReportTrack_NoSelection(t *testing.T) {
	ctx, rec := newCtx(threeTracks())

	run(t, reportTrack(DefaultSettings()), ctx)

	if got := ctx.Focus.Current(); got != focus.None {
		t.Errorf("Current() = %v, want None", got)
	}
	if got := rec.Texts(); len(got) != 1 || got[0] != "no track selected" {
		t.Errorf("announcements = %v, want [no track selected]", got)
	}
}

func TestTrackDescription_StateAndSettings(t *testing.T) {
	h := threeTracks()
	h.SetTrackMuted(1, true)
	h.SetTrackArmed(1, true)
	h.TouchTrack(1)

	ctx, rec := newCtx(h)
	run(t, reportTrack(DefaultSettings()), ctx)
	if got := rec.Texts(); len(got) != 1 || got[0] != "2 Bass muted armed" {
		t.Errorf("announcements = %v, want [2 Bass muted armed]", got)
	}

	// Numbers and state off: bare name.
	ctx2, rec2 := newCtx(h)
	run(t, reportTrack(Settings{}), ctx2)
	if got := rec2.Texts(); len(got) != 1 || got[0] != "Bass" {
		t.Errorf("announcements = %v, want [Bass]", got)
	}
}

func TestToggleMute_AnnouncesEachFlip(t *testing.T) {
	h := threeTracks()
	h.TouchTrack(0)
	ctx, rec := newCtx(h)
	set := DefaultSettings()

	run(t, toggleMute(set), ctx)
	if !h.TrackMuted(0) {
		t.Error("track not muted after toggle")
	}
	run(t, toggleMute(set), ctx)
	if h.TrackMuted(0) {
		t.Error("track still muted after second toggle")
	}

	want := []string{"1 Drums muted", "1 Drums unmuted"}
	if got := rec.Texts(); !reflect.DeepEqual(got, want) {
		t.Errorf("announcements = %v, want %v", got, want)
	}
}

func TestToggleSoloAndArm(t *testing.T) {
	h := threeTracks()
	h.TouchTrack(2)
	ctx, rec := newCtx(h)
	set := DefaultSettings()

	run(t, toggleSolo(set), ctx)
	run(t, toggleArm(set), ctx)

	if !h.TrackSoloed(2) || !h.TrackArmed(2) {
		t.Error("solo or arm not applied")
	}
	want := []string{"3 Vox soloed", "3 Vox armed"}
	if got := rec.Texts(); !reflect.DeepEqual(got, want) {
		t.Errorf("announcements = %v, want %v", got, want)
	}
}

func TestToggleMute_NoTouchedTrackIsQuiet(t *testing.T) {
	ctx, rec := newCtx(threeTracks())
	run(t, toggleMute(DefaultSettings()), ctx)
	if rec.Len() != 0 {
		t.Errorf("got %d announcements, want none", rec.Len())
	}
}

func TestNudgeVolume_AnnouncesHostFormattedValue(t *testing.T) {
	h := threeTracks()
	h.TouchTrack(0)
	ctx, rec := newCtx(h)

	run(t, nudgeVolume(+1), ctx)
	run(t, nudgeVolume(-1), ctx)

	want := []string{"1.00 dB", "0.00 dB"}
	if got := rec.Texts(); !reflect.DeepEqual(got, want) {
		t.Errorf("announcements = %v, want %v", got, want)
	}
}

func TestNudgePan_AnnouncesHostFormattedValue(t *testing.T) {
	h := threeTracks()
	h.TouchTrack(0)
	ctx, rec := newCtx(h)

	run(t, nudgePan(+0.05), ctx)
	run(t, nudgePan(+0.05), ctx)
	run(t, nudgePan(-0.10), ctx)

	want := []string{"5%R", "10%R", "center"}
	if got := rec.Texts(); !reflect.DeepEqual(got, want) {
		t.Errorf("announcements = %v, want %v", got, want)
	}
}
