package actions

import (
	"reflect"
	"testing"

	"github.com/reavox/reavox/internal/focus"
	"github.com/reavox/reavox/internal/host/sim"
)

func TestNextItem_WalksTouchedTrack(t *testing.T) {
	h := sim.Demo()
	ctx, rec := newCtx(h)
	set := DefaultSettings()

	run(t, nextItem(set), ctx)
	run(t, nextItem(set), ctx)
	run(t, nextItem(set), ctx) // clamps at the last take, same description

	want := []string{
		"Drums take 1 bar 1 beat 1",
		"Drums take 2 bar 5 beat 1",
	}
	if got := rec.Texts(); !reflect.DeepEqual(got, want) {
		t.Errorf("announcements = %v, want %v", got, want)
	}
	if got := ctx.Focus.Current(); got != focus.Item {
		t.Errorf("Current() = %v, want Item", got)
	}
	track, item, ok := h.SelectedItem()
	if !ok || track != 0 || item != 1 {
		t.Errorf("SelectedItem() = (%d, %d, %v), want (0, 1, true)", track, item, ok)
	}
}

func TestPrevItem_StartsAtFirstWhenNothingSelected(t *testing.T) {
	h := sim.Demo()
	ctx, rec := newCtx(h)

	run(t, prevItem(DefaultSettings()), ctx)

	if got := rec.Texts(); len(got) != 1 || got[0] != "Drums take 1 bar 1 beat 1" {
		t.Errorf("announcements = %v, want [Drums take 1 bar 1 beat 1]", got)
	}
}

func TestPrevItem_StepsBackAndClamps(t *testing.T) {
	h := sim.Demo()
	h.SelectItem(0, 1)
	ctx, rec := newCtx(h)
	set := DefaultSettings()

	run(t, prevItem(set), ctx)
	run(t, prevItem(set), ctx)

	if got := rec.Texts(); len(got) != 1 || got[0] != "Drums take 1 bar 1 beat 1" {
		t.Errorf("announcements = %v, want exactly [Drums take 1 bar 1 beat 1]", got)
	}
}

func TestItemStep_TouchingAnotherTrackRestartsAtFirst(t *testing.T) {
	h := sim.Demo()
	ctx, rec := newCtx(h)
	set := DefaultSettings()

	run(t, nextItem(set), ctx)
	h.TouchTrack(2)
	run(t, nextItem(set), ctx)

	want := []string{
		"Drums take 1 bar 1 beat 1",
		"Verse vocal bar 5 beat 1",
	}
	if got := rec.Texts(); !reflect.DeepEqual(got, want) {
		t.Errorf("announcements = %v, want %v", got, want)
	}
}

func TestItemStep_QuietWithoutItemsOrTrack(t *testing.T) {
	h := sim.New()
	h.AddTrack("Empty")
	ctx, rec := newCtx(h)
	set := DefaultSettings()

	run(t, nextItem(set), ctx) // nothing touched yet
	h.TouchTrack(0)
	run(t, nextItem(set), ctx) // touched track has no items

	if rec.Len() != 0 {
		t.Errorf("got %d announcements, want none", rec.Len())
	}
	if _, _, ok := h.SelectedItem(); ok {
		t.Error("item got selected on an empty track")
	}
}

func TestItemDescription_PositionGatedBySettings(t *testing.T) {
	h := sim.Demo()
	ctx, rec := newCtx(h)
	set := DefaultSettings()
	set.ReportPosition = false

	run(t, nextItem(set), ctx)

	if got := rec.Texts(); len(got) != 1 || got[0] != "Drums take 1" {
		t.Errorf("announcements = %v, want [Drums take 1]", got)
	}
}

func TestReportItem_AnnouncesPositionAndLength(t *testing.T) {
	h := sim.Demo()
	h.SelectItem(0, 0)
	ctx, rec := newCtx(h)

	run(t, reportItem(DefaultSettings()), ctx)

	want := "Drums take 1 bar 1 beat 1 length 16 beats"
	if got := rec.Texts(); len(got) != 1 || got[0] != want {
		t.Errorf("announcements = %v, want [%s]", got, want)
	}
	if got := ctx.Focus.Current(); got != focus.Item {
		t.Errorf("Current() = %v, want Item", got)
	}
}

func TestReportItem_NothingSelected(t *testing.T) {
	h := sim.Demo()
	ctx, rec := newCtx(h)

	run(t, reportItem(DefaultSettings()), ctx)

	if got := rec.Texts(); len(got) != 1 || got[0] != "no item selected" {
		t.Errorf("announcements = %v, want [no item selected]", got)
	}
	if got := ctx.Focus.Current(); got != focus.None {
		t.Errorf("Current() = %v, want None", got)
	}
}
