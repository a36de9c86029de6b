package actions

import (
	"fmt"
	"math"

	"github.com/reavox/reavox/internal/command"
	"github.com/reavox/reavox/internal/focus"
)

// itemDescription covers one item gaining focus: take name plus position
// when position reporting is on.
func itemDescription(ctx *command.Context, set Settings, track, item int) focus.Description {
	name, ok := ctx.Host.ItemName(track, item)
	if !ok {
		return focus.Description{Role: "item", Name: "unknown item"}
	}
	d := focus.Description{Role: "item", Name: name}
	if set.ReportPosition {
		if pos, ok := ctx.Host.ItemPosition(track, item); ok {
			d.Detail = ctx.Host.FormatTime(pos)
		}
	}
	return d
}

func nextItem(set Settings) command.Handler {
	return itemStep(set, +1)
}

func prevItem(set Settings) command.Handler {
	return itemStep(set, -1)
}

func reportItem(set Settings) command.Handler {
	return func(ctx *command.Context) error {
		track, item, ok := ctx.Host.SelectedItem()
		if !ok {
			ctx.Focus.Set(focus.None, focus.Description{Name: "no item selected"})
			return nil
		}
		d := itemDescription(ctx, set, track, item)
		if length, ok := ctx.Host.ItemLength(track, item); ok && length > 0 {
			detail := "length " + beatCount(ctx, length)
			if d.Detail != "" {
				detail = d.Detail + " " + detail
			}
			d.Detail = detail
		}
		ctx.Focus.Set(focus.Item, d)
		return nil
	}
}

// beatCount renders a duration in beats at the project tempo.
func beatCount(ctx *command.Context, seconds float64) string {
	beatLen := ctx.Host.BeatsToTime(0, 1)
	if beatLen <= 0 {
		return fmt.Sprintf("%.4g seconds", seconds)
	}
	beats := seconds / beatLen
	if math.Abs(beats-1) < 0.005 {
		return "1 beat"
	}
	return fmt.Sprintf("%.4g beats", beats)
}

// itemStep moves the item selection along the touched track, starting at
// the first item when nothing on that track is selected yet.
func itemStep(set Settings, dir int) command.Handler {
	return func(ctx *command.Context) error {
		track, ok := ctx.Host.LastTouchedTrack()
		if !ok {
			return nil
		}
		count := ctx.Host.ItemCount(track)
		if count == 0 {
			return nil
		}
		target := 0
		if selTrack, selItem, selOK := ctx.Host.SelectedItem(); selOK && selTrack == track {
			target = selItem + dir
			if target < 0 {
				target = 0
			}
			if target >= count {
				target = count - 1
			}
		}
		ctx.Host.SelectItem(track, target)
		ctx.Focus.Set(focus.Item, itemDescription(ctx, set, track, target))
		return nil
	}
}
