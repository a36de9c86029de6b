package actions

import (
	"math"

	"github.com/reavox/reavox/internal/command"
	"github.com/reavox/reavox/internal/focus"
	"github.com/reavox/reavox/internal/host"
)

// moveCursor relocates the edit cursor and announces the new position.
func moveCursor(ctx *command.Context, pos float64) {
	ctx.Host.SetCursorPosition(pos)
	at := ctx.Host.CursorPosition()
	ctx.Focus.Set(focus.Ruler, focus.Description{Role: "ruler", Name: ctx.Host.FormatTime(at)})
}

func nextMeasure() command.Handler {
	return func(ctx *command.Context) error {
		measure, _ := ctx.Host.TimeToBeats(ctx.Host.CursorPosition())
		moveCursor(ctx, ctx.Host.BeatsToTime(measure+1, 0))
		return nil
	}
}

func prevMeasure() command.Handler {
	return func(ctx *command.Context) error {
		measure, beat := ctx.Host.TimeToBeats(ctx.Host.CursorPosition())
		if beat == 0 && measure > 0 {
			measure--
		}
		moveCursor(ctx, ctx.Host.BeatsToTime(measure, 0))
		return nil
	}
}

func nextBeat() command.Handler {
	return func(ctx *command.Context) error {
		measure, beat := ctx.Host.TimeToBeats(ctx.Host.CursorPosition())
		moveCursor(ctx, ctx.Host.BeatsToTime(measure, math.Floor(beat)+1))
		return nil
	}
}

func prevBeat() command.Handler {
	return func(ctx *command.Context) error {
		pos := ctx.Host.CursorPosition()
		measure, beat := ctx.Host.TimeToBeats(pos)
		whole := math.Floor(beat)
		switch {
		case beat > whole:
			// Mid-beat snaps back to the beat start.
		case whole > 0:
			whole--
		case measure > 0:
			sig := ctx.Host.TimeSignature(pos)
			moveCursor(ctx, ctx.Host.BeatsToTime(measure-1, float64(sig-1)))
			return nil
		}
		moveCursor(ctx, ctx.Host.BeatsToTime(measure, whole))
		return nil
	}
}

func reportPosition() command.Handler {
	return func(ctx *command.Context) error {
		pos := ctx.Host.CursorPosition()
		ctx.Focus.Set(focus.Ruler, focus.Description{Role: "ruler", Name: ctx.Host.FormatTime(pos)})
		return nil
	}
}

func nextMarker(set Settings) command.Handler {
	return markerStep(set, +1)
}

func prevMarker(set Settings) command.Handler {
	return markerStep(set, -1)
}

// markerStep jumps the cursor to the nearest marker in the given direction
// and announces it. No marker in that direction is a quiet no-op.
func markerStep(set Settings, dir int) command.Handler {
	const eps = 1e-9
	return func(ctx *command.Context) error {
		cursor := ctx.Host.CursorPosition()
		var found *host.Marker
		for i := 0; i < ctx.Host.MarkerCount(); i++ {
			m, _ := ctx.Host.Marker(i)
			if dir > 0 {
				if m.Position > cursor+eps {
					found = &m
					break
				}
			} else if m.Position < cursor-eps {
				found = &m
			}
		}
		if found == nil {
			return nil
		}
		ctx.Host.SetCursorPosition(found.Position)
		d := focus.Description{Role: "marker", Name: ctx.Host.FormatTime(found.Position)}
		if set.ReportMarkers {
			d.Name = found.Name
			if found.IsRegion {
				d.Name += " region"
			}
			if set.ReportPosition {
				d.Detail = ctx.Host.FormatTime(found.Position)
			}
		}
		ctx.Focus.Set(focus.Ruler, d)
		return nil
	}
}

func playStop(set Settings) command.Handler {
	return func(ctx *command.Context) error {
		ctx.Host.InvokeAction(host.NativePlayStop)
		d := focus.Description{Role: "transport", Name: ctx.Host.PlayState().String()}
		if set.ReportPosition {
			d.Detail = ctx.Host.FormatTime(ctx.Host.PlayPosition())
		}
		ctx.Focus.Set(ctx.Focus.Current(), d)
		return nil
	}
}

func record() command.Handler {
	return func(ctx *command.Context) error {
		ctx.Host.InvokeAction(host.NativeRecord)
		ctx.Focus.Set(ctx.Focus.Current(), focus.Description{Role: "transport", Name: ctx.Host.PlayState().String()})
		return nil
	}
}

func toggleRepeat() command.Handler {
	return func(ctx *command.Context) error {
		ctx.Host.InvokeAction(host.NativeToggleRepeat)
		word := "repeat off"
		if on, _ := ctx.Host.ToggleState(host.NativeToggleRepeat); on {
			word = "repeat on"
		}
		ctx.Focus.Set(ctx.Focus.Current(), focus.Description{Role: "transport", Name: word})
		return nil
	}
}
