package actions

import (
	"fmt"
	"math"
	"strings"

	"github.com/reavox/reavox/internal/command"
	"github.com/reavox/reavox/internal/focus"
	"github.com/reavox/reavox/internal/host"
)

// trackDescription says what a screen reader should hear when a track gains
// focus: number and name, plus any set state flags.
func trackDescription(ctx *command.Context, set Settings, track int) focus.Description {
	name, ok := ctx.Host.TrackName(track)
	if !ok {
		return focus.Description{Role: "track", Name: "unknown track"}
	}
	d := focus.Description{Role: "track", Name: name}
	if set.ReportTrackNumbers && track != host.MasterTrack {
		d.Name = fmt.Sprintf("%d %s", track+1, name)
	}
	if set.ReportTrackState {
		var state []string
		if ctx.Host.TrackMuted(track) {
			state = append(state, "muted")
		}
		if ctx.Host.TrackSoloed(track) {
			state = append(state, "soloed")
		}
		if ctx.Host.TrackArmed(track) {
			state = append(state, "armed")
		}
		d.Detail = strings.Join(state, " ")
	}
	return d
}

func nextTrack(set Settings) command.Handler {
	return func(ctx *command.Context) error {
		count := ctx.Host.TrackCount()
		if count == 0 {
			ctx.Focus.Set(focus.None, focus.Description{Name: "no tracks"})
			return nil
		}
		next := 0
		if cur, ok := ctx.Host.LastTouchedTrack(); ok && cur != host.MasterTrack {
			next = cur + 1
			if next >= count {
				next = count - 1
			}
		}
		ctx.Host.TouchTrack(next)
		ctx.Focus.Set(focus.Track, trackDescription(ctx, set, next))
		return nil
	}
}

func prevTrack(set Settings) command.Handler {
	return func(ctx *command.Context) error {
		count := ctx.Host.TrackCount()
		if count == 0 {
			ctx.Focus.Set(focus.None, focus.Description{Name: "no tracks"})
			return nil
		}
		prev := 0
		if cur, ok := ctx.Host.LastTouchedTrack(); ok {
			if cur == host.MasterTrack {
				prev = host.MasterTrack
			} else if cur > 0 {
				prev = cur - 1
			}
		}
		ctx.Host.TouchTrack(prev)
		ctx.Focus.Set(focus.Track, trackDescription(ctx, set, prev))
		return nil
	}
}

func gotoMaster(set Settings) command.Handler {
	return func(ctx *command.Context) error {
		ctx.Host.TouchTrack(host.MasterTrack)
		ctx.Focus.Set(focus.Track, trackDescription(ctx, set, host.MasterTrack))
		return nil
	}
}

func reportTrack(set Settings) command.Handler {
	return func(ctx *command.Context) error {
		cur, ok := ctx.Host.LastTouchedTrack()
		if !ok {
			ctx.Focus.Set(focus.None, focus.Description{Name: "no track selected"})
			return nil
		}
		ctx.Focus.Set(focus.Track, trackDescription(ctx, set, cur))
		return nil
	}
}

func toggleMute(set Settings) command.Handler {
	return trackToggle(set, "muted", "unmuted",
		func(api host.API, track int) bool { return api.TrackMuted(track) },
		func(api host.API, track int, on bool) { api.SetTrackMuted(track, on) })
}

func toggleSolo(set Settings) command.Handler {
	return trackToggle(set, "soloed", "unsoloed",
		func(api host.API, track int) bool { return api.TrackSoloed(track) },
		func(api host.API, track int, on bool) { api.SetTrackSoloed(track, on) })
}

func toggleArm(set Settings) command.Handler {
	return trackToggle(set, "armed", "unarmed",
		func(api host.API, track int) bool { return api.TrackArmed(track) },
		func(api host.API, track int, on bool) { api.SetTrackArmed(track, on) })
}

// trackToggle flips one boolean track state and announces the new value.
func trackToggle(set Settings, onWord, offWord string, get func(host.API, int) bool, put func(host.API, int, bool)) command.Handler {
	return func(ctx *command.Context) error {
		cur, ok := ctx.Host.LastTouchedTrack()
		if !ok {
			return nil
		}
		on := !get(ctx.Host, cur)
		put(ctx.Host, cur, on)
		word := offWord
		if on {
			word = onWord
		}
		name := trackLabel(ctx, set, cur)
		ctx.Focus.Set(focus.Track, focus.Description{Role: "track", Name: name, Detail: word})
		return nil
	}
}

// trackLabel is the short name used when the announcement is about a state
// change rather than a focus move.
func trackLabel(ctx *command.Context, set Settings, track int) string {
	name, ok := ctx.Host.TrackName(track)
	if !ok {
		return "unknown track"
	}
	if set.ReportTrackNumbers && track != host.MasterTrack {
		return fmt.Sprintf("%d %s", track+1, name)
	}
	return name
}

func nudgeVolume(db float64) command.Handler {
	step := math.Pow(10, db/20)
	return func(ctx *command.Context) error {
		cur, ok := ctx.Host.LastTouchedTrack()
		if !ok {
			return nil
		}
		ctx.Host.SetTrackVolume(cur, ctx.Host.TrackVolume(cur)*step)
		vol := ctx.Host.FormatVolume(ctx.Host.TrackVolume(cur))
		ctx.Focus.Set(focus.Track, focus.Description{Role: "track", Name: vol})
		return nil
	}
}

func nudgePan(delta float64) command.Handler {
	return func(ctx *command.Context) error {
		cur, ok := ctx.Host.LastTouchedTrack()
		if !ok {
			return nil
		}
		ctx.Host.SetTrackPan(cur, ctx.Host.TrackPan(cur)+delta)
		pan := ctx.Host.FormatPan(ctx.Host.TrackPan(cur))
		ctx.Focus.Set(focus.Track, focus.Description{Role: "track", Name: pan})
		return nil
	}
}
