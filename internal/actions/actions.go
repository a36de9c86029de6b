// Package actions defines the bridge's command set: handlers that move the
// virtual focus across tracks, items, and the timeline, toggle track state,
// and report transport and project information. Each handler queries the
// host fresh, mutates it if needed, and updates focus as its last step.
package actions

import (
	"github.com/reavox/reavox/internal/command"
	"github.com/reavox/reavox/internal/host"
)

// Register installs the command set into reg. Errors are configuration
// errors surfaced at startup.
func Register(reg *command.Registry, set Settings) error {
	cmds := []*command.Command{
		{Section: command.SectionMain, ID: "REAVOX_NEXT_TRACK", DisplayName: "Go to next track",
			Accel: host.Accel{Key: host.VKDown}, Handler: nextTrack(set)},
		{Section: command.SectionMain, ID: "REAVOX_PREV_TRACK", DisplayName: "Go to previous track",
			Accel: host.Accel{Key: host.VKUp}, Handler: prevTrack(set)},
		{Section: command.SectionMain, ID: "REAVOX_GOTO_MASTER", DisplayName: "Go to master track",
			Accel: host.Accel{Mod: host.ModCtrl, Key: host.VKUp}, Handler: gotoMaster(set)},
		{Section: command.SectionMain, ID: "REAVOX_REPORT_TRACK", DisplayName: "Report current track",
			Accel: host.Accel{Mod: host.ModCtrl, Key: host.VKSpace}, Handler: reportTrack(set)},

		{Section: command.SectionMain, ID: "REAVOX_TOGGLE_MUTE", DisplayName: "Toggle mute for current track",
			Accel: host.Accel{Key: 'M'}, Handler: toggleMute(set)},
		{Section: command.SectionMain, ID: "REAVOX_TOGGLE_SOLO", DisplayName: "Toggle solo for current track",
			Accel: host.Accel{Key: 'S'}, Handler: toggleSolo(set)},
		{Section: command.SectionMain, ID: "REAVOX_TOGGLE_ARM", DisplayName: "Toggle record arm for current track",
			Accel: host.Accel{Key: 'R'}, Handler: toggleArm(set)},

		{Section: command.SectionMain, ID: "REAVOX_VOLUME_UP", DisplayName: "Nudge track volume up",
			Accel: host.Accel{Mod: host.ModAlt, Key: host.VKUp}, Handler: nudgeVolume(+1)},
		{Section: command.SectionMain, ID: "REAVOX_VOLUME_DOWN", DisplayName: "Nudge track volume down",
			Accel: host.Accel{Mod: host.ModAlt, Key: host.VKDown}, Handler: nudgeVolume(-1)},
		{Section: command.SectionMain, ID: "REAVOX_PAN_LEFT", DisplayName: "Nudge track pan left",
			Accel: host.Accel{Mod: host.ModAlt, Key: host.VKLeft}, Handler: nudgePan(-0.05)},
		{Section: command.SectionMain, ID: "REAVOX_PAN_RIGHT", DisplayName: "Nudge track pan right",
			Accel: host.Accel{Mod: host.ModAlt, Key: host.VKRight}, Handler: nudgePan(+0.05)},

		{Section: command.SectionMain, ID: "REAVOX_NEXT_ITEM", DisplayName: "Go to next item on track",
			Accel: host.Accel{Mod: host.ModCtrl, Key: host.VKRight}, Handler: nextItem(set)},
		{Section: command.SectionMain, ID: "REAVOX_PREV_ITEM", DisplayName: "Go to previous item on track",
			Accel: host.Accel{Mod: host.ModCtrl, Key: host.VKLeft}, Handler: prevItem(set)},
		{Section: command.SectionMain, ID: "REAVOX_REPORT_ITEM", DisplayName: "Report selected item",
			Accel: host.Accel{Mod: host.ModCtrl, Key: 'I'}, Handler: reportItem(set)},

		{Section: command.SectionMain, ID: "REAVOX_NEXT_MEASURE", DisplayName: "Move cursor to next measure",
			Accel: host.Accel{Key: host.VKRight}, Handler: nextMeasure()},
		{Section: command.SectionMain, ID: "REAVOX_PREV_MEASURE", DisplayName: "Move cursor to previous measure",
			Accel: host.Accel{Key: host.VKLeft}, Handler: prevMeasure()},
		{Section: command.SectionMain, ID: "REAVOX_NEXT_BEAT", DisplayName: "Move cursor to next beat",
			Accel: host.Accel{Mod: host.ModShift, Key: host.VKRight}, Handler: nextBeat()},
		{Section: command.SectionMain, ID: "REAVOX_PREV_BEAT", DisplayName: "Move cursor to previous beat",
			Accel: host.Accel{Mod: host.ModShift, Key: host.VKLeft}, Handler: prevBeat()},
		{Section: command.SectionMain, ID: "REAVOX_REPORT_POSITION", DisplayName: "Report cursor position",
			Accel: host.Accel{Mod: host.ModCtrl, Key: 'P'}, Handler: reportPosition()},

		{Section: command.SectionMain, ID: "REAVOX_NEXT_MARKER", DisplayName: "Go to next marker or region",
			Accel: host.Accel{Key: host.VKPageDown}, Handler: nextMarker(set)},
		{Section: command.SectionMain, ID: "REAVOX_PREV_MARKER", DisplayName: "Go to previous marker or region",
			Accel: host.Accel{Key: host.VKPageUp}, Handler: prevMarker(set)},

		{Section: command.SectionMain, ID: "REAVOX_PLAY_STOP", DisplayName: "Play or stop",
			Accel: host.Accel{Key: host.VKSpace}, Handler: playStop(set)},
		{Section: command.SectionMain, ID: "REAVOX_RECORD", DisplayName: "Toggle recording",
			Accel: host.Accel{Mod: host.ModCtrl, Key: 'R'}, Handler: record()},
		{Section: command.SectionMain, ID: "REAVOX_TOGGLE_REPEAT", DisplayName: "Toggle repeat",
			Accel: host.Accel{Key: host.VKF8}, Handler: toggleRepeat()},

		{Section: command.SectionMain, ID: "REAVOX_UNDO", DisplayName: "Undo with announcement",
			Accel: host.Accel{Mod: host.ModCtrl, Key: 'Z'}, Handler: undo()},
		{Section: command.SectionMain, ID: "REAVOX_REDO", DisplayName: "Redo with announcement",
			Accel: host.Accel{Mod: host.ModCtrl | host.ModShift, Key: 'Z'}, Handler: redo()},

		// The MIDI editor shares the transport and position reporting.
		{Section: command.SectionMIDIEditor, ID: "REAVOX_REPORT_POSITION", DisplayName: "Report cursor position",
			Accel: host.Accel{Mod: host.ModCtrl, Key: 'P'}, Handler: reportPosition()},
		{Section: command.SectionMIDIEditor, ID: "REAVOX_PLAY_STOP", DisplayName: "Play or stop",
			Accel: host.Accel{Key: host.VKSpace}, Handler: playStop(set)},
	}
	for _, c := range cmds {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
