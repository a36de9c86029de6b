package actions

import (
	"github.com/reavox/reavox/internal/command"
	"github.com/reavox/reavox/internal/focus"
)

func undo() command.Handler {
	return func(ctx *command.Context) error {
		label, ok := ctx.Host.UndoLabel()
		if !ok || !ctx.Host.Undo() {
			ctx.Focus.Set(ctx.Focus.Current(), focus.Description{Role: "project", Name: "nothing to undo"})
			return nil
		}
		ctx.Focus.Set(ctx.Focus.Current(), focus.Description{Role: "project", Name: "undo " + label})
		return nil
	}
}

func redo() command.Handler {
	return func(ctx *command.Context) error {
		label, ok := ctx.Host.RedoLabel()
		if !ok || !ctx.Host.Redo() {
			ctx.Focus.Set(ctx.Focus.Current(), focus.Description{Role: "project", Name: "nothing to redo"})
			return nil
		}
		ctx.Focus.Set(ctx.Focus.Current(), focus.Description{Role: "project", Name: "redo " + label})
		return nil
	}
}
