// ABOUTME: Killing, copying, and yanking commands built on the session kill ring
// ABOUTME: kill-word and backward-kill-word drive the delete primitives through kill overrides

package commands

import (
	"github.com/MulgaSoft/e4macs-sub001/internal/editor"
	"github.com/MulgaSoft/e4macs-sub001/pkg/command"
	"github.com/MulgaSoft/e4macs-sub001/pkg/width"
)

func (r *Registry) registerKillCommands() {
	for _, cmd := range []*Command{
		{
			ID:          command.DeleteChar,
			Description: "Delete the next N characters; with an argument, kill them",
			Run:         runDeleteChar,
		},
		{
			ID:          command.DeleteNextWord,
			Description: "Delete to the end of the next N words without saving",
			Run: func(ctx *Context, args Args) error {
				return deleteWords(ctx, args.Count())
			},
		},
		{
			ID:          command.DeletePreviousWord,
			Description: "Delete to the start of the previous N words without saving",
			Run: func(ctx *Context, args Args) error {
				return deleteWords(ctx, -args.Count())
			},
		},
		{
			ID:          command.KillLine,
			Description: "Kill the rest of the line, or N lines",
			Run:         runKillLine,
		},
		{
			ID:          command.KillWord,
			Description: "Kill to the end of the next N words",
			Run: func(ctx *Context, args Args) error {
				ctx.Session.Kills.SetKill(command.DeleteNextWord, false)
				return ctx.Execute(command.DeleteNextWord, args)
			},
		},
		{
			ID:          command.BackwardKillWord,
			Description: "Kill back to the start of the previous N words",
			Run: func(ctx *Context, args Args) error {
				ctx.Session.Kills.SetKill(command.DeletePreviousWord, true)
				return ctx.Execute(command.DeletePreviousWord, args)
			},
		},
		{
			ID:          command.KillRegion,
			Description: "Kill the text between point and mark",
			Run: func(ctx *Context, _ Args) error {
				b, from, to, err := region(ctx)
				if err != nil {
					return err
				}
				ctx.kill(b, from, to, false)
				return nil
			},
		},
		{
			ID:          command.DeleteRegion,
			Description: "Delete the text between point and mark without saving it",
			Bulk:        true,
			Run: func(ctx *Context, args Args) error {
				kills := ctx.Session.Kills
				prev := kills.Deactivated()
				kills.SetDeactivated(true)
				defer kills.SetDeactivated(prev)
				return ctx.Execute(command.KillRegion, args)
			},
		},
		{
			ID:          command.KillRingSave,
			Description: "Save the region on the kill ring without deleting it",
			Run: func(ctx *Context, _ Args) error {
				b, from, to, err := region(ctx)
				if err != nil {
					return err
				}
				ctx.Session.Kills.RecordCopy(b.Slice(from, to), command.KillRingSave)
				return nil
			},
		},
		{
			ID:          command.AppendNextKill,
			Description: "Make the next kill append to the newest kill ring entry",
			Run: func(ctx *Context, _ Args) error {
				ctx.Session.Kills.SetForceAppend(true)
				ctx.Session.Notices.Messagef("If the next command is a kill, it will append")
				return nil
			},
		},
		{
			ID:          command.Yank,
			Description: "Insert the most recent kill, or the Nth most recent",
			Bulk:        true,
			Run:         runYank,
		},
		{
			ID:          command.YankPop,
			Description: "Replace the text just yanked with an older kill",
			Bulk:        true,
			Run:         runYankPop,
		},
		{
			ID:          command.RotateYankPointer,
			Description: "Rotate the yank pointer N entries toward older kills",
			Run: func(ctx *Context, args Args) error {
				e, ok := ctx.Session.Kills.RotateYankPos(args.Count())
				if !ok {
					return ErrEmptyKillRing
				}
				ctx.Session.Notices.Messagef("Next yank: %s", width.Preview(e.Text, ctx.Session.Settings().PreviewWidth))
				return nil
			},
		},
	} {
		r.Register(cmd)
	}
}

func region(ctx *Context) (editor.Buffer, int, int, error) {
	b, err := ctx.Buffer()
	if err != nil {
		return nil, 0, 0, err
	}
	from, to, ok := editor.Region(b)
	if !ok {
		return nil, 0, 0, ErrNoMark
	}
	return b, from, to, nil
}

func runDeleteChar(ctx *Context, args Args) error {
	b, err := ctx.Buffer()
	if err != nil {
		return err
	}
	from, to := b.Point(), b.Point()+args.Count()
	if from > to {
		from, to = to, from
	}
	from, to = max(0, from), min(b.Len(), to)
	if args.HasPrefix {
		ctx.kill(b, from, to, args.Count() < 0)
		return nil
	}
	ctx.Removed(b.Slice(from, to))
	b.Replace(from, to, "")
	return nil
}

func deleteWords(ctx *Context, n int) error {
	b, err := ctx.Buffer()
	if err != nil {
		return err
	}
	point := b.Point()
	other := wordsForward([]rune(b.Text()), point, n)
	from, to := min(point, other), max(point, other)
	ctx.Removed(b.Slice(from, to))
	b.Replace(from, to, "")
	return nil
}

func runKillLine(ctx *Context, args Args) error {
	b, err := ctx.Buffer()
	if err != nil {
		return err
	}
	point := b.Point()
	end := editor.KillLineEnd([]rune(b.Text()), point, args.Count(), args.HasPrefix)
	ctx.kill(b, point, end, false)
	return nil
}

func runYank(ctx *Context, args Args) error {
	b, err := ctx.Buffer()
	if err != nil {
		return err
	}
	kills := ctx.Session.Kills
	e, ok := kills.Current()
	if args.HasPrefix && args.Prefix != 1 {
		e, ok = kills.RotateYankPos(args.Prefix - 1)
	}
	if !ok {
		return ErrEmptyKillRing
	}

	start := b.Point()
	ctx.pushMark(b, start)
	b.Replace(start, start, e.Text)
	end := start + len([]rune(e.Text))
	b.SetPoint(end)
	ctx.d.yank = yankState{buffer: b.ID(), from: start, to: end, valid: true}
	return nil
}

func runYankPop(ctx *Context, args Args) error {
	last := ctx.LastCommand()
	y := ctx.d.yank
	if (last != command.Yank && last != command.YankPop) || !y.valid {
		return ErrNotAfterYank
	}
	b, err := ctx.Buffer()
	if err != nil {
		return err
	}
	if b.ID() != y.buffer {
		return ErrNotAfterYank
	}
	e, ok := ctx.Session.Kills.RotateYankPos(args.Count())
	if !ok {
		return ErrEmptyKillRing
	}

	b.Replace(y.from, y.to, e.Text)
	end := y.from + len([]rune(e.Text))
	b.SetMark(y.from)
	b.SetPoint(end)
	ctx.d.yank.to = end
	return nil
}
