// ABOUTME: Mark commands over the session's local, global, and tag mark rings
// ABOUTME: Pops cycle through saved positions without discarding them

package commands

import (
	"github.com/MulgaSoft/e4macs-sub001/pkg/command"
	"github.com/MulgaSoft/e4macs-sub001/pkg/markring"
)

func (r *Registry) registerMarkCommands() {
	for _, cmd := range []*Command{
		{
			ID:          command.SetMarkCommand,
			Description: "Set the mark at point; with an argument, jump to the previous local mark",
			Run: func(ctx *Context, args Args) error {
				if args.HasPrefix {
					return ctx.Execute(command.PopMark, Args{})
				}
				b, err := ctx.Buffer()
				if err != nil {
					return err
				}
				ctx.pushMark(b, b.Point())
				ctx.Session.Notices.Messagef("Mark set")
				return nil
			},
		},
		{
			ID:          command.ExchangePointAndMark,
			Description: "Swap point and mark",
			Run: func(ctx *Context, _ Args) error {
				b, err := ctx.Buffer()
				if err != nil {
					return err
				}
				mark, ok := b.Mark()
				if !ok {
					return ErrNoMark
				}
				point := b.Point()
				b.SetPoint(mark)
				b.SetMark(point)
				return nil
			},
		},
		{
			ID:          command.PopMark,
			Description: "Jump to the next position on the buffer's mark ring",
			Run: func(ctx *Context, _ Args) error {
				b, err := ctx.Buffer()
				if err != nil {
					return err
				}
				m, ok := ctx.Session.Marks.PopLocal(b.ID())
				if !ok {
					return ErrNoMark
				}
				b.SetMark(m.Offset)
				b.SetPoint(m.Offset)
				return nil
			},
		},
		{
			ID:          command.PopGlobalMark,
			Description: "Jump to the next buffer position on the global mark ring",
			Run: func(ctx *Context, _ Args) error {
				return jumpToMark(ctx, ctx.Session.Marks.PopGlobal)
			},
		},
		{
			ID:          command.PushTagMark,
			Description: "Save point on the tag ring before a search or definition jump",
			Run: func(ctx *Context, _ Args) error {
				b, err := ctx.Buffer()
				if err != nil {
					return err
				}
				ctx.Session.Marks.PushTag(b.ID(), b.Point())
				return nil
			},
		},
		{
			ID:          command.PopTagMark,
			Description: "Return to the position saved by the last tag jump",
			Run: func(ctx *Context, _ Args) error {
				return jumpToMark(ctx, ctx.Session.Marks.PopTag)
			},
		},
	} {
		r.Register(cmd)
	}
}

// jumpToMark switches to the buffer of the popped mark and moves point
// there.
func jumpToMark(ctx *Context, pop func() (markring.Mark, bool)) error {
	m, ok := pop()
	if !ok {
		return ErrRingEmpty
	}
	b, err := ctx.Host.Switch(m.Buffer)
	if err != nil {
		return err
	}
	b.SetPoint(m.Offset)
	return nil
}
