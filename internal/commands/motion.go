// ABOUTME: Point motion commands by character, word, line, and buffer
// ABOUTME: beginning-of-buffer and end-of-buffer leave a mark at the old position

package commands

import (
	"github.com/MulgaSoft/e4macs-sub001/internal/editor"
	"github.com/MulgaSoft/e4macs-sub001/pkg/command"
)

func (r *Registry) registerMotionCommands() {
	for _, cmd := range []*Command{
		{
			ID:          command.ForwardChar,
			Description: "Move point forward N characters",
			Run: func(ctx *Context, args Args) error {
				return move(ctx, func(_ []rune, pos int) int { return pos + args.Count() })
			},
		},
		{
			ID:          command.BackwardChar,
			Description: "Move point backward N characters",
			Run: func(ctx *Context, args Args) error {
				return move(ctx, func(_ []rune, pos int) int { return pos - args.Count() })
			},
		},
		{
			ID:          command.ForwardWord,
			Description: "Move point past the end of the next N words",
			Run: func(ctx *Context, args Args) error {
				return move(ctx, func(text []rune, pos int) int { return wordsForward(text, pos, args.Count()) })
			},
		},
		{
			ID:          command.BackwardWord,
			Description: "Move point to the start of the previous N words",
			Run: func(ctx *Context, args Args) error {
				return move(ctx, func(text []rune, pos int) int { return wordsForward(text, pos, -args.Count()) })
			},
		},
		{
			ID:          command.BeginningOfLine,
			Description: "Move point to the start of the line",
			Run: func(ctx *Context, _ Args) error {
				return move(ctx, editor.LineStart)
			},
		},
		{
			ID:          command.EndOfLine,
			Description: "Move point to the end of the line",
			Run: func(ctx *Context, _ Args) error {
				return move(ctx, editor.LineEnd)
			},
		},
		{
			ID:          command.BeginningOfBuffer,
			Description: "Move point to the start of the buffer, leaving mark behind",
			Run: func(ctx *Context, _ Args) error {
				return jumpEdge(ctx, false)
			},
		},
		{
			ID:          command.EndOfBuffer,
			Description: "Move point to the end of the buffer, leaving mark behind",
			Run: func(ctx *Context, _ Args) error {
				return jumpEdge(ctx, true)
			},
		},
	} {
		r.Register(cmd)
	}
}

func move(ctx *Context, to func(text []rune, pos int) int) error {
	b, err := ctx.Buffer()
	if err != nil {
		return err
	}
	b.SetPoint(to([]rune(b.Text()), b.Point()))
	return nil
}

func jumpEdge(ctx *Context, end bool) error {
	b, err := ctx.Buffer()
	if err != nil {
		return err
	}
	ctx.pushMark(b, b.Point())
	if end {
		b.SetPoint(b.Len())
	} else {
		b.SetPoint(0)
	}
	return nil
}

// wordsForward moves over n words; negative n moves backward.
func wordsForward(text []rune, pos, n int) int {
	for ; n > 0; n-- {
		pos = editor.ForwardWord(text, pos)
	}
	for ; n < 0; n++ {
		pos = editor.BackwardWord(text, pos)
	}
	return pos
}
