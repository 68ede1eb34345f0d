// ABOUTME: Register commands: save and insert text, numbers, and positions by name
// ABOUTME: Register names arrive in Args.Register, read by the host from the minibuffer

package commands

import (
	"strconv"

	"github.com/MulgaSoft/e4macs-sub001/pkg/command"
	"github.com/MulgaSoft/e4macs-sub001/pkg/register"
)

func (r *Registry) registerRegisterCommands() {
	for _, cmd := range []*Command{
		{
			ID:          command.CopyToRegister,
			Description: "Copy the region into a register; with an argument, delete it too",
			Register:    true,
			Run:         runCopyToRegister,
		},
		{
			ID:          command.AppendToRegister,
			Description: "Append the region to the text in a register",
			Register:    true,
			Run: func(ctx *Context, args Args) error {
				return addToRegister(ctx, args, false)
			},
		},
		{
			ID:          command.PrependToRegister,
			Description: "Prepend the region to the text in a register",
			Register:    true,
			Run: func(ctx *Context, args Args) error {
				return addToRegister(ctx, args, true)
			},
		},
		{
			ID:          command.InsertRegister,
			Description: "Insert the text or number in a register; with an argument, leave point after it",
			Register:    true,
			Bulk:        true,
			Run:         runInsertRegister,
		},
		{
			ID:          command.PointToRegister,
			Description: "Store the current position in a register",
			Register:    true,
			Run: func(ctx *Context, args Args) error {
				key, err := registerKey(args)
				if err != nil {
					return err
				}
				b, err := ctx.Buffer()
				if err != nil {
					return err
				}
				ctx.Session.Registers.Put(key, register.Location{Buffer: b.ID(), Offset: b.Point()})
				return nil
			},
		},
		{
			ID:          command.JumpToRegister,
			Description: "Move point to the position stored in a register",
			Register:    true,
			Run:         runJumpToRegister,
		},
		{
			ID:          command.NumberToRegister,
			Description: "Store a number in a register, the prefix argument or 0",
			Register:    true,
			Run: func(ctx *Context, args Args) error {
				key, err := registerKey(args)
				if err != nil {
					return err
				}
				n := args.Number
				if args.HasPrefix {
					n = args.Prefix
				}
				ctx.Session.Registers.Put(key, register.Number(n))
				return nil
			},
		},
		{
			ID:          command.IncrementRegister,
			Description: "Add the prefix argument to a number register, or append the region to a text register",
			Register:    true,
			Run:         runIncrementRegister,
		},
		{
			ID:          command.ListRegisters,
			Description: "Show the contents of every register",
			Run: func(ctx *Context, _ Args) error {
				ctx.Show("Registers", FormatRegisters(ctx.Session.Registers, ctx.Session.Settings().PreviewWidth))
				return nil
			},
		},
	} {
		r.Register(cmd)
	}
}

func registerKey(args Args) (string, error) {
	if args.Register == "" {
		return "", ErrNoRegisterArg
	}
	return args.Register, nil
}

func runCopyToRegister(ctx *Context, args Args) error {
	key, err := registerKey(args)
	if err != nil {
		return err
	}
	b, from, to, err := region(ctx)
	if err != nil {
		return err
	}
	ctx.Session.Registers.Put(key, register.Text(b.Slice(from, to)))
	if args.HasPrefix {
		b.Replace(from, to, "")
	}
	return nil
}

func addToRegister(ctx *Context, args Args, prepend bool) error {
	key, err := registerKey(args)
	if err != nil {
		return err
	}
	b, from, to, err := region(ctx)
	if err != nil {
		return err
	}
	if !ctx.Session.Registers.AppendText(key, b.Slice(from, to), prepend) {
		return ErrNotText
	}
	if args.HasPrefix {
		b.Replace(from, to, "")
	}
	return nil
}

func runInsertRegister(ctx *Context, args Args) error {
	key, err := registerKey(args)
	if err != nil {
		return err
	}
	v, ok := ctx.Session.Registers.Get(key)
	if !ok {
		return ErrNoRegister
	}
	var text string
	switch v := v.(type) {
	case register.Text:
		text = string(v)
	case register.Number:
		text = strconv.Itoa(int(v))
	default:
		return ErrNotText
	}

	b, err := ctx.Buffer()
	if err != nil {
		return err
	}
	start := b.Point()
	b.Replace(start, start, text)
	end := start + len([]rune(text))
	if args.HasPrefix {
		b.SetMark(start)
		b.SetPoint(end)
	} else {
		b.SetMark(end)
		b.SetPoint(start)
	}
	return nil
}

func runJumpToRegister(ctx *Context, args Args) error {
	key, err := registerKey(args)
	if err != nil {
		return err
	}
	v, ok := ctx.Session.Registers.Get(key)
	if !ok {
		return ErrNoRegister
	}
	loc, ok := v.(register.Location)
	if !ok {
		return ErrNotLocation
	}
	b, err := ctx.Host.Switch(loc.Buffer)
	if err != nil {
		return err
	}
	b.SetPoint(loc.Offset)
	return nil
}

func runIncrementRegister(ctx *Context, args Args) error {
	key, err := registerKey(args)
	if err != nil {
		return err
	}
	regs := ctx.Session.Registers
	if v, ok := regs.Get(key); ok {
		if _, isText := v.(register.Text); isText {
			return addToRegister(ctx, Args{Register: key}, false)
		}
	}
	if _, ok := regs.Increment(key, args.Count()); !ok {
		return ErrNotNumber
	}
	return nil
}
