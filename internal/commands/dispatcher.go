// ABOUTME: Dispatcher runs commands with kill ring bracketing and redraw suspension
// ABOUTME: Converts "nothing to do" errors into beeps on the session's notice bus

package commands

import (
	"fmt"

	"github.com/MulgaSoft/e4macs-sub001/internal/editor"
	"github.com/MulgaSoft/e4macs-sub001/internal/log"
	"github.com/MulgaSoft/e4macs-sub001/internal/session"
	"github.com/MulgaSoft/e4macs-sub001/pkg/command"
)

// yankState remembers where the last yank put its text so yank-pop can
// replace it.
type yankState struct {
	buffer   string
	from, to int
	valid    bool
}

// Dispatcher executes commands for one session against one host.
type Dispatcher struct {
	registry *Registry
	session  *session.Session
	host     editor.Host

	depth   int
	current command.ID
	last    command.ID
	yank    yankState

	// Show displays a titled markdown document. When nil the title and
	// body are published as a message.
	Show func(title, markdown string)
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(reg *Registry, s *session.Session, h editor.Host) *Dispatcher {
	return &Dispatcher{registry: reg, session: s, host: h}
}

// Registry returns the command registry.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Session returns the session commands run against.
func (d *Dispatcher) Session() *session.Session { return d.session }

// LastCommand returns the most recent completed top-level command.
func (d *Dispatcher) LastCommand() command.ID { return d.last }

// ExecuteNamed runs a command by Emacs name.
func (d *Dispatcher) ExecuteNamed(name string, args Args) error {
	id, ok := command.Parse(name)
	if !ok {
		if s, ok := d.registry.Suggest(name); ok {
			return fmt.Errorf("%w: %s (did you mean %s?)", ErrUnknownCommand, name, s)
		}
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return d.Execute(id, args)
}

// Execute runs a command. Only the outermost command of a nested chain
// brackets the kill ring and becomes the last command; errors meaning
// there was nothing to do are reported as a beep and return nil there.
func (d *Dispatcher) Execute(id command.ID, args Args) error {
	cmd, ok := d.registry.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownCommand, id)
	}

	kills := d.session.Kills
	outer := d.depth == 0
	if outer {
		kills.BeginCommand()
		d.current = id
	}
	err := d.run(cmd, args)
	if !outer {
		return err
	}

	kills.EndCommand()
	kills.ClearOverrides()
	d.last = id
	d.current = command.None

	if err != nil && IsBeep(err) {
		log.Debug("%s: %v", id, err)
		d.session.Notices.Beep(err.Error())
		return nil
	}
	return err
}

// Insert types text at point as an ordinary edit. Like any command that
// is not a kill it ends a run of kills and a yank chain.
func (d *Dispatcher) Insert(text string) error {
	return d.plainEdit(func(b editor.Buffer) {
		p := b.Point()
		b.Replace(p, p, text)
		b.SetPoint(p + len([]rune(text)))
	})
}

// DeleteBackward removes up to n characters before point without saving
// them.
func (d *Dispatcher) DeleteBackward(n int) error {
	return d.plainEdit(func(b editor.Buffer) {
		p := b.Point()
		b.Replace(max(0, p-n), p, "")
	})
}

func (d *Dispatcher) plainEdit(fn func(editor.Buffer)) error {
	b := d.host.Current()
	if b == nil {
		d.session.Notices.Beep(editor.ErrNoBuffer.Error())
		return nil
	}
	kills := d.session.Kills
	kills.BeginCommand()
	fn(b)
	kills.EndCommand()
	d.last = command.None
	return nil
}

func (d *Dispatcher) run(cmd *Command, args Args) error {
	d.depth++
	defer func() { d.depth-- }()

	if cmd.Bulk {
		release := editor.SuspendRedraw(d.host)
		defer release()
	}

	backward, isKill := d.session.Kills.TakeKill(cmd.ID)
	ctx := &Context{Session: d.session, Host: d.host, d: d}
	if err := cmd.Run(ctx, args); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	if isKill && ctx.hasRemoved {
		d.session.Kills.RecordKill(ctx.removed, backward, d.current)
	}
	return nil
}

func (d *Dispatcher) show(title, markdown string) {
	if d.Show != nil {
		d.Show(title, markdown)
		return
	}
	d.session.Notices.Messagef("%s\n%s", title, markdown)
}
