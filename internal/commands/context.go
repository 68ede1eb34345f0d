// ABOUTME: Per-invocation command context, arguments, and the "nothing to do" errors
// ABOUTME: Primitives report deleted text through Removed so it can become a kill

package commands

import (
	"errors"
	"fmt"

	"github.com/MulgaSoft/e4macs-sub001/internal/editor"
	"github.com/MulgaSoft/e4macs-sub001/internal/session"
	"github.com/MulgaSoft/e4macs-sub001/pkg/command"
)

// Errors a command returns when there is nothing to act on. The
// dispatcher turns them into a beep and a message.
var (
	ErrEmptyKillRing = errors.New("kill ring is empty")
	ErrNoRegister    = errors.New("register is empty")
	ErrNotText       = errors.New("register does not contain text")
	ErrNotNumber     = errors.New("register does not contain a number")
	ErrNotLocation   = errors.New("register does not contain a position")
	ErrNoMark        = errors.New("no mark set in this buffer")
	ErrNotAfterYank  = errors.New("previous command was not a yank")
	ErrRingEmpty     = errors.New("mark ring is empty")
	ErrNoRegisterArg = errors.New("no register name given")
)

// ErrUnknownCommand is returned for names and IDs with no command.
var ErrUnknownCommand = errors.New("unknown command")

var beepErrors = []error{
	ErrEmptyKillRing, ErrNoRegister, ErrNotText, ErrNotNumber, ErrNotLocation,
	ErrNoMark, ErrNotAfterYank, ErrRingEmpty, ErrNoRegisterArg, editor.ErrNoBuffer,
}

// IsBeep reports whether err means a command had nothing to do.
func IsBeep(err error) bool {
	for _, target := range beepErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Args carries the optional inputs of an invocation.
type Args struct {
	// Prefix is the numeric argument; meaningful when HasPrefix is set.
	Prefix    int
	HasPrefix bool
	// Register names the register for register commands.
	Register string
	// Number is the value for number-to-register when no prefix is given.
	Number int
}

// Count returns the prefix argument, defaulting to 1.
func (a Args) Count() int {
	if a.HasPrefix {
		return a.Prefix
	}
	return 1
}

// WithPrefix returns a copy of a with the numeric argument set.
func (a Args) WithPrefix(n int) Args {
	a.Prefix, a.HasPrefix = n, true
	return a
}

// Context gives a running command access to the session and the host.
type Context struct {
	Session *session.Session
	Host    editor.Host

	d *Dispatcher

	removed    string
	hasRemoved bool
}

// Buffer returns the current buffer.
func (c *Context) Buffer() (editor.Buffer, error) {
	b := c.Host.Current()
	if b == nil {
		return nil, fmt.Errorf("current buffer: %w", editor.ErrNoBuffer)
	}
	return b, nil
}

// Removed reports text deleted by a primitive. It is recorded as a kill
// when the invocation was marked with KillRing.SetKill.
func (c *Context) Removed(text string) {
	c.removed += text
	c.hasRemoved = true
}

// Execute runs another command as part of this one.
func (c *Context) Execute(id command.ID, args Args) error {
	return c.d.Execute(id, args)
}

// LastCommand returns the previous top-level command.
func (c *Context) LastCommand() command.ID {
	return c.d.last
}

// Current returns the top-level command being run.
func (c *Context) Current() command.ID {
	return c.d.current
}

// Show presents a titled markdown document to the user.
func (c *Context) Show(title, markdown string) {
	c.d.show(title, markdown)
}

// kill removes [from, to) from b and records it on the kill ring.
func (c *Context) kill(b editor.Buffer, from, to int, backward bool) {
	text := b.Slice(from, to)
	b.Replace(from, to, "")
	c.Session.Kills.RecordKill(text, backward, c.d.current)
}

// pushMark saves pos on the buffer's local ring and the global ring and
// makes it the buffer's mark.
func (c *Context) pushMark(b editor.Buffer, pos int) {
	c.Session.Marks.PushMark(b.ID(), pos)
	b.SetMark(pos)
}
