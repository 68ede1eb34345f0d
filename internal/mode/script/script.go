// ABOUTME: Batch host evaluating golisp scripts whose primitives are editing commands
// ABOUTME: Notices raised while a script runs are written to the output stream

package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/steelseries/golisp"

	"github.com/MulgaSoft/e4macs-sub001/internal/commands"
	"github.com/MulgaSoft/e4macs-sub001/internal/editor"
	"github.com/MulgaSoft/e4macs-sub001/internal/notify"
)

// golisp keeps primitives in one global table, so a single interpreter
// evaluates at a time and primitives find it through active.
var (
	evalMu       sync.Mutex
	active       *Interpreter
	registerOnce sync.Once
)

var errNotRunning = errors.New("no script is running")

// Interpreter evaluates scripts against a dispatcher and workspace.
type Interpreter struct {
	d   *commands.Dispatcher
	w   *editor.Workspace
	out io.Writer
	env *golisp.SymbolTableFrame
	ctx context.Context
}

// New creates an interpreter. Messages and beeps go to out.
func New(d *commands.Dispatcher, w *editor.Workspace, out io.Writer) *Interpreter {
	registerOnce.Do(registerPrimitives)
	return &Interpreter{
		d:   d,
		w:   w,
		out: out,
		env: golisp.NewSymbolTableFrameBelow(golisp.Global, "e4macs"),
	}
}

// Eval evaluates every form in src and returns the value of the last one.
// Cancelling ctx stops the script at the next primitive call.
func (in *Interpreter) Eval(ctx context.Context, src string) (*golisp.Data, error) {
	evalMu.Lock()
	defer evalMu.Unlock()
	active, in.ctx = in, ctx
	defer func() { active = nil }()

	unsubscribe := in.d.Session().Notices.Subscribe(in.echo)
	defer unsubscribe()

	v, err := golisp.ParseAndEvalAllInEnvironment(src, in.env)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return v, nil
}

// Run evaluates a whole script read from r.
func (in *Interpreter) Run(ctx context.Context, r io.Reader) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	_, err = in.Eval(ctx, string(src))
	return err
}

func (in *Interpreter) echo(n notify.Notice) {
	switch n.Kind {
	case notify.Message:
		fmt.Fprintln(in.out, n.Text)
	default:
		fmt.Fprintf(in.out, "%s: %s\n", n.Kind, n.Text)
	}
}

// current returns the interpreter evaluating the running script.
func current() (*Interpreter, error) {
	if active == nil {
		return nil, errNotRunning
	}
	if err := active.ctx.Err(); err != nil {
		return nil, err
	}
	return active, nil
}

func (in *Interpreter) buffer() (editor.Buffer, error) {
	b := in.w.Current()
	if b == nil {
		return nil, editor.ErrNoBuffer
	}
	return b, nil
}
