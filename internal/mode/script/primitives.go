// ABOUTME: Lisp primitives: one per editing command plus buffer, kill ring, and register access
// ABOUTME: Command primitives take an optional prefix argument; register commands take the name first

package script

import (
	"fmt"
	"strings"

	"github.com/steelseries/golisp"

	"github.com/MulgaSoft/e4macs-sub001/internal/commands"
	"github.com/MulgaSoft/e4macs-sub001/pkg/command"
	"github.com/MulgaSoft/e4macs-sub001/pkg/register"
)

type primitive = func(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error)

func registerPrimitives() {
	for _, id := range command.All() {
		golisp.MakePrimitiveFunction(id.String(), "*", commandImpl(id))
	}
	golisp.MakePrimitiveFunction("execute-command", "1|2", executeCommandImpl)
	golisp.MakePrimitiveFunction("insert", "*", insertImpl)
	golisp.MakePrimitiveFunction("delete-backward-char", "0|1", deleteBackwardImpl)
	golisp.MakePrimitiveFunction("point", "0", pointImpl)
	golisp.MakePrimitiveFunction("goto-char", "1", gotoCharImpl)
	golisp.MakePrimitiveFunction("mark", "0", markImpl)
	golisp.MakePrimitiveFunction("set-mark", "1", setMarkImpl)
	golisp.MakePrimitiveFunction("buffer-string", "0", bufferStringImpl)
	golisp.MakePrimitiveFunction("buffer-name", "0", bufferNameImpl)
	golisp.MakePrimitiveFunction("open-buffer", "1|2", openBufferImpl)
	golisp.MakePrimitiveFunction("switch-to-buffer", "1", switchBufferImpl)
	golisp.MakePrimitiveFunction("kill-ring", "0", killRingImpl)
	golisp.MakePrimitiveFunction("get-register", "1", getRegisterImpl)
	golisp.MakePrimitiveFunction("message", "*", messageImpl)
	golisp.MakePrimitiveFunction("session-snapshot", "0", snapshotImpl)
}

// commandImpl runs id. Register commands read the register name from the
// first argument; a trailing integer becomes the prefix argument.
func commandImpl(id command.ID) primitive {
	return func(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
		in, err := current()
		if err != nil {
			return nil, err
		}
		cmd, ok := in.d.Registry().Get(id)
		if !ok {
			return nil, fmt.Errorf("%s is not available", id)
		}

		var a commands.Args
		rest := golisp.ToArray(args)
		if cmd.Register {
			if len(rest) == 0 {
				return nil, fmt.Errorf("%s: register name required", id)
			}
			if a.Register, err = stringArg(rest[0]); err != nil {
				return nil, fmt.Errorf("%s: %w", id, err)
			}
			rest = rest[1:]
		}
		switch len(rest) {
		case 0:
		case 1:
			n, err := intArg(rest[0])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", id, err)
			}
			a = a.WithPrefix(n)
		default:
			return nil, fmt.Errorf("%s: too many arguments", id)
		}

		if err := in.d.Execute(id, a); err != nil {
			return nil, err
		}
		return golisp.EmptyCons(), nil
	}
}

func executeCommandImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	in, err := current()
	if err != nil {
		return nil, err
	}
	name, err := stringArg(golisp.Car(args))
	if err != nil {
		return nil, err
	}
	var a commands.Args
	if golisp.Length(args) == 2 {
		n, err := intArg(golisp.Cadr(args))
		if err != nil {
			return nil, err
		}
		a = a.WithPrefix(n)
	}
	if err := in.d.ExecuteNamed(name, a); err != nil {
		return nil, err
	}
	return golisp.EmptyCons(), nil
}

func insertImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	in, err := current()
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	for _, a := range golisp.ToArray(args) {
		b.WriteString(display(a))
	}
	if err := in.d.Insert(b.String()); err != nil {
		return nil, err
	}
	return golisp.EmptyCons(), nil
}

func deleteBackwardImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	in, err := current()
	if err != nil {
		return nil, err
	}
	n := 1
	if golisp.NotNilP(args) {
		if n, err = intArg(golisp.Car(args)); err != nil {
			return nil, err
		}
	}
	if err := in.d.DeleteBackward(max(n, 0)); err != nil {
		return nil, err
	}
	return golisp.EmptyCons(), nil
}

func pointImpl(_ *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	in, err := current()
	if err != nil {
		return nil, err
	}
	b, err := in.buffer()
	if err != nil {
		return nil, err
	}
	return golisp.IntegerWithValue(int64(b.Point())), nil
}

func gotoCharImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	in, err := current()
	if err != nil {
		return nil, err
	}
	b, err := in.buffer()
	if err != nil {
		return nil, err
	}
	n, err := intArg(golisp.Car(args))
	if err != nil {
		return nil, err
	}
	b.SetPoint(n)
	return golisp.IntegerWithValue(int64(b.Point())), nil
}

func markImpl(_ *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	in, err := current()
	if err != nil {
		return nil, err
	}
	b, err := in.buffer()
	if err != nil {
		return nil, err
	}
	m, ok := b.Mark()
	if !ok {
		return golisp.EmptyCons(), nil
	}
	return golisp.IntegerWithValue(int64(m)), nil
}

func setMarkImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	in, err := current()
	if err != nil {
		return nil, err
	}
	b, err := in.buffer()
	if err != nil {
		return nil, err
	}
	n, err := intArg(golisp.Car(args))
	if err != nil {
		return nil, err
	}
	b.SetMark(n)
	return golisp.EmptyCons(), nil
}

func bufferStringImpl(_ *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	in, err := current()
	if err != nil {
		return nil, err
	}
	b, err := in.buffer()
	if err != nil {
		return nil, err
	}
	return golisp.StringWithValue(b.Text()), nil
}

func bufferNameImpl(_ *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	in, err := current()
	if err != nil {
		return nil, err
	}
	b, err := in.buffer()
	if err != nil {
		return nil, err
	}
	return golisp.StringWithValue(b.ID()), nil
}

func openBufferImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	in, err := current()
	if err != nil {
		return nil, err
	}
	name, err := stringArg(golisp.Car(args))
	if err != nil {
		return nil, err
	}
	text := ""
	if golisp.Length(args) == 2 {
		if text, err = stringArg(golisp.Cadr(args)); err != nil {
			return nil, err
		}
	}
	in.w.Open(name, text)
	return golisp.StringWithValue(name), nil
}

func switchBufferImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	in, err := current()
	if err != nil {
		return nil, err
	}
	name, err := stringArg(golisp.Car(args))
	if err != nil {
		return nil, err
	}
	if _, err := in.w.Switch(name); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(name), nil
}

// killRingImpl returns the kill ring texts, newest first.
func killRingImpl(_ *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	in, err := current()
	if err != nil {
		return nil, err
	}
	var items []*golisp.Data
	for e := range in.d.Session().Kills.Entries() {
		items = append([]*golisp.Data{golisp.StringWithValue(e.Text)}, items...)
	}
	return golisp.ArrayToList(items), nil
}

// getRegisterImpl returns text as a string, a number as an integer, and
// a position as a (buffer offset) list. An empty register is nil.
func getRegisterImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	in, err := current()
	if err != nil {
		return nil, err
	}
	name, err := stringArg(golisp.Car(args))
	if err != nil {
		return nil, err
	}
	v, ok := in.d.Session().Registers.Get(name)
	if !ok {
		return golisp.EmptyCons(), nil
	}
	switch v := v.(type) {
	case register.Text:
		return golisp.StringWithValue(string(v)), nil
	case register.Number:
		return golisp.IntegerWithValue(int64(v)), nil
	case register.Location:
		return golisp.ArrayToList([]*golisp.Data{
			golisp.StringWithValue(v.Buffer),
			golisp.IntegerWithValue(int64(v.Offset)),
		}), nil
	}
	return golisp.EmptyCons(), nil
}

func messageImpl(args *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	in, err := current()
	if err != nil {
		return nil, err
	}
	parts := make([]string, 0, golisp.Length(args))
	for _, a := range golisp.ToArray(args) {
		parts = append(parts, display(a))
	}
	msg := strings.Join(parts, " ")
	in.d.Session().Notices.Messagef("%s", msg)
	return golisp.StringWithValue(msg), nil
}

func snapshotImpl(_ *golisp.Data, _ *golisp.SymbolTableFrame) (*golisp.Data, error) {
	in, err := current()
	if err != nil {
		return nil, err
	}
	data, err := in.d.Session().Snapshot().MarshalJSON()
	if err != nil {
		return nil, err
	}
	return golisp.StringWithValue(string(data)), nil
}

func stringArg(d *golisp.Data) (string, error) {
	if golisp.StringP(d) || golisp.SymbolP(d) {
		return golisp.StringValue(d), nil
	}
	return "", fmt.Errorf("expected a string, got %s", golisp.String(d))
}

func intArg(d *golisp.Data) (int, error) {
	switch {
	case golisp.IntegerP(d):
		return int(golisp.IntegerValue(d)), nil
	case golisp.FloatP(d):
		return int(golisp.FloatValue(d)), nil
	}
	return 0, fmt.Errorf("expected a number, got %s", golisp.String(d))
}

// display renders a value the way insert and message show it: strings
// without quotes.
func display(d *golisp.Data) string {
	if golisp.StringP(d) {
		return golisp.StringValue(d)
	}
	return golisp.String(d)
}
