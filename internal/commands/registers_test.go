// ABOUTME: Tests for register commands
// ABOUTME: Covers text, number, and position registers plus listing and error beeps

package commands

import (
	"strings"
	"testing"

	"github.com/MulgaSoft/e4macs-sub001/pkg/register"
)

func reg(name string) Args { return Args{Register: name} }

func TestCopyAndInsertRegister(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "hello world")
	f.buf().SetMark(0)
	f.buf().SetPoint(5)
	f.run(t, "copy-to-register", reg("a"))

	if txt, _ := f.s.Registers.Text("a"); txt != "hello" {
		t.Errorf("register a = %q; want hello", txt)
	}
	f.expectText(t, "hello world")

	f.buf().SetPoint(11)
	f.run(t, "insert-register", reg("a"))
	f.expectText(t, "hello worldhello")
	if f.buf().Point() != 11 {
		t.Errorf("point = %d; insert-register leaves point before the text", f.buf().Point())
	}
	if m, _ := f.buf().Mark(); m != 16 {
		t.Errorf("mark = %d; want after the text", m)
	}

	f.run(t, "insert-register", reg("a").WithPrefix(4))
	if f.buf().Point() != 16 {
		t.Errorf("point = %d; with an argument point goes after the text", f.buf().Point())
	}
}

func TestCopyToRegister_WithArgumentDeletes(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "cut me")
	f.buf().SetMark(0)
	f.buf().SetPoint(4)
	f.run(t, "copy-to-register", reg("c").WithPrefix(4))

	f.expectText(t, "me")
	if f.s.Kills.Len() != 0 {
		t.Error("copy-to-register with argument touched the kill ring")
	}
}

func TestAppendAndPrependToRegister(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "left right")
	f.buf().SetMark(0)
	f.buf().SetPoint(4)
	f.run(t, "copy-to-register", reg("r"))

	f.buf().SetMark(5)
	f.buf().SetPoint(10)
	f.run(t, "append-to-register", reg("r"))
	f.run(t, "prepend-to-register", reg("r"))

	if txt, _ := f.s.Registers.Text("r"); txt != "rightleftright" {
		t.Errorf("register r = %q", txt)
	}

	f.s.Registers.Put("n", register.Number(1))
	f.run(t, "append-to-register", reg("n"))
	if !f.beeped() {
		t.Error("appending to a number register did not beep")
	}
}

func TestNumberAndIncrementRegister(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	f.run(t, "number-to-register", reg("n").WithPrefix(40))
	f.run(t, "increment-register", reg("n"))
	f.run(t, "increment-register", reg("n").WithPrefix(-3))

	if v, _ := f.s.Registers.Get("n"); v != register.Number(38) {
		t.Errorf("register n = %v; want 38", v)
	}

	f.run(t, "number-to-register", Args{Register: "m", Number: 7})
	if v, _ := f.s.Registers.Get("m"); v != register.Number(7) {
		t.Errorf("register m = %v; want 7", v)
	}

	f.run(t, "increment-register", reg("fresh"))
	if v, _ := f.s.Registers.Get("fresh"); v != register.Number(1) {
		t.Errorf("register fresh = %v; absent register starts at zero", v)
	}

	f.run(t, "insert-register", reg("n"))
	f.expectText(t, "38")
}

func TestIncrementRegister_TextAppendsRegion(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "abc")
	f.s.Registers.Put("t", register.Text("x"))
	f.buf().SetMark(0)
	f.buf().SetPoint(2)
	f.run(t, "increment-register", reg("t"))

	if txt, _ := f.s.Registers.Text("t"); txt != "xab" {
		t.Errorf("register t = %q; want xab", txt)
	}

	f.s.Registers.Put("p", register.Location{Buffer: "main", Offset: 1})
	f.run(t, "increment-register", reg("p"))
	if !f.beeped() {
		t.Error("incrementing a position register did not beep")
	}
}

func TestPointAndJumpToRegister(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "first buffer")
	f.buf().SetPoint(6)
	f.run(t, "point-to-register", reg("p"))

	f.w.Open("other", "second")
	f.run(t, "jump-to-register", reg("p"))

	if f.buf().ID() != "main" || f.buf().Point() != 6 {
		t.Errorf("after jump: buffer %s point %d; want main 6", f.buf().ID(), f.buf().Point())
	}
}

func TestJumpToRegister_FollowsEdits(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "0123456789")
	f.buf().SetPoint(8)
	f.run(t, "point-to-register", reg("p"))
	f.buf().Replace(0, 3, "")
	f.buf().SetPoint(0)

	f.run(t, "jump-to-register", reg("p"))
	if f.buf().Point() != 5 {
		t.Errorf("point = %d; saved position should follow the deletion", f.buf().Point())
	}
}

func TestRegisterBeeps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		command string
		args    Args
	}{
		{"missing register name", "insert-register", Args{}},
		{"empty register", "insert-register", reg("z")},
		{"jump to text", "jump-to-register", reg("t")},
		{"insert location", "insert-register", reg("p")},
		{"copy without region", "copy-to-register", reg("q")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t, "text")
			f.s.Registers.Put("t", register.Text("x"))
			f.s.Registers.Put("p", register.Location{Buffer: "main", Offset: 0})
			f.run(t, tt.command, tt.args)
			if !f.beeped() {
				t.Errorf("%s did not beep", tt.command)
			}
		})
	}
}

func TestListRegisters(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	var title, body string
	f.d.Show = func(t, b string) { title, body = t, b }

	f.run(t, "list-registers")
	if title != "Registers" || !strings.Contains(body, "No registers") {
		t.Errorf("empty listing = %q / %q", title, body)
	}

	f.s.Registers.Put("b", register.Text("two\nlines"))
	f.s.Registers.Put("a", register.Number(5))
	f.s.Registers.Put("c", register.Location{Buffer: "x.go", Offset: 3})
	f.run(t, "list-registers")

	for _, want := range []string{"text: two^Jlines", "number: 5", "position 3 in buffer x.go"} {
		if !strings.Contains(body, want) {
			t.Errorf("listing missing %q:\n%s", want, body)
		}
	}
	if strings.Index(body, "`b`") > strings.Index(body, "`a`") {
		t.Error("listing is not in definition order")
	}
}

func TestListRegisters_DefaultShowPublishes(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	f.s.Registers.Put("a", register.Text("x"))
	f.run(t, "list-registers")

	n, ok := f.notices.Last()
	if !ok || !strings.HasPrefix(n.Text, "Registers\n") {
		t.Errorf("notice = %+v; want the listing as a message", n)
	}
}
