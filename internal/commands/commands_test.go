// ABOUTME: Tests for the command registry and dispatcher plumbing
// ABOUTME: Covers lookup, completion, suggestions, beeps, redraw suspension, and plain edits

package commands

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/MulgaSoft/e4macs-sub001/pkg/command"
)

func TestRegistry_EveryCommandRegistered(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	for _, id := range command.All() {
		cmd, ok := r.Get(id)
		if !ok {
			t.Errorf("%s is not registered", id)
			continue
		}
		if cmd.Description == "" || cmd.Run == nil {
			t.Errorf("%s has no description or run function", id)
		}
	}
	if len(r.List()) != len(command.All()) {
		t.Errorf("List() has %d commands; want %d", len(r.List()), len(command.All()))
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	t.Parallel()

	list := NewRegistry().List()
	if !slices.IsSortedFunc(list, func(a, b *Command) int { return strings.Compare(a.Name(), b.Name()) }) {
		t.Error("List() is not sorted by name")
	}
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if cmd, ok := r.Lookup("yank-pop"); !ok || cmd.ID != command.YankPop {
		t.Errorf("Lookup(yank-pop) = %v, %v", cmd, ok)
	}
	if _, ok := r.Lookup("self-destruct"); ok {
		t.Error("Lookup() found an unknown command")
	}
}

func TestRegistry_Complete(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	got := r.Complete("yank")
	if len(got) < 2 || !slices.Contains(got, "yank") || !slices.Contains(got, "yank-pop") {
		t.Errorf("Complete(yank) = %v", got)
	}
	if all := r.Complete(""); len(all) != len(command.All()) || !slices.IsSorted(all) {
		t.Errorf("Complete(\"\") = %d names; want all sorted", len(all))
	}
}

func TestRegistry_Suggest(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"kill-lien", "kill-line", true},
		{"yank-pup", "yank-pop", true},
		{"zzzzzzzz", "", false},
	}
	for _, tt := range tests {
		got, ok := r.Suggest(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Suggest(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDispatcher_UnknownName(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	err := f.d.ExecuteNamed("kill-lien", Args{})
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("error = %v; want ErrUnknownCommand", err)
	}
	if !strings.Contains(err.Error(), "did you mean kill-line") {
		t.Errorf("error %q has no suggestion", err)
	}
}

func TestDispatcher_BeepsInsteadOfFailing(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "text")
	if err := f.d.ExecuteNamed("yank", Args{}); err != nil {
		t.Fatalf("yank on empty ring returned %v; want nil", err)
	}
	if !f.beeped() {
		t.Error("yank on empty ring did not beep")
	}
	n, _ := f.notices.Last()
	if !strings.Contains(n.Text, "kill ring is empty") {
		t.Errorf("beep text = %q", n.Text)
	}
	if f.d.LastCommand() != command.Yank {
		t.Errorf("LastCommand() = %v; a beeping command still counts", f.d.LastCommand())
	}
}

func TestDispatcher_NoBufferBeeps(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	if err := f.w.Close("main"); err != nil {
		t.Fatal(err)
	}
	f.run(t, "kill-line")
	if !f.beeped() {
		t.Error("command without a buffer did not beep")
	}
}

func TestDispatcher_BulkSuspendsRedraw(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "")
	var during bool
	f.d.Registry().Register(&Command{
		ID:          command.ListRegisters,
		Description: "probe",
		Bulk:        true,
		Run: func(*Context, Args) error {
			during = f.w.Redrawing()
			return errors.New("boom")
		},
	})

	if err := f.d.Execute(command.ListRegisters, Args{}); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Execute() error = %v; want boom", err)
	}
	if during {
		t.Error("redraw was enabled while a bulk command ran")
	}
	if !f.w.Redrawing() {
		t.Error("redraw not restored after a failing bulk command")
	}
}

func TestDispatcher_InsertEndsKillRun(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "ab\ncd")
	f.run(t, "kill-line")
	if err := f.d.Insert("X"); err != nil {
		t.Fatal(err)
	}
	f.run(t, "kill-line")

	if got := f.kills(); !slices.Equal(got, []string{"ab", "\n"}) {
		t.Errorf("kill ring = %q; typing must end the run of kills", got)
	}
	f.expectText(t, "Xcd")
	if f.d.LastCommand() != command.KillLine {
		t.Errorf("LastCommand() = %v", f.d.LastCommand())
	}
}

func TestDispatcher_DeleteBackward(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "hello")
	f.buf().SetPoint(5)
	if err := f.d.DeleteBackward(2); err != nil {
		t.Fatal(err)
	}
	f.expectText(t, "hel")
	if f.s.Kills.Len() != 0 {
		t.Error("backspace saved text on the kill ring")
	}
}
