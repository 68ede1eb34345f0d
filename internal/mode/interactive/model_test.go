// ABOUTME: Tests for the interactive model driven by tea.KeyMsg sequences
// ABOUTME: Covers self-insert, prefix keys, register prompts, M-x, prefix arguments, and panes

package interactive

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MulgaSoft/e4macs-sub001/internal/commands"
	"github.com/MulgaSoft/e4macs-sub001/internal/config"
	"github.com/MulgaSoft/e4macs-sub001/internal/editor"
	"github.com/MulgaSoft/e4macs-sub001/internal/keybindings"
	"github.com/MulgaSoft/e4macs-sub001/internal/notify"
	"github.com/MulgaSoft/e4macs-sub001/internal/session"
	"github.com/MulgaSoft/e4macs-sub001/pkg/register"
)

type harness struct {
	m       Model
	w       *editor.Workspace
	s       *session.Session
	notices *notify.Recorder
}

func newHarness(t *testing.T, text string) *harness {
	t.Helper()
	s := session.New(config.Defaults())
	w := editor.NewWorkspace()
	s.Attach(w)
	w.Open("main", text)
	rec := &notify.Recorder{}
	s.Notices.Subscribe(rec.Handle)
	m := New(Deps{
		Dispatcher: commands.NewDispatcher(commands.NewRegistry(), s, w),
		Workspace:  w,
		Keys:       keybindings.NewFromBindings(config.NewKeybindings()),
	})
	t.Cleanup(m.Close)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return &harness{m: next.(Model), w: w, s: s, notices: rec}
}

func (h *harness) press(t *testing.T, keys ...tea.KeyMsg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = h.m.Update(k)
		h.m = next.(Model)
	}
	return cmd
}

func (h *harness) text() string {
	return h.w.Current().Text()
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func alt(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true} }

// typed returns the key presses that type s.
func typed(s string) []tea.KeyMsg {
	var keys []tea.KeyMsg
	for _, r := range s {
		if r == ' ' {
			keys = append(keys, key(tea.KeySpace))
			continue
		}
		keys = append(keys, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return keys
}

func TestKeyName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		msg  tea.KeyMsg
		want string
	}{
		{key(tea.KeySpace), "space"},
		{tea.KeyMsg{Type: tea.KeySpace, Alt: true}, "alt+space"},
		{key(tea.KeyCtrlK), "ctrl+k"},
		{alt('y'), "alt+y"},
		{tea.KeyMsg{Type: tea.KeyCtrlW, Alt: true}, "alt+ctrl+w"},
		{key(tea.KeyCtrlAt), "ctrl+@"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, "r"},
	}
	for _, tt := range tests {
		if got := keyName(tt.msg); got != tt.want {
			t.Errorf("keyName(%v) = %q; want %q", tt.msg, got, tt.want)
		}
	}
}

func TestPrefixArg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		universal int
		keys      []string
		want      int
		hasPrefix bool
	}{
		{"none", 0, nil, 0, false},
		{"ctrl+u", 1, nil, 4, true},
		{"ctrl+u ctrl+u", 2, nil, 16, true},
		{"ctrl+u digits", 1, []string{"1", "2"}, 12, true},
		{"alt digits", 0, []string{"alt+3"}, 3, true},
		{"negative", 1, []string{"-"}, -1, true},
		{"negative digits", 0, []string{"alt+-", "alt+5"}, -5, true},
		{"long digits clamp", 1, strings.Split(strings.Repeat("9", 30), ""), maxPrefix, true},
		{"negative long digits clamp", 0, append([]string{"alt+-"}, strings.Split(strings.Repeat("8", 25), "")...), -maxPrefix, true},
		{"repeated ctrl+u clamps", 40, nil, maxPrefix, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var p prefixArg
			for range tt.universal {
				p.universal()
			}
			for _, k := range tt.keys {
				if !p.feed(k) {
					t.Fatalf("feed(%q) = false", k)
				}
			}
			args := p.args()
			if args.HasPrefix != tt.hasPrefix || args.Prefix != tt.want {
				t.Errorf("args = %+v; want prefix %d (%v)", args, tt.want, tt.hasPrefix)
			}
		})
	}
}

func TestPrefixArg_PlainKeysDoNotStartArgument(t *testing.T) {
	t.Parallel()

	var p prefixArg
	if p.feed("5") || p.feed("-") {
		t.Error("plain digits started an argument")
	}
}

func TestTypingInserts(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	h.press(t, typed("hi there")...)
	h.press(t, key(tea.KeyEnter), key(tea.KeyBackspace), key(tea.KeyBackspace))

	if got := h.text(); got != "hi ther" {
		t.Errorf("buffer = %q", got)
	}
}

func TestKillAndYankKeys(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "abc")
	h.press(t, key(tea.KeyCtrlK))
	if h.text() != "" || h.s.Kills.Len() != 1 {
		t.Fatalf("after ctrl+k: buffer %q, %d kills", h.text(), h.s.Kills.Len())
	}

	h.s.Kills.RecordCopy("xyz", 0)
	h.press(t, key(tea.KeyCtrlY))
	if h.text() != "xyz" {
		t.Errorf("after ctrl+y: %q", h.text())
	}
	h.press(t, alt('y'))
	if h.text() != "abc" {
		t.Errorf("after alt+y: %q", h.text())
	}
}

func TestRegisterPrompt(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "hello")
	h.press(t, key(tea.KeyCtrlAt), key(tea.KeyCtrlE))
	h.press(t, key(tea.KeyCtrlX))
	if len(h.m.pending) != 1 || !strings.Contains(h.m.echoLine(), "ctrl+x-") {
		t.Fatalf("pending = %v, echo %q", h.m.pending, h.m.echoLine())
	}
	h.press(t, typed("rs")...)
	if h.m.mini == nil || h.m.mini.kind != promptRegister {
		t.Fatal("ctrl+x r s did not prompt for a register")
	}
	if !strings.Contains(h.m.echoLine(), "copy-to-register register:") {
		t.Errorf("prompt = %q", h.m.echoLine())
	}

	h.press(t, key(tea.KeyCtrlF))
	if h.m.mini == nil {
		t.Fatal("invalid register key closed the prompt")
	}
	h.press(t, typed("a")...)

	if txt, _ := h.s.Registers.Text("a"); txt != "hello" {
		t.Errorf("register a = %q", txt)
	}
	if h.m.mini != nil {
		t.Error("prompt still open")
	}

	h.press(t, key(tea.KeyCtrlX))
	h.press(t, typed("ria")...)
	if h.text() != "hellohello" {
		t.Errorf("after insert-register: %q", h.text())
	}
}

func TestPointToRegisterWithSpaceKey(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "abcdef")
	h.press(t, key(tea.KeyCtrlF), key(tea.KeyCtrlF))
	h.press(t, key(tea.KeyCtrlX), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, key(tea.KeySpace))
	h.press(t, typed("p")...)
	h.press(t, key(tea.KeyCtrlE))
	h.press(t, key(tea.KeyCtrlX))
	h.press(t, typed("rjp")...)

	if h.w.Current().Point() != 2 {
		t.Errorf("point = %d; want 2", h.w.Current().Point())
	}
}

func TestUniversalArgument(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "0123456789")
	h.press(t, key(tea.KeyCtrlU))
	if !strings.Contains(h.m.echoLine(), "ctrl+u") {
		t.Errorf("echo = %q", h.m.echoLine())
	}
	h.press(t, key(tea.KeyCtrlF))
	if p := h.w.Current().Point(); p != 4 {
		t.Errorf("ctrl+u ctrl+f: point %d; want 4", p)
	}

	h.press(t, alt('3'), key(tea.KeyCtrlB))
	if p := h.w.Current().Point(); p != 1 {
		t.Errorf("alt+3 ctrl+b: point %d; want 1", p)
	}

	h.press(t, key(tea.KeyCtrlU), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	h.press(t, typed("x")...)
	if got := h.text(); got != "0xx123456789" {
		t.Errorf("ctrl+u 2 x: %q", got)
	}
}

func TestMetaX(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "one\ntwo")
	h.press(t, alt('x'))
	if h.m.mini == nil || h.m.mini.kind != promptCommand {
		t.Fatal("alt+x did not open the command prompt")
	}
	h.press(t, typed("kill-line")...)
	h.press(t, key(tea.KeyEnter))

	if h.text() != "\ntwo" {
		t.Errorf("buffer = %q", h.text())
	}
}

func TestMetaX_Completion(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	h.press(t, alt('x'))
	h.press(t, typed("yank-p")...)
	if !strings.Contains(h.m.echoLine(), "yank-pop") {
		t.Errorf("completions = %q", h.m.echoLine())
	}
	h.press(t, key(tea.KeyTab))
	if h.m.mini.Text() != "yank-pop" {
		t.Errorf("tab completed to %q", h.m.mini.Text())
	}
}

func TestMetaX_UnknownCommand(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	h.press(t, alt('x'))
	h.press(t, typed("kill-lien")...)
	h.press(t, key(tea.KeyEnter))

	n, _ := h.notices.Last()
	if n.Kind != notify.Error || !strings.Contains(n.Text, "did you mean kill-line") {
		t.Errorf("notice = %+v", n)
	}
}

func TestMetaX_RegisterCommandPrompts(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	h.press(t, key(tea.KeyCtrlU))
	h.press(t, alt('x'))
	h.press(t, typed("number-to-register")...)
	h.press(t, key(tea.KeyEnter))
	if h.m.mini == nil || h.m.mini.kind != promptRegister {
		t.Fatal("register command did not prompt")
	}
	h.press(t, typed("n")...)

	if v, _ := h.s.Registers.Get("n"); v != register.Number(4) {
		t.Errorf("register n = %v; want the prefix argument 4", v)
	}
}

func TestCtrlGCancels(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	h.press(t, key(tea.KeyCtrlU), key(tea.KeyCtrlX), key(tea.KeyCtrlG))
	if len(h.m.pending) != 0 || h.m.arg.active {
		t.Errorf("pending %v, arg %+v after ctrl+g", h.m.pending, h.m.arg)
	}
	n, _ := h.notices.Last()
	if n.Kind != notify.Beep || n.Text != "Quit" {
		t.Errorf("notice = %+v", n)
	}

	h.press(t, alt('x'), key(tea.KeyCtrlG))
	if h.m.mini != nil {
		t.Error("ctrl+g did not close the prompt")
	}
}

func TestUndefinedSequenceBeeps(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	h.press(t, key(tea.KeyCtrlX), key(tea.KeyCtrlZ))
	n, _ := h.notices.Last()
	if n.Kind != notify.Beep || n.Text != "ctrl+x ctrl+z is undefined" {
		t.Errorf("notice = %+v", n)
	}
	if len(h.m.pending) != 0 {
		t.Error("pending keys kept after an undefined sequence")
	}
}

func TestListingPanes(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	h.press(t, key(tea.KeyCtrlX))
	h.press(t, typed("rl")...)
	if h.m.sh.pane == nil || h.m.sh.pane.title != "Registers" {
		t.Fatalf("pane = %+v", h.m.sh.pane)
	}
	h.press(t, typed("x")...)
	if h.m.sh.pane == nil {
		t.Error("other keys dismissed the pane")
	}
	if h.text() != "" {
		t.Error("key typed into the buffer while a pane was open")
	}
	h.press(t, typed("q")...)
	if h.m.sh.pane != nil {
		t.Error("q did not dismiss the pane")
	}

	h.press(t, key(tea.KeyCtrlH), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	if h.m.sh.pane == nil || !strings.Contains(h.m.sh.pane.markdown, "| `ctrl+y` | yank |") {
		t.Errorf("bindings pane = %+v", h.m.sh.pane)
	}
}

func TestBufferCycling(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "first")
	h.w.Open("second", "")
	h.press(t, key(tea.KeyCtrlX), key(tea.KeyRight))
	if id := h.w.Current().ID(); id != "main" {
		t.Errorf("after ctrl+x right: %s; want wrap to main", id)
	}
	h.press(t, key(tea.KeyCtrlX), key(tea.KeyLeft))
	if id := h.w.Current().ID(); id != "second" {
		t.Errorf("after ctrl+x left: %s", id)
	}
	h.press(t, key(tea.KeyCtrlX), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	if ids := h.w.Buffers(); len(ids) != 1 || ids[0] != "main" {
		t.Errorf("buffers after ctrl+x k = %v", ids)
	}
}

func TestQuit(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	cmd := h.press(t, key(tea.KeyCtrlX), key(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("no command returned")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+x ctrl+c did not quit")
	}
	if h.m.View() != "" {
		t.Error("view not cleared on quit")
	}
}

func TestReloadMessage(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	calls := 0
	h.m.reload = func() error {
		calls++
		if calls > 1 {
			return errors.New("bad yaml")
		}
		return nil
	}

	next, _ := h.m.Update(reloadMsg{changed: []string{"/home/u/.e4macs/settings.yaml"}})
	h.m = next.(Model)
	if n, _ := h.notices.Last(); n.Text != "Reloaded settings.yaml" {
		t.Errorf("notice = %+v", n)
	}

	next, _ = h.m.Update(reloadMsg{changed: []string{"x"}})
	h.m = next.(Model)
	if n, _ := h.notices.Last(); n.Kind != notify.Error || !strings.Contains(n.Text, "bad yaml") {
		t.Errorf("notice = %+v", n)
	}
}

func TestView(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "")
	h.press(t, typed("hi")...)
	view := h.m.View()
	if !strings.Contains(view, "hi") || !strings.Contains(view, "main") {
		t.Errorf("view missing buffer text or name:\n%s", view)
	}
	if lines := strings.Count(view, "\n") + 1; lines != 24 {
		t.Errorf("view has %d lines; want the window height", lines)
	}
}

func TestView_ScrollsToPoint(t *testing.T) {
	t.Parallel()

	lines := make([]string, 20)
	for i := range lines {
		lines[i] = fmt.Sprintf("l%02d", i+1)
	}
	h := newHarness(t, strings.Join(lines, "\n"))
	h.w.Current().SetPoint(h.w.Current().Len())
	next, _ := h.m.Update(tea.WindowSizeMsg{Width: 40, Height: 5})
	h.m = next.(Model)

	body := h.m.renderBuffer(3)
	if len(body) != 3 {
		t.Fatalf("rendered %d lines; want 3", len(body))
	}
	if !strings.HasPrefix(body[0], "l18") {
		t.Errorf("first visible line = %q; want l18", body[0])
	}
}
