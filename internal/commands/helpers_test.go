// ABOUTME: Shared fixture for command tests: a session, a workspace, and a dispatcher
// ABOUTME: Records notices so tests can assert on beeps and messages

package commands

import (
	"testing"

	"github.com/MulgaSoft/e4macs-sub001/internal/config"
	"github.com/MulgaSoft/e4macs-sub001/internal/editor"
	"github.com/MulgaSoft/e4macs-sub001/internal/notify"
	"github.com/MulgaSoft/e4macs-sub001/internal/session"
)

type fixture struct {
	d       *Dispatcher
	w       *editor.Workspace
	s       *session.Session
	notices *notify.Recorder
}

func newFixture(t *testing.T, text string) *fixture {
	t.Helper()
	s := session.New(config.Defaults())
	w := editor.NewWorkspace()
	s.Attach(w)
	w.Open("main", text)
	rec := &notify.Recorder{}
	s.Notices.Subscribe(rec.Handle)
	return &fixture{d: NewDispatcher(NewRegistry(), s, w), w: w, s: s, notices: rec}
}

func (f *fixture) run(t *testing.T, name string, args ...Args) {
	t.Helper()
	var a Args
	if len(args) > 0 {
		a = args[0]
	}
	if err := f.d.ExecuteNamed(name, a); err != nil {
		t.Fatalf("%s: %v", name, err)
	}
}

func (f *fixture) buf() editor.Buffer {
	return f.w.Current()
}

func (f *fixture) kills() []string {
	var out []string
	for e := range f.s.Kills.Entries() {
		out = append(out, e.Text)
	}
	return out
}

// beeped reports whether the most recent notice was a beep.
func (f *fixture) beeped() bool {
	n, ok := f.notices.Last()
	return ok && n.Kind == notify.Beep
}

func (f *fixture) expectText(t *testing.T, want string) {
	t.Helper()
	if got := f.buf().Text(); got != want {
		t.Errorf("buffer = %q; want %q", got, want)
	}
}
