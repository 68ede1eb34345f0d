// ABOUTME: Session owns the editing state shared by every command
// ABOUTME: One kill ring, one register store, one mark ring set, settings, and notices

package session

import (
	"github.com/MulgaSoft/e4macs-sub001/internal/config"
	"github.com/MulgaSoft/e4macs-sub001/internal/editor"
	"github.com/MulgaSoft/e4macs-sub001/internal/log"
	"github.com/MulgaSoft/e4macs-sub001/internal/notify"
	"github.com/MulgaSoft/e4macs-sub001/pkg/clipboard"
	"github.com/MulgaSoft/e4macs-sub001/pkg/killring"
	"github.com/MulgaSoft/e4macs-sub001/pkg/markring"
	"github.com/MulgaSoft/e4macs-sub001/pkg/register"
)

// Session is the state of one editing session. It is used from a single
// command thread and is not safe for concurrent use.
type Session struct {
	Kills     *killring.KillRing
	Registers *register.Store
	Marks     *markring.Set
	Notices   *notify.Bus

	settings  config.Settings
	clipboard clipboard.Sink
	fixedClip bool
}

// Option configures a Session.
type Option func(*Session)

// WithClipboard sends interprogram cut text to sink instead of the
// system clipboard.
func WithClipboard(sink clipboard.Sink) Option {
	return func(s *Session) {
		s.clipboard = sink
		s.fixedClip = true
	}
}

// WithNotices shares an existing notification bus.
func WithNotices(bus *notify.Bus) Option {
	return func(s *Session) { s.Notices = bus }
}

// New creates a session configured by settings.
func New(settings config.Settings, opts ...Option) *Session {
	s := &Session{
		Kills:     killring.NewSize(settings.KillRingMax),
		Registers: register.New(),
		Marks:     markring.NewSet(settings.MarkOptions()),
		Notices:   notify.New(),
		settings:  settings,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.configureClipboard()
	s.configureLog()
	return s
}

// Settings returns the active settings.
func (s *Session) Settings() config.Settings {
	return s.settings
}

// Apply switches to new settings without discarding saved state: rings
// are resized and mark dedup modes replaced.
func (s *Session) Apply(settings config.Settings) {
	s.settings = settings
	s.Kills.SetCapacity(settings.KillRingMax)
	s.Marks.Apply(settings.MarkOptions())
	s.configureClipboard()
	s.configureLog()
	log.Info("settings applied: kill ring %d, mark rings %d/%d/%d",
		settings.KillRingMax, settings.MarkRingMax, settings.GlobalMarkRingMax, settings.TagRingMax)
}

// Attach hooks the workspace so stored marks and register locations follow
// edits and closed buffers drop their marks.
func (s *Session) Attach(w *editor.Workspace) {
	w.OnEdit = func(e editor.Edit) {
		s.Marks.Remap(e.Buffer, e.Adjust)
		s.Registers.Remap(e.Buffer, e.Adjust)
	}
	w.OnClose = func(id string) {
		s.Marks.Forget(id)
	}
}

func (s *Session) configureClipboard() {
	if !s.fixedClip {
		s.clipboard = clipboard.NewCommand(s.settings.ClipboardArgv())
	}
	if !s.settings.Cut() {
		s.Kills.OnNewText = nil
		return
	}
	sink := s.clipboard
	s.Kills.OnNewText = func(text string) {
		if err := sink.Copy(text); err != nil {
			log.Warn("interprogram cut: %v", err)
		}
	}
}

func (s *Session) configureLog() {
	if l, ok := log.ParseLevel(s.settings.LogLevel); ok {
		log.SetLevel(l)
	}
}
