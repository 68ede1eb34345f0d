// ABOUTME: System clipboard bridge used for interprogram cut of kill ring text
// ABOUTME: Pipes text to pbcopy (macOS), wl-copy (Wayland), or xclip (X11)

package clipboard

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Sink receives text destined for the system clipboard.
type Sink interface {
	Copy(text string) error
}

// System writes to the platform clipboard through an external command.
type System struct {
	goos   string
	getenv func(string) string
	argv   []string
}

// NewSystem returns a Sink for the running platform.
func NewSystem() *System {
	return &System{goos: runtime.GOOS, getenv: os.Getenv}
}

// NewCommand returns a Sink that pipes text to argv instead of the
// platform default. An empty argv behaves like NewSystem.
func NewCommand(argv []string) *System {
	s := NewSystem()
	s.argv = argv
	return s
}

// Available reports whether a clipboard command exists on PATH.
func (s *System) Available() bool {
	name, _ := s.command()
	if name == "" {
		return false
	}
	_, err := exec.LookPath(name)
	return err == nil
}

// Copy pipes text to the clipboard command.
func (s *System) Copy(text string) error {
	name, args := s.command()
	if name == "" {
		return fmt.Errorf("clipboard not supported on %s", s.goos)
	}
	c := exec.Command(name, args...)
	c.Stdin = strings.NewReader(text)
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (s *System) command() (string, []string) {
	if len(s.argv) > 0 {
		return s.argv[0], s.argv[1:]
	}
	return clipboardCmd(s.goos, s.getenv)
}

// clipboardCmd returns the clipboard command and arguments for goos.
func clipboardCmd(goos string, getenv func(string) string) (string, []string) {
	switch goos {
	case "darwin":
		return "pbcopy", nil
	case "linux", "freebsd", "openbsd":
		if getenv("WAYLAND_DISPLAY") != "" {
			return "wl-copy", nil
		}
		return "xclip", []string{"-selection", "clipboard"}
	default:
		return "", nil
	}
}

// Memory is an in-process Sink that remembers every copy.
type Memory struct {
	Copies []string
}

// Copy records text.
func (m *Memory) Copy(text string) error {
	m.Copies = append(m.Copies, text)
	return nil
}

// Last returns the most recent copy.
func (m *Memory) Last() string {
	if len(m.Copies) == 0 {
		return ""
	}
	return m.Copies[len(m.Copies)-1]
}
