// ABOUTME: Key naming and numeric prefix arguments for the interactive host
// ABOUTME: Names follow Bubble Tea's KeyMsg strings so keymap files can use them directly

package interactive

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MulgaSoft/e4macs-sub001/internal/commands"
)

// keyName returns the keymap name of a key press. Space is spelled out so
// sequences like "ctrl+x r space" survive splitting on spaces.
func keyName(msg tea.KeyMsg) string {
	if msg.Type == tea.KeySpace {
		if msg.Alt {
			return "alt+space"
		}
		return "space"
	}
	return msg.String()
}

// selfInsert returns the text a key types when it is not bound.
func selfInsert(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return "", false
		}
		return string(msg.Runes), true
	case tea.KeySpace:
		return " ", !msg.Alt
	case tea.KeyEnter:
		return "\n", !msg.Alt
	case tea.KeyTab:
		return "\t", true
	}
	return "", false
}

// maxPrefix bounds typed and repeated ctrl+u arguments.
const maxPrefix = 1 << 20

// prefixArg accumulates a numeric argument typed with ctrl+u or alt+digits.
type prefixArg struct {
	active   bool
	times    int
	digits   bool
	negative bool
	value    int
}

// universal handles a ctrl+u press.
func (p *prefixArg) universal() {
	p.active = true
	p.times++
}

// feed consumes a key while an argument is being typed. It reports false
// for keys that end the argument.
func (p *prefixArg) feed(name string) bool {
	key := strings.TrimPrefix(name, "alt+")
	if !p.active && key == name {
		return false
	}
	switch {
	case key == "-" && !p.digits && !p.negative:
		p.active, p.negative = true, true
		return true
	case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
		p.active, p.digits = true, true
		p.value = min(p.value*10+int(key[0]-'0'), maxPrefix)
		return true
	}
	return false
}

// args converts the typed argument to command arguments.
func (p prefixArg) args() commands.Args {
	if !p.active {
		return commands.Args{}
	}
	n := 1
	switch {
	case p.digits:
		n = p.value
	case p.times > 0 && !p.negative:
		n = 1
		for range p.times {
			n = min(n*4, maxPrefix)
		}
	}
	if p.negative {
		n = -n
	}
	return commands.Args{}.WithPrefix(n)
}

// String renders the argument for the echo area while it is typed.
func (p prefixArg) String() string {
	if !p.active {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.TrimSpace(strings.Repeat("ctrl+u ", max(1, p.times))))
	if p.negative {
		b.WriteString(" -")
	}
	if p.digits {
		fmt.Fprintf(&b, " %d", p.value)
	}
	return b.String() + "-"
}
