// ABOUTME: Keymap manager resolving multi-key sequences to commands
// ABOUTME: Merges global and project keymaps, tracks prefix keys, detects conflicts

package keybindings

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MulgaSoft/e4macs-sub001/internal/config"
	"github.com/MulgaSoft/e4macs-sub001/internal/log"
	"github.com/MulgaSoft/e4macs-sub001/pkg/command"
)

// Status is the outcome of resolving a partial key sequence.
type Status int

const (
	// Unbound means no binding starts with the sequence.
	Unbound Status = iota
	// Prefix means the sequence is the start of at least one binding.
	Prefix
	// Bound means the sequence names a command.
	Bound
)

// ConflictInfo describes a binding conflict where multiple commands share
// a sequence, or one binding is a prefix of another.
type ConflictInfo struct {
	Sequence string
	Commands []command.ID
}

// Manager provides lookup from key sequences to commands.
type Manager struct {
	bindings *config.Keybindings
	lookup   map[string]command.ID // "ctrl+x r s" → CopyToRegister
	prefixes map[string]bool       // "ctrl+x", "ctrl+x r"
}

// New creates a Manager from keymap files loaded in order; later files
// win. Missing files are ignored.
func New(paths ...string) *Manager {
	m := &Manager{}
	m.Reload(paths...)
	return m
}

// NewFromBindings creates a Manager from an existing Keybindings instance.
func NewFromBindings(kb *config.Keybindings) *Manager {
	m := &Manager{bindings: kb}
	m.buildLookup()
	return m
}

// Reload re-reads keymap files and rebuilds the lookup tables.
func (m *Manager) Reload(paths ...string) {
	kb := config.NewKeybindings()
	for _, path := range paths {
		if path == "" {
			continue
		}
		loaded, err := config.LoadKeybindings(path)
		if err != nil {
			log.Debug("keymap %s not loaded: %v", path, err)
			continue
		}
		kb.Merge(loaded)
	}
	m.bindings = kb
	m.buildLookup()
}

// Resolve looks up a sequence of key names typed so far.
func (m *Manager) Resolve(keys []string) (command.ID, Status) {
	seq := strings.Join(keys, " ")
	if id, ok := m.lookup[seq]; ok {
		return id, Bound
	}
	if m.prefixes[seq] {
		return command.None, Prefix
	}
	return command.None, Unbound
}

// KeysFor returns the sequences bound to id.
func (m *Manager) KeysFor(id command.ID) []string {
	return m.bindings.GetBindings(id)
}

// Conflicts detects sequences bound to more than one command and bindings
// shadowed by a longer sequence using them as a prefix.
func (m *Manager) Conflicts() []ConflictInfo {
	seqCommands := make(map[string][]command.ID)
	for id, seqs := range m.bindings.Bindings {
		for _, s := range seqs {
			seqCommands[s] = append(seqCommands[s], id)
		}
	}

	var conflicts []ConflictInfo
	for s, ids := range seqCommands {
		if len(ids) > 1 || m.prefixes[s] {
			slices.Sort(ids)
			conflicts = append(conflicts, ConflictInfo{Sequence: s, Commands: ids})
		}
	}
	slices.SortFunc(conflicts, func(a, b ConflictInfo) int {
		return strings.Compare(a.Sequence, b.Sequence)
	})
	return conflicts
}

// FormatAll renders every binding as a markdown table grouped by
// category, for describe-bindings.
func (m *Manager) FormatAll() string {
	var b strings.Builder
	b.WriteString("# Key bindings\n\n")

	categories := []struct {
		name string
		ids  []command.ID
	}{
		{"Motion", []command.ID{
			command.ForwardChar, command.BackwardChar,
			command.ForwardWord, command.BackwardWord,
			command.BeginningOfLine, command.EndOfLine,
			command.BeginningOfBuffer, command.EndOfBuffer,
		}},
		{"Killing and yanking", []command.ID{
			command.DeleteChar, command.KillLine, command.KillWord,
			command.BackwardKillWord, command.KillRegion, command.KillRingSave,
			command.AppendNextKill, command.Yank, command.YankPop,
			command.RotateYankPointer, command.DeleteRegion,
		}},
		{"Registers", []command.ID{
			command.CopyToRegister, command.AppendToRegister,
			command.PrependToRegister, command.InsertRegister,
			command.PointToRegister, command.JumpToRegister,
			command.NumberToRegister, command.IncrementRegister,
			command.ListRegisters,
		}},
		{"Marks", []command.ID{
			command.SetMarkCommand, command.ExchangePointAndMark,
			command.PopMark, command.PopGlobalMark,
			command.PushTagMark, command.PopTagMark,
		}},
	}

	for _, cat := range categories {
		fmt.Fprintf(&b, "## %s\n\n| Keys | Command |\n|---|---|\n", cat.name)
		for _, id := range cat.ids {
			keys := m.bindings.GetBindings(id)
			if len(keys) == 0 {
				continue
			}
			quoted := make([]string, len(keys))
			for i, k := range keys {
				quoted[i] = "`" + k + "`"
			}
			fmt.Fprintf(&b, "| %s | %s |\n", strings.Join(quoted, ", "), id)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Manager) buildLookup() {
	m.lookup = make(map[string]command.ID, len(m.bindings.Bindings)*2)
	m.prefixes = make(map[string]bool)
	for id, seqs := range m.bindings.Bindings {
		for _, s := range seqs {
			m.lookup[s] = id
			keys := strings.Fields(s)
			for i := 1; i < len(keys); i++ {
				m.prefixes[strings.Join(keys[:i], " ")] = true
			}
		}
	}
}
