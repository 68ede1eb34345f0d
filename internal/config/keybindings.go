// ABOUTME: Keymap file parser: command names bound to Emacs-style key sequences
// ABOUTME: Reads keybindings.yaml; a sequence is space separated keys like "ctrl+x r s"

package config

import (
	"fmt"
	"maps"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MulgaSoft/e4macs-sub001/internal/log"
	"github.com/MulgaSoft/e4macs-sub001/pkg/command"
)

// Keybindings maps each command to the key sequences that invoke it.
type Keybindings struct {
	Bindings map[command.ID][]string
}

// rawKeybindings is the on-disk form keyed by command name.
type rawKeybindings map[string][]string

// NewKeybindings creates a Keybindings with the default Emacs bindings.
func NewKeybindings() *Keybindings {
	kb := &Keybindings{Bindings: make(map[command.ID][]string)}
	kb.setDefaultBindings()
	return kb
}

func (kb *Keybindings) setDefaultBindings() {
	kb.Bindings[command.ForwardChar] = []string{"ctrl+f", "right"}
	kb.Bindings[command.BackwardChar] = []string{"ctrl+b", "left"}
	kb.Bindings[command.ForwardWord] = []string{"alt+f", "ctrl+right"}
	kb.Bindings[command.BackwardWord] = []string{"alt+b", "ctrl+left"}
	kb.Bindings[command.BeginningOfLine] = []string{"ctrl+a", "home"}
	kb.Bindings[command.EndOfLine] = []string{"ctrl+e", "end"}
	kb.Bindings[command.BeginningOfBuffer] = []string{"alt+<"}
	kb.Bindings[command.EndOfBuffer] = []string{"alt+>"}

	kb.Bindings[command.DeleteChar] = []string{"ctrl+d", "delete"}

	kb.Bindings[command.KillLine] = []string{"ctrl+k"}
	kb.Bindings[command.KillWord] = []string{"alt+d"}
	kb.Bindings[command.BackwardKillWord] = []string{"alt+backspace"}
	kb.Bindings[command.KillRegion] = []string{"ctrl+w"}
	kb.Bindings[command.KillRingSave] = []string{"alt+w"}
	kb.Bindings[command.AppendNextKill] = []string{"alt+ctrl+w"}
	kb.Bindings[command.Yank] = []string{"ctrl+y"}
	kb.Bindings[command.YankPop] = []string{"alt+y"}

	kb.Bindings[command.CopyToRegister] = []string{"ctrl+x r s", "ctrl+x x"}
	kb.Bindings[command.AppendToRegister] = []string{"ctrl+x r a"}
	kb.Bindings[command.PrependToRegister] = []string{"ctrl+x r p"}
	kb.Bindings[command.InsertRegister] = []string{"ctrl+x r i", "ctrl+x r g"}
	kb.Bindings[command.PointToRegister] = []string{"ctrl+x r space"}
	kb.Bindings[command.JumpToRegister] = []string{"ctrl+x r j"}
	kb.Bindings[command.NumberToRegister] = []string{"ctrl+x r n"}
	kb.Bindings[command.IncrementRegister] = []string{"ctrl+x r +"}
	kb.Bindings[command.ListRegisters] = []string{"ctrl+x r l"}

	kb.Bindings[command.SetMarkCommand] = []string{"ctrl+@"}
	kb.Bindings[command.ExchangePointAndMark] = []string{"ctrl+x ctrl+x"}
	kb.Bindings[command.PopMark] = []string{"ctrl+c ctrl+@"}
	kb.Bindings[command.PopGlobalMark] = []string{"ctrl+x ctrl+@"}
	kb.Bindings[command.PushTagMark] = []string{"alt+."}
	kb.Bindings[command.PopTagMark] = []string{"alt+,"}
}

// GetBindings returns the sequences bound to id.
func (kb *Keybindings) GetBindings(id command.ID) []string {
	return kb.Bindings[id]
}

// Merge overlays other's bindings; a command listed in other replaces its
// sequences entirely, and an empty list unbinds it.
func (kb *Keybindings) Merge(other *Keybindings) {
	maps.Copy(kb.Bindings, other.Bindings)
}

// LoadKeybindings reads a keymap file. Unknown command names are skipped
// with a warning.
func LoadKeybindings(path string) (*Keybindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw rawKeybindings
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing keymap %s: %w", path, err)
	}

	kb := &Keybindings{Bindings: make(map[command.ID][]string, len(raw))}
	for name, seqs := range raw {
		id, ok := command.Parse(name)
		if !ok {
			log.Warn("keymap %s: unknown command %q", path, name)
			continue
		}
		normalized := make([]string, 0, len(seqs))
		for _, seq := range seqs {
			if s := NormalizeSequence(seq); s != "" {
				normalized = append(normalized, s)
			}
		}
		kb.Bindings[id] = normalized
	}
	return kb, nil
}

// SaveKeybindings writes the bindings as YAML keyed by command name.
func (kb *Keybindings) SaveKeybindings(path string) error {
	raw := make(rawKeybindings, len(kb.Bindings))
	for id, seqs := range kb.Bindings {
		raw[id.String()] = seqs
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// NormalizeSequence lowercases modifiers and collapses whitespace so
// "Ctrl+X  r s" and "ctrl+x r s" compare equal.
func NormalizeSequence(seq string) string {
	keys := strings.Fields(seq)
	for i, k := range keys {
		keys[i] = normalizeKey(k)
	}
	return strings.Join(keys, " ")
}

func normalizeKey(k string) string {
	parts := strings.Split(k, "+")
	if len(parts) == 1 {
		return k
	}
	ctrl := false
	for i := range parts[:len(parts)-1] {
		parts[i] = strings.ToLower(parts[i])
		ctrl = ctrl || parts[i] == "ctrl"
	}
	// Terminals cannot tell ctrl+X from ctrl+x; alt+X stays distinct.
	last := parts[len(parts)-1]
	if ctrl || len([]rune(last)) > 1 {
		last = strings.ToLower(last)
	}
	parts[len(parts)-1] = last
	return strings.Join(parts, "+")
}
