// ABOUTME: Editing command registry: every Emacs command keyed by identity and name
// ABOUTME: Supports fuzzy completion for M-x and closest-name suggestions for typos

package commands

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/MulgaSoft/e4macs-sub001/pkg/command"
	"github.com/MulgaSoft/e4macs-sub001/pkg/fuzzy"
)

// Command is one editing command.
type Command struct {
	ID          command.ID
	Description string
	// Bulk commands run with redraw suspended.
	Bulk bool
	// Register commands read a register name before running.
	Register bool
	Run      func(ctx *Context, args Args) error
}

// Name returns the Emacs name of the command.
func (c *Command) Name() string { return c.ID.String() }

// Registry holds all registered commands.
type Registry struct {
	commands map[command.ID]*Command
	names    []string
}

// NewRegistry creates a registry with every built-in command registered.
func NewRegistry() *Registry {
	r := &Registry{commands: make(map[command.ID]*Command)}
	r.registerMotionCommands()
	r.registerKillCommands()
	r.registerRegisterCommands()
	r.registerMarkCommands()
	return r
}

// Register adds or replaces a command.
func (r *Registry) Register(cmd *Command) {
	if _, ok := r.commands[cmd.ID]; !ok {
		r.names = append(r.names, cmd.Name())
		sort.Strings(r.names)
	}
	r.commands[cmd.ID] = cmd
}

// Get returns a command by identity.
func (r *Registry) Get(id command.ID) (*Command, bool) {
	cmd, ok := r.commands[id]
	return cmd, ok
}

// Lookup returns a command by Emacs name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	id, ok := command.Parse(name)
	if !ok {
		return nil, false
	}
	return r.Get(id)
}

// List returns all commands sorted by name for deterministic output.
func (r *Registry) List() []*Command {
	result := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		result = append(result, cmd)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// Complete returns the command names matching input, best first. Empty
// input lists every name alphabetically.
func (r *Registry) Complete(input string) []string {
	return fuzzy.Strings(input, r.names)
}

// Suggest returns the registered name closest to a mistyped one, if any
// is close enough to be a plausible typo.
func (r *Registry) Suggest(name string) (string, bool) {
	best, bestDist := "", -1
	for _, candidate := range r.names {
		d := levenshtein.ComputeDistance(name, candidate)
		if bestDist < 0 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len(name)/3) {
		return "", false
	}
	return best, true
}
