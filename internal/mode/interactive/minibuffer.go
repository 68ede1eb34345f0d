// ABOUTME: Minibuffer prompts: M-x command entry with fuzzy completion and register names
// ABOUTME: A prompt owns the keyboard until it completes or ctrl+g cancels it

package interactive

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MulgaSoft/e4macs-sub001/internal/commands"
	"github.com/MulgaSoft/e4macs-sub001/pkg/command"
)

type promptKind int

const (
	promptCommand promptKind = iota
	promptRegister
)

const maxCompletions = 5

// minibuffer is an active prompt in the echo area.
type minibuffer struct {
	kind    promptKind
	prompt  string
	input   []rune
	matches []string

	// Command and argument waiting for a register name.
	id   command.ID
	args commands.Args
}

func commandPrompt(reg *commands.Registry, args commands.Args) *minibuffer {
	mb := &minibuffer{kind: promptCommand, prompt: "M-x ", args: args}
	mb.complete(reg)
	return mb
}

func registerPrompt(cmd *commands.Command, args commands.Args) *minibuffer {
	return &minibuffer{
		kind:   promptRegister,
		prompt: cmd.Name() + " register: ",
		id:     cmd.ID,
		args:   args,
	}
}

func (mb *minibuffer) complete(reg *commands.Registry) {
	mb.matches = reg.Complete(string(mb.input))
}

// promptResult is what a key press did to the prompt.
type promptResult int

const (
	promptPending promptResult = iota
	promptDone
	promptCancel
	promptInvalid
)

// handle applies a key press to the prompt.
func (mb *minibuffer) handle(msg tea.KeyMsg, reg *commands.Registry) promptResult {
	switch msg.Type {
	case tea.KeyCtrlG, tea.KeyEsc:
		return promptCancel
	}
	if mb.kind == promptRegister {
		switch msg.Type {
		case tea.KeyRunes:
			if msg.Alt || len(msg.Runes) != 1 {
				return promptInvalid
			}
			mb.input = msg.Runes
			return promptDone
		case tea.KeySpace:
			mb.input = []rune{' '}
			return promptDone
		}
		return promptInvalid
	}

	switch msg.Type {
	case tea.KeyRunes:
		mb.input = append(mb.input, msg.Runes...)
	case tea.KeySpace:
		mb.input = append(mb.input, '-')
	case tea.KeyBackspace:
		if len(mb.input) > 0 {
			mb.input = mb.input[:len(mb.input)-1]
		}
	case tea.KeyTab:
		if len(mb.matches) > 0 {
			mb.input = []rune(mb.matches[0])
		}
	case tea.KeyEnter:
		if _, ok := reg.Lookup(string(mb.input)); !ok && len(mb.matches) == 1 {
			mb.input = []rune(mb.matches[0])
		}
		return promptDone
	default:
		return promptPending
	}
	mb.complete(reg)
	return promptPending
}

// Text returns the typed input.
func (mb *minibuffer) Text() string {
	return string(mb.input)
}

// View renders the prompt line.
func (mb *minibuffer) View() string {
	s := Styles()
	line := s.Prompt.Render(mb.prompt) + string(mb.input) + s.Cursor.Render(" ")
	if mb.kind != promptCommand || len(mb.input) == 0 || len(mb.matches) == 0 {
		return line
	}
	shown := mb.matches[:min(len(mb.matches), maxCompletions)]
	more := ""
	if len(mb.matches) > maxCompletions {
		more = " | ..."
	}
	return line + " " + s.Dim.Render("{"+strings.Join(shown, " | ")+more+"}")
}
