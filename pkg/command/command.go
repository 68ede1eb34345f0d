// ABOUTME: Enumeration of editing command identities with their Emacs names
// ABOUTME: Leaf package shared by the kill ring override table and the dispatcher

package command

import "sort"

// ID identifies an editing command. The zero value is None.
type ID int

const (
	None ID = iota

	// Motion
	ForwardChar
	BackwardChar
	ForwardWord
	BackwardWord
	BeginningOfLine
	EndOfLine
	BeginningOfBuffer
	EndOfBuffer

	// Primitive deletions; not kills on their own
	DeleteChar
	DeleteNextWord
	DeletePreviousWord
	DeleteRegion

	// Kill ring
	KillLine
	KillWord
	BackwardKillWord
	KillRegion
	KillRingSave
	AppendNextKill
	Yank
	YankPop
	RotateYankPointer

	// Registers
	CopyToRegister
	AppendToRegister
	PrependToRegister
	InsertRegister
	PointToRegister
	JumpToRegister
	NumberToRegister
	IncrementRegister
	ListRegisters

	// Marks
	SetMarkCommand
	ExchangePointAndMark
	PopMark
	PopGlobalMark
	PushTagMark
	PopTagMark

	count
)

var names = [...]string{
	None:                 "",
	ForwardChar:          "forward-char",
	BackwardChar:         "backward-char",
	ForwardWord:          "forward-word",
	BackwardWord:         "backward-word",
	BeginningOfLine:      "beginning-of-line",
	EndOfLine:            "end-of-line",
	BeginningOfBuffer:    "beginning-of-buffer",
	EndOfBuffer:          "end-of-buffer",
	DeleteChar:           "delete-char",
	DeleteNextWord:       "delete-next-word",
	DeletePreviousWord:   "delete-previous-word",
	DeleteRegion:         "delete-region",
	KillLine:             "kill-line",
	KillWord:             "kill-word",
	BackwardKillWord:     "backward-kill-word",
	KillRegion:           "kill-region",
	KillRingSave:         "kill-ring-save",
	AppendNextKill:       "append-next-kill",
	Yank:                 "yank",
	YankPop:              "yank-pop",
	RotateYankPointer:    "rotate-yank-pointer",
	CopyToRegister:       "copy-to-register",
	AppendToRegister:     "append-to-register",
	PrependToRegister:    "prepend-to-register",
	InsertRegister:       "insert-register",
	PointToRegister:      "point-to-register",
	JumpToRegister:       "jump-to-register",
	NumberToRegister:     "number-to-register",
	IncrementRegister:    "increment-register",
	ListRegisters:        "list-registers",
	SetMarkCommand:       "set-mark-command",
	ExchangePointAndMark: "exchange-point-and-mark",
	PopMark:              "pop-mark",
	PopGlobalMark:        "pop-global-mark",
	PushTagMark:          "push-tag-mark",
	PopTagMark:           "pop-tag-mark",
}

var byName = func() map[string]ID {
	m := make(map[string]ID, len(names))
	for id, name := range names {
		if name != "" {
			m[name] = ID(id)
		}
	}
	return m
}()

// String returns the Emacs name of the command, e.g. "kill-line".
func (id ID) String() string {
	if id <= None || id >= count {
		return ""
	}
	return names[id]
}

// Valid reports whether id names a real command.
func (id ID) Valid() bool {
	return id > None && id < count
}

// Parse returns the ID for an Emacs command name.
func Parse(name string) (ID, bool) {
	id, ok := byName[name]
	return id, ok
}

// Names returns every command name in sorted order.
func Names() []string {
	out := make([]string, 0, len(byName))
	for name := range byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// All returns every valid ID in declaration order.
func All() []ID {
	out := make([]ID, 0, count-1)
	for id := None + 1; id < count; id++ {
		out = append(out, id)
	}
	return out
}
