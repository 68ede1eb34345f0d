// ABOUTME: Emacs-style kill ring over a generic ring buffer
// ABOUTME: Append-coalescing of consecutive kills, force-append, deactivation, kill overrides

package killring

import (
	"iter"

	"github.com/MulgaSoft/e4macs-sub001/pkg/command"
	"github.com/MulgaSoft/e4macs-sub001/pkg/ring"
)

// DefaultSize is the default number of entries kept, matching Emacs'
// kill-ring-max.
const DefaultSize = 120

// Entry is one kill ring slot.
type Entry struct {
	Text string
	// Backward is true when the last text merged into the entry came from
	// a backward-deleting command.
	Backward bool
	// Source is the command that created or last extended the entry.
	Source command.ID
}

// KillRing holds killed and copied text. Consecutive kills are merged into
// one entry; the dispatcher brackets every command with BeginCommand and
// EndCommand so the ring can tell whether the previous command was a kill.
//
// A KillRing is owned by a session and used from the single command thread.
type KillRing struct {
	ring *ring.Buffer[Entry]

	lastWasKill bool
	thisWasKill bool
	forceAppend bool
	deactivated bool

	// overrides marks the next invocation of a command as a kill,
	// keyed by command; the value is the backward flag.
	overrides map[command.ID]bool

	// OnNewText, when set, receives the text of the top entry whenever a
	// kill or copy creates or extends it.
	OnNewText func(text string)
}

// New creates a KillRing with DefaultSize capacity.
func New() *KillRing {
	return NewSize(DefaultSize)
}

// NewSize creates a KillRing holding at most size entries.
func NewSize(size int) *KillRing {
	return &KillRing{
		ring:      ring.New[Entry](size),
		overrides: make(map[command.ID]bool),
	}
}

// RecordKill stores text removed by a kill command. When the previous
// command (or an earlier step of the current one) was also a kill, or
// force-append is set, the text is merged into the newest entry: appended
// for forward kills, prepended for backward ones.
// While the ring is deactivated nothing is recorded and no flag changes.
func (kr *KillRing) RecordKill(text string, backward bool, src command.ID) {
	if kr.deactivated {
		return
	}
	appendMode := kr.lastWasKill || kr.thisWasKill || kr.forceAppend
	kr.forceAppend = false
	kr.thisWasKill = true

	if top, ok := kr.ring.Newest(); ok && appendMode {
		if backward {
			top.Text = text + top.Text
		} else {
			top.Text += text
		}
		top.Backward = backward
		top.Source = src
		kr.ring.ReplaceNewest(top)
		kr.notify(top.Text)
		return
	}
	if text == "" {
		return
	}
	kr.ring.Insert(Entry{Text: text, Backward: backward, Source: src})
	kr.notify(text)
}

// RecordCopy stores copied text as a new entry. Copies never merge and are
// recorded even while the ring is deactivated. A copy ends any run of
// consecutive kills.
func (kr *KillRing) RecordCopy(text string, src command.ID) {
	kr.lastWasKill = false
	kr.thisWasKill = false
	kr.ring.Insert(Entry{Text: text, Source: src})
	kr.notify(text)
}

// Current returns the entry a yank would insert.
func (kr *KillRing) Current() (Entry, bool) {
	return kr.ring.Current()
}

// YankIndex returns how many entries the yank pointer sits behind the
// newest one.
func (kr *KillRing) YankIndex() int {
	return kr.ring.Position()
}

// RotateYankPos moves the yank pointer count entries toward older kills
// (negative counts move toward newer ones) and returns the new current entry.
func (kr *KillRing) RotateYankPos(count int) (Entry, bool) {
	return kr.ring.Rotate(count)
}

// Entries yields the ring contents oldest first.
func (kr *KillRing) Entries() iter.Seq[Entry] {
	return kr.ring.All()
}

// Len returns the number of entries in the ring.
func (kr *KillRing) Len() int {
	return kr.ring.Len()
}

// SetCapacity changes the maximum number of entries, dropping the oldest
// when shrinking.
func (kr *KillRing) SetCapacity(n int) {
	kr.ring.SetCapacity(n)
}

// Capacity returns the maximum number of entries.
func (kr *KillRing) Capacity() int {
	return kr.ring.Cap()
}

// SetForceAppend makes the next kill merge into the newest entry.
func (kr *KillRing) SetForceAppend(on bool) {
	kr.forceAppend = on
}

// ForceAppend reports whether the next kill will be appended.
func (kr *KillRing) ForceAppend() bool {
	return kr.forceAppend
}

// SetDeactivated suspends (or resumes) kill recording.
func (kr *KillRing) SetDeactivated(on bool) {
	kr.deactivated = on
}

// Deactivated reports whether kill recording is suspended.
func (kr *KillRing) Deactivated() bool {
	return kr.deactivated
}

// SetKill requests that the next invocation of id be treated as a kill,
// even though id does not record kills itself.
func (kr *KillRing) SetKill(id command.ID, backward bool) {
	kr.overrides[id] = backward
}

// TakeKill consults and clears the kill override for id.
func (kr *KillRing) TakeKill(id command.ID) (backward, ok bool) {
	backward, ok = kr.overrides[id]
	if ok {
		delete(kr.overrides, id)
	}
	return backward, ok
}

// ClearOverrides drops every pending kill override.
func (kr *KillRing) ClearOverrides() {
	clear(kr.overrides)
}

// BeginCommand marks the start of a command.
func (kr *KillRing) BeginCommand() {
	kr.thisWasKill = false
}

// EndCommand marks the end of a command; the next command appends to the
// newest entry only if this one recorded a kill.
func (kr *KillRing) EndCommand() {
	kr.lastWasKill = kr.thisWasKill
	kr.thisWasKill = false
}

// LastWasKill reports whether the previous command recorded a kill.
func (kr *KillRing) LastWasKill() bool {
	return kr.lastWasKill
}

func (kr *KillRing) notify(text string) {
	if kr.OnNewText != nil {
		kr.OnNewText(text)
	}
}
