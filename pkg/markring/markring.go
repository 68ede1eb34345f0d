// ABOUTME: Mark rings: bounded rings of saved buffer positions with push/pop rotation
// ABOUTME: Configurable duplicate suppression; Set groups global, tag, and per-buffer rings

package markring

import (
	"iter"

	"github.com/MulgaSoft/e4macs-sub001/pkg/ring"
)

// DefaultSize matches Emacs' mark-ring-max and global-mark-ring-max.
const DefaultSize = 16

// Mark is a saved position in a buffer.
type Mark struct {
	Buffer string
	Offset int
}

// Dedup selects which existing entries a push is compared against.
type Dedup int

const (
	// DedupTop suppresses a push equal to the newest entry.
	DedupTop Dedup = iota
	// DedupAny suppresses a push equal to any live entry.
	DedupAny
	// DedupNone never suppresses a push.
	DedupNone
)

// ParseDedup converts a configuration name ("top", "any", "none").
func ParseDedup(s string) (Dedup, bool) {
	switch s {
	case "top", "":
		return DedupTop, true
	case "any":
		return DedupAny, true
	case "none":
		return DedupNone, true
	}
	return DedupTop, false
}

func (d Dedup) String() string {
	switch d {
	case DedupAny:
		return "any"
	case DedupNone:
		return "none"
	default:
		return "top"
	}
}

// SameBuffer treats marks in the same buffer as duplicates.
func SameBuffer(a, b Mark) bool { return a.Buffer == b.Buffer }

// SamePosition treats only identical positions as duplicates.
func SamePosition(a, b Mark) bool { return a == b }

// Policy controls duplicate suppression on push.
type Policy struct {
	Dedup Dedup
	Equal func(a, b Mark) bool
}

// Ring is a bounded ring of marks. Push resets the pop cursor to the newest
// entry; Pop returns the entry under the cursor and moves it one step
// toward older entries, so repeated pops cycle through the history.
type Ring struct {
	buf    *ring.Buffer[Mark]
	policy Policy
}

// NewRing creates a Ring holding at most size marks.
func NewRing(size int, policy Policy) *Ring {
	if policy.Equal == nil {
		policy.Equal = SamePosition
	}
	return &Ring{buf: ring.New[Mark](size), policy: policy}
}

// Push saves m. It returns false when the push was suppressed as a duplicate.
func (r *Ring) Push(m Mark) bool {
	if r.isDuplicate(m) {
		return false
	}
	r.buf.Insert(m)
	return true
}

func (r *Ring) isDuplicate(m Mark) bool {
	switch r.policy.Dedup {
	case DedupTop:
		top, ok := r.buf.Newest()
		return ok && r.policy.Equal(top, m)
	case DedupAny:
		for e := range r.buf.All() {
			if r.policy.Equal(e, m) {
				return true
			}
		}
	}
	return false
}

// Pop returns the mark under the cursor and rotates the cursor one entry
// toward older marks. Nothing is removed.
func (r *Ring) Pop() (Mark, bool) {
	m, ok := r.buf.Current()
	if !ok {
		return Mark{}, false
	}
	r.buf.Rotate(1)
	return m, true
}

// Peek returns the mark the next Pop would return.
func (r *Ring) Peek() (Mark, bool) {
	return r.buf.Current()
}

// Len returns the number of live marks.
func (r *Ring) Len() int {
	return r.buf.Len()
}

// SetCapacity resizes the ring, dropping the oldest marks when shrinking.
func (r *Ring) SetCapacity(n int) {
	r.buf.SetCapacity(n)
}

// SetPolicy replaces the duplicate suppression policy.
func (r *Ring) SetPolicy(p Policy) {
	if p.Equal == nil {
		p.Equal = r.policy.Equal
	}
	r.policy = p
}

// All yields the marks oldest first.
func (r *Ring) All() iter.Seq[Mark] {
	return r.buf.All()
}

// Entries returns the marks newest first.
func (r *Ring) Entries() []Mark {
	out := make([]Mark, 0, r.buf.Len())
	for i := range r.buf.Len() {
		m, _ := r.buf.Index(i)
		out = append(out, m)
	}
	return out
}

// Remap rewrites the offset of every mark in buffer through fn. Hosts call
// it after editing text so saved positions keep pointing at the same text.
func (r *Ring) Remap(buffer string, fn func(int) int) {
	marks := make([]Mark, 0, r.buf.Len())
	changed := false
	for m := range r.buf.All() {
		if m.Buffer == buffer {
			if off := fn(m.Offset); off != m.Offset {
				m.Offset = off
				changed = true
			}
		}
		marks = append(marks, m)
	}
	if !changed {
		return
	}
	pos := r.buf.Position()
	r.buf.Clear()
	for _, m := range marks {
		r.buf.Insert(m)
	}
	r.buf.Rotate(pos)
}

// Drop removes every mark in buffer.
func (r *Ring) Drop(buffer string) {
	marks := make([]Mark, 0, r.buf.Len())
	for m := range r.buf.All() {
		if m.Buffer != buffer {
			marks = append(marks, m)
		}
	}
	if len(marks) == r.buf.Len() {
		return
	}
	r.buf.Clear()
	for _, m := range marks {
		r.buf.Insert(m)
	}
}
