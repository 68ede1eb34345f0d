// ABOUTME: Host editor collaborator: the buffer and workspace surface commands edit through
// ABOUTME: Offsets are rune indexes; every replacement is reported as an Edit

package editor

import "errors"

// ErrNoBuffer is returned when a buffer ID is not open.
var ErrNoBuffer = errors.New("no such buffer")

// Buffer is an editable text with a point and an optional mark.
type Buffer interface {
	ID() string
	Len() int
	Text() string
	// Slice returns the text between two offsets in either order.
	Slice(from, to int) string
	Point() int
	SetPoint(pos int)
	Mark() (int, bool)
	SetMark(pos int)
	ClearMark()
	// Replace substitutes [from, to) with text. Offsets are clamped.
	Replace(from, to int, text string)
}

// Host is the editor the commands run against.
type Host interface {
	Current() Buffer
	Switch(id string) (Buffer, error)
	Buffers() []string
	// SetRedraw disables repaint when on is false. Calls nest: repaint
	// resumes once every disable has been matched by an enable.
	SetRedraw(on bool)
}

// Edit describes one replacement: [From, To) became Inserted runes.
type Edit struct {
	Buffer   string
	From, To int
	Inserted int
}

// Adjust maps an offset from before the edit to after it. Offsets inside
// the replaced range collapse to its start; an offset equal to From stays
// before inserted text.
func (e Edit) Adjust(off int) int {
	switch {
	case off <= e.From:
		return off
	case off >= e.To:
		return off + e.Inserted - (e.To - e.From)
	default:
		return e.From
	}
}

// SuspendRedraw turns off repaint and returns the release. Use it with
// defer so repaint resumes on every exit path.
func SuspendRedraw(h Host) func() {
	h.SetRedraw(false)
	released := false
	return func() {
		if released {
			return
		}
		released = true
		h.SetRedraw(true)
	}
}

// Region returns the ordered bounds between point and mark.
func Region(b Buffer) (from, to int, ok bool) {
	mark, ok := b.Mark()
	if !ok {
		return 0, 0, false
	}
	point := b.Point()
	if mark < point {
		return mark, point, true
	}
	return point, mark, true
}
