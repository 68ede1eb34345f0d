// ABOUTME: In-memory rune buffer implementing Buffer
// ABOUTME: Keeps point and mark valid across replacements and reports each Edit

package editor

// TextBuffer is an in-memory Buffer.
type TextBuffer struct {
	id      string
	text    []rune
	point   int
	mark    int
	hasMark bool
	onEdit  func(Edit)
}

// NewTextBuffer creates a detached buffer with point at the start.
func NewTextBuffer(id, text string) *TextBuffer {
	return &TextBuffer{id: id, text: []rune(text)}
}

func (b *TextBuffer) ID() string   { return b.id }
func (b *TextBuffer) Len() int     { return len(b.text) }
func (b *TextBuffer) Text() string { return string(b.text) }
func (b *TextBuffer) Point() int   { return b.point }

// Runes exposes the text for motion helpers. Callers must not modify it.
func (b *TextBuffer) Runes() []rune { return b.text }

func (b *TextBuffer) Slice(from, to int) string {
	from, to = b.clamp(from), b.clamp(to)
	if from > to {
		from, to = to, from
	}
	return string(b.text[from:to])
}

func (b *TextBuffer) SetPoint(pos int) { b.point = b.clamp(pos) }

func (b *TextBuffer) Mark() (int, bool) { return b.mark, b.hasMark }

func (b *TextBuffer) SetMark(pos int) {
	b.mark = b.clamp(pos)
	b.hasMark = true
}

func (b *TextBuffer) ClearMark() { b.hasMark = false }

func (b *TextBuffer) Replace(from, to int, text string) {
	from, to = b.clamp(from), b.clamp(to)
	if from > to {
		from, to = to, from
	}
	ins := []rune(text)
	out := make([]rune, 0, len(b.text)-(to-from)+len(ins))
	out = append(out, b.text[:from]...)
	out = append(out, ins...)
	out = append(out, b.text[to:]...)
	b.text = out

	e := Edit{Buffer: b.id, From: from, To: to, Inserted: len(ins)}
	b.point = e.Adjust(b.point)
	if b.hasMark {
		b.mark = e.Adjust(b.mark)
	}
	if b.onEdit != nil {
		b.onEdit(e)
	}
}

func (b *TextBuffer) clamp(pos int) int {
	return max(0, min(pos, len(b.text)))
}
