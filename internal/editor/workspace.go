// ABOUTME: Workspace is the in-memory Host: a set of named buffers and a current one
// ABOUTME: Forwards buffer edits and closes to hooks so stored marks can follow

package editor

import (
	"fmt"
	"slices"
)

// Workspace holds open buffers in opening order.
type Workspace struct {
	buffers map[string]*TextBuffer
	order   []string
	current string
	frozen  int

	// OnEdit is called after every replacement in any buffer.
	OnEdit func(Edit)
	// OnClose is called after a buffer is closed.
	OnClose func(id string)
}

// NewWorkspace creates an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{buffers: make(map[string]*TextBuffer)}
}

// Open creates a buffer, or replaces the text of an existing one, and
// makes it current.
func (w *Workspace) Open(id, text string) *TextBuffer {
	b, ok := w.buffers[id]
	if ok {
		b.Replace(0, b.Len(), text)
		b.SetPoint(0)
	} else {
		b = NewTextBuffer(id, text)
		b.onEdit = w.edited
		w.buffers[id] = b
		w.order = append(w.order, id)
	}
	w.current = id
	return b
}

// Close removes a buffer. The previous buffer in opening order becomes
// current when the closed one was current.
func (w *Workspace) Close(id string) error {
	if _, ok := w.buffers[id]; !ok {
		return fmt.Errorf("close %q: %w", id, ErrNoBuffer)
	}
	delete(w.buffers, id)
	i := slices.Index(w.order, id)
	w.order = slices.Delete(w.order, i, i+1)
	if w.current == id {
		w.current = ""
		if len(w.order) > 0 {
			w.current = w.order[max(0, i-1)]
		}
	}
	if w.OnClose != nil {
		w.OnClose(id)
	}
	return nil
}

// Current returns the current buffer, or nil when none is open.
func (w *Workspace) Current() Buffer {
	if b, ok := w.buffers[w.current]; ok {
		return b
	}
	return nil
}

// Get returns the concrete buffer for id.
func (w *Workspace) Get(id string) (*TextBuffer, bool) {
	b, ok := w.buffers[id]
	return b, ok
}

func (w *Workspace) Switch(id string) (Buffer, error) {
	b, ok := w.buffers[id]
	if !ok {
		return nil, fmt.Errorf("switch to %q: %w", id, ErrNoBuffer)
	}
	w.current = id
	return b, nil
}

func (w *Workspace) Buffers() []string {
	return slices.Clone(w.order)
}

func (w *Workspace) SetRedraw(on bool) {
	if on {
		w.frozen = max(0, w.frozen-1)
		return
	}
	w.frozen++
}

// Redrawing reports whether repaint is currently enabled.
func (w *Workspace) Redrawing() bool {
	return w.frozen == 0
}

func (w *Workspace) edited(e Edit) {
	if w.OnEdit != nil {
		w.OnEdit(e)
	}
}
