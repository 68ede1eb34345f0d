// ABOUTME: Point-in-time JSON view of a session for the -dump flag and debugging
// ABOUTME: Marshalled with easyjson's writer; key order is fixed and deterministic

package session

import (
	"io"

	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jwriter"

	"github.com/MulgaSoft/e4macs-sub001/pkg/markring"
	"github.com/MulgaSoft/e4macs-sub001/pkg/register"
)

// KillEntry is one kill ring slot in a snapshot.
type KillEntry struct {
	Text     string
	Backward bool
	Source   string
}

// RegisterEntry is one register in a snapshot. Exactly one of the value
// fields is meaningful, selected by Kind.
type RegisterEntry struct {
	Name   string
	Kind   string
	Text   string
	Number int
	Buffer string
	Offset int
}

// LocalMarks is the local mark ring of one buffer, newest first.
type LocalMarks struct {
	Buffer string
	Marks  []markring.Mark
}

// Snapshot captures the kill ring, registers, and mark rings.
type Snapshot struct {
	KillRing    []KillEntry
	Yank        string
	Registers   []RegisterEntry
	GlobalMarks []markring.Mark
	TagMarks    []markring.Mark
	LocalMarks  []LocalMarks
}

// Snapshot copies the current state. Kill entries are oldest first; marks
// are newest first.
func (s *Session) Snapshot() Snapshot {
	var snap Snapshot
	for e := range s.Kills.Entries() {
		snap.KillRing = append(snap.KillRing, KillEntry{Text: e.Text, Backward: e.Backward, Source: e.Source.String()})
	}
	if cur, ok := s.Kills.Current(); ok {
		snap.Yank = cur.Text
	}
	for name, v := range s.Registers.All() {
		snap.Registers = append(snap.Registers, registerEntry(name, v))
	}
	snap.GlobalMarks = s.Marks.Global().Entries()
	snap.TagMarks = s.Marks.Tags().Entries()
	for _, b := range s.Marks.Buffers() {
		snap.LocalMarks = append(snap.LocalMarks, LocalMarks{Buffer: b, Marks: s.Marks.Local(b).Entries()})
	}
	return snap
}

func registerEntry(name string, v register.Value) RegisterEntry {
	e := RegisterEntry{Name: name}
	switch v := v.(type) {
	case register.Text:
		e.Kind, e.Text = "text", string(v)
	case register.Number:
		e.Kind, e.Number = "number", int(v)
	case register.Location:
		e.Kind, e.Buffer, e.Offset = "location", v.Buffer, v.Offset
	default:
		panic("session: unknown register value")
	}
	return e
}

// WriteJSON writes the snapshot to w.
func (snap Snapshot) WriteJSON(w io.Writer) error {
	_, err := easyjson.MarshalToWriter(snap, w)
	return err
}

// MarshalJSON implements json.Marshaler.
func (snap Snapshot) MarshalJSON() ([]byte, error) {
	return easyjson.Marshal(snap)
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (snap Snapshot) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"kill_ring":[`)
	for i, e := range snap.KillRing {
		if i > 0 {
			w.RawByte(',')
		}
		w.RawString(`{"text":`)
		w.String(e.Text)
		w.RawString(`,"backward":`)
		w.Bool(e.Backward)
		w.RawString(`,"source":`)
		w.String(e.Source)
		w.RawByte('}')
	}
	w.RawString(`],"yank":`)
	w.String(snap.Yank)

	w.RawString(`,"registers":[`)
	for i, r := range snap.Registers {
		if i > 0 {
			w.RawByte(',')
		}
		w.RawString(`{"name":`)
		w.String(r.Name)
		w.RawString(`,"kind":`)
		w.String(r.Kind)
		switch r.Kind {
		case "text":
			w.RawString(`,"text":`)
			w.String(r.Text)
		case "number":
			w.RawString(`,"number":`)
			w.Int(r.Number)
		case "location":
			w.RawString(`,"buffer":`)
			w.String(r.Buffer)
			w.RawString(`,"offset":`)
			w.Int(r.Offset)
		}
		w.RawByte('}')
	}

	w.RawString(`],"marks":{"global":`)
	writeMarks(w, snap.GlobalMarks)
	w.RawString(`,"tags":`)
	writeMarks(w, snap.TagMarks)
	w.RawString(`,"local":{`)
	for i, l := range snap.LocalMarks {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(l.Buffer)
		w.RawByte(':')
		writeMarks(w, l.Marks)
	}
	w.RawString(`}}}`)
}

func writeMarks(w *jwriter.Writer, marks []markring.Mark) {
	w.RawByte('[')
	for i, m := range marks {
		if i > 0 {
			w.RawByte(',')
		}
		w.RawString(`{"buffer":`)
		w.String(m.Buffer)
		w.RawString(`,"offset":`)
		w.Int(m.Offset)
		w.RawByte('}')
	}
	w.RawByte(']')
}
