// ABOUTME: Named register store holding text, numbers, or buffer locations
// ABOUTME: Values are a sealed sum type; keys keep their definition order for listing

package register

import (
	"fmt"
	"iter"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// Value is the content of a register: exactly one of Text, Number or
// Location. The interface is sealed; no other types satisfy it.
type Value interface {
	isValue()
}

// Text is a register holding a string.
type Text string

// Number is a register holding an integer.
type Number int

// Location is a register holding a position in a buffer.
type Location struct {
	Buffer string
	Offset int
}

func (Text) isValue()     {}
func (Number) isValue()   {}
func (Location) isValue() {}

// Store is a flat namespace of registers. The zero value is not usable;
// create one with New.
type Store struct {
	values map[string]Value
	order  []string
}

// New creates an empty Store.
func New() *Store {
	return &Store{values: make(map[string]Value)}
}

// Key normalises a register name so that equal-looking names address the
// same register.
func Key(name string) string {
	return norm.NFC.String(name)
}

// Put stores v under key, replacing any previous value. A key that already
// exists keeps its original position in the listing order.
func (s *Store) Put(key string, v Value) {
	key = Key(key)
	if _, ok := s.values[key]; !ok {
		s.order = append(s.order, key)
	}
	s.values[key] = v
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (Value, bool) {
	v, ok := s.values[Key(key)]
	return v, ok
}

// Text returns the text stored under key. It reports false when the key is
// absent or holds a number or location.
func (s *Store) Text(key string) (string, bool) {
	v, ok := s.Get(key)
	if !ok {
		return "", false
	}
	t, ok := v.(Text)
	return string(t), ok
}

// Location returns the location stored under key.
func (s *Store) Location(key string) (Location, bool) {
	v, ok := s.Get(key)
	if !ok {
		return Location{}, false
	}
	l, ok := v.(Location)
	return l, ok
}

// Increment adds delta to the number stored under key and returns the new
// value. An absent key starts from zero. A key holding text or a location is
// left untouched and false is returned.
func (s *Store) Increment(key string, delta int) (int, bool) {
	v, ok := s.Get(key)
	if !ok {
		s.Put(key, Number(delta))
		return delta, true
	}
	n, ok := v.(Number)
	if !ok {
		return 0, false
	}
	n += Number(delta)
	s.Put(key, n)
	return int(n), true
}

// AppendText adds text to the end (or, with prepend, the start) of the text
// register under key. An absent key is created. A key holding a number or
// location is left untouched and false is returned.
func (s *Store) AppendText(key, text string, prepend bool) bool {
	v, ok := s.Get(key)
	if !ok {
		s.Put(key, Text(text))
		return true
	}
	t, ok := v.(Text)
	if !ok {
		return false
	}
	if prepend {
		t = Text(text) + t
	} else {
		t += Text(text)
	}
	s.Put(key, t)
	return true
}

// Remap rewrites the offsets of locations stored for buffer through fn,
// so they follow edits made after they were saved.
func (s *Store) Remap(buffer string, fn func(int) int) {
	for k, v := range s.values {
		if l, ok := v.(Location); ok && l.Buffer == buffer {
			l.Offset = fn(l.Offset)
			s.values[k] = l
		}
	}
}

// Delete removes key from the store.
func (s *Store) Delete(key string) {
	key = Key(key)
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of registers in use.
func (s *Store) Len() int {
	return len(s.order)
}

// Keys yields register names in definition order.
func (s *Store) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, k := range s.order {
			if !yield(k) {
				return
			}
		}
	}
}

// All yields (name, value) pairs in definition order.
func (s *Store) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range s.order {
			if !yield(k, s.values[k]) {
				return
			}
		}
	}
}

// Describe renders a value the way list-registers shows it.
func Describe(v Value) string {
	switch v := v.(type) {
	case Text:
		return fmt.Sprintf("text: %s", string(v))
	case Number:
		return "number: " + strconv.Itoa(int(v))
	case Location:
		return fmt.Sprintf("position %d in buffer %s", v.Offset, v.Buffer)
	default:
		panic(fmt.Sprintf("register: unknown value type %T", v))
	}
}
