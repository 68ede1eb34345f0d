// ABOUTME: Set groups the mark rings of one editing session
// ABOUTME: A global cross-buffer ring, a tag ring, and lazily created buffer-local rings

package markring

import (
	"maps"
	"slices"
)

// Options sizes and configures the rings in a Set.
type Options struct {
	LocalSize  int
	GlobalSize int
	TagSize    int
	// GlobalDedup applies to the global ring, which compares buffers.
	GlobalDedup Dedup
	// LocalDedup applies to local and tag rings, which compare positions.
	LocalDedup Dedup
}

// DefaultOptions returns Emacs-like sizes with top-of-ring dedup.
func DefaultOptions() Options {
	return Options{
		LocalSize:  DefaultSize,
		GlobalSize: DefaultSize,
		TagSize:    DefaultSize,
	}
}

// Set holds the mark rings of a session.
type Set struct {
	opts   Options
	global *Ring
	tags   *Ring
	local  map[string]*Ring
}

// NewSet creates an empty Set.
func NewSet(opts Options) *Set {
	return &Set{
		opts:   opts,
		global: NewRing(opts.GlobalSize, Policy{Dedup: opts.GlobalDedup, Equal: SameBuffer}),
		tags:   NewRing(opts.TagSize, Policy{Dedup: opts.LocalDedup, Equal: SamePosition}),
		local:  make(map[string]*Ring),
	}
}

// Global returns the cross-buffer ring.
func (s *Set) Global() *Ring { return s.global }

// Tags returns the tag ring.
func (s *Set) Tags() *Ring { return s.tags }

// Local returns the ring for buffer, creating it on first use.
func (s *Set) Local(buffer string) *Ring {
	r, ok := s.local[buffer]
	if !ok {
		r = NewRing(s.opts.LocalSize, Policy{Dedup: s.opts.LocalDedup, Equal: SamePosition})
		s.local[buffer] = r
	}
	return r
}

// Buffers returns the names of buffers with a local ring, sorted.
func (s *Set) Buffers() []string {
	return slices.Sorted(maps.Keys(s.local))
}

// PushMark saves a position on the buffer's local ring and on the global
// ring. The global push is suppressed while the newest global entry is
// already in the same buffer.
func (s *Set) PushMark(buffer string, offset int) {
	m := Mark{Buffer: buffer, Offset: offset}
	s.Local(buffer).Push(m)
	s.global.Push(m)
}

// PopLocal cycles through the buffer's local ring.
func (s *Set) PopLocal(buffer string) (Mark, bool) {
	r, ok := s.local[buffer]
	if !ok {
		return Mark{}, false
	}
	return r.Pop()
}

// PopGlobal cycles through the global ring.
func (s *Set) PopGlobal() (Mark, bool) {
	return s.global.Pop()
}

// PushTag saves a search origin on the tag ring.
func (s *Set) PushTag(buffer string, offset int) {
	s.tags.Push(Mark{Buffer: buffer, Offset: offset})
}

// PopTag cycles through the tag ring.
func (s *Set) PopTag() (Mark, bool) {
	return s.tags.Pop()
}

// Remap forwards an offset remapping for buffer to every ring.
func (s *Set) Remap(buffer string, fn func(int) int) {
	if r, ok := s.local[buffer]; ok {
		r.Remap(buffer, fn)
	}
	s.global.Remap(buffer, fn)
	s.tags.Remap(buffer, fn)
}

// Forget drops every mark of a closed buffer.
func (s *Set) Forget(buffer string) {
	delete(s.local, buffer)
	s.global.Drop(buffer)
	s.tags.Drop(buffer)
}

// Apply resizes the rings and switches dedup modes, keeping saved marks.
func (s *Set) Apply(opts Options) {
	s.opts = opts
	s.global.SetCapacity(opts.GlobalSize)
	s.global.SetPolicy(Policy{Dedup: opts.GlobalDedup, Equal: SameBuffer})
	s.tags.SetCapacity(opts.TagSize)
	s.tags.SetPolicy(Policy{Dedup: opts.LocalDedup, Equal: SamePosition})
	for _, r := range s.local {
		r.SetCapacity(opts.LocalSize)
		r.SetPolicy(Policy{Dedup: opts.LocalDedup, Equal: SamePosition})
	}
}
