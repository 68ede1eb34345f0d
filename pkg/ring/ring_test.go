// ABOUTME: Tests for the generic ring buffer
// ABOUTME: Covers overwrite-on-full, rotation symmetry, resizing, and iteration order

package ring

import (
	"slices"
	"testing"
)

func TestBuffer_Empty(t *testing.T) {
	t.Parallel()

	b := New[string](3)
	if _, ok := b.Current(); ok {
		t.Error("Current() on empty buffer reported ok")
	}
	if _, ok := b.Rotate(2); ok {
		t.Error("Rotate() on empty buffer reported ok")
	}
	if b.Position() != 0 {
		t.Errorf("Position() = %d after rotating empty buffer; want 0", b.Position())
	}
	if got := slices.Collect(b.All()); len(got) != 0 {
		t.Errorf("All() = %v; want empty", got)
	}
}

func TestBuffer_InsertKeepsLastN(t *testing.T) {
	t.Parallel()

	for _, inserts := range []int{3, 4, 7, 10} {
		b := New[int](3)
		for i := range inserts {
			b.Insert(i)
		}
		want := []int{inserts - 3, inserts - 2, inserts - 1}
		if got := slices.Collect(b.All()); !slices.Equal(got, want) {
			t.Errorf("after %d inserts All() = %v; want %v", inserts, got, want)
		}
		if b.Len() != 3 {
			t.Errorf("Len() = %d; want 3", b.Len())
		}
	}
}

func TestBuffer_CurrentIsNewestAfterInsert(t *testing.T) {
	t.Parallel()

	b := New[string](4)
	b.Insert("a")
	b.Insert("b")
	b.Rotate(1)
	b.Insert("c")

	got, ok := b.Current()
	if !ok || got != "c" {
		t.Errorf("Current() = %q, %v; want %q, true", got, ok, "c")
	}
}

func TestBuffer_RotateTowardOlder(t *testing.T) {
	t.Parallel()

	b := New[string](5)
	for _, s := range []string{"a", "b", "c"} {
		b.Insert(s)
	}

	steps := []struct {
		by   int
		want string
	}{
		{1, "b"},
		{1, "a"},
		{1, "c"}, // wraps to newest
		{-1, "a"},
		{-2, "c"},
		{0, "c"},
		{7, "b"},
	}
	for _, s := range steps {
		got, ok := b.Rotate(s.by)
		if !ok || got != s.want {
			t.Fatalf("Rotate(%d) = %q, %v; want %q", s.by, got, ok, s.want)
		}
	}
}

func TestBuffer_RotateInverse(t *testing.T) {
	t.Parallel()

	b := New[int](4)
	for i := range 6 {
		b.Insert(i)
	}
	before, _ := b.Current()
	for _, k := range []int{0, 1, 3, 4, -5, 11, -100} {
		b.Rotate(k)
		got, _ := b.Rotate(-k)
		if got != before {
			t.Errorf("Rotate(%d) then Rotate(%d) = %d; want %d", k, -k, got, before)
		}
	}
}

func TestBuffer_ReplaceNewest(t *testing.T) {
	t.Parallel()

	b := New[string](2)
	if b.ReplaceNewest("x") {
		t.Error("ReplaceNewest() on empty buffer returned true")
	}
	b.Insert("a")
	b.Insert("b")
	b.Rotate(1)
	if !b.ReplaceNewest("bb") {
		t.Fatal("ReplaceNewest() returned false")
	}
	if got := slices.Collect(b.All()); !slices.Equal(got, []string{"a", "bb"}) {
		t.Errorf("All() = %v; want [a bb]", got)
	}
	if cur, _ := b.Current(); cur != "bb" {
		t.Errorf("Current() = %q; want the replaced newest element", cur)
	}
	if b.Position() != 0 {
		t.Errorf("Position() = %d; want 0", b.Position())
	}
}

func TestBuffer_SetCapacity(t *testing.T) {
	t.Parallel()

	t.Run("shrink drops oldest", func(t *testing.T) {
		t.Parallel()
		b := New[int](5)
		for i := 1; i <= 5; i++ {
			b.Insert(i)
		}
		b.SetCapacity(2)
		if got := slices.Collect(b.All()); !slices.Equal(got, []int{4, 5}) {
			t.Errorf("All() = %v; want [4 5]", got)
		}
		b.Insert(6)
		if got := slices.Collect(b.All()); !slices.Equal(got, []int{5, 6}) {
			t.Errorf("All() after insert = %v; want [5 6]", got)
		}
	})

	t.Run("cursor follows survivor", func(t *testing.T) {
		t.Parallel()
		b := New[int](5)
		for i := 1; i <= 5; i++ {
			b.Insert(i)
		}
		b.Rotate(1) // 4
		b.SetCapacity(3)
		if cur, _ := b.Current(); cur != 4 {
			t.Errorf("Current() = %d; want 4", cur)
		}
		b.Rotate(3) // 3 survivors: 3,4,5; full turn
		if cur, _ := b.Current(); cur != 4 {
			t.Errorf("Current() after full turn = %d; want 4", cur)
		}
	})

	t.Run("cursor on dropped element moves to oldest", func(t *testing.T) {
		t.Parallel()
		b := New[int](4)
		for i := 1; i <= 4; i++ {
			b.Insert(i)
		}
		b.Rotate(3) // 1, the oldest
		b.SetCapacity(2)
		if cur, _ := b.Current(); cur != 3 {
			t.Errorf("Current() = %d; want 3", cur)
		}
	})

	t.Run("grow keeps order", func(t *testing.T) {
		t.Parallel()
		b := New[int](2)
		b.Insert(1)
		b.Insert(2)
		b.Insert(3)
		b.SetCapacity(4)
		b.Insert(4)
		b.Insert(5)
		if got := slices.Collect(b.All()); !slices.Equal(got, []int{2, 3, 4, 5}) {
			t.Errorf("All() = %v; want [2 3 4 5]", got)
		}
	})

	t.Run("zero clamps to one", func(t *testing.T) {
		t.Parallel()
		b := New[int](0)
		b.Insert(1)
		b.Insert(2)
		if b.Cap() != 1 || b.Len() != 1 {
			t.Errorf("Cap()=%d Len()=%d; want 1, 1", b.Cap(), b.Len())
		}
	})
}

func TestBuffer_AllRestarts(t *testing.T) {
	t.Parallel()

	b := New[int](3)
	b.Insert(1)
	b.Insert(2)

	seq := b.All()
	for v := range seq {
		if v == 1 {
			break
		}
	}
	if got := slices.Collect(seq); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("second pass = %v; want [1 2]", got)
	}
}

func TestBuffer_Clear(t *testing.T) {
	t.Parallel()

	b := New[int](3)
	b.Insert(1)
	b.Clear()
	if b.Len() != 0 {
		t.Errorf("Len() = %d; want 0", b.Len())
	}
	if _, ok := b.Newest(); ok {
		t.Error("Newest() on cleared buffer reported ok")
	}
}
