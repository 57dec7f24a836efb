package reval

import (
	"errors"
	"testing"
)

func TestAppend(t *testing.T) {
	c := NewWith([]string{"a"})
	rec := &recorder[[]string]{}
	c.Observe(rec.callback())

	before := rec.count()
	if err := Append(c, "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := c.Value(); len(got) != 2 || got[1] != "b" {
		t.Errorf("expected [a b], got %v", got)
	}
	if got := rec.count() - before; got != 1 {
		t.Errorf("expected exactly one notification, got %d", got)
	}
}

func TestPrepend(t *testing.T) {
	c := NewWith([]int{2, 3})

	if err := Prepend(c, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := c.Value()
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", got)
	}
}

func TestRemove(t *testing.T) {
	c := NewWith([]int{1, 2, 3, 2})

	if err := Remove(c, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Only the first occurrence goes.
	got := c.Value()
	if len(got) != 3 || got[0] != 1 || got[1] != 3 || got[2] != 2 {
		t.Errorf("expected [1 3 2], got %v", got)
	}
}

func TestRemoveMissingStillNotifies(t *testing.T) {
	c := NewWith([]int{1})
	rec := &recorder[[]int]{}
	c.Observe(rec.callback())

	before := rec.count()
	if err := Remove(c, 99); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One notification per call, whether or not the length changed.
	if got := rec.count() - before; got != 1 {
		t.Errorf("expected exactly one notification, got %d", got)
	}
}

func TestSliceHelpersOnAbsentContainer(t *testing.T) {
	c := New[[]int]()

	if err := Append(c, 1); !errors.Is(err, ErrNoValue) {
		t.Errorf("Append: expected ErrNoValue, got %v", err)
	}
	if err := Prepend(c, 1); !errors.Is(err, ErrNoValue) {
		t.Errorf("Prepend: expected ErrNoValue, got %v", err)
	}
	if err := Remove(c, 1); !errors.Is(err, ErrNoValue) {
		t.Errorf("Remove: expected ErrNoValue, got %v", err)
	}
	if _, ok := c.Get(); ok {
		t.Error("helpers must not conjure a value on an absent container")
	}
}
