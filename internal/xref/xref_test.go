package xref

import (
	"reflect"
	"testing"
)

func TestUnusedFigures(t *testing.T) {
	avail := NewSet("architecture", "pipeline")
	used := NewSet("architecture")

	unused := UnusedFigures(avail, used)

	if got := unused.Sorted(); !reflect.DeepEqual(got, []string{"pipeline"}) {
		t.Errorf("UnusedFigures() = %v, want [pipeline]", got)
	}

	// No reported figure may actually be in use.
	for k := range unused {
		if used.Has(k) {
			t.Errorf("unused figure %q is used", k)
		}
	}
}

func TestUnusedReferences(t *testing.T) {
	declared := NewSet("knuth1984", "lamport1994", "turing1936")
	cited := NewSet("knuth1984", "shannon1948")

	unused := UnusedReferences(declared, cited)

	want := []string{"lamport1994", "turing1936"}
	if got := unused.Sorted(); !reflect.DeepEqual(got, want) {
		t.Errorf("UnusedReferences() = %v, want %v", got, want)
	}

	// unused plus (declared AND cited) reassembles declared exactly.
	reassembled := make(Set)
	for k := range unused {
		reassembled.Add(k)
	}
	for k := range declared.Intersect(cited) {
		reassembled.Add(k)
	}
	if !reflect.DeepEqual(reassembled.Sorted(), declared.Sorted()) {
		t.Errorf("unused + used = %v, want %v", reassembled.Sorted(), declared.Sorted())
	}
}

func TestUndefinedReferences(t *testing.T) {
	declared := NewSet("knuth1984", "lamport1994")
	cited := NewSet("knuth1984", "shannon1948")

	undefined := UndefinedReferences(declared, cited)

	if got := undefined.Sorted(); !reflect.DeepEqual(got, []string{"shannon1948"}) {
		t.Errorf("UndefinedReferences() = %v, want [shannon1948]", got)
	}

	// Nothing undefined may be declared.
	for k := range undefined {
		if declared.Has(k) {
			t.Errorf("undefined reference %q is declared", k)
		}
	}
}

func TestSetOps(t *testing.T) {
	s := NewSet("a", "b")
	s.Add("c")
	s.Add("a") // idempotent

	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if !s.Has("b") || s.Has("z") {
		t.Error("Has() membership broken")
	}
	if got := s.Sorted(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Sorted() = %v, want [a b c]", got)
	}

	other := NewSet("b", "c", "d")
	if got := s.Intersect(other).Sorted(); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("Intersect() = %v, want [b c]", got)
	}
	if got := s.Diff(other).Sorted(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Diff() = %v, want [a]", got)
	}
}

func TestEmptySets(t *testing.T) {
	if got := UnusedFigures(NewSet(), NewSet("x")).Len(); got != 0 {
		t.Errorf("UnusedFigures(empty, x) = %d keys, want 0", got)
	}
	if got := UnusedReferences(NewSet(), NewSet()).Len(); got != 0 {
		t.Errorf("UnusedReferences(empty, empty) = %d keys, want 0", got)
	}
	if got := UndefinedReferences(NewSet(), NewSet("orphan")).Sorted(); !reflect.DeepEqual(got, []string{"orphan"}) {
		t.Errorf("UndefinedReferences(empty, orphan) = %v, want [orphan]", got)
	}
}
