package main

import "testing"

func TestStringTableInternStable(t *testing.T) {
	tab := NewStringTable()
	a := tab.Intern("hello")
	b := tab.Intern("hello")
	if a != b {
		t.Fatalf("Intern same text twice: got %d and %d, want equal", a, b)
	}
	if tab.String(a) != "hello" {
		t.Fatalf("String(a) = %q, want %q", tab.String(a), "hello")
	}
}

func TestStringTableRefcountRelease(t *testing.T) {
	tab := NewStringTable()
	idx := tab.Intern("temp")
	tab.DecRef(idx)
	if got := tab.String(idx); got != "" {
		t.Fatalf("String after refcount drops to zero = %q, want empty", got)
	}
	again := tab.Intern("temp")
	if again == idx {
		t.Fatalf("re-interning after release reused the freed slot's identity unexpectedly")
	}
}

func TestStringTableConcatEqualContains(t *testing.T) {
	tab := NewStringTable()
	a := tab.Intern("foo")
	b := tab.Intern("bar")
	c := tab.Concat(a, b)
	if tab.String(c) != "foobar" {
		t.Fatalf("Concat = %q, want %q", tab.String(c), "foobar")
	}
	if !tab.Equal(a, tab.Intern("foo")) {
		t.Fatal("Equal(foo, foo) = false, want true")
	}
	if tab.Equal(a, b) {
		t.Fatal("Equal(foo, bar) = true, want false")
	}
	if !tab.Contains(c, a) {
		t.Fatal("Contains(foobar, foo) = false, want true")
	}
	if tab.Contains(a, c) {
		t.Fatal("Contains(foo, foobar) = true, want false")
	}
}

func TestStringTablePosition(t *testing.T) {
	tab := NewStringTable()
	hay := tab.Intern("abcdef")
	needle := tab.Intern("cd")
	if pos := tab.Position(hay, needle); pos != 2 {
		t.Fatalf("Position = %d, want 2", pos)
	}
	missing := tab.Intern("zz")
	if pos := tab.Position(hay, missing); pos != -1 {
		t.Fatalf("Position of absent needle = %d, want -1", pos)
	}
}

func TestStringTableSplit(t *testing.T) {
	tab := NewStringTable()
	src := tab.Intern("a,b,c")
	comma := tab.Intern(",")

	tests := []struct {
		position int
		want     string
	}{
		{0, "a"},
		{1, "b"},
		{2, "c"},
	}
	for _, tt := range tests {
		idx := tab.Split(src, comma, tt.position)
		if idx < 0 {
			t.Fatalf("Split(position=%d): got -1, want index for %q", tt.position, tt.want)
		}
		if got := tab.String(idx); got != tt.want {
			t.Fatalf("Split(position=%d) = %q, want %q", tt.position, got, tt.want)
		}
	}
	if idx := tab.Split(src, comma, 3); idx != -1 {
		t.Fatalf("Split(position=3) = %d, want -1 (out of range)", idx)
	}
}

func TestStringTableCountFields(t *testing.T) {
	tab := NewStringTable()
	idx := tab.Intern("  one two   three ")
	if n := tab.CountFields(idx); n != 3 {
		t.Fatalf("CountFields = %d, want 3", n)
	}
}
