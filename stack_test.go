package main

import "testing"

func TestStacksPushPopData(t *testing.T) {
	s := NewStacks(64)
	if s.DataDepth() != 0 {
		t.Fatalf("fresh stack depth = %d, want 0", s.DataDepth())
	}
	if err := s.PushData(10); err != nil {
		t.Fatal(err)
	}
	if err := s.PushData(20); err != nil {
		t.Fatal(err)
	}
	if depth := s.DataDepth(); depth != 2 {
		t.Fatalf("depth = %d, want 2", depth)
	}
	top, err := s.DataCellAt(0)
	if err != nil || top != 20 {
		t.Fatalf("DataCellAt(0) = %d, %v, want 20, nil", top, err)
	}
	v, err := s.PopData()
	if err != nil || v != 20 {
		t.Fatalf("PopData() = %d, %v, want 20, nil", v, err)
	}
	v, err = s.PopData()
	if err != nil || v != 10 {
		t.Fatalf("PopData() = %d, %v, want 10, nil", v, err)
	}
	if s.DataDepth() != 0 {
		t.Fatalf("depth after draining = %d, want 0", s.DataDepth())
	}
}

func TestStacksUnderflow(t *testing.T) {
	s := NewStacks(64)
	if _, err := s.PopData(); err == nil {
		t.Fatal("PopData on empty stack: want error, got nil")
	}
	if _, err := s.PopString(); err == nil {
		t.Fatal("PopString on empty stack: want error, got nil")
	}
}

func TestStacksOverflow(t *testing.T) {
	s := NewStacks(4)
	for i := 0; i < 4; i++ {
		if err := s.PushData(uint64(i)); err != nil {
			t.Fatalf("PushData(%d): %v", i, err)
		}
	}
	if err := s.PushData(99); err == nil {
		t.Fatal("PushData beyond capacity: want error, got nil")
	}
}

func TestStacksStringMirrorsData(t *testing.T) {
	s := NewStacks(64)
	if err := s.PushString(7); err != nil {
		t.Fatal(err)
	}
	if depth := s.StringDepth(); depth != 1 {
		t.Fatalf("StringDepth = %d, want 1", depth)
	}
	v, err := s.PopString()
	if err != nil || v != 7 {
		t.Fatalf("PopString() = %d, %v, want 7, nil", v, err)
	}
}

func TestStacksReset(t *testing.T) {
	s := NewStacks(64)
	s.PushData(1)
	s.PushData(2)
	s.PushString(3)
	s.Reset()
	if s.DataDepth() != 0 || s.StringDepth() != 0 {
		t.Fatalf("depths after Reset: data=%d string=%d, want 0 0", s.DataDepth(), s.StringDepth())
	}
}
