package main

import "testing"

func TestLabelStackPushPop(t *testing.T) {
	s := NewLabelStack()
	if !s.Empty() {
		t.Fatal("fresh LabelStack: want Empty() true")
	}
	s.Push(LoopLabel{Type: LoopIfThenElse})
	if s.Empty() {
		t.Fatal("after Push: want Empty() false")
	}
	top, ok := s.Pop()
	if !ok || top.Type != LoopIfThenElse {
		t.Fatalf("Pop() = %v, %v, want LoopIfThenElse, true", top.Type, ok)
	}
	if !s.Empty() {
		t.Fatal("after draining: want Empty() true")
	}
}

func TestLabelStackPopEmpty(t *testing.T) {
	s := NewLabelStack()
	if _, ok := s.Pop(); ok {
		t.Fatal("Pop on empty stack: want ok=false")
	}
}

func TestLabelStackNesting(t *testing.T) {
	s := NewLabelStack()
	s.Push(LoopLabel{Type: LoopDoLoop})
	s.Push(LoopLabel{Type: LoopCase})

	top := s.Top()
	if top == nil || top.Type != LoopCase {
		t.Fatalf("Top() = %v, want LoopCase", top)
	}

	popped, ok := s.Pop()
	if !ok || popped.Type != LoopCase {
		t.Fatalf("Pop() = %v, want LoopCase", popped.Type)
	}
	top = s.Top()
	if top == nil || top.Type != LoopDoLoop {
		t.Fatalf("Top() after popping the case frame = %v, want LoopDoLoop", top)
	}
}

func TestLabelStackDoLoopDepth(t *testing.T) {
	s := NewLabelStack()
	if s.DoLoopDepth() != 0 {
		t.Fatalf("fresh DoLoopDepth = %d, want 0", s.DoLoopDepth())
	}
	s.EnterDoLoop()
	s.EnterDoLoop()
	if s.DoLoopDepth() != 2 {
		t.Fatalf("DoLoopDepth after two EnterDoLoop = %d, want 2", s.DoLoopDepth())
	}
	s.ExitDoLoop()
	if s.DoLoopDepth() != 1 {
		t.Fatalf("DoLoopDepth after one ExitDoLoop = %d, want 1", s.DoLoopDepth())
	}
}
