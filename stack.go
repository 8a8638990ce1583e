package main

import "fmt"

// runtimeFrame is the register-frame struct handed to Page.Call, which
// loads its four fields into r15/r14/r13/r12 before jumping into a
// word's compiled entry point and writes them back after it returns
// (internal/emit/call_amd64.s) -- so the field order here is load-bearing:
// offsets 0/8/16/24 must match what the trampoline reads. Grounded on
// original_source/StackManager.h's
// register assignment (D -> r15, R -> r14, L -> r13, S -> r12) and on the
// teacher's convention of pinning a small number of registers across calls
// (register_allocator.go's callee-saved set), generalized here into an
// explicit save/restore frame per spec 9's "cleaner design" note instead of
// treating the pins as permanent globals.
type runtimeFrame struct {
	dTop uintptr // r15: data stack top
	rTop uintptr // r14: return stack top
	lTop uintptr // r13: locals stack top
	sTop uintptr // r12: string-position stack top
}

// Stacks owns the four backing arrays and the frame view into their
// current tops. Depths grow downward from each array's ceiling, matching
// the DSPush/RSPush/etc. "sub then store" convention in internal/emit/stackops.go.
type Stacks struct {
	data    []uint64
	ret     []uint64
	locals  []uint64
	strpos  []uint64

	frame runtimeFrame
}

// NewStacks allocates four stacks of cells cells each, grounded on
// config.go's FORTHJIT_STACK_CELLS knob (default taken from
// original_source/StackManager.h's compiled-in stack size).
func NewStacks(cells int) *Stacks {
	if cells <= 0 {
		cells = 4096
	}
	s := &Stacks{
		data:   make([]uint64, cells),
		ret:    make([]uint64, cells),
		locals: make([]uint64, cells),
		strpos: make([]uint64, cells),
	}
	s.Reset()
	return s
}

func ceilAddr(cells []uint64) uintptr {
	if len(cells) == 0 {
		return 0
	}
	return uintptr(unsafePointerOf(&cells[len(cells)-1])) + 8
}

// Reset restores all four stack tops to their empty (ceiling) position.
func (s *Stacks) Reset() {
	s.frame.dTop = ceilAddr(s.data)
	s.frame.rTop = ceilAddr(s.ret)
	s.frame.lTop = ceilAddr(s.locals)
	s.frame.sTop = ceilAddr(s.strpos)
}

// Frame returns the pointer to hand Page.Call, whose trampoline loads and
// stores the four tops through it.
func (s *Stacks) Frame() *runtimeFrame { return &s.frame }

func cellsUsed(ceil, top uintptr) int {
	if top > ceil {
		return 0
	}
	return int((ceil - top) / 8)
}

// DataDepth returns the number of cells currently on the data stack.
func (s *Stacks) DataDepth() int { return cellsUsed(ceilAddr(s.data), s.frame.dTop) }

// ReturnDepth returns the number of cells currently on the return stack.
func (s *Stacks) ReturnDepth() int { return cellsUsed(ceilAddr(s.ret), s.frame.rTop) }

// DataCellAt returns the nth cell from the top of the data stack (0 is
// top-of-stack), for ".s"-style introspection and testing.
func (s *Stacks) DataCellAt(n int) (uint64, error) {
	depth := s.DataDepth()
	if n < 0 || n >= depth {
		return 0, fmt.Errorf("stack: index %d out of range (depth %d)", n, depth)
	}
	idx := len(s.data) - depth + n
	return s.data[idx], nil
}

// PushData pushes a raw cell directly from Go, used by the driver's
// interpret path (spec 4.8) before any compiled word runs.
func (s *Stacks) PushData(v uint64) error {
	if s.frame.dTop <= uintptr(unsafePointerOf(&s.data[0])) {
		return &ForthError{Errno: ErrStackOverflow, What: "data stack"}
	}
	s.frame.dTop -= 8
	*(*uint64)(ptrAt(s.frame.dTop)) = v
	return nil
}

// PopData pops a raw cell directly from Go.
func (s *Stacks) PopData() (uint64, error) {
	if s.DataDepth() == 0 {
		return 0, &ForthError{Errno: ErrStackUnderflow, What: "data stack"}
	}
	v := *(*uint64)(ptrAt(s.frame.dTop))
	s.frame.dTop += 8
	return v, nil
}

// StringDepth returns the number of cells currently on the string stack.
func (s *Stacks) StringDepth() int { return cellsUsed(ceilAddr(s.strpos), s.frame.sTop) }

// PushString and PopString move string-table indices across S directly
// from Go, mirroring PushData/PopData, for the string built-ins
// (gen_strings.go) that must run as plain Go rather than emitted code --
// they call into StringTable's mutex-guarded map, which no JIT-compiled
// code may do (see DESIGN.md's Open Question decision 4 for why that
// bridge does not exist in this port).
func (s *Stacks) PushString(v uint64) error {
	if s.frame.sTop <= uintptr(unsafePointerOf(&s.strpos[0])) {
		return &ForthError{Errno: ErrStackOverflow, What: "string stack"}
	}
	s.frame.sTop -= 8
	*(*uint64)(ptrAt(s.frame.sTop)) = v
	return nil
}

func (s *Stacks) PopString() (uint64, error) {
	if s.StringDepth() == 0 {
		return 0, &ForthError{Errno: ErrStackUnderflow, What: "string stack"}
	}
	v := *(*uint64)(ptrAt(s.frame.sTop))
	s.frame.sTop += 8
	return v, nil
}
