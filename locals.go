package main

// LocalsFrame tracks the named-local-to-offset mapping for the
// definition currently being compiled. Grounded on
// original_source/JitGenerator.h's locals/localsByOffset maps and
// gen_leftBrace: a definition's locals brace "{ a b | c -- d }" allocates
// (arguments + locals + return values) cells on the L stack by
// subtracting their total*8 from r13 once, up front, then addresses each
// by a fixed offset from the new r13 -- offsets are assigned upward from
// 0 in declaration order, matching addLocal's call sequence in the
// original.
type LocalsFrame struct {
	byName   map[string]int
	byOffset map[int]string
	next     int // next offset to hand out, in bytes

	argCount int
	retOffsets []int // offsets of the "rets" phase, in declaration order
}

func NewLocalsFrame() *LocalsFrame {
	return &LocalsFrame{byName: make(map[string]int), byOffset: make(map[int]string)}
}

// Add assigns the next offset to name and returns it.
func (f *LocalsFrame) Add(name string) int {
	offset := f.next
	f.byName[name] = offset
	f.byOffset[offset] = name
	f.next += 8
	return offset
}

// AddArg is Add for the "args" phase, additionally counting how many
// leading slots the prologue must copy in from D.
func (f *LocalsFrame) AddArg(name string) int {
	f.argCount++
	return f.Add(name)
}

// AddRet is Add for the "rets" phase, additionally recording the offset
// so the epilogue knows which slots to copy back to D and in what order.
func (f *LocalsFrame) AddRet(name string) int {
	off := f.Add(name)
	f.retOffsets = append(f.retOffsets, off)
	return off
}

// Find returns name's offset and whether it is declared in this frame.
func (f *LocalsFrame) Find(name string) (int, bool) {
	off, ok := f.byName[name]
	return off, ok
}

// Count returns how many local slots have been declared, i.e. the total
// cell count allocateLocals must reserve.
func (f *LocalsFrame) Count() int { return f.next / 8 }

// ArgCount returns how many leading slots are arguments copied in from D.
func (f *LocalsFrame) ArgCount() int { return f.argCount }

// Reset clears the frame at the start of a new colon-definition
// (gen_leftBrace clears locals/localsByOffset/locals_count the same way).
func (f *LocalsFrame) Reset() {
	f.byName = make(map[string]int)
	f.byOffset = make(map[int]string)
	f.next = 0
	f.argCount = 0
	f.retOffsets = nil
}
