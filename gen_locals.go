package main

import "github.com/xyproto/forthjit/internal/emit"

// genLeftBrace implements the locals-frame opener `{ args | mids -- rets }`
// (spec 4.5 "Locals frame"): scan tokens in three phases until `}`,
// assign offsets, then emit the allocate/copy-in/zero-fill sequence.
// Grounded on original_source/JitGenerator.h's gen_leftBrace and
// allocateLocals (three-phase scan, SUB r13 by total*8, copy args in
// bottom-most-first, zero the rest).
func genLeftBrace(g *Generator, t *Tokenizer) {
	g.locals.Reset()

	const (
		phaseArgs = iota
		phaseMids
		phaseRets
	)
	phase := phaseArgs
	for {
		tok := t.Next()
		if tok.Kind == TokEnd {
			compilerError(ErrControlFlowMismatch, "{ : missing closing }")
		}
		switch tok.Text {
		case "}":
			goto allocate
		case "|":
			phase = phaseMids
			continue
		case "--":
			phase = phaseRets
			continue
		}
		switch phase {
		case phaseArgs:
			g.locals.AddArg(tok.Text)
		case phaseMids:
			g.locals.Add(tok.Text)
		case phaseRets:
			g.locals.AddRet(tok.Text)
		}
	}

allocate:
	total := g.locals.Count()
	if total == 0 {
		return
	}
	a := g.asm
	a.SubRegImm32(emit.LocalsTop, int32(total*8))

	argCount := g.locals.ArgCount()
	for i := argCount - 1; i >= 0; i-- {
		a.DSPop(emit.RAX)
		a.MovRegToMem(emit.LocalsTop, int32(i*8), emit.RAX)
	}
	a.XorRegReg(emit.RBX, emit.RBX)
	for off := argCount * 8; off < total*8; off += 8 {
		a.MovRegToMem(emit.LocalsTop, int32(off), emit.RBX)
	}
}

// resolveToTarget classifies what TO's following name refers to: a local
// in the current frame (locals take priority, matching original_source's
// lookup-locals-before-dictionary order), or a dictionary word whose type
// determines the store emitted (spec 4.5 "TO <name>").
type toTarget struct {
	isLocal     bool
	localOffset int
	word        *Word
}

func resolveToTarget(g *Generator, t *Tokenizer, name string) toTarget {
	if g.locals != nil {
		if off, ok := g.locals.Find(name); ok {
			return toTarget{isLocal: true, localOffset: off}
		}
	}
	w := g.dict.Find(name)
	if w == nil {
		compilerError(ErrUnknownWord, "TO %s", name)
	}
	return toTarget{word: w}
}

// genTo implements compile-mode TO: resolves the name the cursor sits
// just before, then emits the store appropriate to what it names.
func genTo(g *Generator, t *Tokenizer) {
	name := t.Next().Text
	target := resolveToTarget(g, t, name)

	a := g.asm
	if target.isLocal {
		a.DSPop(emit.RAX)
		a.MovRegToMem(emit.LocalsTop, int32(target.localOffset), emit.RAX)
		return
	}

	w := target.word
	switch w.Type {
	case TypeConstant:
		compilerError(ErrToNotWritable, "TO %s: constant is not writable", name)
	case TypeArray, TypeFloatArray:
		genToArrayStore(g, w)
	case TypeString:
		compilerError(ErrToNotWritable, "TO %s: string targets are interpret-only", name)
	case TypeValue, TypeVariable, TypeFloat:
		a.MovImm64ToReg(emit.RCX, w.Data)
		a.DSPop(emit.RAX)
		a.MovRegToMem(emit.RCX, 0, emit.RAX)
	default:
		compilerError(ErrToNotWritable, "TO %s: not a writable target", name)
	}
}

// genToArrayStore emits "value index TO array": pop index, bounds-check
// against w.ArrayLen, pop value, store at base+index*8 (spec 4.5 "if an
// ARRAY, emits bounds-check + indexed store"). An out-of-range index hits
// UD2 (a CPU-level illegal-instruction trap) rather than a trap helper
// call: no sound native-code-to-Go callback bridge exists in this port
// (see DESIGN.md's Open Question decision 4 for why one was not fabricated), so
// the JIT-compiled path traps at the hardware level instead of the
// original's C++ trap-helper CALL; the pure-Go interpret-mode path (see
// toInterp) enforces the same bound with a recoverable ErrArrayBounds.
func genToArrayStore(g *Generator, w *Word) {
	a := g.asm
	a.DSPop(emit.RCX) // index
	a.CmpRegImm32(emit.RCX, int32(w.ArrayLen))
	ok := a.NewLabel()
	a.JumpConditional(emit.CondBelow, ok)
	a.Trap()
	a.Bind(ok)
	a.DSPop(emit.RAX) // value
	a.MovImm64ToReg(emit.RDX, w.Data)
	a.ShlImm(emit.RCX, 3)
	a.AddRegToReg(emit.RDX, emit.RCX)
	a.MovRegToMem(emit.RDX, 0, emit.RAX)
}

// toInterp performs TO's interpret-mode taxonomy immediately rather than
// emitting code (spec 4.5 "TO <name> (interpret-mode): same taxonomy,
// performed immediately without emitting code").
func toInterp(d *Driver, t *Tokenizer) {
	name := t.Next().Text
	w := d.dict.Find(name)
	if w == nil {
		compilerError(ErrUnknownWord, "TO %s", name)
	}
	switch w.Type {
	case TypeConstant:
		compilerError(ErrToNotWritable, "TO %s: constant is not writable", name)
	case TypeArray, TypeFloatArray:
		idx := mustPop(d, "TO "+name)
		if int(idx) < 0 || int(idx) >= w.ArrayLen {
			compilerError(ErrArrayBounds, "TO %s: index %d out of range (len %d)", name, idx, w.ArrayLen)
		}
		v := mustPop(d, "TO "+name)
		*(*uint64)(ptrAt(uintptr(w.Data) + uintptr(idx)*8)) = v
	case TypeString:
		idx := mustPopString(d, "TO "+name)
		d.strtab.IncRef(int(idx))
		if w.Data != 0 {
			d.strtab.DecRef(int(w.Data))
		}
		w.Data = idx
	case TypeValue, TypeVariable, TypeFloat:
		v := mustPop(d, "TO "+name)
		*(*uint64)(ptrAt(uintptr(w.Data))) = v
	default:
		compilerError(ErrToNotWritable, "TO %s: not a writable target", name)
	}
}

// mustPop pops one D cell or raises a recoverable ErrStackUnderflow,
// used throughout the driver and defining-word paths that run in plain
// Go rather than emitted code.
func mustPop(d *Driver, what string) uint64 {
	v, err := d.stacks.PopData()
	if err != nil {
		compilerError(ErrStackUnderflow, "%s", what)
	}
	return v
}
