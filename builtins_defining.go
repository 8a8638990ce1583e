package main

import "github.com/xyproto/forthjit/internal/emit"

// Immediate-defining words (spec 4.6): executed at interpret time, they
// consume the following token as a name and install a new dictionary
// entry whose compiled behavior depends on what was defined. Grounded on
// original_source/JitGenerator.h's genValue/genVariable/genString/
// genArray-style entry creation, adapted from the original's arena-slot
// allocation to forthjit's per-Word heap cell (dict.go's newDataCell/
// newArrayCells).

// genLoadCell builds the generator for VALUE/FVALUE/CONSTANT/FCONSTANT:
// push the contents of the backing cell at addr onto D.
func genLoadCell(addr uintptr) generatorFunc {
	return func(g *Generator) {
		g.asm.MovImm64ToReg(emit.RAX, uint64(addr))
		g.asm.MovMemToReg(emit.RBX, emit.RAX, 0)
		g.asm.DSPush(emit.RBX)
	}
}

// genPushAddr builds VARIABLE's generator: push the cell's address itself.
func genPushAddr(addr uintptr) generatorFunc {
	return func(g *Generator) {
		g.asm.MovImm64ToReg(emit.RAX, uint64(addr))
		g.asm.DSPush(emit.RAX)
	}
}

// genArrayFetch builds ARRAY's generator: pop index, bounds-check
// (UD2 trap on failure, see gen_locals.go's genToArrayStore for why),
// load base+index*8, push (spec 4.6 ARRAY "emit indexed-fetch code").
func genArrayFetch(base uintptr, count int) generatorFunc {
	return func(g *Generator) {
		a := g.asm
		a.DSPop(emit.RCX)
		a.CmpRegImm32(emit.RCX, int32(count))
		ok := a.NewLabel()
		a.JumpConditional(emit.CondBelow, ok)
		a.Trap()
		a.Bind(ok)
		a.MovImm64ToReg(emit.RDX, uint64(base))
		a.ShlImm(emit.RCX, 3)
		a.AddRegToReg(emit.RDX, emit.RCX)
		a.MovMemToReg(emit.RAX, emit.RDX, 0)
		a.DSPush(emit.RAX)
	}
}

// defineValue implements VALUE/FVALUE: pop D (or the float bit pattern,
// same representation), create an entry of the given type whose compiled
// form loads the cell (spec 4.6).
func defineValue(d *Driver, t *Tokenizer, typ WordType) {
	name := t.Next().Text
	v := mustPop(d, name)
	addr := newDataCell(v)
	w := &Word{Name: name, Type: typ, Data: uint64(addr)}
	w.Generator = genLoadCell(addr)
	w.Page = d.gen.CompilePrimitive(name, w.Generator).Page
	d.dict.Add(w)
}

// defineConstant implements CONSTANT/FCONSTANT: identical emission to
// VALUE but typed CONSTANT so TO rejects it (spec 4.6).
func defineConstant(d *Driver, t *Tokenizer, typ WordType) {
	defineValue(d, t, typ)
	if w := d.dict.Latest(); w != nil {
		w.Type = typ
	}
}

// defineVariable implements VARIABLE: create an entry whose compiled
// form pushes the *address* of a zero-initialized data cell (spec 4.6).
func defineVariable(d *Driver, t *Tokenizer) {
	name := t.Next().Text
	addr := newDataCell(0)
	w := &Word{Name: name, Type: TypeVariable, Data: uint64(addr)}
	w.Generator = genPushAddr(addr)
	w.Page = d.gen.CompilePrimitive(name, w.Generator).Page
	d.dict.Add(w)
}

// defineString implements STRING: pop an S-stack index, increment its
// refcount, create an entry whose compiled form pushes that index onto S
// (spec 4.6). STRING values only exist as an interpret-time concept in
// this port (see gen_locals.go's genTo STRING case), so the generator
// here still emits real code (for reading the value inside a
// colon-definition) but TO on a STRING target stays interpret-only.
func defineString(d *Driver, t *Tokenizer) {
	name := t.Next().Text
	idx := mustPopString(d, name)
	d.strtab.IncRef(int(idx))
	w := &Word{Name: name, Type: TypeString, Data: idx}
	w.Generator = func(g *Generator) {
		g.asm.MovImm64ToReg(emit.RAX, idx)
		g.asm.SSPush(emit.RAX)
	}
	w.Page = d.gen.CompilePrimitive(name, w.Generator).Page
	d.dict.Add(w)
}

// defineArray implements ARRAY: pop count, allot count cells, create an
// entry whose compiled form is the bounds-checked indexed fetch (spec 4.6).
func defineArray(d *Driver, t *Tokenizer, typ WordType) {
	name := t.Next().Text
	count := mustPop(d, name)
	n := int(count)
	base := newArrayCells(n)
	w := &Word{Name: name, Type: typ, Data: uint64(base), ArrayLen: n}
	w.Generator = genArrayFetch(base, n)
	w.Page = d.gen.CompilePrimitive(name, w.Generator).Page
	d.dict.Add(w)
}

// registerDefining installs spec 6's Defining row as InterpCursor words:
// each consumes the following name token itself (spec 4.6, spec 4.8's
// "invoke with cursor visibility so it may advance the cursor").
func registerDefining(d *Driver) {
	cursor := func(name string, fn cursorInterpFunc) {
		w := &Word{Name: name, State: StateInterpretOnly}
		w.InterpCursor = fn
		d.dict.Add(w)
	}

	cursor("VALUE", func(d *Driver, t *Tokenizer) { defineValue(d, t, TypeValue) })
	cursor("FVALUE", func(d *Driver, t *Tokenizer) { defineValue(d, t, TypeFloat) })
	cursor("CONSTANT", func(d *Driver, t *Tokenizer) { defineConstant(d, t, TypeConstant) })
	cursor("FCONSTANT", func(d *Driver, t *Tokenizer) { defineConstant(d, t, TypeConstant) })
	cursor("VARIABLE", func(d *Driver, t *Tokenizer) { defineVariable(d, t) })
	cursor("STRING", func(d *Driver, t *Tokenizer) { defineString(d, t) })
	cursor("ARRAY", func(d *Driver, t *Tokenizer) { defineArray(d, t, TypeArray) })
}
