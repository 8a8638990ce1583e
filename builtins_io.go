package main

import "fmt"

// I/O primitives (spec 6's I/O row), all Go-side Interp-only words: the
// original calls into native C++ helpers (printDecimal/printUnsignedHex/
// prints, see original_source/JitGenerator.h's genDot/genHDot/
// genImmediateDotQuote/genImmediateSQuote) directly from JIT-emitted
// code, a call shape this port cannot reproduce (no native-code-to-Go
// callback bridge, see DESIGN.md's Open Question decision 4). Using `.`/`."`/
// etc. inside a colon-definition is therefore rejected with
// ErrInterpretOnly rather than compiled -- a further scope narrowing
// beyond the distillation, recorded in DESIGN.md.
func registerIO(d *Driver) {
	interp := func(name string, fn func(d *Driver)) {
		w := &Word{Name: name, State: StateInterpretOnly}
		w.Interp = fn
		d.dict.Add(w)
	}
	cursor := func(name string, fn cursorInterpFunc) {
		w := &Word{Name: name, State: StateInterpretOnly}
		w.InterpCursor = fn
		d.dict.Add(w)
	}

	interp(".", dotPrint)
	interp("h.", hexPrint)
	interp("emit", emitChar)
	interp(".s", dotS)
	interp("f.", floatPrint)
	interp("s.", stringPrint)

	cursor(".\"", dotQuote)
	cursor("s\"", sQuote)
}

// dotPrint implements `.` ( n -- ): pop and print decimal, space-terminated.
func dotPrint(d *Driver) {
	v := mustPop(d, ".")
	fmt.Printf("%d ", int64(v))
}

// hexPrint implements `h.` ( n -- ): pop and print unsigned hex.
func hexPrint(d *Driver) {
	v := mustPop(d, "h.")
	fmt.Printf("%x ", v)
}

// emitChar implements `emit` ( c -- ): pop and write one byte, no
// trailing space (spec 6 EMIT is a raw byte writer, unlike `.`).
func emitChar(d *Driver) {
	v := mustPop(d, "emit")
	fmt.Print(string([]byte{byte(v)}))
}

// dotS implements `.s` ( -- ): print the data stack bottom-to-top (the
// top cell last) without disturbing it, for interactive inspection.
func dotS(d *Driver) {
	depth := d.stacks.DataDepth()
	fmt.Printf("<%d> ", depth)
	for i := depth - 1; i >= 0; i-- {
		v, err := d.stacks.DataCellAt(i)
		if err != nil {
			break
		}
		fmt.Printf("%d ", int64(v))
	}
}

// floatPrint implements `f.` ( f -- ): pop a float bit pattern, print its
// decoded value (genFDot's native printFloat call, reimplemented in Go
// since formatting float64 is a Go-side concern no compiled word may
// perform directly).
func floatPrint(d *Driver) {
	bits := mustPop(d, "f.")
	fmt.Printf("%g ", float64FromBits(bits))
}

// stringPrint implements `s.` ( s -- ): pop a string-table index off S,
// print its text.
func stringPrint(d *Driver) {
	idx := mustPopString(d, "s.")
	fmt.Print(d.strtab.String(int(idx)))
}

// dotQuote implements `."` ( -- ): consumes the synthetic string token
// the tokenizer produced for the quoted span (spec 4.7's sPtr_<addr>
// token, whose StrIndex field already carries the interned index without
// needing to re-parse the literal text) and prints it.
func dotQuote(d *Driver, t *Tokenizer) {
	tok := t.Next()
	fmt.Print(d.strtab.String(tok.StrIndex))
}

// sQuote implements `s"` ( -- s ): consumes the synthetic string token,
// bumps its refcount, pushes its index onto S (genImmediateSQuote).
func sQuote(d *Driver, t *Tokenizer) {
	tok := t.Next()
	d.strtab.IncRef(tok.StrIndex)
	mustPushString(d, uint64(tok.StrIndex), "s\"")
}
