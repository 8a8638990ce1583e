package main

// registerControl installs spec 6's Control row and `{` as compile-only
// immediate words (spec 4.5: "all are compile-only immediate words")
// dispatched through Word.Immediate/CompileCursor rather than
// Generator/Page, since none of them have a standalone callable form --
// IF/IF-less branching only makes sense while a colon-definition is being
// assembled. `{` reads its own declaration up to the closing `}`, which is
// not a word of its own. `TO` is immediate but not compile-only: it also
// has an interpret-time action.
func registerControl(d *Driver) {
	imm := func(name string, fn func(g *Generator)) {
		w := &Word{Name: name, State: StateImmediate | StateCompileOnly}
		w.Immediate = fn
		d.dict.Add(w)
	}
	cursor := func(name string, fn cursorGenFunc) {
		w := &Word{Name: name, State: StateImmediate | StateCompileOnly}
		w.CompileCursor = fn
		d.dict.Add(w)
	}

	imm("IF", (*Generator).genIf)
	imm("ELSE", (*Generator).genElse)
	imm("THEN", (*Generator).genThen)
	imm("BEGIN", (*Generator).genBegin)
	imm("UNTIL", (*Generator).genUntil)
	imm("WHILE", (*Generator).genWhile)
	imm("REPEAT", (*Generator).genRepeat)
	imm("AGAIN", (*Generator).genAgain)
	imm("DO", (*Generator).genDo)
	imm("LOOP", (*Generator).genLoop)
	imm("+LOOP", (*Generator).genPlusLoop)
	imm("I", (*Generator).genI)
	imm("J", (*Generator).genJ)
	imm("K", (*Generator).genK)
	imm("LEAVE", (*Generator).genLeave)
	imm("EXIT", (*Generator).genExit)
	imm("RECURSE", (*Generator).genRecurse)
	imm("CASE", (*Generator).genCase)
	imm("OF", (*Generator).genOf)
	imm("ENDOF", (*Generator).genEndOf)
	imm("DEFAULT", (*Generator).genDefault)
	imm("ENDCASE", (*Generator).genEndCase)

	cursor("{", genLeftBrace)

	// TO is both a compile-time emitter and an interpret-time action
	// (spec 4.5 "TO <name>" for each mode), so it carries both cursor
	// behaviors on one Word rather than being registered twice.
	to := &Word{Name: "TO", State: StateImmediate}
	to.CompileCursor = genTo
	to.InterpCursor = toInterp
	d.dict.Add(to)
}
