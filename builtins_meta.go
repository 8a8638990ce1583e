package main

import "fmt"

// registerMeta installs spec 6's Meta row (words/see/FORGET/CHAR) and the
// two boolean constants.
func registerMeta(d *Driver) {
	add := func(name string, gen generatorFunc) {
		w := d.gen.CompilePrimitive(name, gen)
		d.dict.Add(w)
	}
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

	// TRUE/FALSE are ordinary compiled constants, usable both inside and
	// outside a colon-definition like any other immediate push.
	add("TRUE", func(g *Generator) { g.EmitPushImmediate(^uint64(0)) })
	add("FALSE", func(g *Generator) { g.EmitPushImmediate(0) })

	interp("words", wordsList)
	cursor("see", seeWord)
	cursor("FORGET", forgetWord)
	cursor("CHAR", charWord)
}

// wordsList implements `words`: print every defined name, most recently
// defined first (Dictionary.Words; grounded on the teacher's symbol-table
// walk style).
func wordsList(d *Driver) {
	for _, name := range d.dict.Words() {
		fmt.Printf("%s ", name)
	}
}

// seeWord implements `see <name>`: print the full spec 4.3 display for a
// word (entry addresses, type/state, data variant, and a pretty-printed
// rendering of its defining text for a colon-definition).
func seeWord(d *Driver, t *Tokenizer) {
	name := t.Next().Text
	out, err := d.dict.Display(name)
	if err != nil {
		compilerError(ErrUnknownWord, "see %s", name)
	}
	fmt.Print(out)
}

// forgetWord implements `FORGET <name>`: remove name and every word
// defined after it, releasing their executable pages (Dictionary.Forget).
func forgetWord(d *Driver, t *Tokenizer) {
	name := t.Next().Text
	if err := d.dict.Forget(name); err != nil {
		panic(err)
	}
}

// charWord implements `CHAR <tok>` ( -- c ): consumes the next token and
// pushes its first byte as an integer (spec 3 supplement, grounded on the
// bootstrap soft-word pattern of immediate words that consume one
// following token).
func charWord(d *Driver, t *Tokenizer) {
	tok := t.Next()
	if tok.Text == "" {
		compilerError(ErrIllFormedNumber, "CHAR: missing argument")
	}
	mustPush(d, uint64(tok.Text[0]))
}
