package main

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/xyproto/forthjit/internal/emit"
)

// Driver ties the dictionary, string table, stacks, and generator
// together into the two execution paths spec 4.8 describes: interpret
// and compile. Grounded on original_source/interpreter.h's top-level
// dispatch loop, generalized from its single global-state style into an
// explicit struct threaded through every call (spec 9's guidance,
// already applied throughout this port).
type Driver struct {
	dict   *Dictionary
	strtab *StringTable
	stacks *Stacks
	gen    *Generator

	loopCheck bool
}

func NewDriver(cfg Config) *Driver {
	dict := NewDictionary()
	strtab := NewStringTable()
	stacks := NewStacks(cfg.StackCells)
	gen := NewGenerator(dict, strtab, stacks)
	d := &Driver{dict: dict, strtab: strtab, stacks: stacks, gen: gen, loopCheck: cfg.LoopCheck}
	registerBuiltins(d)
	return d
}

// Eval tokenizes and runs source through the top-level dispatch loop,
// recovering any compilerError panic into a returned error and resetting
// all state per spec 7's propagation rule: "the emitter's in-progress
// buffer is discarded, the partially parsed definition is abandoned...
// and all four stacks are reset."
func (d *Driver) Eval(source string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(*ForthError); ok {
				err = fe
			} else {
				err = fmt.Errorf("%v", r)
			}
			d.stacks.Reset()
			d.gen.reset()
		}
	}()

	tok, lerr := NewTokenizer(source, d.strtab)
	if lerr != nil {
		return lerr
	}

	for tok.Current().Kind != TokEnd {
		cur := tok.Current()
		switch cur.Kind {
		case TokCompiling:
			tok.Next()
			d.compileDefinition(tok)
		default:
			d.interpretOne(tok)
			tok.Next()
		}
	}
	return nil
}

// interpretOne runs exactly one token through the interpret path (spec
// 4.8 "Interpret path"): literals push directly; words either call their
// compiled form, run their Go-side Interp/InterpCursor action, or fail.
func (d *Driver) interpretOne(tok *Tokenizer) {
	cur := tok.Current()
	switch cur.Kind {
	case TokInteger:
		mustPush(d, cur.IntVal)
	case TokFloat:
		mustPush(d, bitsFromFloat64(cur.FloatVal))
	case TokInterpreting:
		// '[' / ';' encountered outside a definition: no-op at top level.
	case TokWord:
		d.interpretWord(tok, cur.Text)
	case TokEnd:
	}
}

func (d *Driver) interpretWord(tok *Tokenizer, name string) {
	w := d.dict.Find(name)
	if w == nil {
		compilerError(ErrUnknownWord, "%s", name)
	}
	if w.Traced {
		fmt.Printf("trace: %s (interp)\n", w.Name)
	}
	switch {
	case w.InterpCursor != nil:
		w.InterpCursor(d, tok)
	case w.Interp != nil:
		w.Interp(d)
	case w.Page != nil:
		w.Page.Call(unsafe.Pointer(d.stacks.Frame()))
		if f := d.stacks.Frame(); f.dTop > ceilAddr(d.stacks.data) || f.rTop > ceilAddr(d.stacks.ret) ||
			f.lTop > ceilAddr(d.stacks.locals) || f.sTop > ceilAddr(d.stacks.strpos) {
			compilerError(ErrStackUnderflow, "%s", name)
		}
	default:
		compilerError(ErrUnknownWord, "%s has no interpretable form", name)
	}
}

// mustPush pushes one D cell or raises a recoverable ErrStackOverflow.
func mustPush(d *Driver, v uint64) {
	if err := d.stacks.PushData(v); err != nil {
		compilerError(ErrStackOverflow, "%v", err)
	}
}

// compileDefinition implements spec 4.8's compile path. Precondition:
// the ':' (or ']') token has already been consumed; tok now sits on the
// new word's name.
func (d *Driver) compileDefinition(tok *Tokenizer) {
	nameIdx := tok.Pos()
	name := tok.Current().Text
	if d.dict.Find(name) != nil {
		compilerError(ErrRedefinition, "%s", name)
	}
	tok.Next()

	d.gen.reset()
	fe := d.gen.Prologue()

	for tok.Current().Kind != TokEnd && tok.Current().Kind != TokInterpreting {
		cur := tok.Current()
		switch cur.Kind {
		case TokInteger:
			d.gen.EmitPushImmediate(cur.IntVal)
		case TokFloat:
			d.gen.EmitPushImmediate(bitsFromFloat64(cur.FloatVal))
		case TokWord:
			d.compileWord(tok, cur.Text, fe)
		}
		tok.Next()
	}
	d.gen.Epilogue()

	// Capture the full defining span (name through the closing ';', or
	// through whatever was last consumed if the source ran out first) so
	// SEE/display can pretty-print it later (spec 4.3), per the source
	// field's job of holding the original text rather than just the name.
	endIdx := tok.Pos()
	if tok.Current().Kind == TokInterpreting {
		endIdx++
	}
	src := ": " + strings.Join(tok.TextRange(nameIdx, endIdx), " ")

	code, err := d.gen.asm.Bytes()
	if err != nil {
		compilerError(ErrControlFlowMismatch, "%s: %v", name, err)
	}
	page, err := emit.Finalize(code, nil)
	if err != nil {
		compilerError(ErrControlFlowMismatch, "%s: %v", name, err)
	}

	w := &Word{Name: name, Page: page, Source: src}
	d.dict.Add(w)
}

// compileWord dispatches one word token inside a colon-definition body,
// per spec 4.8's compile-path bullet list (locals shadow the dictionary,
// then immediate, immediate-with-cursor, generator-inline, the
// interpret-only rejection, plain CALL, in that order).
func (d *Driver) compileWord(tok *Tokenizer, name string, _ FunctionEntryExitLabel) {
	if off, ok := d.gen.locals.Find(name); ok {
		d.gen.EmitPushLocal(off)
		return
	}

	w := d.dict.Find(name)
	if w == nil {
		compilerError(ErrUnknownWord, "%s", name)
	}
	if w.Traced {
		fmt.Printf("trace: %s (compile)\n", w.Name)
	}

	switch {
	case w.Immediate != nil:
		w.Immediate(d.gen)
	case w.CompileCursor != nil:
		w.CompileCursor(d.gen, tok)
	case w.Generator != nil:
		w.Generator(d.gen)
	case w.State&StateInterpretOnly != 0:
		compilerError(ErrInterpretOnly, "%s", name)
	case w.Page != nil:
		d.gen.EmitCallWord(w)
	default:
		compilerError(ErrUnknownWord, "%s has no compiled form", name)
	}
}
