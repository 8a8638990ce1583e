package main

import (
	"github.com/xyproto/forthjit/internal/emit"
)

// Generator owns the single live Assembler for the word currently being
// compiled, plus the compile-time-only state that spans one whole
// colon-definition: the control-flow label stack and the locals frame.
// Grounded on original_source/JitGenerator.h's static-function style
// generator (there implemented as a namespace of static methods sharing
// module-level globals; here the same shared state is threaded as struct
// fields instead of globals, per spec 9's dependency-injection guidance).
type Generator struct {
	dict   *Dictionary
	strtab *StringTable
	labels *LabelStack
	locals *LocalsFrame

	asm *emit.Assembler

	// dCeil is the data stack's fixed ceiling address (spec 4.5's DEPTH:
	// "cells currently on D"), baked in as an immediate at codegen time
	// since the backing array never reallocates after NewStacks (stack.go).
	dCeil uint64
}

func NewGenerator(dict *Dictionary, strtab *StringTable, stacks *Stacks) *Generator {
	return &Generator{
		dict:   dict,
		strtab: strtab,
		labels: NewLabelStack(),
		locals: NewLocalsFrame(),
		asm:    emit.NewAssembler(),
		dCeil:  uint64(ceilAddr(stacks.data)),
	}
}

// reset prepares the generator for a fresh word compilation: a clean
// Assembler, an empty label stack (including its DO-loop depth) and a
// cleared locals frame (spec 4.4: "the emitter is reset at the start of
// every new word compilation").
func (g *Generator) reset() {
	g.asm.Reset()
	g.labels = NewLabelStack()
	g.locals.Reset()
}

// Prologue opens a colon-definition: nop, bind the entry label, push a
// FUNCTION_ENTRY_EXIT frame (genPrologue).
func (g *Generator) Prologue() FunctionEntryExitLabel {
	g.asm.WriteBytes(0x90) // nop
	entry := g.asm.NewLabel()
	exit := g.asm.NewLabel()
	g.asm.Bind(entry)
	fe := FunctionEntryExitLabel{EntryLabel: entry, ExitLabel: exit}
	g.labels.Push(LoopLabel{Type: LoopFunctionEntryExit, FuncEntry: fe})
	return fe
}

// Epilogue closes a colon-definition: pop the FUNCTION_ENTRY_EXIT frame,
// copy locals return-values back to D, free the locals frame, RET
// (genEpilogue).
func (g *Generator) Epilogue() {
	top, ok := g.labels.Pop()
	if !ok || top.Type != LoopFunctionEntryExit {
		compilerError(ErrControlFlowMismatch, "epilogue: no matching function frame")
	}
	g.asm.Bind(top.FuncEntry.ExitLabel)

	if g.locals.Count() > 0 {
		g.emitLocalsEpilogue()
	}
	g.asm.Ret()
}

// emitLocalsEpilogue copies the locals frame's declared return slots back
// onto D (in declaration order) then releases the frame, mirroring
// genEpilogue's totalLocalsCount handling.
func (g *Generator) emitLocalsEpilogue() {
	for _, off := range g.locals.retOffsets {
		g.asm.MovMemToReg(emit.RCX, emit.LocalsTop, int32(off))
		g.asm.DSPush(emit.RCX)
	}
	g.asm.AddRegImm32(emit.LocalsTop, int32(g.locals.Count()*8))
}

// CompilePrimitive builds a standalone native function implementing gen
// (a builtin's inline emission) and finalizes it into an executable page,
// so the same emission code serves as both the inline generator (spec
// 4.5) and the interpret-time callable "compiled" behavior (spec 4.8):
// this is the "each primitive supplies both an inline generator and a
// callable compiled-function form" contract from spec 2's Built-in
// loader row, implemented by literally running the generator once into
// its own one-instruction-sequence function instead of hand-writing a
// second, parallel implementation of every primitive.
func (g *Generator) CompilePrimitive(name string, gen generatorFunc) *Word {
	scratch := emit.NewAssembler()
	saved := g.asm
	g.asm = scratch
	gen(g)
	g.asm.Ret()
	g.asm = saved

	code, err := scratch.Bytes()
	if err != nil {
		compilerError(ErrRedefinition, "compiling primitive %s: %v", name, err)
	}
	page, err := emit.Finalize(code, nil)
	if err != nil {
		compilerError(ErrRedefinition, "finalizing primitive %s: %v", name, err)
	}
	return &Word{Name: name, Generator: gen, Page: page}
}

// EmitPushImmediate emits code to push a 64-bit immediate onto D
// (genPushLong / genPushDouble: both just MOV imm64, reg then pushDS).
func (g *Generator) EmitPushImmediate(v uint64) {
	g.asm.MovImm64ToReg(emit.RAX, v)
	g.asm.DSPush(emit.RAX)
}

// EmitCallWord emits a call to another word's finalized native code
// (spec 4.8 compile path: "word with compiled but no generator -> emit
// CALL compiled"). RECURSE instead calls the current word's own entry
// label directly (see gen_control.go), since that word has no Page yet.
func (g *Generator) EmitCallWord(w *Word) {
	if w.Page == nil {
		compilerError(ErrUnknownWord, "%s has no compiled form", w.Name)
	}
	g.asm.CallAbs(emit.RAX, uint64(w.Page.Addr()))
}

// EmitPushLocal / EmitStoreLocal implement fetchLocal/storeLocal.
func (g *Generator) EmitPushLocal(offset int) {
	g.asm.MovMemToReg(emit.RCX, emit.LocalsTop, int32(offset))
	g.asm.DSPush(emit.RCX)
}

func (g *Generator) EmitStoreLocal(offset int) {
	g.asm.DSPop(emit.RCX)
	g.asm.MovRegToMem(emit.LocalsTop, int32(offset), emit.RCX)
}
