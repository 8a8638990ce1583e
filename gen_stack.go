package main

import "github.com/xyproto/forthjit/internal/emit"

// D-stack shuffling and cross-stack primitives. Grounded on
// original_source/JitGenerator.h's genDup/genDrop/genSwap/genOver/
// genRot/genNip/genTuck/genPick/genDepth/genToR/genRFrom/genRFetch/
// genSPFetch/genSPStore/genRPFetch/genRPStore -- all straight-line
// load/store sequences with no branches, reading D/R directly through
// DSPop/DSPush/RSPush/RSPop rather than the original's asmjit pointer
// arithmetic.

func genDup(g *Generator) {
	g.asm.DSPop(emit.RAX)
	g.asm.DSPush(emit.RAX)
	g.asm.DSPush(emit.RAX)
}

func genDrop(g *Generator) {
	g.asm.DSPop(emit.RAX)
}

func genSwap(g *Generator) {
	g.asm.DSPop(emit.RAX)
	g.asm.DSPop(emit.RBX)
	g.asm.DSPush(emit.RAX)
	g.asm.DSPush(emit.RBX)
}

func genOver(g *Generator) {
	g.asm.DSPop(emit.RAX)
	g.asm.DSPop(emit.RBX)
	g.asm.DSPush(emit.RBX)
	g.asm.DSPush(emit.RAX)
	g.asm.DSPush(emit.RBX)
}

func genRot(g *Generator) {
	g.asm.DSPop(emit.RAX) // c
	g.asm.DSPop(emit.RBX) // b
	g.asm.DSPop(emit.RCX) // a
	g.asm.DSPush(emit.RBX) // b
	g.asm.DSPush(emit.RAX) // c
	g.asm.DSPush(emit.RCX) // a
}

func genMinusRot(g *Generator) {
	g.asm.DSPop(emit.RAX) // c
	g.asm.DSPop(emit.RBX) // b
	g.asm.DSPop(emit.RCX) // a
	g.asm.DSPush(emit.RAX) // c
	g.asm.DSPush(emit.RCX) // a
	g.asm.DSPush(emit.RBX) // b
}

func genNip(g *Generator) {
	g.asm.DSPop(emit.RAX)
	g.asm.DSPop(emit.RBX)
	g.asm.DSPush(emit.RAX)
}

func genTuck(g *Generator) {
	g.asm.DSPop(emit.RAX) // b
	g.asm.DSPop(emit.RBX) // a
	g.asm.DSPush(emit.RAX)
	g.asm.DSPush(emit.RBX)
	g.asm.DSPush(emit.RAX)
}

// genPick: ( ... xn ... x0 n -- ... xn ... x0 xn ) pops n from D, then
// duplicates the nth cell down from the new top (0 PICK == DUP) without
// disturbing anything below it. Computes DataTop + n*8 with the same
// shift-and-add sequence genArrayFetch uses for runtime array indexing,
// since n is only known at run time here.
func genPick(g *Generator) {
	a := g.asm
	a.DSPop(emit.RCX)
	a.ShlImm(emit.RCX, 3)
	a.AddRegToReg(emit.RCX, emit.DataTop)
	a.MovMemToReg(emit.RAX, emit.RCX, 0)
	a.DSPush(emit.RAX)
}

func genToR(g *Generator) {
	g.asm.DSPop(emit.RAX)
	g.asm.RSPush(emit.RAX)
}

func genRFrom(g *Generator) {
	g.asm.RSPop(emit.RAX)
	g.asm.DSPush(emit.RAX)
}

func genRFetch(g *Generator) {
	g.asm.MovMemToReg(emit.RAX, emit.ReturnTop, 0)
	g.asm.DSPush(emit.RAX)
}

// genDepth pushes the current D-stack cell count: (ceiling - r15)/8. The
// ceiling address is a fixed immediate baked in at codegen time (g.dCeil),
// since the backing array is allocated once at startup and never moves
// (spec 4.5 DEPTH; original's genDepth instead calls out to a C helper --
// forthjit computes it inline to avoid any native-code call into Go).
func genDepth(g *Generator) {
	a := g.asm
	a.MovImm64ToReg(emit.RAX, g.dCeil)
	a.SubRegFromReg(emit.RAX, emit.DataTop)
	a.ShrImm(emit.RAX, 3)
	a.DSPush(emit.RAX)
}

func genSPFetch(g *Generator) {
	g.asm.DSPush(emit.DataTop)
}

func genSPStore(g *Generator) {
	g.asm.DSPop(emit.DataTop)
}

func genRPFetch(g *Generator) {
	g.asm.DSPush(emit.ReturnTop)
}

func genRPStore(g *Generator) {
	g.asm.DSPop(emit.ReturnTop)
}
