package main

import "github.com/xyproto/forthjit/internal/emit"

// Raw memory ops: @ ! operate through an address left on D (spec 4.5
// "Memory ops"). Grounded on original_source/JitGenerator.h's genFetch/
// genStore, which do the identical pop-address/load-or-store/push
// sequence against a plain 64-bit cell.

func genFetch(g *Generator) {
	g.asm.DSPop(emit.RAX)
	g.asm.MovMemToReg(emit.RBX, emit.RAX, 0)
	g.asm.DSPush(emit.RBX)
}

func genStore(g *Generator) {
	g.asm.DSPop(emit.RAX) // address
	g.asm.DSPop(emit.RBX) // value
	g.asm.MovRegToMem(emit.RAX, 0, emit.RBX)
}
