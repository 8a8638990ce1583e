package main

import "github.com/xyproto/forthjit/internal/emit"

// Integer arithmetic primitives. Each generator pops its operand(s) from
// D, computes, and pushes one result, per spec 4.5's "binary: pop two
// cells from D, compute, push one; unary: pop, compute, push" contract.
// Grounded on original_source/JitGenerator.h's genPlus/genSub/genMul/
// genDiv/genMod/genNegate/genInvert/genAbs, generalized from that file's
// direct [r15] memory addressing to the DSPop/DSPush helper pair so every
// primitive here reads identically regardless of which stack it touches.

func genAdd(g *Generator) {
	g.asm.DSPop(emit.RAX)
	g.asm.DSPop(emit.RBX)
	g.asm.AddRegToReg(emit.RBX, emit.RAX)
	g.asm.DSPush(emit.RBX)
}

func genSub(g *Generator) {
	g.asm.DSPop(emit.RAX) // subtrahend (top of stack)
	g.asm.DSPop(emit.RBX) // minuend
	g.asm.SubRegFromReg(emit.RBX, emit.RAX)
	g.asm.DSPush(emit.RBX)
}

func genMul(g *Generator) {
	g.asm.DSPop(emit.RAX)
	g.asm.DSPop(emit.RBX)
	g.asm.ImulRegReg(emit.RBX, emit.RAX)
	g.asm.DSPush(emit.RBX)
}

func genDiv(g *Generator) {
	g.asm.DSPop(emit.RCX) // divisor
	g.asm.DSPop(emit.RAX) // dividend
	g.asm.DivRegByReg(emit.RAX, emit.RCX)
	g.asm.DSPush(emit.RAX)
}

func genMod(g *Generator) {
	g.asm.DSPop(emit.RCX) // divisor
	g.asm.DSPop(emit.RAX) // dividend
	g.asm.ModRegByReg(emit.RAX, emit.RCX)
	g.asm.DSPush(emit.RAX)
}

func genNegate(g *Generator) {
	g.asm.DSPop(emit.RAX)
	g.asm.NegReg(emit.RAX)
	g.asm.DSPush(emit.RAX)
}

func genInvert(g *Generator) {
	g.asm.DSPop(emit.RAX)
	g.asm.NotReg(emit.RAX)
	g.asm.DSPush(emit.RAX)
}

func genAbs(g *Generator) {
	g.asm.DSPop(emit.RAX)
	g.asm.CmpRegImm32(emit.RAX, 0)
	positive := g.asm.NewLabel()
	g.asm.JumpConditional(emit.CondGreaterEqual, positive)
	g.asm.NegReg(emit.RAX)
	g.asm.Bind(positive)
	g.asm.DSPush(emit.RAX)
}

// genMin/genMax: pop both, compare, push the chosen one via SETcc-free
// branching (kept simple and explicit, matching the teacher's preference
// for readable branchy codegen over clever cmov sequences elsewhere).
func genMin(g *Generator) {
	g.asm.DSPop(emit.RAX)
	g.asm.DSPop(emit.RBX)
	g.asm.CmpRegToReg(emit.RBX, emit.RAX)
	useB := g.asm.NewLabel()
	done := g.asm.NewLabel()
	g.asm.JumpConditional(emit.CondLess, useB)
	g.asm.DSPush(emit.RAX)
	g.asm.JumpUnconditional(done)
	g.asm.Bind(useB)
	g.asm.DSPush(emit.RBX)
	g.asm.Bind(done)
}

func genMax(g *Generator) {
	g.asm.DSPop(emit.RAX)
	g.asm.DSPop(emit.RBX)
	g.asm.CmpRegToReg(emit.RBX, emit.RAX)
	useB := g.asm.NewLabel()
	done := g.asm.NewLabel()
	g.asm.JumpConditional(emit.CondGreater, useB)
	g.asm.DSPush(emit.RAX)
	g.asm.JumpUnconditional(done)
	g.asm.Bind(useB)
	g.asm.DSPush(emit.RBX)
	g.asm.Bind(done)
}

// genWithin: (v lo hi -- ?) true iff lo <= v < hi (spec 4.5).
func genWithin(g *Generator) {
	g.asm.DSPop(emit.RDX) // hi
	g.asm.DSPop(emit.RCX) // lo
	g.asm.DSPop(emit.RAX) // v

	fail := g.asm.NewLabel()
	done := g.asm.NewLabel()
	g.asm.CmpRegToReg(emit.RAX, emit.RCX)
	g.asm.JumpConditional(emit.CondLess, fail) // v < lo -> false
	g.asm.CmpRegToReg(emit.RAX, emit.RDX)
	g.asm.JumpConditional(emit.CondGreaterEqual, fail) // v >= hi -> false

	g.asm.MovImm64ToReg(emit.RAX, 0xFFFFFFFFFFFFFFFF)
	g.asm.JumpUnconditional(done)
	g.asm.Bind(fail)
	g.asm.XorRegReg(emit.RAX, emit.RAX)
	g.asm.Bind(done)
	g.asm.DSPush(emit.RAX)
}

// genSqrt: iterative integer Newton's-method square root, avoiding the
// FPU (spec 4.5: "Integer SQRT (named sqrt): iterative Newton-style
// without FPU"). Unrolled to a fixed 64 iterations at compile time rather
// than looped with a convergence test -- each pass keeps the smaller of
// the current and the new estimate, so the estimate never rises and
// settles at floor(sqrt(n)) instead of alternating with floor(sqrt(n))+1;
// 64 passes settle any non-negative 64-bit cell.
func genSqrt(g *Generator) {
	a := g.asm
	a.DSPop(emit.RDI) // n, kept live across every iteration
	zero := a.NewLabel()
	done := a.NewLabel()
	a.CmpRegImm32(emit.RDI, 0)
	a.JumpConditional(emit.CondEqual, zero)

	a.MovRegToReg(emit.RAX, emit.RDI) // x0 = n
	for i := 0; i < 64; i++ {
		a.MovRegToReg(emit.RCX, emit.RDI) // RCX = n
		a.MovRegToReg(emit.RBX, emit.RAX) // RBX = x
		a.MovRegToReg(emit.RSI, emit.RAX) // RSI = x, kept across the divide
		a.DivRegByReg(emit.RCX, emit.RBX) // RCX = n / x
		a.AddRegToReg(emit.RBX, emit.RCX) // RBX = x + n/x
		a.ShrImm(emit.RBX, 1)             // RBX = (x + n/x) / 2
		a.MovRegToReg(emit.RAX, emit.RSI) // RAX = x
		keep := a.NewLabel()
		a.CmpRegToReg(emit.RBX, emit.RAX)
		a.JumpConditional(emit.CondAboveEqual, keep) // new estimate not smaller: keep x
		a.MovRegToReg(emit.RAX, emit.RBX)
		a.Bind(keep)
	}
	a.JumpUnconditional(done)
	a.Bind(zero)
	a.XorRegReg(emit.RAX, emit.RAX)
	a.Bind(done)
	a.DSPush(emit.RAX)
}

// genGcd: Euclidean algorithm via repeated IDIV (spec 4.5).
func genGcd(g *Generator) {
	a := g.asm
	a.DSPop(emit.RBX) // b
	a.DSPop(emit.RAX) // a

	loop := a.NewLabel()
	done := a.NewLabel()
	a.Bind(loop)
	a.CmpRegImm32(emit.RBX, 0)
	a.JumpConditional(emit.CondEqual, done)
	a.MovRegToReg(emit.RCX, emit.RAX) // RCX = a
	a.ModRegByReg(emit.RCX, emit.RBX) // RCX = a % b
	a.MovRegToReg(emit.RAX, emit.RBX) // a = b
	a.MovRegToReg(emit.RBX, emit.RCX) // b = remainder
	a.JumpUnconditional(loop)
	a.Bind(done)
	a.DSPush(emit.RAX)
}

// Optimized immediate forms (spec 4.5): 1+/2+/16+/1-/2-/16- as single
// ADD/SUB-immediate instructions instead of pushing a literal and calling
// the generic add/sub.
func genAddImm(n int32) generatorFunc {
	return func(g *Generator) {
		g.asm.DSPop(emit.RAX)
		g.asm.AddRegImm32(emit.RAX, n)
		g.asm.DSPush(emit.RAX)
	}
}

func genSubImm(n int32) generatorFunc {
	return func(g *Generator) {
		g.asm.DSPop(emit.RAX)
		g.asm.SubRegImm32(emit.RAX, n)
		g.asm.DSPush(emit.RAX)
	}
}

// Shift-based multiply/divide forms (spec 4.5): 2*/4*/8*/16* and
// 2//4//8/ as logical shifts; 10* as (x<<3 + x<<1) to avoid IMUL.
func genShl(n uint8) generatorFunc {
	return func(g *Generator) {
		g.asm.DSPop(emit.RAX)
		g.asm.ShlImm(emit.RAX, n)
		g.asm.DSPush(emit.RAX)
	}
}

func genShr(n uint8) generatorFunc {
	return func(g *Generator) {
		g.asm.DSPop(emit.RAX)
		g.asm.ShrImm(emit.RAX, n)
		g.asm.DSPush(emit.RAX)
	}
}

func genTimes10(g *Generator) {
	g.asm.DSPop(emit.RAX)
	g.asm.MovRegToReg(emit.RBX, emit.RAX)
	g.asm.ShlImm(emit.RAX, 3)
	g.asm.ShlImm(emit.RBX, 1)
	g.asm.AddRegToReg(emit.RAX, emit.RBX)
	g.asm.DSPush(emit.RAX)
}

// Comparisons and booleans (spec 4.5: "comparisons push Forth-style
// booleans: 0 for false, -1 for true").
func genCompare(cond emit.Condition) generatorFunc {
	return func(g *Generator) {
		g.asm.DSPop(emit.RAX)
		g.asm.DSPop(emit.RBX)
		g.asm.CmpRegToReg(emit.RBX, emit.RAX)
		g.asm.SetccToReg(cond, emit.RAX)
		g.asm.BoolFromSetcc(emit.RAX)
		g.asm.DSPush(emit.RAX)
	}
}

func genCompareZero(cond emit.Condition) generatorFunc {
	return func(g *Generator) {
		g.asm.DSPop(emit.RAX)
		g.asm.CmpRegImm32(emit.RAX, 0)
		g.asm.SetccToReg(cond, emit.RAX)
		g.asm.BoolFromSetcc(emit.RAX)
		g.asm.DSPush(emit.RAX)
	}
}

func genNot(g *Generator) {
	g.asm.DSPop(emit.RAX)
	g.asm.NotReg(emit.RAX)
	g.asm.DSPush(emit.RAX)
}

func genAnd(g *Generator) {
	g.asm.DSPop(emit.RAX)
	g.asm.DSPop(emit.RBX)
	g.asm.AndRegReg(emit.RBX, emit.RAX)
	g.asm.DSPush(emit.RBX)
}

func genOr(g *Generator) {
	g.asm.DSPop(emit.RAX)
	g.asm.DSPop(emit.RBX)
	g.asm.OrRegReg(emit.RBX, emit.RAX)
	g.asm.DSPush(emit.RBX)
}

func genXor(g *Generator) {
	g.asm.DSPop(emit.RAX)
	g.asm.DSPop(emit.RBX)
	g.asm.XorRegRegAlu(emit.RBX, emit.RAX)
	g.asm.DSPush(emit.RBX)
}

// genStarSlashMod: */MOD ( a b c -- rem quot ), widening a*b into
// RDX:RAX before dividing by c so the intermediate product cannot
// overflow 64 bits -- the classic reason Forth systems supply this word
// instead of callers chaining `* /` (spec supplement, see SPEC_FULL.md).
func genStarSlashMod(g *Generator) {
	a := g.asm
	a.DSPop(emit.RCX) // c
	a.DSPop(emit.RBX) // b
	a.DSPop(emit.RAX) // a
	a.ImulRegRDXRAX(emit.RBX) // RDX:RAX = a * b
	a.IdivReg(emit.RCX)       // RAX = quot, RDX = rem
	a.DSPush(emit.RDX)
	a.DSPush(emit.RAX)
}
