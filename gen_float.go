package main

import "github.com/xyproto/forthjit/internal/emit"

// Floating-point primitives. Every D cell holding a float carries the
// IEEE-754 bit pattern of a double, moved between the integer stack and
// the SSE unit through MOVQ (spec 4.5: "Floating operations treat D
// cells as IEEE-754 double bit patterns"). Grounded on
// original_source/JitGenerator.h's genFPlus/genFSub/genFMul/genFDiv/
// genFMod/genSqrt/genFMax/genFMin/genFAbs/genFLess/genFGreater/
// genFApproxEquals/genFApproxNotEquals/genFDot/genIntToFloat/
// genFloatToInt, read at their exact emission sequences so operand
// ordering (which popped value lands in which register) matches exactly.

// epsilonBits is the IEEE-754 bit pattern of 1e-9, used by f= and f<>'s
// absolute-difference tolerance test (spec 4.5).
const epsilonBits uint64 = 0x3E112E0BE826D695

// absMaskBits clears the sign bit of a double, used by fabs, f=, f<>.
const absMaskBits uint64 = 0x7FFFFFFFFFFFFFFF

func genFPlus(g *Generator) {
	a := g.asm
	a.DSPop(emit.RAX)
	a.DSPop(emit.RBX)
	a.MovqXmmFromReg(emit.XMM0, emit.RAX)
	a.MovqXmmFromReg(emit.XMM1, emit.RBX)
	a.AddSD(emit.XMM0, emit.XMM1)
	a.MovqRegFromXmm(emit.RAX, emit.XMM0)
	a.DSPush(emit.RAX)
}

func genFSub(g *Generator) {
	a := g.asm
	a.DSPop(emit.RAX) // top (b)
	a.DSPop(emit.RBX) // a
	a.MovqXmmFromReg(emit.XMM0, emit.RBX) // a
	a.MovqXmmFromReg(emit.XMM1, emit.RAX) // b
	a.SubSD(emit.XMM0, emit.XMM1)         // a - b
	a.MovqRegFromXmm(emit.RBX, emit.XMM0)
	a.DSPush(emit.RBX)
}

func genFMul(g *Generator) {
	a := g.asm
	a.DSPop(emit.RAX)
	a.DSPop(emit.RBX)
	a.MovqXmmFromReg(emit.XMM0, emit.RAX)
	a.MovqXmmFromReg(emit.XMM1, emit.RBX)
	a.MulSD(emit.XMM0, emit.XMM1)
	a.MovqRegFromXmm(emit.RAX, emit.XMM0)
	a.DSPush(emit.RAX)
}

func genFDiv(g *Generator) {
	a := g.asm
	a.DSPop(emit.RAX) // b
	a.DSPop(emit.RBX) // a
	a.MovqXmmFromReg(emit.XMM0, emit.RBX) // a
	a.MovqXmmFromReg(emit.XMM1, emit.RAX) // b
	a.DivSD(emit.XMM0, emit.XMM1)         // a / b
	a.MovqRegFromXmm(emit.RBX, emit.XMM0)
	a.DSPush(emit.RBX)
}

// genFMod: fmod(a, b) = a - b*floor(a/b), computed entirely in XMM0/XMM1
// (ROUNDSD mode 1 = round-down/floor), matching genFMod's division,
// floor, multiply-back, subtract sequence.
func genFMod(g *Generator) {
	a := g.asm
	a.DSPop(emit.RAX) // b
	a.DSPop(emit.RBX) // a
	a.MovqXmmFromReg(emit.XMM0, emit.RBX) // a
	a.MovqXmmFromReg(emit.XMM1, emit.RAX) // b
	a.DivSD(emit.XMM0, emit.XMM1)         // a/b
	a.RoundSD(emit.XMM0, emit.XMM0, 1)    // floor(a/b)
	a.MulSD(emit.XMM0, emit.XMM1)         // b*floor(a/b)
	a.MovqRegFromXmm(emit.RCX, emit.XMM0) // intermediate
	a.MovqXmmFromReg(emit.XMM0, emit.RBX) // a again
	a.MovqXmmFromReg(emit.XMM1, emit.RCX) // b*floor(a/b)
	a.SubSD(emit.XMM0, emit.XMM1)         // a - b*floor(a/b)
	a.MovqRegFromXmm(emit.RBX, emit.XMM0)
	a.DSPush(emit.RBX)
}

func genFSqrt(g *Generator) {
	a := g.asm
	a.DSPop(emit.RAX)
	a.MovqXmmFromReg(emit.XMM0, emit.RAX)
	a.SqrtSD(emit.XMM0, emit.XMM0)
	a.MovqRegFromXmm(emit.RAX, emit.XMM0)
	a.DSPush(emit.RAX)
}

func genFMax(g *Generator) {
	a := g.asm
	a.DSPop(emit.RAX)
	a.DSPop(emit.RBX)
	a.MovqXmmFromReg(emit.XMM0, emit.RAX)
	a.MovqXmmFromReg(emit.XMM1, emit.RBX)
	a.MaxSD(emit.XMM0, emit.XMM1)
	a.MovqRegFromXmm(emit.RAX, emit.XMM0)
	a.DSPush(emit.RAX)
}

func genFMin(g *Generator) {
	a := g.asm
	a.DSPop(emit.RAX)
	a.DSPop(emit.RBX)
	a.MovqXmmFromReg(emit.XMM0, emit.RAX)
	a.MovqXmmFromReg(emit.XMM1, emit.RBX)
	a.MinSD(emit.XMM0, emit.XMM1)
	a.MovqRegFromXmm(emit.RAX, emit.XMM0)
	a.DSPush(emit.RAX)
}

// genFAbs clears the sign bit directly on the integer bit pattern, no
// XMM round-trip needed (genFAbs does the same: AND with 0x7FFF...).
func genFAbs(g *Generator) {
	a := g.asm
	a.DSPop(emit.RAX)
	a.MovImm64ToReg(emit.RBX, absMaskBits)
	a.AndRegReg(emit.RAX, emit.RBX)
	a.DSPush(emit.RAX)
}

// genFLess: (a b -- a<b), matching genFLess's pop order (secondVal=top=b
// popped first, firstVal=a popped second) then comisd firstVal,secondVal.
func genFLess(g *Generator) {
	a := g.asm
	a.DSPop(emit.RBX) // b (top)
	a.DSPop(emit.RAX) // a
	a.MovqXmmFromReg(emit.XMM0, emit.RAX)
	a.MovqXmmFromReg(emit.XMM1, emit.RBX)
	a.ComiSD(emit.XMM0, emit.XMM1)
	a.SetccToReg(emit.CondBelow, emit.RAX)
	a.BoolFromSetcc(emit.RAX)
	a.DSPush(emit.RAX)
}

// genFGreater: (a b -- a>b), computed as b<a (genFGreater pops firstVal=
// top=b first, secondVal=a second, then comisd firstVal(b),secondVal(a)).
func genFGreater(g *Generator) {
	a := g.asm
	a.DSPop(emit.RAX) // b (top)
	a.DSPop(emit.RBX) // a
	a.MovqXmmFromReg(emit.XMM0, emit.RAX) // b
	a.MovqXmmFromReg(emit.XMM1, emit.RBX) // a
	a.ComiSD(emit.XMM0, emit.XMM1)        // b vs a
	a.SetccToReg(emit.CondBelow, emit.RAX)
	a.BoolFromSetcc(emit.RAX)
	a.DSPush(emit.RAX)
}

// genFEqual: (a b -- a~=b) epsilon-tolerant equality, |a-b| < epsilon
// (spec 4.5; genFApproxEquals).
func genFEqual(g *Generator) {
	a := g.asm
	a.DSPop(emit.RAX) // b (top)
	a.DSPop(emit.RBX) // a
	a.MovqXmmFromReg(emit.XMM0, emit.RBX) // a
	a.MovqXmmFromReg(emit.XMM1, emit.RAX) // b
	a.SubSD(emit.XMM0, emit.XMM1)         // a - b
	a.MovImm64ToReg(emit.RCX, absMaskBits)
	a.MovqXmmFromReg(emit.XMM2, emit.RCX)
	a.AndPD(emit.XMM0, emit.XMM2) // fabs(a-b)
	a.MovImm64ToReg(emit.RCX, epsilonBits)
	a.MovqXmmFromReg(emit.XMM2, emit.RCX)
	a.ComiSD(emit.XMM0, emit.XMM2) // fabs(a-b) vs epsilon
	a.SetccToReg(emit.CondBelow, emit.RAX)
	a.BoolFromSetcc(emit.RAX)
	a.DSPush(emit.RAX)
}

// genFNotEqual: (a b -- a!~=b), fabs(a-b) >= epsilon (genFApproxNotEquals).
func genFNotEqual(g *Generator) {
	a := g.asm
	a.DSPop(emit.RAX) // b (top)
	a.DSPop(emit.RBX) // a
	a.MovqXmmFromReg(emit.XMM0, emit.RBX) // a
	a.MovqXmmFromReg(emit.XMM1, emit.RAX) // b
	a.SubSD(emit.XMM0, emit.XMM1)         // a - b
	a.MovImm64ToReg(emit.RCX, absMaskBits)
	a.MovqXmmFromReg(emit.XMM2, emit.RCX)
	a.AndPD(emit.XMM0, emit.XMM2) // fabs(a-b)
	a.MovImm64ToReg(emit.RCX, epsilonBits)
	a.MovqXmmFromReg(emit.XMM1, emit.RCX)
	a.ComiSD(emit.XMM1, emit.XMM0) // epsilon vs fabs(a-b)
	a.SetccToReg(emit.CondBelowEqual, emit.RAX)
	a.BoolFromSetcc(emit.RAX)
	a.DSPush(emit.RAX)
}

// genIntToFloat: FLOAT (n -- f), CVTSI2SD.
func genIntToFloat(g *Generator) {
	a := g.asm
	a.DSPop(emit.RAX)
	a.Cvtsi2sd(emit.XMM0, emit.RAX)
	a.MovqRegFromXmm(emit.RAX, emit.XMM0)
	a.DSPush(emit.RAX)
}

// genFloatToInt: INTEGER (f -- n), CVTTSD2SI (truncating).
func genFloatToInt(g *Generator) {
	a := g.asm
	a.DSPop(emit.RAX)
	a.MovqXmmFromReg(emit.XMM0, emit.RAX)
	a.Cvttsd2si(emit.RAX, emit.XMM0)
	a.DSPush(emit.RAX)
}
