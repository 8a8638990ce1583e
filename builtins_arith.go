package main

import "github.com/xyproto/forthjit/internal/emit"

// registerArith installs every integer arithmetic and comparison word
// from spec 6's vocabulary table, each via Generator.CompilePrimitive so
// it carries both an inline generator and a standalone callable form
// (gen.go's CompilePrimitive doc comment explains why one emission
// suffices for both).
func registerArith(d *Driver) {
	add := func(name string, gen generatorFunc) {
		w := d.gen.CompilePrimitive(name, gen)
		d.dict.Add(w)
	}

	add("+", genAdd)
	add("-", genSub)
	add("*", genMul)
	add("/", genDiv)
	add("MOD", genMod)
	add("NEGATE", genNegate)
	add("INVERT", genInvert)
	add("ABS", genAbs)
	add("MIN", genMin)
	add("MAX", genMax)
	add("WITHIN", genWithin)
	add("sqrt", genSqrt)
	add("gcd", genGcd)
	add("*/MOD", genStarSlashMod)

	add("1+", genAddImm(1))
	add("2+", genAddImm(2))
	add("16+", genAddImm(16))
	add("1-", genSubImm(1))
	add("2-", genSubImm(2))
	add("16-", genSubImm(16))

	add("2*", genShl(1))
	add("4*", genShl(2))
	add("8*", genShl(3))
	add("16*", genShl(4))
	add("10*", genTimes10)
	add("2/", genShr(1))
	add("4/", genShr(2))
	add("8/", genShr(3))

	add("=", genCompare(emit.CondEqual))
	add("<", genCompare(emit.CondLess))
	add(">", genCompare(emit.CondGreater))
	add("0=", genCompareZero(emit.CondEqual))
	add("0<", genCompareZero(emit.CondLess))
	add("0>", genCompareZero(emit.CondGreater))
	add("NOT", genNot)
	add("AND", genAnd)
	add("OR", genOr)
	add("XOR", genXor)
}
