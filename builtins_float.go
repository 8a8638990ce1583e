package main

// registerFloat installs spec 6's Float row and the two conversion words
// (FLOAT/INTEGER), each backed by gen_float.go's generators. f. (float
// print) is deliberately absent here -- it needs to format a double as
// text, which means calling into Go's fmt package, something no
// JIT-compiled code may do (see DESIGN.md's Open Question decision 4); it is
// registered as a plain Interp word in builtins_io.go instead.
func registerFloat(d *Driver) {
	add := func(name string, gen generatorFunc) {
		w := d.gen.CompilePrimitive(name, gen)
		d.dict.Add(w)
	}

	add("f+", genFPlus)
	add("f-", genFSub)
	add("f*", genFMul)
	add("f/", genFDiv)
	add("fmod", genFMod)
	add("fsqrt", genFSqrt)
	add("fabs", genFAbs)
	add("fmax", genFMax)
	add("fmin", genFMin)
	add("f<", genFLess)
	add("f>", genFGreater)
	add("f=", genFEqual)
	add("f<>", genFNotEqual)
	add("FLOAT", genIntToFloat)
	add("INTEGER", genFloatToInt)
}
