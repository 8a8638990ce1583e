package main

// registerStack installs spec 6's Stack row, backed by gen_stack.go.
func registerStack(d *Driver) {
	add := func(name string, gen generatorFunc) {
		w := d.gen.CompilePrimitive(name, gen)
		d.dict.Add(w)
	}

	add("DUP", genDup)
	add("DROP", genDrop)
	add("SWAP", genSwap)
	add("OVER", genOver)
	add("ROT", genRot)
	add("-ROT", genMinusRot)
	add("NIP", genNip)
	add("TUCK", genTuck)
	add("PICK", genPick)
	add("DEPTH", genDepth)
	add(">R", genToR)
	add("R>", genRFrom)
	add("R@", genRFetch)
	add("RP@", genRPFetch)
	add("RP!", genRPStore)
	add("SP", genSPFetch)
	add("SP@", genSPFetch)
	add("SP!", genSPStore)
}
