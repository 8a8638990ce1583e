package main

// registerMem installs spec 6's Memory row.
func registerMem(d *Driver) {
	add := func(name string, gen generatorFunc) {
		w := d.gen.CompilePrimitive(name, gen)
		d.dict.Add(w)
	}
	add("@", genFetch)
	add("!", genStore)
}
