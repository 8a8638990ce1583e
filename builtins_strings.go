package main

// registerStrings installs the string-table operations (gen_strings.go)
// as Go-side Interp words, supplementing spec 6's vocabulary from
// original_source/JitGenerator.h's prim_string_cat/prim_str_pos/
// prim_string_field/prim_count_fields -- present in the original but
// dropped by the distillation (see DESIGN.md's notes on the string words).
func registerStrings(d *Driver) {
	interp := func(name string, fn func(d *Driver)) {
		w := &Word{Name: name, State: StateInterpretOnly}
		w.Interp = fn
		d.dict.Add(w)
	}

	interp("S+", stringConcat)
	interp("S=", stringEqual)
	interp("S-CONTAINS", stringContains)
	interp("S-POS", stringPosition)
	interp("S-FIELD", stringField)
	interp("S-FIELDS", stringCountFields)
}
