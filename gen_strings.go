package main

// String-table operations exposed as Forth words operating on the S
// stack (spec 4.1's fourth register-pinned stack, confirmed by
// original_source/StackManager.h's pushSS/popSS to carry string-table
// indices, distinct in purpose from the locals frame despite both being
// "just another stack of uint64s"). Grounded on
// original_source/JitGenerator.h's prim_string_cat/prim_str_pos/
// prim_string_field/prim_count_fields, which the original calls directly
// from JIT-emitted code as native C++ functions -- a call shape this port
// cannot reproduce (no native-code-to-Go callback bridge exists, see
// DESIGN.md's Open Question decision 4), so each is reimplemented here as a
// plain Go Interp word that pops/pushes through Stacks.PushString/
// PopString instead of through emitted machine code.

// mustPopString pops one S cell or raises a recoverable ErrStackUnderflow.
func mustPopString(d *Driver, what string) uint64 {
	v, err := d.stacks.PopString()
	if err != nil {
		compilerError(ErrStackUnderflow, "%s", what)
	}
	return v
}

func mustPushString(d *Driver, v uint64, what string) {
	if err := d.stacks.PushString(v); err != nil {
		compilerError(ErrStackOverflow, "%s", what)
	}
}

// stringConcat implements S+ ( s1 s2 -- s3 ): pop two string indices,
// intern their concatenation, push the result and bump its refcount
// (prim_string_cat's incrementRef(s3), carried over since the result is
// now referenced from the S stack the same way a captured literal is).
func stringConcat(d *Driver) {
	s2 := mustPopString(d, "S+")
	s1 := mustPopString(d, "S+")
	s3 := d.strtab.Concat(int(s1), int(s2))
	d.strtab.IncRef(s3)
	mustPushString(d, uint64(s3), "S+")
}

// stringEqual implements S= ( s1 s2 -- ? ): pop two string indices, push
// a Forth boolean onto D (StrEqual).
func stringEqual(d *Driver) {
	s2 := mustPopString(d, "S=")
	s1 := mustPopString(d, "S=")
	mustPush(d, boolCell(d.strtab.Equal(int(s1), int(s2))))
}

// stringContains implements S-CONTAINS ( needle haystack -- ? ): pop
// haystack (the top) then needle off S, push a Forth boolean onto D
// (StrContains).
func stringContains(d *Driver) {
	haystack := mustPopString(d, "S-CONTAINS")
	needle := mustPopString(d, "S-CONTAINS")
	mustPush(d, boolCell(d.strtab.Contains(int(haystack), int(needle))))
}

// stringPosition implements S-POS ( needle haystack -- n ): pop haystack
// (the top) then needle off S, push the 0-based offset (or -1) onto D
// (prim_str_pos).
func stringPosition(d *Driver) {
	haystack := mustPopString(d, "S-POS")
	needle := mustPopString(d, "S-POS")
	mustPush(d, uint64(int64(d.strtab.Position(int(haystack), int(needle)))))
}

// stringField implements S-FIELD ( position delim src -- s ): pop src and
// delim off S, pop the field position off D, push the interned field's
// index onto S, bumping its refcount (prim_string_field).
func stringField(d *Driver) {
	src := mustPopString(d, "S-FIELD")
	delim := mustPopString(d, "S-FIELD")
	position := mustPop(d, "S-FIELD")
	result := d.strtab.Split(int(src), int(delim), int(position))
	d.strtab.IncRef(result)
	mustPushString(d, uint64(int64(result)), "S-FIELD")
}

// stringCountFields implements S-FIELDS ( delim src -- n ): pop src and
// delim off S, push the field count onto D (prim_count_fields). The
// original's CountFields(src, delim) ignores the delimiter argument and
// splits on whitespace; this port's StringTable.CountFields does the
// same (strtab.go), so delim is popped for stack-effect parity but
// unused.
func stringCountFields(d *Driver) {
	src := mustPopString(d, "S-FIELDS")
	_ = mustPopString(d, "S-FIELDS") // delim, unused (see strtab.go CountFields)
	mustPush(d, uint64(d.strtab.CountFields(int(src))))
}

// boolCell converts a Go bool to the Forth boolean convention: -1 (all
// bits set) for true, 0 for false.
func boolCell(b bool) uint64 {
	if b {
		return ^uint64(0)
	}
	return 0
}
