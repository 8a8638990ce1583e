package main

// registerBuiltins installs the entire built-in vocabulary (spec 4's
// "Built-in loader": "at startup, registers every primitive"). Order
// matters only in that defining words must exist before any start.f or
// REPL input references them; the groups themselves are independent.
func registerBuiltins(d *Driver) {
	registerArith(d)
	registerFloat(d)
	registerStack(d)
	registerMem(d)
	registerControl(d)
	registerDefining(d)
	registerStrings(d)
	registerIO(d)
	registerMeta(d)
}
