package main

import "github.com/xyproto/env/v2"

// Config holds the startup knobs read from the environment, grounded on
// the teacher's declared (if unused) github.com/xyproto/env/v2 dependency
// and on original_source/StackManager.h's compiled-in defaults, now made
// runtime-configurable.
type Config struct {
	StackCells int    // FORTHJIT_STACK_CELLS: cells per stack (data/return/locals/strpos)
	StartFile  string // FORTHJIT_START: path to a Forth file loaded before the REPL prompt
	LoopCheck  bool   // FORTHJIT_LOOPCHECK: initial *loopcheck setting; stored on the Driver, not consulted by compilation
}

// LoadConfig reads FORTHJIT_* environment variables, falling back to
// defaults drawn from the original implementation when unset.
func LoadConfig() Config {
	return Config{
		StackCells: env.Int("FORTHJIT_STACK_CELLS", 4096),
		StartFile:  env.Str("FORTHJIT_START", "start.f"),
		LoopCheck:  env.Bool("FORTHJIT_LOOPCHECK"),
	}
}
