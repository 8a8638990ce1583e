package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/xyproto/forthjit/internal/emit"
)

// versionString mirrors the teacher's versionString const (main.go), one
// line printed by -version and nothing else.
const versionString = "forthjit 0.1.0"

// main wires spec 6's CLI surface: flag-driven startup knobs over the
// same defaults LoadConfig reads from the environment, then a straight
// call into the REPL. Grounded on the teacher's main.go flag block
// (flag.String/flag.Bool per option, flag.Parse, -version short-circuits
// before anything else runs) narrowed from the teacher's dozen
// compiler flags to the four spec 4 names.
func main() {
	cfg := LoadConfig()

	startFlag := flag.String("start", cfg.StartFile, "path to a Forth file loaded once before the first prompt")
	loggingFlag := flag.Bool("logging", false, "trace emitted bytes and compile errors to stderr")
	loopcheckFlag := flag.Bool("loopcheck", cfg.LoopCheck, "initial *loopcheck setting (stored only; compilation does not consult it)")
	versionFlag := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println(versionString)
		os.Exit(0)
	}

	cfg.StartFile = *startFlag
	cfg.LoopCheck = *loopcheckFlag
	VerboseMode = *loggingFlag
	emit.VerboseMode = *loggingFlag

	d := NewDriver(cfg)
	runREPL(d, cfg)
}
