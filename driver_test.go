package main

import "testing"

// u64 converts a negative int64 to its uint64 two's-complement bit
// pattern; needed because Go disallows converting a negative constant
// directly to an unsigned type.
func u64(n int64) uint64 { return uint64(n) }

// evalTop runs source through a fresh Driver and returns the D stack's
// top cell, failing the test on any evaluation error.
func evalTop(t *testing.T, source string) uint64 {
	t.Helper()
	d := NewDriver(Config{StackCells: 256})
	if err := d.Eval(source); err != nil {
		t.Fatalf("Eval(%q): %v", source, err)
	}
	v, err := d.stacks.DataCellAt(0)
	if err != nil {
		t.Fatalf("Eval(%q) left no value on the data stack: %v", source, err)
	}
	return v
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   uint64
	}{
		{"add", "16 16 +", 32},
		{"sub", "10 3 -", 7},
		{"mul", "6 7 *", 42},
		{"div", "20 4 /", 5},
		{"mod", "20 3 mod", 2},
		{"negate", "5 negate", u64(-5)},
		{"abs_negative", "-5 abs", 5},
		{"abs_positive", "5 abs", 5},
		{"one_plus", "5 1+", 6},
		{"one_minus", "5 1-", 4},
		{"two_star", "5 2*", 10},
		{"two_slash", "10 2/", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evalTop(t, tt.source); got != tt.want {
				t.Errorf("%s: got %d, want %d", tt.source, got, tt.want)
			}
		})
	}
}

func TestComparisons(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"less_true", "3 5 <", true},
		{"less_false", "5 3 <", false},
		{"greater_true", "5 3 >", true},
		{"greater_false", "3 5 >", false},
		{"equal_true", "4 4 =", true},
		{"equal_false", "4 5 =", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evalTop(t, tt.source); got != boolCell(tt.want) {
				t.Errorf("%s: got %d, want %v as a Forth boolean", tt.source, got, tt.want)
			}
		})
	}
}

func TestStackWords(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   uint64
	}{
		{"dup", "5 dup +", 10},
		{"drop", "5 6 drop", 5},
		{"swap", "1 2 swap -", 1},
		{"over", "1 2 over + +", 4},
		{"rot", "1 2 3 rot", 1},
		{"pick_zero_is_dup", "5 0 pick", 5},
		{"pick_one_is_over", "1 2 1 pick", 1},
		{"pick_two", "7 8 9 2 pick", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evalTop(t, tt.source); got != tt.want {
				t.Errorf("%s: got %d, want %d", tt.source, got, tt.want)
			}
		})
	}
}

func TestControlFlow(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   uint64
	}{
		{
			"if_then_true",
			": f dup 0 > if 1+ then ; 5 f",
			6,
		},
		{
			"if_else_then_false",
			": f dup 0 > if 1+ else 1- then ; -5 f",
			u64(-6),
		},
		{
			"factorial_recurse",
			": fact dup 2 < if drop 1 exit then dup 1- recurse * ; 5 fact",
			120,
		},
		{
			"do_loop_sum",
			": doloop 0 11 1 do i + loop ; doloop",
			55,
		},
		{
			"case_match",
			": tc case 1 of 10 endof 2 of 20 endof 3 of 30 endof default 40 endcase ; 2 tc",
			20,
		},
		{
			"case_default",
			": tc2 case 1 of 10 endof 2 of 20 endof 3 of 30 endof default 40 endcase ; 99 tc2",
			40,
		},
		{
			"begin_until_countdown",
			": countdown begin 1- dup 0 = until ; 5 countdown",
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evalTop(t, tt.source); got != tt.want {
				t.Errorf("%s: got %d, want %d", tt.source, got, tt.want)
			}
		})
	}
}

func TestDefiningWords(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   uint64
	}{
		{"variable_fetch_store", "variable v 110 v ! v @", 110},
		{"constant", "42 constant answer answer", 42},
		{"to_variable", "variable v 110 v ! 120 to v v @", 120},
		{"value_to", "10 value n 20 to n n", 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evalTop(t, tt.source); got != tt.want {
				t.Errorf("%s: got %d, want %d", tt.source, got, tt.want)
			}
		})
	}
}

func TestLocals(t *testing.T) {
	got := evalTop(t, ": t { a b | c -- d } a b + to c c 2* to d ; 10 6 t")
	if want := uint64(32); got != want {
		t.Errorf("locals test: got %d, want %d", got, want)
	}
}

func TestFloatWords(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   float64
	}{
		{"f_add", "2.0 2.0 f+", 4.0},
		{"f_sub", "5.0 2.0 f-", 3.0},
		{"f_abs", "-3.0 fabs", 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := float64FromBits(evalTop(t, tt.source))
			if got != tt.want {
				t.Errorf("%s: got %v, want %v", tt.source, got, tt.want)
			}
		})
	}
}

func TestUnknownWordErrors(t *testing.T) {
	d := NewDriver(Config{StackCells: 256})
	if err := d.Eval("nosuchword"); err == nil {
		t.Fatal("Eval of an unknown word: want error, got nil")
	}
}

func TestStackUnderflowErrors(t *testing.T) {
	d := NewDriver(Config{StackCells: 256})
	if err := d.Eval("+"); err == nil {
		t.Fatal("Eval of + with an empty data stack: want error, got nil")
	}
}

func TestRedefinitionErrors(t *testing.T) {
	d := NewDriver(Config{StackCells: 256})
	if err := d.Eval(": dup 1 ;"); err == nil {
		t.Fatal("redefining an existing word with : NAME ...: want error, got nil")
	}
}

// TestEvalResetsStateAfterError checks spec 7's propagation rule: a
// failed Eval call leaves the stacks empty rather than half-populated.
func TestEvalResetsStateAfterError(t *testing.T) {
	d := NewDriver(Config{StackCells: 256})
	_ = d.Eval("1 2 3 nosuchword")
	if depth := d.stacks.DataDepth(); depth != 0 {
		t.Fatalf("data stack depth after failed Eval = %d, want 0", depth)
	}
}

func TestForgetRemovesWord(t *testing.T) {
	d := NewDriver(Config{StackCells: 256})
	if err := d.Eval(": double dup + ;"); err != nil {
		t.Fatal(err)
	}
	if err := d.dict.Forget("double"); err != nil {
		t.Fatal(err)
	}
	if err := d.Eval("5 double"); err == nil {
		t.Fatal("calling a forgotten word: want error, got nil")
	}
}
