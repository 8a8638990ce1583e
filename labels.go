package main

import "github.com/xyproto/forthjit/internal/emit"

// LoopType tags which control-flow construct a LoopLabel belongs to,
// mirroring original_source/jitLabels.h's LoopType enum.
type LoopType int

const (
	LoopIfThenElse LoopType = iota
	LoopFunctionEntryExit
	LoopDoLoop
	LoopBeginAgainRepeatUntil
	LoopCase
)

// IfThenElseLabel holds the labels live during compilation of an
// IF...ELSE...THEN construct. LEAVE never targets an IF frame (spec 4.5:
// LEAVE only searches for the nearest DO or BEGIN frame), so unlike
// DoLoopLabel/BeginAgainRepeatUntilLabel there is no LeaveLabel here.
type IfThenElseLabel struct {
	IfLabel, ElseLabel emit.Label
	HasElse            bool
}

// FunctionEntryExitLabel brackets a colon-definition's prologue/epilogue:
// RECURSE calls EntryLabel and the epilogue binds ExitLabel (EXIT emits
// its own RET rather than jumping here).
type FunctionEntryExitLabel struct {
	EntryLabel, ExitLabel emit.Label
}

// DoLoopLabel holds the labels for one DO...LOOP nesting level.
type DoLoopLabel struct {
	DoLabel, LoopLabel_, LeaveLabel emit.Label
	HasLeave                        bool
}

// BeginAgainRepeatUntilLabel covers all four BEGIN-family loop shapes;
// unused labels within a given shape are simply never bound.
type BeginAgainRepeatUntilLabel struct {
	BeginLabel, AgainLabel, RepeatLabel, UntilLabel, WhileLabel, LeaveLabel emit.Label
}

// CaseLabel holds the labels for one CASE...ENDCASE construct: one
// endcase label plus one endof label per OF clause seen so far.
type CaseLabel struct {
	EndCaseLabel emit.Label
	EndOfLabels  []emit.Label
	OfCount      int
}

// LoopLabel is the tagged union pushed onto the compile-time control-flow
// stack, standing in for original_source's std::variant<...> LabelVariant
// -- Go has no built-in tagged union, so the fields simply sit side by
// side and Type says which one is live, checked by gen_control.go's
// popDoLoop/beginTop/caseTop helpers and the Type tests in genThen/
// genElse/Epilogue.
type LoopLabel struct {
	Type LoopType

	IfThenElse IfThenElseLabel
	FuncEntry  FunctionEntryExitLabel
	DoLoop     DoLoopLabel
	Begin      BeginAgainRepeatUntilLabel
	Case       CaseLabel
}

// LabelStack is the compile-time-only LIFO of open control structures,
// grounded on jitLabels.h's global loopStack. doLoopDepth counts open
// DO...LOOP nestings for I/J/K/EXIT to consult (see gen_control.go), exactly
// mirroring the original's global counter.
type LabelStack struct {
	stack       []LoopLabel
	doLoopDepth int
}

func NewLabelStack() *LabelStack { return &LabelStack{} }

func (s *LabelStack) Push(l LoopLabel) { s.stack = append(s.stack, l) }

func (s *LabelStack) Pop() (LoopLabel, bool) {
	if len(s.stack) == 0 {
		return LoopLabel{}, false
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return top, true
}

// Top returns a pointer to the innermost open construct so its mutable
// fields (e.g. an IF's ElseLabel, or a CASE's EndOfLabels) can be updated
// in place without a pop/push round trip.
func (s *LabelStack) Top() *LoopLabel {
	if len(s.stack) == 0 {
		return nil
	}
	return &s.stack[len(s.stack)-1]
}

func (s *LabelStack) Empty() bool { return len(s.stack) == 0 }

func (s *LabelStack) EnterDoLoop() { s.doLoopDepth++ }
func (s *LabelStack) ExitDoLoop()  { s.doLoopDepth-- }
func (s *LabelStack) DoLoopDepth() int { return s.doLoopDepth }
