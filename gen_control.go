package main

import "github.com/xyproto/forthjit/internal/emit"

// Compile-only immediate control-flow words. Each is invoked from the
// compile path (driver.go) with the live Generator; none have a
// meaningful interpret-time or standalone-compiled form, since they only
// make sense while a colon-definition is under construction (spec 4.5:
// "all are compile-only immediate words").

// genIf: pop cond from D, JZ to the IF label (genIf).
func (g *Generator) genIf() {
	lbl := IfThenElseLabel{
		IfLabel:   g.asm.NewLabel(),
		ElseLabel: g.asm.NewLabel(),
	}
	g.labels.Push(LoopLabel{Type: LoopIfThenElse, IfThenElse: lbl})

	g.asm.DSPop(emit.RAX)
	g.asm.TestRegReg(emit.RAX, emit.RAX)
	g.asm.JZ(lbl.IfLabel)
}

// genElse: jump past the else block, bind the if-label as the else entry.
func (g *Generator) genElse() {
	top := g.labels.Top()
	if top == nil || top.Type != LoopIfThenElse {
		compilerError(ErrControlFlowMismatch, "ELSE without matching IF")
	}
	g.asm.JumpUnconditional(top.IfThenElse.ElseLabel)
	g.asm.Bind(top.IfThenElse.IfLabel)
	top.IfThenElse.HasElse = true
}

// genThen: bind whichever tail label is live (else, or if with no else)
// and close the frame.
func (g *Generator) genThen() {
	top, ok := g.labels.Pop()
	if !ok || top.Type != LoopIfThenElse {
		compilerError(ErrControlFlowMismatch, "THEN without matching IF")
	}
	if top.IfThenElse.HasElse {
		g.asm.Bind(top.IfThenElse.ElseLabel)
	} else {
		g.asm.Bind(top.IfThenElse.IfLabel)
	}
}

// genBegin: bind the begin label and push a BEGIN_AGAIN_REPEAT_UNTIL frame.
func (g *Generator) genBegin() {
	lbl := BeginAgainRepeatUntilLabel{
		BeginLabel:  g.asm.NewLabel(),
		AgainLabel:  g.asm.NewLabel(),
		RepeatLabel: g.asm.NewLabel(),
		UntilLabel:  g.asm.NewLabel(),
		WhileLabel:  g.asm.NewLabel(),
		LeaveLabel:  g.asm.NewLabel(),
	}
	g.asm.Bind(lbl.BeginLabel)
	g.labels.Push(LoopLabel{Type: LoopBeginAgainRepeatUntil, Begin: lbl})
}

func (g *Generator) beginTop(who string) *BeginAgainRepeatUntilLabel {
	top := g.labels.Top()
	if top == nil || top.Type != LoopBeginAgainRepeatUntil {
		compilerError(ErrControlFlowMismatch, "%s without matching BEGIN", who)
	}
	return &top.Begin
}

// genAgain: JMP begin, bind again/leave/while tail labels (genAgain).
func (g *Generator) genAgain() {
	b := *g.beginTop("AGAIN")
	g.labels.Pop()
	g.asm.JumpUnconditional(b.BeginLabel)
	g.asm.Bind(b.AgainLabel)
	g.asm.Bind(b.LeaveLabel)
	g.asm.Bind(b.WhileLabel)
}

// genUntil: pop cond, JZ begin, bind until/leave (genUntil).
func (g *Generator) genUntil() {
	b := *g.beginTop("UNTIL")
	g.asm.DSPop(emit.RAX)
	g.asm.TestRegReg(emit.RAX, emit.RAX)
	g.asm.JZ(b.BeginLabel)
	g.asm.Bind(b.UntilLabel)
	g.asm.Bind(b.LeaveLabel)
	g.labels.Pop()
}

// genWhile: pop cond, JZ while_tail; frame stays open for REPEAT.
func (g *Generator) genWhile() {
	b := g.beginTop("WHILE")
	g.asm.DSPop(emit.RAX)
	g.asm.TestRegReg(emit.RAX, emit.RAX)
	g.asm.JZ(b.WhileLabel)
}

// genRepeat: JMP begin, bind repeat/leave/while tail labels (genRepeat).
func (g *Generator) genRepeat() {
	b := *g.beginTop("REPEAT")
	g.labels.Pop()
	g.asm.JumpUnconditional(b.BeginLabel)
	g.asm.Bind(b.RepeatLabel)
	g.asm.Bind(b.LeaveLabel)
	g.asm.Bind(b.WhileLabel)
}

// genDo: pop index, limit from D, push limit, index to R in that order
// (so index sits above limit, matching J's offset-24/K's offset-40
// reading of outer frames), bind do, bump doLoopDepth (genDo).
func (g *Generator) genDo() {
	g.asm.DSPop(emit.RDX) // index
	g.asm.DSPop(emit.RCX) // limit
	g.asm.RSPush(emit.RCX)
	g.asm.RSPush(emit.RDX)
	g.labels.EnterDoLoop()

	lbl := DoLoopLabel{DoLabel: g.asm.NewLabel(), LoopLabel_: g.asm.NewLabel(), LeaveLabel: g.asm.NewLabel()}
	g.asm.Bind(lbl.DoLabel)
	g.labels.Push(LoopLabel{Type: LoopDoLoop, DoLoop: lbl})
}

func (g *Generator) popDoLoop(who string) DoLoopLabel {
	top, ok := g.labels.Pop()
	if !ok || top.Type != LoopDoLoop {
		compilerError(ErrControlFlowMismatch, "%s without matching DO", who)
	}
	return top.DoLoop
}

// genLoop: increment index, compare to limit, JL do; bind loop/leave,
// drop the frame, decrement doLoopDepth (genLoop).
func (g *Generator) genLoop() {
	lbl := g.popDoLoop("LOOP")
	g.asm.RSPop(emit.RCX) // index
	g.asm.RSPop(emit.RDX) // limit
	g.asm.RSPush(emit.RDX)
	g.asm.AddRegImm32(emit.RCX, 1)
	g.asm.RSPush(emit.RCX)
	g.asm.CmpRegToReg(emit.RCX, emit.RDX)
	g.asm.JL(lbl.DoLabel)
	g.asm.Bind(lbl.LoopLabel_)
	g.asm.Bind(lbl.LeaveLabel)
	g.asm.RSPop(emit.RCX)
	g.asm.RSPop(emit.RDX)
	g.labels.ExitDoLoop()
}

// genPlusLoop: pop signed step from D, add to index, branch on step sign
// (genPlusLoop).
func (g *Generator) genPlusLoop() {
	lbl := g.popDoLoop("+LOOP")
	g.asm.RSPop(emit.RCX) // index
	g.asm.RSPop(emit.RDX) // limit
	g.asm.RSPush(emit.RDX)
	g.asm.DSPop(emit.RSI) // step
	g.asm.AddRegToReg(emit.RCX, emit.RSI)
	g.asm.RSPush(emit.RCX)

	g.asm.CmpRegImm32(emit.RSI, 0)
	positive := g.asm.NewLabel()
	loopEnd := g.asm.NewLabel()
	g.asm.JumpConditional(emit.CondGreater, positive)

	g.asm.CmpRegToReg(emit.RCX, emit.RDX)
	g.asm.JumpConditional(emit.CondGreaterEqual, lbl.DoLabel)
	g.asm.JumpUnconditional(loopEnd)

	g.asm.Bind(positive)
	g.asm.CmpRegToReg(emit.RCX, emit.RDX)
	g.asm.JL(lbl.DoLabel)

	g.asm.Bind(loopEnd)
	g.asm.Bind(lbl.LoopLabel_)
	g.asm.Bind(lbl.LeaveLabel)
	g.asm.RSPop(emit.RCX)
	g.asm.RSPop(emit.RDX)
	g.labels.ExitDoLoop()
}

// genI/genJ/genK load the index at R offset 0/24/40 onto D (spec 9: these
// offsets assume a specific DO-frame interleaving; any re-layout of genDo
// must update them in lockstep).
func (g *Generator) genI() {
	if g.labels.DoLoopDepth() < 1 {
		compilerError(ErrControlFlowMismatch, "I outside DO LOOP")
	}
	g.asm.MovMemToReg(emit.RAX, emit.ReturnTop, 0)
	g.asm.DSPush(emit.RAX)
}

func (g *Generator) genJ() {
	if g.labels.DoLoopDepth() < 2 {
		compilerError(ErrControlFlowMismatch, "J needs two nested DO LOOPs")
	}
	g.asm.MovMemToReg(emit.RAX, emit.ReturnTop, 24)
	g.asm.DSPush(emit.RAX)
}

func (g *Generator) genK() {
	if g.labels.DoLoopDepth() < 3 {
		compilerError(ErrControlFlowMismatch, "K needs three nested DO LOOPs")
	}
	g.asm.MovMemToReg(emit.RAX, emit.ReturnTop, 40)
	g.asm.DSPush(emit.RAX)
}

// genLeave searches down through the label stack for the nearest DO_LOOP
// or BEGIN_AGAIN_REPEAT_UNTIL frame and jumps to its leave label (genLeave).
func (g *Generator) genLeave() {
	for i := len(g.labels.stack) - 1; i >= 0; i-- {
		switch g.labels.stack[i].Type {
		case LoopDoLoop:
			g.labels.stack[i].DoLoop.HasLeave = true
			g.asm.JumpUnconditional(g.labels.stack[i].DoLoop.LeaveLabel)
			return
		case LoopBeginAgainRepeatUntil:
			g.asm.JumpUnconditional(g.labels.stack[i].Begin.LeaveLabel)
			return
		}
	}
	compilerError(ErrControlFlowMismatch, "LEAVE outside a loop")
}

// genExit adds 8*doLoopDepth bytes to R -- one cell per enclosing DO
// loop, while each DO frame holds two cells (limit and index), so the
// other cell of every enclosing frame stays on R -- then returns
// immediately -- it deliberately bypasses
// the normal epilogue's locals teardown, mirroring the original's genExit.
func (g *Generator) genExit() {
	drop := int32(8 * g.labels.DoLoopDepth())
	if drop != 0 {
		g.asm.AddRegImm32(emit.ReturnTop, drop)
	}
	g.asm.Ret()
}

// genRecurse calls the current word's own entry label (genRecurse).
func (g *Generator) genRecurse() {
	for i := len(g.labels.stack) - 1; i >= 0; i-- {
		if g.labels.stack[i].Type == LoopFunctionEntryExit {
			g.asm.CallRel32(g.labels.stack[i].FuncEntry.EntryLabel)
			return
		}
	}
	compilerError(ErrControlFlowMismatch, "RECURSE outside a definition")
}

// genCase pops the selector from D onto R, readable by nested OF's
// comparisons (genCase).
func (g *Generator) genCase() {
	lbl := CaseLabel{EndCaseLabel: g.asm.NewLabel(), OfCount: -1}
	g.labels.Push(LoopLabel{Type: LoopCase, Case: lbl})
	g.asm.DSPop(emit.RAX)
	g.asm.RSPush(emit.RAX)
}

func (g *Generator) caseTop(who string) *CaseLabel {
	top := g.labels.Top()
	if top == nil || top.Type != LoopCase {
		compilerError(ErrControlFlowMismatch, "%s without matching CASE", who)
	}
	return &top.Case
}

// genOf: compare selector (read from R, left in place) to the popped D
// value; JNZ to a fresh per-OF endof label (genOf).
func (g *Generator) genOf() {
	c := g.caseTop("OF")
	end := g.asm.NewLabel()
	c.OfCount++
	c.EndOfLabels = append(c.EndOfLabels, end)

	g.asm.RSPop(emit.RAX)
	g.asm.RSPush(emit.RAX)
	g.asm.DSPop(emit.RBX)
	g.asm.CmpRegToReg(emit.RBX, emit.RAX)
	g.asm.JNZ(end)
}

// genEndOf: jump to end_case, bind this OF's endof label (genEndOf).
func (g *Generator) genEndOf() {
	c := g.caseTop("ENDOF")
	g.asm.JumpUnconditional(c.EndCaseLabel)
	if len(c.EndOfLabels) > 0 {
		g.asm.Bind(c.EndOfLabels[c.OfCount])
	}
}

// genDefault is a no-op marker; DEFAULT's body runs unconditionally
// whenever control reaches it, same as the original.
func (g *Generator) genDefault() {
	g.caseTop("DEFAULT")
}

// genEndCase binds end_case and drops the selector from R (genEndCase).
func (g *Generator) genEndCase() {
	c := g.caseTop("ENDCASE")
	g.asm.Bind(c.EndCaseLabel)
	g.labels.Pop()
	g.asm.RSPop(emit.RAX)
}
