package emit

// PushReg: PUSH r64 (opcode 0x50+r), used for the native call stack only
// (saving/restoring callee-saved registers at the REPL boundary) -- NOT
// the Forth D/R/L/S stacks, which are pinned to r15/r14/r13/r12 and
// manipulated with plain loads/stores via DS/RS/LS/SSPush/Pop below.
func (a *Assembler) PushReg(r Reg) {
	if r.needsREX() {
		a.Write(0x41)
	}
	a.Write(0x50 + (r.Encoding & 7))
}

func (a *Assembler) PopReg(r Reg) {
	if r.needsREX() {
		a.Write(0x41)
	}
	a.Write(0x58 + (r.Encoding & 7))
}

// DSPush decrements the D-stack top (r15) by 8 and stores src there:
// sub r15,8 ; mov [r15], src. Matches spec 4.1: "push(v) stores v at
// top-8, decrements top."
func (a *Assembler) DSPush(src Reg) {
	a.SubRegImm32(DataTop, 8)
	a.MovRegToMem(DataTop, 0, src)
}

// DSPop loads [r15] into dst and increments r15 by 8.
func (a *Assembler) DSPop(dst Reg) {
	a.MovMemToReg(dst, DataTop, 0)
	a.AddRegImm32(DataTop, 8)
}

func (a *Assembler) RSPush(src Reg) {
	a.SubRegImm32(ReturnTop, 8)
	a.MovRegToMem(ReturnTop, 0, src)
}

func (a *Assembler) RSPop(dst Reg) {
	a.MovMemToReg(dst, ReturnTop, 0)
	a.AddRegImm32(ReturnTop, 8)
}

func (a *Assembler) SSPush(src Reg) {
	a.SubRegImm32(StringTop, 8)
	a.MovRegToMem(StringTop, 0, src)
}

func (a *Assembler) SSPop(dst Reg) {
	a.MovMemToReg(dst, StringTop, 0)
	a.AddRegImm32(StringTop, 8)
}
