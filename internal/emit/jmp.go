package emit

// JumpUnconditional: JMP rel32 (opcode 0xE9).
func (a *Assembler) JumpUnconditional(l Label) {
	a.Write(0xE9)
	a.WriteRel32(l)
}

// JumpConditional: Jcc rel32 (opcode 0F 80+cc).
func (a *Assembler) JumpConditional(cond Condition, l Label) {
	a.Write(0x0F)
	a.Write(0x80 + byte(cond))
	a.WriteRel32(l)
}

// JZ / JNZ test the zero flag directly, used by IF and BEGIN..UNTIL which
// branch on a popped Forth boolean rather than a CMP result.
func (a *Assembler) JZ(l Label)  { a.JumpConditional(CondEqual, l) }
func (a *Assembler) JNZ(l Label) { a.JumpConditional(CondNotEqual, l) }
func (a *Assembler) JL(l Label)  { a.JumpConditional(CondLess, l) }
func (a *Assembler) JGE(l Label) { a.JumpConditional(CondGreaterEqual, l) }

// TestRegReg: TEST r64, r64 (opcode 0x85 /r) -- sets ZF from dst&src,
// used ahead of JZ/JNZ to test a popped cell without a destructive CMP.
func (a *Assembler) TestRegReg(a1, a2 Reg) {
	a.Write(rex(true, a2, Reg{}, a1))
	a.Write(0x85)
	a.Write(modrmReg(a2, a1))
}

func (a *Assembler) Ret() { a.Write(0xC3) }

// CallRel32: CALL rel32 (opcode 0xE8), used for CALL compiled / RECURSE.
func (a *Assembler) CallRel32(l Label) {
	a.Write(0xE8)
	a.WriteRel32(l)
}

// CallReg: CALL r/m64 (opcode 0xFF /2), used to call a dictionary entry's
// compiled function pointer loaded into a scratch register.
func (a *Assembler) CallReg(r Reg) {
	if r.needsREX() {
		a.Write(0x41)
	}
	a.Write(0xFF)
	a.Write(0xD0 | (r.Encoding & 7))
}

func (a *Assembler) Nop() { a.Write(0x90) }

// Trap emits UD2 (0F 0B), an illegal-instruction fault, used as an
// array-bounds trap where no native-code-to-Go callback exists to report
// a recoverable error (see gen_locals.go's genToArrayStore).
func (a *Assembler) Trap() {
	a.Write(0x0F)
	a.Write(0x0B)
}

// CallAbs emits a MOV scratch, imm64 / CALL scratch pair to reach another
// word's compiled function. Rel32 CALL can't be trusted here: each word's
// machine code lives on its own mmap'd page (spec 5 "Executable memory"),
// and two such pages are not guaranteed to sit within +-2GiB of each
// other. RECURSE and intra-word branches use CallRel32/JumpUnconditional
// instead, since those always target the same page.
func (a *Assembler) CallAbs(scratch Reg, target uint64) {
	a.MovImm64ToReg(scratch, target)
	a.CallReg(scratch)
}
