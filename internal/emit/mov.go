package emit

// MOV r64, r64
func (a *Assembler) MovRegToReg(dst, src Reg) {
	a.Write(rex(true, src, Reg{}, dst))
	a.Write(0x89) // MOV r/m64, r64
	a.Write(modrmReg(src, dst))
}

// MOV r64, imm64 (opcode 0xB8+r, REX.W, 8-byte immediate)
func (a *Assembler) MovImm64ToReg(dst Reg, imm uint64) {
	a.Write(rex(true, Reg{}, Reg{}, dst))
	a.Write(0xB8 + (dst.Encoding & 7))
	a.WriteImm64(imm)
}

// MOV r64, [base+disp]
func (a *Assembler) MovMemToReg(dst, base Reg, disp int32) {
	a.emitModrmMem(rex(true, dst, Reg{}, base), []byte{0x8B}, dst, base, disp)
}

// MOV [base+disp], r64
func (a *Assembler) MovRegToMem(base Reg, disp int32, src Reg) {
	a.emitModrmMem(rex(true, src, Reg{}, base), []byte{0x89}, src, base, disp)
}

// MOV dword [base+disp], imm32
func (a *Assembler) MovImm32ToMem(base Reg, disp int32, imm uint32) {
	modrm, sib, dispBytes := modrmMem(Reg{}, base, disp)
	a.Write(rex(true, Reg{}, Reg{}, base))
	a.Write(0xC7)
	a.Write(modrm)
	for _, b := range sib {
		a.Write(b)
	}
	for _, b := range dispBytes {
		a.Write(b)
	}
	a.WriteImm32(imm)
}

// XOR r64, r64 -- used to zero a register cheaply (e.g. clearing a local).
func (a *Assembler) XorRegReg(dst, src Reg) {
	a.Write(rex(true, src, Reg{}, dst))
	a.Write(0x31)
	a.Write(modrmReg(src, dst))
}
