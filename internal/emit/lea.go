package emit

// LeaRipData: LEA dst, [rip+disp32] (REX.W 8D /r with ModRM mod=00 rm=101).
// disp is resolved by the caller once the data's runtime offset from the
// current instruction is known (Finalize places data directly after the
// code in the same page). No current primitive emits it.
func (a *Assembler) LeaRipData(dst Reg, disp int32) {
	a.Write(rex(true, dst, Reg{}, Reg{}))
	a.Write(0x8D)
	a.Write(0x05 | (dst.Encoding&7)<<3)
	a.WriteImm32(uint32(disp))
}

// LeaMem: LEA dst, [base+disp] -- address arithmetic without a memory
// access. No current primitive emits it (ARRAY's indexed fetch uses
// SHL+ADD, see genArrayFetch).
func (a *Assembler) LeaMem(dst, base Reg, disp int32) {
	a.emitModrmMem(rex(true, dst, Reg{}, base), []byte{0x8D}, dst, base, disp)
}
