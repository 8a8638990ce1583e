package emit

// rex builds a REX prefix. w selects 64-bit operand size; r/x/b extend the
// ModRM reg/index/rm fields for registers r8-r15 (encoding bit 3).
func rex(w bool, r, x, b Reg) byte {
	p := byte(0x40)
	if w {
		p |= 0x08
	}
	if r.needsREX() {
		p |= 0x04
	}
	if x.needsREX() {
		p |= 0x02
	}
	if b.needsREX() {
		p |= 0x01
	}
	return p
}

// modrmReg encodes the register-direct ModRM byte: mod=11, reg, rm.
func modrmReg(regField, rm Reg) byte {
	return 0xC0 | (regField.Encoding&7)<<3 | (rm.Encoding & 7)
}

// modrmMem encodes [base + disp8] or [base + disp32] addressing, returning
// the ModRM byte and the disp bytes to follow (plus a SIB byte when base is
// rsp/r12, whose low 3 bits alias the SIB escape).
func modrmMem(regField, base Reg, disp int32) (modrm byte, sib []byte, dispBytes []byte) {
	mod := byte(0x80) // disp32
	if disp == 0 && (base.Encoding&7) != 5 {
		mod = 0x00
	} else if disp >= -128 && disp <= 127 {
		mod = 0x40
	}
	modrm = mod | (regField.Encoding&7)<<3 | (base.Encoding & 7)
	if (base.Encoding & 7) == 4 { // rsp/r12 requires a SIB byte
		sib = []byte{0x24}
	}
	switch mod {
	case 0x00:
		if (base.Encoding & 7) == 5 { // rbp/r13 base with mod=00 needs disp32
			dispBytes = le32(disp)
		}
	case 0x40:
		dispBytes = []byte{byte(disp)}
	case 0x80:
		dispBytes = le32(disp)
	}
	return
}

func le32(v int32) []byte {
	u := uint32(v)
	return []byte{byte(u), byte(u >> 8), byte(u >> 16), byte(u >> 24)}
}

func (a *Assembler) emitModrmMem(opRex byte, opcodes []byte, regField, base Reg, disp int32) {
	modrm, sib, dispBytes := modrmMem(regField, base, disp)
	a.Write(opRex)
	for _, b := range opcodes {
		a.Write(b)
	}
	a.Write(modrm)
	for _, b := range sib {
		a.Write(b)
	}
	for _, b := range dispBytes {
		a.Write(b)
	}
}
