// Package emit is a thin facade over x86-64 instruction encoding: labels,
// byte-level ALU/control/SSE emission, and finalizing
// a code buffer into executable memory. It plays the role asmjit plays in
// the C++ original this module was ported from.
package emit

// Reg is a general-purpose or XMM register operand.
type Reg struct {
	Name     string
	Encoding uint8 // 0-15, low 3 bits go in ModRM/opcode, bit 3 drives REX.B/R/X
	Size     int   // 8, 32, 64 for GP; 128 for XMM
	isXMM    bool
}

func (r Reg) needsREX() bool { return r.Encoding >= 8 }

// GP registers, 64-bit. Encodings match the x86-64 ISA (rax=0 ... r15=15).
var (
	RAX = Reg{"rax", 0, 64, false}
	RCX = Reg{"rcx", 1, 64, false}
	RDX = Reg{"rdx", 2, 64, false}
	RBX = Reg{"rbx", 3, 64, false}
	RSP = Reg{"rsp", 4, 64, false}
	RBP = Reg{"rbp", 5, 64, false}
	RSI = Reg{"rsi", 6, 64, false}
	RDI = Reg{"rdi", 7, 64, false}
	R8  = Reg{"r8", 8, 64, false}
	R9  = Reg{"r9", 9, 64, false}
	R10 = Reg{"r10", 10, 64, false}
	R11 = Reg{"r11", 11, 64, false}
	R12 = Reg{"r12", 12, 64, false}
	R13 = Reg{"r13", 13, 64, false}
	R14 = Reg{"r14", 14, 64, false}
	R15 = Reg{"r15", 15, 64, false}
)

// EAX etc: 32-bit views of the same encodings, used for zero-extending moves.
var (
	EAX = Reg{"eax", 0, 32, false}
	ECX = Reg{"ecx", 1, 32, false}
	EDX = Reg{"edx", 2, 32, false}
)

// Pinned stack-top registers. Grounded on the original JIT's StackManager:
// D -> r15, R -> r14, L -> r13, S -> r12. All four are callee-saved in the
// SysV ABI, so a compiled word may freely CALL other compiled words and the
// host runtime without clobbering live stack tops.
var (
	DataTop   = R15
	ReturnTop = R14
	LocalsTop = R13
	StringTop = R12
)

func xmm(n uint8) Reg { return Reg{nameXMM(n), n, 128, true} }

func nameXMM(n uint8) string {
	names := []string{
		"xmm0", "xmm1", "xmm2", "xmm3", "xmm4", "xmm5", "xmm6", "xmm7",
		"xmm8", "xmm9", "xmm10", "xmm11", "xmm12", "xmm13", "xmm14", "xmm15",
	}
	return names[n&15]
}

// XMM0..XMM2, used for the float (double) ALU ops.
var (
	XMM0 = xmm(0)
	XMM1 = xmm(1)
	XMM2 = xmm(2)
)
