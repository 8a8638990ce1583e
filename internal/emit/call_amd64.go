//go:build amd64

package emit

import "unsafe"

//go:noescape
func callEntry(fn uintptr, frame unsafe.Pointer)

// Call invokes a finalized word's compiled entry point, loading the
// pinned stack-top registers from frame (see the main package's
// runtimeFrame, stack.go) beforehand and writing them back afterward -- see
// call_amd64.s for why that load/store lives in the trampoline rather
// than in each word's own prologue/epilogue.
func (p *Page) Call(frame unsafe.Pointer) {
	callEntry(p.Addr(), frame)
}
