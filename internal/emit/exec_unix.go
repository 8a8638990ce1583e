//go:build linux || darwin

package emit

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

func unsafePointer(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}

// Page is one word's installed native code: an mmap'd region holding its
// machine code (and any embedded float-literal data), page-aligned so it
// can be independently munmap'd when the owning dictionary entry is
// forgotten. Grounded on the teacher's HotReloadManager/CodePage
// (hotreload_unix.go), adapted from hot-reload bookkeeping to per-word
// JIT lifetime tracking: one page per finalized word instead of one per
// hot-swapped function.
type Page struct {
	addr []byte // mmap'd region, read+execute once finalized, len == allocated size
	used int     // bytes actually written
}

// Addr returns the callable entry address: the start of the page, since a
// word's code always begins at offset 0 (spec 4.5 prologue).
func (p *Page) Addr() uintptr {
	if len(p.addr) == 0 {
		return 0
	}
	return uintptr(unsafePointer(p.addr))
}

// Finalize maps a fresh read+write page sized to hold code followed
// immediately by data (no alignment padding between them), copies both
// in, then flips the page to read+execute before returning it, so the
// page is never writable and executable at once (W^X) and no function
// pointer into it is surfaced while it is still writable.
func Finalize(code, data []byte) (*Page, error) {
	total := len(code) + len(data)
	pageSize := unix.Getpagesize()
	size := ((total + pageSize - 1) / pageSize) * pageSize
	if size == 0 {
		size = pageSize
	}
	mem, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("emit: mmap executable page: %w", err)
	}
	copy(mem, code)
	copy(mem[len(code):], data)
	if err := unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		unix.Munmap(mem)
		return nil, fmt.Errorf("emit: mprotect executable page: %w", err)
	}
	return &Page{addr: mem, used: total}, nil
}

// Size returns the mmap'd region's total size in bytes, and Used the
// portion actually holding code+data, for the *mem report.
func (p *Page) Size() int { return len(p.addr) }
func (p *Page) Used() int { return p.used }

// Release munmaps the page. Called from Dictionary.Forget so that forgetting a
// word returns its executable memory to the OS (spec 5: "released on
// forget").
func (p *Page) Release() error {
	if len(p.addr) == 0 {
		return nil
	}
	err := unix.Munmap(p.addr)
	p.addr = nil
	return err
}
