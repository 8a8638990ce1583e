package main

import "unsafe"

// unsafePointerOf and ptrAt isolate the handful of unsafe.Pointer
// conversions stack.go needs to treat Go-backed []uint64 slices as raw
// addresses the JIT's pinned registers can walk, mirroring the teacher's
// practice (arena.go, hotreload_unix.go) of keeping unsafe conversions in
// small named helpers rather than inlined at each call site.
func unsafePointerOf(v *uint64) unsafe.Pointer {
	return unsafe.Pointer(v)
}

func ptrAt(addr uintptr) unsafe.Pointer {
	return unsafe.Pointer(addr)
}

// unsafePointerOf2 returns the address of a byte slice's backing array,
// stable for the slice's lifetime since strtab.go never reallocates an
// entry's bytes after creation.
func unsafePointerOf2(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}
