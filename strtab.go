package main

import (
	"fmt"
	"strings"
	"sync"
)

// strEntry is one interned string: its bytes (NUL-terminated so its
// address can be handed to a compiled word as a C-style pointer) and a
// reference count. Grounded on original_source/StringInterner.h +
// StringStorage.h's GlobalStringManager: same text always yields the same
// address, storage never moves once allocated.
type strEntry struct {
	bytes []byte // text + trailing NUL, never reallocated after creation
	refs  int
}

// StringTable interns Forth string literals and STRING-word results,
// handing out stable addresses. Guarded by a mutex (original_source
// guards intern/getString/incrementRef/decrementRef with the same lock);
// in this port only Go-side code touches it -- the tokenizer and the
// string words of gen_strings.go, which run as Go Interp words, not
// compiled code.
type StringTable struct {
	mu      sync.Mutex
	byText  map[string]int
	entries []*strEntry
}

func NewStringTable() *StringTable {
	return &StringTable{byText: make(map[string]int)}
}

// Intern returns the index of s, allocating fresh storage the first time
// this exact text is seen and bumping the refcount on every later call
// (StringInterner::intern).
func (t *StringTable) Intern(s string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx, ok := t.byText[s]; ok {
		t.entries[idx].refs++
		return idx
	}
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	idx := len(t.entries)
	t.entries = append(t.entries, &strEntry{bytes: buf, refs: 1})
	t.byText[s] = idx
	return idx
}

// String returns the text stored at index (StringInterner::getString).
func (t *StringTable) String(index int) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if index < 0 || index >= len(t.entries) || t.entries[index] == nil {
		return ""
	}
	e := t.entries[index]
	return string(e.bytes[:len(e.bytes)-1])
}

// Address returns the stable pointer a compiled word can hold onto and
// dereference directly (StringInterner::getStringAddress).
func (t *StringTable) Address(index int) uintptr {
	t.mu.Lock()
	defer t.mu.Unlock()
	if index < 0 || index >= len(t.entries) || t.entries[index] == nil {
		return 0
	}
	return uintptr(unsafePointerOf2(t.entries[index].bytes))
}

// IncRef bumps the reference count of the string at index.
func (t *StringTable) IncRef(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if index >= 0 && index < len(t.entries) && t.entries[index] != nil {
		t.entries[index].refs++
	}
}

// DecRef drops the reference count, releasing the entry's slot once it
// reaches zero (StringInterner::decrementRef / removeString). The slot is
// left nil rather than compacted, since other indices must stay valid.
func (t *StringTable) DecRef(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if index < 0 || index >= len(t.entries) || t.entries[index] == nil {
		return
	}
	t.entries[index].refs--
	if t.entries[index].refs <= 0 {
		delete(t.byText, string(t.entries[index].bytes[:len(t.entries[index].bytes)-1]))
		t.entries[index] = nil
	}
}

// Concat interns the concatenation of the two strings (StringCat).
func (t *StringTable) Concat(a, b int) int {
	return t.Intern(t.String(a) + t.String(b))
}

// Equal reports whether the two indices hold identical text (StrEqual).
func (t *StringTable) Equal(a, b int) bool {
	return t.String(a) == t.String(b)
}

// Contains reports whether the string at index a contains the string at
// index b (StrContains).
func (t *StringTable) Contains(a, b int) bool {
	return strings.Contains(t.String(a), t.String(b))
}

// Position returns the 0-based offset of needle within haystack, or -1 if
// not found, mirroring the original's StrPosition.
func (t *StringTable) Position(haystack, needle int) int {
	return strings.Index(t.String(haystack), t.String(needle))
}

// CountFields returns the number of whitespace-delimited fields in the
// string at index, used by supplemented word S-FIELDS.
func (t *StringTable) CountFields(index int) int {
	return len(strings.Fields(t.String(index)))
}

// Split returns the interned index of the field-th substring of src when
// cut on every occurrence of delim, or -1 if position is out of range
// (StringInterner::StringSplit). A trailing remainder after the last
// delimiter counts as one more field, matching the original's fallthrough
// case after its scan loop.
func (t *StringTable) Split(src, delim int, position int) int {
	str := t.String(src)
	sep := t.String(delim)
	if sep == "" {
		if position == 0 {
			return t.Intern(str)
		}
		return -1
	}
	start := 0
	pos := 0
	for {
		idx := strings.Index(str[start:], sep)
		if idx < 0 {
			break
		}
		end := start + idx
		if pos == position {
			return t.Intern(str[start:end])
		}
		start = end + len(sep)
		pos++
	}
	if pos == position {
		return t.Intern(str[start:])
	}
	return -1
}

// Dump prints every live interned entry (index, refcount, text), for the
// REPL's *strings meta-command.
func (t *StringTable) Dump() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, e := range t.entries {
		if e == nil {
			continue
		}
		fmt.Printf("%d [%d] %q\n", i, e.refs, string(e.bytes[:len(e.bytes)-1]))
	}
}
