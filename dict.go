package main

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/xyproto/forthjit/internal/emit"
)

// WordState mirrors original_source/ForthDictionary.h's ForthWordState
// bitmask: a word can be immediate and/or restricted to compile- or
// interpret-only contexts.
type WordState uint8

const (
	StateNormal       WordState = 0
	StateImmediate    WordState = 1 << 0
	StateCompileOnly  WordState = 1 << 1
	StateInterpretOnly WordState = 1 << 2
)

// String renders the active state flags, for display's "type/state" line.
func (s WordState) String() string {
	if s == StateNormal {
		return "normal"
	}
	var parts []string
	if s&StateImmediate != 0 {
		parts = append(parts, "immediate")
	}
	if s&StateCompileOnly != 0 {
		parts = append(parts, "compile-only")
	}
	if s&StateInterpretOnly != 0 {
		parts = append(parts, "interpret-only")
	}
	return strings.Join(parts, "+")
}

// WordType mirrors ForthWordType: what kind of data cell (if any) the
// word's dictionary entry carries.
type WordType uint16

const (
	TypeWord WordType = iota
	TypeConstant
	TypeVariable
	TypeValue
	TypeString
	TypeFloat
	TypeArray
	TypeStringArray
	TypeFloatArray
)

// String renders the type name, for display's "type/state" line.
func (t WordType) String() string {
	switch t {
	case TypeConstant:
		return "constant"
	case TypeVariable:
		return "variable"
	case TypeValue:
		return "value"
	case TypeString:
		return "string"
	case TypeFloat:
		return "float"
	case TypeArray:
		return "array"
	case TypeStringArray:
		return "string-array"
	case TypeFloatArray:
		return "float-array"
	default:
		return "word"
	}
}

// generatorFunc emits inline code for a word directly into the
// definition currently being compiled (used for primitives like + or
// DUP that are cheap enough to inline rather than CALL). Word.Page holds
// the word's own finalized native entry point, used when a cross-word
// CALL needs an address rather than an inlining.
type generatorFunc func(g *Generator)

// Word is one dictionary entry, grounded field-for-field on
// original_source/ForthDictionary.h's ForthWord: a fixed name, up to four
// behaviors (generator/compiled/immediate-compile/immediate-interpret),
// a link to the previous word, state/type flags and a single data cell.
// Unlike the C++ version's std::variant<uint64_t,double,void*>, the data
// cell here is a plain uint64 that callers reinterpret via math/bits
// style casts (float64 bits, or a pointer's uintptr) as their type
// requires -- Go has no tagged-union primitive as convenient as variant,
// and every use site already knows its own Type.
// cursorGenFunc and cursorInterpFunc are the "immediate with cursor
// visibility" behaviors spec 4.8 describes for words like `{`, `TO`,
// `VARIABLE`: they may read further tokens (a name, a brace-delimited
// clause) and advance the tokenizer themselves rather than being handed
// a fixed one-token span.
type cursorGenFunc func(g *Generator, t *Tokenizer)
type cursorInterpFunc func(d *Driver, t *Tokenizer)

type Word struct {
	Name string

	Generator generatorFunc // inline code emission, nil if none
	Page      *emit.Page    // finalized native code for this word, nil until compiled

	// Immediate is the compile-time action for control-flow words (IF,
	// BEGIN, LOOP, ...) that need no further tokens beyond themselves.
	Immediate generatorFunc
	// CompileCursor is the compile-time action for words that consume
	// further tokens themselves (`{`, `TO` in compile mode).
	CompileCursor cursorGenFunc

	// Interp is the plain interpret-time action for Go-side words with
	// no further tokens to consume (`.`, `words`, `.s`, ...); these are
	// StateInterpretOnly so the compile path rejects them with
	// ErrInterpretOnly rather than trying to inline or CALL them.
	Interp func(d *Driver)
	// InterpCursor is the interpret-time action for defining words and
	// `TO`/`CHAR`, which consume the following token themselves.
	InterpCursor cursorInterpFunc

	Link  *Word // previous word in the chain, nil for the oldest
	State WordState
	Type  WordType
	Data  uint64 // interpretation depends on Type: address of a backing
	             // cell for VALUE/FVALUE/CONSTANT/FCONSTANT/VARIABLE, the
	             // string-table index itself for STRING, or an ARRAY's base
	             // address (see ArrayLen).
	ArrayLen int // element count, TypeArray/TypeFloatArray/TypeStringArray only

	Source string // original source text, for SEE

	Traced bool // set by the REPL's *tron/*troff meta-command
}

// newDataCell heap-allocates a single stable uint64 cell (never moved by
// Go's non-moving heap once escaped, same stability argument strtab.go
// relies on for interned string bytes) and returns its address, for
// VALUE/FVALUE/CONSTANT/FCONSTANT/VARIABLE's backing storage (spec 4.6).
func newDataCell(initial uint64) uintptr {
	cell := new(uint64)
	*cell = initial
	return uintptr(unsafePointerOf(cell))
}

// newArrayCells heap-allocates n uint64 cells and returns their base
// address, for ARRAY's "allot count x 8 bytes" storage (spec 4.6);
// TypeArray's compiled behavior indexes from this base rather than from
// a dictionary-arena offset, since forthjit's Word values are individual
// heap objects rather than slots in one contiguous arena (dict.go).
func newArrayCells(n int) uintptr {
	if n <= 0 {
		n = 1
	}
	cells := make([]uint64, n)
	return uintptr(unsafePointerOf(&cells[0]))
}

// EntryAddr returns a stable identity for this word usable as a
// RECURSE/cross-call target once compiled.
func (w *Word) EntryAddr() uintptr {
	if w.Page == nil {
		return 0
	}
	return w.Page.Addr()
}

// dataVariant renders w.Data/ArrayLen according to w.Type, for display's
// "data variant" line. CONSTANT/VALUE/FVALUE/VARIABLE all store the
// address of a backing cell in Data (newDataCell), so those are
// dereferenced; STRING stores a string-table index directly; the three
// array types store a base address plus ArrayLen.
func (w *Word) dataVariant() string {
	switch w.Type {
	case TypeConstant, TypeValue:
		return fmt.Sprintf("%d", *(*uint64)(ptrAt(uintptr(w.Data))))
	case TypeFloat:
		return fmt.Sprintf("%g", float64FromBits(*(*uint64)(ptrAt(uintptr(w.Data)))))
	case TypeVariable:
		return fmt.Sprintf("cell @0x%x = %d", w.Data, *(*uint64)(ptrAt(uintptr(w.Data))))
	case TypeString:
		return fmt.Sprintf("string index %d", w.Data)
	case TypeArray, TypeFloatArray, TypeStringArray:
		return fmt.Sprintf("base 0x%x len %d", w.Data, w.ArrayLen)
	default:
		return "-"
	}
}

// Dictionary is the append-only word chain. Grounded on
// ForthDictionary's std::vector<char> memory arena: original_source
// allocates from one big fixed buffer so that ForthWord* pointers into it
// are never invalidated by growth. Go's Word values here are individually
// heap-allocated (each *Word passed to Add never moves once
// created, since Go never relocates an object still referenced), which
// gives the same "addresses stay stable" guarantee without needing a
// hand-rolled arena allocator.
type Dictionary struct {
	latest *Word
	byName map[string]*Word
	source map[string]string
}

func NewDictionary() *Dictionary {
	return &Dictionary{byName: make(map[string]*Word), source: make(map[string]string)}
}

// canonical lowercases a word name; original_source's ForthTokenizer
// downcases every token before lookup, so the dictionary is
// case-insensitive by the same rule.
func canonical(name string) string {
	return strings.ToLower(name)
}

// Add installs a new word, linking it in front of the existing chain so
// later definitions shadow earlier ones with the same name without
// destroying the old entry (a still-compiled word calling the old
// definition by direct address keeps working, matching Forth's classic
// "old definitions using OLDNAME survive a redefinition" behavior).
func (d *Dictionary) Add(w *Word) {
	w.Link = d.latest
	d.latest = w
	d.byName[canonical(w.Name)] = w
	if w.Source != "" {
		d.source[canonical(w.Name)] = w.Source
	}
}

// Find looks up a word by name (case-insensitive), returning nil if
// absent (ForthDictionary::findWord).
func (d *Dictionary) Find(name string) *Word {
	return d.byName[canonical(name)]
}

// Latest returns the most recently defined word (getLatestWord), used by
// the driver right after a colon-definition finalizes.
func (d *Dictionary) Latest() *Word { return d.latest }

// Forget removes name and every word defined after it, releasing each
// removed word's executable page. Mirrors forgetLastWord generalized to
// an arbitrary target, since spec 4.7's FORGET takes a name.
func (d *Dictionary) Forget(name string) error {
	target := d.byName[canonical(name)]
	if target == nil {
		return newErr(ErrUnknownWord, "%s", name)
	}
	w := d.latest
	for w != nil {
		delete(d.byName, canonical(w.Name))
		delete(d.source, canonical(w.Name))
		if w.Page != nil {
			if err := w.Page.Release(); err != nil {
				return err
			}
		}
		if w == target {
			break
		}
		w = w.Link
	}
	d.latest = target.Link
	return nil
}

// Words returns every defined word's name, most recent first, for the
// supplemented WORDS command.
func (d *Dictionary) Words() []string {
	names := make([]string, 0, len(d.byName))
	for w := d.latest; w != nil; w = w.Link {
		names = append(names, w.Name)
	}
	return names
}

// See returns the recorded source text for name, for the supplemented
// SEE command. sourceCodeMap in the original keeps this separate from
// the compiled ForthWord precisely so SEE works even though the compiled
// form is machine code.
func (d *Dictionary) See(name string) (string, bool) {
	src, ok := d.source[canonical(name)]
	return src, ok
}

// Display implements spec 4.3's `display(name)`: the entry's function
// addresses, type/state, its data variant, and a pretty-printed
// rendering of its saved defining text. Returns an error for an unknown
// name; a builtin with no recorded Source still gets the address/
// type/state/data lines, just no source rendering.
func (d *Dictionary) Display(name string) (string, error) {
	w := d.byName[canonical(name)]
	if w == nil {
		return "", newErr(ErrUnknownWord, "%s", name)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", w.Name)
	if w.Page != nil {
		fmt.Fprintf(&sb, "  entry 0x%x  (%d/%d bytes used)\n", w.Page.Addr(), w.Page.Used(), w.Page.Size())
	} else {
		fmt.Fprintf(&sb, "  entry <none> (no compiled form)\n")
	}
	fmt.Fprintf(&sb, "  type %s  state %s\n", w.Type, w.State)
	fmt.Fprintf(&sb, "  data %s\n", w.dataVariant())
	if w.Source != "" {
		sb.WriteString(renderSource(w.Source))
	}
	return sb.String(), nil
}

// renderSource pretty-prints a colon-definition's saved text, indenting
// two spaces per nesting level opened by `:`, `if`, `do`, or `begin` and
// closed by their matching `;`/`then`/`loop`/`+loop`/`until`/`again`/
// `repeat` (spec 4.3). Words between constructs are grouped onto one
// line at the current depth, matching how such a definition is usually
// typed by hand.
func renderSource(source string) string {
	const indent = "  "
	opens := map[string]bool{":": true, "if": true, "do": true, "begin": true}
	closes := map[string]bool{
		";": true, "then": true, "loop": true, "+loop": true,
		"until": true, "again": true, "repeat": true,
	}

	var sb strings.Builder
	depth := 0
	var line []string
	flush := func() {
		if len(line) == 0 {
			return
		}
		sb.WriteString(strings.Repeat(indent, depth))
		sb.WriteString(strings.Join(line, " "))
		sb.WriteByte('\n')
		line = line[:0]
	}

	for _, tok := range strings.Fields(source) {
		lower := strings.ToLower(tok)
		switch {
		case closes[lower]:
			flush()
			if depth > 0 {
				depth--
			}
			sb.WriteString(strings.Repeat(indent, depth))
			sb.WriteString(tok)
			sb.WriteByte('\n')
		case opens[lower]:
			line = append(line, tok)
			flush()
			depth++
		case lower == "else":
			// ELSE sits at the IF's own level without closing its frame:
			// the THEN that follows still dedents once, for both branches.
			flush()
			d := depth
			if d > 0 {
				d--
			}
			sb.WriteString(strings.Repeat(indent, d))
			sb.WriteString(tok)
			sb.WriteByte('\n')
		default:
			line = append(line, tok)
		}
	}
	flush()
	return sb.String()
}

func float64FromBits(v uint64) float64 { return *(*float64)(unsafe.Pointer(&v)) }
func bitsFromFloat64(f float64) uint64 { return *(*uint64)(unsafe.Pointer(&f)) }
