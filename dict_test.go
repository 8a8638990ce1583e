package main

import (
	"strings"
	"testing"
)

func TestDictionaryAddFindCaseInsensitive(t *testing.T) {
	d := NewDictionary()
	w := &Word{Name: "DUP"}
	d.Add(w)

	if got := d.Find("dup"); got != w {
		t.Fatalf("Find(%q) = %v, want %v", "dup", got, w)
	}
	if got := d.Find("DUP"); got != w {
		t.Fatalf("Find(%q) = %v, want %v", "DUP", got, w)
	}
	if got := d.Find("nope"); got != nil {
		t.Fatalf("Find(%q) = %v, want nil", "nope", got)
	}
}

func TestDictionaryRedefinitionShadows(t *testing.T) {
	d := NewDictionary()
	first := &Word{Name: "x"}
	second := &Word{Name: "x"}
	d.Add(first)
	d.Add(second)

	if got := d.Find("x"); got != second {
		t.Fatal("Find after redefinition should return the newer word")
	}
	if d.Latest() != second || d.Latest().Link != first {
		t.Fatal("Latest chain should link the newer word to the older one, not replace it")
	}
}

func TestDictionaryForgetRemovesRange(t *testing.T) {
	d := NewDictionary()
	a := &Word{Name: "a"}
	b := &Word{Name: "b"}
	c := &Word{Name: "c"}
	d.Add(a)
	d.Add(b)
	d.Add(c)

	if err := d.Forget("b"); err != nil {
		t.Fatal(err)
	}
	if d.Find("b") != nil || d.Find("c") != nil {
		t.Fatal("Forget(b) should remove both b and c")
	}
	if d.Find("a") != a {
		t.Fatal("Forget(b) should leave a defined")
	}
	if d.Latest() != a {
		t.Fatalf("Latest after Forget = %v, want %v", d.Latest(), a)
	}
}

func TestDictionaryForgetUnknownWord(t *testing.T) {
	d := NewDictionary()
	if err := d.Forget("nope"); err == nil {
		t.Fatal("Forget on an unknown word: want error, got nil")
	}
}

func TestDictionaryWordsMostRecentFirst(t *testing.T) {
	d := NewDictionary()
	d.Add(&Word{Name: "a"})
	d.Add(&Word{Name: "b"})
	d.Add(&Word{Name: "c"})

	got := d.Words()
	want := []string{"c", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("Words() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Words()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDictionarySeeRoundtrip(t *testing.T) {
	d := NewDictionary()
	d.Add(&Word{Name: "sq", Source: "dup *"})

	src, ok := d.See("sq")
	if !ok || src != "dup *" {
		t.Fatalf("See(sq) = %q, %v, want %q, true", src, ok, "dup *")
	}
	if _, ok := d.See("nope"); ok {
		t.Fatal("See on undefined word: want ok=false")
	}
}

func TestDictionaryDisplayUnknownWord(t *testing.T) {
	d := NewDictionary()
	if _, err := d.Display("nope"); err == nil {
		t.Fatal("Display on undefined word: want error, got nil")
	}
}

func TestDictionaryDisplayShowsTypeStateAndData(t *testing.T) {
	d := NewDictionary()
	d.Add(&Word{Name: "limit", Type: TypeConstant, Data: uint64(newDataCell(42))})

	out, err := d.Display("limit")
	if err != nil {
		t.Fatalf("Display(limit): %v", err)
	}
	if !strings.Contains(out, "type constant") {
		t.Errorf("Display(limit) = %q, want it to mention the constant type", out)
	}
	if !strings.Contains(out, "42") {
		t.Errorf("Display(limit) = %q, want it to mention the stored value 42", out)
	}
}

func TestRenderSourceIndentsNestedConstructs(t *testing.T) {
	got := renderSource(": f dup 0 > if 1+ else 1- then ;")
	want := ":\n  f dup 0 > if\n    1+\n  else\n    1-\n  then\n;\n"
	if got != want {
		t.Fatalf("renderSource() = %q, want %q", got, want)
	}
}
