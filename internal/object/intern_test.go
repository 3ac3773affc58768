package object_test

import (
	"testing"

	"ember/internal/object"
)

func TestInternSharesObjects(t *testing.T) {
	h := object.NewHeap(object.Config{})
	a := h.Intern("name")
	b := h.Intern("name")
	if a != b {
		t.Error("same name interned twice")
	}
	if h.StringValue(a) != "name" {
		t.Errorf("interned value = %q", h.StringValue(a))
	}
	if h.InternedCount() != 1 {
		t.Errorf("interned count = %d", h.InternedCount())
	}
}

func TestInternNormalizes(t *testing.T) {
	h := object.NewHeap(object.Config{})
	// U+FF41 FULLWIDTH LATIN SMALL LETTER A normalizes to "a" under NFKC.
	a := h.Intern("ａ")
	b := h.Intern("a")
	if a != b {
		t.Error("NFKC-equal names interned separately")
	}
}

func TestReprFormats(t *testing.T) {
	h := object.NewHeap(object.Config{})
	tests := []struct {
		ref  object.Ref
		want string
	}{
		{object.MakeSmallInt(-7), "-7"},
		{object.True, "true"},
		{object.None, "none"},
		{h.NewString("hi"), `"hi"`},
		{h.NewFloat(2.5), "2.5"},
		{h.NewRange(0, 4, 2), "range(0, 4, 2)"},
		{h.NewTuple(2, []object.Ref{object.MakeSmallInt(1), object.False}), "(1, false)"},
	}
	for _, tt := range tests {
		if got := h.Repr(tt.ref); got != tt.want {
			t.Errorf("Repr = %q, want %q", got, tt.want)
		}
	}
}
