package native_test

import (
	"bytes"
	"testing"

	"ember/internal/native"
	"ember/internal/object"
)

func TestParseArgsMixedWithDefault(t *testing.T) {
	h := object.NewHeap(object.Config{})
	args := []object.Ref{
		object.MakeSmallInt(5),
		h.NewFloat(2.5),
		h.NewString("ab"),
	}

	var a int32
	var b float64
	var c []byte
	var clen, d int32
	n := native.ParseArgs(h, "ifsI", args, &a, &b, &c, &clen, int32(2), &d)
	if n != 4 {
		t.Fatalf("converted %d positions, want 4", n)
	}
	if a != 5 || b != 2.5 || string(c) != "ab" || clen != 2 || d != 2 {
		t.Errorf("outputs = %d %v %q %d %d", a, b, c, clen, d)
	}
}

func TestParseArgsOptionalUsesArgumentWhenPresent(t *testing.T) {
	h := object.NewHeap(object.Config{})
	args := []object.Ref{object.MakeSmallInt(1), object.MakeSmallInt(9)}
	var a, b int32
	n := native.ParseArgs(h, "iI", args, &a, int32(7), &b)
	if n != 2 || b != 9 {
		t.Errorf("n=%d b=%d, want 2 and 9", n, b)
	}
}

func TestParseArgsStopsOnMismatch(t *testing.T) {
	h := object.NewHeap(object.Config{})

	// A boolean is not an integer: conversion stops at position 0.
	var a int32
	var s []byte
	var slen int32
	n := native.ParseArgs(h, "is", []object.Ref{object.True, h.NewString("x")}, &a, &s, &slen)
	if n != 0 {
		t.Errorf("converted %d positions, want 0", n)
	}

	// First position converts, second mismatches.
	var b int32
	n = native.ParseArgs(h, "ii",
		[]object.Ref{object.MakeSmallInt(1), h.NewString("no")}, &a, &b)
	if n != 1 {
		t.Errorf("converted %d positions, want 1", n)
	}
	if a != 1 {
		t.Errorf("first output not written: %d", a)
	}
}

func TestParseArgsMissingMandatoryStops(t *testing.T) {
	h := object.NewHeap(object.Config{})
	var a, b int32
	n := native.ParseArgs(h, "ii", []object.Ref{object.MakeSmallInt(4)}, &a, &b)
	if n != 1 {
		t.Errorf("converted %d positions, want 1", n)
	}
}

func TestParseArgsLongInteger(t *testing.T) {
	h := object.NewHeap(object.Config{})
	big := h.NewInt(1 << 40)

	var l int64
	if n := native.ParseArgs(h, "l", []object.Ref{big}, &l); n != 1 || l != 1<<40 {
		t.Errorf("n=%d l=%d", n, l)
	}

	// The same value does not fit 32 bits: 'i' reports a mismatch.
	var i int32
	if n := native.ParseArgs(h, "i", []object.Ref{big}, &i); n != 0 {
		t.Errorf("overflowing 'i' converted %d positions, want 0", n)
	}

	var dflt int64
	if n := native.ParseArgs(h, "L", nil, int64(-3), &dflt); n != 1 || dflt != -3 {
		t.Errorf("n=%d default=%d", n, dflt)
	}
}

func TestParseArgsFloatDefault(t *testing.T) {
	h := object.NewHeap(object.Config{})
	var f float64
	if n := native.ParseArgs(h, "F", nil, 1.5, &f); n != 1 || f != 1.5 {
		t.Errorf("n=%d f=%v", n, f)
	}
	// An integer is not a float.
	if n := native.ParseArgs(h, "f", []object.Ref{object.MakeSmallInt(3)}, &f); n != 0 {
		t.Errorf("int accepted for 'f': n=%d", n)
	}
}

func TestParseArgsBufferSharesStorage(t *testing.T) {
	h := object.NewHeap(object.Config{})
	ba := h.NewByteArray(4)
	h.SetSeqLen(ba, 3)
	src, _ := h.BytesValue(ba)
	copy(src, "xyz")

	var buf []byte
	var n32 int32
	if n := native.ParseArgs(h, "s", []object.Ref{ba}, &buf, &n32); n != 1 {
		t.Fatalf("n=%d", n)
	}
	if n32 != 3 || !bytes.Equal(buf, []byte("xyz")) {
		t.Errorf("buf=%q len=%d", buf, n32)
	}
	// No copy: writing through the marshaled slice hits the object.
	buf[0] = 'X'
	got, _ := h.BytesValue(ba)
	if got[0] != 'X' {
		t.Error("marshaled buffer is a copy")
	}
}

func TestParseArgsBoundedBuffer(t *testing.T) {
	h := object.NewHeap(object.Config{})
	s := h.NewString("hello")

	var buf []byte
	var n32 int32
	if n := native.ParseArgs(h, "b", []object.Ref{s}, &buf, &n32, 8); n != 1 {
		t.Errorf("within bound: n=%d", n)
	}
	if n := native.ParseArgs(h, "b", []object.Ref{s}, &buf, &n32, 3); n != 0 {
		t.Errorf("over bound: n=%d, want 0", n)
	}

	if n := native.ParseArgs(h, "B", nil, []byte("dflt"), &buf, &n32, 8); n != 1 {
		t.Errorf("default within bound: n=%d", n)
	}
	if n32 != 4 || string(buf) != "dflt" {
		t.Errorf("default buf=%q len=%d", buf, n32)
	}
}

func TestParseArgsOptionalString(t *testing.T) {
	h := object.NewHeap(object.Config{})
	var buf []byte
	var n32 int32

	if n := native.ParseArgs(h, "S", nil, "fallback", &buf, &n32); n != 1 {
		t.Fatalf("n=%d", n)
	}
	if string(buf) != "fallback" || n32 != 8 {
		t.Errorf("buf=%q len=%d", buf, n32)
	}

	b := h.NewBytes(2, []byte{1, 2})
	if n := native.ParseArgs(h, "S", []object.Ref{b}, "fallback", &buf, &n32); n != 1 {
		t.Fatalf("n=%d", n)
	}
	if n32 != 2 || buf[0] != 1 {
		t.Errorf("buf=%v len=%d", buf, n32)
	}
}

func TestParseArgsBadSlotPanics(t *testing.T) {
	h := object.NewHeap(object.Config{})
	defer func() {
		if recover() == nil {
			t.Error("mis-typed output slot must panic")
		}
	}()
	var wrong int
	native.ParseArgs(h, "i", []object.Ref{object.MakeSmallInt(1)}, &wrong)
}
