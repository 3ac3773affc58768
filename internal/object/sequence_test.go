package object_test

import (
	"bytes"
	"testing"

	"ember/internal/object"
)

func TestNewSequenceInvariants(t *testing.T) {
	h := object.NewHeap(object.Config{})
	tests := []struct {
		tag     object.TypeTag
		mutable bool
	}{
		{object.TagString, false},
		{object.TagBytes, false},
		{object.TagByteArray, true},
		{object.TagShorts, false},
		{object.TagShortArray, true},
		{object.TagTuple, false},
		{object.TagList, true},
	}
	for _, tt := range tests {
		r := h.NewSequence(tt.tag, 10)
		if r == object.Nil {
			t.Fatalf("%v: allocation failed", tt.tag)
		}
		elems, capacity := h.SeqLen(r), h.SeqCap(r)
		if elems > capacity {
			t.Errorf("%v: elems %d > capacity %d", tt.tag, elems, capacity)
		}
		if tt.mutable && elems != 0 {
			t.Errorf("%v: fresh mutable sequence has elems %d, want 0", tt.tag, elems)
		}
		if !tt.mutable && elems != 10 {
			t.Errorf("%v: immutable sequence has elems %d, want 10", tt.tag, elems)
		}
	}
}

func TestImmutableInitCopiesVerbatim(t *testing.T) {
	h := object.NewHeap(object.Config{})

	src := []byte{1, 2, 3, 4}
	b := h.NewBytes(4, src)
	src[0] = 99
	got, ok := h.BytesValue(b)
	if !ok || !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("bytes init not copied: %v", got)
	}

	w := h.NewShorts(3, []uint16{10, 20, 30})
	if h.SeqLen(w) != 3 {
		t.Errorf("shorts elems = %d", h.SeqLen(w))
	}

	zero := h.NewBytes(4, nil)
	got, _ = h.BytesValue(zero)
	if !bytes.Equal(got, []byte{0, 0, 0, 0}) {
		t.Errorf("nil init should zero-fill, got %v", got)
	}
}

func TestStringRoundtrip(t *testing.T) {
	h := object.NewHeap(object.Config{})
	s := h.NewString("ember")
	if h.StringValue(s) != "ember" {
		t.Errorf("StringValue = %q", h.StringValue(s))
	}
	if h.SeqLen(s) != 5 || h.SeqCap(s) != 5 {
		t.Errorf("string len/cap = %d/%d", h.SeqLen(s), h.SeqCap(s))
	}
}

func TestListConstructionAndMutation(t *testing.T) {
	h := object.NewHeap(object.Config{})
	items := []object.Ref{object.MakeSmallInt(1), object.MakeSmallInt(2)}
	l := h.NewList(2, items)
	if h.SeqLen(l) != 2 {
		t.Fatalf("list elems = %d, want 2", h.SeqLen(l))
	}
	obj := h.Obj(l)
	obj.Objs[0] = object.MakeSmallInt(9)
	if object.SmallIntValue(obj.Objs[0]) != 9 {
		t.Error("list storage not writable")
	}
}

func TestSetSeqLenBounds(t *testing.T) {
	h := object.NewHeap(object.Config{})
	ba := h.NewByteArray(8)
	h.SetSeqLen(ba, 5)
	if h.SeqLen(ba) != 5 {
		t.Errorf("elems = %d, want 5", h.SeqLen(ba))
	}

	defer func() {
		if recover() == nil {
			t.Error("setting elems beyond capacity should fault")
		}
	}()
	h.SetSeqLen(ba, 9)
}

func TestGrowSequenceCopies(t *testing.T) {
	h := object.NewHeap(object.Config{})
	ba := h.NewByteArray(4)
	obj := h.Obj(ba)
	copy(obj.Bytes, []byte{5, 6, 7})
	h.SetSeqLen(ba, 3)

	grown := h.GrowSequence(ba, 16)
	if grown == object.Nil {
		t.Fatal("grow failed")
	}
	if grown == ba {
		t.Error("growth must allocate a new object")
	}
	if h.SeqCap(grown) < 16 {
		t.Errorf("grown capacity = %d, want >= 16", h.SeqCap(grown))
	}
	if h.SeqLen(grown) != 3 {
		t.Errorf("grown elems = %d, want 3", h.SeqLen(grown))
	}
	got, _ := h.BytesValue(grown)
	if !bytes.Equal(got, []byte{5, 6, 7}) {
		t.Errorf("grown contents = %v", got)
	}
}

func TestSequenceRejectsHugeRequests(t *testing.T) {
	h := object.NewHeap(object.Config{})
	if r := h.NewSequence(object.TagBytes, 1<<20); r != object.Nil {
		t.Error("element counts beyond 16 bits must fail like an allocation")
	}
	if r := h.NewSequence(object.TagList, -1); r != object.Nil {
		t.Error("negative element count must fail")
	}
}

func TestRangeObject(t *testing.T) {
	h := object.NewHeap(object.Config{})
	tests := []struct {
		start, stop, step int32
		want              int
	}{
		{0, 10, 1, 10},
		{0, 10, 3, 4},
		{10, 0, -2, 5},
		{5, 5, 1, 0},
		{0, 10, -1, 0},
	}
	for _, tt := range tests {
		r := h.NewRange(tt.start, tt.stop, tt.step)
		if got := h.Obj(r).Elems; got != tt.want {
			t.Errorf("range(%d,%d,%d) len = %d, want %d",
				tt.start, tt.stop, tt.step, got, tt.want)
		}
	}
	if h.NewRange(0, 5, 0) != object.Nil {
		t.Error("zero step must not construct")
	}
	r := h.NewRange(2, 10, 3)
	if h.RangeAt(r, 2) != 8 {
		t.Errorf("RangeAt(2) = %d, want 8", h.RangeAt(r, 2))
	}
}

func TestIteratorWalksKinds(t *testing.T) {
	h := object.NewHeap(object.Config{})

	l := h.NewList(3, []object.Ref{
		object.MakeSmallInt(1), object.MakeSmallInt(2), object.MakeSmallInt(3),
	})
	it := h.NewIterator(l)
	var got []int32
	for {
		v, code := h.IterNext(it)
		if code != 0 {
			break
		}
		got = append(got, object.SmallIntValue(v))
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("list iteration = %v", got)
	}

	b := h.NewBytes(2, []byte{7, 8})
	it = h.NewIterator(b)
	v, _ := h.IterNext(it)
	if object.SmallIntValue(v) != 7 {
		t.Errorf("byte iteration first = %d", object.SmallIntValue(v))
	}

	rg := h.NewRange(0, 6, 2)
	it = h.NewIterator(rg)
	var rvals []int32
	for {
		v, code := h.IterNext(it)
		if code != 0 {
			break
		}
		rvals = append(rvals, object.SmallIntValue(v))
	}
	if len(rvals) != 3 || rvals[2] != 4 {
		t.Errorf("range iteration = %v", rvals)
	}
}
