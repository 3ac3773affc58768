package object_test

import (
	"bytes"
	"testing"

	"ember/internal/errcode"
	"ember/internal/object"
)

func buildSampleHeap(t *testing.T) (*object.Heap, object.Ref) {
	t.Helper()
	h := object.NewHeap(object.Config{})
	d := h.NewDict(4)
	h.DictPut(d, h.NewString("name"), h.NewString("ember"))
	h.DictPut(d, h.NewString("answer"), object.MakeSmallInt(42))
	h.DictPut(d, h.NewString("pi"), h.NewFloat(3.25))
	l := h.NewList(2, []object.Ref{d, h.NewTuple(1, []object.Ref{object.None})})
	_ = l
	// Leave a tombstone in the table so the slot states roundtrip.
	h.DictPut(d, h.NewString("gone"), object.True)
	h.DictDel(d, h.NewString("gone"))
	return h, d
}

func TestSnapshotRoundtrip(t *testing.T) {
	h, d := buildSampleHeap(t)

	var buf bytes.Buffer
	if err := h.WriteSnapshot(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	restored, err := object.ReadSnapshot(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if restored.LiveObjects() != h.LiveObjects() {
		t.Errorf("live objects %d, want %d", restored.LiveObjects(), h.LiveObjects())
	}
	if err := restored.Verify(); err != nil {
		t.Errorf("restored heap invalid: %v", err)
	}

	// The dict handle is stable across the roundtrip.
	v := restored.DictGet(d, restored.NewString("answer"))
	if v == object.Nil || object.SmallIntValue(v) != 42 {
		t.Errorf("answer = %v", restored.Repr(v))
	}
	if restored.DictGet(d, restored.NewString("gone")) != object.Nil {
		t.Error("tombstoned key came back")
	}

	// Mutation keeps working after a restore, including rehashing.
	for i := 0; i < 50; i++ {
		if code := restored.DictPut(d, restored.MakeInt(int64(1000+i)), object.True); code != errcode.OK {
			t.Fatalf("put after restore: %v", code)
		}
	}
	if err := restored.Verify(); err != nil {
		t.Errorf("after growth: %v", err)
	}
}

func TestSnapshotDeterministic(t *testing.T) {
	h, _ := buildSampleHeap(t)
	var a, b bytes.Buffer
	if err := h.WriteSnapshot(&a); err != nil {
		t.Fatal(err)
	}
	if err := h.WriteSnapshot(&b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("two snapshots of the same heap differ")
	}
}

func TestSnapshotRejectsGarbage(t *testing.T) {
	if _, err := object.ReadSnapshot(bytes.NewReader([]byte{0xc1, 0xff, 0x00})); err == nil {
		t.Error("garbage stream accepted")
	}
}

func TestVerifyCatchesDanglingRef(t *testing.T) {
	h := object.NewHeap(object.Config{})
	s := h.NewString("victim")
	l := h.NewList(1, []object.Ref{s})
	_ = l
	h.Reclaim(s.Handle())
	if err := h.Verify(); err == nil {
		t.Error("dangling ref not reported")
	}
}
