package object

import (
	"fmt"

	"fortio.org/safecast"

	"ember/internal/trace"
)

// NewSequence creates an empty sequence of the given tag with space for
// at least elems elements. Mutable sequences start with an element
// count of 0 and zero-filled storage; immutable sequences have their
// element count fixed to elems. Returns Nil on allocation failure or
// for a non-sequence tag request with an out-of-range size.
func (h *Heap) NewSequence(tag TypeTag, elems int) Ref {
	kind := sequenceKind(tag)
	if kind == ekNone {
		h.fail(FaultTagMismatch, fmt.Sprintf("%s is not a sequence tag", tag))
	}
	if _, err := safecast.Conv[uint16](elems); err != nil {
		return Nil
	}
	payload := elems
	switch kind {
	case ekWord:
		payload = 2 * elems
	case ekRef:
		payload = 4 * elems
	}
	handle, obj := h.alloc(tag, payload)
	if obj == nil {
		return Nil
	}
	switch kind {
	case ekByte:
		obj.Bytes = make([]byte, elems)
	case ekWord:
		obj.Words = make([]uint16, elems)
	case ekRef:
		obj.Objs = make([]Ref, elems)
	}
	if !tag.Mutable() {
		obj.Elems = elems
	}
	return handle.Ref()
}

// newByteSeq allocates an immutable byte sequence initialized from buf,
// or zero-filled when buf is nil.
func (h *Heap) newByteSeq(tag TypeTag, length int, buf []byte) Ref {
	r := h.NewSequence(tag, length)
	if r == Nil {
		return Nil
	}
	if buf != nil {
		copy(h.Obj(r).Bytes, buf[:length])
	}
	return r
}

// NewString creates a string object holding s.
func (h *Heap) NewString(s string) Ref {
	r := h.NewSequence(TagString, len(s))
	if r == Nil {
		return Nil
	}
	copy(h.Obj(r).Bytes, s)
	return r
}

// NewBytes creates an immutable byte sequence. A nil buf zero-fills.
func (h *Heap) NewBytes(length int, buf []byte) Ref {
	return h.newByteSeq(TagBytes, length, buf)
}

// NewByteArray creates a mutable byte sequence with the given capacity
// and element count 0.
func (h *Heap) NewByteArray(capacity int) Ref {
	return h.NewSequence(TagByteArray, capacity)
}

// NewShorts creates an immutable 16-bit word sequence. A nil buf
// zero-fills.
func (h *Heap) NewShorts(length int, buf []uint16) Ref {
	r := h.NewSequence(TagShorts, length)
	if r == Nil {
		return Nil
	}
	if buf != nil {
		copy(h.Obj(r).Words, buf[:length])
	}
	return r
}

// NewShortArray creates a mutable 16-bit word sequence with the given
// capacity and element count 0.
func (h *Heap) NewShortArray(capacity int) Ref {
	return h.NewSequence(TagShortArray, capacity)
}

// NewTuple creates an immutable ref sequence initialized from items.
// A nil items zero-fills length slots with Nil.
func (h *Heap) NewTuple(length int, items []Ref) Ref {
	r := h.NewSequence(TagTuple, length)
	if r == Nil {
		return Nil
	}
	if items != nil {
		copy(h.Obj(r).Objs, items[:length])
	}
	return r
}

// NewList creates a mutable ref sequence. Unlike the other mutable
// constructors the element count is set to length, matching the way
// list literals are built.
func (h *Heap) NewList(length int, items []Ref) Ref {
	r := h.NewSequence(TagList, length)
	if r == Nil {
		return Nil
	}
	obj := h.Obj(r)
	obj.Elems = length
	if items != nil {
		copy(obj.Objs, items[:length])
	}
	return r
}

// SeqLen returns the element count of a sequence ref.
func (h *Heap) SeqLen(r Ref) int {
	obj := h.Obj(r)
	if !obj.Tag.IsSequence() {
		h.fail(FaultTagMismatch, fmt.Sprintf("%s is not a sequence", obj.Tag))
	}
	return obj.Elems
}

// SeqCap returns the storage capacity of a sequence ref.
func (h *Heap) SeqCap(r Ref) int {
	obj := h.Obj(r)
	if !obj.Tag.IsSequence() {
		h.fail(FaultTagMismatch, fmt.Sprintf("%s is not a sequence", obj.Tag))
	}
	return obj.Capacity()
}

// SetSeqLen sets the element count of a mutable sequence. The count
// must not exceed capacity; immutable sequences never change.
func (h *Heap) SetSeqLen(r Ref, n int) {
	obj := h.Obj(r)
	if !obj.Tag.IsSequence() || !obj.Tag.Mutable() {
		h.fail(FaultTagMismatch, fmt.Sprintf("%s is not a mutable sequence", obj.Tag))
	}
	if n < 0 || n > obj.Capacity() {
		h.fail(FaultBadArgument, fmt.Sprintf("element count %d exceeds capacity %d", n, obj.Capacity()))
	}
	obj.Elems = n
}

// GrowSequence allocates a replacement for a mutable sequence with
// capacity at least minCapacity, copying storage and element count.
// The old object is left for the collector. Growth is never in place.
// Returns Nil on allocation failure.
func (h *Heap) GrowSequence(r Ref, minCapacity int) Ref {
	obj := h.Obj(r)
	if !obj.Tag.Mutable() || !obj.Tag.IsSequence() {
		h.fail(FaultTagMismatch, fmt.Sprintf("%s is not growable", obj.Tag))
	}
	capacity := obj.Capacity() * 2
	if capacity < minCapacity {
		capacity = minCapacity
	}
	if capacity < 4 {
		capacity = 4
	}
	nr := h.NewSequence(obj.Tag, capacity)
	if nr == Nil {
		return Nil
	}
	nobj := h.Obj(nr)
	copy(nobj.Bytes, obj.Bytes)
	copy(nobj.Words, obj.Words)
	copy(nobj.Objs, obj.Objs)
	nobj.Elems = obj.Elems
	if h.tracer.Enabled(trace.LevelEvent) {
		h.tracer.Emit(trace.LevelEvent, "grow",
			fmt.Sprintf("%s %d -> %d slots", obj.Tag, obj.Capacity(), capacity))
	}
	return nr
}

// BytesValue exposes the live byte storage of a string, bytes or
// bytearray object without copying. The slice aliases the object's
// storage: it is only valid until the next call that may allocate.
func (h *Heap) BytesValue(r Ref) ([]byte, bool) {
	if r.IsImmediate() || r == Nil {
		return nil, false
	}
	obj := h.Get(r.Handle())
	switch obj.Tag {
	case TagString, TagBytes, TagByteArray:
		return obj.Bytes[:obj.Elems], true
	default:
		return nil, false
	}
}

// StringValue returns the text of a string object.
func (h *Heap) StringValue(r Ref) string {
	obj := h.Obj(r)
	h.mustTag(obj, TagString)
	return string(obj.Bytes[:obj.Elems])
}
