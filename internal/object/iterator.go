package object

import (
	"fmt"

	"ember/internal/errcode"
)

// NewIterator creates an iterator over a sequence, range, hash
// collection (keys for dicts) or string/bytes object. Returns Nil on
// allocation failure.
func (h *Heap) NewIterator(seq Ref) Ref {
	obj := h.Obj(seq)
	if !obj.Tag.IsSequence() && !obj.Tag.IsHashTable() && obj.Tag != TagRange {
		h.fail(FaultTagMismatch, fmt.Sprintf("%s is not iterable", obj.Tag))
	}
	handle, it := h.alloc(TagIterator, 8)
	if it == nil {
		return Nil
	}
	it.Seq = seq
	it.Index = 0
	return handle.Ref()
}

// IterNext returns the next element, or StopIteration when the source
// is exhausted. Byte and word elements come back as small integers, so
// stepping an iterator never allocates. Hash collections are walked in
// physical slot order; the walk is only stable while the collection is
// not mutated.
func (h *Heap) IterNext(r Ref) (Ref, errcode.Code) {
	it := h.Obj(r)
	h.mustTag(it, TagIterator)
	src := h.Obj(it.Seq)

	switch sequenceKind(src.Tag) {
	case ekByte:
		if it.Index >= src.Elems {
			return Nil, errcode.StopIteration
		}
		v := MakeSmallInt(int32(src.Bytes[it.Index]))
		it.Index++
		return v, errcode.OK
	case ekWord:
		if it.Index >= src.Elems {
			return Nil, errcode.StopIteration
		}
		v := MakeSmallInt(int32(src.Words[it.Index]))
		it.Index++
		return v, errcode.OK
	case ekRef:
		if it.Index >= src.Elems {
			return Nil, errcode.StopIteration
		}
		v := src.Objs[it.Index]
		it.Index++
		return v, errcode.OK
	}

	switch src.Tag {
	case TagRange:
		if it.Index >= src.Elems {
			return Nil, errcode.StopIteration
		}
		v := MakeSmallInt(src.Start + int32(it.Index)*src.Step)
		it.Index++
		return v, errcode.OK
	case TagSet, TagFrozenSet, TagDict:
		per := slotsPerEntry(src.Tag)
		for it.Index*per < len(src.Objs) {
			k := src.Objs[it.Index*per]
			it.Index++
			if k != Nil && k != tombstone {
				return k, errcode.OK
			}
		}
		return Nil, errcode.StopIteration
	default:
		h.fail(FaultTagMismatch, fmt.Sprintf("%s is not iterable", src.Tag))
		return Nil, errcode.Runtime
	}
}
