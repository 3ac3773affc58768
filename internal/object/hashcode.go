package object

import (
	"bytes"
	"math"
)

// Canonical hashing for hash collection keys. The hard invariant: two
// refs that compare Equal must produce the same hash. Numbers hash by
// numeric value regardless of representation, so small int 5, boxed
// int 5 and float 5.0 land in the same slot.

const (
	fnvOffset uint32 = 2166136261
	fnvPrime  uint32 = 16777619
)

// fnv1a hashes a byte slice. Inlined instead of hash/fnv to keep the
// probe path allocation-free.
func fnv1a(b []byte) uint32 {
	x := fnvOffset
	for _, c := range b {
		x ^= uint32(c)
		x *= fnvPrime
	}
	return x
}

func hashInt64(v int64) uint32 {
	u := uint64(v)
	return uint32(u ^ u>>32)
}

// Hashable reports whether a hash can be computed for r. Mutable
// collections and mutable sequences are not hashable.
func (h *Heap) Hashable(r Ref) bool {
	_, ok := h.Hash(r)
	return ok
}

// Hash computes the canonical hash of r. The second result is false
// when r is unhashable.
func (h *Heap) Hash(r Ref) (uint32, bool) {
	if r.IsSmallInt() {
		return hashInt64(int64(SmallIntValue(r))), true
	}
	switch r {
	case False:
		return hashInt64(0), true
	case True:
		return hashInt64(1), true
	case None:
		return 0x9e3779b9, true
	case Nil:
		return 0, false
	}
	if r.IsImmediate() {
		return 0, false
	}
	obj := h.Get(r.Handle())
	switch obj.Tag {
	case TagInt:
		return hashInt64(obj.Int), true
	case TagFloat:
		f := obj.Float
		if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
			return hashInt64(int64(f)), true
		}
		bits := math.Float64bits(f)
		return uint32(bits ^ bits>>32), true
	case TagString, TagBytes:
		return fnv1a(obj.Bytes[:obj.Elems]), true
	case TagShorts:
		x := fnvOffset
		for _, w := range obj.Words[:obj.Elems] {
			x ^= uint32(w)
			x *= fnvPrime
		}
		return x, true
	case TagTuple:
		x := uint32(0x345678)
		for _, item := range obj.Objs[:obj.Elems] {
			ih, ok := h.Hash(item)
			if !ok {
				return 0, false
			}
			x = (x ^ ih) * fnvPrime
		}
		return x ^ uint32(obj.Elems), true
	case TagFrozenSet:
		// Order independent: iteration order is physical slot order,
		// which differs between equal sets built differently.
		var x uint32
		for _, item := range h.setSlots(obj) {
			ih, _ := h.Hash(item)
			x ^= ih*fnvPrime + 1
		}
		return x ^ uint32(obj.Elems), true
	default:
		return 0, false
	}
}

// Equal reports whether two refs compare equal as collection keys.
// Immediate constants compare by identity; numbers compare by value
// across representations; strings, bytes and tuples compare by content.
func (h *Heap) Equal(a, b Ref) bool {
	if a == b {
		return true
	}
	if ai, ok := h.IntValue(a); ok {
		if bi, ok := h.IntValue(b); ok {
			return ai == bi
		}
		if bf, ok := h.FloatValue(b); ok {
			return float64(ai) == bf
		}
		return false
	}
	if af, ok := h.FloatValue(a); ok {
		if bi, ok := h.IntValue(b); ok {
			return af == float64(bi)
		}
		if bf, ok := h.FloatValue(b); ok {
			return af == bf
		}
		return false
	}
	if a.IsImmediate() || b.IsImmediate() || a == Nil || b == Nil {
		return false
	}
	ao := h.Get(a.Handle())
	bo := h.Get(b.Handle())
	switch {
	case ao.Tag == TagString && bo.Tag == TagString,
		ao.Tag == TagBytes && bo.Tag == TagBytes:
		return bytes.Equal(ao.Bytes[:ao.Elems], bo.Bytes[:bo.Elems])
	case ao.Tag == TagShorts && bo.Tag == TagShorts:
		if ao.Elems != bo.Elems {
			return false
		}
		for i := 0; i < ao.Elems; i++ {
			if ao.Words[i] != bo.Words[i] {
				return false
			}
		}
		return true
	case ao.Tag == TagTuple && bo.Tag == TagTuple:
		if ao.Elems != bo.Elems {
			return false
		}
		for i := 0; i < ao.Elems; i++ {
			if !h.Equal(ao.Objs[i], bo.Objs[i]) {
				return false
			}
		}
		return true
	case ao.Tag == TagFrozenSet && bo.Tag == TagFrozenSet:
		if ao.Elems != bo.Elems {
			return false
		}
		for _, item := range h.setSlots(ao) {
			if h.SetContains(b, item) == Nil {
				return false
			}
		}
		return true
	default:
		// Everything else compares by identity, handled above.
		return false
	}
}

