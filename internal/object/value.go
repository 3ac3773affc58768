// Package object implements the value representation and the dynamic
// collections of the runtime: immediate values packed into a single
// machine word, a handle-addressed heap of typed objects, byte/word/ref
// sequences in mutable and immutable flavors, and open-addressing hash
// collections.
package object

// Ref is the uniform reference type for all runtime values, one 32-bit
// machine word. If the low bit is 1 the ref is an immediate and the
// whole value lives in the word; otherwise the word is a shifted heap
// handle. Handle 0 never refers to an object, so Nil (the zero Ref) is
// a safe not-found sentinel.
//
// Immediate layout:
//
//	bits  1..0 = 01  small integer, signed value in bits 31..2
//	bits  3..0 = 0011  False
//	bits  3..0 = 0111  True
//	bits  3..0 = 1011  None
type Ref uint32

const (
	tagImmediate Ref = 0x1
	tagSpecial   Ref = 0x2

	// Nil is the reserved null ref: not a valid value, used as the
	// not-found / allocation-failure sentinel.
	Nil Ref = 0

	// False, True and None are fixed immediate constants. Equality for
	// them is ref identity.
	False Ref = 0x3
	True  Ref = 0x7
	None  Ref = 0xB

	// tombstone marks a deleted hash table slot. Internal: it never
	// escapes the collection code.
	tombstone Ref = 0xF
)

// Small integer bounds: 30-bit signed.
const (
	MaxSmallInt = 1<<29 - 1
	MinSmallInt = -(1 << 29)
)

// IsImmediate reports whether r is fully encoded in the word. Single
// bit test.
func (r Ref) IsImmediate() bool { return r&tagImmediate != 0 }

// IsSmallInt reports whether r is an immediate small integer.
func (r Ref) IsSmallInt() bool { return r&(tagImmediate|tagSpecial) == tagImmediate }

// IsBool reports whether r is the True or False constant.
func (r Ref) IsBool() bool { return r == True || r == False }

// MakeSmallInt packs v into an immediate ref. No overflow check is
// done: callers must verify FitsSmallInt first, values outside the
// 30-bit range wrap silently.
func MakeSmallInt(v int32) Ref {
	return Ref(uint32(v))<<2 | tagImmediate
}

// SmallIntValue unpacks an immediate small integer. Defined only when
// r.IsSmallInt().
func SmallIntValue(r Ref) int32 {
	return int32(r) >> 2
}

// FitsSmallInt reports whether v survives a MakeSmallInt round trip.
func FitsSmallInt(v int64) bool {
	return v >= MinSmallInt && v <= MaxSmallInt
}

// MakeBool returns the boolean constant for b.
func MakeBool(b bool) Ref {
	if b {
		return True
	}
	return False
}

// Handle extracts the heap handle from a non-immediate ref.
func (r Ref) Handle() Handle { return Handle(r >> 1) }

// Ref converts a handle back to its ref. Heap allocation guarantees the
// low bit of the result is 0.
func (h Handle) Ref() Ref { return Ref(h) << 1 }

// immediateTag returns the type tag of an immediate ref without touching
// the heap.
func (r Ref) immediateTag() TypeTag {
	if r.IsSmallInt() {
		return TagSmallInt
	}
	switch r {
	case True, False:
		return TagBool
	case None:
		return TagNone
	default:
		return TagInvalid
	}
}
