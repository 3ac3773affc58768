package object

import "fmt"

// TypeTag identifies the runtime type of a value. The enumeration is
// closed: it spans the immediate kinds (small int, bool, none) and every
// heap object kind.
type TypeTag uint8

const (
	// TagInvalid represents an invalid or uninitialized tag.
	TagInvalid TypeTag = iota
	// TagSmallInt is a 30-bit signed integer, immediate.
	TagSmallInt
	// TagBool is a boolean, immediate.
	TagBool
	// TagNone is the none value, immediate.
	TagNone
	// TagInt is a boxed 64-bit signed integer.
	TagInt
	// TagFloat is a boxed 64-bit float.
	TagFloat
	// TagString is an immutable byte sequence holding text.
	TagString
	// TagBytes is an immutable byte sequence.
	TagBytes
	// TagByteArray is a mutable byte sequence.
	TagByteArray
	// TagShorts is an immutable 16-bit word sequence.
	TagShorts
	// TagShortArray is a mutable 16-bit word sequence.
	TagShortArray
	// TagList is a mutable ref sequence.
	TagList
	// TagTuple is an immutable ref sequence.
	TagTuple
	// TagRange is an arithmetic progression.
	TagRange
	// TagSet is a mutable hash set.
	TagSet
	// TagFrozenSet is an immutable hash set.
	TagFrozenSet
	// TagDict is a mutable hash mapping.
	TagDict
	// TagFunction is a bytecode function.
	TagFunction
	// TagMethod is a bound method.
	TagMethod
	// TagClass is a class.
	TagClass
	// TagInstance is a class instance.
	TagInstance
	// TagModule is a loaded module.
	TagModule
	// TagBuffer is a raw memory buffer.
	TagBuffer
	// TagSlice is a slice descriptor.
	TagSlice
	// TagIterator is a sequence iterator.
	TagIterator
	// TagFrame is an execution frame.
	TagFrame
	// TagNative is a native function.
	TagNative
	// TagThread is an interpreter thread.
	TagThread
)

var tagNames = [...]string{
	TagInvalid:    "invalid",
	TagSmallInt:   "smallint",
	TagBool:       "bool",
	TagNone:       "none",
	TagInt:        "int",
	TagFloat:      "float",
	TagString:     "string",
	TagBytes:      "bytes",
	TagByteArray:  "bytearray",
	TagShorts:     "shorts",
	TagShortArray: "shortarray",
	TagList:       "list",
	TagTuple:      "tuple",
	TagRange:      "range",
	TagSet:        "set",
	TagFrozenSet:  "frozenset",
	TagDict:       "dict",
	TagFunction:   "function",
	TagMethod:     "method",
	TagClass:      "class",
	TagInstance:   "instance",
	TagModule:     "module",
	TagBuffer:     "buffer",
	TagSlice:      "slice",
	TagIterator:   "iterator",
	TagFrame:      "frame",
	TagNative:     "native",
	TagThread:     "thread",
}

// String returns a human-readable name for the tag.
func (t TypeTag) String() string {
	if int(t) < len(tagNames) && tagNames[t] != "" {
		return tagNames[t]
	}
	return fmt.Sprintf("TypeTag(%d)", uint8(t))
}

// elemKind classifies sequence storage.
type elemKind uint8

const (
	ekNone elemKind = iota
	ekByte
	ekWord
	ekRef
)

// sequenceKind returns the storage kind for a sequence tag, ekNone for
// non-sequence tags.
func sequenceKind(t TypeTag) elemKind {
	switch t {
	case TagString, TagBytes, TagByteArray:
		return ekByte
	case TagShorts, TagShortArray:
		return ekWord
	case TagList, TagTuple:
		return ekRef
	default:
		return ekNone
	}
}

// IsSequence reports whether the tag is one of the sequence kinds.
func (t TypeTag) IsSequence() bool { return sequenceKind(t) != ekNone }

// IsHashTable reports whether the tag is one of the hash collection kinds.
func (t TypeTag) IsHashTable() bool {
	return t == TagDict || t == TagSet || t == TagFrozenSet
}

// Mutable reports whether values of this tag may be modified after
// construction.
func (t TypeTag) Mutable() bool {
	switch t {
	case TagByteArray, TagShortArray, TagList, TagSet, TagDict,
		TagInstance, TagModule, TagBuffer, TagFrame, TagThread:
		return true
	default:
		return false
	}
}
