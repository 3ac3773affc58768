package object

// Handle is a stable, monotonically increasing reference to a heap
// object. Handle(0) is always invalid.
type Handle uint32

// GCHeader holds the collector's per-object bookkeeping. The collector
// owns these fields exclusively; type-specific code never touches them.
type GCHeader struct {
	Mark    uint8
	Gen     uint8
	Forward Handle // forwarding handle during compaction, 0 when unset
}

// Object is a typed heap object. The header fields (GC, Tag, Elems) are
// set before the object's handle escapes; storage fields are owned by
// the type-specific logic for the tag.
type Object struct {
	GC      GCHeader
	Tag     TypeTag
	Alive   bool
	AllocID uint64

	// Elems is the live element count for sequences and hash
	// collections. Capacity is the length of the storage slice.
	Elems int

	Int   int64   // TagInt
	Float float64 // TagFloat

	Bytes []byte   // byte sequences
	Words []uint16 // word sequences
	Objs  []Ref    // ref sequences and hash tables

	// Hash collections: used counts live entries plus tombstones, the
	// quantity the load factor is computed over.
	used int

	// TagRange
	Start, Stop, Step int32

	// TagIterator
	Seq   Ref
	Index int
}

// Capacity returns the number of element slots in the object's storage.
// For hash collections this is the table capacity, not the pair count.
func (o *Object) Capacity() int {
	switch sequenceKind(o.Tag) {
	case ekByte:
		return len(o.Bytes)
	case ekWord:
		return len(o.Words)
	case ekRef:
		return len(o.Objs)
	}
	switch o.Tag {
	case TagDict:
		return len(o.Objs) / 2
	case TagSet, TagFrozenSet:
		return len(o.Objs)
	}
	return 0
}

// storageBytes returns the payload size charged against the heap byte
// budget.
func (o *Object) storageBytes() int {
	return len(o.Bytes) + 2*len(o.Words) + 4*len(o.Objs)
}
