package object

import (
	"fmt"

	"ember/internal/errcode"
	"ember/internal/trace"
)

// Hash collections store their sparse table in the object's ref
// storage. Dicts interleave key/value pairs (key at 2i, value at 2i+1),
// sets use one slot per item. Slot states: Nil = never used, tombstone
// = deleted. Probing is triangular over a power-of-two table, so every
// slot is visited exactly once.
//
// The load factor counts live entries plus tombstones and is kept at or
// below 2/3; crossing the threshold rehashes into a table of at least
// double the capacity, dropping tombstones.

const (
	minTableCap = 8
	loadNum     = 2
	loadDen     = 3
)

func nextPow2(n int) int {
	c := minTableCap
	for c < n {
		c *= 2
	}
	return c
}

// tableCapFor returns the smallest table capacity keeping n entries
// under the load threshold.
func tableCapFor(n int) int {
	if n < 1 {
		n = 1
	}
	return nextPow2((n*loadDen + loadNum - 1) / loadNum)
}

// slotsPerEntry is 2 for dicts, 1 for sets.
func slotsPerEntry(tag TypeTag) int {
	if tag == TagDict {
		return 2
	}
	return 1
}

// newHashTable allocates a hash object with a table sized for size
// entries.
func (h *Heap) newHashTable(tag TypeTag, size int) Ref {
	capacity := tableCapFor(size)
	slots := capacity * slotsPerEntry(tag)
	handle, obj := h.alloc(tag, 4*slots)
	if obj == nil {
		return Nil
	}
	obj.Objs = make([]Ref, slots)
	return handle.Ref()
}

// NewDict creates an empty mapping with space for size key/value pairs
// before the first rehash. Returns Nil on allocation failure.
func (h *Heap) NewDict(size int) Ref {
	return h.newHashTable(TagDict, size)
}

// NewSet creates a mutable set initialized from items. Duplicates
// collapse. Returns Nil on allocation failure.
func (h *Heap) NewSet(items []Ref) Ref {
	return h.newSet(TagSet, items)
}

// NewFrozenSet creates an immutable set initialized from items.
// Duplicates collapse; mutation after construction is rejected with the
// unsupported-operation result code. Returns Nil on allocation failure.
func (h *Heap) NewFrozenSet(items []Ref) Ref {
	return h.newSet(TagFrozenSet, items)
}

// NewEmptySet creates a mutable set with space for size items.
func (h *Heap) NewEmptySet(size int) Ref {
	return h.newHashTable(TagSet, size)
}

func (h *Heap) newSet(tag TypeTag, items []Ref) Ref {
	r := h.newHashTable(tag, len(items))
	if r == Nil {
		return Nil
	}
	for _, item := range items {
		if code := h.hashPut(r, item, Nil, true); code != errcode.OK {
			return Nil
		}
	}
	return r
}

// probeNext advances the triangular probe sequence.
func probeNext(slot, step, mask uint32) (uint32, uint32) {
	step++
	return (slot + step) & mask, step
}

// findSlot locates key in the table. Returns the matching entry index
// or, if absent, the index where an insert should go (first tombstone
// on the probe path, else the empty slot reached).
func (h *Heap) findSlot(obj *Object, key Ref, hash uint32) (idx int, found bool) {
	per := slotsPerEntry(obj.Tag)
	capacity := len(obj.Objs) / per
	mask := uint32(capacity - 1)
	slot := hash & mask
	step := uint32(0)
	insert := -1
	for {
		k := obj.Objs[int(slot)*per]
		switch k {
		case Nil:
			if insert >= 0 {
				return insert, false
			}
			return int(slot), false
		case tombstone:
			if insert < 0 {
				insert = int(slot)
			}
		default:
			if h.Equal(k, key) {
				return int(slot), true
			}
		}
		slot, step = probeNext(slot, step, mask)
	}
}

// hashPut inserts or replaces an entry. force bypasses the frozen check
// during construction.
func (h *Heap) hashPut(r Ref, key, value Ref, force bool) errcode.Code {
	obj := h.Obj(r)
	if !obj.Tag.IsHashTable() {
		h.fail(FaultTagMismatch, fmt.Sprintf("%s is not a hash collection", obj.Tag))
	}
	if obj.Tag == TagFrozenSet && !force {
		return errcode.Unsupported
	}
	hash, ok := h.Hash(key)
	if !ok {
		return errcode.Type
	}
	per := slotsPerEntry(obj.Tag)
	capacity := len(obj.Objs) / per

	idx, found := h.findSlot(obj, key, hash)
	if found {
		if per == 2 {
			obj.Objs[idx*per+1] = value
		}
		return errcode.OK
	}

	// Rehash before the insert if it would push the load factor,
	// tombstones included, over the threshold.
	reusesTombstone := obj.Objs[idx*per] == tombstone
	used := obj.used
	if !reusesTombstone {
		used++
	}
	if used*loadDen > capacity*loadNum {
		if code := h.rehash(obj); code != errcode.OK {
			return code
		}
		idx, _ = h.findSlot(obj, key, hash)
		reusesTombstone = false
	}

	obj.Objs[idx*per] = key
	if per == 2 {
		obj.Objs[idx*per+1] = value
	}
	if !reusesTombstone {
		obj.used++
	}
	obj.Elems++
	return errcode.OK
}

// rehash replaces the table with one of at least double the capacity,
// reinserting live entries and dropping tombstones.
func (h *Heap) rehash(obj *Object) errcode.Code {
	per := slotsPerEntry(obj.Tag)
	oldTable := obj.Objs
	oldCap := len(oldTable) / per
	newCap := nextPow2(oldCap * 2)

	growth := 4 * (newCap - oldCap) * per
	if h.maxBytes > 0 && h.liveBytes+growth > h.maxBytes {
		h.tracer.Emit(trace.LevelError, "rehash-fail",
			fmt.Sprintf("%s %d -> %d slots over budget", obj.Tag, oldCap, newCap))
		return errcode.Runtime
	}

	obj.Objs = make([]Ref, newCap*per)
	obj.used = 0
	obj.Elems = 0
	h.recharge(4*oldCap*per, 4*newCap*per)
	for i := 0; i < oldCap; i++ {
		k := oldTable[i*per]
		if k == Nil || k == tombstone {
			continue
		}
		hash, _ := h.Hash(k)
		idx, _ := h.findSlot(obj, k, hash)
		obj.Objs[idx*per] = k
		if per == 2 {
			obj.Objs[idx*per+1] = oldTable[i*per+1]
		}
		obj.used++
		obj.Elems++
	}
	if h.tracer.Enabled(trace.LevelEvent) {
		h.tracer.Emit(trace.LevelEvent, "rehash",
			fmt.Sprintf("%s %d -> %d slots, %d live", obj.Tag, oldCap, newCap, obj.Elems))
	}
	return errcode.OK
}

// hashGet returns the entry index for key, or -1.
func (h *Heap) hashGet(r Ref, key Ref) (*Object, int) {
	obj := h.Obj(r)
	if !obj.Tag.IsHashTable() {
		h.fail(FaultTagMismatch, fmt.Sprintf("%s is not a hash collection", obj.Tag))
	}
	hash, ok := h.Hash(key)
	if !ok {
		return obj, -1
	}
	idx, found := h.findSlot(obj, key, hash)
	if !found {
		return obj, -1
	}
	return obj, idx
}

// DictPut associates key with value in a mapping. The key must be
// hashable. Returns OK, Type for an unhashable key, or Runtime when a
// needed rehash does not fit the budget.
func (h *Heap) DictPut(r Ref, key, value Ref) errcode.Code {
	obj := h.Obj(r)
	h.mustTag(obj, TagDict)
	return h.hashPut(r, key, value, false)
}

// DictGet returns the value for key, or Nil if absent.
func (h *Heap) DictGet(r Ref, key Ref) Ref {
	obj, idx := h.hashGet(r, key)
	h.mustTag(obj, TagDict)
	if idx < 0 {
		return Nil
	}
	return obj.Objs[idx*2+1]
}

// DictDel removes key, marking its slot as a tombstone so probe chains
// through it stay intact. Returns the removed value, or Nil if absent.
func (h *Heap) DictDel(r Ref, key Ref) Ref {
	obj, idx := h.hashGet(r, key)
	h.mustTag(obj, TagDict)
	if idx < 0 {
		return Nil
	}
	v := obj.Objs[idx*2+1]
	obj.Objs[idx*2] = tombstone
	obj.Objs[idx*2+1] = Nil
	obj.Elems--
	return v
}

// SetPut adds item to a set. Adding an existing item is a no-op.
// Mutating a frozenset returns Unsupported.
func (h *Heap) SetPut(r Ref, item Ref) errcode.Code {
	obj := h.Obj(r)
	h.mustTag(obj, TagSet, TagFrozenSet)
	return h.hashPut(r, item, Nil, false)
}

// SetContains returns item if present in a set or frozenset, Nil
// otherwise.
func (h *Heap) SetContains(r Ref, item Ref) Ref {
	obj, idx := h.hashGet(r, item)
	h.mustTag(obj, TagSet, TagFrozenSet)
	if idx < 0 {
		return Nil
	}
	return obj.Objs[idx]
}

// SetDel removes item from a mutable set, returning the removed item or
// Nil if absent. Deleting from a frozenset returns Unsupported and
// changes nothing.
func (h *Heap) SetDel(r Ref, item Ref) (Ref, errcode.Code) {
	obj := h.Obj(r)
	h.mustTag(obj, TagSet, TagFrozenSet)
	if obj.Tag == TagFrozenSet {
		return Nil, errcode.Unsupported
	}
	_, idx := h.hashGet(r, item)
	if idx < 0 {
		return Nil, errcode.OK
	}
	removed := obj.Objs[idx]
	obj.Objs[idx] = tombstone
	obj.Elems--
	return removed, errcode.OK
}

// HashLen returns the number of live entries in a hash collection.
func (h *Heap) HashLen(r Ref) int {
	obj := h.Obj(r)
	if !obj.Tag.IsHashTable() {
		h.fail(FaultTagMismatch, fmt.Sprintf("%s is not a hash collection", obj.Tag))
	}
	return obj.Elems
}

// DictEntry is one key/value pair in physical slot order.
type DictEntry struct {
	Key   Ref
	Value Ref
}

// DictEntries returns the live entries in physical slot order. The
// order is stable between mutations only.
func (h *Heap) DictEntries(r Ref) []DictEntry {
	obj := h.Obj(r)
	h.mustTag(obj, TagDict)
	entries := make([]DictEntry, 0, obj.Elems)
	for i := 0; i*2 < len(obj.Objs); i++ {
		k := obj.Objs[i*2]
		if k == Nil || k == tombstone {
			continue
		}
		entries = append(entries, DictEntry{Key: k, Value: obj.Objs[i*2+1]})
	}
	return entries
}

// SetItems returns the live items in physical slot order. The order is
// stable between mutations only.
func (h *Heap) SetItems(r Ref) []Ref {
	obj := h.Obj(r)
	h.mustTag(obj, TagSet, TagFrozenSet)
	return h.setSlots(obj)
}

func (h *Heap) setSlots(obj *Object) []Ref {
	items := make([]Ref, 0, obj.Elems)
	for _, k := range obj.Objs {
		if k == Nil || k == tombstone {
			continue
		}
		items = append(items, k)
	}
	return items
}
