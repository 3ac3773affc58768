package object

import "fmt"

// Verify runs the structural invariants over every live object:
//  1. sequences satisfy elems <= capacity, immutable ones elems == capacity
//  2. every ref stored in a container resolves to a live object
//  3. hash collections keep their load factor at or below the threshold
//     and their element count matches the live slots
//
// Used by tests and by the snapshot checker.
func (h *Heap) Verify() error {
	for handle := Handle(1); handle < h.next; handle++ {
		obj, ok := h.lookup(handle)
		if !ok || !obj.Alive {
			continue
		}
		if err := h.verifyObject(handle, obj); err != nil {
			return err
		}
	}
	return nil
}

func (h *Heap) verifyObject(handle Handle, obj *Object) error {
	if obj.Tag.IsSequence() {
		if obj.Elems > obj.Capacity() {
			return fmt.Errorf("handle %d: %s elems %d exceeds capacity %d",
				handle, obj.Tag, obj.Elems, obj.Capacity())
		}
		if !obj.Tag.Mutable() && obj.Elems != obj.Capacity() {
			return fmt.Errorf("handle %d: immutable %s elems %d != capacity %d",
				handle, obj.Tag, obj.Elems, obj.Capacity())
		}
		if sequenceKind(obj.Tag) == ekRef {
			for i, r := range obj.Objs[:obj.Elems] {
				if err := h.verifyRef(handle, i, r); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if obj.Tag.IsHashTable() {
		per := slotsPerEntry(obj.Tag)
		capacity := len(obj.Objs) / per
		if capacity != 0 && capacity&(capacity-1) != 0 {
			return fmt.Errorf("handle %d: %s table capacity %d not a power of two",
				handle, obj.Tag, capacity)
		}
		live, used := 0, 0
		for i := 0; i < capacity; i++ {
			k := obj.Objs[i*per]
			if k == Nil {
				continue
			}
			used++
			if k == tombstone {
				continue
			}
			live++
			if err := h.verifyRef(handle, i, k); err != nil {
				return err
			}
			if per == 2 {
				if err := h.verifyRef(handle, i, obj.Objs[i*per+1]); err != nil {
					return err
				}
			}
		}
		if live != obj.Elems {
			return fmt.Errorf("handle %d: %s element count %d, table holds %d",
				handle, obj.Tag, obj.Elems, live)
		}
		if used != obj.used {
			return fmt.Errorf("handle %d: %s used count %d, table holds %d",
				handle, obj.Tag, obj.used, used)
		}
		if used*loadDen > capacity*loadNum {
			return fmt.Errorf("handle %d: %s load %d/%d over threshold",
				handle, obj.Tag, used, capacity)
		}
		return nil
	}

	if obj.Tag == TagIterator {
		return h.verifyRef(handle, 0, obj.Seq)
	}
	return nil
}

func (h *Heap) verifyRef(handle Handle, slot int, r Ref) error {
	if r.IsImmediate() {
		if r.immediateTag() == TagInvalid && r != tombstone {
			return fmt.Errorf("handle %d slot %d: malformed immediate %#x", handle, slot, uint32(r))
		}
		return nil
	}
	if r == Nil {
		return nil
	}
	obj, ok := h.lookup(r.Handle())
	if !ok || !obj.Alive {
		return fmt.Errorf("handle %d slot %d: dangling ref to handle %d", handle, slot, r.Handle())
	}
	return nil
}
