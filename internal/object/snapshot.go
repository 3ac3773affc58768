package object

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"ember/internal/trace"
)

// Current schema version - increment when SnapshotRecord format changes.
const snapshotSchemaVersion uint16 = 1

// SnapshotRecord is the serialized form of one live heap object.
// Tombstone and empty table slots travel inside Objs unchanged, so a
// restored hash collection keeps its physical slot order.
type SnapshotRecord struct {
	Handle  uint32
	Tag     uint8
	AllocID uint64
	Elems   int

	Int   int64    `msgpack:",omitempty"`
	Float float64  `msgpack:",omitempty"`
	Bytes []byte   `msgpack:",omitempty"`
	Words []uint16 `msgpack:",omitempty"`
	Objs  []uint32 `msgpack:",omitempty"`

	Start int32 `msgpack:",omitempty"`
	Stop  int32 `msgpack:",omitempty"`
	Step  int32 `msgpack:",omitempty"`

	Seq   uint32 `msgpack:",omitempty"`
	Index int    `msgpack:",omitempty"`
}

// SnapshotPayload is the on-disk heap image.
type SnapshotPayload struct {
	// Schema version for safe invalidation when the format changes.
	Schema uint16

	NextHandle  uint32
	NextAllocID uint64
	Records     []SnapshotRecord
}

// WriteSnapshot serializes every live object in handle order. The
// result is deterministic for a given heap state.
func (h *Heap) WriteSnapshot(w io.Writer) error {
	payload := SnapshotPayload{
		Schema:      snapshotSchemaVersion,
		NextHandle:  uint32(h.next),
		NextAllocID: h.nextAllocID,
	}
	for handle := Handle(1); handle < h.next; handle++ {
		obj, ok := h.lookup(handle)
		if !ok || !obj.Alive {
			continue
		}
		rec := SnapshotRecord{
			Handle:  uint32(handle),
			Tag:     uint8(obj.Tag),
			AllocID: obj.AllocID,
			Elems:   obj.Elems,
			Int:     obj.Int,
			Float:   obj.Float,
			Bytes:   obj.Bytes,
			Words:   obj.Words,
			Start:   obj.Start,
			Stop:    obj.Stop,
			Step:    obj.Step,
			Seq:     uint32(obj.Seq),
			Index:   obj.Index,
		}
		if obj.Objs != nil {
			rec.Objs = make([]uint32, len(obj.Objs))
			for i, r := range obj.Objs {
				rec.Objs[i] = uint32(r)
			}
		}
		payload.Records = append(payload.Records, rec)
	}
	if err := msgpack.NewEncoder(w).Encode(&payload); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	h.tracer.Emit(trace.LevelEvent, "snapshot",
		fmt.Sprintf("%d records", len(payload.Records)))
	return nil
}

// ReadSnapshot reconstructs a heap from a snapshot stream. The restored
// heap has no budget limits; attach limits by copying objects into a
// configured heap if needed.
func ReadSnapshot(r io.Reader) (*Heap, error) {
	var payload SnapshotPayload
	if err := msgpack.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if payload.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("snapshot schema %d, want %d", payload.Schema, snapshotSchemaVersion)
	}
	h := NewHeap(Config{})
	for _, rec := range payload.Records {
		if rec.Handle == 0 || Handle(rec.Handle) >= Handle(payload.NextHandle) {
			return nil, fmt.Errorf("snapshot record with handle %d out of range", rec.Handle)
		}
		if _, dup := h.objs[Handle(rec.Handle)]; dup {
			return nil, fmt.Errorf("duplicate handle %d in snapshot", rec.Handle)
		}
		obj := &Object{
			Tag:     TypeTag(rec.Tag),
			Alive:   true,
			AllocID: rec.AllocID,
			Elems:   rec.Elems,
			Int:     rec.Int,
			Float:   rec.Float,
			Bytes:   rec.Bytes,
			Words:   rec.Words,
			Start:   rec.Start,
			Stop:    rec.Stop,
			Step:    rec.Step,
			Seq:     Ref(rec.Seq),
			Index:   rec.Index,
		}
		if rec.Objs != nil {
			obj.Objs = make([]Ref, len(rec.Objs))
			for i, v := range rec.Objs {
				obj.Objs[i] = Ref(v)
			}
		}
		if obj.Tag.IsHashTable() {
			obj.used = countUsedSlots(obj)
		}
		h.objs[Handle(rec.Handle)] = obj
		h.liveObjects++
		h.liveBytes += headerBytes + obj.storageBytes()
	}
	h.next = Handle(payload.NextHandle)
	h.nextAllocID = payload.NextAllocID
	return h, nil
}

// countUsedSlots rederives the live-plus-tombstone count after a load.
func countUsedSlots(obj *Object) int {
	per := slotsPerEntry(obj.Tag)
	used := 0
	for i := 0; i*per < len(obj.Objs); i++ {
		if obj.Objs[i*per] != Nil {
			used++
		}
	}
	return used
}
