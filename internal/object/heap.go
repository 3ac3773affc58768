package object

import (
	"fmt"

	"ember/internal/trace"
)

// headerBytes is the budget charge for every object independent of its
// payload, matching the fixed header of the embedded layout.
const headerBytes = 16

// Config bounds a heap. Zero limits mean unlimited.
type Config struct {
	// MaxObjects caps the number of live objects.
	MaxObjects int
	// MaxBytes caps header plus payload bytes of live objects.
	MaxBytes int
	// Tracer receives heap events; nil disables tracing.
	Tracer trace.Tracer
}

// Heap stores all runtime objects, addressed by stable handles.
// Handles are monotonically increasing and never reused within a run,
// so a stale handle is detected instead of silently aliasing a new
// object. The heap is not goroutine-safe: callers serialize access.
type Heap struct {
	next        Handle
	nextAllocID uint64
	objs        map[Handle]*Object

	liveObjects int
	liveBytes   int
	maxObjects  int
	maxBytes    int

	interned map[string]Ref

	tracer trace.Tracer
}

// NewHeap creates an empty heap with the given limits.
func NewHeap(cfg Config) *Heap {
	t := cfg.Tracer
	if t == nil {
		t = trace.Nop()
	}
	return &Heap{
		next:        1,
		nextAllocID: 1,
		objs:        make(map[Handle]*Object, 128),
		maxObjects:  cfg.MaxObjects,
		maxBytes:    cfg.MaxBytes,
		tracer:      t,
	}
}

// SetTracer attaches a tracer to an existing heap. A nil tracer
// disables tracing.
func (h *Heap) SetTracer(t trace.Tracer) {
	if t == nil {
		t = trace.Nop()
	}
	h.tracer = t
}

// LiveObjects returns the number of live objects.
func (h *Heap) LiveObjects() int { return h.liveObjects }

// LiveBytes returns the budget bytes currently charged.
func (h *Heap) LiveBytes() int { return h.liveBytes }

// fits reports whether an allocation of payload bytes stays inside the
// configured budgets.
func (h *Heap) fits(payload int) bool {
	if h.maxObjects > 0 && h.liveObjects+1 > h.maxObjects {
		return false
	}
	if h.maxBytes > 0 && h.liveBytes+headerBytes+payload > h.maxBytes {
		return false
	}
	return true
}

// alloc creates an object with a zeroed header. It returns (0, nil)
// when the budget is exhausted: allocation failure is a sentinel for
// the caller to propagate, never a panic.
func (h *Heap) alloc(tag TypeTag, payload int) (Handle, *Object) {
	if !h.fits(payload) {
		h.tracer.Emit(trace.LevelError, "alloc-fail",
			fmt.Sprintf("%s payload=%d live=%d/%d bytes=%d/%d",
				tag, payload, h.liveObjects, h.maxObjects, h.liveBytes, h.maxBytes))
		return 0, nil
	}
	handle := h.next
	h.next++
	obj := &Object{
		Tag:     tag,
		Alive:   true,
		AllocID: h.nextAllocID,
	}
	h.nextAllocID++
	h.objs[handle] = obj
	h.liveObjects++
	h.liveBytes += headerBytes + payload
	if h.tracer.Enabled(trace.LevelEvent) {
		h.tracer.Emit(trace.LevelEvent, "alloc",
			fmt.Sprintf("%s handle=%d payload=%d", tag, handle, payload))
	}
	return handle, obj
}

// recharge adjusts the byte budget after an object's storage was
// replaced (hash table rehash).
func (h *Heap) recharge(oldPayload, newPayload int) {
	h.liveBytes += newPayload - oldPayload
}

// Get resolves a handle. Invalid or reclaimed handles are internal
// faults.
func (h *Heap) Get(handle Handle) *Object {
	if handle == 0 {
		h.fail(FaultInvalidHandle, "invalid handle 0")
	}
	obj, ok := h.objs[handle]
	if !ok || obj == nil {
		h.fail(FaultInvalidHandle, fmt.Sprintf("invalid handle %d", handle))
	}
	if !obj.Alive {
		h.fail(FaultUseAfterReclaim,
			fmt.Sprintf("use after reclaim: handle %d (alloc=%d)", handle, obj.AllocID))
	}
	return obj
}

// Obj resolves a heap ref to its object. Dereferencing an immediate is
// an internal fault: immediates are never heap-allocated.
func (h *Heap) Obj(r Ref) *Object {
	if r.IsImmediate() {
		h.fail(FaultImmediateDeref, fmt.Sprintf("ref %#x is immediate", uint32(r)))
	}
	return h.Get(r.Handle())
}

// TypeOf returns the type tag of any ref, immediate or heap. Immediates
// are classified from the tag bits without touching the heap.
func (h *Heap) TypeOf(r Ref) TypeTag {
	if r.IsImmediate() {
		return r.immediateTag()
	}
	if r == Nil {
		return TagInvalid
	}
	return h.Get(r.Handle()).Tag
}

// Reclaim releases an object on behalf of the collector. Application
// logic never frees objects explicitly; this is the collector-facing
// half of the header contract. Reclaiming twice is an internal fault.
func (h *Heap) Reclaim(handle Handle) {
	obj := h.Get(handle)
	obj.Alive = false
	h.liveObjects--
	h.liveBytes -= headerBytes + obj.storageBytes()
	obj.Bytes = nil
	obj.Words = nil
	obj.Objs = nil
	if h.tracer.Enabled(trace.LevelEvent) {
		h.tracer.Emit(trace.LevelEvent, "reclaim",
			fmt.Sprintf("%s handle=%d", obj.Tag, handle))
	}
}

// Walk visits every live object in handle order.
func (h *Heap) Walk(fn func(Handle, *Object)) {
	for handle := Handle(1); handle < h.next; handle++ {
		obj, ok := h.lookup(handle)
		if !ok || !obj.Alive {
			continue
		}
		fn(handle, obj)
	}
}

// lookup is the non-panicking resolve used by snapshots and verifiers.
func (h *Heap) lookup(handle Handle) (*Object, bool) {
	obj, ok := h.objs[handle]
	return obj, ok && obj != nil
}

func (h *Heap) fail(code FaultCode, msg string) {
	h.tracer.Emit(trace.LevelError, "fault", fmt.Sprintf("%s %s", code, msg))
	panic(&Fault{Code: code, Message: msg})
}

// mustTag asserts the object kind at an API boundary.
func (h *Heap) mustTag(o *Object, want ...TypeTag) {
	for _, t := range want {
		if o.Tag == t {
			return
		}
	}
	h.fail(FaultTagMismatch, fmt.Sprintf("have %s, want %v", o.Tag, want))
}
