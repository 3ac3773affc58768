// Package irq provides the signaling primitive available to restricted
// interrupt-style callbacks. Code running in that context must not
// allocate and must not touch the heap; it may only post pre-encoded
// refs into a mailbox for the main execution context to drain later.
package irq

import (
	"sync/atomic"

	"ember/internal/object"
)

// Mailbox is a fixed-capacity single-producer single-consumer ring of
// refs. All storage is allocated at construction; Post never allocates,
// so it is safe to call from a completion callback.
type Mailbox struct {
	slots []atomic.Uint32
	mask  uint32
	head  atomic.Uint32 // next slot to read
	tail  atomic.Uint32 // next slot to write
}

// NewMailbox creates a mailbox holding at least capacity refs.
func NewMailbox(capacity int) *Mailbox {
	size := 8
	for size < capacity {
		size *= 2
	}
	return &Mailbox{
		slots: make([]atomic.Uint32, size),
		mask:  uint32(size - 1),
	}
}

// Cap returns the mailbox capacity.
func (m *Mailbox) Cap() int { return len(m.slots) }

// Len returns the number of posted, undrained refs.
func (m *Mailbox) Len() int {
	return int(m.tail.Load() - m.head.Load())
}

// Post appends r from the producer side. Returns false when the ring is
// full; the producer drops the event rather than blocking, interrupt
// context never waits.
func (m *Mailbox) Post(r object.Ref) bool {
	tail := m.tail.Load()
	if tail-m.head.Load() >= uint32(len(m.slots)) {
		return false
	}
	m.slots[tail&m.mask].Store(uint32(r))
	m.tail.Store(tail + 1)
	return true
}

// Take removes the oldest posted ref from the consumer side.
func (m *Mailbox) Take() (object.Ref, bool) {
	head := m.head.Load()
	if head == m.tail.Load() {
		return object.Nil, false
	}
	r := object.Ref(m.slots[head&m.mask].Load())
	m.head.Store(head + 1)
	return r, true
}

// Drain passes every pending ref to fn in post order and returns the
// count drained.
func (m *Mailbox) Drain(fn func(object.Ref)) int {
	n := 0
	for {
		r, ok := m.Take()
		if !ok {
			return n
		}
		fn(r)
		n++
	}
}
