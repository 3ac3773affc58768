package object

import "golang.org/x/text/unicode/norm"

// Intern returns the canonical string object for an identifier or
// attribute name. Names are NFKC-normalized first, so two source
// spellings of the same identifier share one object and attribute
// lookup can compare by ref identity. Returns Nil on allocation
// failure; the miss is not cached.
func (h *Heap) Intern(name string) Ref {
	key := norm.NFKC.String(name)
	if h.interned == nil {
		h.interned = make(map[string]Ref, 64)
	}
	if r, ok := h.interned[key]; ok {
		return r
	}
	r := h.NewString(key)
	if r == Nil {
		return Nil
	}
	h.interned[key] = r
	return r
}

// InternedCount returns the number of distinct interned names.
func (h *Heap) InternedCount() int { return len(h.interned) }
