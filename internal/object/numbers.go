package object

// NewInt allocates a boxed 64-bit integer. Returns Nil when the budget
// is exhausted.
func (h *Heap) NewInt(v int64) Ref {
	handle, obj := h.alloc(TagInt, 8)
	if obj == nil {
		return Nil
	}
	obj.Int = v
	return handle.Ref()
}

// NewFloat allocates a boxed 64-bit float. Returns Nil when the budget
// is exhausted.
func (h *Heap) NewFloat(v float64) Ref {
	handle, obj := h.alloc(TagFloat, 8)
	if obj == nil {
		return Nil
	}
	obj.Float = v
	return handle.Ref()
}

// MakeInt returns the most compact representation of v: an immediate
// small integer when it fits, a boxed integer otherwise. Returns Nil
// when boxing fails.
func (h *Heap) MakeInt(v int64) Ref {
	if FitsSmallInt(v) {
		return MakeSmallInt(int32(v))
	}
	return h.NewInt(v)
}

// IntValue extracts an integer from a small or boxed integer ref.
// Booleans are not integers here: native argument marshaling depends on
// the distinction.
func (h *Heap) IntValue(r Ref) (int64, bool) {
	if r.IsSmallInt() {
		return int64(SmallIntValue(r)), true
	}
	if r.IsImmediate() || r == Nil {
		return 0, false
	}
	obj := h.Get(r.Handle())
	if obj.Tag != TagInt {
		return 0, false
	}
	return obj.Int, true
}

// FloatValue extracts the value of a boxed float ref.
func (h *Heap) FloatValue(r Ref) (float64, bool) {
	if r.IsImmediate() || r == Nil {
		return 0, false
	}
	obj := h.Get(r.Handle())
	if obj.Tag != TagFloat {
		return 0, false
	}
	return obj.Float, true
}
