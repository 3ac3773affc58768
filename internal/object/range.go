package object

// NewRange creates an arithmetic progression object. A zero step is a
// value error at a higher layer; here it returns Nil like any other
// unconstructible object.
func (h *Heap) NewRange(start, stop, step int32) Ref {
	if step == 0 {
		return Nil
	}
	handle, obj := h.alloc(TagRange, 12)
	if obj == nil {
		return Nil
	}
	obj.Start = start
	obj.Stop = stop
	obj.Step = step
	obj.Elems = rangeLen(start, stop, step)
	return handle.Ref()
}

func rangeLen(start, stop, step int32) int {
	if step > 0 {
		if stop <= start {
			return 0
		}
		return int((int64(stop) - int64(start) + int64(step) - 1) / int64(step))
	}
	if stop >= start {
		return 0
	}
	return int((int64(start) - int64(stop) - int64(step) - 1) / int64(-step))
}

// RangeAt returns the i-th element of a range. Bounds are the caller's
// contract.
func (h *Heap) RangeAt(r Ref, i int) int32 {
	obj := h.Obj(r)
	h.mustTag(obj, TagRange)
	return obj.Start + int32(i)*obj.Step
}
