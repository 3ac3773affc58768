package object

import (
	"fmt"
	"strconv"
	"strings"
)

// Repr returns a printable representation of a value, used by the
// snapshot inspector and by tests. Nested containers render shallow to
// keep cyclic structures printable.
func (h *Heap) Repr(r Ref) string {
	return h.repr(r, 2)
}

func (h *Heap) repr(r Ref, depth int) string {
	if r == Nil {
		return "<nil>"
	}
	if r.IsSmallInt() {
		return strconv.FormatInt(int64(SmallIntValue(r)), 10)
	}
	switch r {
	case True:
		return "true"
	case False:
		return "false"
	case None:
		return "none"
	}
	if r.IsImmediate() {
		return fmt.Sprintf("<immediate %#x>", uint32(r))
	}

	obj := h.Get(r.Handle())
	switch obj.Tag {
	case TagInt:
		return strconv.FormatInt(obj.Int, 10)
	case TagFloat:
		return strconv.FormatFloat(obj.Float, 'g', -1, 64)
	case TagString:
		return strconv.Quote(string(obj.Bytes[:obj.Elems]))
	case TagBytes, TagByteArray:
		return fmt.Sprintf("b%s", strconv.Quote(string(obj.Bytes[:obj.Elems])))
	case TagShorts, TagShortArray:
		var sb strings.Builder
		sb.WriteString("shorts(")
		for i, w := range obj.Words[:obj.Elems] {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Itoa(int(w)))
		}
		sb.WriteString(")")
		return sb.String()
	case TagList:
		return h.reprItems(obj.Objs[:obj.Elems], "[", "]", depth)
	case TagTuple:
		return h.reprItems(obj.Objs[:obj.Elems], "(", ")", depth)
	case TagRange:
		return fmt.Sprintf("range(%d, %d, %d)", obj.Start, obj.Stop, obj.Step)
	case TagSet:
		return h.reprItems(h.setSlots(obj), "{", "}", depth)
	case TagFrozenSet:
		return "frozen" + h.reprItems(h.setSlots(obj), "{", "}", depth)
	case TagDict:
		if depth <= 0 {
			return "{...}"
		}
		var sb strings.Builder
		sb.WriteString("{")
		for i, e := range h.DictEntries(r) {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(h.repr(e.Key, depth-1))
			sb.WriteString(": ")
			sb.WriteString(h.repr(e.Value, depth-1))
		}
		sb.WriteString("}")
		return sb.String()
	case TagIterator:
		return fmt.Sprintf("<iterator @%d>", obj.Index)
	default:
		return fmt.Sprintf("<%s>", obj.Tag)
	}
}

func (h *Heap) reprItems(items []Ref, open, closer string, depth int) string {
	if depth <= 0 {
		return open + "..." + closer
	}
	var sb strings.Builder
	sb.WriteString(open)
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(h.repr(item, depth-1))
	}
	sb.WriteString(closer)
	return sb.String()
}
