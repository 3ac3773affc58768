// Package native implements the argument-marshaling protocol between
// the interpreter and compiled extension routines. A format string
// drives the conversion of an argument array into native scalars and
// buffers, one character per argument position:
//
//	l  integer            -> *int64
//	L  optional integer   -> default int64, *int64
//	i  integer            -> *int32
//	I  optional integer   -> default int32, *int32
//	f  float              -> *float64
//	F  optional float     -> default float64, *float64
//	s  string/bytes       -> *[]byte, *int32 (no copy)
//	S  optional of same   -> default []byte, *[]byte, *int32
//	b  like s             -> *[]byte, *int32, max length
//	B  like S             -> default []byte, *[]byte, *int32, max length
//
// Optional codes consume their default when fewer arguments than format
// positions are supplied. ParseArgs returns the number of positions
// converted; callers compare it against the format length to detect a
// type mismatch, which stops conversion at the offending position.
package native

import (
	"fmt"

	"fortio.org/safecast"

	"ember/internal/object"
)

// outSink hands out the variadic output slots in order. A missing or
// mis-typed slot is a programming error in the native routine, not a
// runtime condition, and panics.
type outSink struct {
	format string
	slots  []any
	next   int
}

func (o *outSink) take(pos int) any {
	if o.next >= len(o.slots) {
		panic(fmt.Sprintf("native: format %q position %d: out of output slots", o.format, pos))
	}
	v := o.slots[o.next]
	o.next++
	return v
}

func (o *outSink) int64Ptr(pos int) *int64 {
	p, ok := o.take(pos).(*int64)
	if !ok {
		badSlot(o.format, pos, "*int64")
	}
	return p
}

func (o *outSink) int32Ptr(pos int) *int32 {
	p, ok := o.take(pos).(*int32)
	if !ok {
		badSlot(o.format, pos, "*int32")
	}
	return p
}

func (o *outSink) float64Ptr(pos int) *float64 {
	p, ok := o.take(pos).(*float64)
	if !ok {
		badSlot(o.format, pos, "*float64")
	}
	return p
}

func (o *outSink) bytesPtr(pos int) *[]byte {
	p, ok := o.take(pos).(*[]byte)
	if !ok {
		badSlot(o.format, pos, "*[]byte")
	}
	return p
}

func (o *outSink) int64Default(pos int) int64 {
	switch v := o.take(pos).(type) {
	case int64:
		return v
	case int:
		return int64(v)
	default:
		badSlot(o.format, pos, "int64 default")
		return 0
	}
}

func (o *outSink) int32Default(pos int) int32 {
	switch v := o.take(pos).(type) {
	case int32:
		return v
	case int:
		n, err := safecast.Conv[int32](v)
		if err != nil {
			badSlot(o.format, pos, "int32 default in range")
		}
		return n
	default:
		badSlot(o.format, pos, "int32 default")
		return 0
	}
}

func (o *outSink) float64Default(pos int) float64 {
	v, ok := o.take(pos).(float64)
	if !ok {
		badSlot(o.format, pos, "float64 default")
	}
	return v
}

func (o *outSink) bytesDefault(pos int) []byte {
	switch v := o.take(pos).(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	case nil:
		return nil
	default:
		badSlot(o.format, pos, "[]byte default")
		return nil
	}
}

func (o *outSink) maxLen(pos int) int {
	switch v := o.take(pos).(type) {
	case int:
		return v
	case int32:
		return int(v)
	default:
		badSlot(o.format, pos, "max length int")
		return 0
	}
}

func badSlot(format string, pos int, want string) {
	panic(fmt.Sprintf("native: format %q position %d: output slot is not %s", format, pos, want))
}

// ParseArgs converts args according to format, writing results into the
// out slots. It returns the number of positions successfully converted;
// anything less than len(format) means conversion stopped at the first
// mismatched position. Positions beyond len(args) are filled from the
// defaults of optional codes and count as converted; a non-optional
// code past the supplied arguments stops conversion.
func ParseArgs(h *object.Heap, format string, args []object.Ref, out ...any) int {
	sink := &outSink{format: format, slots: out}
	for pos := 0; pos < len(format); pos++ {
		supplied := pos < len(args)
		var arg object.Ref
		if supplied {
			arg = args[pos]
		}
		switch format[pos] {
		case 'l':
			dst := sink.int64Ptr(pos)
			if !supplied {
				return pos
			}
			v, ok := h.IntValue(arg)
			if !ok {
				return pos
			}
			*dst = v

		case 'L':
			def := sink.int64Default(pos)
			dst := sink.int64Ptr(pos)
			if !supplied {
				*dst = def
				break
			}
			v, ok := h.IntValue(arg)
			if !ok {
				return pos
			}
			*dst = v

		case 'i':
			dst := sink.int32Ptr(pos)
			if !supplied {
				return pos
			}
			v, ok := h.IntValue(arg)
			if !ok {
				return pos
			}
			n, err := safecast.Conv[int32](v)
			if err != nil {
				return pos
			}
			*dst = n

		case 'I':
			def := sink.int32Default(pos)
			dst := sink.int32Ptr(pos)
			if !supplied {
				*dst = def
				break
			}
			v, ok := h.IntValue(arg)
			if !ok {
				return pos
			}
			n, err := safecast.Conv[int32](v)
			if err != nil {
				return pos
			}
			*dst = n

		case 'f':
			dst := sink.float64Ptr(pos)
			if !supplied {
				return pos
			}
			v, ok := h.FloatValue(arg)
			if !ok {
				return pos
			}
			*dst = v

		case 'F':
			def := sink.float64Default(pos)
			dst := sink.float64Ptr(pos)
			if !supplied {
				*dst = def
				break
			}
			v, ok := h.FloatValue(arg)
			if !ok {
				return pos
			}
			*dst = v

		case 's', 'b':
			dst := sink.bytesPtr(pos)
			lenDst := sink.int32Ptr(pos)
			limit := -1
			if format[pos] == 'b' {
				limit = sink.maxLen(pos)
			}
			if !supplied {
				return pos
			}
			buf, ok := h.BytesValue(arg)
			if !ok {
				return pos
			}
			if limit >= 0 && len(buf) > limit {
				return pos
			}
			*dst = buf
			*lenDst = int32(len(buf))

		case 'S', 'B':
			def := sink.bytesDefault(pos)
			dst := sink.bytesPtr(pos)
			lenDst := sink.int32Ptr(pos)
			limit := -1
			if format[pos] == 'B' {
				limit = sink.maxLen(pos)
			}
			buf := def
			if supplied {
				b, ok := h.BytesValue(arg)
				if !ok {
					return pos
				}
				buf = b
			}
			if limit >= 0 && len(buf) > limit {
				return pos
			}
			*dst = buf
			*lenDst = int32(len(buf))

		default:
			panic(fmt.Sprintf("native: format %q position %d: unknown code %q",
				format, pos, format[pos]))
		}
	}
	return len(format)
}
