// Package decode implements the schema-directed message decoder (C4): it
// drives the wire reader and field resolver to turn a payload byte range
// into a FieldMap, recursing into nested messages and resolving enum names
// along the way.
package decode

import (
	"math"
	"strconv"

	"github.com/oss-tools/xcdecode/internal/schema"
	"github.com/oss-tools/xcdecode/internal/wire"
	"github.com/oss-tools/xcdecode/internal/xcerr"
)

// Decoder drives decoding against a shared schema index. A Decoder holds no
// per-message state of its own, so one value can be reused (or copied) by
// every worker in the parallel dispatcher.
type Decoder struct {
	Index       *schema.Index
	MetaVersion int
}

// Message decodes payload against msg, the schema descriptor for this
// message's class (or, for a nested message, the struct-like sibling node
// of its parent field).
func (d Decoder) Message(msg schema.Node, payload []byte) (FieldMap, error) {
	r := wire.NewReader(payload)
	fm := make(FieldMap)

	for !r.Done() {
		wireType, fieldNumber, err := r.DecodeTag()
		if err != nil {
			return nil, err
		}
		if wireType == wire.I32 || wireType == wire.Unknown {
			return nil, xcerr.NewUnsupportedWireType(uint8(wireType))
		}

		field, err := schema.Resolve(msg, fieldNumber, d.MetaVersion)
		if err != nil {
			return nil, err
		}

		val, err := d.decodeField(field, wireType, r)
		if err != nil {
			return nil, err
		}

		merge(fm, field, val)
	}

	return fm, nil
}

// decodeField decodes one field's payload per its classification, per
// spec.md §4.4.1.
func (d Decoder) decodeField(field *schema.Field, wireType wire.Type, r *wire.Reader) (any, error) {
	switch field.Class {
	case schema.SimpleScalar:
		return r.DecodeVarint()

	case schema.SimpleDouble:
		bits, err := r.DecodeFixed64()
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(bits), nil

	case schema.String:
		return d.readLenDelimitedBytes(r)

	case schema.PackedInteger:
		return d.decodePackedInts(r)

	case schema.PackedDouble:
		return d.decodePackedDoubles(r)

	case schema.Enum:
		return d.decodeEnum(field, wireType, r)

	case schema.Nested:
		return d.decodeNested(field, r)

	default:
		// schema.Resolve/classify only ever returns one of the classes
		// above; unreachable in practice, kept so this switch stays total
		// if Class ever grows a member.
		panic("decode: unhandled field class")
	}
}

func (d Decoder) readLenDelimitedBytes(r *wire.Reader) (string, error) {
	n, err := r.DecodeVarint()
	if err != nil {
		return "", err
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (d Decoder) readLenDelimitedSub(r *wire.Reader) (*wire.Reader, error) {
	n, err := r.DecodeVarint()
	if err != nil {
		return nil, err
	}
	return r.Sub(int(n))
}

func (d Decoder) decodePackedInts(r *wire.Reader) ([]uint64, error) {
	sub, err := d.readLenDelimitedSub(r)
	if err != nil {
		return nil, err
	}
	var out []uint64
	for !sub.Done() {
		v, err := sub.DecodeVarint()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (d Decoder) decodePackedDoubles(r *wire.Reader) ([]float64, error) {
	sub, err := d.readLenDelimitedSub(r)
	if err != nil {
		return nil, err
	}
	var out []float64
	for !sub.Done() {
		bits, err := sub.DecodeFixed64()
		if err != nil {
			return nil, err
		}
		out = append(out, math.Float64frombits(bits))
	}
	return out, nil
}

// decodeEnum handles both the packed-repeated (LEN) and singular (VARINT)
// encodings, then resolves each integer to its enum name via the sibling
// enumeration node, per spec.md §4.4.1.
func (d Decoder) decodeEnum(field *schema.Field, wireType wire.Type, r *wire.Reader) (any, error) {
	if wireType == wire.Len {
		ints, err := d.decodePackedInts(r)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(ints))
		for i, v := range ints {
			name, err := resolveEnumName(field.Sibling, v)
			if err != nil {
				return nil, err
			}
			names[i] = name
		}
		return names, nil
	}

	v, err := r.DecodeVarint()
	if err != nil {
		return nil, err
	}
	return resolveEnumName(field.Sibling, v)
}

// resolveEnumName locates, within sibling's enum children, the one whose
// value attribute equals v, returning its name attribute (or the
// "VALUE_NOT_FOUND" fallback if that attribute is absent).
func resolveEnumName(sibling schema.Node, v uint64) (string, error) {
	for _, child := range sibling.Children() {
		if child.Tag() != "enum" {
			continue
		}
		value, ok := child.Attr("value")
		if !ok {
			continue
		}
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil || n != v {
			continue
		}
		name, ok := child.Attr("name")
		if !ok {
			return "VALUE_NOT_FOUND", nil
		}
		return name, nil
	}
	return "", xcerr.NewUnknownEnumValue(v)
}

// decodeNested recurses decode into the LEN-delimited payload using the
// field's sibling node (the struct-like type definition) as the message
// descriptor for the recursive call.
func (d Decoder) decodeNested(field *schema.Field, r *wire.Reader) (FieldMap, error) {
	n, err := r.DecodeVarint()
	if err != nil {
		return nil, err
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return nil, err
	}
	return d.Message(field.Sibling, b)
}
