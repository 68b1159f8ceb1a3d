package decode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oss-tools/xcdecode/internal/schema"
	"github.com/oss-tools/xcdecode/internal/xcerr"
)

// The fake schema nodes below mirror internal/schema's test helpers; decode
// only depends on the schema.Node interface, not on any concrete XML
// backing, so a hand-built tree is enough to exercise every classification.

type fakeNode struct {
	tag      string
	attrs    map[string]string
	children []schema.Node
}

func (n *fakeNode) Tag() string { return n.tag }

func (n *fakeNode) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

func (n *fakeNode) Children() []schema.Node { return n.children }

func node(tag string, attrs map[string]string, children ...schema.Node) schema.Node {
	return &fakeNode{tag: tag, attrs: attrs, children: children}
}

func proto(index string, packed bool) schema.Node {
	attrs := map[string]string{"index": index}
	if packed {
		attrs["packed"] = "true"
	}
	return node("proto", attrs)
}

func newDecoder() Decoder {
	return Decoder{Index: nil, MetaVersion: 1}
}

// S1 — simple scalar.
func TestSeedSimpleScalar(t *testing.T) {
	p := node("p", map[string]string{"name": "a", "type": "integer"}, proto("1", false))
	obj := node("managedObject", map[string]string{"class": "X"}, p)

	fm, err := newDecoder().Message(obj, []byte{0x08, 0x2A})
	require.NoError(t, err)
	v, ok := AsUint64(fm["a"])
	require.True(t, ok)
	require.Equal(t, uint64(42), v)
}

// S2 — string.
func TestSeedString(t *testing.T) {
	p := node("p", map[string]string{"name": "s", "type": "string"}, proto("2", false))
	obj := node("managedObject", map[string]string{"class": "X"}, p)

	fm, err := newDecoder().Message(obj, []byte{0x12, 0x05, 'H', 'e', 'l', 'l', 'o'})
	require.NoError(t, err)
	s, ok := AsString(fm["s"])
	require.True(t, ok)
	require.Equal(t, "Hello", s)
}

// S3 — double.
func TestSeedDouble(t *testing.T) {
	p := node("p", map[string]string{"name": "d", "type": "double"}, proto("1", false))
	obj := node("managedObject", map[string]string{"class": "X"}, p)

	fm, err := newDecoder().Message(obj, []byte{0x09, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF0, 0x3F})
	require.NoError(t, err)
	v, ok := AsFloat64(fm["d"])
	require.True(t, ok)
	require.Equal(t, 1.0, v)
}

// S4 — packed integer.
func TestSeedPackedInteger(t *testing.T) {
	p := node("p", map[string]string{"name": "xs", "type": "integer", "recurrence": "repeated"}, proto("3", true))
	obj := node("managedObject", map[string]string{"class": "X"}, p)

	fm, err := newDecoder().Message(obj, []byte{0x1A, 0x03, 0x01, 0x02, 0x03})
	require.NoError(t, err)
	v, ok := AsUint64Slice(fm["xs"])
	require.True(t, ok)
	require.Equal(t, []uint64{1, 2, 3}, v)
}

// S5 — enum.
func TestSeedEnum(t *testing.T) {
	enumDef := node("enumeration", nil,
		node("enum", map[string]string{"value": "0", "name": "OFF"}),
		node("enum", map[string]string{"value": "1", "name": "ON"}),
	)
	p := node("p", map[string]string{"name": "state", "type": "MyEnum"}, proto("1", false))
	obj := node("managedObject", map[string]string{"class": "X"}, enumDef, p)

	fm, err := newDecoder().Message(obj, []byte{0x08, 0x01})
	require.NoError(t, err)
	s, ok := AsString(fm["state"])
	require.True(t, ok)
	require.Equal(t, "ON", s)
}

// S6 — nested.
func TestSeedNested(t *testing.T) {
	inner := node("p", map[string]string{"name": "inner", "type": "integer"}, proto("1", false))
	structDef := node("struct", nil, inner)
	p := node("p", map[string]string{"name": "n", "type": "MyStruct"}, proto("2", false))
	obj := node("managedObject", map[string]string{"class": "X"}, structDef, p)

	fm, err := newDecoder().Message(obj, []byte{0x12, 0x02, 0x08, 0x07})
	require.NoError(t, err)
	nested, ok := AsFieldMap(fm["n"])
	require.True(t, ok)
	v, ok := AsUint64(nested["inner"])
	require.True(t, ok)
	require.Equal(t, uint64(7), v)
}

// Invariant 6: repetition coalescing for non-packed repeated scalars.
func TestRepeatedScalarCoalesces(t *testing.T) {
	p := node("p", map[string]string{"name": "a", "type": "integer", "recurrence": "repeated"}, proto("1", false))
	obj := node("managedObject", map[string]string{"class": "X"}, p)

	// Three occurrences of field 1, VARINT wire type, values 1, 2, 3.
	payload := []byte{0x08, 0x01, 0x08, 0x02, 0x08, 0x03}
	fm, err := newDecoder().Message(obj, payload)
	require.NoError(t, err)
	v, ok := AsUint64Slice(fm["a"])
	require.True(t, ok)
	require.Equal(t, []uint64{1, 2, 3}, v)
}

// Invariant 7: packed-double bit preservation, no NaN normalization.
func TestPackedDoubleBitPreservation(t *testing.T) {
	p := node("p", map[string]string{"name": "ds", "type": "double", "recurrence": "repeated"}, proto("1", true))
	obj := node("managedObject", map[string]string{"class": "X"}, p)

	// A quiet NaN bit pattern, plus 2.0, packed into 16 bytes.
	payload := []byte{
		0x0A, 0x10,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF8, 0x7F, // NaN
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x40, // 2.0
	}
	fm, err := newDecoder().Message(obj, payload)
	require.NoError(t, err)
	v, ok := AsFloat64Slice(fm["ds"])
	require.True(t, ok)
	require.Len(t, v, 2)
	require.True(t, v[0] != v[0]) // NaN compares unequal to itself
	require.Equal(t, 2.0, v[1])
}

// Invariant 8: enum resolution failure.
func TestUnknownEnumValueFails(t *testing.T) {
	enumDef := node("enumeration", nil,
		node("enum", map[string]string{"value": "0", "name": "OFF"}),
	)
	p := node("p", map[string]string{"name": "state", "type": "MyEnum"}, proto("1", false))
	obj := node("managedObject", map[string]string{"class": "X"}, enumDef, p)

	_, err := newDecoder().Message(obj, []byte{0x08, 0x05})
	require.Error(t, err)
}

// An I32- or UNKNOWN-tagged field must fail with UnsupportedWireType rather
// than be misread by whatever decode routine the field's class happens to
// dispatch to, per spec.md §4.4.1.
func TestUnsupportedWireTypeFails(t *testing.T) {
	p := node("p", map[string]string{"name": "a", "type": "integer"}, proto("1", false))
	obj := node("managedObject", map[string]string{"class": "X"}, p)

	// Tag for field 1, wire type I32 (5): (1<<3)|5 = 0x0D.
	_, err := newDecoder().Message(obj, []byte{0x0D, 0x01, 0x02, 0x03, 0x04})
	require.Error(t, err)

	var xerr *xcerr.Error
	require.ErrorAs(t, err, &xerr)
	require.Equal(t, xcerr.UnsupportedWireType, xerr.Kind)
}

// Nested message fields appearing more than once at the same level
// overwrite rather than coalesce, per spec.md §3 and §9.
func TestRepeatedNestedOverwrites(t *testing.T) {
	inner := node("p", map[string]string{"name": "v", "type": "integer"}, proto("1", false))
	structDef := node("struct", nil, inner)
	p := node("p", map[string]string{"name": "n", "type": "MyStruct"}, proto("2", false))
	obj := node("managedObject", map[string]string{"class": "X"}, structDef, p)

	// Field 2 twice: {v:1} then {v:2}. The second occurrence wins.
	payload := []byte{
		0x12, 0x02, 0x08, 0x01,
		0x12, 0x02, 0x08, 0x02,
	}
	fm, err := newDecoder().Message(obj, payload)
	require.NoError(t, err)
	nested, ok := AsFieldMap(fm["n"])
	require.True(t, ok)
	v, ok := AsUint64(nested["v"])
	require.True(t, ok)
	require.Equal(t, uint64(2), v)
}
