package schema

import (
	"strconv"

	"github.com/oss-tools/xcdecode/internal/xcerr"
)

// Class classifies how a resolved field must be decoded.
type Class int

const (
	// SimpleScalar covers integer and boolean fields, not packed.
	SimpleScalar Class = iota
	// SimpleDouble covers double fields, not packed.
	SimpleDouble
	// PackedInteger covers packed-repeated integer or boolean fields.
	PackedInteger
	// PackedDouble covers packed-repeated double fields.
	PackedDouble
	// String covers string-typed fields.
	String
	// Enum covers fields whose preceding sibling is an enumeration node.
	Enum
	// Nested covers fields whose preceding sibling is a non-enumeration
	// descriptor (a struct-like node).
	Nested
)

// ScalarKind distinguishes integer from boolean for SimpleScalar and
// PackedInteger fields; both decode identically off the wire, but callers
// that care about the schema's declared type can consult this.
type ScalarKind int

const (
	ScalarInteger ScalarKind = iota
	ScalarBoolean
)

// Field is the result of resolving a field number against a managedObject
// (or nested struct) descriptor: its name, its decode classification, and
// — for Enum and Nested fields — the preceding sibling node to recurse or
// resolve enum values against.
type Field struct {
	Name       string
	Class      Class
	ScalarKind ScalarKind
	Repeated   bool
	Sibling    Node // set only for Enum and Nested
}

// Resolve scans msg's children for the p/action descriptor whose field
// number equals fieldNumber, per spec.md §4.3, and classifies it.
//
// metaVersion selects the dialect fallback: when 0 and a descriptor has no
// proto child, its field number comes from its own id attribute, and it is
// treated as packed whenever recurrence="repeated".
func Resolve(msg Node, fieldNumber uint64, metaVersion int) (*Field, error) {
	children := msg.Children()

	for i, child := range children {
		tag := child.Tag()
		if tag != "p" && tag != "action" {
			continue
		}

		num, err := fieldNumberOf(child)
		if err != nil {
			continue
		}
		if num != fieldNumber {
			continue
		}

		return classify(children, i, child, metaVersion)
	}

	return nil, xcerr.NewUnknownField(className(msg), fieldNumber)
}

// fieldNumberOf implements spec.md §4.3's two-step field number rule: the
// last child's proto index attribute, or (dialect fallback) the
// descriptor's own id attribute.
func fieldNumberOf(desc Node) (uint64, error) {
	kids := desc.Children()
	if len(kids) == 0 || kids[len(kids)-1].Tag() != "proto" {
		id, ok := desc.Attr("id")
		if !ok {
			return 0, xcerr.NewSchemaDialectError(descName(desc))
		}
		return strconv.ParseUint(id, 10, 64)
	}

	proto := kids[len(kids)-1]
	idx, ok := proto.Attr("index")
	if !ok {
		return 0, xcerr.NewSchemaDialectError(descName(desc))
	}
	return strconv.ParseUint(idx, 10, 64)
}

func classify(siblings []Node, i int, desc Node, metaVersion int) (*Field, error) {
	name := descName(desc)
	typ, _ := desc.Attr("type")
	recurrence, _ := desc.Attr("recurrence")
	repeated := recurrence == "repeated"

	packed := isPacked(desc, repeated, metaVersion)

	switch typ {
	case "integer", "boolean":
		kind := ScalarInteger
		if typ == "boolean" {
			kind = ScalarBoolean
		}
		if packed {
			return &Field{Name: name, Class: PackedInteger, ScalarKind: kind, Repeated: true}, nil
		}
		return &Field{Name: name, Class: SimpleScalar, ScalarKind: kind, Repeated: repeated}, nil

	case "double":
		if packed {
			return &Field{Name: name, Class: PackedDouble, Repeated: true}, nil
		}
		return &Field{Name: name, Class: SimpleDouble, Repeated: repeated}, nil

	case "string":
		return &Field{Name: name, Class: String, Repeated: repeated}, nil

	default:
		// A user type name: the preceding sibling is the type definition,
		// per spec.md §3's sibling convention.
		if i == 0 {
			return nil, xcerr.NewMissingSiblingDescriptor(name)
		}
		sibling := siblings[i-1]
		if sibling.Tag() == "enumeration" {
			return &Field{Name: name, Class: Enum, Repeated: repeated, Sibling: sibling}, nil
		}
		return &Field{Name: name, Class: Nested, Repeated: repeated, Sibling: sibling}, nil
	}
}

// isPacked implements spec.md §4.3's packed rule: true when the proto
// descriptor exists with packed="true" and recurrence="repeated", or
// (dialect fallback, meta-version 0, no proto child) whenever
// recurrence="repeated".
func isPacked(desc Node, repeated bool, metaVersion int) bool {
	kids := desc.Children()
	hasProto := len(kids) > 0 && kids[len(kids)-1].Tag() == "proto"

	if hasProto {
		packedAttr, _ := kids[len(kids)-1].Attr("packed")
		return repeated && packedAttr == "true"
	}

	return metaVersion == 0 && repeated
}

func descName(desc Node) string {
	name, ok := desc.Attr("name")
	if !ok {
		return "?"
	}
	return name
}

func className(msg Node) string {
	name, ok := msg.Attr("class")
	if !ok {
		return descName(msg)
	}
	return name
}
