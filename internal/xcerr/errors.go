// Package xcerr defines the typed error taxonomy shared by the schema
// index, field resolver, message decoder, and dispatcher.
//
// A single concrete type, Error, carries a Kind plus whatever context that
// kind needs to format a useful message. Callers that need to distinguish
// error kinds should switch on the Kind field rather than compare messages.
package xcerr

import "fmt"

// Kind identifies which member of the error taxonomy an Error represents.
type Kind int

const (
	// UnknownClass means the schema index could not find a managedObject
	// with the given class in either schema document.
	UnknownClass Kind = iota
	// UnknownField means no p/action descriptor in the class maps to the
	// decoded field number.
	UnknownField
	// UnknownEnumValue means an enum integer has no matching enum
	// value="…" child in the preceding-sibling enumeration node.
	UnknownEnumValue
	// MissingSiblingDescriptor means a composite (enum/nested) field's
	// descriptor has no preceding sibling in the schema.
	MissingSiblingDescriptor
	// UnsupportedWireType means the wire reader produced I32 or UNKNOWN.
	UnsupportedWireType
	// TruncatedBuffer means the cursor would advance past the end of the
	// buffer.
	TruncatedBuffer
	// SchemaDialectError means a descriptor has neither a proto child nor
	// an id attribute.
	SchemaDialectError
)

func (k Kind) String() string {
	switch k {
	case UnknownClass:
		return "UnknownClass"
	case UnknownField:
		return "UnknownField"
	case UnknownEnumValue:
		return "UnknownEnumValue"
	case MissingSiblingDescriptor:
		return "MissingSiblingDescriptor"
	case UnsupportedWireType:
		return "UnsupportedWireType"
	case TruncatedBuffer:
		return "TruncatedBuffer"
	case SchemaDialectError:
		return "SchemaDialectError"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type for every failure the core can produce.
type Error struct {
	Kind Kind

	Class    string // UnknownClass, UnknownField, MissingSiblingDescriptor, SchemaDialectError
	Field    uint64 // UnknownField
	Value    uint64 // UnknownEnumValue
	WireType uint8  // UnsupportedWireType
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case UnknownClass:
		return fmt.Sprintf("xcdecode: unknown class %q", e.Class)
	case UnknownField:
		return fmt.Sprintf("xcdecode: class %q has no field numbered %d", e.Class, e.Field)
	case UnknownEnumValue:
		return fmt.Sprintf("xcdecode: no enum member with value %d", e.Value)
	case MissingSiblingDescriptor:
		return fmt.Sprintf("xcdecode: field %q has no preceding sibling type definition", e.Class)
	case UnsupportedWireType:
		return fmt.Sprintf("xcdecode: unsupported wire type %d", e.WireType)
	case TruncatedBuffer:
		return "xcdecode: buffer truncated"
	case SchemaDialectError:
		return fmt.Sprintf("xcdecode: descriptor %q has neither a proto child nor an id attribute", e.Class)
	default:
		return "xcdecode: unknown error"
	}
}

// NewUnknownClass reports a class name absent from both schema documents.
func NewUnknownClass(class string) *Error {
	return &Error{Kind: UnknownClass, Class: class}
}

// NewUnknownField reports a field number with no matching descriptor.
func NewUnknownField(class string, field uint64) *Error {
	return &Error{Kind: UnknownField, Class: class, Field: field}
}

// NewUnknownEnumValue reports an enum integer with no matching member.
func NewUnknownEnumValue(value uint64) *Error {
	return &Error{Kind: UnknownEnumValue, Value: value}
}

// NewMissingSiblingDescriptor reports a composite field with no preceding
// sibling to recurse into.
func NewMissingSiblingDescriptor(fieldName string) *Error {
	return &Error{Kind: MissingSiblingDescriptor, Class: fieldName}
}

// NewUnsupportedWireType reports a wire type the core does not decode.
func NewUnsupportedWireType(wireType uint8) *Error {
	return &Error{Kind: UnsupportedWireType, WireType: wireType}
}

// NewTruncatedBuffer reports a read that would run past the buffer's end.
func NewTruncatedBuffer() *Error {
	return &Error{Kind: TruncatedBuffer}
}

// NewSchemaDialectError reports a descriptor missing both dialect markers.
func NewSchemaDialectError(fieldName string) *Error {
	return &Error{Kind: SchemaDialectError, Class: fieldName}
}
