package xcdecode

import "github.com/oss-tools/xcdecode/internal/xcerr"

// Error is the concrete type for every failure the decoder can produce; see
// spec.md §7 for the taxonomy. Use errors.As to recover one from a wrapped
// error, and Kind to switch on which member of the taxonomy it is.
type Error = xcerr.Error

// Kind identifies which member of the error taxonomy an Error represents.
type Kind = xcerr.Kind

// The members of the error taxonomy, re-exported from internal/xcerr so
// callers outside this module never need to import an internal package.
const (
	KindUnknownClass             = xcerr.UnknownClass
	KindUnknownField             = xcerr.UnknownField
	KindUnknownEnumValue         = xcerr.UnknownEnumValue
	KindMissingSiblingDescriptor = xcerr.MissingSiblingDescriptor
	KindUnsupportedWireType      = xcerr.UnsupportedWireType
	KindTruncatedBuffer          = xcerr.TruncatedBuffer
	KindSchemaDialectError       = xcerr.SchemaDialectError
)
