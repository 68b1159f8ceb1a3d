package xcdecode

import (
	"github.com/oss-tools/xcdecode/internal/decode"
	"github.com/oss-tools/xcdecode/internal/schema"
)

// FieldMap is the decoded output of one message: a mapping from field name
// to decoded value. See spec.md §3 for the full set of value shapes a
// FieldMap entry can hold, and internal/decode's As* helpers for extracting
// them.
type FieldMap = decode.FieldMap

// Document is a parsed XML schema document.
type Document = schema.Document

// ParseSchemaDocument parses an XML schema document's bytes.
func ParseSchemaDocument(data []byte) (*Document, error) {
	return schema.ParseDocument(data)
}

// Schema is the decode-time view of the two schema documents supplied at
// the start of a change-log stream: a memoizing class index plus the
// dialect (meta-version) that governs packed-field detection.
type Schema struct {
	index       *schema.Index
	metaVersion int
}

// NewSchema builds a Schema from Schema A and Schema B, per spec.md §3. The
// meta-version is derived from whether Schema B begins with an
// XML-declaration pseudo-node.
func NewSchema(a, b *Document) *Schema {
	return &Schema{
		index:       schema.NewIndex(a, b),
		metaVersion: schema.MetaVersion(b),
	}
}

// DecodeMessage decodes a single change's payload against the schema for
// className, looking the class up in the shared index on first use.
func (s *Schema) DecodeMessage(className string, payload []byte) (FieldMap, error) {
	node, err := s.index.Lookup(className)
	if err != nil {
		return nil, err
	}
	dec := decode.Decoder{Index: s.index, MetaVersion: s.metaVersion}
	return dec.Message(node, payload)
}
