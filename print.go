package xcdecode

import (
	"fmt"
	"io"
	"strings"
)

// DumpFields writes a depth-prefixed textual dump of fm to w, four-space
// indentation per level, recursing into nested field maps and sequences.
// This is a diagnostic convenience, not part of the decode contract itself
// (spec.md §6).
func DumpFields(w io.Writer, fm FieldMap, depth int) {
	indent := strings.Repeat("    ", depth)

	for name, v := range fm {
		switch val := v.(type) {
		case uint64:
			fmt.Fprintf(w, "%sFieldName: %s FieldValue: %d\n", indent, name, val)
		case float64:
			fmt.Fprintf(w, "%sFieldName: %s FieldValue: %f\n", indent, name, val)
		case string:
			fmt.Fprintf(w, "%sFieldName: %s FieldValue: %s\n", indent, name, val)
		case []string:
			fmt.Fprintf(w, "%sFieldName: %s FieldValue:\n", indent, name)
			for _, s := range val {
				fmt.Fprintf(w, "%s    %s\n", indent, s)
			}
		case []uint64:
			fmt.Fprintf(w, "%sFieldName: %s FieldValue:\n", indent, name)
			for _, n := range val {
				fmt.Fprintf(w, "%s    %d\n", indent, n)
			}
		case []float64:
			fmt.Fprintf(w, "%sFieldName: %s FieldValue:\n", indent, name)
			for _, f := range val {
				fmt.Fprintf(w, "%s    %f\n", indent, f)
			}
		case FieldMap:
			fmt.Fprintf(w, "%sFieldName: %s FieldValue{}:\n", indent, name)
			DumpFields(w, val, depth+1)
		}
	}
}
