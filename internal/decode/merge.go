package decode

import "github.com/oss-tools/xcdecode/internal/schema"

// merge writes val into fm under field.Name, applying the coalescing rule
// from spec.md §4.4.2: repeated scalars accumulate into a sequence,
// anything already a sequence (from a packed or enum decode) overwrites
// outright, and nested field maps always overwrite rather than coalesce —
// a deliberate deviation documented as an open question in spec.md §9.
func merge(fm FieldMap, field *schema.Field, val any) {
	name := field.Name

	switch v := val.(type) {
	case uint64:
		if field.Repeated {
			seq, _ := fm[name].([]uint64)
			fm[name] = append(seq, v)
			return
		}
		fm[name] = v

	case float64:
		if field.Repeated {
			seq, _ := fm[name].([]float64)
			fm[name] = append(seq, v)
			return
		}
		fm[name] = v

	case string:
		if field.Repeated {
			seq, _ := fm[name].([]string)
			fm[name] = append(seq, v)
			return
		}
		fm[name] = v

	default:
		// []uint64, []float64, []string (from packed/enum decodes) and
		// nested FieldMap values all replace whatever was there before.
		fm[name] = v
	}
}
