package invoice

// Field is an invoice attribute a CSV column can be mapped to.
type Field string

const (
	FieldDescription Field = "description"
	FieldQuantity    Field = "quantity"
	FieldUnitPrice   Field = "unitPrice"
	FieldAmount      Field = "amount"
	FieldClientName  Field = "clientName"
	FieldClientEmail Field = "clientEmail"
)

// Fields lists every mappable field in display order.
var Fields = []Field{
	FieldDescription,
	FieldQuantity,
	FieldUnitPrice,
	FieldAmount,
	FieldClientName,
	FieldClientEmail,
}

// Valid reports whether f is one of the known fields.
func (f Field) Valid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

// FieldMapping maps an invoice field to the CSV header holding its value.
type FieldMapping map[Field]string

// Normalize returns the mapping in field -> header form.
//
// The upload wizard keys its mapping by CSV header ({"email": "clientEmail"}).
// Entries whose key is not a known field but whose value is get inverted.
// Entries in the canonical form win over inverted ones.
func (m FieldMapping) Normalize() FieldMapping {
	out := make(FieldMapping, len(m))
	for k, v := range m {
		if k.Valid() && v != "" {
			out[k] = v
		}
	}
	for k, v := range m {
		if k.Valid() {
			continue
		}
		f := Field(v)
		if !f.Valid() {
			continue
		}
		if _, ok := out[f]; !ok {
			out[f] = string(k)
		}
	}
	return out
}

// Has reports whether the field is mapped to a non-empty header.
func (m FieldMapping) Has(f Field) bool {
	return m[f] != ""
}

// Lookup returns the row value for a mapped field, or "" when the field is
// unmapped or the column is missing.
func (m FieldMapping) Lookup(row Row, f Field) string {
	header, ok := m[f]
	if !ok || header == "" {
		return ""
	}
	return row[header]
}
