// pkg/model/row.go
package model

import "strings"

// MappedRow is one CSV data row projected through the column mapping, plus
// the bookkeeping the review step needs. OriginalIndex is the row's position
// in the filtered data (0-based) and stays stable across filtering and
// pagination.
type MappedRow struct {
	Fields        map[Field]string
	OriginalIndex int
	Edited        bool
	Valid         bool
	Errors        []string
}

// NewMappedRow creates an empty row at the given original index.
func NewMappedRow(index int) *MappedRow {
	return &MappedRow{
		Fields:        make(map[Field]string),
		OriginalIndex: index,
		Valid:         true,
	}
}

// Value returns the trimmed value of a field, or "" when absent.
func (r *MappedRow) Value(f Field) string {
	return strings.TrimSpace(r.Fields[f])
}

// Has reports whether the field holds a non-blank value.
func (r *MappedRow) Has(f Field) bool {
	return r.Value(f) != ""
}

// PopulatedFields returns the canonical fields holding non-blank values, in
// canonical field order.
func (r *MappedRow) PopulatedFields() []Field {
	fields := make([]Field, 0, len(r.Fields))
	for _, f := range AddressFields {
		if r.Has(f) {
			fields = append(fields, f)
		}
	}
	return fields
}
