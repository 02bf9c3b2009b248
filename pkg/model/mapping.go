// pkg/model/mapping.go
package model

import "fmt"

// ColumnMapping assigns each source CSV column to a canonical field or to the
// ignored sentinel. Invariant: no two columns hold the same canonical field at
// the same time; Set restores the invariant by resetting the previous holder.
type ColumnMapping struct {
	columns  []string
	assigned map[string]Field
}

// NewColumnMapping creates a mapping for the given header columns with every
// column initially ignored. Column order is preserved for iteration.
func NewColumnMapping(columns []string) *ColumnMapping {
	assigned := make(map[string]Field, len(columns))
	for _, col := range columns {
		assigned[col] = FieldIgnored
	}
	return &ColumnMapping{
		columns:  append([]string(nil), columns...),
		assigned: assigned,
	}
}

// Columns returns the source column names in header order.
func (m *ColumnMapping) Columns() []string {
	return append([]string(nil), m.columns...)
}

// Get returns the field currently assigned to the column. Unknown columns
// report ignored.
func (m *ColumnMapping) Get(column string) Field {
	if f, ok := m.assigned[column]; ok {
		return f
	}
	return FieldIgnored
}

// Set assigns a canonical field (or the ignored sentinel) to a column. Any
// other column currently mapped to the same canonical field is reset to
// ignored before the assignment is applied.
func (m *ColumnMapping) Set(column string, field Field) error {
	if _, ok := m.assigned[column]; !ok {
		return fmt.Errorf("unknown column %q", column)
	}
	if field != FieldIgnored && !field.IsCanonical() {
		return fmt.Errorf("unknown field %q", field)
	}

	if field != FieldIgnored {
		for _, col := range m.columns {
			if col != column && m.assigned[col] == field {
				m.assigned[col] = FieldIgnored
			}
		}
	}

	m.assigned[column] = field
	return nil
}

// MappedFields returns the canonical fields currently in use, in column order.
func (m *ColumnMapping) MappedFields() []Field {
	fields := make([]Field, 0, len(m.columns))
	for _, col := range m.columns {
		if f := m.assigned[col]; f != FieldIgnored {
			fields = append(fields, f)
		}
	}
	return fields
}

// MappedCount returns how many columns are mapped to a canonical field.
func (m *ColumnMapping) MappedCount() int {
	return len(m.MappedFields())
}

// HasMappings reports whether at least one column is mapped at all.
func (m *ColumnMapping) HasMappings() bool {
	return m.MappedCount() > 0
}

// Clone returns an independent copy of the mapping. Wizard steps hand each
// other snapshots, never shared state.
func (m *ColumnMapping) Clone() *ColumnMapping {
	clone := NewColumnMapping(m.columns)
	for col, f := range m.assigned {
		clone.assigned[col] = f
	}
	return clone
}
