// pkg/model/draft.go
package model

// PortfolioDraft is the accumulated wizard state: the source file reference,
// the chosen column mapping, the mapped rows, and the metadata gathered in the
// details step. It is owned by the wizard controller and advanced only through
// validated transitions.
type PortfolioDraft struct {
	ID          string // import session identifier
	SourceFile  string
	FileSize    int64
	Columns     []string
	Mapping     *ColumnMapping
	Rows        []*MappedRow
	Title       string
	Description string
}

// ValidRows returns the rows that passed validation.
func (d *PortfolioDraft) ValidRows() []*MappedRow {
	rows := make([]*MappedRow, 0, len(d.Rows))
	for _, r := range d.Rows {
		if r.Valid {
			rows = append(rows, r)
		}
	}
	return rows
}

// InvalidRows returns the rows carrying validation errors.
func (d *PortfolioDraft) InvalidRows() []*MappedRow {
	rows := make([]*MappedRow, 0, len(d.Rows))
	for _, r := range d.Rows {
		if !r.Valid {
			rows = append(rows, r)
		}
	}
	return rows
}

// Property is one address record of the submission payload. Values are
// strings throughout; latitude and longitude are restringified numbers to
// match the API schema.
type Property map[Field]string

// CreatePortfolioPayload is the JSON document submitted to the portfolio
// creation endpoint.
type CreatePortfolioPayload struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Properties  []Property `json:"properties"`
}
