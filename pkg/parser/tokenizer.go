// pkg/parser/tokenizer.go
package parser

import (
	"errors"
	"strings"
)

// Errors reported for malformed input. The messages are shown to the user
// verbatim, so they stay in plain language.
var (
	ErrEmptyFile  = errors.New("CSV file appears to be empty")
	ErrNoDataRows = errors.New("CSV file must contain at least a header row and one data row")
	ErrNoColumns  = errors.New("No valid column headers found in CSV file")
)

// Document is a tokenized CSV file: the header columns and every non-blank
// data row. Rows are positionally aligned with Columns; short rows are not
// padded here, lookups past a row's end read as empty.
type Document struct {
	Columns []string
	Rows    [][]string
}

// TokenizeLine splits one CSV line into fields. A double quote toggles quoted
// mode, a comma separates fields only outside quotes, and two consecutive
// quotes inside a quoted field emit a literal quote. Surrounding quotes are
// consumed by the scan; each field is trimmed after extraction.
func TokenizeLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

// ParseDocument tokenizes a whole CSV file. Blank lines are discarded before
// any structural check. Fails when there is no header, no data row, or the
// header yields no non-empty column names.
func ParseDocument(text string) (*Document, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) == 0 {
		return nil, ErrEmptyFile
	}
	if len(lines) < 2 {
		return nil, ErrNoDataRows
	}

	columns := TokenizeLine(lines[0])
	named := 0
	for _, col := range columns {
		if col != "" {
			named++
		}
	}
	if named == 0 {
		return nil, ErrNoColumns
	}

	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, TokenizeLine(line))
	}

	return &Document{Columns: columns, Rows: rows}, nil
}

// ColumnNames returns the non-empty header names in column order.
func (d *Document) ColumnNames() []string {
	names := make([]string, 0, len(d.Columns))
	for _, col := range d.Columns {
		if col != "" {
			names = append(names, col)
		}
	}
	return names
}

// FieldAt returns the value of row at the given column index, or "" when the
// row is shorter than the header.
func FieldAt(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}
