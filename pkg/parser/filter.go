// pkg/parser/filter.go
package parser

import "strings"

// IsMeaningful reports whether a data row carries real content. All-blank
// rows are noise; a single populated field counts only when its trimmed value
// is longer than 2 characters, which weeds out stray separators and units.
func IsMeaningful(fields []string) bool {
	nonEmpty := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			nonEmpty = append(nonEmpty, f)
		}
	}

	switch len(nonEmpty) {
	case 0:
		return false
	case 1:
		return len(strings.TrimSpace(nonEmpty[0])) > 2
	default:
		return true
	}
}
