// pkg/mapper/mapper.go
package mapper

import (
	"strings"

	"go.uber.org/zap"

	"github.com/pfman/portfolio-import/pkg/model"
)

// minContainmentLen is the shortest normalized string the containment stage
// will consider. Shorter aliases (x, y, rd, dr) still match exactly, but a
// one-letter alias must not claim every column that happens to contain it.
const minContainmentLen = 3

// FieldMapper proposes canonical-field assignments for source column names.
type FieldMapper struct {
	logger *zap.Logger
}

// NewFieldMapper creates a new FieldMapper
func NewFieldMapper(logger *zap.Logger) *FieldMapper {
	return &FieldMapper{logger: logger}
}

// normalize lowercases s and strips every non-alphanumeric character.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Suggest returns the canonical field proposed for a column name, walking the
// lookup ladder: exact normalized match, exact lowercased match, fuzzy
// containment in table order, then word overlap in table order. The second
// return is false when no stage matched and the column should be ignored.
func Suggest(column string) (model.Field, bool) {
	clean := normalize(column)
	origLower := strings.ToLower(column)

	// Direct matches
	if f, ok := exactIndex[clean]; ok {
		return f, true
	}
	if f, ok := exactIndex[origLower]; ok {
		return f, true
	}

	// Fuzzy containment, first entry wins
	for _, s := range synonyms {
		cleanKey := normalize(s.key)
		if len(cleanKey) >= minContainmentLen && strings.Contains(clean, cleanKey) {
			return s.field, true
		}
		if len(clean) >= minContainmentLen && strings.Contains(cleanKey, clean) {
			return s.field, true
		}
	}

	// Word overlap, first entry wins
	words := strings.Fields(origLower)
	for _, s := range synonyms {
		if sharesWord(words, strings.Fields(s.key)) {
			return s.field, true
		}
	}

	return model.FieldIgnored, false
}

func sharesWord(a, b []string) bool {
	for _, wa := range a {
		for _, wb := range b {
			if wa == wb {
				return true
			}
		}
	}
	return false
}

// SuggestMapping builds the default ColumnMapping for a header. Each column
// gets its ladder suggestion unless an earlier column already took the field;
// duplicates fall back to ignored so the uniqueness invariant holds from the
// start.
func (m *FieldMapper) SuggestMapping(columns []string) *model.ColumnMapping {
	mapping := model.NewColumnMapping(columns)
	taken := make(map[model.Field]bool)

	for _, col := range columns {
		field, ok := Suggest(col)
		if !ok || taken[field] {
			continue
		}
		if err := mapping.Set(col, field); err != nil {
			continue
		}
		taken[field] = true

		m.logger.Debug("Suggested column mapping",
			zap.String("column", col),
			zap.String("field", string(field)))
	}

	m.logger.Info("Built default column mapping",
		zap.Int("columns", len(columns)),
		zap.Int("mapped", mapping.MappedCount()))

	return mapping
}
