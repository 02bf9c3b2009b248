// pkg/wizard/stats.go
package wizard

import (
	"go.uber.org/zap"

	"github.com/pfman/portfolio-import/pkg/model"
)

// ImportStats summarizes the review-step bookkeeping: how many rows survived
// filtering, how they validated, and how many were touched by hand.
type ImportStats struct {
	TotalRows      int
	ValidRows      int
	InvalidRows    int
	EditedRows     int
	MappedColumns  int
	IgnoredColumns int
}

// Stats computes the current counts from the draft.
func (w *Wizard) Stats() ImportStats {
	var stats ImportStats
	if w.draft == nil {
		return stats
	}

	if w.draft.Mapping != nil {
		stats.MappedColumns = w.draft.Mapping.MappedCount()
		stats.IgnoredColumns = len(w.draft.Columns) - stats.MappedColumns
	}

	stats.TotalRows = len(w.draft.Rows)
	for _, row := range w.draft.Rows {
		if row.Valid {
			stats.ValidRows++
		} else {
			stats.InvalidRows++
		}
		if row.Edited {
			stats.EditedRows++
		}
	}

	return stats
}

// LogSummary writes the stats at info level.
func (s ImportStats) LogSummary(logger *zap.Logger) {
	logger.Info("Import summary",
		zap.Int("totalRows", s.TotalRows),
		zap.Int("validRows", s.ValidRows),
		zap.Int("invalidRows", s.InvalidRows),
		zap.Int("editedRows", s.EditedRows),
		zap.Int("mappedColumns", s.MappedColumns),
		zap.Int("ignoredColumns", s.IgnoredColumns))
}

// RowsFilter selects a subset of rows for display.
type RowsFilter struct {
	InvalidOnly bool
	EditedOnly  bool
}

// FilteredRows returns the draft rows matching the filter, in original order.
func (w *Wizard) FilteredRows(f RowsFilter) []*model.MappedRow {
	if w.draft == nil {
		return nil
	}

	rows := make([]*model.MappedRow, 0, len(w.draft.Rows))
	for _, row := range w.draft.Rows {
		if f.InvalidOnly && row.Valid {
			continue
		}
		if f.EditedOnly && !row.Edited {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// Page returns one fixed-size page of rows, 1-based. An out-of-range page is
// empty.
func (w *Wizard) Page(rows []*model.MappedRow, page int) []*model.MappedRow {
	if page < 1 {
		return nil
	}
	start := (page - 1) * w.rowsPerPage
	if start >= len(rows) {
		return nil
	}
	end := start + w.rowsPerPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
