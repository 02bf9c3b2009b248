// pkg/wizard/wizard.go
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pfman/portfolio-import/pkg/assembler"
	"github.com/pfman/portfolio-import/pkg/client"
	"github.com/pfman/portfolio-import/pkg/config"
	"github.com/pfman/portfolio-import/pkg/mapper"
	"github.com/pfman/portfolio-import/pkg/model"
	"github.com/pfman/portfolio-import/pkg/parser"
	"github.com/pfman/portfolio-import/pkg/validator"
)

// State identifies a wizard step. Transitions move forward through the steps
// in order, gated on validation; explicit back transitions return to the
// previous step.
type State string

const (
	StateUpload      State = "upload"
	StateMap         State = "map"
	StateReview      State = "review"
	StateDetails     State = "details"
	StateFinalReview State = "final_review"
	StateDone        State = "done"
)

// Gate violations, shown to the user verbatim.
var (
	ErrNotCSV              = errors.New("Please select a CSV file")
	ErrFileTooLarge        = errors.New("File size must be less than 10MB")
	ErrMappingInsufficient = errors.New("Please ensure you have mapped the minimum required fields for geocoding")
	ErrNoMeaningfulRows    = errors.New("No meaningful data found in CSV file")
	ErrNoMappings          = errors.New("No valid column mappings found. Please go back and map your columns.")
	ErrNoValidProperties   = errors.New("no valid properties to import")
)

// Wizard owns the portfolio draft and advances it through the import steps:
// upload, map, review, details, final review. All parsing and validation run
// synchronously inside the transition that needs them; only row processing is
// batched so long files can report progress and honor cancellation.
type Wizard struct {
	logger       *zap.Logger
	fieldMapper  *mapper.FieldMapper
	rowValidator *validator.RowValidator
	assembler    *assembler.PortfolioAssembler
	api          client.PortfolioAPI

	batchSize   int
	maxFileSize int64
	rowsPerPage int

	state    State
	draft    *model.PortfolioDraft
	document *parser.Document
	edits    []model.EditRecord
	progress func(processed, total int)
}

// New creates a wizard in the upload state. api may be nil when the caller
// only parses and validates; Submit then refuses to run.
func New(api client.PortfolioAPI, cfg *config.Config, logger *zap.Logger) (*Wizard, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Wizard{
		logger:       logger,
		fieldMapper:  mapper.NewFieldMapper(logger),
		rowValidator: validator.NewRowValidator(logger),
		assembler:    assembler.NewPortfolioAssembler(logger),
		api:          api,
		batchSize:    cfg.BatchSize,
		maxFileSize:  cfg.MaxFileSize,
		rowsPerPage:  cfg.RowsPerPage,
		state:        StateUpload,
	}, nil
}

// WithProgress sets a callback invoked between row batches with the number of
// rows processed so far and the total.
func (w *Wizard) WithProgress(fn func(processed, total int)) *Wizard {
	w.progress = fn
	return w
}

// State returns the current wizard step.
func (w *Wizard) State() State {
	return w.state
}

// Draft returns the accumulated draft. Nil until a file is selected.
func (w *Wizard) Draft() *model.PortfolioDraft {
	return w.draft
}

// Edits returns the manual edits made during review, in order.
func (w *Wizard) Edits() []model.EditRecord {
	return append([]model.EditRecord(nil), w.edits...)
}

// SelectFile accepts the CSV file, parses its header, and builds the default
// column mapping. Advances Upload -> Map. The file must carry a .csv name and
// stay under the size limit; malformed content halts here without advancing.
func (w *Wizard) SelectFile(name string, size int64, content string) error {
	if w.state != StateUpload {
		return w.invalidTransition("select file")
	}

	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		return ErrNotCSV
	}
	if size > w.maxFileSize {
		return ErrFileTooLarge
	}

	doc, err := parser.ParseDocument(content)
	if err != nil {
		return err
	}

	mapping := w.fieldMapper.SuggestMapping(doc.ColumnNames())

	w.document = doc
	w.draft = &model.PortfolioDraft{
		ID:         uuid.New().String(),
		SourceFile: name,
		FileSize:   size,
		Columns:    doc.ColumnNames(),
		Mapping:    mapping,
	}
	w.edits = nil
	w.state = StateMap

	w.logger.Info("File accepted",
		zap.String("importID", w.draft.ID),
		zap.String("file", name),
		zap.Int64("size", size),
		zap.Int("columns", len(doc.Columns)),
		zap.Int("dataRows", len(doc.Rows)))

	return nil
}

// Mapping returns the current column mapping for inspection and editing.
func (w *Wizard) Mapping() *model.ColumnMapping {
	if w.draft == nil {
		return nil
	}
	return w.draft.Mapping
}

// SetMapping overrides one column's assignment while on the mapping step.
// Uniqueness is enforced by the mapping itself.
func (w *Wizard) SetMapping(column string, field model.Field) error {
	if w.state != StateMap {
		return w.invalidTransition("edit mapping")
	}
	if err := w.draft.Mapping.Set(column, field); err != nil {
		return err
	}

	w.logger.Debug("Mapping changed",
		zap.String("column", column),
		zap.String("field", string(field)),
		zap.Bool("sufficient", mapper.IsSufficient(w.draft.Mapping)))

	return nil
}

// MappingSufficient reports whether the current mapping satisfies one of the
// geocoding field combinations.
func (w *Wizard) MappingSufficient() bool {
	return w.draft != nil && mapper.IsSufficient(w.draft.Mapping)
}

// AdvanceToReview builds the mapped row collection and moves Map -> Review.
// The transition is gated on mapping sufficiency; rows are filtered for
// meaningful content, projected through the mapping, and validated, in
// batches so the caller stays responsive on large files.
func (w *Wizard) AdvanceToReview(ctx context.Context) error {
	if w.state != StateMap {
		return w.invalidTransition("advance to review")
	}
	if !mapper.IsSufficient(w.draft.Mapping) {
		return ErrMappingInsufficient
	}

	rows, err := w.buildRows(ctx)
	if err != nil {
		return err
	}

	w.draft.Rows = rows
	w.edits = nil
	w.state = StateReview

	stats := w.Stats()
	w.logger.Info("Rows mapped and validated",
		zap.String("importID", w.draft.ID),
		zap.Int("total", stats.TotalRows),
		zap.Int("valid", stats.ValidRows),
		zap.Int("invalid", stats.InvalidRows))

	return nil
}

// buildRows tokenizes, filters, maps, and validates every data row.
func (w *Wizard) buildRows(ctx context.Context) ([]*model.MappedRow, error) {
	start := time.Now()

	meaningful := make([][]string, 0, len(w.document.Rows))
	for _, fields := range w.document.Rows {
		if parser.IsMeaningful(fields) {
			meaningful = append(meaningful, fields)
		}
	}

	if len(meaningful) == 0 {
		return nil, ErrNoMeaningfulRows
	}
	if !w.draft.Mapping.HasMappings() {
		return nil, ErrNoMappings
	}

	rows := make([]*model.MappedRow, 0, len(meaningful))
	for batchStart := 0; batchStart < len(meaningful); batchStart += w.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("row processing cancelled: %w", err)
		}

		batchEnd := batchStart + w.batchSize
		if batchEnd > len(meaningful) {
			batchEnd = len(meaningful)
		}

		for i := batchStart; i < batchEnd; i++ {
			row := w.mapRow(i, meaningful[i])
			w.rowValidator.Revalidate(row)
			rows = append(rows, row)
		}

		if w.progress != nil {
			w.progress(batchEnd, len(meaningful))
		}
	}

	w.logger.Debug("Row processing finished",
		zap.Int("rows", len(rows)),
		zap.Duration("duration", time.Since(start)))

	return rows, nil
}

// mapRow projects one tokenized row through the column mapping.
func (w *Wizard) mapRow(index int, fields []string) *model.MappedRow {
	row := model.NewMappedRow(index)
	for colIdx, colName := range w.document.Columns {
		if colName == "" {
			continue
		}
		field := w.draft.Mapping.Get(colName)
		if field == model.FieldIgnored {
			continue
		}
		row.Fields[field] = strings.TrimSpace(parser.FieldAt(fields, colIdx))
	}
	return row
}

// EditField applies one manual field edit during review, records it, and
// re-validates exactly the edited row.
func (w *Wizard) EditField(rowIndex int, field model.Field, value string) error {
	if w.state != StateReview {
		return w.invalidTransition("edit row")
	}
	if !field.IsCanonical() {
		return fmt.Errorf("unknown field %q", field)
	}

	var row *model.MappedRow
	for _, r := range w.draft.Rows {
		if r.OriginalIndex == rowIndex {
			row = r
			break
		}
	}
	if row == nil {
		return fmt.Errorf("no row with index %d", rowIndex)
	}

	w.edits = append(w.edits, model.EditRecord{
		RowIndex:      rowIndex,
		Field:         field,
		OriginalValue: row.Fields[field],
		NewValue:      value,
		EditedAt:      time.Now(),
	})

	row.Fields[field] = value
	row.Edited = true
	w.rowValidator.Revalidate(row)

	w.logger.Debug("Row edited",
		zap.Int("rowIndex", rowIndex),
		zap.String("field", string(field)),
		zap.Bool("valid", row.Valid))

	return nil
}

// AdvanceToDetails moves Review -> Details. Invalid rows are allowed through;
// they are skipped at assembly, not here.
func (w *Wizard) AdvanceToDetails() error {
	if w.state != StateReview {
		return w.invalidTransition("advance to details")
	}
	w.state = StateDetails
	return nil
}

// SetDetails stores the portfolio title and optional description after
// validating both, and moves Details -> FinalReview.
func (w *Wizard) SetDetails(title, description string) error {
	if w.state != StateDetails {
		return w.invalidTransition("set details")
	}
	if err := assembler.ValidateTitle(title); err != nil {
		return err
	}
	if err := assembler.ValidateDescription(description); err != nil {
		return err
	}

	w.draft.Title = strings.TrimSpace(title)
	w.draft.Description = strings.TrimSpace(description)
	w.state = StateFinalReview

	w.logger.Info("Portfolio details set",
		zap.String("importID", w.draft.ID),
		zap.String("title", w.draft.Title))

	return nil
}

// Submit assembles the payload and performs the submission. On success the
// wizard reaches Done; on failure it stays on FinalReview so the user can
// resubmit. There must be at least one valid property.
func (w *Wizard) Submit(ctx context.Context) error {
	if w.state != StateFinalReview {
		return w.invalidTransition("submit")
	}
	if w.api == nil {
		return errors.New("no portfolio API configured")
	}

	payload, err := w.assembler.BuildPayload(w.draft)
	if err != nil {
		return err
	}
	if len(payload.Properties) == 0 {
		return ErrNoValidProperties
	}

	if err := w.api.CreatePortfolio(ctx, payload); err != nil {
		w.logger.Error("Submission failed",
			zap.String("importID", w.draft.ID),
			zap.Error(err))
		return err
	}

	w.state = StateDone
	w.logger.Info("Portfolio created",
		zap.String("importID", w.draft.ID),
		zap.Int("properties", len(payload.Properties)))

	return nil
}

// Back returns to the previous step. Leaving the mapping step for the upload
// step discards the whole draft; leaving review for mapping discards the row
// collection (it is rebuilt when review is next entered).
func (w *Wizard) Back() error {
	switch w.state {
	case StateMap:
		w.draft = nil
		w.document = nil
		w.edits = nil
		w.state = StateUpload
	case StateReview:
		w.draft.Rows = nil
		w.edits = nil
		w.state = StateMap
	case StateDetails:
		w.state = StateReview
	case StateFinalReview:
		w.state = StateDetails
	default:
		return w.invalidTransition("go back")
	}
	return nil
}

func (w *Wizard) invalidTransition(action string) error {
	return fmt.Errorf("cannot %s in the %s step", action, w.state)
}
