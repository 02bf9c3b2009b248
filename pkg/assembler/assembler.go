// pkg/assembler/assembler.go
package assembler

import (
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pfman/portfolio-import/pkg/model"
)

// Metadata violations, shown to the user verbatim.
var (
	ErrTitleRequired  = errors.New("Portfolio title is required")
	ErrTitleTooShort  = errors.New("Portfolio title must be at least 3 characters")
	ErrTitleTooLong   = errors.New("Portfolio title must be less than 100 characters")
	ErrDescriptionTooLong = errors.New("Description must be less than 500 characters")
)

// ValidateTitle checks the portfolio title after trimming: required, 3 to 100
// characters.
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrTitleRequired
	}
	if len(trimmed) < 3 {
		return ErrTitleTooShort
	}
	if len(trimmed) > 100 {
		return ErrTitleTooLong
	}
	return nil
}

// ValidateDescription checks the optional description after trimming: at most
// 500 characters.
func ValidateDescription(description string) error {
	if len(strings.TrimSpace(description)) > 500 {
		return ErrDescriptionTooLong
	}
	return nil
}

// PortfolioAssembler projects a finished draft into the submission payload.
type PortfolioAssembler struct {
	logger *zap.Logger
}

// NewPortfolioAssembler creates a new PortfolioAssembler
func NewPortfolioAssembler(logger *zap.Logger) *PortfolioAssembler {
	return &PortfolioAssembler{logger: logger}
}

// BuildPayload filters the draft to valid rows and copies only allow-listed
// fields with non-empty values. Latitude and longitude are parsed and
// restringified; a value that does not parse is dropped rather than rejected.
// Rows reaching this point already passed validation, so an unparsable
// coordinate should not occur, but assembly stays lenient about it.
func (a *PortfolioAssembler) BuildPayload(draft *model.PortfolioDraft) (*model.CreatePortfolioPayload, error) {
	if err := ValidateTitle(draft.Title); err != nil {
		return nil, err
	}
	if err := ValidateDescription(draft.Description); err != nil {
		return nil, err
	}

	validRows := draft.ValidRows()
	properties := make([]model.Property, 0, len(validRows))
	dropped := 0

	for _, row := range validRows {
		property := make(model.Property)
		for _, field := range model.AddressFields {
			value := row.Value(field)
			if value == "" {
				continue
			}
			if field.IsCoordinate() {
				n, err := strconv.ParseFloat(value, 64)
				if err != nil {
					dropped++
					continue
				}
				property[field] = strconv.FormatFloat(n, 'f', -1, 64)
			} else {
				property[field] = value
			}
		}
		properties = append(properties, property)
	}

	if dropped > 0 {
		a.logger.Warn("Dropped unparsable coordinate values during assembly",
			zap.Int("count", dropped))
	}

	a.logger.Info("Assembled portfolio payload",
		zap.String("title", strings.TrimSpace(draft.Title)),
		zap.Int("properties", len(properties)),
		zap.Int("skippedInvalidRows", len(draft.Rows)-len(validRows)))

	return &model.CreatePortfolioPayload{
		Title:       strings.TrimSpace(draft.Title),
		Description: strings.TrimSpace(draft.Description),
		Properties:  properties,
	}, nil
}
