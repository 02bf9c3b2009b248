// pkg/validator/validator.go
package validator

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/pfman/portfolio-import/pkg/mapper"
	"github.com/pfman/portfolio-import/pkg/model"
)

// Validation messages, shown to the user verbatim.
const (
	MsgNoMeaningfulData   = "Row contains no meaningful data"
	MsgInsufficientFields = "Missing required address information for geocoding"
	MsgInvalidLatitude    = "Invalid latitude (must be between -90 and 90)"
	MsgInvalidLongitude   = "Invalid longitude (must be between -180 and 180)"
	MsgPostalCodeTooLong  = "Postal code is too long"
	MsgBadCountryCode     = "Country code must be 2 characters"
	MsgStateCodeTooLong   = "State code is too long"
)

// RowValidator applies the field-level and combination-level rules to mapped
// rows. Validation is deterministic: rules run in a fixed order and every
// violation is collected, so re-running on an unchanged row yields the same
// result.
type RowValidator struct {
	logger *zap.Logger
}

// NewRowValidator creates a new RowValidator
func NewRowValidator(logger *zap.Logger) *RowValidator {
	return &RowValidator{logger: logger}
}

// Validate evaluates one row and returns its validity plus the ordered list
// of violations. The row itself is not mutated; see Revalidate.
func (v *RowValidator) Validate(row *model.MappedRow) (bool, []string) {
	var errs []string

	// An all-blank row gets a single error and no further checks.
	if len(row.PopulatedFields()) == 0 {
		return false, []string{MsgNoMeaningfulData}
	}

	// The mapping-level sufficiency policy, applied to this row's own values.
	if !mapper.SufficientCombination(row.Has) {
		errs = append(errs, MsgInsufficientFields)
	}

	if lat := row.Value(model.FieldLatitude); lat != "" {
		if n, err := strconv.ParseFloat(lat, 64); err != nil || n < -90 || n > 90 {
			errs = append(errs, MsgInvalidLatitude)
		}
	}

	if lng := row.Value(model.FieldLongitude); lng != "" {
		if n, err := strconv.ParseFloat(lng, 64); err != nil || n < -180 || n > 180 {
			errs = append(errs, MsgInvalidLongitude)
		}
	}

	if pc := row.Value(model.FieldPostalCode); pc != "" && len(pc) > 20 {
		errs = append(errs, MsgPostalCodeTooLong)
	}

	if cc := row.Value(model.FieldCountryCode); cc != "" && len(cc) != 2 {
		errs = append(errs, MsgBadCountryCode)
	}

	if sc := row.Value(model.FieldStateCode); sc != "" && len(sc) > 3 {
		errs = append(errs, MsgStateCodeTooLong)
	}

	return len(errs) == 0, errs
}

// Revalidate runs Validate and writes the result back into the row's
// bookkeeping. Called once per row at mapping time and again on exactly the
// row a manual edit touched.
func (v *RowValidator) Revalidate(row *model.MappedRow) {
	valid, errs := v.Validate(row)
	row.Valid = valid
	row.Errors = errs

	if !valid {
		v.logger.Debug("Row failed validation",
			zap.Int("rowIndex", row.OriginalIndex),
			zap.Strings("errors", errs))
	}
}
