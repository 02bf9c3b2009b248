// pkg/model/fields.go
package model

import "strings"

// Field identifies one of the canonical address attributes a CSV column can
// be mapped to.
type Field string

const (
	FieldID               Field = "id"
	FieldName             Field = "name"
	FieldUnit             Field = "unit"
	FieldHouseNumber      Field = "house_number"
	FieldStreet           Field = "street"
	FieldAddressLine      Field = "address_line"
	FieldNeighborhood     Field = "neighborhood"
	FieldCity             Field = "city"
	FieldCounty           Field = "county"
	FieldState            Field = "state"
	FieldStateCode        Field = "state_code"
	FieldCountry          Field = "country"
	FieldCountryCode      Field = "country_code"
	FieldPostalCode       Field = "postal_code"
	FieldFormattedAddress Field = "formatted_address"
	FieldLatitude         Field = "latitude"
	FieldLongitude        Field = "longitude"

	// FieldIgnored is the sentinel for columns excluded from the import.
	FieldIgnored Field = "ignored"
)

// AddressFields lists every canonical field in its fixed order. The order is
// part of the external contract: it is the column order of the CSV template
// and the field order of payload projection.
var AddressFields = []Field{
	FieldID,
	FieldName,
	FieldUnit,
	FieldHouseNumber,
	FieldStreet,
	FieldAddressLine,
	FieldNeighborhood,
	FieldCity,
	FieldCounty,
	FieldState,
	FieldStateCode,
	FieldCountry,
	FieldCountryCode,
	FieldPostalCode,
	FieldFormattedAddress,
	FieldLatitude,
	FieldLongitude,
}

// IsCanonical reports whether f is one of the canonical address fields
// (the ignored sentinel is not canonical).
func (f Field) IsCanonical() bool {
	for _, af := range AddressFields {
		if f == af {
			return true
		}
	}
	return false
}

// IsCoordinate reports whether f carries a numeric coordinate value.
func (f Field) IsCoordinate() bool {
	return f == FieldLatitude || f == FieldLongitude
}

// Label returns the human-readable form of the field name, e.g.
// "house_number" becomes "House Number".
func (f Field) Label() string {
	words := strings.Split(string(f), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// TemplateHeader returns the header line of the CSV template users can fill
// in, one column per canonical field.
func TemplateHeader() string {
	names := make([]string, len(AddressFields))
	for i, f := range AddressFields {
		names[i] = string(f)
	}
	return strings.Join(names, ",")
}
