// pkg/mapper/sufficiency.go
package mapper

import "github.com/pfman/portfolio-import/pkg/model"

// SufficientCombination reports whether the fields answered by has satisfy at
// least one of the four combinations the downstream geocoder can work with:
//
//	formatted_address + country (or country_code)
//	address_line + city + country (or country_code)
//	house_number (or name) + city + country (or country_code)
//	latitude + longitude
//
// The same policy is applied to a whole mapping and to one row's populated
// fields.
func SufficientCombination(has func(model.Field) bool) bool {
	hasCountry := has(model.FieldCountry) || has(model.FieldCountryCode)

	if has(model.FieldFormattedAddress) && hasCountry {
		return true
	}
	if has(model.FieldAddressLine) && has(model.FieldCity) && hasCountry {
		return true
	}
	if (has(model.FieldHouseNumber) || has(model.FieldName)) && has(model.FieldCity) && hasCountry {
		return true
	}
	if has(model.FieldLatitude) && has(model.FieldLongitude) {
		return true
	}

	return false
}

// IsSufficient reports whether the mapping covers enough fields to attempt
// geocoding. Forward navigation out of the mapping step is gated on this.
func IsSufficient(mapping *model.ColumnMapping) bool {
	inUse := make(map[model.Field]bool)
	for _, f := range mapping.MappedFields() {
		inUse[f] = true
	}
	return SufficientCombination(func(f model.Field) bool { return inUse[f] })
}
