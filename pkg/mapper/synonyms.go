// pkg/mapper/synonyms.go
package mapper

import "github.com/pfman/portfolio-import/pkg/model"

// synonym pairs a column-name alias with the canonical field it suggests.
type synonym struct {
	key   string
	field model.Field
}

// synonyms is the priority list driving mapping suggestions. Order matters:
// fuzzy and word-overlap lookups take the first matching entry, so the slice
// order is a committed part of the suggestion behavior, not an accident of
// container iteration.
var synonyms = []synonym{
	// ID
	{"id", model.FieldID},
	{"identifier", model.FieldID},
	{"prop_id", model.FieldID},
	{"property_id", model.FieldID},
	{"asset_id", model.FieldID},
	{"building_id", model.FieldID},
	// Name
	{"name", model.FieldName},
	{"building_name", model.FieldName},
	{"property_name", model.FieldName},
	{"asset_name", model.FieldName},
	// Unit
	{"unit", model.FieldUnit},
	{"unit_number", model.FieldUnit},
	{"suite", model.FieldUnit},
	{"apartment", model.FieldUnit},
	{"apt", model.FieldUnit},
	// House number
	{"house_number", model.FieldHouseNumber},
	{"house no", model.FieldHouseNumber},
	{"house_no", model.FieldHouseNumber},
	{"houseno", model.FieldHouseNumber},
	{"number", model.FieldHouseNumber},
	{"building_no", model.FieldHouseNumber},
	{"bldg_no", model.FieldHouseNumber},
	{"building number", model.FieldHouseNumber},
	// Street
	{"street", model.FieldStreet},
	{"street_name", model.FieldStreet},
	{"road", model.FieldStreet},
	{"rd", model.FieldStreet},
	{"avenue", model.FieldStreet},
	{"ave", model.FieldStreet},
	{"blvd", model.FieldStreet},
	{"boulevard", model.FieldStreet},
	{"dr", model.FieldStreet},
	{"drive", model.FieldStreet},
	{"lane", model.FieldStreet},
	{"way", model.FieldStreet},
	// Address line
	{"address", model.FieldAddressLine},
	{"address_line", model.FieldAddressLine},
	{"address_line_1", model.FieldAddressLine},
	{"address line 1", model.FieldAddressLine},
	{"addr line 1", model.FieldAddressLine},
	{"addr_line_1", model.FieldAddressLine},
	{"addr", model.FieldAddressLine},
	{"street_address", model.FieldAddressLine},
	// Other fields
	{"neighborhood", model.FieldNeighborhood},
	{"neighbourhood", model.FieldNeighborhood},
	{"district", model.FieldNeighborhood},
	{"area", model.FieldNeighborhood},
	{"city", model.FieldCity},
	{"town", model.FieldCity},
	{"locality", model.FieldCity},
	{"municipality", model.FieldCity},
	{"county", model.FieldCounty},
	{"parish", model.FieldCounty},
	{"state", model.FieldState},
	{"state_code", model.FieldStateCode},
	{"province", model.FieldState},
	{"region", model.FieldState},
	{"territory", model.FieldState},
	{"country", model.FieldCountry},
	{"country_code", model.FieldCountryCode},
	{"nation", model.FieldCountry},
	{"postal_code", model.FieldPostalCode},
	{"zip", model.FieldPostalCode},
	{"zip_code", model.FieldPostalCode},
	{"zipcode", model.FieldPostalCode},
	{"postcode", model.FieldPostalCode},
	{"postal code", model.FieldPostalCode},
	{"zip code", model.FieldPostalCode},
	{"formatted_address", model.FieldFormattedAddress},
	{"full_address", model.FieldFormattedAddress},
	{"complete_address", model.FieldFormattedAddress},
	{"latitude", model.FieldLatitude},
	{"lat", model.FieldLatitude},
	{"y", model.FieldLatitude},
	{"longitude", model.FieldLongitude},
	{"lng", model.FieldLongitude},
	{"lon", model.FieldLongitude},
	{"long", model.FieldLongitude},
	{"x", model.FieldLongitude},
}

// exactIndex serves the two exact-match stages of the lookup ladder.
var exactIndex = func() map[string]model.Field {
	idx := make(map[string]model.Field, len(synonyms))
	for _, s := range synonyms {
		if _, ok := idx[s.key]; !ok {
			idx[s.key] = s.field
		}
	}
	return idx
}()
