package reports

// ColumnKey identifies a Rent Roll column a caller may request.
type ColumnKey string

const (
	ColReferenceId      ColumnKey = "reference_id"
	ColCity             ColumnKey = "city"
	ColStreetNr         ColumnKey = "street_nr"
	ColZip              ColumnKey = "zip"
	ColLocationName     ColumnKey = "location_name"
	ColTenancyName      ColumnKey = "tenancy_name"
	ColGla              ColumnKey = "gla"
	ColDateStart        ColumnKey = "tenancy_date_start"
	ColDateEndDisplay   ColumnKey = "tenancy_date_end_display"
	ColWalt             ColumnKey = "walt"
	ColTotalCurrentRent ColumnKey = "total_current_rent"
	ColPsm              ColumnKey = "psm"
	ColOptionsSummary   ColumnKey = "options_summary"
	ColCurrentRent      ColumnKey = "current_rent"
	ColAncillaryCosts   ColumnKey = "current_ancillary_costs"
)

type columnSpec struct {
	Key   ColumnKey
	Label string
}

// rentRollColumns is the closed column registry. Slice order IS the canonical
// display order; requested columns are re-ordered against it, never emitted in
// request order.
var rentRollColumns = []columnSpec{
	{ColReferenceId, "Asset Ref"},
	{ColCity, "City"},
	{ColStreetNr, "Street + Nr"},
	{ColZip, "ZIP"},
	{ColLocationName, "Location"},
	{ColTenancyName, "Tenancy name"},
	{ColGla, "GLA (space)"},
	{ColDateStart, "Date start"},
	{ColDateEndDisplay, "Date end (display)"},
	{ColWalt, "WALT (yrs)"},
	{ColTotalCurrentRent, "Total current rent"},
	{ColPsm, "PSM (monthly)"},
	{ColOptionsSummary, "Options (yrs x count)"},
	{ColCurrentRent, "Current rent"},
	{ColAncillaryCosts, "Ancillary costs (current)"},
}

// DefaultRentRollColumns mirrors the UI preset used when a request carries no
// column selection.
var DefaultRentRollColumns = []ColumnKey{
	ColReferenceId, ColCity, ColStreetNr, ColZip, ColLocationName,
	ColTenancyName, ColGla, ColDateStart, ColDateEndDisplay, ColWalt,
	ColTotalCurrentRent, ColPsm, ColOptionsSummary,
}

func ColumnLabel(key ColumnKey) (string, bool) {
	for _, spec := range rentRollColumns {
		if spec.Key == key {
			return spec.Label, true
		}
	}
	return "", false
}

// FilterRentRollColumns returns the requested keys in canonical order.
// Unknown keys are dropped silently, not reported.
func FilterRentRollColumns(requested []string) []ColumnKey {
	want := make(map[ColumnKey]bool, len(requested))
	for _, k := range requested {
		want[ColumnKey(k)] = true
	}
	var out []ColumnKey
	for _, spec := range rentRollColumns {
		if want[spec.Key] {
			out = append(out, spec.Key)
		}
	}
	return out
}

func rentRollHeader(columns []ColumnKey) []string {
	header := make([]string, len(columns))
	for i, key := range columns {
		label, _ := ColumnLabel(key)
		header[i] = label
	}
	return header
}

// Asset Tape columns are fixed; the caller's column selection does not apply.
var assetTapeHeader = []string{
	"Asset Ref", "City", "Street + Nr", "ZIP", "Entity",
	"Construction / Modernization", "Plot area", "Parking",
	"Rentable area (GLA)", "WALT (yrs)", "Base rent (monthly)",
}
