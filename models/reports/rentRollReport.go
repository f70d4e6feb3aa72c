package reports

import (
	"sort"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/assets_backend/models"
	"bitbucket.org/mmdatafocus/assets_backend/odoo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// reportRow is one output row: cells aligned with the sheet header, plus the
// asset reference the row sorts by.
type reportRow struct {
	ref   string
	cells []any
}

// sortRowsByRef orders rows ascending by asset reference with locale-aware,
// diacritics-sensitive collation, independent of fetch order. A fresh collator
// per call: collate.Collator is not safe for concurrent use.
func sortRowsByRef(rows []reportRow) {
	c := collate.New(language.German)
	sort.SliceStable(rows, func(i, j int) bool {
		return c.CompareString(rows[i].ref, rows[j].ref) < 0
	})
}

// buildAssetIndex maps each main-asset id to its owning property record
// (first seen wins on duplicates) and returns the distinct main ids in
// first-seen order.
func buildAssetIndex(properties []*models.Property) (map[int]*models.Property, []int) {
	index := make(map[int]*models.Property, len(properties))
	var mainIds []int
	for _, p := range properties {
		mid := p.MainId()
		if _, ok := index[mid]; ok {
			continue
		}
		index[mid] = p
		mainIds = append(mainIds, mid)
	}
	return index, mainIds
}

// groupTenancies attributes tenancies to fetched main assets. Tenancies whose
// main asset is not in the index have no aggregation target and are dropped
// here, but they still appear in the Rent Roll.
func groupTenancies(index map[int]*models.Property, tenancies []*models.Tenancy) map[int][]*models.Tenancy {
	grouped := make(map[int][]*models.Tenancy)
	for _, t := range tenancies {
		if !t.MainPropertyId.Valid {
			continue
		}
		mid := t.MainPropertyId.Id
		if _, ok := index[mid]; !ok {
			continue
		}
		grouped[mid] = append(grouped[mid], t)
	}
	return grouped
}

// buildRentRollRows produces one row per tenancy, projecting the requested
// columns in canonical order.
func buildRentRollRows(index map[int]*models.Property, tenancies []*models.Tenancy, options map[int]optionsFold, columns []ColumnKey, now time.Time) []reportRow {
	rows := make([]reportRow, 0, len(tenancies))
	for _, t := range tenancies {
		var asset *models.Property
		if t.MainPropertyId.Valid {
			asset = index[t.MainPropertyId.Id]
		}
		ref := ""
		if asset != nil {
			ref = asset.ReferenceId.Value
		}

		cells := make([]any, len(columns))
		for i, key := range columns {
			cells[i] = rentRollCell(key, asset, t, options[t.Id], now)
		}
		rows = append(rows, reportRow{ref: ref, cells: cells})
	}
	sortRowsByRef(rows)
	return rows
}

func rentRollCell(key ColumnKey, asset *models.Property, t *models.Tenancy, opts optionsFold, now time.Time) any {
	switch key {
	case ColReferenceId:
		if asset == nil {
			return nil
		}
		return textCell(asset.ReferenceId)
	case ColCity:
		if asset == nil {
			return nil
		}
		return textCell(asset.City)
	case ColStreetNr:
		return streetNrCell(asset)
	case ColZip:
		if asset == nil {
			return nil
		}
		return textCell(asset.Zip)
	case ColLocationName:
		if asset == nil {
			return nil
		}
		return m2oNameCell(asset.LocationId)
	case ColTenancyName:
		return textCell(t.Name)
	case ColGla:
		return t.Space.Value
	case ColDateStart:
		return textCell(t.DateStart)
	case ColDateEndDisplay:
		return textCell(t.DateEndDisplay)
	case ColWalt:
		return waltCell(t.DateStart.Value, t.DateEndDisplay.Value, now)
	case ColTotalCurrentRent:
		return t.TotalCurrentRent.Value
	case ColPsm:
		return monthlyPSM(t.CurrentRent.Value, t.Space.Value)
	case ColOptionsSummary:
		return opts.Summary()
	case ColCurrentRent:
		return t.CurrentRent.Value
	case ColAncillaryCosts:
		return t.CurrentAncillaryCosts.Value
	}
	return nil
}

// textCell renders a string field, with "not set" as a blank cell.
func textCell(t odoo.Text) any {
	if !t.Valid || t.Value == "" {
		return nil
	}
	return t.Value
}

func m2oNameCell(m odoo.Many2One) any {
	if !m.Valid || m.Name == "" {
		return nil
	}
	return m.Name
}

func streetNrCell(asset *models.Property) any {
	if asset == nil {
		return nil
	}
	street := strings.TrimSpace(strings.TrimSpace(asset.Street.Value) + " " + strings.TrimSpace(asset.Nr.Value))
	if street == "" {
		return nil
	}
	return street
}
