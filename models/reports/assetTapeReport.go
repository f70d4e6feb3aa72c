package reports

import (
	"time"

	"bitbucket.org/mmdatafocus/assets_backend/models"
)

// buildAssetTapeRows produces one row per main asset with the fixed Asset
// Tape columns, aggregating the leases attributed to it.
func buildAssetTapeRows(index map[int]*models.Property, grouped map[int][]*models.Tenancy, now time.Time) []reportRow {
	rows := make([]reportRow, 0, len(index))
	for mid, asset := range index {
		agg := aggregateLeases(grouped[mid], now)
		cells := []any{
			textCell(asset.ReferenceId),
			textCell(asset.City),
			streetNrCell(asset),
			textCell(asset.Zip),
			m2oNameCell(asset.EntityId),
			constructionDisplay(asset.ConstructionYear, asset.LastModernization),
			asset.PlotArea.Value,
			asset.NoOfParking.Value,
			agg.RentableArea,
			agg.Walt,
			agg.BaseRent,
		}
		rows = append(rows, reportRow{ref: asset.ReferenceId.Value, cells: cells})
	}
	sortRowsByRef(rows)
	return rows
}
