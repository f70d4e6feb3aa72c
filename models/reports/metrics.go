package reports

import (
	"fmt"
	"strconv"
	"time"

	"bitbucket.org/mmdatafocus/assets_backend/models"
	"bitbucket.org/mmdatafocus/assets_backend/odoo"
	"bitbucket.org/mmdatafocus/assets_backend/utils"
)

// WaltMonthToMonth is the sentinel rendered when a lease has no determinable
// fixed term.
const WaltMonthToMonth = "M2M"

const daysPerYear = 365.25

var erpDateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05"}

func parseErpDate(s string) (time.Time, bool) {
	for _, layout := range erpDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// leaseWALT computes the remaining lease term in years for one lease.
// A lease that already ended, or that has a start but no parseable end, is
// month-to-month. No start and no end means a flat 0. Unparseable dates count
// as absent.
func leaseWALT(start, end string, now time.Time) (years float64, m2m bool) {
	endDate, ok := parseErpDate(end)
	if !ok {
		if _, hasStart := parseErpDate(start); hasStart {
			return 0, true
		}
		return 0, false
	}
	years = endDate.Sub(now).Hours() / 24 / daysPerYear
	if years < 0 {
		return 0, true
	}
	return utils.RoundTo(years, 2), false
}

// waltCell renders the WALT figure for one Rent Roll cell: either the sentinel
// string or the rounded number of years.
func waltCell(start, end string, now time.Time) any {
	years, m2m := leaseWALT(start, end, now)
	if m2m {
		return WaltMonthToMonth
	}
	return years
}

// monthlyPSM converts the annual rent figure to monthly rent per unit of
// leased area. Non-positive areas yield 0 rather than an error.
func monthlyPSM(annualRent, space float64) float64 {
	if space <= 0 {
		return 0
	}
	return annualRent / 12 / space
}

type optionsFold struct {
	Count    int
	Duration float64
}

// foldTenancyOptions collapses option rows per tenancy: the count accumulates,
// the duration keeps the most recently seen non-null value.
func foldTenancyOptions(options []*models.TenancyOption) map[int]optionsFold {
	folded := make(map[int]optionsFold, len(options))
	for _, opt := range options {
		if !opt.TenancyId.Valid {
			continue
		}
		f := folded[opt.TenancyId.Id]
		f.Count++
		if opt.OptionDuration.Valid {
			f.Duration = opt.OptionDuration.Value
		}
		folded[opt.TenancyId.Id] = f
	}
	return folded
}

// Summary renders "2.5yrs x 3", or an empty string when there is nothing
// meaningful to show.
func (f optionsFold) Summary() string {
	if f.Count <= 0 || f.Duration <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1fyrs x %d", utils.RoundTo(f.Duration, 1), f.Count)
}

// constructionDisplay renders "1994 / 2018", a single year alone, or an empty
// string. A zero year counts as not set (partial ERP data).
func constructionDisplay(construction, modernization odoo.Int) string {
	hasConstruction := construction.Valid && construction.Value != 0
	hasModernization := modernization.Valid && modernization.Value != 0
	switch {
	case hasConstruction && hasModernization:
		return fmt.Sprintf("%d / %d", construction.Value, modernization.Value)
	case hasConstruction:
		return strconv.Itoa(construction.Value)
	case hasModernization:
		return strconv.Itoa(modernization.Value)
	}
	return ""
}

type assetAggregate struct {
	RentableArea float64
	BaseRent     float64
	Walt         float64
}

// aggregateLeases rolls lease metrics up to the asset: areas and rents sum,
// WALT is rent-weighted with month-to-month leases contributing zero years
// but full weight.
func aggregateLeases(leases []*models.Tenancy, now time.Time) assetAggregate {
	var agg assetAggregate
	var weighted float64
	for _, t := range leases {
		rent := t.TotalCurrentRent.Value
		agg.RentableArea += t.Space.Value
		agg.BaseRent += rent
		years, m2m := leaseWALT(t.DateStart.Value, t.DateEndDisplay.Value, now)
		if !m2m {
			weighted += years * rent
		}
	}
	if agg.BaseRent != 0 {
		agg.Walt = utils.RoundTo(weighted/agg.BaseRent, 2)
	}
	return agg
}
