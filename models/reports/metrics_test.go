package reports

import (
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/assets_backend/models"
	"bitbucket.org/mmdatafocus/assets_backend/odoo"
)

var testNow = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestLeaseWALT(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantYears float64
		wantM2M   bool
	}{
		{"one year remaining", "2020-01-01", "2027-01-01", 1, false},
		{"two years remaining", "2020-01-01", "2028-01-01", 2, false},
		{"ends today", "", "2026-01-01", 0, false},
		{"already ended", "2019-01-01", "2025-06-01", 0, true},
		{"start without end", "2020-01-01", "", 0, true},
		{"start with garbage end", "2020-01-01", "open ended", 0, true},
		{"no dates at all", "", "", 0, false},
		{"datetime end layout", "", "2026-01-01 00:00:00", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			years, m2m := leaseWALT(tt.start, tt.end, testNow)
			if years != tt.wantYears || m2m != tt.wantM2M {
				t.Errorf("leaseWALT(%q, %q) = (%v, %v), want (%v, %v)",
					tt.start, tt.end, years, m2m, tt.wantYears, tt.wantM2M)
			}
		})
	}
}

func TestWaltCell(t *testing.T) {
	if got := waltCell("2020-01-01", "", testNow); got != WaltMonthToMonth {
		t.Errorf("month-to-month cell = %v", got)
	}
	if got := waltCell("", "2028-01-01", testNow); got != 2.0 {
		t.Errorf("fixed-term cell = %v, want 2", got)
	}
}

func TestMonthlyPSM(t *testing.T) {
	tests := []struct {
		name       string
		annualRent float64
		space      float64
		want       float64
	}{
		{"simple", 1200, 100, 1},
		{"zero space", 1200, 0, 0},
		{"negative space", 1200, -5, 0},
		{"zero rent", 0, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := monthlyPSM(tt.annualRent, tt.space); got != tt.want {
				t.Errorf("monthlyPSM(%v, %v) = %v, want %v", tt.annualRent, tt.space, got, tt.want)
			}
		})
	}
}

func TestFoldTenancyOptions(t *testing.T) {
	options := []*models.TenancyOption{
		{Id: 1, TenancyId: odoo.Many2One{Id: 10, Valid: true}, OptionDuration: odoo.Float{Value: 5, Valid: true}},
		{Id: 2, TenancyId: odoo.Many2One{Id: 10, Valid: true}},
		{Id: 3, TenancyId: odoo.Many2One{Id: 10, Valid: true}, OptionDuration: odoo.Float{Value: 2.5, Valid: true}},
		{Id: 4, TenancyId: odoo.Many2One{}, OptionDuration: odoo.Float{Value: 9, Valid: true}},
		{Id: 5, TenancyId: odoo.Many2One{Id: 11, Valid: true}},
	}
	folded := foldTenancyOptions(options)

	if f := folded[10]; f.Count != 3 || f.Duration != 2.5 {
		t.Errorf("tenancy 10 fold = %+v, want count 3 duration 2.5", f)
	}
	if f := folded[11]; f.Count != 1 || f.Duration != 0 {
		t.Errorf("tenancy 11 fold = %+v, want count 1 duration 0", f)
	}
	if _, ok := folded[0]; ok {
		t.Error("unattributed option must not fold under id 0")
	}
}

func TestOptionsSummary(t *testing.T) {
	tests := []struct {
		name string
		fold optionsFold
		want string
	}{
		{"count and duration", optionsFold{Count: 3, Duration: 2.5}, "2.5yrs x 3"},
		{"rounded duration", optionsFold{Count: 1, Duration: 5.04}, "5.0yrs x 1"},
		{"no duration", optionsFold{Count: 2}, ""},
		{"no options", optionsFold{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fold.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConstructionDisplay(t *testing.T) {
	set := func(v int) odoo.Int { return odoo.Int{Value: v, Valid: true} }
	tests := []struct {
		name          string
		construction  odoo.Int
		modernization odoo.Int
		want          string
	}{
		{"both years", set(1994), set(2018), "1994 / 2018"},
		{"construction only", set(1994), odoo.Int{}, "1994"},
		{"modernization only", odoo.Int{}, set(2018), "2018"},
		{"zero counts as unset", set(0), set(2018), "2018"},
		{"neither", odoo.Int{}, odoo.Int{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := constructionDisplay(tt.construction, tt.modernization); got != tt.want {
				t.Errorf("constructionDisplay = %q, want %q", got, tt.want)
			}
		})
	}
}

func tenancy(space, rent float64, start, end string) *models.Tenancy {
	return &models.Tenancy{
		Space:            odoo.Float{Value: space, Valid: space != 0},
		TotalCurrentRent: odoo.Float{Value: rent, Valid: rent != 0},
		DateStart:        odoo.Text{Value: start, Valid: start != ""},
		DateEndDisplay:   odoo.Text{Value: end, Valid: end != ""},
	}
}

func TestAggregateLeases(t *testing.T) {
	t.Run("rent weighted walt", func(t *testing.T) {
		leases := []*models.Tenancy{
			tenancy(100, 1000, "2020-01-01", "2027-01-01"), // 1yr
			tenancy(200, 2000, "2020-01-01", "2028-01-01"), // 2yrs
		}
		agg := aggregateLeases(leases, testNow)
		if agg.RentableArea != 300 {
			t.Errorf("RentableArea = %v, want 300", agg.RentableArea)
		}
		if agg.BaseRent != 3000 {
			t.Errorf("BaseRent = %v, want 3000", agg.BaseRent)
		}
		if agg.Walt != 1.67 {
			t.Errorf("Walt = %v, want 1.67", agg.Walt)
		}
	})

	t.Run("m2m lease weighs in at zero years", func(t *testing.T) {
		leases := []*models.Tenancy{
			tenancy(100, 1000, "2020-01-01", "2028-01-01"), // 2yrs
			tenancy(50, 1000, "2020-01-01", ""),            // M2M
		}
		agg := aggregateLeases(leases, testNow)
		if agg.Walt != 1 {
			t.Errorf("Walt = %v, want 1", agg.Walt)
		}
		if agg.BaseRent != 2000 {
			t.Errorf("BaseRent = %v, want 2000", agg.BaseRent)
		}
	})

	t.Run("zero total rent yields zero walt", func(t *testing.T) {
		leases := []*models.Tenancy{
			tenancy(100, 0, "2020-01-01", "2028-01-01"),
		}
		agg := aggregateLeases(leases, testNow)
		if agg.Walt != 0 {
			t.Errorf("Walt = %v, want 0", agg.Walt)
		}
	})

	t.Run("no leases", func(t *testing.T) {
		agg := aggregateLeases(nil, testNow)
		if agg != (assetAggregate{}) {
			t.Errorf("agg = %+v, want zero value", agg)
		}
	})
}
