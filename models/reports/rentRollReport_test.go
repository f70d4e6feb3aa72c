package reports

import (
	"testing"

	"bitbucket.org/mmdatafocus/assets_backend/models"
	"bitbucket.org/mmdatafocus/assets_backend/odoo"
)

func property(id int, ref string, main int) *models.Property {
	p := &models.Property{
		Id:          id,
		ReferenceId: odoo.Text{Value: ref, Valid: ref != ""},
	}
	if main != 0 {
		p.MainPropertyId = odoo.Many2One{Id: main, Valid: true}
	}
	return p
}

func TestSortRowsByRefGermanCollation(t *testing.T) {
	rows := []reportRow{
		{ref: "B1"},
		{ref: "Ä1"},
		{ref: "A2"},
	}
	sortRowsByRef(rows)
	got := []string{rows[0].ref, rows[1].ref, rows[2].ref}
	want := []string{"A2", "Ä1", "B1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestBuildAssetIndexFirstSeenWins(t *testing.T) {
	properties := []*models.Property{
		property(1, "A1", 0),
		property(2, "A1-sub", 1), // same main asset, must not displace id 1
		property(3, "B1", 0),
	}
	index, mainIds := buildAssetIndex(properties)

	if len(index) != 2 {
		t.Fatalf("index size = %d, want 2", len(index))
	}
	if index[1].Id != 1 {
		t.Errorf("main 1 resolved to property %d, want 1", index[1].Id)
	}
	if len(mainIds) != 2 || mainIds[0] != 1 || mainIds[1] != 3 {
		t.Errorf("mainIds = %v, want [1 3]", mainIds)
	}
}

func TestGroupTenanciesDropsUnattributable(t *testing.T) {
	index, _ := buildAssetIndex([]*models.Property{property(1, "A1", 0)})
	tenancies := []*models.Tenancy{
		{Id: 10, MainPropertyId: odoo.Many2One{Id: 1, Valid: true}},
		{Id: 11, MainPropertyId: odoo.Many2One{Id: 99, Valid: true}}, // unknown main
		{Id: 12},                                                    // no main at all
	}
	grouped := groupTenancies(index, tenancies)

	if len(grouped) != 1 || len(grouped[1]) != 1 || grouped[1][0].Id != 10 {
		t.Errorf("grouped = %v", grouped)
	}
}

func TestBuildRentRollRowsKeepsUnattributableLeases(t *testing.T) {
	index, _ := buildAssetIndex([]*models.Property{property(1, "A1", 0)})
	tenancies := []*models.Tenancy{
		{Id: 10, MainPropertyId: odoo.Many2One{Id: 1, Valid: true}, Name: odoo.Text{Value: "Attributed", Valid: true}},
		{Id: 11, MainPropertyId: odoo.Many2One{Id: 99, Valid: true}, Name: odoo.Text{Value: "Orphan", Valid: true}},
	}
	columns := []ColumnKey{ColReferenceId, ColTenancyName}
	rows := buildRentRollRows(index, tenancies, nil, columns, testNow)

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	// Orphans sort with an empty reference, ahead of named assets.
	if rows[0].cells[0] != nil || rows[0].cells[1] != "Orphan" {
		t.Errorf("orphan row = %v", rows[0].cells)
	}
	if rows[1].cells[0] != "A1" || rows[1].cells[1] != "Attributed" {
		t.Errorf("attributed row = %v", rows[1].cells)
	}
}

func TestStreetNrCell(t *testing.T) {
	tests := []struct {
		name   string
		street string
		nr     string
		want   any
	}{
		{"both", "Hauptstrasse", "12", "Hauptstrasse 12"},
		{"street only", "Hauptstrasse", "", "Hauptstrasse"},
		{"nr only", "", "12", "12"},
		{"neither", "", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := &models.Property{
				Street: odoo.Text{Value: tt.street, Valid: tt.street != ""},
				Nr:     odoo.Text{Value: tt.nr, Valid: tt.nr != ""},
			}
			if got := streetNrCell(asset); got != tt.want {
				t.Errorf("streetNrCell = %v, want %v", got, tt.want)
			}
		})
	}

	if got := streetNrCell(nil); got != nil {
		t.Errorf("nil asset = %v, want nil", got)
	}
}
