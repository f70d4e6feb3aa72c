package models

import (
	"bitbucket.org/mmdatafocus/assets_backend/odoo"
)

// ERP model names used by the report pipeline.
const (
	ModelProperty      = "property.property"
	ModelTenancy       = "property.tenancy"
	ModelTenancyOption = "property.tenancy.option"
	ModelCompany       = "res.company"
)

// Property is one asset record. A property either is a main asset itself or
// points at one through main_property_id.
type Property struct {
	Id                int           `json:"id"`
	ReferenceId       odoo.Text     `json:"reference_id"`
	MainPropertyId    odoo.Many2One `json:"main_property_id"`
	SalesPersonId     odoo.Many2One `json:"sales_person_id"`
	EntityId          odoo.Many2One `json:"entity_id"`
	LocationId        odoo.Many2One `json:"location_id"`
	City              odoo.Text     `json:"city"`
	Street            odoo.Text     `json:"street"`
	Nr                odoo.Text     `json:"nr"`
	Zip               odoo.Text     `json:"zip"`
	ConstructionYear  odoo.Int      `json:"construction_year"`
	LastModernization odoo.Int      `json:"last_modernization"`
	PlotArea          odoo.Float    `json:"plot_area"`
	NoOfParking       odoo.Int      `json:"no_of_parking"`
}

// MainId resolves the main-asset id: the parent when the reference resolves,
// otherwise the property's own id.
func (p *Property) MainId() int {
	if p.MainPropertyId.Valid {
		return p.MainPropertyId.Id
	}
	return p.Id
}

var PropertyFields = []string{
	"id", "reference_id", "main_property_id", "sales_person_id", "entity_id",
	"location_id", "city", "street", "nr", "zip",
	"construction_year", "last_modernization", "plot_area", "no_of_parking",
}

// Tenancy is one lease. current_rent is the annual figure;
// date_end_display is the display-oriented end date, distinct from any
// contractual end.
type Tenancy struct {
	Id                    int           `json:"id"`
	MainPropertyId        odoo.Many2One `json:"main_property_id"`
	Name                  odoo.Text     `json:"name"`
	Space                 odoo.Float    `json:"space"`
	CurrentRent           odoo.Float    `json:"current_rent"`
	TotalCurrentRent      odoo.Float    `json:"total_current_rent"`
	CurrentAncillaryCosts odoo.Float    `json:"current_ancillary_costs"`
	DateStart             odoo.Text     `json:"date_start"`
	DateEndDisplay        odoo.Text     `json:"date_end_display"`
}

var TenancyFields = []string{
	"id", "main_property_id", "name", "space", "current_rent",
	"total_current_rent", "current_ancillary_costs", "date_start", "date_end_display",
}

// TenancyOption is one renewal option row; a lease may carry several.
type TenancyOption struct {
	Id             int           `json:"id"`
	TenancyId      odoo.Many2One `json:"tenancy_id"`
	OptionDuration odoo.Float    `json:"option_duration"`
}

var TenancyOptionFields = []string{"id", "tenancy_id", "option_duration"}
