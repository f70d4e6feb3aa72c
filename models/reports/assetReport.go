package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/assets_backend/config"
	"bitbucket.org/mmdatafocus/assets_backend/models"
	"bitbucket.org/mmdatafocus/assets_backend/odoo"
	"bitbucket.org/mmdatafocus/assets_backend/utils"
)

// Report types accepted by the export endpoint.
const (
	ReportTypeRentRoll  = "rent_roll"
	ReportTypeAssetTape = "asset_tape"
	ReportTypeBoth      = "both"
)

// AssetReportRequest is the export request body. ReferenceIds empty means no
// reference filter; Columns applies to the Rent Roll only.
type AssetReportRequest struct {
	ReportType   string   `json:"reportType" binding:"required,oneof=rent_roll asset_tape both"`
	ReferenceIds []string `json:"referenceIds" binding:"omitempty,dive,min=1"`
	Columns      []string `json:"columns"`
	FundName     string   `json:"fundName"`
	OperatorCode string   `json:"operatorCode"`
}

// fundNames is the closed set of fund entities a caller may filter by; the
// company id behind a name is resolved through res.company at request time.
var fundNames = map[string]bool{
	"RE Fund I":        true,
	"RE Fund II":       true,
	"RE Opportunities": true,
	"Urban Core":       true,
}

// operatorIds maps operator short codes to their fixed ERP user ids. Static
// on purpose: these four never change without a deploy anyway.
var operatorIds = map[string]int{
	"ac": 2,
	"mf": 3,
	"sw": 4,
	"rv": 6,
}

var (
	ErrUnknownFund     = errors.New("unknown fund name")
	ErrUnknownOperator = errors.New("unknown operator code")
	ErrNoValidColumns  = errors.New("no valid columns requested")
	ErrNoAssetsFound   = fmt.Errorf("%w: no assets matched the given filters", utils.ErrorRecordNotFound)
)

// RecordGateway is the slice of the ERP client the report pipeline needs.
type RecordGateway interface {
	SearchRead(ctx context.Context, model string, domain []any, fields []string, limit, offset int, dest any) error
}

// ExportFile is a generated workbook ready to be sent as an attachment.
type ExportFile struct {
	Name        string
	ContentType string
	Content     []byte
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GenerateAssetReport runs the whole pipeline for one request: validate the
// closed-enum filters, fetch assets / tenancies / options, compute metrics,
// project rows and serialize one or two sheets. All fetched records are a
// read-only snapshot owned by this call.
func GenerateAssetReport(ctx context.Context, gw RecordGateway, req *AssetReportRequest) (*ExportFile, error) {
	logger := config.GetLogger()
	started := time.Now()

	wantRentRoll := req.ReportType == ReportTypeRentRoll || req.ReportType == ReportTypeBoth
	wantAssetTape := req.ReportType == ReportTypeAssetTape || req.ReportType == ReportTypeBoth

	var columns []ColumnKey
	if wantRentRoll {
		if len(req.Columns) == 0 {
			columns = DefaultRentRollColumns
		} else {
			columns = FilterRentRollColumns(req.Columns)
			if len(columns) == 0 {
				return nil, ErrNoValidColumns
			}
		}
	}

	// Closed-enum filters are checked before anything costs an RPC round-trip.
	var operatorId int
	if req.OperatorCode != "" {
		id, ok := operatorIds[req.OperatorCode]
		if !ok {
			return nil, ErrUnknownOperator
		}
		operatorId = id
	}
	if req.FundName != "" && !fundNames[req.FundName] {
		return nil, ErrUnknownFund
	}

	cacheKey := reportCacheKey(req)
	if content, ok := cachedReport(cacheKey); ok {
		return exportFile(content, started), nil
	}
	unlock := lockReport(ctx, cacheKey)
	defer unlock()
	if content, ok := cachedReport(cacheKey); ok {
		// someone else generated it while we waited for the lock
		return exportFile(content, started), nil
	}

	domain := []any{}
	if len(req.ReferenceIds) > 0 {
		domain = append(domain, []any{"reference_id", "in", req.ReferenceIds})
	}
	if operatorId != 0 {
		domain = append(domain, []any{"sales_person_id", "=", operatorId})
	}
	if req.FundName != "" {
		companyId, err := resolveFundCompany(ctx, gw, req.FundName)
		if err != nil {
			return nil, err
		}
		domain = append(domain, []any{"entity_id", "=", companyId})
	}

	var properties []*models.Property
	if err := gw.SearchRead(ctx, models.ModelProperty, domain, models.PropertyFields, 0, 0, &properties); err != nil {
		config.LogError(logger, "assetReport.go", "GenerateAssetReport", "fetch properties", domain, err)
		return nil, err
	}
	if len(properties) == 0 {
		return nil, ErrNoAssetsFound
	}

	index, mainIds := buildAssetIndex(properties)

	var tenancies []*models.Tenancy
	tenancyDomain := []any{[]any{"main_property_id", "in", mainIds}}
	if err := gw.SearchRead(ctx, models.ModelTenancy, tenancyDomain, models.TenancyFields, 0, 0, &tenancies); err != nil {
		config.LogError(logger, "assetReport.go", "GenerateAssetReport", "fetch tenancies", tenancyDomain, err)
		return nil, err
	}

	var options []*models.TenancyOption
	if len(tenancies) > 0 {
		ids := make([]int, len(tenancies))
		for i, t := range tenancies {
			ids[i] = t.Id
		}
		optionDomain := []any{[]any{"tenancy_id", "in", ids}}
		if err := gw.SearchRead(ctx, models.ModelTenancyOption, optionDomain, models.TenancyOptionFields, 0, 0, &options); err != nil {
			config.LogError(logger, "assetReport.go", "GenerateAssetReport", "fetch tenancy options", optionDomain, err)
			return nil, err
		}
	}

	folded := foldTenancyOptions(options)
	now := time.Now()

	wb := newWorkbook()
	if wantRentRoll {
		rows := buildRentRollRows(index, tenancies, folded, columns, now)
		if err := wb.AddSheet(SheetRentRoll, rentRollHeader(columns), rows); err != nil {
			return nil, err
		}
	}
	if wantAssetTape {
		rows := buildAssetTapeRows(index, groupTenancies(index, tenancies), now)
		if err := wb.AddSheet(SheetAssetTape, assetTapeHeader, rows); err != nil {
			return nil, err
		}
	}

	content, err := wb.Bytes()
	if err != nil {
		config.LogError(logger, "assetReport.go", "GenerateAssetReport", "serialize workbook", req.ReportType, err)
		return nil, err
	}

	storeReport(cacheKey, content)
	logSlowReport(ctx, "asset_report", started, map[string]any{
		"assets":    len(properties),
		"tenancies": len(tenancies),
	})
	return exportFile(content, started), nil
}

func exportFile(content []byte, started time.Time) *ExportFile {
	return &ExportFile{
		Name:        exportFileName(started),
		ContentType: xlsxContentType,
		Content:     content,
	}
}

type companyRecord struct {
	Id   int       `json:"id"`
	Name odoo.Text `json:"name"`
}

// resolveFundCompany maps a recognized fund name to its company id. A name
// that passes the closed enumeration but has no company behind it is still a
// caller problem, not a gateway one.
func resolveFundCompany(ctx context.Context, gw RecordGateway, name string) (int, error) {
	var companies []companyRecord
	domain := []any{[]any{"name", "=", name}}
	if err := gw.SearchRead(ctx, models.ModelCompany, domain, []string{"id", "name"}, 1, 0, &companies); err != nil {
		return 0, err
	}
	if len(companies) == 0 {
		return 0, ErrUnknownFund
	}
	return companies[0].Id, nil
}
