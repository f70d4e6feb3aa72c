package reports

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet names by report type.
const (
	SheetRentRoll  = "Rent Roll"
	SheetAssetTape = "Asset Tape"
)

// Sheets are written with a one-row, one-column margin: header at B2.
const (
	sheetOriginRow = 2
	sheetOriginCol = 2
)

// Number display formats. Zero renders as a dash.
const (
	numFmtInteger = `#,##0;-#,##0;"-"`
	numFmtDecimal = `#,##0.00;-#,##0.00;"-"`
	numFmtDate    = "dd/mm/yyyy"
)

// numericFormats maps column labels to their number format. Labels absent
// here (and not date-typed) are written unformatted.
var numericFormats = map[string]string{
	"GLA (space)":               numFmtInteger,
	"Total current rent":        numFmtInteger,
	"Current rent":              numFmtInteger,
	"Ancillary costs (current)": numFmtInteger,
	"Plot area":                 numFmtInteger,
	"Parking":                   numFmtInteger,
	"Rentable area (GLA)":       numFmtInteger,
	"Base rent (monthly)":       numFmtInteger,
	"WALT (yrs)":                numFmtDecimal,
	"PSM (monthly)":             numFmtDecimal,
}

// dateColumns flags labels whose cells are date-typed.
var dateColumns = map[string]bool{
	"Date start":         true,
	"Date end (display)": true,
}

type workbook struct {
	file   *excelize.File
	sheets int
	styles map[string]int // number format -> style id
}

func newWorkbook() *workbook {
	return &workbook{file: excelize.NewFile(), styles: map[string]int{}}
}

func (w *workbook) styleFor(numFmt string) (int, error) {
	if id, ok := w.styles[numFmt]; ok {
		return id, nil
	}
	custom := numFmt
	id, err := w.file.NewStyle(&excelize.Style{CustomNumFmt: &custom})
	if err != nil {
		return 0, err
	}
	w.styles[numFmt] = id
	return id, nil
}

// AddSheet writes one report sheet: header row, data rows, per-column number
// formats and date typing, and an autofilter over the written rectangle.
func (w *workbook) AddSheet(name string, header []string, rows []reportRow) error {
	if _, err := w.file.NewSheet(name); err != nil {
		return err
	}
	w.sheets++

	for i, label := range header {
		cell, err := excelize.CoordinatesToCellName(sheetOriginCol+i, sheetOriginRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(name, cell, label); err != nil {
			return err
		}
	}

	for r, row := range rows {
		for i, value := range row.cells {
			if value == nil {
				// blank, never the literal "null"
				continue
			}
			cell, err := excelize.CoordinatesToCellName(sheetOriginCol+i, sheetOriginRow+1+r)
			if err != nil {
				return err
			}
			if err := w.writeCell(name, cell, header[i], value); err != nil {
				return err
			}
		}
	}

	first, err := excelize.CoordinatesToCellName(sheetOriginCol, sheetOriginRow)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(sheetOriginCol+len(header)-1, sheetOriginRow+len(rows))
	if err != nil {
		return err
	}
	return w.file.AutoFilter(name, first+":"+last, nil)
}

func (w *workbook) writeCell(sheet, cell, label string, value any) error {
	if dateColumns[label] {
		return w.writeDateCell(sheet, cell, value)
	}
	if err := w.file.SetCellValue(sheet, cell, value); err != nil {
		return err
	}
	numFmt, ok := numericFormats[label]
	if !ok || !isNumeric(value) {
		// format codes only go on cells that actually hold numbers
		return nil
	}
	style, err := w.styleFor(numFmt)
	if err != nil {
		return err
	}
	return w.file.SetCellStyle(sheet, cell, cell, style)
}

// writeDateCell writes date-typed columns: time values and strings that parse
// as dates become dd/mm/yyyy date cells, unparseable strings stay plain text.
func (w *workbook) writeDateCell(sheet, cell string, value any) error {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case string:
		parsed, ok := parseErpDate(v)
		if !ok {
			return w.file.SetCellValue(sheet, cell, v)
		}
		t = parsed
	default:
		return w.file.SetCellValue(sheet, cell, value)
	}
	if err := w.file.SetCellValue(sheet, cell, t); err != nil {
		return err
	}
	style, err := w.styleFor(numFmtDate)
	if err != nil {
		return err
	}
	return w.file.SetCellStyle(sheet, cell, cell, style)
}

func isNumeric(value any) bool {
	switch value.(type) {
	case int, int32, int64, float32, float64:
		return true
	}
	return false
}

// Bytes finalizes the workbook; the default sheet excelize creates is dropped
// once at least one report sheet exists.
func (w *workbook) Bytes() ([]byte, error) {
	if w.sheets > 0 {
		if err := w.file.DeleteSheet("Sheet1"); err != nil {
			return nil, err
		}
	}
	buf, err := w.file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportFileName(now time.Time) string {
	return fmt.Sprintf("asset_report_%s.xlsx", now.Format("20060102_150405"))
}
