package workbook

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hkporter/hkporter/internal/review"
)

func writeDashboard(f *excelize.File, session *review.Session, meta Meta) error {
	total := len(session.Findings())

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 24, Color: "203764"},
	})
	if err != nil {
		return err
	}
	headStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	valueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 22},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F2F2F2"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	pctFmt := "0.0%"
	pctStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 22},
		Fill:         excelize.Fill{Type: "pattern", Color: []string{"F2F2F2"}, Pattern: 1},
		CustomNumFmt: &pctFmt,
	})
	if err != nil {
		return err
	}

	if err := f.SetColWidth(sheetDashboard, "B", "H", 20); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetDashboard, "B2", meta.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetDashboard, "B2", "B2", titleStyle); err != nil {
		return err
	}

	headers := []interface{}{
		"Compliance Score", "Total Controls", "Passed Checks",
		"Fixed Checks", "Failed Checks", "To Discuss", "Not Relevant",
	}
	if err := f.SetSheetRow(sheetDashboard, "B5", &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetDashboard, "B5", "H5", headStyle); err != nil {
		return err
	}

	// Compliance score from the Stats KPI cells, with the same zero
	// guard as every other surface.
	scoreFormula := fmt.Sprintf("IF((%d-Stats!B5)=0,0,(Stats!B2+Stats!B3)/(%d-Stats!B5))", total, total)
	if err := f.SetCellFormula(sheetDashboard, "B6", scoreFormula); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetDashboard, "C6", total); err != nil {
		return err
	}
	kpiRefs := map[string]string{
		"D6": "Stats!B2", // Passed
		"E6": "Stats!B3", // Fixed
		"F6": "Stats!B6", // Failed
		"G6": "Stats!B4", // To Discuss
		"H6": "Stats!B5", // Not Relevant
	}
	for cellRef, formula := range kpiRefs {
		if err := f.SetCellFormula(sheetDashboard, cellRef, formula); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheetDashboard, "B6", "B6", pctStyle); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetDashboard, "C6", "H6", valueStyle); err != nil {
		return err
	}

	generated := meta.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	if err := f.SetCellValue(sheetDashboard, "B9", fmt.Sprintf("Run %s", meta.RunID)); err != nil {
		return err
	}
	return f.SetCellValue(sheetDashboard, "B10", fmt.Sprintf("Generated %s", generated.UTC().Format(time.RFC3339)))
}
