package workbook

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/hkporter/hkporter/internal/review"
)

// The hidden Stats sheet is the formula surface of the aggregate
// metrics engine: every cell recomputes from the live Status columns of
// the two finding sheets, so edits in Excel keep the Dashboard honest.
//
// Layout: A/B hold the global KPI cells, D..N hold the per-category
// breakdown (category, live failed/discuss/not relevant/fixed/passed,
// initial pass/fail, total, % compliant, chart label).

func writeStatsSheet(f *excelize.File, session *review.Session) error {
	if err := f.SetSheetRow(sheetStats, "A1", &[]interface{}{"Overall Status", "Count"}); err != nil {
		return err
	}
	catHeader := []interface{}{
		"Category", "Live Failed", "Live Discuss", "Live Not Relevant",
		"Live Fixed", "Live Passed", "Init Pass", "Init Fail", "Total",
		"% Compliant", "Chart Label",
	}
	if err := f.SetSheetRow(sheetStats, "D1", &catHeader); err != nil {
		return err
	}

	initPass := make(map[string]int)
	initFail := make(map[string]int)
	for _, finding := range session.Findings() {
		if finding.Failed() {
			initFail[finding.Category]++
		} else {
			initPass[finding.Category]++
		}
	}
	categories := make([]string, 0, len(initPass)+len(initFail))
	seen := make(map[string]bool)
	for _, finding := range session.Findings() {
		if !seen[finding.Category] {
			seen[finding.Category] = true
			categories = append(categories, finding.Category)
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		if initFail[categories[i]] != initFail[categories[j]] {
			return initFail[categories[i]] < initFail[categories[j]]
		}
		return categories[i] < categories[j]
	})

	for i, category := range categories {
		if err := writeCategoryRow(f, i+2, category, initPass[category], initFail[category]); err != nil {
			return err
		}
	}

	return writeKPICells(f, len(session.Findings()))
}

// writeCategoryRow fills one category line. Live counts subtract the
// annotated rows from the frozen initial counts, mirroring
// review.CategoryStatsDerived.
func writeCategoryRow(f *excelize.File, r int, category string, initPass, initFail int) error {
	if err := f.SetCellValue(sheetStats, cell("D", r), category); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetStats, cell("J", r), initPass); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetStats, cell("K", r), initFail); err != nil {
		return err
	}

	catRef := cell("D", r)
	formulas := map[string]string{
		// Live Failed: initial failures minus the action items resolved
		// or set aside by the reviewer.
		"E": fmt.Sprintf("%s-%s-%s-%s",
			cell("K", r),
			countStatusForCategory(sheetActions, catRef, "Fixed"),
			countStatusForCategory(sheetActions, catRef, "To Discuss"),
			countStatusForCategory(sheetActions, catRef, "Not Relevant")),
		"F": fmt.Sprintf("%s+%s",
			countStatusForCategory(sheetActions, catRef, "To Discuss"),
			countStatusForCategory(sheetPassed, catRef, "To Discuss")),
		"G": fmt.Sprintf("%s+%s",
			countStatusForCategory(sheetActions, catRef, "Not Relevant"),
			countStatusForCategory(sheetPassed, catRef, "Not Relevant")),
		"H": fmt.Sprintf("%s+%s",
			countStatusForCategory(sheetActions, catRef, "Fixed"),
			countStatusForCategory(sheetPassed, catRef, "Fixed")),
		// Live Passed: initially-passed rows the reviewer has not
		// reclassified.
		"I": fmt.Sprintf("%s-%s-%s-%s",
			cell("J", r),
			countStatusForCategory(sheetPassed, catRef, "To Discuss"),
			countStatusForCategory(sheetPassed, catRef, "Not Relevant"),
			countStatusForCategory(sheetPassed, catRef, "Fixed")),
		"L": fmt.Sprintf("%s+%s+%s+%s+%s",
			cell("E", r), cell("F", r), cell("G", r), cell("H", r), cell("I", r)),
		// % Compliant: (Fixed + Passed) / (Total - Not Relevant),
		// zero denominator yields 0.
		"M": fmt.Sprintf("IF((%s-%s)=0,0,(%s+%s)/(%s-%s))",
			cell("L", r), cell("G", r), cell("H", r), cell("I", r), cell("L", r), cell("G", r)),
		"N": fmt.Sprintf(`%s&" ("&TEXT(%s,"0%%")&")"`, cell("D", r), cell("M", r)),
	}
	for col, formula := range formulas {
		if err := f.SetCellFormula(sheetStats, cell(col, r), formula); err != nil {
			return err
		}
	}
	return nil
}

// writeKPICells fills the global view: four counted buckets and Failed
// as the residual against the grand total.
func writeKPICells(f *excelize.File, total int) error {
	kpis := []struct {
		label   string
		formula string
	}{
		{"Passed", countStatus(sheetPassed, "Passed")},
		{"Fixed", countStatus(sheetActions, "Fixed") + "+" + countStatus(sheetPassed, "Fixed")},
		{"To Discuss", countStatus(sheetActions, "To Discuss") + "+" + countStatus(sheetPassed, "To Discuss")},
		{"Not Relevant", countStatus(sheetActions, "Not Relevant") + "+" + countStatus(sheetPassed, "Not Relevant")},
		{"Failed", fmt.Sprintf("%d-B2-B3-B4-B5", total)},
	}
	for i, kpi := range kpis {
		r := i + 2
		if err := f.SetCellValue(sheetStats, cell("A", r), kpi.label); err != nil {
			return err
		}
		if err := f.SetCellFormula(sheetStats, cell("B", r), kpi.formula); err != nil {
			return err
		}
	}
	return nil
}

func countStatus(sheet, status string) string {
	return fmt.Sprintf(`COUNTIF('%s'!%s:%s,"%s")`, sheet, statusCol, statusCol, status)
}

func countStatusForCategory(sheet, catRef, status string) string {
	return fmt.Sprintf(`COUNTIFS('%s'!%s:%s,%s,'%s'!%s:%s,"%s")`,
		sheet, categoryCol, categoryCol, catRef, sheet, statusCol, statusCol, status)
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
