// Package workbook renders the structured xlsx review surface: editable
// finding tables plus a live statistics layer whose formulas recompute
// the same compliance arithmetic as the review package while the
// spreadsheet is edited.
package workbook

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hkporter/hkporter/internal/hardening"
	"github.com/hkporter/hkporter/internal/remediation"
	"github.com/hkporter/hkporter/internal/review"
)

const (
	sheetDashboard = "Dashboard"
	sheetActions   = "Action Items"
	sheetPassed    = "Passed Checks"
	sheetNotes     = "Notes"
	sheetStats     = "Stats"
)

// StatusOptions is the fixed enumeration of the reviewer-editable
// Status column on both finding sheets.
var StatusOptions = []string{"Fixed", "Not Relevant", "To Discuss", "Can't Fix/Exclude"}

var findingColumns = []string{
	"CIS", "Category", "Description", "Method", "MethodArgument",
	"RegistryPath", "RegistryItem", "Result", "Recommended", "Fix",
	"Status", "RiskScore",
}

// Column letters the live formulas reference. Derived from
// findingColumns; both finding sheets share the layout.
var (
	categoryCol = columnLetter("Category")
	statusCol   = columnLetter("Status")
)

// Meta labels the generated workbook.
type Meta struct {
	Title       string
	RunID       string
	GeneratedAt time.Time
}

// Write renders the workbook for the session's finding set to path.
// Review state already applied to the session (for instance from a
// progress file) is written into the Status columns; from there the
// workbook's own cells take over.
func Write(path string, session *review.Session, meta Meta) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetDashboard); err != nil {
		return err
	}
	for _, name := range []string{sheetActions, sheetPassed, sheetNotes, sheetStats} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	var failed, passed []hardening.Finding
	var failedStatus, passedStatus []string
	for _, finding := range session.Findings() {
		status, err := session.Status(finding.ID)
		if err != nil {
			return err
		}
		if finding.Failed() {
			failed = append(failed, finding)
			failedStatus = append(failedStatus, statusCell(status))
		} else {
			passed = append(passed, finding)
			passedStatus = append(passedStatus, statusCell(status))
		}
	}

	if err := writeFindingSheet(f, sheetActions, failed, failedStatus); err != nil {
		return err
	}
	if err := writeFindingSheet(f, sheetPassed, passed, passedStatus); err != nil {
		return err
	}
	if err := writeNotesSheet(f); err != nil {
		return err
	}
	if err := writeStatsSheet(f, session); err != nil {
		return err
	}
	if err := writeDashboard(f, session, meta); err != nil {
		return err
	}

	if err := f.SetSheetVisible(sheetStats, false); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// statusCell maps a live status to its Status column value. Pending is
// the empty cell; everything the formulas count is written verbatim.
func statusCell(status review.Status) string {
	if status == review.StatusPending {
		return ""
	}
	return string(status)
}

// writeFindingSheet fills one finding table. Registry paths are written
// in display form (root key without the PowerShell drive colon); the
// Fix column keeps the executable form with the colon. statuses is
// parallel to findings.
func writeFindingSheet(f *excelize.File, sheet string, findings []hardening.Finding, statuses []string) error {
	header := make([]interface{}, len(findingColumns))
	for i, c := range findingColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, finding := range findings {
		registryPath := ""
		if finding.RegistryPath != nil {
			registryPath = remediation.DisplayPath(*finding.RegistryPath)
		}
		registryItem := ""
		if finding.RegistryItem != nil {
			registryItem = *finding.RegistryItem
		}

		row := []interface{}{
			finding.CIS,
			finding.Category,
			finding.DisplayDescription(),
			finding.Method,
			finding.MethodArgument,
			registryPath,
			registryItem,
			finding.Result,
			finding.ExpectedValue(),
			finding.Remediation,
			statuses[i],
			finding.RiskScore,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	lastRow := len(findings) + 1
	if lastRow < 2 {
		lastRow = 2
	}
	dv := excelize.NewDataValidation(true)
	dv.Sqref = fmt.Sprintf("%s2:%s%d", statusCol, statusCol, lastRow)
	if err := dv.SetDropList(StatusOptions); err != nil {
		return err
	}
	if err := f.AddDataValidation(sheet, dv); err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, statusCol, statusCol, 18); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, categoryCol, categoryCol, 25); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeNotesSheet(f *excelize.File) error {
	header := []interface{}{"Date", "Author", "Category/Control", "Note/Comment"}
	if err := f.SetSheetRow(sheetNotes, "A1", &header); err != nil {
		return err
	}
	widths := map[string]float64{"A": 15, "B": 20, "C": 30, "D": 60}
	for col, w := range widths {
		if err := f.SetColWidth(sheetNotes, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

func columnLetter(name string) string {
	for i, c := range findingColumns {
		if c == name {
			letter, _ := excelize.ColumnNumberToName(i + 1)
			return letter
		}
	}
	return ""
}
