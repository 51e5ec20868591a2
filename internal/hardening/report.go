package hardening

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// table is a parsed CSV file: a header index plus raw rows. Header
// lookup is case-sensitive except for the identifier column, which is
// normalized to "ID" on read.
type table struct {
	columns map[string]int
	rows    [][]string
}

func readTable(path string) (*table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q as CSV: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file %q contains no header row", path)
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		name = strings.TrimSpace(name)
		if strings.EqualFold(name, "id") {
			name = "ID"
		}
		columns[name] = i
	}

	return &table{columns: columns, rows: records[1:]}, nil
}

// cell returns the named column of a row, normalized, or "" when the
// column is absent or the row is short.
func (t *table) cell(row []string, column string) string {
	idx, ok := t.columns[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return normalizeCell(row[idx])
}

// optCell is like cell but keeps the absent-column / empty-value
// distinction for optional attributes.
func (t *table) optCell(row []string, column string) *string {
	idx, ok := t.columns[column]
	if !ok || idx >= len(row) {
		return nil
	}
	v := normalizeCell(row[idx])
	if v == "" {
		return nil
	}
	return &v
}

func (t *table) hasColumn(column string) bool {
	_, ok := t.columns[column]
	return ok
}

// ReadScanReport loads the primary scan CSV into findings. A missing or
// unparseable report is fatal; rows without an identifier are skipped
// with a warning since nothing can join against them.
func ReadScanReport(path string, logger hclog.Logger) ([]Finding, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scan report: %w", err)
	}
	if !t.hasColumn("ID") {
		return nil, fmt.Errorf("scan report %q has no ID column", path)
	}

	hasTestResult := t.hasColumn("TestResult")

	findings := make([]Finding, 0, len(t.rows))
	for i, row := range t.rows {
		id := t.cell(row, "ID")
		if id == "" {
			logger.Warn("skipping scan row without an identifier", "row", i+2)
			continue
		}

		f := Finding{
			ID:             id,
			CIS:            id,
			Category:       t.cell(row, "Category"),
			Name:           t.cell(row, "Name"),
			Description:    t.cell(row, "Description"),
			Severity:       t.cell(row, "Severity"),
			Method:         t.cell(row, "Method"),
			MethodArgument: t.cell(row, "MethodArgument"),
			Result:         t.cell(row, "Result"),
			Recommended:    t.cell(row, "Recommended"),

			RegistryPath:     t.optCell(row, "RegistryPath"),
			RegistryItem:     t.optCell(row, "RegistryItem"),
			RecommendedValue: t.optCell(row, "RecommendedValue"),
		}

		if hasTestResult {
			f.TestResult = normalizeTestResult(t.cell(row, "TestResult"))
		} else {
			// A raw result column substitutes for an explicit
			// classification: any mention of "Failed" fails the check.
			f.TestResult = normalizeTestResult(f.Result)
		}

		findings = append(findings, f)
	}

	if len(findings) == 0 {
		return nil, fmt.Errorf("scan report %q contains no usable rows", path)
	}

	logger.Debug("scan report loaded", "path", path, "findings", len(findings))
	return findings, nil
}

func normalizeTestResult(raw string) TestResult {
	if strings.Contains(strings.ToLower(raw), "failed") {
		return ResultFailed
	}
	return ResultPassed
}
