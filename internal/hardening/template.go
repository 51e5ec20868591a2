package hardening

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// TemplateRow carries the control metadata one template file supplies
// for a single id. Nil fields were not present in that template, either
// because the column is missing or the cell is blank; Method and
// MethodArgument keep blank cells as present-but-empty so that a later
// template can deliberately blank them out.
type TemplateRow struct {
	ID               string
	Description      *string
	Method           *string
	MethodArgument   *string
	RegistryPath     *string
	RegistryItem     *string
	RecommendedValue *string
}

// TemplateLookup maps a control id to the template row that won the
// merge for it.
type TemplateLookup map[string]TemplateRow

// readTemplate loads one template CSV. The Name column, when present,
// doubles as the description, overriding a Description column the same
// file may carry.
func readTemplate(path string) ([]TemplateRow, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if !t.hasColumn("ID") {
		return nil, fmt.Errorf("template %q has no ID column", path)
	}

	rows := make([]TemplateRow, 0, len(t.rows))
	for _, row := range t.rows {
		id := t.cell(row, "ID")
		if id == "" {
			continue
		}

		tr := TemplateRow{
			ID:               id,
			Description:      t.optCell(row, "Description"),
			RegistryPath:     t.optCell(row, "RegistryPath"),
			RegistryItem:     t.optCell(row, "RegistryItem"),
			RecommendedValue: t.optCell(row, "RecommendedValue"),
		}
		if name := t.optCell(row, "Name"); name != nil {
			tr.Description = name
		}
		if t.hasColumn("Method") {
			v := t.cell(row, "Method")
			tr.Method = &v
		}
		if t.hasColumn("MethodArgument") {
			v := t.cell(row, "MethodArgument")
			tr.MethodArgument = &v
		}

		rows = append(rows, tr)
	}
	return rows, nil
}

// MergeTemplates combines the template files into one lookup. Files are
// processed in input order and the last row seen for an id wins
// wholesale, so later templates take precedence over earlier ones. An
// unreadable or malformed template is skipped with a warning; partial
// failure is tolerated, not fatal.
func MergeTemplates(paths []string, logger hclog.Logger) TemplateLookup {
	lookup := make(TemplateLookup)

	for _, path := range paths {
		rows, err := readTemplate(path)
		if err != nil {
			logger.Warn("skipping unreadable template", "path", path, "error", err)
			continue
		}
		for _, row := range rows {
			lookup[row.ID] = row
		}
		logger.Debug("template merged", "path", path, "rows", len(rows))
	}

	return lookup
}
