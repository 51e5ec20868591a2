// Package webapp renders the standalone interactive review document: a
// single HTML file embedding the full finding set with per-row data
// attributes and a client-side script implementing the same status
// lifecycle and compliance arithmetic as the review package.
package webapp

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"sort"
	"time"

	"github.com/hkporter/hkporter/internal/hardening"
	"github.com/hkporter/hkporter/internal/remediation"
	"github.com/hkporter/hkporter/internal/review"
)

//go:embed templates/report.html.tmpl
var templates embed.FS

// Meta labels the generated document.
type Meta struct {
	Title       string
	RunID       string
	GeneratedAt time.Time
}

// Row is one finding prepared for rendering.
type Row struct {
	ID          string
	CIS         string
	Category    string
	Description string
	Score       int
	RiskClass   string
	HasRegistry bool
	RegistryKey string
	RegistryVal string
	RegeditPath string
	Current     string
	Expected    string
	Fix         string
}

type pageData struct {
	Title      string
	RunID      string
	Generated  string
	ScoreText  string
	Pending    int
	Passed     int
	Categories []string
	FailedRows []Row
	PassedRows []Row
	SeedIDs    template.JS
}

// Write renders the review document for the session's finding set.
func Write(path string, session *review.Session, meta Meta) error {
	tmpl, err := template.ParseFS(templates, "templates/report.html.tmpl")
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	var failedRows, passedRows []Row
	for _, finding := range session.Findings() {
		if finding.Failed() {
			failedRows = append(failedRows, newRow(finding, true))
		} else {
			passedRows = append(passedRows, newRow(finding, false))
		}
	}
	// Highest risk first on the pending tab, category order on passed.
	sort.SliceStable(failedRows, func(i, j int) bool {
		return failedRows[i].Score > failedRows[j].Score
	})
	sort.SliceStable(passedRows, func(i, j int) bool {
		return passedRows[i].Category < passedRows[j].Category
	})

	generated := meta.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	// Fixed ids already applied to the session are seeded into the page
	// script so the document opens in the same state.
	seed, err := json.Marshal(session.FixedIDs())
	if err != nil {
		return err
	}

	kpis := session.KPIs()
	data := pageData{
		Title:      meta.Title,
		RunID:      meta.RunID,
		Generated:  generated.UTC().Format(time.RFC3339),
		ScoreText:  fmt.Sprintf("%.1f%%", kpis.Compliance*100),
		Pending:    kpis.Failed,
		Passed:     kpis.Passed,
		Categories: session.Categories(),
		FailedRows: failedRows,
		PassedRows: passedRows,
		SeedIDs:    template.JS(seed),
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return tmpl.Execute(file, data)
}

func newRow(f hardening.Finding, failed bool) Row {
	row := Row{
		ID:          f.ID,
		CIS:         f.CIS,
		Category:    f.Category,
		Description: f.DisplayDescription(),
		Score:       f.RiskScore,
		RiskClass:   "OK",
		Current:     f.Result,
		Expected:    f.ExpectedValue(),
		Fix:         f.Remediation,
	}
	if failed {
		row.RiskClass = riskClass(f.RiskScore)
	}
	if f.RegistryPath != nil {
		row.HasRegistry = true
		row.RegistryKey = remediation.DisplayPath(*f.RegistryPath)
		row.RegeditPath = remediation.RegeditPath(*f.RegistryPath)
		if f.RegistryItem != nil {
			row.RegistryVal = *f.RegistryItem
		}
	}
	return row
}

// riskClass bands a score for the severity badge.
func riskClass(score int) string {
	switch {
	case score == 100:
		return "risk-100"
	case score >= 60:
		return "risk-high"
	case score >= 40:
		return "risk-med"
	default:
		return "risk-low"
	}
}
