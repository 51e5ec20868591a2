package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/hkporter/hkporter/internal/hardening"
)

func TestWriteSARIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "findings.sarif")

	findings := []hardening.Finding{
		{
			ID: "1.1.1", Category: "Accounts",
			Description: "Enforce password history", Severity: "High",
			TestResult: hardening.ResultFailed, Result: "0",
			RiskScore:   50,
			Remediation: `Set-ItemProperty -Path "HKLM:\System\Policy" -Name "PasswordHistorySize" -Value "24" -Force`,
		},
		{
			ID: "2.1.1", Category: "Network",
			Description: "Audit logon events", Severity: "Medium",
			TestResult: hardening.ResultFailed, RiskScore: 20,
		},
		{
			ID: "3.1.1", Category: "Audit",
			Description: "Passed control", Severity: "Low",
			TestResult: hardening.ResultPassed,
		},
	}

	if err := WriteSARIF(path, findings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read SARIF file: %v", err)
	}
	report, err := sarif.FromBytes(data)
	if err != nil {
		t.Fatalf("output is not valid SARIF: %v", err)
	}

	if len(report.Runs) != 1 {
		t.Fatalf("expected one run, got %d", len(report.Runs))
	}
	run := report.Runs[0]
	if run.Tool.Driver.Name != "hkporter" {
		t.Errorf("unexpected tool name %q", run.Tool.Driver.Name)
	}

	// Passed findings never export.
	if len(run.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(run.Results))
	}
	if len(run.Tool.Driver.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(run.Tool.Driver.Rules))
	}

	first := run.Results[0]
	if first.RuleID == nil || *first.RuleID != "1.1.1" {
		t.Errorf("unexpected rule id: %v", first.RuleID)
	}
	if first.Level == nil || *first.Level != "error" {
		t.Errorf("expected High severity to map to error, got %v", first.Level)
	}
	if first.Properties["remediation"] == nil {
		t.Errorf("expected the remediation command in the result properties")
	}

	second := run.Results[1]
	if second.Level == nil || *second.Level != "warning" {
		t.Errorf("expected Medium severity to map to warning, got %v", second.Level)
	}
	if _, ok := second.Properties["remediation"]; ok {
		t.Errorf("expected no remediation property when no command exists")
	}
}

func TestSeverityLevel(t *testing.T) {
	testCases := []struct {
		severity string
		expected string
	}{
		{"High", "error"},
		{"Medium", "warning"},
		{"Low", "note"},
		{"Informational", "note"},
		{"", "note"},
	}
	for _, tc := range testCases {
		if got := severityLevel(tc.severity); got != tc.expected {
			t.Errorf("severityLevel(%q) = %q, expected %q", tc.severity, got, tc.expected)
		}
	}
}
