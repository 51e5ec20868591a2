package hardening

import "strings"

// TestResult is the base pass/fail classification of a control check.
type TestResult string

const (
	ResultPassed TestResult = "Passed"
	ResultFailed TestResult = "Failed"
)

// Finding is one reconciled control-check result. Core fields are set
// once during reconciliation; only the review status (held by the
// review session, not here) changes afterwards.
type Finding struct {
	ID       string `json:"id"`
	CIS      string `json:"cis"`
	Category string `json:"category"`

	Name        string `json:"name,omitempty"`
	Description string `json:"description"`
	Severity    string `json:"severity"`

	TestResult TestResult `json:"test_result"`

	Method         string `json:"method,omitempty"`
	MethodArgument string `json:"method_argument,omitempty"`

	// Result holds the value the scanner observed, Recommended the value
	// the scanner reported as expected. RecommendedValue is the
	// template-sourced expected value used for remediation synthesis.
	Result      string `json:"result,omitempty"`
	Recommended string `json:"recommended,omitempty"`

	RegistryPath     *string `json:"registry_path,omitempty"`
	RegistryItem     *string `json:"registry_item,omitempty"`
	RecommendedValue *string `json:"recommended_value,omitempty"`

	RiskScore   int    `json:"risk_score"`
	Remediation string `json:"remediation,omitempty"`
}

// Passed reports whether the finding passed its check.
func (f Finding) Passed() bool {
	return !f.Failed()
}

// Failed classifies by substring, matching the scanner's free-form
// result values ("Failed", "Failed (Registry value missing)", ...).
func (f Finding) Failed() bool {
	return strings.Contains(strings.ToLower(string(f.TestResult)), "failed")
}

// DisplayDescription is the description shown on report surfaces,
// falling back to the short name when no description survived the merge.
func (f Finding) DisplayDescription() string {
	if f.Description != "" {
		return f.Description
	}
	return f.Name
}

// ExpectedValue prefers the scanner-reported recommendation and falls
// back to the template-sourced one.
func (f Finding) ExpectedValue() string {
	if f.Recommended != "" {
		return f.Recommended
	}
	if f.RecommendedValue != nil {
		return *f.RecommendedValue
	}
	return ""
}

// ScoreText is the text blob the risk scorer scans for critical
// keywords: category, description, and name, where name falls back to
// the description when the template never supplied one.
func (f Finding) ScoreText() string {
	name := f.Name
	if name == "" {
		name = f.Description
	}
	return f.Category + " " + f.Description + " " + name
}

// normalizeCell trims a raw CSV cell and collapses pandas-style NaN
// placeholders to the empty string.
func normalizeCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}
