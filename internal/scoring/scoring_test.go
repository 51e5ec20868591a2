package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hkporter/hkporter/internal/hardening"
	"github.com/hkporter/hkporter/pkg/shared/config"
)

func failedFinding(severity, category, description, name string) hardening.Finding {
	return hardening.Finding{
		ID:          "1.1.1",
		Category:    category,
		Description: description,
		Name:        name,
		Severity:    severity,
		TestResult:  hardening.ResultFailed,
	}
}

func TestScoreDefaults(t *testing.T) {
	testCases := []struct {
		name     string
		finding  hardening.Finding
		expected int
	}{
		{
			name: "Passed finding scores zero regardless of severity",
			finding: hardening.Finding{
				Severity:    "High",
				Description: "LSASS protection",
				TestResult:  hardening.ResultPassed,
			},
			expected: 0,
		},
		{
			name:     "High severity without keyword",
			finding:  failedFinding("High", "Accounts", "Rename administrator account", ""),
			expected: 50,
		},
		{
			name:     "Medium severity without keyword",
			finding:  failedFinding("Medium", "Audit Policy", "Audit logon events", ""),
			expected: 20,
		},
		{
			name:     "Low severity without keyword",
			finding:  failedFinding("Low", "UI", "Disable lock screen camera", ""),
			expected: 5,
		},
		{
			name:     "Unknown severity degrades to the Low weight",
			finding:  failedFinding("Informational", "UI", "Disable lock screen camera", ""),
			expected: 5,
		},
		{
			name:     "Missing severity degrades to the Low weight",
			finding:  failedFinding("", "UI", "Disable lock screen camera", ""),
			expected: 5,
		},
		{
			name:     "High severity with critical keyword hits the cap",
			finding:  failedFinding("High", "System Services", "Configure LSASS to run as a protected process", ""),
			expected: 100,
		},
		{
			name:     "Medium severity with critical keyword",
			finding:  failedFinding("Medium", "Network", "Disable SMB v1 client", ""),
			expected: 70,
		},
		{
			name:     "Low severity with critical keyword",
			finding:  failedFinding("Low", "Printing", "Disable the Print Spooler service", ""),
			expected: 55,
		},
		{
			name:     "Keyword match is case-insensitive",
			finding:  failedFinding("Low", "Network", "disable llmnr name resolution", ""),
			expected: 55,
		},
		{
			name:     "Keyword in the category counts",
			finding:  failedFinding("Low", "Credential Guard", "Enable virtualization based security", ""),
			expected: 55,
		},
		{
			name:     "Keyword in the short name counts",
			finding:  failedFinding("Low", "Hardening", "Legacy authentication protocol", "Restrict NTLM"),
			expected: 55,
		},
		{
			name:     "No bonus when no keyword matches",
			finding:  failedFinding("High", "Accounts", "Enforce password history", ""),
			expected: 50,
		},
	}

	scorer := New(nil)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, scorer.Score(tc.finding))
		})
	}
}

func TestScoreNeverExceedsCap(t *testing.T) {
	bonus := 90
	cfg := &config.Config{}
	cfg.Scoring.Weights = map[string]int{"High": 80, "Low": 10}
	cfg.Scoring.CriticalBonus = &bonus

	scorer := New(cfg)
	got := scorer.Score(failedFinding("High", "Network", "Require SMB signing", ""))
	assert.Equal(t, 100, got, "bonus applies before the clamp, never after")
}

func TestScoreConfigOverrides(t *testing.T) {
	bonus := 10
	cfg := &config.Config{}
	cfg.Scoring.Weights = map[string]int{"High": 30, "Medium": 15, "Low": 2}
	cfg.Scoring.CriticalKeywords = []string{"Kerberos"}
	cfg.Scoring.CriticalBonus = &bonus

	scorer := New(cfg)

	assert.Equal(t, 30, scorer.Score(failedFinding("High", "Accounts", "Enforce password history", "")))
	assert.Equal(t, 12, scorer.Score(failedFinding("Low", "Auth", "Configure Kerberos encryption types", "")))
	// The built-in keyword list is fully replaced, not extended.
	assert.Equal(t, 2, scorer.Score(failedFinding("Low", "Network", "Disable SMB v1 client", "")))
}

func TestScoreUnknownSeverityWithPartialWeightOverride(t *testing.T) {
	// An override table without a Low entry still has a floor for
	// unknown severities: the built-in Low weight.
	cfg := &config.Config{}
	cfg.Scoring.Weights = map[string]int{"High": 60}

	scorer := New(cfg)
	assert.Equal(t, 5, scorer.Score(failedFinding("Informational", "UI", "Disable widgets", "")))
}
