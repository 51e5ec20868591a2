// Package export writes machine-readable views of the finding set for
// downstream tooling.
package export

import (
	"fmt"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/hkporter/hkporter/internal/hardening"
)

const toolName = "hkporter"
const toolURI = "https://github.com/hkporter/hkporter"

// WriteSARIF writes the unresolved (failed) findings as a SARIF 2.1.0
// log: one rule per control id, result level derived from severity,
// risk score and remediation carried as result properties.
func WriteSARIF(path string, findings []hardening.Finding) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	for _, finding := range findings {
		if finding.Passed() {
			continue
		}

		rule := run.AddRule(finding.ID).
			WithName(finding.DisplayDescription()).
			WithDescription(finding.DisplayDescription())
		rule.Properties = sarif.Properties{
			"category": finding.Category,
			"severity": finding.Severity,
		}

		result := run.CreateResultForRule(finding.ID).
			WithLevel(severityLevel(finding.Severity)).
			WithMessage(sarif.NewTextMessage(resultMessage(finding)))
		result.Properties = sarif.Properties{
			"riskScore": finding.RiskScore,
			"category":  finding.Category,
		}
		if finding.Remediation != "" {
			result.Properties["remediation"] = finding.Remediation
		}
	}
	report.AddRun(run)

	return report.WriteFile(path)
}

// severityLevel maps scanner severities onto SARIF result levels.
func severityLevel(severity string) string {
	switch severity {
	case "High":
		return "error"
	case "Medium":
		return "warning"
	default:
		return "note"
	}
}

func resultMessage(f hardening.Finding) string {
	msg := fmt.Sprintf("%s: %s", f.ID, f.DisplayDescription())
	if f.Result != "" {
		msg = fmt.Sprintf("%s (observed: %s)", msg, f.Result)
	}
	return msg
}
