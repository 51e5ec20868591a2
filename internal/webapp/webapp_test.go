package webapp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hkporter/hkporter/internal/hardening"
	"github.com/hkporter/hkporter/internal/review"
)

func strPtr(s string) *string { return &s }

func renderTestPage(t *testing.T, session *review.Session) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.html")
	meta := Meta{Title: "Hardening Review", RunID: "test-run", GeneratedAt: time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC)}
	if err := Write(path, session, meta); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read rendered page: %v", err)
	}
	return string(data)
}

func testSession(t *testing.T) *review.Session {
	t.Helper()
	findings := []hardening.Finding{
		{
			ID: "1.1.1", CIS: "1.1.1", Category: "Accounts",
			Description: "Enforce password history", Severity: "High",
			TestResult:   hardening.ResultFailed,
			RegistryPath: strPtr(`HKEY_LOCAL_MACHINE\System\Policy`),
			RegistryItem: strPtr("PasswordHistorySize"),
			RiskScore:    50,
		},
		{
			ID: "2.1.1", CIS: "2.1.1", Category: "Network",
			Description: "Disable SMB v1", Severity: "High",
			TestResult: hardening.ResultFailed, RiskScore: 100,
		},
		{
			ID: "3.1.1", CIS: "3.1.1", Category: "Audit",
			Description: "Audit logon events", Severity: "Low",
			TestResult: hardening.ResultPassed,
		},
	}
	return review.NewSession(findings)
}

func TestWriteRendersFindings(t *testing.T) {
	page := renderTestPage(t, testSession(t))

	for _, want := range []string{
		"<title>Hardening Review</title>",
		`data-id="1.1.1"`,
		`data-id="2.1.1"`,
		`data-id="3.1.1"`,
		"Enforce password history",
		// Regedit long form behind the copy button.
		`data-path="Computer\HKEY_LOCAL_MACHINE\System\Policy"`,
		"Run test-run",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func TestWriteOrdersPendingByRisk(t *testing.T) {
	page := renderTestPage(t, testSession(t))

	// The SMB finding scores 100 and must render above the score-50 one.
	smb := strings.Index(page, `data-id="2.1.1"`)
	pwd := strings.Index(page, `data-id="1.1.1"`)
	if smb < 0 || pwd < 0 {
		t.Fatalf("expected both pending rows in the page")
	}
	if smb > pwd {
		t.Errorf("expected the higher risk finding first")
	}
}

func TestWriteSeedsEmptyProgress(t *testing.T) {
	page := renderTestPage(t, testSession(t))
	if !strings.Contains(page, "const SEED_IDS = []") {
		t.Errorf("expected an empty seed array on a fresh session")
	}
}

func TestWriteSeedsAppliedProgress(t *testing.T) {
	session := testSession(t)
	if applied := session.ApplyFixedIDs([]string{"1.1.1"}); applied != 1 {
		t.Fatalf("expected 1 finding applied, got %d", applied)
	}

	page := renderTestPage(t, session)
	if !strings.Contains(page, `const SEED_IDS = ["1.1.1"]`) {
		t.Errorf("expected the applied id in the page seed")
	}
}

func TestWriteEscapesFindingText(t *testing.T) {
	findings := []hardening.Finding{
		{
			ID: "1.1.1", CIS: "1.1.1", Category: "Accounts",
			Description: `<script>alert("x")</script>`,
			TestResult:  hardening.ResultFailed,
		},
	}
	page := renderTestPage(t, review.NewSession(findings))
	if strings.Contains(page, `<script>alert`) {
		t.Errorf("expected finding text to be HTML-escaped")
	}
}
