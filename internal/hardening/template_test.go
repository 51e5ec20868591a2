package hardening

import (
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestMergeTemplatesLastFileWins(t *testing.T) {
	first := writeCSV(t, "baseline.csv", `ID,Description,RecommendedValue
1.1.1,Enforce password history,24
1.1.2,Maximum password age,60
`)
	second := writeCSV(t, "overrides.csv", `ID,Description
1.1.1,Enforce password history (hardened)
`)

	lookup := MergeTemplates([]string{first, second}, hclog.NewNullLogger())
	if len(lookup) != 2 {
		t.Fatalf("expected 2 merged rows, got %d", len(lookup))
	}

	won := lookup["1.1.1"]
	if won.Description == nil || *won.Description != "Enforce password history (hardened)" {
		t.Errorf("expected the later file's description to win, got %v", won.Description)
	}
	// The later row replaces the earlier one wholesale: the recommended
	// value the first file supplied does not survive.
	if won.RecommendedValue != nil {
		t.Errorf("expected the later row to erase the earlier recommended value, got %q", *won.RecommendedValue)
	}

	kept := lookup["1.1.2"]
	if kept.RecommendedValue == nil || *kept.RecommendedValue != "60" {
		t.Errorf("expected untouched ids to keep the first file's row, got %v", kept.RecommendedValue)
	}
}

func TestMergeTemplatesSkipsMalformedFiles(t *testing.T) {
	good := writeCSV(t, "good.csv", `ID,Description
1.1.1,Enforce password history
`)
	noID := writeCSV(t, "noid.csv", `Description
orphaned row
`)
	missing := filepath.Join(t.TempDir(), "missing.csv")

	lookup := MergeTemplates([]string{noID, missing, good}, hclog.NewNullLogger())
	if len(lookup) != 1 {
		t.Fatalf("expected only the readable template to contribute, got %d rows", len(lookup))
	}
	if _, ok := lookup["1.1.1"]; !ok {
		t.Errorf("expected the readable template's row to survive the bad neighbors")
	}
}

func TestMergeTemplatesEmptyInput(t *testing.T) {
	lookup := MergeTemplates(nil, hclog.NewNullLogger())
	if len(lookup) != 0 {
		t.Fatalf("expected an empty lookup, got %d rows", len(lookup))
	}
}

func TestReadTemplateNameDoublesAsDescription(t *testing.T) {
	path := writeCSV(t, "tmpl.csv", `ID,Name,Description
1.1.1,Short name,Long description
1.1.2,,Only description
`)

	lookup := MergeTemplates([]string{path}, hclog.NewNullLogger())

	if d := lookup["1.1.1"].Description; d == nil || *d != "Short name" {
		t.Errorf("expected Name to override Description, got %v", d)
	}
	if d := lookup["1.1.2"].Description; d == nil || *d != "Only description" {
		t.Errorf("expected Description to survive an empty Name cell, got %v", d)
	}
}

func TestReadTemplateMethodKeepsEmptyCells(t *testing.T) {
	withMethod := writeCSV(t, "with.csv", `ID,Method,MethodArgument
1.1.1,Registry,
`)
	withoutMethod := writeCSV(t, "without.csv", `ID,Description
1.1.2,No method columns here
`)

	lookup := MergeTemplates([]string{withMethod, withoutMethod}, hclog.NewNullLogger())

	row := lookup["1.1.1"]
	if row.Method == nil || *row.Method != "Registry" {
		t.Errorf("unexpected method: %v", row.Method)
	}
	// The column exists, so the blank cell is carried as present-but-empty.
	if row.MethodArgument == nil {
		t.Fatalf("expected an empty MethodArgument cell to stay present")
	}
	if *row.MethodArgument != "" {
		t.Errorf("expected empty method argument, got %q", *row.MethodArgument)
	}

	if lookup["1.1.2"].Method != nil {
		t.Errorf("expected a missing Method column to yield a nil attribute")
	}
}

func TestReadTemplateDropsRowsWithoutID(t *testing.T) {
	path := writeCSV(t, "tmpl.csv", `ID,Description
1.1.1,kept
,dropped
`)

	lookup := MergeTemplates([]string{path}, hclog.NewNullLogger())
	if len(lookup) != 1 {
		t.Fatalf("expected the blank-id row to be dropped, got %d rows", len(lookup))
	}
}
