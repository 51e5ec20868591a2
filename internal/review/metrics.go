package review

import "sort"

// CategoryStats is one row of the per-category compliance view.
type CategoryStats struct {
	Category    string
	Failed      int
	ToDiscuss   int
	NotRelevant int
	Fixed       int
	Passed      int
	Total       int
	Compliance  float64
}

// KPIs is the global compliance view.
type KPIs struct {
	Total       int
	Passed      int
	Fixed       int
	ToDiscuss   int
	NotRelevant int
	Failed      int
	Compliance  float64
}

// ComplianceRatio is the one shared definition of the compliance
// metric: (fixed + passed) / (total - notRelevant), with a zero
// denominator yielding 0 rather than an error. Every surface that
// reports compliance (these views, the workbook formulas, the webapp
// script) implements exactly this arithmetic.
func ComplianceRatio(fixed, passed, total, notRelevant int) float64 {
	denominator := total - notRelevant
	if denominator == 0 {
		return 0
	}
	return float64(fixed+passed) / float64(denominator)
}

// CategoryStats tallies the live status of every finding per category.
// Rows are ordered by initial failed count ascending, then name, the
// order the workbook's category breakdown uses.
func (s *Session) CategoryStats() []CategoryStats {
	byCategory := make(map[string]*CategoryStats)
	for i, f := range s.findings {
		row, ok := byCategory[f.Category]
		if !ok {
			row = &CategoryStats{Category: f.Category}
			byCategory[f.Category] = row
		}
		switch s.statusAt(i) {
		case StatusPending:
			row.Failed++
		case StatusToDiscuss:
			row.ToDiscuss++
		case StatusNotRelevant:
			row.NotRelevant++
		case StatusFixed:
			row.Fixed++
		case StatusPassed:
			row.Passed++
		}
	}

	rows := make([]CategoryStats, 0, len(byCategory))
	for _, row := range byCategory {
		row.Total = row.Failed + row.ToDiscuss + row.NotRelevant + row.Fixed + row.Passed
		row.Compliance = ComplianceRatio(row.Fixed, row.Passed, row.Total, row.NotRelevant)
		rows = append(rows, *row)
	}
	s.sortCategoryRows(rows)
	return rows
}

// KPIs tallies the global view from live statuses, with Failed defined
// as the residual of the other four buckets.
func (s *Session) KPIs() KPIs {
	var k KPIs
	k.Total = len(s.findings)
	for i := range s.findings {
		switch s.statusAt(i) {
		case StatusPassed:
			k.Passed++
		case StatusFixed:
			k.Fixed++
		case StatusToDiscuss:
			k.ToDiscuss++
		case StatusNotRelevant:
			k.NotRelevant++
		}
	}
	k.Failed = k.Total - k.Passed - k.Fixed - k.ToDiscuss - k.NotRelevant
	k.Compliance = ComplianceRatio(k.Fixed, k.Passed, k.Total, k.NotRelevant)
	return k
}

// CategoryStatsDerived recomputes the per-category view from the frozen
// initial pass/fail counts minus annotation tallies. This is the
// arithmetic the workbook's live formulas encode (live passed = initial
// passed minus its annotated rows, live failed = initial failed minus
// its resolved rows). It must agree with CategoryStats bit-for-bit for
// every reachable state; any divergence is a defect in one of the two.
func (s *Session) CategoryStatsDerived() []CategoryStats {
	type annotations struct {
		fixedFailed, discussFailed, nrFailed int
		fixedPassed, discussPassed, nrPassed int
	}
	byCategory := make(map[string]*annotations)
	for cat := range s.initPass {
		byCategory[cat] = &annotations{}
	}
	for cat := range s.initFail {
		if _, ok := byCategory[cat]; !ok {
			byCategory[cat] = &annotations{}
		}
	}

	for i, f := range s.findings {
		a := byCategory[f.Category]
		d := s.dispositions[i]
		if f.Failed() {
			switch d {
			case StatusFixed:
				a.fixedFailed++
			case StatusToDiscuss:
				a.discussFailed++
			case StatusNotRelevant:
				a.nrFailed++
			}
		} else {
			switch d {
			case StatusFixed:
				a.fixedPassed++
			case StatusToDiscuss:
				a.discussPassed++
			case StatusNotRelevant:
				a.nrPassed++
			}
		}
	}

	rows := make([]CategoryStats, 0, len(byCategory))
	for cat, a := range byCategory {
		row := CategoryStats{
			Category:    cat,
			Fixed:       a.fixedFailed + a.fixedPassed,
			ToDiscuss:   a.discussFailed + a.discussPassed,
			NotRelevant: a.nrFailed + a.nrPassed,
			Passed:      s.initPass[cat] - a.discussPassed - a.nrPassed - a.fixedPassed,
			Failed:      s.initFail[cat] - a.fixedFailed - a.discussFailed - a.nrFailed,
		}
		row.Total = row.Failed + row.ToDiscuss + row.NotRelevant + row.Fixed + row.Passed
		row.Compliance = ComplianceRatio(row.Fixed, row.Passed, row.Total, row.NotRelevant)
		rows = append(rows, row)
	}
	s.sortCategoryRows(rows)
	return rows
}

// KPIsDerived recomputes the global view the way the workbook's KPI
// cells do: bucket counts summed over both report tables, Failed as the
// residual against the grand total.
func (s *Session) KPIsDerived() KPIs {
	var k KPIs
	k.Total = len(s.findings)
	for i, f := range s.findings {
		d := s.dispositions[i]
		switch d {
		case StatusFixed:
			k.Fixed++
		case StatusToDiscuss:
			k.ToDiscuss++
		case StatusNotRelevant:
			k.NotRelevant++
		case dispositionNone:
			if !f.Failed() {
				k.Passed++
			}
		}
	}
	k.Failed = k.Total - k.Passed - k.Fixed - k.ToDiscuss - k.NotRelevant
	k.Compliance = ComplianceRatio(k.Fixed, k.Passed, k.Total, k.NotRelevant)
	return k
}

func (s *Session) sortCategoryRows(rows []CategoryStats) {
	sort.Slice(rows, func(i, j int) bool {
		fi, fj := s.initFail[rows[i].Category], s.initFail[rows[j].Category]
		if fi != fj {
			return fi < fj
		}
		return rows[i].Category < rows[j].Category
	})
}
