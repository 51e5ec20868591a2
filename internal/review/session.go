// Package review owns the mutable reviewer-facing state layered over an
// immutable reconciled finding set: the status lifecycle of every
// finding, persistence of resolved progress, and the aggregate
// compliance metrics derived from it.
package review

import (
	"fmt"
	"sort"

	"github.com/hkporter/hkporter/internal/hardening"
)

// Status is a finding's review disposition. Failed findings move
// between Pending, Fixed, Not Relevant, and To Discuss. Passed findings
// keep Passed as their base classification and can carry the same
// dispositions as annotations on top of it.
type Status string

const (
	StatusPending     Status = "Pending"
	StatusFixed       Status = "Fixed"
	StatusNotRelevant Status = "Not Relevant"
	StatusToDiscuss   Status = "To Discuss"
	StatusPassed      Status = "Passed"
)

// dispositionNone marks a finding the reviewer has not touched:
// Pending for failed findings, plain Passed for passed ones.
const dispositionNone Status = ""

// Session is the single owned home of review state. All transitions go
// through its methods; no transition is ever applied automatically
// beyond the initial Pending/Passed classification at construction.
// Sessions are not safe for concurrent use; the caller serializes.
type Session struct {
	findings     []hardening.Finding
	index        map[string]int
	dispositions []Status

	// Initial per-category pass/fail counts, frozen at construction.
	// The derived metrics surface recomputes live counts from these.
	initPass map[string]int
	initFail map[string]int
}

// NewSession classifies every finding: Failed starts Pending, Passed
// starts Passed with no annotation.
func NewSession(findings []hardening.Finding) *Session {
	s := &Session{
		findings:     findings,
		index:        make(map[string]int, len(findings)),
		dispositions: make([]Status, len(findings)),
		initPass:     make(map[string]int),
		initFail:     make(map[string]int),
	}
	for i, f := range findings {
		if _, ok := s.index[f.ID]; !ok {
			s.index[f.ID] = i
		}
		if f.Failed() {
			s.initFail[f.Category]++
		} else {
			s.initPass[f.Category]++
		}
	}
	return s
}

// Findings returns the reconciled finding set backing the session.
func (s *Session) Findings() []hardening.Finding {
	return s.findings
}

// Status reports the live status of a finding.
func (s *Session) Status(id string) (Status, error) {
	i, err := s.lookup(id)
	if err != nil {
		return "", err
	}
	return s.statusAt(i), nil
}

func (s *Session) statusAt(i int) Status {
	d := s.dispositions[i]
	if d != dispositionNone {
		return d
	}
	if s.findings[i].Failed() {
		return StatusPending
	}
	return StatusPassed
}

// MoveToFixed transitions the selected Pending findings to Fixed as one
// atomic batch: every id must name a currently Pending finding or the
// whole call fails with no state change. This is the only bulk
// transition the engine supports.
func (s *Session) MoveToFixed(ids []string) error {
	indices := make([]int, 0, len(ids))
	for _, id := range ids {
		i, err := s.lookup(id)
		if err != nil {
			return err
		}
		if got := s.statusAt(i); got != StatusPending {
			return fmt.Errorf("finding %q is %s, not Pending", id, got)
		}
		indices = append(indices, i)
	}
	for _, i := range indices {
		s.dispositions[i] = StatusFixed
	}
	return nil
}

// Restore moves a single Fixed finding back to Pending.
func (s *Session) Restore(id string) error {
	i, err := s.lookup(id)
	if err != nil {
		return err
	}
	if !s.findings[i].Failed() {
		return fmt.Errorf("finding %q passed its check; clear its annotation instead", id)
	}
	if s.dispositions[i] != StatusFixed {
		return fmt.Errorf("finding %q is %s, not Fixed", id, s.statusAt(i))
	}
	s.dispositions[i] = dispositionNone
	return nil
}

// Annotate sets a single finding's annotation. Not Relevant and To
// Discuss apply to Pending and Passed findings alike and replace any
// previous annotation. Fixed is only a valid annotation on a Passed
// finding ("passed but had to be fixed by hand"); failed findings reach
// Fixed through MoveToFixed so the bulk/persistence contract holds.
func (s *Session) Annotate(id string, status Status) error {
	switch status {
	case StatusFixed, StatusNotRelevant, StatusToDiscuss:
	default:
		return fmt.Errorf("%q is not an annotation status", status)
	}

	i, err := s.lookup(id)
	if err != nil {
		return err
	}
	if s.findings[i].Failed() {
		if status == StatusFixed {
			return fmt.Errorf("failed findings move to Fixed via MoveToFixed, not annotation")
		}
		if s.dispositions[i] == StatusFixed {
			return fmt.Errorf("finding %q is Fixed; restore it before annotating", id)
		}
	}
	s.dispositions[i] = status
	return nil
}

// ClearAnnotation reverses an annotation, returning the finding to
// Pending or plain Passed. Clearing an untouched finding is a no-op.
func (s *Session) ClearAnnotation(id string) error {
	i, err := s.lookup(id)
	if err != nil {
		return err
	}
	if s.findings[i].Failed() && s.dispositions[i] == StatusFixed {
		return fmt.Errorf("finding %q is Fixed; use Restore", id)
	}
	s.dispositions[i] = dispositionNone
	return nil
}

// FixedIDs returns the sorted identifiers of failed findings currently
// in the Fixed state. This set, and only this set, persists across
// sessions: Not Relevant and To Discuss annotations, and annotations on
// passed findings, are deliberately session-local.
func (s *Session) FixedIDs() []string {
	ids := make([]string, 0)
	for i, f := range s.findings {
		if f.Failed() && s.dispositions[i] == StatusFixed {
			ids = append(ids, f.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// ApplyFixedIDs replays persisted progress through the bulk transition.
// Ids that are unknown or no longer Pending are silently dropped, so a
// stale progress file still restores everything it can and re-applying
// the same set is idempotent. Returns how many findings moved.
func (s *Session) ApplyFixedIDs(ids []string) int {
	applicable := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		i, err := s.lookup(id)
		if err != nil {
			continue
		}
		if s.statusAt(i) == StatusPending {
			applicable = append(applicable, id)
		}
	}
	if err := s.MoveToFixed(applicable); err != nil {
		return 0
	}
	return len(applicable)
}

// Categories lists the non-empty categories in the set, sorted.
func (s *Session) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, f := range s.findings {
		if f.Category != "" && !seen[f.Category] {
			seen[f.Category] = true
			cats = append(cats, f.Category)
		}
	}
	sort.Strings(cats)
	return cats
}

func (s *Session) lookup(id string) (int, error) {
	i, ok := s.index[id]
	if !ok {
		return 0, fmt.Errorf("unknown finding id %q", id)
	}
	return i, nil
}
