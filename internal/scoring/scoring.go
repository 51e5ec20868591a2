package scoring

import (
	"strings"

	"github.com/hkporter/hkporter/internal/hardening"
	"github.com/hkporter/hkporter/pkg/shared/config"
)

const (
	maxScore     = 100
	defaultBonus = 50
)

// defaultWeights maps a severity to its base risk weight. Severities
// the scanner reports outside this table score with the Low weight.
var defaultWeights = map[string]int{
	"High":   50,
	"Medium": 20,
	"Low":    5,
}

// defaultKeywords flag controls touching credential stores, legacy
// protocols, and other lateral-movement-relevant subsystems.
var defaultKeywords = []string{
	"LSA", "Credential", "WDigest", "LSASS", "SMB", "NetBIOS", "LLMNR",
	"Signing", "Spooler", "Driver", "Defender", "Ntlm",
}

// Scorer computes the bounded risk score of a finding. The zero value
// is not usable; construct one with New.
type Scorer struct {
	weights  map[string]int
	keywords []string
	bonus    int
}

// New builds a Scorer from the scoring config section, falling back to
// the built-in model for anything left unconfigured.
func New(cfg *config.Config) *Scorer {
	s := &Scorer{
		weights:  defaultWeights,
		keywords: defaultKeywords,
		bonus:    defaultBonus,
	}
	if cfg == nil {
		return s
	}
	if len(cfg.Scoring.Weights) > 0 {
		s.weights = cfg.Scoring.Weights
	}
	if len(cfg.Scoring.CriticalKeywords) > 0 {
		s.keywords = cfg.Scoring.CriticalKeywords
	}
	if cfg.Scoring.CriticalBonus != nil {
		s.bonus = *cfg.Scoring.CriticalBonus
	}
	return s
}

// Score is pure and total: it never fails for a well-formed finding.
// Passed findings always score 0; failed findings score their severity
// weight, plus the critical bonus when the finding's text names a
// security-sensitive subsystem, clamped to 100.
func (s *Scorer) Score(f hardening.Finding) int {
	if f.Passed() {
		return 0
	}

	score, ok := s.weights[f.Severity]
	if !ok {
		// Unknown or missing severity degrades to Low, not to zero.
		score, ok = s.weights["Low"]
		if !ok {
			score = defaultWeights["Low"]
		}
	}

	if s.hasCriticalKeyword(f.ScoreText()) {
		score += s.bonus
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

func (s *Scorer) hasCriticalKeyword(text string) bool {
	text = strings.ToLower(text)
	for _, keyword := range s.keywords {
		if strings.Contains(text, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
