package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateScoringConfig(&cfg.Scoring); err != nil {
		return fmt.Errorf("YAML global config: scoring directive is invalid: %w", err)
	}
	if err := validateLoggerConfig(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML global config: logger directive is invalid: %w", err)
	}
	return nil
}

// ValidateScoringConfig checks the scoring overrides. Empty sections are
// fine (defaults apply); explicitly configured values must be sane.
func ValidateScoringConfig(scoring *Scoring) error {
	if scoring == nil {
		return fmt.Errorf("scoring configuration is nil")
	}

	for severity, weight := range scoring.Weights {
		if weight < 0 || weight > 100 {
			return fmt.Errorf("weight for severity %q must be between 0 and 100, got %d", severity, weight)
		}
	}

	for _, keyword := range scoring.CriticalKeywords {
		if strings.TrimSpace(keyword) == "" {
			return fmt.Errorf("critical_keywords must not contain blank entries")
		}
	}

	if scoring.CriticalBonus != nil && *scoring.CriticalBonus < 0 {
		return fmt.Errorf("critical_bonus cannot be negative: %d", *scoring.CriticalBonus)
	}

	return nil
}

func validateLoggerConfig(logger *Logger) error {
	if logger == nil {
		return fmt.Errorf("logger configuration is nil")
	}
	if logger.Level == "" {
		return nil
	}
	switch strings.ToUpper(logger.Level) {
	case "TRACE", "DEBUG", "INFO", "WARN", "ERROR":
		return nil
	}
	return fmt.Errorf("unknown log level %q", logger.Level)
}
