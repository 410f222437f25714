// internal/config/normalize.go
package config

import (
	"fmt"
	"strings"
)

// MatchString resolves s against candidates by unique prefix, the way the
// original command line accepts any unambiguous abbreviation ("4" selects
// 4800 baud). Empty and ambiguous values are errors.
func MatchString(s string, candidates []string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("empty value")
	}

	match := ""
	for _, cand := range candidates {
		if strings.HasPrefix(cand, s) {
			if match != "" {
				return "", fmt.Errorf("ambiguous value %q", s)
			}
			match = cand
		}
	}
	if match == "" {
		return "", fmt.Errorf("invalid value %q", s)
	}
	return match, nil
}

// Normalize resolves enumerated shorthand values to their canonical form.
// It is allowed to mutate configuration.
// It MUST be called before Validate(), which checks canonical values only.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	rate, err := MatchString(cfg.Rate, Rates)
	if err != nil {
		return fmt.Errorf("rate: %w", err)
	}
	cfg.Rate = rate

	parity, err := MatchString(strings.ToLower(cfg.Parity), Parities)
	if err != nil {
		return fmt.Errorf("parity: %w", err)
	}
	cfg.Parity = parity

	stop, err := MatchString(cfg.StopBits, StopBits)
	if err != nil {
		return fmt.Errorf("stopbits: %w", err)
	}
	cfg.StopBits = stop

	return nil
}
