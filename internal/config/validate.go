// internal/config/validate.go
package config

import (
	"fmt"
	"math"
)

// maxNameLen bounds the component name so qualified signal names stay
// readable on the supervisory side.
const maxNameLen = 20

// Validate checks configuration correctness.
// It performs declarative validation only over canonical values.
// It MUST NOT mutate configuration.
func Validate(cfg Config) error {
	if cfg.Device == "" {
		return fmt.Errorf("device: path required")
	}

	if !contains(Rates, cfg.Rate) {
		return fmt.Errorf("rate: invalid baud rate %q", cfg.Rate)
	}
	if !contains(Parities, cfg.Parity) {
		return fmt.Errorf("parity: invalid parity %q", cfg.Parity)
	}
	if !contains(StopBits, cfg.StopBits) {
		return fmt.Errorf("stopbits: invalid stop bits %q", cfg.StopBits)
	}

	if cfg.Target < 1 || cfg.Target > 254 {
		return fmt.Errorf("target: slave number %d out of range 1..254", cfg.Target)
	}

	if cfg.Name == "" {
		return fmt.Errorf("name: component name required")
	}
	if len(cfg.Name) > maxNameLen {
		return fmt.Errorf("name: %q longer than %d characters", cfg.Name, maxNameLen)
	}
	for i := 0; i < len(cfg.Name); i++ {
		if cfg.Name[i] > 0x7F {
			return fmt.Errorf("name: must contain ASCII characters only")
		}
	}

	if cfg.MaxFreq <= 0 {
		return fmt.Errorf("max_frequency: must be > 0, got %v", cfg.MaxFreq)
	}
	// The frequency register carries 0.01 Hz units in 16 bits.
	if cfg.MaxFreq*100 > math.MaxUint16 {
		return fmt.Errorf("max_frequency: %v Hz exceeds the register range", cfg.MaxFreq)
	}
	if cfg.MaxSpeed <= 0 {
		return fmt.Errorf("max_speed: must be > 0, got %v", cfg.MaxSpeed)
	}

	if cfg.TimeoutMs <= 0 {
		return fmt.Errorf("timeout_ms: must be > 0, got %d", cfg.TimeoutMs)
	}

	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
