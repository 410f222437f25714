// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Enumerated serial settings. Values outside these sets are rejected.
var (
	Rates    = []string{"2400", "4800", "9600", "19200", "38400"}
	Parities = []string{"even", "odd", "none"}
	StopBits = []string{"1", "2"}
)

// Config is the full bridge configuration. It is assembled from defaults,
// an optional YAML file, and command-line flags, in that order.
type Config struct {
	Device   string `yaml:"device"`
	Rate     string `yaml:"rate"`
	Parity   string `yaml:"parity"`
	StopBits string `yaml:"stopbits"`
	Target   int    `yaml:"target"`

	Name string `yaml:"name"`

	MaxFreq  float64 `yaml:"max_frequency"` // Hz at full scale
	MaxSpeed float64 `yaml:"max_speed"`     // RPM at MaxFreq

	TimeoutMs int `yaml:"timeout_ms"`

	Disable bool `yaml:"disable"` // start with spindle-on defaulted off
	Verbose bool `yaml:"verbose"`
	Debug   bool `yaml:"debug"` // hex frame dump
}

// Default returns the configuration the original driver assumes when
// nothing is specified.
func Default() Config {
	return Config{
		Device:    "/dev/ttyUSB0",
		Rate:      "19200",
		Parity:    "none",
		StopBits:  "1",
		Target:    1,
		Name:      "nowforever_vfd",
		MaxFreq:   400.0,
		MaxSpeed:  24000.0,
		TimeoutMs: 500,
	}
}

// Load overlays the YAML file at path onto cfg.
func Load(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// ---- accessors over the validated config ----

// BaudRate returns the numeric serial rate.
func (c Config) BaudRate() int {
	n, _ := strconv.Atoi(c.Rate)
	return n
}

// StopBitCount returns the numeric stop bit count.
func (c Config) StopBitCount() int {
	n, _ := strconv.Atoi(c.StopBits)
	return n
}

// ParityCode maps the parity name onto the serial library's code.
func (c Config) ParityCode() string {
	switch c.Parity {
	case "even":
		return "E"
	case "odd":
		return "O"
	}
	return "N"
}
