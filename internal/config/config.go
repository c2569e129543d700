// Package config holds the command line defaults that may be overridden from
// a YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config represents the defaults of the audiomark command.
type Config struct {
	// Container is the path of the cover WAV file.
	Container string `yaml:"container,omitempty"`

	// Stego is the path of the marked WAV file.
	Stego string `yaml:"stego,omitempty"`

	// Message is the path of the message file.
	Message string `yaml:"message,omitempty"`

	// Key is the path of the key file.
	Key string `yaml:"key,omitempty"`

	// Ledger is the path of the session database (optional).
	Ledger string `yaml:"ledger,omitempty"`

	// Depth is the modulation depth.
	Depth float64 `yaml:"depth,omitempty"`

	// ECC names the error correction applied to the message.
	ECC string `yaml:"ecc,omitempty"`

	// ECCSeed seeds the bit shuffle of the error correction.
	ECCSeed int64 `yaml:"ecc_seed,omitempty"`

	// Plot enables amplitude charts.
	Plot bool `yaml:"plot,omitempty"`

	// PlotStep draws every n-th sample.
	PlotStep int `yaml:"plot_step,omitempty"`

	// Tolerance is the smallest difference reported as a changed sample.
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Container: "container.wav",
		Stego:     "stegacontainer.wav",
		Message:   "message.txt",
		Key:       "key.csv",
		Depth:     0.0005,
		ECC:       "none",
		ECCSeed:   1234567890,
		PlotStep:  100,
		Tolerance: 0.0001,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
