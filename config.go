package ina2xx

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cgxeiji/ina2xx/ina219"
)

// Config is the file form of the device options.
//
//	bus: /dev/i2c-1
//	address: 0x40
//	max_voltage: 24
//	max_current: 1.5
//	shunt_ohms: 0.1
//	interval: 200ms
type Config struct {
	Bus     string `yaml:"bus"`
	Address uint16 `yaml:"address"`

	// Raw skips calibration; the limits below are then ignored.
	Raw            bool    `yaml:"raw"`
	MaxVoltage     float64 `yaml:"max_voltage"`
	MaxCurrent     float64 `yaml:"max_current"`
	ShuntOhms      float64 `yaml:"shunt_ohms"`
	VoltageSamples int     `yaml:"voltage_samples"`
	CurrentSamples int     `yaml:"current_samples"`

	StrictStatus bool   `yaml:"strict_status"`
	Window       int    `yaml:"window"`
	Interval     string `yaml:"interval"`
}

// DefaultConfig returns the configuration New uses without options, sampled
// every 200ms.
func DefaultConfig() *Config {
	return &Config{
		Address:        defaultAddr,
		MaxVoltage:     DefaultLimits.MaxVoltage,
		MaxCurrent:     DefaultLimits.MaxCurrent,
		ShuntOhms:      DefaultLimits.ShuntOhms,
		VoltageSamples: DefaultLimits.VoltageSamples,
		CurrentSamples: DefaultLimits.CurrentSamples,
		Window:         defaultWindow,
		Interval:       "200ms",
	}
}

// LoadConfig reads a YAML configuration. Missing keys keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ina2xx: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses a YAML configuration. Missing keys keep their defaults.
func ParseConfig(data []byte) (*Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("ina2xx: parse config: %w", err)
	}
	if _, err := c.Period(); err != nil {
		return nil, err
	}
	if !c.Raw {
		if _, err := ina219.Calibrate(c.Limits()); err != nil {
			return nil, fmt.Errorf("ina2xx: invalid config: %w", err)
		}
	}
	return c, nil
}

// Limits returns the calibration limits of c.
func (c *Config) Limits() ina219.Limits {
	return ina219.Limits{
		MaxVoltage:     c.MaxVoltage,
		MaxCurrent:     c.MaxCurrent,
		ShuntOhms:      c.ShuntOhms,
		VoltageSamples: c.VoltageSamples,
		CurrentSamples: c.CurrentSamples,
	}
}

// Period returns the sampling interval of c.
func (c *Config) Period() (time.Duration, error) {
	d, err := time.ParseDuration(c.Interval)
	if err != nil {
		return 0, fmt.Errorf("ina2xx: invalid interval %q: %w", c.Interval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("ina2xx: interval %s must be positive", d)
	}
	return d, nil
}

// Options returns the device options described by c.
func (c *Config) Options() []Option {
	opts := []Option{
		OnBus(c.Bus),
		OnAddr(c.Address),
		WithStrictStatus(c.StrictStatus),
	}
	if c.Window > 0 {
		opts = append(opts, WithWindow(c.Window))
	}
	if c.Raw {
		return append(opts, Raw())
	}
	return append(opts, WithLimits(c.Limits()))
}
