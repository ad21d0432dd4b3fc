package ina2xx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cgxeiji/ina2xx/ina219"
)

func TestParseConfigDefaults(t *testing.T) {
	c, err := ParseConfig([]byte("bus: /dev/i2c-1\naddress: 0x41\n"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Bus != "/dev/i2c-1" || c.Address != 0x41 {
		t.Errorf("bus %q address 0x%x", c.Bus, c.Address)
	}
	if c.Limits() != DefaultLimits {
		t.Errorf("limits = %+v, want defaults", c.Limits())
	}
	p, err := c.Period()
	if err != nil || p != 200*time.Millisecond {
		t.Errorf("period = %v, %v", p, err)
	}
}

func TestParseConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"yaml":     "address: [",
		"interval": "interval: soon",
		"negative": "interval: -1s",
		"shunt":    "shunt_ohms: 0.3",
		"samples":  "voltage_samples: 0",
	}
	for name, doc := range tests {
		if _, err := ParseConfig([]byte(doc)); err == nil {
			t.Errorf("%s: no error", name)
		}
	}
	_, err := ParseConfig([]byte("max_voltage: 40"))
	if !errors.Is(err, ina219.ErrConfiguration) {
		t.Errorf("got %v, want configuration error", err)
	}
	// Limits are not checked in raw mode.
	if _, err := ParseConfig([]byte("raw: true\nshunt_ohms: 0.3")); err != nil {
		t.Errorf("raw: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ina2xx.yml")
	doc := "max_current: 3\nshunt_ohms: 0.1\nvoltage_samples: 16\nwindow: 10\ninterval: 1s\nstrict_status: true\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := ina219.Limits{MaxVoltage: 24, MaxCurrent: 3, ShuntOhms: 0.1, VoltageSamples: 16, CurrentSamples: 128}
	if c.Limits() != want {
		t.Errorf("limits = %+v, want %+v", c.Limits(), want)
	}

	d := newDevice(append(c.Options(), WithLogger(quietLogger{})))
	if d.window != 10 || !d.strict || *d.limits != want {
		t.Errorf("options: window %d strict %t limits %+v", d.window, d.strict, d.limits)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("missing file: no error")
	}
}
