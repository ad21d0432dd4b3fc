package ina2xx

import "github.com/cgxeiji/ina2xx/ina219"

// Device defaults
const (
	defaultAddr   = ina219.Addr
	defaultWindow = 64
)

// DefaultLimits suits the common breakout boards: a 0.1Ω shunt measuring up
// to 1.5A on a 24V rail, with maximum averaging.
var DefaultLimits = ina219.Limits{
	MaxVoltage:     24,
	MaxCurrent:     1.5,
	ShuntOhms:      0.1,
	VoltageSamples: 128,
	CurrentSamples: 128,
}
