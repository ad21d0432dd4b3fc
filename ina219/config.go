package ina219

import "fmt"

// Configuration register layout.
const (
	modeShift = 0
	sadcShift = 3
	badcShift = 7
	pgShift   = 11
	brngShift = 13
	rstShift  = 15

	modeMask = 0b111
	adcMask  = 0b1111
	pgMask   = 0b11
	brngMask = 0b1
)

// Config holds the fields of the configuration register. Bit 14 is reserved
// and always zero.
type Config struct {
	Mode  byte // operating mode, 3 bits
	SADC  byte // shunt ADC resolution/averaging, 4 bits
	BADC  byte // bus ADC resolution/averaging, 4 bits
	PG    byte // shunt PGA gain, 2 bits
	BRNG  byte // bus voltage range, 1 bit
	Reset bool
}

// Encode packs c into the register word. Fields wider than their bitfield are
// truncated.
func (c Config) Encode() uint16 {
	v := uint16(c.Mode&modeMask)<<modeShift |
		uint16(c.SADC&adcMask)<<sadcShift |
		uint16(c.BADC&adcMask)<<badcShift |
		uint16(c.PG&pgMask)<<pgShift |
		uint16(c.BRNG&brngMask)<<brngShift
	if c.Reset {
		v |= 1 << rstShift
	}
	return v
}

// DecodeConfig unpacks a configuration register word.
func DecodeConfig(v uint16) Config {
	return Config{
		Mode:  byte(v>>modeShift) & modeMask,
		SADC:  byte(v>>sadcShift) & adcMask,
		BADC:  byte(v>>badcShift) & adcMask,
		PG:    byte(v>>pgShift) & pgMask,
		BRNG:  byte(v>>brngShift) & brngMask,
		Reset: v&(1<<rstShift) != 0,
	}
}

func (c Config) String() string {
	return fmt.Sprintf("mode=%d sadc=%d badc=%d pg=%d brng=%d rst=%t", c.Mode, c.SADC, c.BADC, c.PG, c.BRNG, c.Reset)
}

// ShuntRange returns the full scale shunt voltage of the PGA setting, in volts.
func (c Config) ShuntRange() float64 {
	return 0.04 * float64(uint(1)<<(c.PG&pgMask))
}

// BusRange returns the full scale bus voltage, in volts.
func (c Config) BusRange() float64 {
	if c.BRNG&brngMask == Range32V {
		return 32
	}
	return 16
}
