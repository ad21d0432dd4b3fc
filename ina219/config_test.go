package ina219

import "testing"

func TestConfigRoundTrip(t *testing.T) {
	for mode := byte(0); mode <= modeMask; mode++ {
		for adc := byte(0); adc <= adcMask; adc++ {
			for pg := byte(0); pg <= pgMask; pg++ {
				for brng := byte(0); brng <= brngMask; brng++ {
					c := Config{Mode: mode, SADC: adc, BADC: adcMask - adc, PG: pg, BRNG: brng}
					if got := DecodeConfig(c.Encode()); got != c {
						t.Fatalf("DecodeConfig(Encode(%v)) = %v", c, got)
					}
				}
			}
		}
	}
}

func TestDecodeDefaultConfig(t *testing.T) {
	want := Config{Mode: ModeShuntBusContinuous, SADC: 0b0011, BADC: 0b0011, PG: Gain320mV, BRNG: Range32V}
	if got := DecodeConfig(DefaultConfig); got != want {
		t.Errorf("DecodeConfig(0x399f) = %v, want %v", got, want)
	}
	if got := want.Encode(); got != DefaultConfig {
		t.Errorf("Encode = 0x%04x, want 0x399f", got)
	}
}

func TestConfigResetBit(t *testing.T) {
	c := DecodeConfig(0xFFFF)
	if !c.Reset {
		t.Error("reset bit not decoded")
	}
	// Reserved bit 14 is dropped.
	if got := c.Encode(); got != 0xBFFF {
		t.Errorf("Encode = 0x%04x, want 0xbfff", got)
	}
	if (Config{Mode: ModeShuntBusContinuous}).Encode()&(1<<rstShift) != 0 {
		t.Error("reset bit set for a normal configuration")
	}
}

func TestConfigRanges(t *testing.T) {
	if r := (Config{PG: Gain40mV}).ShuntRange(); r != 0.04 {
		t.Errorf("ShuntRange(40mV) = %g", r)
	}
	if r := (Config{PG: Gain320mV}).ShuntRange(); r != 0.32 {
		t.Errorf("ShuntRange(320mV) = %g", r)
	}
	if r := (Config{BRNG: Range16V}).BusRange(); r != 16 {
		t.Errorf("BusRange(16V) = %g", r)
	}
}
