package ina219

import "math"

// Limits describes the measurement setup.
type Limits struct {
	MaxVoltage     float64 // highest expected bus voltage, V
	MaxCurrent     float64 // highest expected load current, A
	ShuntOhms      float64 // external shunt resistor, Ω
	VoltageSamples int     // bus voltage samples averaged per conversion, 1-128
	CurrentSamples int     // shunt voltage samples averaged per conversion, 1-128
}

// MaxShuntVoltage returns the shunt voltage at MaxCurrent.
func (l Limits) MaxShuntVoltage() float64 {
	return l.MaxCurrent * l.ShuntOhms
}

// Calibration is the outcome of Calibrate: what to write to the chip and how
// to scale what it reports.
type Calibration struct {
	Config     Config
	Register   uint16
	CurrentLSB float64 // A per count of the current register
}

// PowerLSB returns the weight of one count of the power register, in W.
func (c Calibration) PowerLSB() float64 {
	return powerLSBFactor * c.CurrentLSB
}

// Calibrate derives the configuration and calibration registers for l. It
// does not touch the bus.
func Calibrate(l Limits) (Calibration, error) {
	const op = "calibrate"

	if !(l.MaxVoltage > 0 && l.MaxVoltage <= MaxBusVoltage) {
		return Calibration{}, configErr(op, "max voltage %g V out of range (0, %g]", l.MaxVoltage, MaxBusVoltage)
	}
	if !(l.MaxCurrent > 0) {
		return Calibration{}, configErr(op, "max current %g A must be positive", l.MaxCurrent)
	}
	if !(l.ShuntOhms > 0) {
		return Calibration{}, configErr(op, "shunt resistance %g Ω must be positive", l.ShuntOhms)
	}
	vshunt := l.MaxShuntVoltage()
	if vshunt > MaxShuntVoltage {
		return Calibration{}, configErr(op, "shunt resistor has a too high value for the target current: shunt voltage %g V exceeds %g V", vshunt, MaxShuntVoltage)
	}
	sadc, err := AveragingCode(l.CurrentSamples)
	if err != nil {
		return Calibration{}, err
	}
	badc, err := AveragingCode(l.VoltageSamples)
	if err != nil {
		return Calibration{}, err
	}

	lsb := l.MaxCurrent / currentSteps
	cal := math.Floor(calibrationScale / (lsb * l.ShuntOhms))
	if cal > math.MaxUint16 {
		return Calibration{}, configErr(op, "calibration register %g overflows, max shunt voltage %g V is too low", cal, vshunt)
	}

	return Calibration{
		Config: Config{
			Mode: ModeShuntBusContinuous,
			SADC: sadc,
			BADC: badc,
			PG:   GainCode(vshunt),
			BRNG: BusRangeCode(l.MaxVoltage),
		},
		Register:   uint16(cal) &^ 1,
		CurrentLSB: lsb,
	}, nil
}

// AveragingCode returns the 4-bit ADC code averaging n samples. Sample counts
// that are not a power of two round up to the next one.
func AveragingCode(n int) (byte, error) {
	switch {
	case n < 1:
		return 0, configErr("averaging code", "sample count %d must be at least 1", n)
	case n == 1:
		return 0b0011, nil
	case n == 2:
		return 0b1001, nil
	case n <= 4:
		return 0b1010, nil
	case n <= 8:
		return 0b1011, nil
	case n <= 16:
		return 0b1100, nil
	case n <= 32:
		return 0b1101, nil
	case n <= 64:
		return 0b1110, nil
	case n <= MaxSamples:
		return 0b1111, nil
	}
	return 0, configErr("averaging code", "sample count %d must be <= %d", n, MaxSamples)
}

// GainCode returns the smallest PGA setting covering vshunt volts.
func GainCode(vshunt float64) byte {
	switch {
	case vshunt <= 0.04:
		return Gain40mV
	case vshunt <= 0.08:
		return Gain80mV
	case vshunt <= 0.16:
		return Gain160mV
	}
	return Gain320mV
}

// BusRangeCode returns the bus voltage range covering v volts.
func BusRangeCode(v float64) byte {
	if v > 16 {
		return Range32V
	}
	return Range16V
}
