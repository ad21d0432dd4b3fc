package ina219

import "time"

// Register addresses
const (
	RegConfig       byte = 0x00
	RegShuntVoltage byte = 0x01
	RegBusVoltage   byte = 0x02
	RegPower        byte = 0x03
	RegCurrent      byte = 0x04
	RegCalibration  byte = 0x05
)

// Device constants
const (
	Addr    = 0x40
	MaxAddr = 0x7F

	// DefaultConfig and DefaultCalibration are the register values the chip
	// reports after a reset.
	DefaultConfig      uint16 = 0x399F
	DefaultCalibration uint16 = 0x0000

	resetWord uint16 = 0xFFFF
)

// Bus voltage register status flags
const (
	busCNVR uint16 = (1 << 1)
	busOVF  uint16 = (1 << 0)

	busStatusBits = 3
)

// Measurement limits of the chip.
const (
	MaxBusVoltage   = 32.0
	MaxShuntVoltage = 0.32
	MaxSamples      = 128

	BusVoltageLSB   = 0.004   // V
	ShuntVoltageLSB = 0.00001 // V

	// calibrationScale links shunt voltage, current LSB and the calibration
	// register (datasheet, equation 1).
	calibrationScale = 0.04096
	currentSteps     = 32768
	powerLSBFactor   = 20
)

// Operating modes
const (
	ModePowerDown byte = iota
	ModeShuntTriggered
	ModeBusTriggered
	ModeShuntBusTriggered
	ModeADCOff
	ModeShuntContinuous
	ModeBusContinuous
	ModeShuntBusContinuous
)

// PGA gain settings
const (
	Gain40mV byte = iota
	Gain80mV
	Gain160mV
	Gain320mV
)

// Bus voltage ranges
const (
	Range16V byte = iota
	Range32V
)

// Chip timing.
const (
	verifySettle     = 4 * time.Microsecond
	resetSettle      = time.Millisecond
	conversionSettle = 150 * time.Millisecond
)
