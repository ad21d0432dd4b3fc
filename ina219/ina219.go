// Package ina219 drives a Texas Instruments INA219 current, voltage and power
// monitor over I²C.
//
// A Device is reset when it is created. Calibrate translates the physical
// limits of the measurement setup into configuration bits and a calibration
// value; Refresh then samples bus voltage and current in volts and amps.
//
// The bus is any drivers.I2C, such as a periph.io i2c.Bus. Sampling cadence is
// left to the caller: the chip needs up to 68ms per averaged conversion.
package ina219

import (
	"time"

	"tinygo.org/x/drivers"
)

// State is the lifecycle stage of a Device.
type State uint8

const (
	StateUninitialized State = iota
	StateReset
	StateCalibrated
	StateStreaming
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReset:
		return "reset"
	case StateCalibrated:
		return "calibrated"
	case StateStreaming:
		return "streaming"
	}
	return "unknown"
}

// Sample is the latest telemetry of a Device.
type Sample struct {
	Voltage float64 // bus voltage, V
	Current float64 // load current, A

	// Status flags of the bus voltage register.
	Ready    bool
	Overflow bool
}

// Power returns Voltage * Current, in W.
func (s Sample) Power() float64 {
	return s.Voltage * s.Current
}

// Device defines an INA219 device.
type Device struct {
	t      *Transport
	log    Logger
	sleep  func(time.Duration)
	strict bool

	state  State
	config Config
	cal    Calibration
	sample Sample
	down   bool
}

func newDevice(bus drivers.I2C, addr uint16, opts []Option) (*Device, error) {
	t, err := NewTransport(bus, addr)
	if err != nil {
		return nil, err
	}
	d := &Device{
		t:     t,
		log:   nopLogger{},
		sleep: time.Sleep,
	}
	d.Options(opts...)
	d.log.Debugf("addr = 0x%02x (%d)", addr, addr)

	return d, nil
}

// New returns a reset INA219 at addr. Its telemetry is unscaled until
// Calibrate is called; use it to inspect raw registers or to drive a chip
// calibrated elsewhere.
func New(bus drivers.I2C, addr uint16, opts ...Option) (*Device, error) {
	d, err := newDevice(bus, addr, opts)
	if err != nil {
		return nil, err
	}
	if err := d.Reset(); err != nil {
		return nil, err
	}

	return d, nil
}

// NewCalibrated returns an INA219 at addr calibrated for l.
func NewCalibrated(bus drivers.I2C, addr uint16, l Limits, opts ...Option) (*Device, error) {
	d, err := newDevice(bus, addr, opts)
	if err != nil {
		return nil, err
	}
	if err := d.Calibrate(l); err != nil {
		return nil, err
	}

	return d, nil
}

// Addr returns the I²C address of the device.
func (d *Device) Addr() uint16 { return d.t.Addr() }

// State returns the lifecycle stage of the device.
func (d *Device) State() State { return d.state }

// Calibration returns the calibration in effect. It is zero until Calibrate
// succeeds.
func (d *Device) Calibration() Calibration { return d.cal }

// CurrentLSB returns the current in A represented by one count of the current
// register.
func (d *Device) CurrentLSB() float64 { return d.cal.CurrentLSB }

// Voltage returns the bus voltage of the last Refresh, in V.
func (d *Device) Voltage() float64 { return d.sample.Voltage }

// Current returns the load current of the last Refresh, in A.
func (d *Device) Current() float64 { return d.sample.Current }

// Power returns the power of the last Refresh, in W.
func (d *Device) Power() float64 { return d.sample.Power() }

// Sample returns the telemetry of the last Refresh.
func (d *Device) Sample() Sample { return d.sample }

// Reset forces a hardware reset and checks that the chip reports its
// documented power-on defaults. Any calibration is discarded.
func (d *Device) Reset() error {
	const op = "reset"

	d.state = StateUninitialized
	d.config = DecodeConfig(DefaultConfig)
	d.cal = Calibration{}
	d.sample = Sample{}
	d.down = false

	// The reset bit self-clears, so this write never reads back.
	if err := d.t.WriteRegister(RegConfig, resetWord, false); err != nil {
		return err
	}
	d.sleep(resetSettle)

	cfg, err := d.t.ReadRegister(RegConfig)
	if err != nil {
		return err
	}
	cal, err := d.t.ReadRegister(RegCalibration)
	if err != nil {
		return err
	}
	if cfg != DefaultConfig {
		return &Error{Kind: ErrProtocol, Op: op, Reg: RegConfig, Want: DefaultConfig, Got: cfg}
	}
	if cal != DefaultCalibration {
		return &Error{Kind: ErrProtocol, Op: op, Reg: RegCalibration, Want: DefaultCalibration, Got: cal}
	}

	d.config = DecodeConfig(cfg)
	d.state = StateReset

	return nil
}

// Calibrate resets the chip and programs it for l, then waits for the first
// conversion to complete. Invalid limits are reported before any bus access.
func (d *Device) Calibrate(l Limits) error {
	d.log.Debugf("max_voltage = %g, max_current_amps = %g, r_shunt_ohm = %g, max_shunt_voltage = %g",
		l.MaxVoltage, l.MaxCurrent, l.ShuntOhms, l.MaxShuntVoltage())
	c, err := Calibrate(l)
	if err != nil {
		return err
	}

	if err := d.Reset(); err != nil {
		return err
	}

	d.log.Debugf("config: %v", c.Config)
	if err := d.t.WriteRegister(RegConfig, c.Config.Encode(), true); err != nil {
		return err
	}
	d.config = c.Config

	d.log.Debugf("current_lsb = %g, cal_reg = %d", c.CurrentLSB, c.Register)
	if err := d.t.WriteRegister(RegCalibration, c.Register, true); err != nil {
		return err
	}

	d.sleep(conversionSettle)
	d.cal = c
	d.state = StateCalibrated

	return nil
}

// Refresh samples bus voltage and current. On error the previous sample is
// kept.
func (d *Device) Refresh() error {
	const op = "refresh"

	if d.state == StateUninitialized {
		return &Error{Kind: ErrProtocol, Op: op, Msg: "device is not reset"}
	}

	bus, err := d.t.ReadRegister(RegBusVoltage)
	if err != nil {
		return err
	}
	ready := bus&busCNVR != 0
	overflow := bus&busOVF != 0
	if d.strict {
		if overflow {
			return &Error{Kind: ErrProtocol, Op: op, Reg: RegBusVoltage, Msg: "math overflow on current or power calculation"}
		}
		if !ready {
			return &Error{Kind: ErrProtocol, Op: op, Reg: RegBusVoltage, Msg: "no conversion data available"}
		}
	}

	cur, err := d.t.ReadRegister(RegCurrent)
	if err != nil {
		return err
	}

	d.sample = Sample{
		Voltage:  BusVoltage(bus),
		Current:  float64(int16(cur)) * d.cal.CurrentLSB,
		Ready:    ready,
		Overflow: overflow,
	}
	d.state = StateStreaming

	return nil
}

// BusVoltage converts a raw bus voltage register value to volts.
func BusVoltage(raw uint16) float64 {
	return float64(raw>>busStatusBits) * BusVoltageLSB
}

// ReadRegister returns the raw value of reg.
func (d *Device) ReadRegister(reg byte) (uint16, error) {
	return d.t.ReadRegister(reg)
}

// ShuntVoltage reads the voltage across the shunt resistor, in V.
func (d *Device) ShuntVoltage() (float64, error) {
	v, err := d.t.ReadRegister(RegShuntVoltage)
	if err != nil {
		return 0, err
	}
	return float64(int16(v)) * ShuntVoltageLSB, nil
}

// PowerRegister reads the power computed by the chip, in W. It is zero until
// Calibrate succeeds.
func (d *Device) PowerRegister() (float64, error) {
	v, err := d.t.ReadRegister(RegPower)
	if err != nil {
		return 0, err
	}
	return float64(v) * d.cal.PowerLSB(), nil
}

// Shutdown sets the device into power-down mode, keeping its calibration.
func (d *Device) Shutdown() error {
	if d.state == StateUninitialized {
		return &Error{Kind: ErrProtocol, Op: "shutdown", Msg: "device is not reset"}
	}
	c := d.config
	c.Mode = ModePowerDown
	if err := d.t.WriteRegister(RegConfig, c.Encode(), true); err != nil {
		return err
	}
	d.down = true

	return nil
}

// Startup wakes the device from power-down mode and waits for a fresh
// conversion.
func (d *Device) Startup() error {
	if d.state == StateUninitialized {
		return &Error{Kind: ErrProtocol, Op: "startup", Msg: "device is not reset"}
	}
	if !d.down {
		return nil
	}
	if err := d.t.WriteRegister(RegConfig, d.config.Encode(), true); err != nil {
		return err
	}
	d.down = false
	d.sleep(conversionSettle)

	return nil
}
