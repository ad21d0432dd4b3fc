// Package ina2xx samples an INA219 power monitor on a periph.io I²C bus and
// keeps rolling statistics of what it measured.
//
// Use the ina219 sub-package directly for register level control, or to
// drive a chip on a bus opened elsewhere.
package ina2xx

import (
	"errors"
	"fmt"
	"time"

	"github.com/d2r2/go-logger"
	"go.uber.org/multierr"
	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/host"
	"tinygo.org/x/drivers"

	"github.com/cgxeiji/ina2xx/ina219"
)

var (
	// ErrWrongDevice is returned when converting a Device to a chip driver it
	// does not wrap.
	ErrWrongDevice = errors.New("ina2xx: wrong device")
)

// Logger receives the messages of a Device. *logger.PackageLog satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Reading is one sample of the monitored load.
type Reading struct {
	Voltage physic.ElectricPotential
	Current physic.ElectricCurrent
	Power   physic.Power
	Time    time.Time
}

func (r Reading) String() string {
	return fmt.Sprintf("%s, %s, %s", r.Voltage, r.Current, r.Power)
}

// Stats summarizes the readings in the rolling window.
type Stats struct {
	Samples    int
	MinVoltage physic.ElectricPotential
	MaxVoltage physic.ElectricPotential
	MinCurrent physic.ElectricCurrent
	MaxCurrent physic.ElectricCurrent
	MeanPower  physic.Power
	// AvgPower is a moving average biased towards the latest readings.
	AvgPower physic.Power
}

// Device defines a monitored INA219.
type Device struct {
	sensor sensor
	bus    i2c.BusCloser

	busName  string
	addr     uint16
	limits   *ina219.Limits
	window   int
	strict   bool
	log      Logger
	chipOpts []ina219.Option

	voltage *tSeries
	current *tSeries
	power   *tSeries
	avg     movingAverage
	now     func() time.Time
}

type sensor interface {
	Refresh() error
	Sample() ina219.Sample
	Shutdown() error
	Startup() error
}

func newDevice(opts []Option) *Device {
	l := DefaultLimits
	d := &Device{
		addr:   defaultAddr,
		limits: &l,
		window: defaultWindow,
		now:    time.Now,
	}
	d.Options(opts...)
	if d.log == nil {
		d.log = logger.NewPackageLogger("ina2xx", logger.InfoLevel)
	}

	return d
}

// New opens an I²C bus and returns a calibrated device on it. By default, the
// first available bus is used, the device is at 0x40 and calibrated with
// DefaultLimits.
func New(opts ...Option) (*Device, error) {
	d := newDevice(opts)

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("ina2xx: could not initialize host: %w", err)
	}
	bus, err := i2creg.Open(d.busName)
	if err != nil {
		return nil, fmt.Errorf("ina2xx: could not open I2C bus: %w", err)
	}
	if err := d.attach(bus); err != nil {
		bus.Close()
		return nil, err
	}
	d.bus = bus

	return d, nil
}

// NewWithBus returns a calibrated device on a bus owned by the caller. Close
// leaves the bus open.
func NewWithBus(bus drivers.I2C, opts ...Option) (*Device, error) {
	d := newDevice(opts)
	if err := d.attach(bus); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Device) attach(bus drivers.I2C) error {
	opts := append([]ina219.Option{
		ina219.WithLogger(d.log),
		ina219.StrictStatus(d.strict),
	}, d.chipOpts...)

	var (
		chip *ina219.Device
		err  error
	)
	if d.limits == nil {
		d.log.Infof("ina219 at 0x%02x: raw mode, telemetry is unscaled", d.addr)
		chip, err = ina219.New(bus, d.addr, opts...)
	} else {
		chip, err = ina219.NewCalibrated(bus, d.addr, *d.limits, opts...)
	}
	if err != nil {
		return fmt.Errorf("ina2xx: could not initialize device: %w", err)
	}
	if d.limits != nil {
		c := chip.Calibration()
		d.log.Infof("ina219 at 0x%02x: %v, calibration %d, %g A/bit", d.addr, c.Config, c.Register, c.CurrentLSB)
	}

	d.sensor = chip
	d.voltage = newTSeries(d.window)
	d.current = newTSeries(d.window)
	d.power = newTSeries(d.window)

	return nil
}

// Close powers the device down and closes the bus if New opened it.
func (d *Device) Close() error {
	err := d.sensor.Shutdown()
	if d.bus != nil {
		err = multierr.Append(err, d.bus.Close())
	}
	if err != nil {
		return fmt.Errorf("ina2xx: could not close device: %w", err)
	}

	return nil
}

// Read samples the device. On error the statistics are left untouched.
func (d *Device) Read() (Reading, error) {
	if err := d.sensor.Refresh(); err != nil {
		return Reading{}, fmt.Errorf("ina2xx: could not refresh data: %w", err)
	}
	s := d.sensor.Sample()
	if s.Overflow {
		d.log.Debugf("math overflow flag set: %g V, %g A", s.Voltage, s.Current)
	}

	d.voltage.add(s.Voltage)
	d.current.add(s.Current)
	d.power.add(s.Power())
	d.avg.add(s.Power())

	return Reading{
		Voltage: volts(s.Voltage),
		Current: amps(s.Current),
		Power:   watts(s.Power()),
		Time:    d.now(),
	}, nil
}

// Last returns the latest successful reading without touching the bus.
func (d *Device) Last() Reading {
	s := d.sensor.Sample()
	return Reading{
		Voltage: volts(s.Voltage),
		Current: amps(s.Current),
		Power:   watts(s.Power()),
	}
}

// Stats returns the statistics of the readings in the window.
func (d *Device) Stats() Stats {
	return Stats{
		Samples:    d.voltage.len(),
		MinVoltage: volts(d.voltage.min),
		MaxVoltage: volts(d.voltage.max),
		MinCurrent: amps(d.current.min),
		MaxCurrent: amps(d.current.max),
		MeanPower:  watts(d.power.mean()),
		AvgPower:   watts(d.avg.mean),
	}
}

// ResetStats clears the statistics.
func (d *Device) ResetStats() {
	d.voltage.reset()
	d.current.reset()
	d.power.reset()
	d.avg.reset()
}

// ToINA219 returns the underlying chip driver to access low level functions.
// Check the package ina2xx/ina219 for detailed behavior.
func (d *Device) ToINA219() (*ina219.Device, error) {
	device, ok := d.sensor.(*ina219.Device)
	if !ok {
		return nil, ErrWrongDevice
	}

	return device, nil
}

// Shutdown sets the device into power-save mode.
func (d *Device) Shutdown() error {
	return d.sensor.Shutdown()
}

// Startup wakes the device from power-save mode.
func (d *Device) Startup() error {
	return d.sensor.Startup()
}

func volts(v float64) physic.ElectricPotential {
	return physic.ElectricPotential(v * float64(physic.Volt))
}

func amps(a float64) physic.ElectricCurrent {
	return physic.ElectricCurrent(a * float64(physic.Ampere))
}

func watts(w float64) physic.Power {
	return physic.Power(w * float64(physic.Watt))
}
