package ina2xx

import "github.com/cgxeiji/ina2xx/ina219"

// An Option configures a device. Options are applied before the bus is
// touched; applying one returns an option restoring the previous value.
type Option func(d *Device) Option

// Options sets different configuration options and returns the previous value
// of the last option passed.
func (d *Device) Options(options ...Option) Option {
	var old Option
	for _, opt := range options {
		old = opt(d)
	}

	return old
}

// OnBus can be used to specify I²C bus name
// ("/dev/i2c-2", "I2C2", "2"). By default, the bus name is "", which selects
// the first available bus.
func OnBus(name string) Option {
	return func(d *Device) Option {
		old := d.busName
		d.busName = name
		return OnBus(old)
	}
}

// OnAddr can be used to specify alternative I²C address.
// By default, the address is 0x40.
func OnAddr(addr uint16) Option {
	return func(d *Device) Option {
		old := d.addr
		d.addr = addr
		return OnAddr(old)
	}
}

// WithLimits calibrates the device for l. By default, DefaultLimits is used.
func WithLimits(l ina219.Limits) Option {
	return func(d *Device) Option {
		old := d.limits
		d.limits = &l
		return withLimits(old)
	}
}

func withLimits(l *ina219.Limits) Option {
	return func(d *Device) Option {
		old := d.limits
		d.limits = l
		return withLimits(old)
	}
}

// Raw skips calibration. Voltage is still reported, but current and power
// read as zero unless the chip was calibrated elsewhere.
func Raw() Option {
	return withLimits(nil)
}

// WithWindow sets how many readings Stats covers. By default, 64.
func WithWindow(n int) Option {
	return func(d *Device) Option {
		old := d.window
		d.window = n
		return WithWindow(old)
	}
}

// WithStrictStatus makes reads fail when the chip flags a math overflow or
// has no conversion ready.
func WithStrictStatus(on bool) Option {
	return func(d *Device) Option {
		old := d.strict
		d.strict = on
		return WithStrictStatus(old)
	}
}

// WithLogger sends the device messages to l. By default, an "ina2xx" package
// logger at info level is used.
func WithLogger(l Logger) Option {
	return func(d *Device) Option {
		old := d.log
		d.log = l
		return WithLogger(old)
	}
}

// WithChipOptions passes options to the ina219 driver, e.g. a shared bus
// lock.
func WithChipOptions(opts ...ina219.Option) Option {
	return func(d *Device) Option {
		old := d.chipOpts
		d.chipOpts = opts
		return WithChipOptions(old...)
	}
}
