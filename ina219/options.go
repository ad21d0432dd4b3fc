package ina219

import "sync"

// Option defines a functional option for the device. Applying an option
// returns an option restoring the previous value.
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

// WithLogger traces every register access and calibration step to l. A nil
// Logger disables tracing.
func WithLogger(l Logger) Option {
	return func(d *Device) Option {
		old := d.log
		if l == nil {
			l = nopLogger{}
		}
		d.log = l
		d.t.log = l
		return WithLogger(old)
	}
}

// WithBusLock holds l around each register transaction. Use the same lock for
// all devices sharing a bus.
func WithBusLock(l sync.Locker) Option {
	return func(d *Device) Option {
		old := d.t.lock
		d.t.lock = l
		return WithBusLock(old)
	}
}

// StrictStatus makes Refresh fail with ErrProtocol when the bus voltage
// register reports a math overflow or no conversion ready. Some chip
// revisions do not drive these bits in continuous mode, so it is off by
// default.
func StrictStatus(on bool) Option {
	return func(d *Device) Option {
		old := d.strict
		d.strict = on
		return StrictStatus(old)
	}
}
