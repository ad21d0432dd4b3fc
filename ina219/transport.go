package ina219

import (
	"encoding/binary"
	"sync"
	"time"

	"tinygo.org/x/drivers"
)

// Logger receives register level traces. *logger.PackageLog from
// github.com/d2r2/go-logger satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}

// Transport performs addressed register reads and writes on a single chip.
//
// Every call is one or two bus transactions and nothing is retried. A
// Transport is not safe for concurrent use; when several chips share a bus,
// give them a common lock with WithBusLock.
type Transport struct {
	bus   drivers.I2C
	addr  uint16
	lock  sync.Locker
	log   Logger
	sleep func(time.Duration)
}

// NewTransport binds bus to the 7-bit target address addr.
func NewTransport(bus drivers.I2C, addr uint16) (*Transport, error) {
	if bus == nil {
		return nil, configErr("new transport", "nil bus")
	}
	if addr > MaxAddr {
		return nil, configErr("new transport", "address 0x%x is not a 7-bit address", addr)
	}
	return &Transport{
		bus:   bus,
		addr:  addr,
		log:   nopLogger{},
		sleep: time.Sleep,
	}, nil
}

// Addr returns the target address.
func (t *Transport) Addr() uint16 { return t.addr }

// WriteRegister writes value to reg. When verify is set, the register is read
// back after a short settling delay and must hold exactly value.
func (t *Transport) WriteRegister(reg byte, value uint16, verify bool) error {
	if t.lock != nil {
		t.lock.Lock()
		defer t.lock.Unlock()
	}

	t.log.Debugf("write-register: reg=%02x, value=0x%04x", reg, value)
	var frame [3]byte
	frame[0] = reg
	binary.BigEndian.PutUint16(frame[1:], value)
	if err := checkTx("write register", reg, t.bus.Tx(t.addr, frame[:], nil)); err != nil {
		return err
	}
	if !verify {
		return nil
	}

	t.sleep(verifySettle)
	var b [2]byte
	if err := checkTx("verify register", reg, t.bus.Tx(t.addr, nil, b[:])); err != nil {
		return err
	}
	got := binary.BigEndian.Uint16(b[:])
	t.log.Debugf("verify-register: reg=%02x, wanted-value=0x%04x, actual-value=0x%04x", reg, value, got)
	if got != value {
		return &Error{Kind: ErrVerification, Op: "write register", Reg: reg, Want: value, Got: got}
	}

	return nil
}

// ReadRegister sets the register pointer to reg and reads its 16-bit value.
func (t *Transport) ReadRegister(reg byte) (uint16, error) {
	if t.lock != nil {
		t.lock.Lock()
		defer t.lock.Unlock()
	}

	if err := checkTx("set register pointer", reg, t.bus.Tx(t.addr, []byte{reg}, nil)); err != nil {
		return 0, err
	}
	var b [2]byte
	if err := checkTx("read register", reg, t.bus.Tx(t.addr, nil, b[:])); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(b[:])
	t.log.Debugf("read-register: reg=%02x, value=0x%04x", reg, v)

	return v, nil
}

// checkTx turns a failed bus transaction into a TransportError. Short
// transfers are reported by the bus implementation as errors.
func checkTx(op string, reg byte, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: ErrTransport, Op: op, Reg: reg, Err: err}
}
