package ina219

import (
	"errors"
	"fmt"
)

// Kind classifies a driver error. Kinds are errors themselves, so callers can
// test for them with errors.Is:
//
//	if errors.Is(err, ina219.ErrVerification) { ... }
type Kind uint8

const (
	// ErrConfiguration reports an invalid caller-supplied parameter. It is
	// always detected before any bus activity.
	ErrConfiguration Kind = iota + 1
	// ErrTransport reports a failed or short bus transaction.
	ErrTransport
	// ErrVerification reports that a verified write did not read back the
	// written value.
	ErrVerification
	// ErrProtocol reports that the chip did not behave as documented, e.g.
	// wrong post-reset defaults. Usually a wrong address or wrong chip.
	ErrProtocol
)

func (k Kind) String() string {
	switch k {
	case ErrConfiguration:
		return "configuration error"
	case ErrTransport:
		return "transport error"
	case ErrVerification:
		return "verification error"
	case ErrProtocol:
		return "protocol error"
	}
	return "unknown error"
}

func (k Kind) Error() string { return "ina219: " + k.String() }

// Error is the error type returned by the driver. Reg, Want and Got are set
// for register level failures.
type Error struct {
	Kind Kind
	Op   string
	Reg  byte
	Want uint16
	Got  uint16
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	s := "ina219: " + e.Op + ": " + e.Kind.String()
	switch {
	case e.Msg != "":
		s += ": " + e.Msg
	case e.Kind == ErrVerification || e.Kind == ErrProtocol:
		s += fmt.Sprintf(": register 0x%02x want 0x%04x, got 0x%04x", e.Reg, e.Want, e.Got)
	case e.Kind == ErrTransport:
		s += fmt.Sprintf(": register 0x%02x", e.Reg)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the Kind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// KindOf returns the Kind of err, or 0 when err is nil or was not produced by
// this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return 0
}

func configErr(op, format string, args ...interface{}) error {
	return &Error{Kind: ErrConfiguration, Op: op, Msg: fmt.Sprintf(format, args...)}
}
