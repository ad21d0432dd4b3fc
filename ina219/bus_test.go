package ina219

import (
	"bytes"
	"fmt"
	"time"

	"periph.io/x/periph/conn/i2c/i2ctest"
)

// busOp is one expected transaction on fakeBus.
type busOp struct {
	w   []byte
	r   []byte
	err error
}

// fakeBus replays ops in order and fails on anything unexpected. Unlike
// i2ctest.Playback it can inject bus errors.
type fakeBus struct {
	addr uint16
	ops  []busOp
	done int
}

func (f *fakeBus) Tx(addr uint16, w, r []byte) error {
	if f.done >= len(f.ops) {
		return fmt.Errorf("fake: unexpected Tx #%d w=%x", f.done, w)
	}
	op := f.ops[f.done]
	f.done++
	if addr != f.addr {
		return fmt.Errorf("fake: addr 0x%x, want 0x%x", addr, f.addr)
	}
	if op.err != nil {
		return op.err
	}
	if !bytes.Equal(op.w, w) {
		return fmt.Errorf("fake: Tx #%d wrote %x, want %x", f.done-1, w, op.w)
	}
	if len(op.r) != len(r) {
		return fmt.Errorf("fake: Tx #%d read %d bytes, want %d", f.done-1, len(r), len(op.r))
	}
	copy(r, op.r)
	return nil
}

func (f *fakeBus) remaining() int { return len(f.ops) - f.done }

func writeOp(reg byte, v uint16) busOp {
	return busOp{w: []byte{reg, byte(v >> 8), byte(v)}}
}

func readBack(v uint16) busOp {
	return busOp{r: []byte{byte(v >> 8), byte(v)}}
}

func readOps(reg byte, v uint16) []busOp {
	return []busOp{{w: []byte{reg}}, readBack(v)}
}

func resetOps(cfg, cal uint16) []busOp {
	ops := []busOp{writeOp(RegConfig, 0xFFFF)}
	ops = append(ops, readOps(RegConfig, cfg)...)
	return append(ops, readOps(RegCalibration, cal)...)
}

func seq(groups ...[]busOp) []busOp {
	var ops []busOp
	for _, g := range groups {
		ops = append(ops, g...)
	}
	return ops
}

// playback converts ops into an i2ctest.Playback script.
func playback(addr uint16, ops []busOp) *i2ctest.Playback {
	p := &i2ctest.Playback{}
	for _, op := range ops {
		p.Ops = append(p.Ops, i2ctest.IO{Addr: addr, W: op.w, R: op.r})
	}
	return p
}

func noSleep() Option {
	return func(d *Device) Option {
		old := d.sleep
		d.sleep = func(time.Duration) {}
		d.t.sleep = d.sleep
		return func(d *Device) Option {
			d.sleep = old
			d.t.sleep = old
			return noSleep()
		}
	}
}
