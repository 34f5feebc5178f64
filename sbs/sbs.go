// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sbs

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GermanBionicSystems/sbsmon/common"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

const (
	// DefaultAddress is the SMBus address of a smart battery.
	DefaultAddress uint16 = 0x0B
	// BlockBufLen is the buffer size needed for the longest block the gauge
	// returns: 31 payload bytes plus the terminating zero.
	BlockBufLen = 32
)

var (
	// ErrBlockOverflow is returned when the gauge declares a block longer
	// than the buffer can hold. The returned data is truncated.
	ErrBlockOverflow = errors.New("sbs: block longer than buffer")
	// ErrPEC is returned when the packet error code does not match.
	ErrPEC = errors.New("sbs: packet error code mismatch")
)

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	Addr:   DefaultAddress,
	Settle: 100 * time.Microsecond,
}

// Opts defines the options for the device.
type Opts struct {
	// Addr is the 7 bit SMBus address. 0 means DefaultAddress.
	Addr uint16
	// Settle is the delay between writing the command code and reading the
	// response. 0 means the default of 100µs.
	Settle time.Duration
	// PEC enables packet error code verification. The gauge must append a
	// PEC byte to its responses.
	PEC bool
}

// Dev is a handle to a smart battery gas gauge.
type Dev struct {
	d      *i2c.Dev
	settle time.Duration
	pec    bool

	// mu keeps the two phases of a block read together.
	mu sync.Mutex
}

// NewI2C returns a Dev for the gauge on bus b. No bus traffic happens until
// the first read.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.Addr == 0 {
		o.Addr = DefaultAddress
	}
	if o.Addr > 0x7f {
		return nil, fmt.Errorf("sbs: invalid address 0x%x", o.Addr)
	}
	if o.Settle <= 0 {
		o.Settle = DefaultOpts.Settle
	}
	return &Dev{d: &i2c.Dev{Bus: b, Addr: o.Addr}, settle: o.Settle, pec: o.PEC}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("sbs.Dev{%s}", d.d)
}

// Halt implements conn.Resource. The gauge runs on its own, there is nothing
// to stop.
func (d *Dev) Halt() error {
	return nil
}

// ReadWord reads a 16 bit register.
//
// The command code is written in its own transaction, then after the
// settling delay the two data bytes are read, low byte first.
func (d *Dev) ReadWord(reg Register) (uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readWord(reg)
}

// ReadBlock reads a length prefixed block register into buf and returns the
// number of payload bytes.
//
// The read happens in two phases: the first one fetches only the length
// byte, the second one fetches the length byte again followed by the
// payload. buf[n] is set to 0 so the payload can be used as a C string.
//
// When the gauge declares more than len(buf)-1 bytes, only len(buf)-1 bytes
// are read and the error wraps ErrBlockOverflow.
func (d *Dev) ReadBlock(reg Register, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, errors.New("sbs: block buffer has no room for the terminator")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readBlock(reg, buf)
}

// ReadString reads a block register and returns its payload as a string.
func (d *Dev) ReadString(reg Register) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readString(reg)
}

func (d *Dev) readString(reg Register) (string, error) {
	var buf [BlockBufLen]byte
	n, err := d.readBlock(reg, buf[:])
	return string(buf[:n]), err
}

func (d *Dev) readWord(reg Register) (uint16, error) {
	var r [3]byte
	data := r[:2]
	if d.pec {
		data = r[:3]
	}
	if err := d.command(reg); err != nil {
		return 0, err
	}
	if err := d.d.Tx(nil, data); err != nil {
		return 0, fmt.Errorf("sbs: read %s: %w", reg, err)
	}
	if d.pec {
		if err := d.checkPEC(reg, r[:2], r[2]); err != nil {
			return 0, err
		}
	}
	return uint16(r[1])<<8 | uint16(r[0]), nil
}

func (d *Dev) readBlock(reg Register, buf []byte) (int, error) {
	// Phase 1: the gauge only tells how long the block is.
	var l [1]byte
	if err := d.command(reg); err != nil {
		return 0, err
	}
	if err := d.d.Tx(nil, l[:]); err != nil {
		return 0, fmt.Errorf("sbs: read %s length: %w", reg, err)
	}
	n := int(l[0])
	var overflow error
	if room := len(buf) - 1; n > room {
		overflow = fmt.Errorf("sbs: %s declared %d bytes, room for %d: %w", reg, n, room, ErrBlockOverflow)
		n = room
	}

	// Phase 2: start over and read the length byte again plus the payload.
	size := n + 1
	check := d.pec && overflow == nil
	if check {
		size++
	}
	r := make([]byte, size)
	if err := d.command(reg); err != nil {
		return 0, err
	}
	if err := d.d.Tx(nil, r); err != nil {
		return 0, fmt.Errorf("sbs: read %s: %w", reg, err)
	}
	if check {
		if err := d.checkPEC(reg, r[:n+1], r[n+1]); err != nil {
			return 0, err
		}
	}
	copy(buf, r[1:n+1])
	buf[n] = 0
	return n, overflow
}

// command writes the command code, ends the transaction and waits for the
// gauge to prepare its answer.
func (d *Dev) command(reg Register) error {
	if err := d.d.Tx([]byte{byte(reg)}, nil); err != nil {
		return fmt.Errorf("sbs: write %s: %w", reg, err)
	}
	time.Sleep(d.settle)
	return nil
}

func (d *Dev) checkPEC(reg Register, data []byte, pec byte) error {
	addr := byte(d.d.Addr << 1)
	msg := make([]byte, 0, len(data)+3)
	msg = append(msg, addr, byte(reg), addr|1)
	msg = append(msg, data...)
	if got := common.PEC(msg); got != pec {
		return fmt.Errorf("sbs: %s: got 0x%02x, computed 0x%02x: %w", reg, pec, got, ErrPEC)
	}
	return nil
}

var _ conn.Resource = &Dev{}
