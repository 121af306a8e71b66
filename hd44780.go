/*
Copyright 2024 Tim St. Pierre
Drives an HD44780 character LCD through a PCF8574 I2C backpack
*/
package hd44780

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// Commands
	CMD_DDRAM_Set = 0x80

	// Backpack lines, as bit masks on the expander port
	RS        = 0x01
	EN        = 0x04
	BACKLIGHT = 0x08

	// Register select
	MODE_CMD  = 0x00
	MODE_DATA = RS

	Space = 0x20

	// Last DDRAM address of a two line controller
	ddramEnd = 0x67

	DefaultDelay = 50 * time.Millisecond
)

// 4-bit mode power-on handshake. Each row is three strobed nibble writes
// for the high and the low half of one step, backlight on throughout.
var initSequence = [10][6]byte{
	{0x08, 0x0c, 0x08, 0x38, 0x3c, 0x38},
	{0x08, 0x0c, 0x08, 0x38, 0x3c, 0x38},
	{0x08, 0x0c, 0x08, 0x38, 0x3c, 0x38},
	{0x08, 0x0c, 0x08, 0x28, 0x2c, 0x28},
	{0x28, 0x2c, 0x28, 0x88, 0x8c, 0x88},
	{0x08, 0x0c, 0x08, 0xc8, 0xcc, 0xc8},
	{0x08, 0x0c, 0x08, 0x18, 0x1c, 0x18},
	{0x08, 0x0c, 0x08, 0x68, 0x6c, 0x68},
	{0x08, 0x0c, 0x08, 0x18, 0x1c, 0x18},
	{0x08, 0x0c, 0x08, 0x28, 0x2c, 0x28},
}

type state int

const (
	stateUninitialized state = iota
	stateOpen
	stateClosed
)

func (s state) String() string {
	switch s {
	case stateUninitialized:
		return "uninitialized"
	case stateOpen:
		return "open"
	case stateClosed:
		return "closed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Dev is one LCD behind one bus transport. It is not safe for concurrent use.
type Dev struct {
	t      BusTransport
	opts   Opts
	state  state
	writes int
}

// New returns a device that talks through t. No I/O happens until Init.
//
// Use default options if nil is used.
func New(t BusTransport, opts *Opts) (*Dev, error) {
	if t == nil {
		return nil, &Error{Kind: KindConfig, Op: "new", Err: fmt.Errorf("nil transport")}
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	o := *opts
	if o.Delay == 0 {
		o.Delay = DefaultDelay
	}
	if o.Sleep == nil {
		o.Sleep = time.Sleep
	}
	if _, err := o.i2cAddr(); err != nil {
		return nil, &Error{Kind: KindConfig, Op: "new", Err: err}
	}
	if o.Lines != 0 {
		if _, err := rowAddresses(int(o.Lines), int(o.Cols)); err != nil {
			return nil, &Error{Kind: KindConfig, Op: "new", Err: err}
		}
	}
	return &Dev{t: t, opts: o}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("hd44780{%s}", d.t)
}

// Writes reports how many single byte bus writes the device has made.
func (d *Dev) Writes() int {
	return d.writes
}

// Init opens the bus at path, binds the slave address and, if runHandshake
// is set, sends the 4-bit initialization sequence.
//
// An address of 0 selects the address from the options.
func (d *Dev) Init(path string, addr uint16, runHandshake bool) error {
	switch d.state {
	case stateClosed:
		return ErrClosed
	case stateOpen:
		return ErrState
	}
	if addr == 0 {
		a, err := d.opts.i2cAddr()
		if err != nil {
			return &Error{Kind: KindConfig, Op: "init", Err: err}
		}
		addr = a
	}
	if addr > maxAddr {
		return &Error{Kind: KindConfig, Op: "init", Err: fmt.Errorf("address 0x%x is not a 7-bit address", addr)}
	}

	if err := d.t.Open(path); err != nil {
		return &Error{Kind: KindOpen, Op: "open " + path, Err: err}
	}
	if err := d.t.BindAddress(addr); err != nil {
		d.release()
		return &Error{Kind: KindAddress, Op: fmt.Sprintf("bind 0x%02x", addr), Err: err}
	}
	d.state = stateOpen
	log.Infof("hd44780: opened %s at 0x%02x", path, addr)

	if !runHandshake {
		return nil
	}
	log.Info("hd44780: sending init sequence")
	for _, row := range initSequence {
		for _, b := range row {
			if err := d.writeByte(b); err != nil {
				d.state = stateUninitialized
				d.release()
				return &Error{Kind: KindWrite, Op: "init sequence", Err: err}
			}
		}
	}
	return nil
}

// WriteLine writes msg into the 1-indexed row of a rows×cols display,
// truncated or right padded with spaces to exactly cols characters.
// Zero rows or cols take the geometry from the options. With Opts.NoPad
// a short message is written as is.
func (d *Dev) WriteLine(msg string, rows, cols, row int) error {
	if err := d.ready(); err != nil {
		return err
	}
	if rows == 0 {
		rows = int(d.opts.Lines)
	}
	if cols == 0 {
		cols = int(d.opts.Cols)
	}
	if cols <= 0 || cols > ddramEnd+1 {
		return &Error{Kind: KindConfig, Op: "write line", Err: fmt.Errorf("display does not support %d cols", cols)}
	}
	addrs, err := rowAddresses(rows, cols)
	if err != nil {
		return &Error{Kind: KindConfig, Op: "write line", Err: err}
	}
	if row < 1 || row > len(addrs) {
		return &Error{Kind: KindConfig, Op: "write line", Err: fmt.Errorf("display does not support line %d of %d", row, rows)}
	}

	if err := d.command(addrs[row-1]); err != nil {
		return err
	}
	n := len(msg)
	if n > cols {
		n = cols
	}
	for i := 0; i < n; i++ {
		if err := d.data(msg[i]); err != nil {
			return err
		}
	}
	if d.opts.NoPad {
		return nil
	}
	for i := n; i < cols; i++ {
		if err := d.data(Space); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the bus. A device cannot be reopened.
func (d *Dev) Close() error {
	if d.state == stateClosed {
		return ErrClosed
	}
	if d.state == stateOpen {
		d.release()
		log.Info("hd44780: closed")
	}
	d.state = stateClosed
	return nil
}

func (d *Dev) ready() error {
	switch d.state {
	case stateOpen:
		return nil
	case stateClosed:
		return ErrClosed
	}
	return ErrState
}

func (d *Dev) release() {
	if err := d.t.Close(); err != nil {
		log.Warnf("hd44780: close: %v", err)
	}
}

func (d *Dev) command(cmd byte) error {
	return d.write(cmd, MODE_CMD)
}

func (d *Dev) data(char byte) error {
	return d.write(char, MODE_DATA)
}

// write sends one logical byte as six strobed nibble writes and then waits
// once more.
func (d *Dev) write(b, mode byte) error {
	log.Debugf("hd44780: writing %08b %x mode %d", b, b, mode)
	for _, v := range encode(b, mode) {
		if err := d.writeByte(v); err != nil {
			op := "write data"
			if mode == MODE_CMD {
				op = "write command"
			}
			return &Error{Kind: KindWrite, Op: op, Err: err}
		}
	}
	d.opts.Sleep(d.opts.Delay)
	return nil
}

func (d *Dev) writeByte(b byte) error {
	n, err := d.t.WriteByte(b)
	if err != nil {
		return err
	}
	if n != 1 {
		return ErrShortWrite
	}
	d.writes++
	d.opts.Sleep(d.opts.Delay)
	return nil
}

// encode expands a byte into the high and low nibble, each presented,
// strobed high and strobed low with the backlight bit held.
func encode(b, mode byte) [6]byte {
	first := mode | (b & 0xF0)
	second := mode | ((b << 4) & 0xF0)
	return [6]byte{
		first | BACKLIGHT,
		first | EN | BACKLIGHT,
		first&^EN | BACKLIGHT,
		second | BACKLIGHT,
		second | EN | BACKLIGHT,
		second&^EN | BACKLIGHT,
	}
}

// rowAddresses returns the DDRAM set command for the start of each line.
// Four line displays continue lines one and two at an offset of cols, so
// every line has to start inside DDRAM.
func rowAddresses(rows, cols int) ([]byte, error) {
	var starts []int
	switch rows {
	case 1:
		starts = []int{0x00}
	case 2:
		starts = []int{0x00, 0x40}
	case 4:
		starts = []int{0x00, 0x40, cols, 0x40 + cols}
	default:
		return nil, fmt.Errorf("display does not support %d lines", rows)
	}
	addrs := make([]byte, len(starts))
	for i, a := range starts {
		if a < 0 || a > ddramEnd {
			return nil, fmt.Errorf("line %d of a %dx%d display starts at 0x%02x, past DDRAM", i+1, rows, cols, a)
		}
		addrs[i] = CMD_DDRAM_Set | byte(a)
	}
	return addrs, nil
}
