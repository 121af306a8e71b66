/*
Copyright 2024 Tim St. Pierre
Options for hd44780 character display
*/
package hd44780

import (
	"errors"
	"time"
)

const maxAddr = 0x7F

type Opts struct {
	// The I²C slave address, used when Init is given 0
	I2CAddr uint16
	// Display geometry, used by WriteLine when it is given zero. Lines 0
	// skips the check in New.
	Lines uint8
	Cols  uint8
	// Leave the rest of a line untouched instead of padding with spaces
	NoPad bool
	// Settling time after every bus write
	Delay time.Duration
	// Sleep waits for Delay; nil means time.Sleep
	Sleep func(time.Duration)
}

var DefaultOpts = Opts{
	I2CAddr: 0x27,
	Lines:   4,
	Cols:    16,
	Delay:   DefaultDelay,
}

func (o *Opts) i2cAddr() (uint16, error) {
	switch {
	case o.I2CAddr == 0:
		// Default address.
		return 0x27, nil
	case o.I2CAddr <= maxAddr:
		return o.I2CAddr, nil
	default:
		return 0, errors.New("given address is not a 7-bit address")
	}
}
