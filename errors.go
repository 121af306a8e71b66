/*
Copyright 2024 Tim St. Pierre
Errors returned by the hd44780 driver
*/
package hd44780

import (
	"errors"
	"fmt"
)

// Kind classifies a driver failure. None of them are retried.
type Kind int

const (
	KindOpen Kind = iota + 1
	KindAddress
	KindWrite
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open failure"
	case KindAddress:
		return "addressing failure"
	case KindWrite:
		return "write failure"
	case KindConfig:
		return "configuration error"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var (
	ErrClosed      = errors.New("hd44780: device is closed")
	ErrState       = errors.New("hd44780: device is not open")
	ErrShortWrite  = errors.New("hd44780: bus did not transmit exactly one byte")
	ErrUnsupported = errors.New("hd44780: transport not supported on this platform")
)

// Error carries the failing operation and the underlying OS error.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("hd44780 %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
