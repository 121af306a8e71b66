//go:build !linux

/*
Copyright 2024 Tim St. Pierre
Raw i2c-dev transport stub
*/
package hd44780

// DevfsTransport needs the Linux i2c-dev interface.
type DevfsTransport struct{}

func (t *DevfsTransport) String() string { return "devfs" }

func (t *DevfsTransport) Open(path string) error { return ErrUnsupported }

func (t *DevfsTransport) BindAddress(addr uint16) error { return ErrUnsupported }

func (t *DevfsTransport) WriteByte(b byte) (int, error) { return 0, ErrUnsupported }

func (t *DevfsTransport) Close() error { return nil }
