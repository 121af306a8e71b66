/*
Copyright 2024 Tim St. Pierre
periph.io transport
*/
package hd44780

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var hostInit struct {
	once sync.Once
	err  error
}

func openPeriphBus(name string) (i2c.BusCloser, error) {
	hostInit.once.Do(func() {
		_, hostInit.err = host.Init()
	})
	if hostInit.err != nil {
		return nil, hostInit.err
	}
	return i2creg.Open(name)
}

// PeriphTransport uses the periph.io bus registry. Sysfs buses register
// under their /dev/i2c-N path, so the device path is used as the bus name.
type PeriphTransport struct {
	// Opener returns the bus for a name; nil means i2creg.Open after
	// host.Init.
	Opener func(name string) (i2c.BusCloser, error)

	bus i2c.BusCloser
	dev *i2c.Dev
}

func (t *PeriphTransport) String() string {
	if t.dev != nil {
		return fmt.Sprintf("periph %s", t.dev)
	}
	return "periph"
}

func (t *PeriphTransport) Open(path string) error {
	open := t.Opener
	if open == nil {
		open = openPeriphBus
	}
	b, err := open(path)
	if err != nil {
		return err
	}
	t.bus = b
	return nil
}

func (t *PeriphTransport) BindAddress(addr uint16) error {
	if t.bus == nil {
		return ErrState
	}
	t.dev = &i2c.Dev{Bus: t.bus, Addr: addr}
	return nil
}

func (t *PeriphTransport) WriteByte(b byte) (int, error) {
	if t.dev == nil {
		return 0, ErrState
	}
	return t.dev.Write([]byte{b})
}

func (t *PeriphTransport) Close() error {
	if t.bus == nil {
		return nil
	}
	err := t.bus.Close()
	t.bus = nil
	t.dev = nil
	return err
}
