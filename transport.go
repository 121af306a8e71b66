/*
Copyright 2024 Tim St. Pierre
Bus transports for the hd44780 driver
*/
package hd44780

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// BusTransport is a single slave on an I2C bus. Open and BindAddress are
// called once each, in that order, before any WriteByte.
type BusTransport interface {
	Open(path string) error
	BindAddress(addr uint16) error
	// WriteByte transmits b and reports how many bytes went out.
	WriteByte(b byte) (int, error)
	Close() error
}

var transports = map[string]func() BusTransport{
	"devfs":  func() BusTransport { return &DevfsTransport{} },
	"periph": func() BusTransport { return &PeriphTransport{} },
	"d2r2":   func() BusTransport { return &D2r2Transport{} },
	"dump":   func() BusTransport { return &DumpTransport{} },
}

// NewTransport returns a fresh transport by name.
func NewTransport(name string) (BusTransport, error) {
	if name == "" {
		name = "devfs"
	}
	f, ok := transports[name]
	if !ok {
		return nil, fmt.Errorf("hd44780: unknown transport %q, want one of %s", name, strings.Join(TransportNames(), ", "))
	}
	return f(), nil
}

// TransportNames lists the names NewTransport accepts.
func TransportNames() []string {
	names := make([]string, 0, len(transports))
	for n := range transports {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

const devPrefix = "/dev/i2c-"

// busNumber extracts N from a /dev/i2c-N path.
func busNumber(path string) (int, error) {
	if !strings.HasPrefix(path, devPrefix) {
		return 0, fmt.Errorf("%q is not a %sN device path", path, devPrefix)
	}
	n, err := strconv.Atoi(path[len(devPrefix):])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%q is not a %sN device path", path, devPrefix)
	}
	return n, nil
}
