/*
Copyright 2024 Tim St. Pierre
d2r2/go-i2c transport
*/
package hd44780

import (
	"fmt"
	"os"

	"github.com/d2r2/go-i2c"
	d2r2log "github.com/d2r2/go-logger"
	log "github.com/sirupsen/logrus"
)

// D2r2Transport uses github.com/d2r2/go-i2c, which opens /dev/i2c-N and
// binds the address in one call. Open checks the device node exists so a
// missing bus fails as an open error.
type D2r2Transport struct {
	bus  int
	path string
	dev  *i2c.I2C
}

func (t *D2r2Transport) String() string {
	return fmt.Sprintf("d2r2 %s", t.path)
}

func (t *D2r2Transport) Open(path string) error {
	n, err := busNumber(path)
	if err != nil {
		return err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if fi.Mode()&os.ModeCharDevice == 0 {
		return fmt.Errorf("%s is not a character device", path)
	}
	// the i2c package logs every transfer
	if err := d2r2log.ChangePackageLogLevel("i2c", d2r2log.WarnLevel); err != nil {
		log.Warnf("hd44780: i2c log level: %v", err)
	}
	t.bus = n
	t.path = path
	return nil
}

func (t *D2r2Transport) BindAddress(addr uint16) error {
	if t.path == "" {
		return ErrState
	}
	dev, err := i2c.NewI2C(uint8(addr), t.bus)
	if err != nil {
		return err
	}
	t.dev = dev
	return nil
}

func (t *D2r2Transport) WriteByte(b byte) (int, error) {
	if t.dev == nil {
		return 0, ErrState
	}
	return t.dev.WriteBytes([]byte{b})
}

func (t *D2r2Transport) Close() error {
	if t.dev == nil {
		return nil
	}
	err := t.dev.Close()
	t.dev = nil
	return err
}
