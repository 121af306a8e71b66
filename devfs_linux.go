/*
Copyright 2024 Tim St. Pierre
Raw i2c-dev transport
*/
package hd44780

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// I2C_SLAVE from linux/i2c-dev.h
const i2cSlave = 0x0703

// DevfsTransport talks to the kernel i2c-dev interface directly. The
// "i2c-dev" kernel module has to be loaded.
type DevfsTransport struct {
	path string
	fd   int
	open bool
}

func (t *DevfsTransport) String() string {
	return fmt.Sprintf("devfs %s", t.path)
}

func (t *DevfsTransport) Open(path string) error {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return err
	}
	t.path = path
	t.fd = fd
	t.open = true
	return nil
}

func (t *DevfsTransport) BindAddress(addr uint16) error {
	if !t.open {
		return ErrState
	}
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(t.fd), i2cSlave, uintptr(addr)); errno != 0 {
		return errno
	}
	return nil
}

func (t *DevfsTransport) WriteByte(b byte) (int, error) {
	if !t.open {
		return 0, ErrState
	}
	return unix.Write(t.fd, []byte{b})
}

func (t *DevfsTransport) Close() error {
	if !t.open {
		return nil
	}
	t.open = false
	return unix.Close(t.fd)
}
