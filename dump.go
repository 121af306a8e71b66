/*
Copyright 2024 Tim St. Pierre
Byte dump transport
*/
package hd44780

import (
	"bufio"
	"fmt"
	"os"
)

// DumpTransport writes every bus byte as "0x%02x " text to a file instead
// of a bus, one line per bound address. The path is the dump file.
type DumpTransport struct {
	path string
	f    *os.File
	w    *bufio.Writer
}

func (t *DumpTransport) String() string {
	return fmt.Sprintf("dump %s", t.path)
}

func (t *DumpTransport) Open(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	t.path = path
	t.f = f
	t.w = bufio.NewWriter(f)
	return nil
}

func (t *DumpTransport) BindAddress(addr uint16) error {
	if t.w == nil {
		return ErrState
	}
	_, err := fmt.Fprintf(t.w, "#0x%02x\n", addr)
	return err
}

func (t *DumpTransport) WriteByte(b byte) (int, error) {
	if t.w == nil {
		return 0, ErrState
	}
	if _, err := fmt.Fprintf(t.w, "0x%02x ", b); err != nil {
		return 0, err
	}
	return 1, nil
}

func (t *DumpTransport) Close() error {
	if t.f == nil {
		return nil
	}
	err := t.w.WriteByte('\n')
	if ferr := t.w.Flush(); err == nil {
		err = ferr
	}
	if cerr := t.f.Close(); err == nil {
		err = cerr
	}
	t.f = nil
	t.w = nil
	return err
}
