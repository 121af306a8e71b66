package hd44780

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDevfsMissingDevice(t *testing.T) {
	s := &sleepCounter{}
	d, err := New(&DevfsTransport{}, &Opts{Sleep: s.sleep})
	if err != nil {
		t.Fatal(err)
	}
	err = d.Init(filepath.Join(t.TempDir(), "i2c-42"), 0x27, true)
	if KindOf(err) != KindOpen {
		t.Fatalf("got %v, want open failure", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("%v does not wrap ENOENT", err)
	}
	if d.Writes() != 0 || s.n != 0 {
		t.Errorf("got %d writes and %d sleeps before failing", d.Writes(), s.n)
	}
}

func TestDevfsNotAnI2CDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i2c-1")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	d, err := New(&DevfsTransport{}, &Opts{Sleep: func(time.Duration) {}})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Init(path, 0x27, true); KindOf(err) != KindAddress {
		t.Fatalf("got %v, want addressing failure", err)
	}
}

func TestDevfsUnopened(t *testing.T) {
	tr := &DevfsTransport{}
	if err := tr.BindAddress(0x27); !errors.Is(err, ErrState) {
		t.Errorf("BindAddress: got %v, want ErrState", err)
	}
	if _, err := tr.WriteByte(0x08); !errors.Is(err, ErrState) {
		t.Errorf("WriteByte: got %v, want ErrState", err)
	}
	if err := tr.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
