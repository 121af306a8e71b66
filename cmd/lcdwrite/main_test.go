package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseFlags(t *testing.T) {
	c, err := parseFlags([]string{"-d", "/dev/i2c-0", "-a", "0x3f", "-t", "hello", "-r", "2", "-R", "2", "-c", "20", "-i", "-transport", "periph", "-delay", "1ms"})
	if err != nil {
		t.Fatal(err)
	}
	want := config{
		device:    "/dev/i2c-0",
		address:   0x3f,
		text:      "hello",
		row:       2,
		maxRows:   2,
		maxCols:   20,
		init:      true,
		transport: "periph",
		delay:     time.Millisecond,
	}
	if *c != want {
		t.Errorf("got %+v, want %+v", *c, want)
	}
}

func TestParseFlagsRows(t *testing.T) {
	c, err := parseFlags([]string{"-1", "top", "-3", "third", "-t", "ignored", "-r", "2", "-D", "/tmp/lcd.dmp", "-n"})
	if err != nil {
		t.Fatal(err)
	}
	want := []line{{1, "top"}, {3, "third"}}
	if got := c.lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("lines() = %v, want %v", got, want)
	}
	if c.transport != "dump" || c.device != "/tmp/lcd.dmp" || !c.noPad {
		t.Errorf("got transport %q device %q noPad %v", c.transport, c.device, c.noPad)
	}
}

func TestParseFlagsInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no row", []string{"-t", "x"}},
		{"three rows", []string{"-r", "1", "-R", "3"}},
		{"row past end", []string{"-r", "3", "-R", "2"}},
		{"row flag past end", []string{"-4", "x", "-R", "2"}},
		{"narrow", []string{"-r", "1", "-c", "8"}},
		{"wide", []string{"-r", "1", "-c", "81"}},
		{"four rows of eighty", []string{"-r", "4", "-R", "4", "-c", "80"}},
		{"four rows of forty", []string{"-r", "1", "-R", "4", "-c", "40"}},
		{"ten bit address", []string{"-r", "1", "-a", "0x100"}},
		{"zero delay", []string{"-r", "1", "-delay", "0s"}},
		{"unknown flag", []string{"-r", "1", "-x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseFlags(tt.args); err == nil {
				t.Errorf("parseFlags(%q) succeeded", tt.args)
			}
		})
	}
}

func TestRunUnknownTransport(t *testing.T) {
	c := &config{device: "/dev/i2c-1", address: 0x27, row: 1, maxRows: 1, maxCols: 16, transport: "spidev", delay: time.Millisecond}
	if err := run(c); err == nil {
		t.Error("run succeeded with an unknown transport")
	}
}

func TestRunDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lcd.dmp")
	c, err := parseFlags([]string{"-D", path, "-R", "2", "-1", "ab", "-2", "cd", "-i"})
	if err != nil {
		t.Fatal(err)
	}
	if err := run(c); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// 60 init bytes then two lines of 6 × (1 + 16)
	if n := strings.Count(string(got), "0x") - 1; n != 60+2*6*17 {
		t.Errorf("dumped %d bus bytes, want %d", n, 60+2*6*17)
	}
	if !strings.HasPrefix(string(got), "#0x27\n0x08 0x0c 0x08 0x38 ") {
		t.Errorf("dump starts %.40q", got)
	}
}
