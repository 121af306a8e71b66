/*
Copyright 2024 Tim St. Pierre
Writes lines of text to an HD44780 LCD on an I2C backpack
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tstpierre-tc/hd44780"
)

const maxRows = 4

type config struct {
	device    string
	address   int
	text      string
	row       int
	rowText   [maxRows]string
	maxRows   int
	maxCols   int
	init      bool
	noPad     bool
	dump      string
	transport string
	delay     time.Duration
	verbose   bool
}

// line is one row to write, 1-indexed.
type line struct {
	row  int
	text string
}

func parseFlags(args []string) (*config, error) {
	c := &config{}
	fs := flag.NewFlagSet("lcdwrite", flag.ContinueOnError)
	fs.StringVar(&c.device, "d", "/dev/i2c-1", "device path")
	fs.IntVar(&c.address, "a", 0x27, "address")
	fs.StringVar(&c.text, "t", "", "text to write")
	fs.IntVar(&c.row, "r", 0, "row number")
	for i := range c.rowText {
		fs.StringVar(&c.rowText[i], fmt.Sprint(i+1), "", fmt.Sprintf("text for row %d", i+1))
	}
	fs.IntVar(&c.maxRows, "R", 4, "max rows available")
	fs.IntVar(&c.maxCols, "c", 16, "max columns available")
	fs.BoolVar(&c.init, "i", false, "send init sequence")
	fs.BoolVar(&c.noPad, "n", false, "do not pad short text with spaces")
	fs.StringVar(&c.dump, "D", "", "write the bus bytes to this file instead of the device")
	fs.StringVar(&c.transport, "transport", "devfs", "bus transport: "+strings.Join(hd44780.TransportNames(), ", "))
	fs.DurationVar(&c.delay, "delay", hd44780.DefaultDelay, "settling delay after every bus write")
	fs.BoolVar(&c.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.dump != "" {
		c.transport = "dump"
		c.device = c.dump
	}
	return c, c.validate()
}

func (c *config) validate() error {
	if c.maxRows != 1 && c.maxRows != 2 && c.maxRows != 4 {
		return fmt.Errorf("MaxRows can be 1, 2 or 4")
	}
	if c.maxCols < 16 || c.maxCols > 80 {
		return fmt.Errorf("MaxCols must be value between 16 and 80")
	}
	if c.maxRows == 4 && c.maxCols > 39 {
		return fmt.Errorf("MaxCols must be at most 39 on a 4 row display")
	}
	lines := c.lines()
	if len(lines) == 0 {
		return fmt.Errorf("Row number must be between 1 and %d", c.maxRows)
	}
	for _, l := range lines {
		if l.row <= 0 || l.row > c.maxRows {
			return fmt.Errorf("Row number must be between 1 and %d", c.maxRows)
		}
	}
	if c.address <= 0 || c.address > 0x7F {
		return fmt.Errorf("Address must be a 7-bit value, got 0x%x", c.address)
	}
	if c.delay <= 0 {
		return fmt.Errorf("Delay must be positive")
	}
	return nil
}

// lines returns the rows given with -1 to -4, or the -t/-r pair when none
// of them is set.
func (c *config) lines() []line {
	var ls []line
	for i, t := range c.rowText {
		if t != "" {
			ls = append(ls, line{row: i + 1, text: t})
		}
	}
	if len(ls) == 0 && c.row != 0 {
		ls = append(ls, line{row: c.row, text: c.text})
	}
	return ls
}

func run(c *config) error {
	t, err := hd44780.NewTransport(c.transport)
	if err != nil {
		return err
	}
	opts := &hd44780.Opts{
		I2CAddr: uint16(c.address),
		Lines:   uint8(c.maxRows),
		Cols:    uint8(c.maxCols),
		NoPad:   c.noPad,
		Delay:   c.delay,
	}
	if c.transport == "dump" {
		opts.Sleep = func(time.Duration) {}
	}
	d, err := hd44780.New(t, opts)
	if err != nil {
		return err
	}
	if err := d.Init(c.device, uint16(c.address), c.init); err != nil {
		return err
	}
	defer d.Close()
	for _, l := range c.lines() {
		if err := d.WriteLine(l.text, 0, 0, l.row); err != nil {
			return err
		}
	}
	log.Debugf("%s: %d bus writes", d, d.Writes())
	return nil
}

func main() {
	c, err := parseFlags(os.Args[1:])
	if err == flag.ErrHelp {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v.\n", err)
		os.Exit(1)
	}
	if c.verbose {
		log.SetLevel(log.DebugLevel)
	}
	if err := run(c); err != nil {
		log.Fatal(err)
	}
}
