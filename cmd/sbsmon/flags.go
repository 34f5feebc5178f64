// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/GermanBionicSystems/sbsmon/internal/config"
	"github.com/GermanBionicSystems/sbsmon/sbs"
	"github.com/spf13/pflag"
)

// options holds the command line flags. Only the flags set on the command
// line override the configuration file.
type options struct {
	config string
	bus    string
	addr   uint16

	serial string
	baud   int

	interval time.Duration
	format   string
	display  bool
	term     bool
}

func (o *options) registerRoot(fs *pflag.FlagSet) {
	fs.StringVarP(&o.config, "config", "c", "", "YAML configuration file")
	fs.StringVar(&o.bus, "bus", "", "I²C bus name or number (default: first bus)")
	fs.Uint16Var(&o.addr, "addr", sbs.DefaultAddress, "SMBus address of the battery")
}

func (o *options) registerOutput(fs *pflag.FlagSet) {
	fs.StringVar(&o.serial, "serial", "", "Serial port device to write to (default: stdout)")
	fs.IntVar(&o.baud, "baud", 115200, "Baud rate of the serial port")
}

func (o *options) registerWatch(fs *pflag.FlagSet) {
	fs.DurationVarP(&o.interval, "interval", "i", time.Second, "Polling interval")
	fs.StringVarP(&o.format, "format", "f", "text", "Output format: text or cbor")
	fs.BoolVar(&o.display, "display", false, "Show the summary on the OLED panel")
	fs.BoolVar(&o.term, "term", false, "Emulate the OLED panel on the console")
}

// resolve loads the configuration file, applies the flags changed in fs and
// validates the result.
func (o *options) resolve(fs *pflag.FlagSet) (*config.Config, error) {
	c := config.Default()
	if o.config != "" {
		var err error
		if c, err = config.Load(o.config); err != nil {
			return nil, fmt.Errorf("config load failed: %w", err)
		}
	}
	if fs.Changed("bus") {
		c.Bus = o.bus
	}
	if fs.Changed("addr") {
		c.Battery.Addr = o.addr
	}
	if fs.Changed("serial") {
		c.Output.Serial = o.serial
	}
	if fs.Changed("baud") {
		c.Output.Baud = o.baud
	}
	if fs.Changed("interval") {
		c.Poll.IntervalMs = int(o.interval / time.Millisecond)
	}
	if fs.Changed("format") {
		c.Output.Format = o.format
	}
	if fs.Changed("display") && o.display {
		c.Display.Enabled = true
	}
	if err := config.Validate(c); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(c)
	return c, nil
}

// printsText reports whether watch prints snapshots. The emulated panel owns
// the console unless the output goes to a serial port.
func printsText(c *config.Config, term bool) bool {
	return !term || c.Output.Serial != ""
}
