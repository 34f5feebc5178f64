// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GermanBionicSystems/sbsmon/internal/config"
	"github.com/spf13/pflag"
)

const flagsDoc = `
bus: "1"
battery:
  addr: 0x0C
poll:
  interval_ms: 500
output:
  serial: /dev/ttyS0
  baud: 9600
  format: cbor
`

func resolveArgs(t *testing.T, args ...string) (*config.Config, error) {
	var o options
	fs := pflag.NewFlagSet("sbsmon", pflag.ContinueOnError)
	o.registerRoot(fs)
	o.registerOutput(fs)
	o.registerWatch(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return o.resolve(fs)
}

func TestResolve(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sbsmon.yaml")
	if err := os.WriteFile(p, []byte(flagsDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	data := []struct {
		name     string
		args     []string
		bus      string
		addr     uint16
		serial   string
		baud     int
		interval int
		format   string
		display  bool
	}{
		{"defaults", nil, "", 0x0B, "", 115200, 1000, "text", false},
		{"file", []string{"--config", p}, "1", 0x0C, "/dev/ttyS0", 9600, 500, "cbor", false},
		{
			"flags over file",
			[]string{"--config", p, "--addr", "0x16", "--serial", "/dev/ttyUSB0", "--interval", "250ms"},
			"1", 0x16, "/dev/ttyUSB0", 9600, 250, "cbor", false,
		},
		{
			"flags without file",
			[]string{"--bus", "2", "--baud", "57600", "-f", " TEXT ", "--display"},
			"2", 0x0B, "", 57600, 1000, "text", true,
		},
	}
	for _, line := range data {
		t.Run(line.name, func(t *testing.T) {
			c, err := resolveArgs(t, line.args...)
			if err != nil {
				t.Fatal(err)
			}
			if c.Bus != line.bus {
				t.Errorf("Bus=%q, want %q", c.Bus, line.bus)
			}
			if c.Battery.Addr != line.addr {
				t.Errorf("Battery.Addr=0x%X, want 0x%X", c.Battery.Addr, line.addr)
			}
			if c.Output.Serial != line.serial {
				t.Errorf("Output.Serial=%q, want %q", c.Output.Serial, line.serial)
			}
			if c.Output.Baud != line.baud {
				t.Errorf("Output.Baud=%d, want %d", c.Output.Baud, line.baud)
			}
			if c.Poll.IntervalMs != line.interval {
				t.Errorf("Poll.IntervalMs=%d, want %d", c.Poll.IntervalMs, line.interval)
			}
			if c.Output.Format != line.format {
				t.Errorf("Output.Format=%q, want %q", c.Output.Format, line.format)
			}
			if c.Display.Enabled != line.display {
				t.Errorf("Display.Enabled=%t, want %t", c.Display.Enabled, line.display)
			}
		})
	}
}

func TestResolveErr(t *testing.T) {
	data := [][]string{
		{"--config", filepath.Join(t.TempDir(), "missing.yaml")},
		{"--addr", "0x80"},
		{"--format", "json"},
		{"--interval", "0s"},
	}
	for _, args := range data {
		if _, err := resolveArgs(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestPrintsText(t *testing.T) {
	data := []struct {
		serial string
		term   bool
		want   bool
	}{
		{"", false, true},
		{"", true, false},
		{"/dev/ttyUSB0", false, true},
		{"/dev/ttyUSB0", true, true},
	}
	for _, line := range data {
		c := config.Default()
		c.Output.Serial = line.serial
		if got := printsText(c, line.term); got != line.want {
			t.Errorf("printsText(%q, %t)=%t", line.serial, line.term, got)
		}
	}
}
