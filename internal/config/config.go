// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config loads the sbsmon YAML configuration file.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GermanBionicSystems/sbsmon/sbs"
	"github.com/GermanBionicSystems/sbsmon/ssd1306"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Bus is the I²C bus name as understood by i2creg.Open. Empty selects
	// the first bus.
	Bus     string        `yaml:"bus"`
	Battery BatteryConfig `yaml:"battery"`
	Display DisplayConfig `yaml:"display"`
	Poll    PollConfig    `yaml:"poll"`
	Output  OutputConfig  `yaml:"output"`
}

// ---- BATTERY ----

type BatteryConfig struct {
	Addr          uint16  `yaml:"addr"`
	SettleUs      int     `yaml:"settle_us"`
	PEC           bool    `yaml:"pec"`
	CurrentFactor float64 `yaml:"current_factor"`
}

// ---- DISPLAY ----

type DisplayConfig struct {
	Enabled          bool   `yaml:"enabled"`
	Addr             uint16 `yaml:"addr"`
	Width            int    `yaml:"width"`
	Height           int    `yaml:"height"`
	MirrorVertical   bool   `yaml:"mirror_vertical"`
	MirrorHorizontal bool   `yaml:"mirror_horizontal"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- OUTPUT ----

type OutputConfig struct {
	// Serial is the serial port the report is written to. Empty means stdout.
	Serial string `yaml:"serial"`
	Baud   int    `yaml:"baud"`
	// Format is "text" or "cbor".
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Battery: BatteryConfig{
			Addr:          sbs.DefaultAddress,
			SettleUs:      int(sbs.DefaultOpts.Settle / time.Microsecond),
			CurrentFactor: sbs.DefaultCurrentFactor,
		},
		Display: DisplayConfig{
			Addr:   ssd1306.DefaultOpts.Addr,
			Width:  ssd1306.DefaultOpts.W,
			Height: ssd1306.DefaultOpts.H,
		},
		Poll:   PollConfig{IntervalMs: 1000},
		Output: OutputConfig{Baud: 115200, Format: "text"},
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes a YAML document over the defaults. Unknown keys are
// rejected.
func Parse(b []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// BatteryOpts returns the gas gauge driver options.
func (c *Config) BatteryOpts() sbs.Opts {
	return sbs.Opts{
		Addr:   c.Battery.Addr,
		Settle: time.Duration(c.Battery.SettleUs) * time.Microsecond,
		PEC:    c.Battery.PEC,
	}
}

// DisplayOpts returns the OLED driver options.
func (c *Config) DisplayOpts() ssd1306.Opts {
	return ssd1306.Opts{
		W:                c.Display.Width,
		H:                c.Display.Height,
		Sequential:       ssd1306.DefaultOpts.Sequential,
		MirrorVertical:   c.Display.MirrorVertical,
		MirrorHorizontal: c.Display.MirrorHorizontal,
		Addr:             c.Display.Addr,
	}
}

// Interval returns the polling period.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Poll.IntervalMs) * time.Millisecond
}
