// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"

	"github.com/GermanBionicSystems/sbsmon/canvas"
	"github.com/GermanBionicSystems/sbsmon/sbs"
	"github.com/GermanBionicSystems/sbsmon/ssd1306"
	"github.com/GermanBionicSystems/sbsmon/termscreen"
	"github.com/mattn/go-isatty"
	"go.bug.st/serial"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func openBus() (i2c.BusCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	b, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return nil, fmt.Errorf("failed to open I²C bus %q: %w", cfg.Bus, err)
	}
	return b, nil
}

func openBattery(b i2c.Bus) (*sbs.Dev, error) {
	o := cfg.BatteryOpts()
	return sbs.NewI2C(b, &o)
}

// panel is a drawing surface that is pushed to a display on Flush.
type panel interface {
	canvas.Drawer
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
	Flush() error
	Halt() error
}

// openPanel returns the OLED panel, or a console emulation of it when term
// is set.
func openPanel(b i2c.Bus, term bool) (panel, error) {
	if term {
		return newTermPanel(os.Stdout, cfg.Display.Width, cfg.Display.Height), nil
	}
	o := cfg.DisplayOpts()
	d, err := ssd1306.NewI2C(b, &o)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// termPanel draws in a frame buffer and shows it on the console.
type termPanel struct {
	*canvas.Frame
	screen *termscreen.Dev
}

func newTermPanel(w io.Writer, width, height int) *termPanel {
	return &termPanel{
		Frame:  canvas.NewFrame(image.Rect(0, 0, width, height)),
		screen: termscreen.NewWriter(w, &termscreen.Opts{W: width, H: height}),
	}
}

func (p *termPanel) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(p.Frame, r, src, sp, draw.Src)
	return nil
}

func (p *termPanel) Flush() error {
	return p.screen.Draw(p.Rect, p.Frame, image.Point{})
}

func (p *termPanel) Halt() error {
	return p.screen.Halt()
}

type stdout struct {
	io.Writer
}

func (stdout) Close() error {
	return nil
}

// openOutput returns where the telemetry is written and whether it is an
// interactive terminal.
func openOutput() (io.WriteCloser, bool, error) {
	if cfg.Output.Serial == "" {
		tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		return stdout{os.Stdout}, tty, nil
	}
	mode := &serial.Mode{
		BaudRate: cfg.Output.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(cfg.Output.Serial, mode)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open serial port %s: %w", cfg.Output.Serial, err)
	}
	return port, false, nil
}

var _ panel = &ssd1306.Dev{}
var _ panel = &termPanel{}
