// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termscreen implements a monochrome display.Drawer that outputs to
// the terminal using ANSI color codes.
//
// Useful to lay out the battery screen while the OLED panel is not wired.
package termscreen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/GermanBionicSystems/sbsmon/canvas"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	W       int
	H       int
	Palette *ansi256.Palette
	// On is the color of lit pixels. Defaults to white.
	On color.Color

	_ struct{}
}

// Dev is a monochrome panel emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	on      color.NRGBA

	frame *canvas.Frame
	buf   bytes.Buffer
	// drawn is set once a frame is on screen, the next refresh overwrites it.
	drawn bool
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	return NewWriter(colorable.NewColorableStdout(), opts)
}

// DefaultOpts emulates a 128x32 panel with white pixels.
var DefaultOpts = Opts{W: 128, H: 32}

// NewWriter returns a Dev that writes its frames to w.
//
// A nil opts means DefaultOpts.
func NewWriter(w io.Writer, opts *Opts) *Dev {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	p := o.Palette
	if p == nil {
		p = ansi256.Default
	}
	on := o.On
	if on == nil {
		on = color.White
	}
	return &Dev{
		w:       w,
		palette: *p,
		on:      color.NRGBAModel.Convert(on).(color.NRGBA),
		frame:   canvas.NewFrame(image.Rect(0, 0, o.W, o.H)),
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("TermScreen{%s}", d.frame.Rect.Max)
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so the shell is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Write accepts a stream of pixels in the canvas.Frame layout.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.frame.Pix) {
		return 0, fmt.Errorf("termscreen: invalid pixel stream length; expected %d bytes, got %d bytes", len(d.frame.Pix), len(pixels))
	}
	copy(d.frame.Pix, pixels)
	return len(pixels), d.refresh()
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return canvas.BitModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.frame.Rect
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	// draw.Draw clips r and shifts sp accordingly.
	draw.Draw(d.frame, r, src, sp, draw.Src)
	return d.refresh()
}

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	h := d.frame.Rect.Dy()
	if d.drawn {
		// Move back to the top of the previous frame.
		fmt.Fprintf(&d.buf, "\033[%dA", h)
	}
	off := d.palette.Block(color.NRGBA{A: 255})
	on := d.palette.Block(d.on)
	for y := 0; y < h; y++ {
		_, _ = d.buf.WriteString("\r\033[0m")
		for x := 0; x < d.frame.Rect.Dx(); x++ {
			if d.frame.BitAt(x, y) {
				_, _ = d.buf.WriteString(on)
			} else {
				_, _ = d.buf.WriteString(off)
			}
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	d.drawn = true
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
