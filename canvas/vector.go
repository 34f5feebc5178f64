// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package canvas

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// Vector is a Drawer that renders with gg on a grayscale canvas.
//
// Text uses the Go Regular TrueType font. Shapes and glyphs are
// anti-aliased, Render thresholds them back to 1 bit. XOR is not supported.
type Vector struct {
	dc   *gg.Context
	font *truetype.Font
	// TextSize is the font size in pixels at scale 1.
	TextSize float64
}

// NewVector returns a black w x h canvas.
func NewVector(w, h int) (*Vector, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("canvas: %w", err)
	}
	dc := gg.NewContext(w, h)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	return &Vector{dc: dc, font: f, TextSize: 10}, nil
}

func (v *Vector) setColor(c Color) error {
	switch c {
	case Black:
		v.dc.SetRGB(0, 0, 0)
	case White:
		v.dc.SetRGB(1, 1, 1)
	default:
		return fmt.Errorf("%w: %s on a vector canvas", ErrUnsupportedColor, c)
	}
	return nil
}

// DrawRect implements Drawer.
func (v *Vector) DrawRect(r image.Rectangle, c Color, filled bool) error {
	if err := v.setColor(c); err != nil {
		return err
	}
	r = r.Canon()
	if filled {
		v.dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
		v.dc.Fill()
		return nil
	}
	// Stroke through the pixel centers so a 1px line covers exactly one
	// pixel row or column.
	v.dc.SetLineWidth(1)
	v.dc.DrawRectangle(float64(r.Min.X)+0.5, float64(r.Min.Y)+0.5, float64(r.Dx()-1), float64(r.Dy()-1))
	v.dc.Stroke()
	return nil
}

// DrawBitmap implements Drawer.
func (v *Vector) DrawBitmap(at image.Point, cols, rows int, bits []byte, c Color) error {
	if err := v.setColor(c); err != nil {
		return err
	}
	if err := checkBitmap(cols, rows, bits); err != nil {
		return err
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if bitmapBit(bits, cols, x, y) {
				v.dc.SetPixel(at.X+x, at.Y+y)
			}
		}
	}
	return nil
}

// DrawText implements Drawer.
func (v *Vector) DrawText(at image.Point, s string, scale int, c Color) error {
	if err := v.setColor(c); err != nil {
		return err
	}
	if scale < 1 {
		scale = 1
	}
	v.dc.SetFontFace(truetype.NewFace(v.font, &truetype.Options{Size: v.TextSize * float64(scale)}))
	v.dc.DrawStringAnchored(s, float64(at.X), float64(at.Y), 0, 1)
	return nil
}

// Image returns the rendered canvas.
func (v *Vector) Image() image.Image {
	return v.dc.Image()
}

// Render thresholds the canvas into dst.
func (v *Vector) Render(dst *Frame) {
	draw.Draw(dst, dst.Bounds(), v.dc.Image(), image.Point{}, draw.Src)
}

var _ Drawer = &Vector{}
