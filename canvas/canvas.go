// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Color is a drawing color on a monochrome panel.
type Color byte

// Drawing colors. XOR inverts the pixels it touches.
const (
	Black Color = iota
	White
	XOR
)

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	case XOR:
		return "XOR"
	default:
		return fmt.Sprintf("Color(%d)", byte(c))
	}
}

// ErrUnsupportedColor is returned by a backend that cannot render a Color.
var ErrUnsupportedColor = errors.New("canvas: unsupported color")

// Drawer is implemented by every drawing backend.
type Drawer interface {
	// DrawRect draws the outline of r, or all of it when filled is set.
	DrawRect(r image.Rectangle, c Color, filled bool) error
	// DrawBitmap draws the set bits of a cols x rows bitmap with its top left
	// corner at at. Rows are stored MSB first, each padded to a whole byte.
	DrawBitmap(at image.Point, cols, rows int, bits []byte, c Color) error
	// DrawText draws s with its top left corner at at. scale enlarges the
	// glyphs by an integer factor.
	DrawText(at image.Point, s string, scale int, c Color) error
}

// BitmapStride returns the number of bytes of one bitmap row.
func BitmapStride(cols int) int {
	return (cols + 7) / 8
}

func checkBitmap(cols, rows int, bits []byte) error {
	if cols < 0 || rows < 0 {
		return fmt.Errorf("canvas: invalid bitmap size %dx%d", cols, rows)
	}
	if need := BitmapStride(cols) * rows; len(bits) < need {
		return fmt.Errorf("canvas: bitmap %dx%d needs %d bytes, got %d", cols, rows, need, len(bits))
	}
	return nil
}

func bitmapBit(bits []byte, cols, x, y int) bool {
	return bits[y*BitmapStride(cols)+x/8]&(0x80>>uint(x&7)) != 0
}

// Bit is a monochrome pixel.
type Bit bool

// Pixel values.
const (
	On  = Bit(true)
	Off = Bit(false)
)

// RGBA implements color.Color.
func (b Bit) RGBA() (uint32, uint32, uint32, uint32) {
	if b {
		return 65535, 65535, 65535, 65535
	}
	return 0, 0, 0, 65535
}

// BitModel converts any color to a Bit by thresholding its luminance.
var BitModel = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	return toBit(c)
}

func toBit(c color.Color) Bit {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	return Bit((299*r+587*g+114*b)/1000 >= 0x8000)
}

// Nop is a Drawer that draws nothing.
type Nop struct{}

// DrawRect implements Drawer.
func (Nop) DrawRect(image.Rectangle, Color, bool) error { return nil }

// DrawBitmap implements Drawer.
func (Nop) DrawBitmap(image.Point, int, int, []byte, Color) error { return nil }

// DrawText implements Drawer.
func (Nop) DrawText(image.Point, string, int, Color) error { return nil }

var _ Drawer = Nop{}
var _ color.Color = On
