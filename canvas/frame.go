// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Frame is a 1 bit frame buffer.
//
// Each byte holds 8 vertical pixels, LSB on top. Bytes are laid out in
// horizontal bands of 8 pixels high (pages), left to right. This is the
// GDDRAM layout of the SSD1306 in horizontal addressing mode.
type Frame struct {
	// Pix holds the pixels, page by page.
	Pix []byte
	// Rect is the frame bounds.
	Rect image.Rectangle
}

// NewFrame returns an empty Frame. The height is rounded up to a whole page.
func NewFrame(r image.Rectangle) *Frame {
	pages := (r.Dy() + 7) / 8
	return &Frame{Pix: make([]byte, pages*r.Dx()), Rect: r}
}

// ColorModel implements image.Image.
func (f *Frame) ColorModel() color.Model {
	return BitModel
}

// Bounds implements image.Image.
func (f *Frame) Bounds() image.Rectangle {
	return f.Rect
}

// At implements image.Image.
func (f *Frame) At(x, y int) color.Color {
	return f.BitAt(x, y)
}

// BitAt returns the pixel at x, y. Pixels outside the frame are Off.
func (f *Frame) BitAt(x, y int) Bit {
	if !(image.Point{x, y}.In(f.Rect)) {
		return Off
	}
	i, mask := f.offset(x, y)
	return f.Pix[i]&mask != 0
}

// Set implements draw.Image.
func (f *Frame) Set(x, y int, c color.Color) {
	f.SetBit(x, y, toBit(c))
}

// SetBit sets the pixel at x, y. Pixels outside the frame are ignored.
func (f *Frame) SetBit(x, y int, b Bit) {
	if !(image.Point{x, y}.In(f.Rect)) {
		return
	}
	i, mask := f.offset(x, y)
	if b {
		f.Pix[i] |= mask
	} else {
		f.Pix[i] &^= mask
	}
}

// Clear turns every pixel off.
func (f *Frame) Clear() {
	for i := range f.Pix {
		f.Pix[i] = 0
	}
}

func (f *Frame) offset(x, y int) (int, byte) {
	x -= f.Rect.Min.X
	y -= f.Rect.Min.Y
	return x + y/8*f.Rect.Dx(), 1 << uint(y&7)
}

func (f *Frame) paint(x, y int, c Color) {
	switch c {
	case Black:
		f.SetBit(x, y, Off)
	case White:
		f.SetBit(x, y, On)
	case XOR:
		f.SetBit(x, y, !f.BitAt(x, y))
	}
}

func checkColor(c Color) error {
	if c > XOR {
		return fmt.Errorf("%w: %s", ErrUnsupportedColor, c)
	}
	return nil
}

// DrawRect implements Drawer.
func (f *Frame) DrawRect(r image.Rectangle, c Color, filled bool) error {
	if err := checkColor(c); err != nil {
		return err
	}
	r = r.Canon()
	clip := r.Intersect(f.Rect)
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			// Each pixel is painted once so XOR outlines have clean corners.
			if filled || x == r.Min.X || x == r.Max.X-1 || y == r.Min.Y || y == r.Max.Y-1 {
				f.paint(x, y, c)
			}
		}
	}
	return nil
}

// DrawBitmap implements Drawer.
func (f *Frame) DrawBitmap(at image.Point, cols, rows int, bits []byte, c Color) error {
	if err := checkColor(c); err != nil {
		return err
	}
	if err := checkBitmap(cols, rows, bits); err != nil {
		return err
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if bitmapBit(bits, cols, x, y) {
				f.paint(at.X+x, at.Y+y, c)
			}
		}
	}
	return nil
}

// Face is the font used by Frame.DrawText.
var Face = basicfont.Face7x13

// DrawText implements Drawer.
//
// Glyphs come from Face and are enlarged by pixel replication.
func (f *Frame) DrawText(at image.Point, s string, scale int, c Color) error {
	if err := checkColor(c); err != nil {
		return err
	}
	if scale < 1 {
		scale = 1
	}
	mask := TextMask(s)
	b := mask.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.AlphaAt(x, y).A < 0x80 {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					f.paint(at.X+x*scale+dx, at.Y+y*scale+dy, c)
				}
			}
		}
	}
	return nil
}

// TextMask renders s with Face into an alpha mask whose top left corner is
// the origin.
func TextMask(s string) *image.Alpha {
	m := Face.Metrics()
	w := font.MeasureString(Face, s).Ceil()
	h := (m.Ascent + m.Descent).Ceil()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: Face,
		Dot:  fixed.Point26_6{X: 0, Y: m.Ascent},
	}
	d.DrawString(s)
	return mask
}

var _ draw.Image = &Frame{}
var _ Drawer = &Frame{}
