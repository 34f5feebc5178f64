// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306

// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/GermanBionicSystems/sbsmon/canvas"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
)

const (
	_CHARGEPUMP          = 0x8D
	_COLUMNADDR          = 0x21
	_COMSCANDEC          = 0xC8
	_COMSCANINC          = 0xC0
	_DISPLAYALLON_RESUME = 0xA4
	_DISPLAYOFF          = 0xAE
	_DISPLAYON           = 0xAF
	_INVERTDISPLAY       = 0xA7
	_MEMORYMODE          = 0x20
	_NORMALDISPLAY       = 0xA6
	_PAGEADDR            = 0x22
	_SEGREMAP            = 0xA0
	_SETCOMPINS          = 0xDA
	_SETCONTRAST         = 0x81
	_SETDISPLAYCLOCKDIV  = 0xD5
	_SETDISPLAYOFFSET    = 0xD3
	_SETMULTIPLEX        = 0xA8
	_SETPRECHARGE        = 0xD9
	_SETSEGMENTREMAP     = 0xA1
	_SETSTARTLINE        = 0x40
	_SETVCOMDETECT       = 0xDB
)

// DefaultOpts is the recommended default options for the 0.91" 128x32
// panels.
var DefaultOpts = Opts{
	W:          128,
	H:          32,
	Sequential: true,
	Addr:       0x3c,
}

// Opts defines the options for the device.
type Opts struct {
	W int
	H int
	// Sequential corresponds to the Sequential/Alternative COM pin configuration
	// in the OLED panel hardware. Try toggling this if half the rows appear to be
	// missing on your display. 32 pixel high panels are usually sequential.
	Sequential bool
	// MirrorVertical corresponds to the COM remap configuration in the OLED panel
	// hardware. Try toggling this if the display is flipped vertically.
	MirrorVertical bool
	// MirrorHorizontal corresponds to the SEG remap configuration in the OLED panel
	// hardware. Try toggling this if the display is flipped horizontally.
	MirrorHorizontal bool
	// The I2C address of the display.
	Addr uint16
}

// NewI2C returns a Dev object that communicates over I²C to a SSD1306 display
// controller.
//
// The controller is fully initialized, switched on and its address window
// set to the whole panel.
func NewI2C(i i2c.Bus, opts *Opts) (*Dev, error) {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.Addr == 0x00 {
		o.Addr = DefaultOpts.Addr
	}
	// Maximum clock speed is 1/2.5µs = 400KHz.
	return newDev(&i2c.Dev{Bus: i, Addr: o.Addr}, &o)
}

// Dev is an open handle to the display controller.
type Dev struct {
	c conn.Conn

	// Display size controlled by the SSD1306.
	rect image.Rectangle

	// Mutable
	// buffer mirrors the GDDRAM content. There is one page per horizontal
	// band of 8 pixels, W bytes each.
	buffer []byte
	// next is the drawing surface, lazy initialized. Write() skips it.
	next *canvas.Frame
	// Current address window, end exclusive.
	startPage, endPage int
	startCol, endCol   int
	// dirty forces a full redraw on the next update.
	dirty  bool
	halted bool

	fontScale int
	fontColor canvas.Color
}

func (d *Dev) String() string {
	return fmt.Sprintf("ssd1306.Dev{%s, %s}", d.c, d.rect.Max)
}

// ColorModel implements display.Drawer.
//
// It is a one bit color model, as implemented by canvas.Bit.
func (d *Dev) ColorModel() color.Model {
	return canvas.BitModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
//
// It draws synchronously, once this function returns, the display is updated.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if f, ok := src.(*canvas.Frame); ok && r == d.rect && f.Rect == d.rect && sp.X == 0 && sp.Y == 0 {
		// Exact size, full frame, native encoding: fast path!
		return d.drawInternal(f.Pix)
	}
	f := d.frame()
	draw.Src.Draw(f, r, src, sp)
	return d.drawInternal(f.Pix)
}

// Write writes a buffer of pixels to the display.
//
// Each byte represent 8 vertical pixels at a time, in horizontal bands of 8
// pixels high. This function accepts the content of canvas.Frame.Pix.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.buffer) {
		return 0, fmt.Errorf("ssd1306: invalid pixel stream length; expected %d bytes, got %d bytes", len(d.buffer), len(pixels))
	}
	if err := d.drawInternal(pixels); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Frame returns the drawing surface used by DrawRect, DrawBitmap, DrawText
// and Print. Call Flush to send it to the panel.
func (d *Dev) Frame() *canvas.Frame {
	return d.frame()
}

func (d *Dev) frame() *canvas.Frame {
	if d.next == nil {
		d.next = canvas.NewFrame(d.rect)
	}
	return d.next
}

// Flush sends the drawing surface to the panel. Only the smallest window
// covering the modified pixels is transferred.
func (d *Dev) Flush() error {
	return d.drawInternal(d.frame().Pix)
}

// DrawRect implements canvas.Drawer on the drawing surface.
func (d *Dev) DrawRect(r image.Rectangle, c canvas.Color, filled bool) error {
	return d.frame().DrawRect(r, c, filled)
}

// DrawBitmap implements canvas.Drawer on the drawing surface.
func (d *Dev) DrawBitmap(at image.Point, cols, rows int, bits []byte, c canvas.Color) error {
	return d.frame().DrawBitmap(at, cols, rows, bits, c)
}

// DrawText implements canvas.Drawer on the drawing surface.
func (d *Dev) DrawText(at image.Point, s string, scale int, c canvas.Color) error {
	return d.frame().DrawText(at, s, scale, c)
}

// SetFontSize sets the glyph scale used by Print.
func (d *Dev) SetFontSize(scale int) {
	if scale < 1 {
		scale = 1
	}
	d.fontScale = scale
}

// SetFontColor sets the color used by Print.
func (d *Dev) SetFontColor(c canvas.Color) {
	d.fontColor = c
}

// Print draws s on the drawing surface with the current font size and
// color.
func (d *Dev) Print(at image.Point, s string) error {
	return d.frame().DrawText(at, s, d.fontScale, d.fontColor)
}

// Clear blanks the drawing surface and the panel.
func (d *Dev) Clear() error {
	d.frame().Clear()
	d.dirty = true
	return d.drawInternal(d.next.Pix)
}

// SetColumnAddress sets the column window used by subsequent data writes.
// end is inclusive.
func (d *Dev) SetColumnAddress(start, end byte) error {
	if start > end || int(end) >= d.rect.Dx() {
		return fmt.Errorf("ssd1306: invalid column window %d-%d", start, end)
	}
	if err := d.sendCommand([]byte{_COLUMNADDR, start, end}); err != nil {
		return err
	}
	d.startCol, d.endCol = int(start), int(end)+1
	return nil
}

// SetPageAddress sets the page window used by subsequent data writes. end is
// inclusive. Both values are masked to 0-7.
func (d *Dev) SetPageAddress(start, end byte) error {
	start &= 0x07
	end &= 0x07
	if err := d.sendCommand([]byte{_PAGEADDR, start, end}); err != nil {
		return err
	}
	d.startPage, d.endPage = int(start), int(end)+1
	return nil
}

// SetContrast changes the screen contrast.
func (d *Dev) SetContrast(level byte) error {
	return d.sendCommand([]byte{_SETCONTRAST, level})
}

// Halt turns off the display.
//
// Sending any other command afterward reenables the display.
func (d *Dev) Halt() error {
	d.halted = false
	err := d.sendCommand([]byte{_DISPLAYOFF})
	if err == nil {
		d.halted = true
	}
	return err
}

// Invert the display (black on white vs white on black).
func (d *Dev) Invert(blackOnWhite bool) error {
	b := []byte{_NORMALDISPLAY}
	if blackOnWhite {
		b[0] = _INVERTDISPLAY
	}
	return d.sendCommand(b)
}

func newDev(c conn.Conn, opts *Opts) (*Dev, error) {
	if opts.W < 8 || opts.W > 128 || opts.W&7 != 0 {
		return nil, fmt.Errorf("ssd1306: invalid width %d", opts.W)
	}
	if opts.H < 8 || opts.H > 64 || opts.H&7 != 0 {
		return nil, fmt.Errorf("ssd1306: invalid height %d", opts.H)
	}
	nbPages := opts.H / 8
	d := &Dev{
		c:         c,
		rect:      image.Rect(0, 0, opts.W, opts.H),
		buffer:    make([]byte, nbPages*opts.W),
		fontScale: 1,
		fontColor: canvas.White,
		// Signal that the screen must be redrawn on first draw().
		dirty: true,
	}
	if err := d.sendCommand(getInitCmd(opts)); err != nil {
		return nil, err
	}
	if err := d.SetColumnAddress(0, byte(opts.W-1)); err != nil {
		return nil, err
	}
	if err := d.SetPageAddress(0, byte(nbPages-1)); err != nil {
		return nil, err
	}
	return d, nil
}

// getInitCmd returns the power up sequence. Page 64 of the datasheet has the
// recommended flow, page 28 lists all the commands.
func getInitCmd(opts *Opts) []byte {
	comScan := byte(_COMSCANDEC)
	if opts.MirrorVertical {
		comScan = _COMSCANINC
	}
	segRemap := byte(_SETSEGMENTREMAP)
	if opts.MirrorHorizontal {
		segRemap = _SEGREMAP
	}
	// See page 40.
	hwLayout := byte(0x02)
	if !opts.Sequential {
		hwLayout |= 0x10
	}
	return []byte{
		_DISPLAYOFF,
		_SETDISPLAYCLOCKDIV, 0x80, // Power on reset value
		_SETMULTIPLEX, byte(opts.H - 1), // Number of lines to display
		_SETDISPLAYOFFSET, 0x00,
		_SETSTARTLINE,
		_CHARGEPUMP, 0x14, // 0x10 external, 0x14 internal
		_MEMORYMODE, 0x00, // Horizontal addressing
		segRemap,
		comScan,
		_SETCOMPINS, hwLayout,
		_SETCONTRAST, 0xCF,
		_SETPRECHARGE, 0xF1, // 0x22 external, 0xF1 internal
		_SETVCOMDETECT, 0x40,
		_DISPLAYALLON_RESUME, // Display GDDRAM content
		_NORMALDISPLAY,
		_DISPLAYON,
	}
}

func (d *Dev) calculateSubset(next []byte) (int, int, int, int, bool) {
	w := d.rect.Dx()
	h := d.rect.Dy()
	startPage := 0
	endPage := h / 8
	startCol := 0
	endCol := w
	if d.dirty {
		d.dirty = false
		return startPage, endPage, startCol, endCol, false
	}
	// Calculate the smallest square that need to be sent.
	pageSize := w

	// Top.
	for ; startPage < endPage; startPage++ {
		x := pageSize * startPage
		y := pageSize * (startPage + 1)
		if !bytes.Equal(d.buffer[x:y], next[x:y]) {
			break
		}
	}
	// Bottom.
	for ; endPage > startPage; endPage-- {
		x := pageSize * (endPage - 1)
		y := pageSize * endPage
		if !bytes.Equal(d.buffer[x:y], next[x:y]) {
			break
		}
	}
	if startPage == endPage {
		// Early exit, the image is exactly the same.
		return 0, 0, 0, 0, true
	}

	// Left.
	for ; startCol < endCol; startCol++ {
		for i := startPage; i < endPage; i++ {
			x := i*pageSize + startCol
			if d.buffer[x] != next[x] {
				goto breakLeft
			}
		}
	}
breakLeft:

	// Right.
	for ; endCol > startCol; endCol-- {
		for i := startPage; i < endPage; i++ {
			x := i*pageSize + endCol - 1
			if d.buffer[x] != next[x] {
				goto breakRight
			}
		}
	}
breakRight:
	return startPage, endPage, startCol, endCol, false
}

// drawInternal sends image data to the controller.
//
// In horizontal addressing mode the controller wraps to the next page at the
// end of the column window, so the whole window is one data transfer.
func (d *Dev) drawInternal(next []byte) error {
	startPage, endPage, startCol, endCol, skip := d.calculateSubset(next)
	if skip {
		return nil
	}
	if err := d.sendWindow(next, startPage, endPage, startCol, endCol); err != nil {
		// The panel content is unknown, resend everything next time.
		d.dirty = true
		return err
	}
	copy(d.buffer, next)
	return nil
}

func (d *Dev) sendWindow(next []byte, startPage, endPage, startCol, endCol int) error {
	if d.startCol != startCol || d.endCol != endCol {
		if err := d.SetColumnAddress(byte(startCol), byte(endCol-1)); err != nil {
			return err
		}
	}
	if d.startPage != startPage || d.endPage != endPage {
		if err := d.SetPageAddress(byte(startPage), byte(endPage-1)); err != nil {
			return err
		}
	}
	pageSize := d.rect.Dx()
	data := make([]byte, 0, (endPage-startPage)*(endCol-startCol))
	for page := startPage; page < endPage; page++ {
		pageStart := page * pageSize
		data = append(data, next[pageStart+startCol:pageStart+endCol]...)
	}
	return d.sendData(data)
}

func (d *Dev) sendData(c []byte) error {
	if d.halted {
		// Transparently enable the display.
		if err := d.sendCommand(nil); err != nil {
			return err
		}
	}
	return d.c.Tx(append([]byte{i2cData}, c...), nil)
}

func (d *Dev) sendCommand(c []byte) error {
	if d.halted {
		// Transparently enable the display.
		c = append([]byte{_DISPLAYON}, c...)
		d.halted = false
	}
	return d.c.Tx(append([]byte{i2cCmd}, c...), nil)
}

const (
	i2cCmd  = 0x00 // I²C transaction has stream of command bytes
	i2cData = 0x40 // I²C transaction has stream of data bytes
)

var _ display.Drawer = &Dev{}
var _ canvas.Drawer = &Dev{}
