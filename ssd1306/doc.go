// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ssd1306 controls a monochrome OLED display via a SSD1306
// controller over I²C.
//
// The controller is run in horizontal addressing mode with its internal
// charge pump, as found on the common 0.91" 128x32 modules.
//
// The driver does differential updates: it only sends modified pixels for the
// smallest rectangle, to economize bus bandwidth. This is especially important
// when using I²C as the bus default speed (often 100kHz) is slow enough to
// saturate the bus at less than 10 frames per second.
//
// Drawing primitives (rectangles, bitmaps and text) are applied to an in
// memory canvas.Frame and sent with Flush.
//
// # Datasheets
//
// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
package ssd1306
