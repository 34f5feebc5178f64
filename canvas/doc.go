// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package canvas implements the drawing primitives used to compose the
// battery status screen: rectangles, bitmaps and text.
//
// Three backends implement Drawer. Frame is a 1 bit frame buffer with the
// memory layout of the SSD1306 GDDRAM, so its Pix can be sent as is. Vector
// renders anti-aliased shapes and TrueType text with gg and is thresholded
// into a Frame afterward. Nop discards everything.
package canvas
