// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sbs reads telemetry from a Smart Battery System (SBS 1.1) gas gauge
// over SMBus.
//
// It targets the register set of the TI BQ2085 family as found in 12V LiFePO4
// packs: 16 bit little endian words and length prefixed blocks. It is not a
// general SMBus library and never writes to the gauge.
//
// Some gauges require a stop condition between the command byte and the read
// phase, so every read is split in two bus transactions separated by a short
// settling delay instead of using a repeated start.
//
// # Datasheets
//
// https://www.ti.com/product/BQ2085
//
// http://sbs-forum.org/specs/sbdat110.pdf
package sbs
