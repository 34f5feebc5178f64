// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sbsmon is a container for the smart battery monitor.
//
// sbs reads the gas gauge, ssd1306 drives the OLED panel, canvas and
// termscreen draw on it and report formats the telemetry. The sbsmon
// command in cmd/sbsmon ties them together.
package sbsmon
