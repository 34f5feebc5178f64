// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// sbsmon reads a smart battery gas gauge over SMBus and shows its telemetry
// on the console, a serial port or an SSD1306 OLED panel.
package main

import (
	"log"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("sbsmon: ")
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
