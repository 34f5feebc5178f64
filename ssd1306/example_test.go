// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306_test

import (
	"fmt"
	"image"
	"log"

	"github.com/GermanBionicSystems/sbsmon/canvas"
	"github.com/GermanBionicSystems/sbsmon/ssd1306"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	// Use i2creg I²C bus registry to find the first available I²C bus.
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	dev, err := ssd1306.NewI2C(b, &ssd1306.DefaultOpts)
	if err != nil {
		log.Fatalf("failed to initialize display: %s", err.Error())
	}
	fmt.Printf("device=%s\n", dev.String())

	// A frame around the panel and a battery glyph.
	_ = dev.DrawRect(dev.Bounds(), canvas.White, false)
	battery := []byte{
		0xff, 0xf0,
		0x80, 0x1c,
		0xbf, 0x94,
		0xbf, 0x94,
		0x80, 0x1c,
		0xff, 0xf0,
	}
	_ = dev.DrawBitmap(image.Pt(4, 4), 14, 6, battery, canvas.White)
	dev.SetFontSize(1)
	dev.SetFontColor(canvas.White)
	_ = dev.Print(image.Pt(24, 2), "12.34V 87%")
	if err := dev.Flush(); err != nil {
		log.Fatal(err)
	}
}
