// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"image"

	"github.com/GermanBionicSystems/sbsmon/canvas"
	"github.com/GermanBionicSystems/sbsmon/report"
	"github.com/GermanBionicSystems/sbsmon/sbs"
	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/i2c"
)

var (
	displayTerm   bool
	displayVector bool
)

var displayCmd = &cobra.Command{
	Use:   "display",
	Short: "Draw a test pattern on the OLED panel",
	Long: `Initialize the SSD1306 panel and draw a test pattern: a frame, a battery
glyph, some text and an inverted block. --vector renders the pattern with the
TrueType renderer instead of the bitmap font.`,
	Args: cobra.NoArgs,
	RunE: runDisplay,
}

func init() {
	displayCmd.Flags().BoolVar(&displayTerm, "term", false, "Emulate the OLED panel on the console")
	displayCmd.Flags().BoolVar(&displayVector, "vector", false, "Render with anti-aliased TrueType text")
	rootCmd.AddCommand(displayCmd)
}

// batteryGlyph is 14x6.
var batteryGlyph = []byte{
	0xff, 0xf0,
	0x80, 0x1c,
	0xbf, 0x94,
	0xbf, 0x94,
	0x80, 0x1c,
	0xff, 0xf0,
}

func runDisplay(cmd *cobra.Command, args []string) error {
	var b i2c.Bus
	if !displayTerm {
		bc, err := openBus()
		if err != nil {
			return err
		}
		defer bc.Close()
		b = bc
	}
	p, err := openPanel(b, displayTerm)
	if err != nil {
		return err
	}
	if displayVector {
		err = drawVectorPattern(p)
	} else {
		err = drawPattern(p)
	}
	if err != nil {
		return err
	}
	return p.Flush()
}

func drawPattern(c canvas.Drawer) error {
	r := report.PanelRect
	if err := c.DrawRect(r, canvas.White, false); err != nil {
		return err
	}
	if err := c.DrawBitmap(image.Pt(4, 4), 14, 6, batteryGlyph, canvas.White); err != nil {
		return err
	}
	if err := c.DrawText(image.Pt(24, 2), "sbsmon", 1, canvas.White); err != nil {
		return err
	}
	return c.DrawRect(image.Rect(r.Max.X-24, 4, r.Max.X-4, r.Max.Y-4), canvas.XOR, true)
}

func drawVectorPattern(p panel) error {
	b := p.Bounds()
	v, err := canvas.NewVector(b.Dx(), b.Dy())
	if err != nil {
		return err
	}
	v.TextSize = 12
	if err := v.DrawRect(b, canvas.White, false); err != nil {
		return err
	}
	if err := v.DrawBitmap(image.Pt(4, 4), 14, 6, batteryGlyph, canvas.White); err != nil {
		return err
	}
	if err := v.DrawText(image.Pt(24, 4), "sbsmon", 1, canvas.White); err != nil {
		return err
	}
	return p.Draw(b, v.Image(), image.Point{})
}

// showSummary renders one snapshot on the panel.
func showSummary(p panel, s *sbs.Snapshot) error {
	if err := report.Draw(p, s, cfg.Battery.CurrentFactor); err != nil {
		return err
	}
	return p.Flush()
}
