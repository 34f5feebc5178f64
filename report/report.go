// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package report formats battery telemetry for humans.
//
// Write prints the long report on a console or serial port. Summary and
// Draw lay the essentials out for a 128x32 monochrome panel.
package report

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/GermanBionicSystems/sbsmon/canvas"
	"github.com/GermanBionicSystems/sbsmon/sbs"
)

// Banner opens the dynamic section of the report.
const Banner = "*************Battery Data*************"

const footer = "**************************************"

// Write prints the static pack information followed by one snapshot.
//
// Currents and capacities, except the design capacity, are corrected by
// factor. Nothing is written if info or s is nil.
func Write(w io.Writer, info *sbs.Info, s *sbs.Snapshot, factor float64) error {
	if info == nil || s == nil {
		return fmt.Errorf("report: nothing to write")
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "MFG Name: %s\n", info.Manufacturer)
	fmt.Fprintf(&b, "Device Name: %s\n", info.Device)
	fmt.Fprintf(&b, "Chemistry: %s\n", info.Chemistry)
	fmt.Fprintf(&b, "Design Capacity: %dmAh\n", info.DesignCapacity)
	fmt.Fprintf(&b, "Current Capacity: %dmAh\n", sbs.Scale(info.FullChargeCapacity, factor))
	fmt.Fprintf(&b, "Design Voltage: %dmV\n", info.DesignVoltage)
	fmt.Fprintf(&b, "Manufacture Date (Y-M-D): %s\n", info.ManufactureDate)
	fmt.Fprintf(&b, "Serial Number: %d\n", info.SerialNumber)
	fmt.Fprintf(&b, "Battery Mode (BIN): 0b%b\n", info.Mode)
	fmt.Fprintf(&b, "Battery Status (BIN): 0b%b\n", uint16(info.Status))
	b.WriteString("\n")
	writeSnapshot(&b, s, factor)
	_, err := w.Write(b.Bytes())
	return err
}

// WriteSnapshot prints only the dynamic section of the report.
func WriteSnapshot(w io.Writer, s *sbs.Snapshot, factor float64) error {
	var b bytes.Buffer
	writeSnapshot(&b, s, factor)
	_, err := w.Write(b.Bytes())
	return err
}

func writeSnapshot(b *bytes.Buffer, s *sbs.Snapshot, factor float64) {
	b.WriteString(Banner + "\n")
	fmt.Fprintf(b, "Voltage: %.2fV\n", volts(s.Voltage))
	if s.Discharging() {
		fmt.Fprintf(b, "Discharge: %dmA\n", s.CurrentMA(factor))
		fmt.Fprintf(b, "Minutes remaining until empty: %d\n", s.TimeToEmpty)
	} else {
		fmt.Fprintf(b, "Charge: %dmA\n", s.CurrentMA(factor))
		if s.Current != 0 {
			fmt.Fprintf(b, "Minutes remaining for full charge: %d\n", s.TimeToFull)
		}
	}
	fmt.Fprintf(b, "Remaining Capacity: %dmAh\n", sbs.Scale(s.RemainingCapacity, factor))
	fmt.Fprintf(b, "Relative SOC: %d%%   Absolute SOC: %d%%\n", s.RelativeSOC, s.AbsoluteSOC)
	fmt.Fprintf(b, "Cycle Count: %d\n", s.CycleCount)
	fmt.Fprintf(b, "Temp: %.2fC\n", sbs.TemperatureCelsius(s.TemperatureK))
	b.WriteString("Cell Voltages:\n")
	for i, v := range s.CellVoltage {
		if i != 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(b, "%d: %.2fV", i+1, volts(v))
	}
	b.WriteString("\n" + footer + "\n\n")
}

// Summary returns the two lines shown on the panel: state of charge and
// voltage, then current, minutes left and temperature.
func Summary(s *sbs.Snapshot, factor float64) []string {
	l0 := fmt.Sprintf("%3d%% %5.2fV", s.RelativeSOC, volts(s.Voltage))
	t := sbs.TemperatureCelsius(s.TemperatureK)
	var l1 string
	switch {
	case s.Discharging():
		l1 = fmt.Sprintf("-%dmA %s %.0fC", s.CurrentMA(factor), minutes(s.TimeToEmpty), t)
	case s.Current != 0:
		l1 = fmt.Sprintf("+%dmA %s %.0fC", s.CurrentMA(factor), minutes(s.TimeToFull), t)
	default:
		l1 = fmt.Sprintf("0mA %.0fC", t)
	}
	return []string{l0, l1}
}

// PanelRect is the area Draw paints.
var PanelRect = image.Rect(0, 0, 128, 32)

// Lightning bolt shown over the gauge while charging, 5x8.
var bolt = []byte{0x10, 0x20, 0x60, 0xF8, 0x30, 0x20, 0x40, 0x00}

// Terminal of the battery icon, 2x6.
var tip = []byte{0xC0, 0xC0, 0xC0, 0xC0, 0xC0, 0xC0}

// Draw paints a battery gauge and the Summary lines on c.
func Draw(c canvas.Drawer, s *sbs.Snapshot, factor float64) error {
	if err := c.DrawRect(PanelRect, canvas.Black, true); err != nil {
		return err
	}
	if err := c.DrawRect(image.Rect(0, 0, 24, 12), canvas.White, false); err != nil {
		return err
	}
	if err := c.DrawBitmap(image.Pt(24, 3), 2, 6, tip, canvas.White); err != nil {
		return err
	}
	soc := int(s.RelativeSOC)
	if soc > 100 {
		soc = 100
	}
	if w := 20 * soc / 100; w > 0 {
		if err := c.DrawRect(image.Rect(2, 2, 2+w, 10), canvas.White, true); err != nil {
			return err
		}
	}
	if !s.Discharging() && s.Current != 0 {
		if err := c.DrawBitmap(image.Pt(10, 2), 5, 8, bolt, canvas.XOR); err != nil {
			return err
		}
	}
	lines := Summary(s, factor)
	if err := c.DrawText(image.Pt(30, 0), lines[0], 1, canvas.White); err != nil {
		return err
	}
	return c.DrawText(image.Pt(0, 16), lines[1], 1, canvas.White)
}

func volts(mv uint16) float64 {
	return float64(mv) / 1000
}

func minutes(m uint16) string {
	if m == 0xFFFF {
		return "--"
	}
	return fmt.Sprintf("%dm", m)
}
