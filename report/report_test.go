// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/sbsmon/canvas"
	"github.com/GermanBionicSystems/sbsmon/sbs"
	"github.com/google/go-cmp/cmp"
)

func sample() (*sbs.Info, *sbs.Snapshot) {
	info := &sbs.Info{
		Manufacturer:       "IWB",
		Device:             "1240ST",
		Chemistry:          "LION",
		DesignCapacity:     2600,
		FullChargeCapacity: 2000,
		DesignVoltage:      14400,
		ManufactureDate:    sbs.DecodeDate(0x4A21),
		SerialNumber:       1234,
		Mode:               0x6001,
		Status:             0x00C0,
	}
	s := &sbs.Snapshot{
		TemperatureK:      3031,
		Voltage:           12340,
		Current:           0xFC18,
		RelativeSOC:       88,
		AbsoluteSOC:       80,
		RemainingCapacity: 1000,
		TimeToEmpty:       90,
		TimeToFull:        0xFFFF,
		CycleCount:        12,
		CellVoltage:       [4]uint16{3080, 3090, 3100, 3110},
	}
	return info, s
}

func TestWrite(t *testing.T) {
	info, s := sample()
	var b bytes.Buffer
	if err := Write(&b, info, s, 2); err != nil {
		t.Fatal(err)
	}
	expected := `MFG Name: IWB
Device Name: 1240ST
Chemistry: LION
Design Capacity: 2600mAh
Current Capacity: 4000mAh
Design Voltage: 14400mV
Manufacture Date (Y-M-D): 2017-1-1
Serial Number: 1234
Battery Mode (BIN): 0b110000000000001
Battery Status (BIN): 0b11000000

*************Battery Data*************
Voltage: 12.34V
Discharge: 2000mA
Minutes remaining until empty: 90
Remaining Capacity: 2000mAh
Relative SOC: 88%   Absolute SOC: 80%
Cycle Count: 12
Temp: 29.95C
Cell Voltages:
1: 3.08V 2: 3.09V 3: 3.10V 4: 3.11V
**************************************

`
	if diff := cmp.Diff(expected, b.String()); diff != "" {
		t.Fatalf("Write() mismatch (-want +got):\n%s", diff)
	}
	if err := Write(&b, nil, s, 1); err == nil {
		t.Error("expected an error without info")
	}
}

func TestWriteCharge(t *testing.T) {
	_, s := sample()
	s.Current = 500
	s.TimeToFull = 60
	var b bytes.Buffer
	if err := WriteSnapshot(&b, s, 2); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "Charge: 1000mA\nMinutes remaining for full charge: 60\n") {
		t.Errorf("unexpected report:\n%s", b.String())
	}

	// No charge current, no time to full.
	s.Current = 0
	b.Reset()
	if err := WriteSnapshot(&b, s, 2); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "Charge: 0mA\nRemaining Capacity:") {
		t.Errorf("unexpected report:\n%s", b.String())
	}
	if strings.Contains(b.String(), "Minutes") {
		t.Errorf("unexpected minutes:\n%s", b.String())
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("unplugged")
}

func TestWriteError(t *testing.T) {
	info, s := sample()
	if err := Write(failWriter{}, info, s, 1); err == nil {
		t.Error("expected the writer error")
	}
}

func TestSummary(t *testing.T) {
	_, s := sample()
	if diff := cmp.Diff([]string{" 88% 12.34V", "-2000mA 90m 30C"}, Summary(s, 2)); diff != "" {
		t.Errorf("Summary() mismatch (-want +got):\n%s", diff)
	}
	s.Current = 500
	if l := Summary(s, 1); l[1] != "+500mA -- 30C" {
		t.Errorf("charge %q", l[1])
	}
	s.Current = 0
	if l := Summary(s, 1); l[1] != "0mA 30C" {
		t.Errorf("idle %q", l[1])
	}
}

func TestDraw(t *testing.T) {
	_, s := sample()
	f := canvas.NewFrame(PanelRect)
	f.SetBit(127, 31, canvas.On)
	if err := Draw(f, s, 1); err != nil {
		t.Fatal(err)
	}
	if f.BitAt(127, 31) {
		t.Error("Draw did not clear the panel")
	}
	// Outline, fill and empty end of the gauge.
	if !f.BitAt(0, 0) || !f.BitAt(3, 5) || f.BitAt(20, 5) {
		t.Error("unexpected gauge")
	}
	if !f.BitAt(25, 4) {
		t.Error("missing terminal")
	}

	// The bolt is XORed over the fill while charging.
	s.Current = 500
	if err := Draw(f, s, 1); err != nil {
		t.Fatal(err)
	}
	if f.BitAt(13, 5) {
		t.Error("bolt not drawn over the fill")
	}

	// The vector canvas has no XOR.
	v, err := canvas.NewVector(PanelRect.Dx(), PanelRect.Dy())
	if err != nil {
		t.Fatal(err)
	}
	if err := Draw(v, s, 1); !errors.Is(err, canvas.ErrUnsupportedColor) {
		t.Errorf("err=%v", err)
	}
	s.Current = 0
	if err := Draw(v, s, 1); err != nil {
		t.Fatal(err)
	}
	if err := Draw(canvas.Nop{}, s, 1); err != nil {
		t.Fatal(err)
	}
}
