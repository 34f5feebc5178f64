// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/GermanBionicSystems/sbsmon/canvas"
	"github.com/GermanBionicSystems/sbsmon/report"
	"github.com/GermanBionicSystems/sbsmon/sbs"
	"github.com/fxamacker/cbor/v2"
)

var snap = sbs.Snapshot{
	TemperatureK: 2982,
	Voltage:      12000,
	Current:      0xFF38,
	RelativeSOC:  50,
	Status:       sbs.StatusInitialized | sbs.StatusDischarging,
}

func TestSnapshotWriterText(t *testing.T) {
	var got, want bytes.Buffer
	w := newSnapshotWriter(&got, "text", false, 1)
	if err := w.write(time.Now(), &snap); err != nil {
		t.Fatal(err)
	}
	if err := report.WriteSnapshot(&want, &snap, 1); err != nil {
		t.Fatal(err)
	}
	if got.String() != want.String() {
		t.Errorf("got:\n%s\nexpected:\n%s", got.String(), want.String())
	}

	got.Reset()
	w = newSnapshotWriter(&got, "text", true, 1)
	if err := w.write(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), &snap); err != nil {
		t.Fatal(err)
	}
	first := strings.SplitN(got.String(), "\n", 2)[0]
	if !strings.Contains(first, "03:04:05") || !strings.Contains(first, "Initialized|Discharging") {
		t.Errorf("unexpected header %q", first)
	}
}

func TestSnapshotWriterCBOR(t *testing.T) {
	var b bytes.Buffer
	w := newSnapshotWriter(&b, "cbor", false, 2)
	now := time.UnixMilli(1700000000123)
	if err := w.write(now, &snap); err != nil {
		t.Fatal(err)
	}
	if err := w.write(now.Add(time.Second), &snap); err != nil {
		t.Fatal(err)
	}
	dec := cbor.NewDecoder(&b)
	var r record
	if err := dec.Decode(&r); err != nil {
		t.Fatal(err)
	}
	if r.Time != 1700000000123 || r.CurrentMA != -400 || r.Snapshot != snap {
		t.Errorf("unexpected record %+v", r)
	}
	if r.TemperatureC < 25.04 || r.TemperatureC > 25.06 {
		t.Errorf("TemperatureC=%g", r.TemperatureC)
	}
	if err := dec.Decode(&r); err != nil || r.Time != 1700000001123 {
		t.Errorf("second record %+v, %v", r, err)
	}
}

func TestTermPanel(t *testing.T) {
	var b bytes.Buffer
	p := newTermPanel(&b, 128, 32)
	if err := drawPattern(p); err != nil {
		t.Fatal(err)
	}
	if !p.BitAt(0, 0) || !p.BitAt(110, 10) {
		t.Error("pattern not drawn")
	}
	if err := p.Flush(); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(b.String(), "\n"); n != 32 {
		t.Errorf("%d rows", n)
	}
	if err := report.Draw(p, &snap, 1); err != nil {
		t.Fatal(err)
	}
	if p.BitAt(110, 10) {
		t.Error("summary did not clear the pattern")
	}
	var _ canvas.Drawer = p
}
