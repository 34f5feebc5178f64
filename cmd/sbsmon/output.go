// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/GermanBionicSystems/sbsmon/report"
	"github.com/GermanBionicSystems/sbsmon/sbs"
	"github.com/charmbracelet/lipgloss"
	"github.com/fxamacker/cbor/v2"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	alarmStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// record is one CBOR encoded poll.
type record struct {
	// Time is the poll time in ms since the epoch.
	Time         int64        `cbor:"time"`
	Snapshot     sbs.Snapshot `cbor:"snapshot"`
	TemperatureC float64      `cbor:"temperature_c"`
	// CurrentMA is corrected and negative while discharging.
	CurrentMA int `cbor:"current_ma"`
}

// snapshotWriter prints each poll as text or as a CBOR sequence.
type snapshotWriter struct {
	w      io.Writer
	format string
	styled bool
	factor float64
	enc    *cbor.Encoder
}

func newSnapshotWriter(w io.Writer, format string, styled bool, factor float64) *snapshotWriter {
	s := &snapshotWriter{w: w, format: format, styled: styled, factor: factor}
	if format == "cbor" {
		s.enc = cbor.NewEncoder(w)
	}
	return s
}

func (s *snapshotWriter) write(t time.Time, snap *sbs.Snapshot) error {
	if s.enc != nil {
		cur := snap.CurrentMA(s.factor)
		if snap.Discharging() {
			cur = -cur
		}
		return s.enc.Encode(record{
			Time:         t.UnixMilli(),
			Snapshot:     *snap,
			TemperatureC: sbs.TemperatureCelsius(snap.TemperatureK),
			CurrentMA:    cur,
		})
	}
	if s.styled {
		style := headerStyle
		if snap.Status.Alarm() {
			style = alarmStyle
		}
		if _, err := fmt.Fprintln(s.w, style.Render(fmt.Sprintf("%s  %s", t.Format("15:04:05"), snap.Status))); err != nil {
			return err
		}
	}
	return report.WriteSnapshot(s.w, snap, s.factor)
}
