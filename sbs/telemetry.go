// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sbs

import (
	"fmt"
	"strings"

	"periph.io/x/conn/v3/physic"
)

// DefaultCurrentFactor corrects the current and capacity readings of the
// Ironworks 1240ST pack, which under report by that much.
const DefaultCurrentFactor = 2.15

// dischargeThreshold is the raw Current value above which the gauge reports
// a discharge. The register is a two's complement value.
const dischargeThreshold = 50000

// Snapshot is one poll of the dynamic registers. All fields hold the raw
// register value.
type Snapshot struct {
	// TemperatureK is in 0.1K.
	TemperatureK uint16
	// Voltage is the pack voltage in mV.
	Voltage uint16
	// Current is in mA before correction. See Discharging.
	Current           uint16
	RelativeSOC       uint16
	AbsoluteSOC       uint16
	RemainingCapacity uint16
	// TimeToEmpty and TimeToFull are in minutes. 65535 means not applicable.
	TimeToEmpty uint16
	TimeToFull  uint16
	CycleCount  uint16
	// CellVoltage is in mV, cell 1 first.
	CellVoltage     [4]uint16
	ChargingCurrent uint16
	ChargingVoltage uint16
	Status          Status
}

// Temperature returns the pack temperature.
func (s *Snapshot) Temperature() physic.Temperature {
	return physic.Temperature(s.TemperatureK) * 100 * physic.MilliKelvin
}

// Discharging reports whether the pack is being discharged.
func (s *Snapshot) Discharging() bool {
	return Discharging(s.Current)
}

// CurrentMA returns the magnitude of the current in mA, corrected by factor.
func (s *Snapshot) CurrentMA(factor float64) int {
	return Scale(AbsCurrent(s.Current), factor)
}

// Info holds the registers that do not change while the pack is in use.
type Info struct {
	Manufacturer string
	Device       string
	Chemistry    string
	// Capacities are in mAh before correction.
	DesignCapacity     uint16
	FullChargeCapacity uint16
	// DesignVoltage is in mV.
	DesignVoltage   uint16
	ManufactureDate Date
	SerialNumber    uint16
	Mode            uint16
	Status          Status
	SpecInfo        uint16
}

// Poll reads all the dynamic registers.
//
// The registers are read in a fixed order. If one read fails, the zero
// Snapshot is returned with the error.
func (d *Dev) Poll() (Snapshot, error) {
	var s Snapshot
	fields := []struct {
		reg Register
		dst *uint16
	}{
		{Temperature, &s.TemperatureK},
		{Voltage, &s.Voltage},
		{Current, &s.Current},
		{RelativeSOC, &s.RelativeSOC},
		{AbsoluteSOC, &s.AbsoluteSOC},
		{RemainingCapacity, &s.RemainingCapacity},
		{TimeToEmpty, &s.TimeToEmpty},
		{TimeToFull, &s.TimeToFull},
		{CycleCount, &s.CycleCount},
		{Cell1Voltage, &s.CellVoltage[0]},
		{Cell2Voltage, &s.CellVoltage[1]},
		{Cell3Voltage, &s.CellVoltage[2]},
		{Cell4Voltage, &s.CellVoltage[3]},
		{ChargingCurrent, &s.ChargingCurrent},
		{ChargingVoltage, &s.ChargingVoltage},
		{BatteryStatus, (*uint16)(&s.Status)},
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, f := range fields {
		v, err := d.readWord(f.reg)
		if err != nil {
			return Snapshot{}, err
		}
		*f.dst = v
	}
	return s, nil
}

// ReadInfo reads the identification and design registers.
func (d *Dev) ReadInfo() (Info, error) {
	var info Info
	var date uint16
	d.mu.Lock()
	defer d.mu.Unlock()
	strs := []struct {
		reg Register
		dst *string
	}{
		{ManufacturerName, &info.Manufacturer},
		{DeviceName, &info.Device},
		{DeviceChemistry, &info.Chemistry},
	}
	for _, f := range strs {
		s, err := d.readString(f.reg)
		if err != nil {
			return Info{}, err
		}
		*f.dst = s
	}
	words := []struct {
		reg Register
		dst *uint16
	}{
		{DesignCapacity, &info.DesignCapacity},
		{FullChargeCapacity, &info.FullChargeCapacity},
		{DesignVoltage, &info.DesignVoltage},
		{ManufactureDate, &date},
		{SerialNumber, &info.SerialNumber},
		{BatteryMode, &info.Mode},
		{BatteryStatus, (*uint16)(&info.Status)},
		{SpecInfo, &info.SpecInfo},
	}
	for _, f := range words {
		v, err := d.readWord(f.reg)
		if err != nil {
			return Info{}, err
		}
		*f.dst = v
	}
	info.ManufactureDate = DecodeDate(date)
	return info, nil
}

// TemperatureCelsius converts a raw Temperature register value (0.1K) to
// °C.
func TemperatureCelsius(raw uint16) float64 {
	return float64(raw)/10.0 - 273.15
}

// Discharging reports whether a raw Current value is a discharge current.
func Discharging(raw uint16) bool {
	return raw > dischargeThreshold
}

// AbsCurrent returns the magnitude of a raw Current value.
func AbsCurrent(raw uint16) uint16 {
	if Discharging(raw) {
		return 0 - raw
	}
	return raw
}

// Scale applies the correction factor to a current or capacity reading.
func Scale(raw uint16, factor float64) int {
	return int(float64(raw) * factor)
}

// Date is a decoded ManufactureDate register.
type Date struct {
	Year  int
	Month int
	Day   int
}

// DecodeDate unpacks a ManufactureDate register: bits 0-4 are the day, bits
// 5-8 the month and bits 9-15 the year offset from 1980.
func DecodeDate(raw uint16) Date {
	return Date{
		Year:  1980 + int(raw>>9&0x7F),
		Month: int(raw >> 5 & 0x0F),
		Day:   int(raw & 0x1F),
	}
}

func (d Date) String() string {
	return fmt.Sprintf("%d-%d-%d", d.Year, d.Month, d.Day)
}

// Status is the BatteryStatus register.
type Status uint16

// BatteryStatus alarm and status bits.
const (
	StatusOverChargedAlarm        Status = 1 << 15
	StatusTerminateChargeAlarm    Status = 1 << 14
	StatusOverTempAlarm           Status = 1 << 12
	StatusTerminateDischargeAlarm Status = 1 << 11
	StatusRemainingCapacityAlarm  Status = 1 << 9
	StatusRemainingTimeAlarm      Status = 1 << 8
	StatusInitialized             Status = 1 << 7
	StatusDischarging             Status = 1 << 6
	StatusFullyCharged            Status = 1 << 5
	StatusFullyDischarged         Status = 1 << 4
	// StatusAlarmMask selects the alarm bits.
	StatusAlarmMask Status = 0xDB00
	// StatusErrorMask selects the error code of the last command.
	StatusErrorMask Status = 0x000F
)

var statusNames = []struct {
	bit  Status
	name string
}{
	{StatusOverChargedAlarm, "OverChargedAlarm"},
	{StatusTerminateChargeAlarm, "TerminateChargeAlarm"},
	{StatusOverTempAlarm, "OverTempAlarm"},
	{StatusTerminateDischargeAlarm, "TerminateDischargeAlarm"},
	{StatusRemainingCapacityAlarm, "RemainingCapacityAlarm"},
	{StatusRemainingTimeAlarm, "RemainingTimeAlarm"},
	{StatusInitialized, "Initialized"},
	{StatusDischarging, "Discharging"},
	{StatusFullyCharged, "FullyCharged"},
	{StatusFullyDischarged, "FullyDischarged"},
}

var errorCodes = []string{
	"OK",
	"Busy",
	"ReservedCommand",
	"UnsupportedCommand",
	"AccessDenied",
	"OverUnderflow",
	"BadSize",
	"UnknownError",
}

// Alarm reports whether any alarm bit is set.
func (s Status) Alarm() bool {
	return s&StatusAlarmMask != 0
}

// ErrorCode returns the error code the gauge reported for the last command.
func (s Status) ErrorCode() string {
	if c := int(s & StatusErrorMask); c < len(errorCodes) {
		return errorCodes[c]
	}
	return fmt.Sprintf("Error(%d)", s&StatusErrorMask)
}

func (s Status) String() string {
	var parts []string
	for _, n := range statusNames {
		if s&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	if s&StatusErrorMask != 0 {
		parts = append(parts, s.ErrorCode())
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, "|")
}
