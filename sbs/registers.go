// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sbs

import (
	"fmt"
	"strconv"
	"strings"
)

// Register is an SBS command code.
type Register uint8

// Smart Battery command codes. See BQ2085 datasheet table 3.
const (
	BatteryMode        Register = 0x03
	AtRate             Register = 0x04
	Temperature        Register = 0x08
	Voltage            Register = 0x09
	Current            Register = 0x0A
	RelativeSOC        Register = 0x0D
	AbsoluteSOC        Register = 0x0E
	RemainingCapacity  Register = 0x0F
	FullChargeCapacity Register = 0x10
	TimeToEmpty        Register = 0x12
	TimeToFull         Register = 0x13
	ChargingCurrent    Register = 0x14
	ChargingVoltage    Register = 0x15
	BatteryStatus      Register = 0x16
	CycleCount         Register = 0x17
	DesignCapacity     Register = 0x18
	DesignVoltage      Register = 0x19
	SpecInfo           Register = 0x1A
	ManufactureDate    Register = 0x1B
	SerialNumber       Register = 0x1C
	ManufacturerName   Register = 0x20
	DeviceName         Register = 0x21
	DeviceChemistry    Register = 0x22
	Cell4Voltage       Register = 0x3C
	Cell3Voltage       Register = 0x3D
	Cell2Voltage       Register = 0x3E
	Cell1Voltage       Register = 0x3F
)

var registerNames = map[Register]string{
	BatteryMode:        "BatteryMode",
	AtRate:             "AtRate",
	Temperature:        "Temperature",
	Voltage:            "Voltage",
	Current:            "Current",
	RelativeSOC:        "RelativeSOC",
	AbsoluteSOC:        "AbsoluteSOC",
	RemainingCapacity:  "RemainingCapacity",
	FullChargeCapacity: "FullChargeCapacity",
	TimeToEmpty:        "TimeToEmpty",
	TimeToFull:         "TimeToFull",
	ChargingCurrent:    "ChargingCurrent",
	ChargingVoltage:    "ChargingVoltage",
	BatteryStatus:      "BatteryStatus",
	CycleCount:         "CycleCount",
	DesignCapacity:     "DesignCapacity",
	DesignVoltage:      "DesignVoltage",
	SpecInfo:           "SpecInfo",
	ManufactureDate:    "ManufactureDate",
	SerialNumber:       "SerialNumber",
	ManufacturerName:   "ManufacturerName",
	DeviceName:         "DeviceName",
	DeviceChemistry:    "DeviceChemistry",
	Cell4Voltage:       "Cell4Voltage",
	Cell3Voltage:       "Cell3Voltage",
	Cell2Voltage:       "Cell2Voltage",
	Cell1Voltage:       "Cell1Voltage",
}

func (r Register) String() string {
	if s, ok := registerNames[r]; ok {
		return s
	}
	return fmt.Sprintf("Register(0x%02X)", uint8(r))
}

// IsBlock reports whether the register returns a length prefixed block
// instead of a word.
func (r Register) IsBlock() bool {
	return r == ManufacturerName || r == DeviceName || r == DeviceChemistry
}

// ParseRegister accepts either a register name, case insensitive, or a
// numeric command code such as "0x09" or "9".
func ParseRegister(s string) (Register, error) {
	for r, name := range registerNames {
		if strings.EqualFold(name, s) {
			return r, nil
		}
	}
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("sbs: unknown register %q", s)
	}
	return Register(v), nil
}
