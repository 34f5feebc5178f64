// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains checksum helpers shared by the bus drivers: the
// Sensirion/TI CRC8 and the SMBus packet error code.
package common

// CRC8 calculates the 8-bit CRC of the byte slice parameter and returns the
// calculated value. CRC bytes are used in sensors from TI and Sensirion.
func CRC8(bytes []byte) byte {
	return crc8(0xff, 0x31, bytes)
}

// PEC calculates the SMBus Packet Error Code over bytes.
//
// The PEC is a CRC-8 with polynomial x⁸+x²+x+1 (0x07) and a zero initial
// value. It covers every byte on the wire, including the address bytes, so
// for a read the caller passes addr<<1, the command, addr<<1|1 and then the
// data bytes.
func PEC(bytes []byte) byte {
	return crc8(0x00, 0x07, bytes)
}

func crc8(crc, poly byte, bytes []byte) byte {
	for _, val := range bytes {
		crc ^= val
		for i := 0; i < 8; i++ {
			if (crc & 0x80) == 0 {
				crc <<= 1
			} else {
				crc = (crc << 1) ^ poly
			}
		}
	}
	return crc
}
