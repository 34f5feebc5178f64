// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package common

import "testing"

func TestCRC8(t *testing.T) {
	var tests = []struct {
		bytes  []byte
		result byte
	}{
		{bytes: []byte{0xbe, 0xef}, result: 0x92},
		{bytes: []byte{0x01, 0xa4}, result: 0x4d},
		{bytes: []byte{0xab, 0xcd}, result: 0x6f},
	}
	for _, test := range tests {
		res := CRC8(test.bytes)
		if res != test.result {
			t.Errorf("CRC8(%#v)!=0x%d received 0x%d", test.bytes, test.result, res)
		}
	}
}

func TestPEC(t *testing.T) {
	var tests = []struct {
		bytes  []byte
		result byte
	}{
		{bytes: nil, result: 0x00},
		{bytes: []byte{0x01}, result: 0x07},
		{bytes: []byte{0xff}, result: 0xf3},
		{bytes: []byte("123456789"), result: 0xf4},
	}
	for _, test := range tests {
		if res := PEC(test.bytes); res != test.result {
			t.Errorf("PEC(%#v)=0x%02x expected 0x%02x", test.bytes, res, test.result)
		}
	}
}

func TestPECResidue(t *testing.T) {
	// A message followed by its own PEC checks to zero.
	msg := []byte{0x16, 0x09, 0x17, 0x34, 0x30}
	msg = append(msg, PEC(msg))
	if res := PEC(msg); res != 0 {
		t.Errorf("PEC residue=0x%02x expected 0", res)
	}
}
