// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package common

import "testing"

func TestSwapBytes16(t *testing.T) {
	var tests = []struct {
		in, out uint16
	}{
		{0x4b00, 0x004b},
		{0xe000, 0x00e0},
		{0x1234, 0x3412},
		{0x0000, 0x0000},
		{0xffff, 0xffff},
	}
	for _, test := range tests {
		if res := SwapBytes16(test.in); res != test.out {
			t.Errorf("SwapBytes16(0x%04x)!=0x%04x received 0x%04x", test.in, test.out, res)
		}
		if res := SwapBytes16(SwapBytes16(test.in)); res != test.in {
			t.Errorf("double swap of 0x%04x returned 0x%04x", test.in, res)
		}
	}
}

func TestSignExtend(t *testing.T) {
	var tests = []struct {
		v      uint16
		width  uint
		result int
	}{
		{0x800, 12, -2048},
		{0x7ff, 12, 2047},
		{0xfff, 12, -1},
		{0x004, 12, 4},
		{0xf004, 12, 4},
		{0x80, 8, -128},
		{0x8000, 16, -32768},
		{0x8000, 0, 0x8000},
		{0x8000, 17, 0x8000},
	}
	for _, test := range tests {
		if res := SignExtend(test.v, test.width); res != test.result {
			t.Errorf("SignExtend(0x%x, %d)!=%d received %d", test.v, test.width, test.result, res)
		}
	}
}
