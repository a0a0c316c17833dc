// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains functions used across multiple packages. For
// example, the byte swap and sign extension needed to decode register
// values read through an SMBus word transfer.
package common

// SwapBytes16 exchanges the two 8-bit halves of v.
//
// SMBus word reads deliver the low byte first while most sensors transmit
// their registers most significant byte first, so a word read must be
// swapped before the register bits line up.
func SwapBytes16(v uint16) uint16 {
	return ((v << 8) & 0xff00) | ((v >> 8) & 0x00ff)
}

// SignExtend interprets the low bits of v as a two's complement number of
// the given width and returns it as a signed int. Bits above width are
// ignored. A width of 0 or more than 16 returns v unchanged.
func SignExtend(v uint16, width uint) int {
	if width == 0 || width > 16 {
		return int(v)
	}
	mask := uint16(1<<width - 1)
	n := int(v & mask)
	if n&(1<<(width-1)) != 0 {
		n -= 1 << width
	}
	return n
}
