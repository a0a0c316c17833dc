// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmp102

import (
	"fmt"

	"github.com/GermanBionicSystems/tmp102d/common"
	"periph.io/x/conn/v3/physic"
)

const (
	_DEGREES_RESOLUTION physic.Temperature = 62_500 * physic.MicroKelvin

	// Scale of the fixed point result. TempInt is RawTemp*_SCALE_NUM/_SCALE_DEN
	// and TempFrac the remainder of the same division.
	_SCALE_NUM = 625
	_SCALE_DEN = 10000

	_COUNT_BITS = 12
	_COUNT_MIN  = -(1 << (_COUNT_BITS - 1))
	_COUNT_MAX  = 1<<(_COUNT_BITS-1) - 1
)

// Reading holds a decoded temperature register along with every
// intermediate value of the decode.
type Reading struct {
	// Raw is the word returned by the bus, low byte first.
	Raw uint16
	// Swapped is Raw with its bytes exchanged, in register bit order.
	Swapped uint16
	// RawTemp is the signed 12 bit count, in units of 0.0625°C.
	RawTemp int
	// TempInt is the integer part of the temperature in °C, truncated
	// toward zero.
	TempInt int
	// TempFrac is the fractional part in 1/10000 °C. It carries the sign of
	// RawTemp.
	TempFrac int
}

// Decode converts a raw temperature register word into a Reading. It is
// defined for every input.
func Decode(raw uint16) Reading {
	swapped := common.SwapBytes16(raw)
	rawTemp := common.SignExtend(swapped>>4, _COUNT_BITS)
	return Reading{
		Raw:      raw,
		Swapped:  swapped,
		RawTemp:  rawTemp,
		TempInt:  rawTemp * _SCALE_NUM / _SCALE_DEN,
		TempFrac: rawTemp * _SCALE_NUM % _SCALE_DEN,
	}
}

// Encode is the inverse of Decode. It returns the raw word a sensor reading
// temp would produce. Temperatures are truncated toward zero to a multiple
// of 0.0625°C and clamped to the range of the 12 bit count.
func Encode(temp physic.Temperature) uint16 {
	count := int64((temp - physic.ZeroCelsius) / _DEGREES_RESOLUTION)
	if count < _COUNT_MIN {
		count = _COUNT_MIN
	} else if count > _COUNT_MAX {
		count = _COUNT_MAX
	}
	reg := (uint16(count) & 0x0fff) << 4
	return common.SwapBytes16(reg)
}

// Temperature returns the reading as a physic.Temperature. No precision is
// lost.
func (r Reading) Temperature() physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(r.RawTemp)*_DEGREES_RESOLUTION
}

// String returns the temperature in °C with four decimals.
func (r Reading) String() string {
	sign := ""
	if r.RawTemp < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%d.%04d°C", sign, abs(r.TempInt), abs(r.TempFrac))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
