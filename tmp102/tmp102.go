// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmp102

import (
	"fmt"
	"sync"
	"sync/atomic"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

const (
	// DefaultAddress is the address with ADD0 tied to ground.
	DefaultAddress uint16 = 0x48

	// The addresses selectable with the ADD0 pin.
	minAddress uint16 = 0x48
	maxAddress uint16 = 0x4b

	// Addresses of registers to read.
	_REGISTER_TEMPERATURE byte = 0
)

// Dev represents a TMP102 sensor.
//
// A Dev is attached when returned by NewI2C and detached by Halt. Queries on
// a detached Dev fail with ErrHandleInvalid without touching the bus.
type Dev struct {
	d        *i2c.Dev
	mu       sync.Mutex
	detached atomic.Bool
}

// NewI2C returns a TMP102 sensor on the specified bus and address. No bus
// transaction takes place until the first query.
func NewI2C(b i2c.Bus, addr uint16) (*Dev, error) {
	if addr < minAddress || addr > maxAddress {
		return nil, fmt.Errorf("%w 0x%02x, expected 0x%02x-0x%02x", ErrInvalidAddress, addr, minAddress, maxAddress)
	}
	return &Dev{d: &i2c.Dev{Bus: b, Addr: addr}}, nil
}

// Temperature reads the sensor and returns the temperature in °C, truncated
// toward zero.
func (dev *Dev) Temperature() (int, error) {
	raw, err := dev.readRaw()
	if err != nil {
		return 0, err
	}
	return Decode(raw).TempInt, nil
}

// Snapshot reads the sensor and returns the reading with every intermediate
// decode value.
func (dev *Dev) Snapshot() (Reading, error) {
	raw, err := dev.readRaw()
	if err != nil {
		return Reading{}, err
	}
	return Decode(raw), nil
}

// Sense reads the temperature from the device and writes the value to the
// specified env variable. Pressure and humidity are left untouched.
func (dev *Dev) Sense(env *physic.Env) error {
	r, err := dev.Snapshot()
	if err == nil {
		env.Temperature = r.Temperature()
	}
	return err
}

// Precision returns the sensor's precision, or minimum value between steps the
// device can make. The specified precision is 0.0625 degrees Celsius. Note
// that the accuracy of the device is +/- 0.5 degrees Celsius.
func (dev *Dev) Precision(env *physic.Env) {
	env.Temperature = _DEGREES_RESOLUTION
	env.Pressure = 0
	env.Humidity = 0
}

// Halt detaches the sensor. It waits for a transaction in progress to
// complete; every later query returns ErrHandleInvalid. Calling Halt more
// than once is harmless. Implements conn.Resource.
func (dev *Dev) Halt() error {
	if dev.detached.Swap(true) {
		return nil
	}
	// Wait for a transaction in progress.
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return nil
}

// Detached reports whether Halt has been called.
func (dev *Dev) Detached() bool {
	return dev.detached.Load()
}

func (dev *Dev) String() string {
	return fmt.Sprintf("tmp102: %s", dev.d.String())
}

var _ conn.Resource = &Dev{}
