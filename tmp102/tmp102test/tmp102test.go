// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tmp102test provides a simulated TMP102 that can be used in place
// of a real I²C bus.
package tmp102test

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GermanBionicSystems/tmp102d/tmp102"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// ErrUnsupported is returned for any transaction other than a read of the
// temperature register.
var ErrUnsupported = errors.New("tmp102test: unsupported transaction")

// ErrNoDevice is returned when the transaction addresses another device,
// like a NACK on a real bus.
var ErrNoDevice = errors.New("tmp102test: no device at address")

// Sensor is an i2c.Bus with one TMP102 attached at Addr.
//
// It keeps count of transactions and of how many were in progress at the
// same time, so callers can verify their serialization.
type Sensor struct {
	// Addr is the address the simulated device answers to.
	Addr uint16

	mu    sync.Mutex
	temp  physic.Temperature
	err   error
	delay time.Duration

	count   atomic.Int64
	open    atomic.Int32
	maxOpen atomic.Int32
}

// New returns a Sensor reading temp at tmp102.DefaultAddress.
func New(temp physic.Temperature) *Sensor {
	return &Sensor{Addr: tmp102.DefaultAddress, temp: temp}
}

// SetTemperature changes the temperature returned by later reads.
func (s *Sensor) SetTemperature(temp physic.Temperature) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.temp = temp
}

// Fail makes every later transaction return err. A nil err restores normal
// operation.
func (s *Sensor) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// SetDelay makes every transaction take at least d.
func (s *Sensor) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Transactions returns the number of transactions attempted so far,
// including failed ones.
func (s *Sensor) Transactions() int {
	return int(s.count.Load())
}

// MaxConcurrent returns the highest number of transactions that were in
// progress at the same time.
func (s *Sensor) MaxConcurrent() int {
	return int(s.maxOpen.Load())
}

func (s *Sensor) String() string {
	return "tmp102test"
}

// Tx implements i2c.Bus.
func (s *Sensor) Tx(addr uint16, w, r []byte) error {
	n := s.open.Add(1)
	defer s.open.Add(-1)
	for {
		m := s.maxOpen.Load()
		if n <= m || s.maxOpen.CompareAndSwap(m, n) {
			break
		}
	}
	s.count.Add(1)

	s.mu.Lock()
	temp, err, delay := s.temp, s.err, s.delay
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return err
	}
	if addr != s.Addr {
		return fmt.Errorf("%w 0x%02x", ErrNoDevice, addr)
	}
	if len(w) != 1 || w[0] != 0 || len(r) != 2 {
		return fmt.Errorf("%w: w=%#v len(r)=%d", ErrUnsupported, w, len(r))
	}
	word := tmp102.Encode(temp)
	// The device sends the most significant byte first, which is the low
	// byte of the word.
	r[0] = byte(word)
	r[1] = byte(word >> 8)
	return nil
}

// SetSpeed implements i2c.Bus.
func (s *Sensor) SetSpeed(f physic.Frequency) error {
	return nil
}

// Close implements i2c.BusCloser.
func (s *Sensor) Close() error {
	return nil
}

var _ i2c.BusCloser = &Sensor{}
