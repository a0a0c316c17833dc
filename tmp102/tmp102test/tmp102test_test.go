// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmp102test

import (
	"errors"
	"testing"

	"github.com/GermanBionicSystems/tmp102d/tmp102"
	"periph.io/x/conn/v3/physic"
)

func TestSensorTx(t *testing.T) {
	s := New(physic.ZeroCelsius + 25*physic.Kelvin)
	r := make([]byte, 2)
	if err := s.Tx(tmp102.DefaultAddress, []byte{0}, r); err != nil {
		t.Fatal(err)
	}
	if r[0] != 0x19 || r[1] != 0x00 {
		t.Errorf("read %#v expected []byte{0x19, 0x0}", r)
	}

	s.SetTemperature(physic.ZeroCelsius - 25*physic.Kelvin)
	if err := s.Tx(tmp102.DefaultAddress, []byte{0}, r); err != nil {
		t.Fatal(err)
	}
	if r[0] != 0xe7 || r[1] != 0x00 {
		t.Errorf("read %#v expected []byte{0xe7, 0x0}", r)
	}
	if s.Transactions() != 2 || s.MaxConcurrent() != 1 {
		t.Errorf("Transactions()=%d MaxConcurrent()=%d", s.Transactions(), s.MaxConcurrent())
	}
}

func TestSensorErrors(t *testing.T) {
	s := New(physic.ZeroCelsius)
	r := make([]byte, 2)
	if err := s.Tx(0x49, []byte{0}, r); !errors.Is(err, ErrNoDevice) {
		t.Errorf("wrong address returned %v", err)
	}
	if err := s.Tx(tmp102.DefaultAddress, []byte{1}, r); !errors.Is(err, ErrUnsupported) {
		t.Errorf("configuration read returned %v", err)
	}
	if err := s.Tx(tmp102.DefaultAddress, []byte{0, 0x60, 0xa0}, nil); !errors.Is(err, ErrUnsupported) {
		t.Errorf("write returned %v", err)
	}
	failure := errors.New("nack")
	s.Fail(failure)
	if err := s.Tx(tmp102.DefaultAddress, []byte{0}, r); !errors.Is(err, failure) {
		t.Errorf("Fail() not honored, got %v", err)
	}
	s.Fail(nil)
	if err := s.Tx(tmp102.DefaultAddress, []byte{0}, r); err != nil {
		t.Errorf("Fail(nil) not honored, got %v", err)
	}
	if s.Transactions() != 5 {
		t.Errorf("Transactions()=%d expected 5", s.Transactions())
	}
}
