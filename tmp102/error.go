// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmp102

import (
	"errors"
	"fmt"
)

// ErrHandleInvalid is returned by every query made after Halt.
var ErrHandleInvalid = errors.New("tmp102: handle invalid, sensor detached")

// ErrInvalidAddress is returned by NewI2C for an address the TMP102 can't be
// strapped to.
var ErrInvalidAddress = errors.New("tmp102: invalid address")

// BusError reports a failed temperature register read. The transport error
// is available through errors.Unwrap.
type BusError struct {
	Addr uint16
	Err  error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("tmp102: failed to read temperature data from 0x%02x: %v", e.Addr, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}
