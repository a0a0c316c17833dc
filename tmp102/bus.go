// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmp102

// readRaw performs the single bus transaction behind every query and returns
// the temperature register as an SMBus read-word delivers it, low byte
// first. dev.mu is held for the transaction only.
func (dev *Dev) readRaw() (uint16, error) {
	if dev.detached.Load() {
		return 0, ErrHandleInvalid
	}
	r := make([]byte, 2)

	dev.mu.Lock()
	defer dev.mu.Unlock()
	// Halt may have won the race for the lock.
	if dev.detached.Load() {
		return 0, ErrHandleInvalid
	}
	if err := dev.d.Tx([]byte{_REGISTER_TEMPERATURE}, r); err != nil {
		return 0, &BusError{Addr: dev.d.Addr, Err: err}
	}
	return uint16(r[0]) | uint16(r[1])<<8, nil
}
