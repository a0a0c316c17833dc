// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package attr publishes TMP102 queries as read-only text attributes.
//
// Two attributes exist per sensor: "temperature", the integer temperature
// in °C followed by a newline, and "all_data", a block listing every value
// of the register decode. Every read of an attribute is a fresh query.
package attr

import (
	"fmt"
	"os"
	"strings"

	"github.com/GermanBionicSystems/tmp102d/tmp102"
)

const (
	// Attribute names.
	NameTemperature = "temperature"
	NameAllData     = "all_data"

	// ModeReadOnly is the permission of every attribute.
	ModeReadOnly os.FileMode = 0o444
)

// Querier is the query surface of a sensor. *tmp102.Dev implements it.
type Querier interface {
	Temperature() (int, error)
	Snapshot() (tmp102.Reading, error)
}

// Attribute is a named, read-only value. Show performs the query and
// renders its result.
type Attribute struct {
	Name string
	Mode os.FileMode
	Show func() (string, error)
}

// Set returns the attributes of q, in a stable order.
func Set(q Querier) []Attribute {
	return []Attribute{
		{Name: NameTemperature, Mode: ModeReadOnly, Show: func() (string, error) {
			t, err := q.Temperature()
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d\n", t), nil
		}},
		{Name: NameAllData, Mode: ModeReadOnly, Show: func() (string, error) {
			r, err := q.Snapshot()
			if err != nil {
				return "", err
			}
			return FormatAllData(r), nil
		}},
	}
}

// FormatAllData renders r as the all_data attribute. The hexadecimal raw
// temp is the 16 bit two's complement of RawTemp.
func FormatAllData(r tmp102.Reading) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Raw data        : 0x%x\n", r.Raw)
	fmt.Fprintf(&b, "Swapped raw data: 0x%x\n", r.Swapped)
	fmt.Fprintf(&b, "Raw temp        : 0x%x\n", uint16(r.RawTemp))
	fmt.Fprintf(&b, "Raw temp        : %d\n", r.RawTemp)
	fmt.Fprintf(&b, "Temp int        : %d\n", r.TempInt)
	fmt.Fprintf(&b, "Temp frac       : %d\n", r.TempFrac)
	fmt.Fprintf(&b, "Temp float      : %s\n", strings.TrimSuffix(r.String(), "°C"))
	return b.String()
}
