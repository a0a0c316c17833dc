// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tmp102d is a container for the TMP102 driver and the services
// publishing its readings.
//
// The driver lives in package tmp102. Package attr renders its queries as
// read-only text attributes, package metrics exports them to Prometheus and
// cmd/tmp102d wires both to the sensors listed in a configuration file.
package tmp102d
