// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/GermanBionicSystems/tmp102d/attr"
	"github.com/GermanBionicSystems/tmp102d/internal/config"
	"github.com/GermanBionicSystems/tmp102d/metrics"
	"github.com/GermanBionicSystems/tmp102d/tmp102"
	"github.com/GermanBionicSystems/tmp102d/tmp102/tmp102test"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// buses hands out the bus a sensor is attached to, opening each hardware
// bus once.
type buses struct {
	simulate *physic.Temperature
	open     map[string]i2c.BusCloser
}

func newBuses(c *cli.Context) (*buses, error) {
	b := &buses{open: map[string]i2c.BusCloser{}}
	if c.IsSet(flagSimulate) {
		t := physic.ZeroCelsius + physic.Temperature(c.Float64(flagSimulate)*float64(physic.Kelvin))
		b.simulate = &t
		return b, nil
	}
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "host init")
	}
	return b, nil
}

func (b *buses) get(name string, addr uint16) (i2c.Bus, error) {
	if b.simulate != nil {
		s := tmp102test.New(*b.simulate)
		s.Addr = addr
		return s, nil
	}
	if bus, ok := b.open[name]; ok {
		return bus, nil
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "open I²C bus %q", name)
	}
	b.open[name] = bus
	return bus, nil
}

func (b *buses) close() {
	for name, bus := range b.open {
		_ = bus.Close()
		delete(b.open, name)
	}
}

// sensors attaches configured sensors to the attribute and metric surfaces
// and detaches them. Each sensor owns its own tmp102.Dev.
type sensors struct {
	log      *logrus.Logger
	buses    *buses
	attrs    *attr.Handler
	metrics  *metrics.Collector
	attached []attachedSensor
}

type attachedSensor struct {
	name string
	dev  *tmp102.Dev
	log  *logrus.Entry
}

func newSensors(log *logrus.Logger, b *buses) *sensors {
	return &sensors{
		log:     log,
		buses:   b,
		attrs:   attr.NewHandler(),
		metrics: metrics.NewCollector(),
	}
}

func (s *sensors) attach(cfg config.Sensor) error {
	log := s.log.WithFields(logrus.Fields{
		"sensor": cfg.Name,
		"bus":    cfg.Bus,
		"addr":   fmt.Sprintf("0x%02x", cfg.Address),
	})
	bus, err := s.buses.get(cfg.Bus, cfg.Address)
	if err != nil {
		return err
	}
	dev, err := tmp102.NewI2C(bus, cfg.Address)
	if err != nil {
		return errors.Wrapf(err, "sensor %q", cfg.Name)
	}
	log.WithField("compatible", cfg.Compatible).Info("tmp102: device probed")

	if err := s.attrs.Add(cfg.Name, dev); err != nil {
		_ = dev.Halt()
		return errors.Wrap(err, "failed to create attributes")
	}
	log.Debug("tmp102: attributes created")
	s.metrics.Add(cfg.Name, dev)

	s.attached = append(s.attached, attachedSensor{name: cfg.Name, dev: dev, log: log})
	log.Info("tmp102: device registered")
	return nil
}

// detachAll removes every sensor in reverse attach order and closes the
// buses.
func (s *sensors) detachAll() {
	for i := len(s.attached) - 1; i >= 0; i-- {
		a := s.attached[i]
		s.attrs.Remove(a.name)
		s.metrics.Remove(a.name)
		if err := a.dev.Halt(); err != nil {
			a.log.WithError(err).Warn("tmp102: halt failed")
		}
		a.log.Info("tmp102: device removed")
	}
	s.attached = nil
	s.buses.close()
}
