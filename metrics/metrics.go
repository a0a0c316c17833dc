// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package metrics exports TMP102 readings to Prometheus.
//
// There is no sampling loop: each scrape reads every sensor once.
package metrics

import (
	"errors"
	"sort"
	"sync"

	"github.com/GermanBionicSystems/tmp102d/tmp102"
	"github.com/prometheus/client_golang/prometheus"
)

// Snapshotter is implemented by *tmp102.Dev.
type Snapshotter interface {
	Snapshot() (tmp102.Reading, error)
}

// Collector implements prometheus.Collector for a set of named sensors.
type Collector struct {
	mu      sync.Mutex
	sensors map[string]Snapshotter

	temperature *prometheus.Desc
	raw         *prometheus.Desc
	errors      *prometheus.CounterVec
}

// NewCollector returns a Collector with no sensors.
func NewCollector() *Collector {
	return &Collector{
		sensors: map[string]Snapshotter{},
		temperature: prometheus.NewDesc(
			"tmp102_temperature_celsius",
			"Temperature read from the sensor (units: degrees Celsius)",
			[]string{"sensor"}, nil),
		raw: prometheus.NewDesc(
			"tmp102_raw_word",
			"Temperature register word as returned by the bus",
			[]string{"sensor"}, nil),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tmp102_read_errors_total",
				Help: "Failed temperature reads",
			},
			[]string{"sensor", "reason"},
		),
	}
}

// Add registers s under name, replacing any sensor of the same name.
func (c *Collector) Add(name string, s Snapshotter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sensors[name] = s
}

// Remove unregisters name.
func (c *Collector) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sensors, name)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.temperature
	ch <- c.raw
	c.errors.Describe(ch)
}

// Collect implements prometheus.Collector. A sensor that fails to read
// reports no samples for this scrape and increments
// tmp102_read_errors_total.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	names := make([]string, 0, len(c.sensors))
	for name := range c.sensors {
		names = append(names, name)
	}
	sensors := make([]Snapshotter, len(names))
	sort.Strings(names)
	for i, name := range names {
		sensors[i] = c.sensors[name]
	}
	c.mu.Unlock()

	for i, name := range names {
		r, err := sensors[i].Snapshot()
		if err != nil {
			c.errors.WithLabelValues(name, reason(err)).Inc()
			continue
		}
		ch <- prometheus.MustNewConstMetric(c.temperature, prometheus.GaugeValue, r.Temperature().Celsius(), name)
		ch <- prometheus.MustNewConstMetric(c.raw, prometheus.GaugeValue, float64(r.Raw), name)
	}
	c.errors.Collect(ch)
}

func reason(err error) string {
	var be *tmp102.BusError
	switch {
	case errors.Is(err, tmp102.ErrHandleInvalid):
		return "detached"
	case errors.As(err, &be):
		return "bus"
	default:
		return "other"
	}
}

var _ prometheus.Collector = &Collector{}
