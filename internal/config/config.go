// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config loads the sensor table of tmp102d.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultListen is the HTTP listen address when none is configured.
	DefaultListen = ":9102"
	// DefaultLogLevel is the logrus level when none is configured.
	DefaultLogLevel = "info"
	// DefaultAddress is the TMP102 address with ADD0 tied to ground.
	DefaultAddress uint16 = 0x48
	// DefaultCompatible is used for sensors without a compatible string.
	DefaultCompatible = "tmp102"
)

// Compatible lists the accepted compatible strings.
var Compatible = []string{"rinvel0,tmp102", "tmp102"}

// Config is the content of a configuration file.
type Config struct {
	Listen   string   `yaml:"listen"`
	LogLevel string   `yaml:"log_level"`
	Sensors  []Sensor `yaml:"sensors"`
}

// Sensor describes one TMP102 to attach.
type Sensor struct {
	// Name identifies the sensor in the HTTP paths and metric labels.
	Name string `yaml:"name"`
	// Bus is the i2creg bus name. Empty selects the default bus.
	Bus string `yaml:"bus"`
	// Address is the 7 bit I²C address.
	Address    uint16 `yaml:"address"`
	Compatible string `yaml:"compatible"`
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: read")
	}
	c, err := Parse(b)
	if err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	return c, nil
}

// Parse decodes b, applies defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, errors.Wrap(err, "parse")
	}
	c.setDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) setDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	for i := range c.Sensors {
		s := &c.Sensors[i]
		if s.Address == 0 {
			s.Address = DefaultAddress
		}
		if s.Compatible == "" {
			s.Compatible = DefaultCompatible
		}
	}
}

// Validate checks every sensor has a unique name and a known compatible
// string.
func (c *Config) Validate() error {
	seen := map[string]bool{}
	for i, s := range c.Sensors {
		if s.Name == "" {
			return errors.Errorf("sensor #%d: missing name", i)
		}
		if seen[s.Name] {
			return errors.Errorf("sensor %q: duplicate name", s.Name)
		}
		seen[s.Name] = true
		if !isCompatible(s.Compatible) {
			return errors.Errorf("sensor %q: unsupported compatible %q", s.Name, s.Compatible)
		}
	}
	return nil
}

func isCompatible(s string) bool {
	for _, c := range Compatible {
		if s == c {
			return true
		}
	}
	return false
}
