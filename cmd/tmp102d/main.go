// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// tmp102d reads TMP102 sensors and publishes their attributes and metrics
// over HTTP.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	flagLogLevel = "log-level"
	flagSimulate = "simulate"
	flagConfig   = "config"
	flagBus      = "bus"
	flagAddr     = "addr"
	flagListen   = "listen"
)

func main() {
	log := newLogger()
	if err := newApp(log).Run(os.Args); err != nil {
		log.WithError(err).Fatal("tmp102d")
	}
}

func newApp(log *logrus.Logger) *cli.App {
	d := &daemon{log: log}
	sensorFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    flagBus,
			Usage:   "I²C bus `NAME`, empty for the default bus",
			EnvVars: []string{"TMP102D_BUS"},
		},
		&cli.UintFlag{
			Name:    flagAddr,
			Usage:   "I²C `ADDRESS` of the sensor",
			Value:   0x48,
			EnvVars: []string{"TMP102D_ADDR"},
		},
	}
	return &cli.App{
		Name:  "tmp102d",
		Usage: "read and publish TMP102 temperature sensors",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagLogLevel,
				Usage:   "logging `LEVEL` (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"TMP102D_LOG_LEVEL"},
			},
			&cli.Float64Flag{
				Name:  flagSimulate,
				Usage: "use simulated sensors reading `CELSIUS` instead of the I²C bus",
			},
		},
		Before: func(c *cli.Context) error {
			return setLevel(log, c.String(flagLogLevel))
		},
		Commands: []*cli.Command{
			{
				Name:   "read",
				Usage:  "print the temperature in °C",
				Flags:  sensorFlags,
				Action: d.read,
			},
			{
				Name:   "dump",
				Usage:  "print every value of the register decode",
				Flags:  sensorFlags,
				Action: d.dump,
			},
			{
				Name:  "serve",
				Usage: "attach the configured sensors and serve their attributes and metrics",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagConfig,
						Aliases:  []string{"c"},
						Usage:    "load configuration from `FILE`",
						EnvVars:  []string{"TMP102D_CONFIG"},
						Required: true,
					},
					&cli.StringFlag{
						Name:  flagListen,
						Usage: "HTTP listen `ADDRESS`, overrides the configuration",
					},
				},
				Action: d.serve,
			},
		},
	}
}
