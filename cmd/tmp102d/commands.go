// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GermanBionicSystems/tmp102d/attr"
	"github.com/GermanBionicSystems/tmp102d/internal/config"
	"github.com/GermanBionicSystems/tmp102d/tmp102"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 5 * time.Second

type daemon struct {
	log *logrus.Logger
}

// openOne attaches the sensor selected by the --bus and --addr flags.
func (d *daemon) openOne(c *cli.Context) (*tmp102.Dev, func(), error) {
	b, err := newBuses(c)
	if err != nil {
		return nil, nil, err
	}
	addr := uint16(c.Uint(flagAddr))
	bus, err := b.get(c.String(flagBus), addr)
	if err != nil {
		return nil, nil, err
	}
	dev, err := tmp102.NewI2C(bus, addr)
	if err != nil {
		b.close()
		return nil, nil, err
	}
	d.log.WithField("dev", dev.String()).Debug("tmp102: device probed")
	return dev, func() {
		_ = dev.Halt()
		b.close()
	}, nil
}

func (d *daemon) read(c *cli.Context) error {
	dev, done, err := d.openOne(c)
	if err != nil {
		return err
	}
	defer done()
	return d.show(c, attr.Set(dev)[0])
}

func (d *daemon) dump(c *cli.Context) error {
	dev, done, err := d.openOne(c)
	if err != nil {
		return err
	}
	defer done()
	return d.show(c, attr.Set(dev)[1])
}

func (d *daemon) show(c *cli.Context, a attr.Attribute) error {
	s, err := a.Show()
	if err != nil {
		return errors.Wrap(err, "failed to read TMP102 temperature data")
	}
	_, err = fmt.Fprint(c.App.Writer, s)
	return err
}

func (d *daemon) serve(c *cli.Context) error {
	cfg, err := config.Load(c.String(flagConfig))
	if err != nil {
		return err
	}
	if !c.IsSet(flagLogLevel) {
		if err := setLevel(d.log, cfg.LogLevel); err != nil {
			return err
		}
	}
	if c.IsSet(flagListen) {
		cfg.Listen = c.String(flagListen)
	}

	b, err := newBuses(c)
	if err != nil {
		return err
	}
	s := newSensors(d.log, b)
	defer s.detachAll()
	for _, sc := range cfg.Sensors {
		if err := s.attach(sc); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return d.run(ctx, cfg.Listen, s)
}

// run serves the sensors on listen until ctx is done.
func (d *daemon) run(ctx context.Context, listen string, s *sensors) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		s.metrics,
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
	)
	srv := &http.Server{
		Addr:              listen,
		Handler:           newMux(d.log, s.attrs, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		d.log.WithField("listen", listen).Info("serving")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "http")
	case <-ctx.Done():
	}
	d.log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return errors.Wrap(err, "http shutdown")
	}
	return nil
}

func newMux(log *logrus.Logger, attrs http.Handler, reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	h := logRequests(log, attrs)
	mux.Handle("/sensors", h)
	mux.Handle("/sensors/", h)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		// Opt into OpenMetrics to support exemplars.
		EnableOpenMetrics: true,
	}))
	return mux
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// logRequests logs failed attribute reads at warning level and the others
// at debug level.
func logRequests(log *logrus.Logger, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(sw, r)
		entry := log.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path, "status": sw.status})
		if sw.status >= http.StatusInternalServerError || sw.status == http.StatusGone {
			entry.Warn("tmp102: failed to read TMP102 temperature data")
			return
		}
		entry.Debug("request")
	})
}
