// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package attr

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"

	"github.com/GermanBionicSystems/tmp102d/tmp102"
	"github.com/rs/cors"
	"goji.io"
	"goji.io/pat"
)

// ErrDuplicate is returned by Handler.Add for a name already published.
var ErrDuplicate = errors.New("attr: sensor already published")

// Handler serves the attributes of a set of sensors over HTTP:
//
//	GET /sensors                    names of the published sensors
//	GET /sensors/{name}             attribute names of a sensor
//	GET /sensors/{name}/{attribute} attribute value
//
// Attributes are read-only; any other method is answered with 405.
type Handler struct {
	mu      sync.RWMutex
	sensors map[string][]Attribute
	h       http.Handler
}

// NewHandler returns a Handler with no sensors published.
func NewHandler() *Handler {
	h := &Handler{sensors: map[string][]Attribute{}}
	mux := goji.NewMux()
	mux.HandleFunc(pat.Get("/sensors"), h.listSensors)
	mux.HandleFunc(pat.Get("/sensors/:name"), h.listAttributes)
	mux.HandleFunc(pat.Get("/sensors/:name/:attr"), h.show)
	mux.HandleFunc(pat.New("/sensors/:name/:attr"), readOnly)
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	})
	h.h = c.Handler(mux)
	return h
}

// Add publishes the attributes of q under name.
func (h *Handler) Add(name string, q Querier) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sensors[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	h.sensors[name] = Set(q)
	return nil
}

// Remove unpublishes name. Unknown names are ignored.
func (h *Handler) Remove(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sensors, name)
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.h.ServeHTTP(w, r)
}

func (h *Handler) listSensors(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	names := make([]string, 0, len(h.sensors))
	for name := range h.sensors {
		names = append(names, name)
	}
	h.mu.RUnlock()
	sort.Strings(names)
	writeLines(w, names)
}

func (h *Handler) listAttributes(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	attrs, ok := h.sensors[pat.Param(r, "name")]
	h.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	names := make([]string, 0, len(attrs))
	for _, a := range attrs {
		names = append(names, a.Name)
	}
	writeLines(w, names)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	a, ok := h.lookup(pat.Param(r, "name"), pat.Param(r, "attr"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	s, err := a.Show()
	if err != nil {
		http.Error(w, err.Error(), statusOf(err))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, s)
}

func (h *Handler) lookup(name, attr string) (Attribute, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, a := range h.sensors[name] {
		if a.Name == attr {
			return a, true
		}
	}
	return Attribute{}, false
}

func readOnly(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, "writing is not supported", http.StatusMethodNotAllowed)
}

// statusOf maps a query error to the HTTP status reported for it.
func statusOf(err error) int {
	var be *tmp102.BusError
	switch {
	case errors.Is(err, tmp102.ErrHandleInvalid):
		return http.StatusGone
	case errors.As(err, &be):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeLines(w http.ResponseWriter, lines []string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, l := range lines {
		_, _ = io.WriteString(w, l+"\n")
	}
}
