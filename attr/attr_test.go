// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package attr

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/tmp102d/tmp102"
	"github.com/GermanBionicSystems/tmp102d/tmp102/tmp102test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
)

func newSensor(t *testing.T, temp physic.Temperature) (*tmp102test.Sensor, *tmp102.Dev) {
	t.Helper()
	s := tmp102test.New(temp)
	dev, err := tmp102.NewI2C(s, s.Addr)
	require.NoError(t, err)
	return s, dev
}

func TestFormatAllData(t *testing.T) {
	expected := "Raw data        : 0x4b00\n" +
		"Swapped raw data: 0x4b\n" +
		"Raw temp        : 0x4\n" +
		"Raw temp        : 4\n" +
		"Temp int        : 0\n" +
		"Temp frac       : 2500\n" +
		"Temp float      : 0.2500\n"
	assert.Equal(t, expected, FormatAllData(tmp102.Decode(0x4b00)))

	negative := FormatAllData(tmp102.Decode(0x80fe))
	assert.Contains(t, negative, "Raw temp        : 0xffe8\n")
	assert.Contains(t, negative, "Raw temp        : -24\n")
	assert.Contains(t, negative, "Temp int        : -1\n")
	assert.Contains(t, negative, "Temp frac       : -5000\n")
	assert.Contains(t, negative, "Temp float      : -1.5000\n")
}

func TestSet(t *testing.T) {
	s, dev := newSensor(t, physic.ZeroCelsius+25*physic.Kelvin)
	attrs := Set(dev)
	require.Len(t, attrs, 2)
	assert.Equal(t, NameTemperature, attrs[0].Name)
	assert.Equal(t, NameAllData, attrs[1].Name)
	for _, a := range attrs {
		assert.Equal(t, ModeReadOnly, a.Mode)
	}

	v, err := attrs[0].Show()
	require.NoError(t, err)
	assert.Equal(t, "25\n", v)

	v, err = attrs[1].Show()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(v, "Raw data        : 0x19\n"), v)
	// No caching: one transaction per Show.
	assert.Equal(t, 2, s.Transactions())

	failure := errors.New("timeout")
	s.Fail(failure)
	for _, a := range attrs {
		v, err = a.Show()
		assert.ErrorIs(t, err, failure)
		assert.Empty(t, v)
	}
}

func get(t *testing.T, h http.Handler, method, path string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestHandler(t *testing.T) {
	h := NewHandler()
	_, board := newSensor(t, physic.ZeroCelsius+21*physic.Kelvin)
	s, ambient := newSensor(t, physic.ZeroCelsius-10*physic.Kelvin)
	require.NoError(t, h.Add("board", board))
	require.NoError(t, h.Add("ambient", ambient))
	assert.ErrorIs(t, h.Add("board", board), ErrDuplicate)

	code, body := get(t, h, http.MethodGet, "/sensors")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ambient\nboard\n", body)

	code, body = get(t, h, http.MethodGet, "/sensors/board")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "temperature\nall_data\n", body)

	code, body = get(t, h, http.MethodGet, "/sensors/board/temperature")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "21\n", body)

	code, body = get(t, h, http.MethodGet, "/sensors/ambient/temperature")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "-10\n", body)

	code, body = get(t, h, http.MethodGet, "/sensors/ambient/all_data")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Raw temp        : -160\n")

	code, _ = get(t, h, http.MethodGet, "/sensors/missing/temperature")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = get(t, h, http.MethodGet, "/sensors/board/humidity")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = get(t, h, http.MethodGet, "/sensors/missing")
	assert.Equal(t, http.StatusNotFound, code)

	code, body = get(t, h, http.MethodPut, "/sensors/board/temperature")
	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.Contains(t, body, "writing is not supported")

	s.Fail(errors.New("nack"))
	code, body = get(t, h, http.MethodGet, "/sensors/ambient/temperature")
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Contains(t, body, "nack")

	require.NoError(t, board.Halt())
	code, _ = get(t, h, http.MethodGet, "/sensors/board/all_data")
	assert.Equal(t, http.StatusGone, code)

	h.Remove("board")
	h.Remove("never-added")
	code, body = get(t, h, http.MethodGet, "/sensors")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ambient\n", body)
}

func TestHandlerCORS(t *testing.T) {
	h := NewHandler()
	_, dev := newSensor(t, physic.ZeroCelsius)
	require.NoError(t, h.Add("board", dev))

	req := httptest.NewRequest(http.MethodGet, "/sensors/board/temperature", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusGone, statusOf(tmp102.ErrHandleInvalid))
	assert.Equal(t, http.StatusBadGateway, statusOf(&tmp102.BusError{Addr: 0x48, Err: errors.New("nack")}))
	assert.Equal(t, http.StatusInternalServerError, statusOf(errors.New("other")))
}
