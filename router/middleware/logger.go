// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package middleware (logger) provides a simple middleware for the logger.Manager. Any provider can be used.
// The logged information is remoteAddr, HTTP Method, URL, Proto, HTTP Status, Response size and requested time.
// Every request gets a ksuid as request id, it is set as X-Request-Id header and logged as field "request".
// On HTTP status < 400 an info will be logged otherwise an error.
// The logger middleware should used before all other middlewares.
package middleware

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/patrickascher/timetable/logger"
	"github.com/segmentio/ksuid"
)

// RequestID header.
const RequestID = "X-Request-Id"

// log struct
type log struct {
	manager logger.Manager
}

// NewLogger creates a new logger.
func NewLogger(manager logger.Manager) *log {
	return &log{manager: manager}
}

// MW must be passed to the middleware.
func (l *log) MW(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestID)
		if id == "" {
			id = ksuid.New().String()
		}
		w.Header().Set(RequestID, id)

		log := l.manager.WithFields(logger.Fields{"request": id}).WithTimer()

		// wrapped response writer to fetch the size and status.
		customResponseWriter := &responseWriter{
			ResponseWriter: w,
			status:         200,
		}

		h(customResponseWriter, r)

		msg := fmt.Sprintf("%s %s %s %s %d %d", r.RemoteAddr, r.Method, r.URL.Path, r.Proto, customResponseWriter.status, customResponseWriter.size)
		if customResponseWriter.status < 400 {
			log.Info(msg)
		} else {
			log.Error(msg)
		}
	}
}

// responseWriter is a custom response writer to read the size and HTTP code.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

// WriteHeader is adding the HTTP status of the response to the responseWriter struct.
func (rw *responseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

// Write is adding the size of the response to the responseWriter struct.
func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// Hijack is needed for the websocket upgrade.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("middleware: response writer does not implement http.Hijacker")
	}
	rw.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

// Flush implements http.Flusher if the underlying writer does.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
