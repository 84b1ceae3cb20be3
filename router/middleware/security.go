// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package middleware (Security) adds additional secure headers.
package middleware

import (
	"net/http"
)

// security type
type security struct {
	hsts bool
}

// NewSecureHeader creates the secure header middleware.
// Strict-Transport-Security is only sent if hsts is true, the dashboard is usually served on plain http.
func NewSecureHeader(hsts bool) *security {
	return &security{hsts: hsts}
}

// MW must be passed to the middleware.
func (sec *security) MW(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sec.hsts {
			w.Header().Add("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
		}
		w.Header().Add("X-Frame-Options", "DENY")
		w.Header().Add("X-Content-Type-Options", "nosniff")
		w.Header().Add("Referrer-Policy", "same-origin")

		h(w, r)
	}
}
