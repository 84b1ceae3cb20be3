// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// corsMW wraps rs/cors.
type corsMW struct {
	c *cors.Cors
}

// NewCors creates a cors middleware for the allowed origins.
// Without origins no cors headers are added.
func NewCors(origins []string) *corsMW {
	if len(origins) == 0 {
		return &corsMW{}
	}
	return &corsMW{c: cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestID},
		ExposedHeaders: []string{RequestID},
	})}
}

// MW must be passed to the middleware.
func (c *corsMW) MW(h http.HandlerFunc) http.HandlerFunc {
	if c.c == nil {
		return h
	}
	return c.c.Handler(h).ServeHTTP
}
