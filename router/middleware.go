// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package router

import (
	"net/http"
)

// MiddlewareFunc wraps a handler.
type MiddlewareFunc func(http.HandlerFunc) http.HandlerFunc

// Chain of middleware(s). The first entry is the outermost handler.
// A nil *Chain is an empty chain.
type Chain struct {
	mws []MiddlewareFunc
}

// NewMiddleware creates a chain of the given middleware(s).
func NewMiddleware(m ...MiddlewareFunc) *Chain {
	return &Chain{mws: append([]MiddlewareFunc(nil), m...)}
}

// Append middleware(s) to the end of the chain.
func (c *Chain) Append(m ...MiddlewareFunc) *Chain {
	c.mws = append(c.mws, m...)
	return c
}

// All returns a copy of the middleware(s).
func (c *Chain) All() []MiddlewareFunc {
	if c == nil {
		return nil
	}
	return append([]MiddlewareFunc(nil), c.mws...)
}

// Handle wraps h with the chain.
func (c *Chain) Handle(h http.HandlerFunc) http.HandlerFunc {
	if c == nil {
		return h
	}
	for i := len(c.mws) - 1; i >= 0; i-- {
		h = c.mws[i](h)
	}
	return h
}
