// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package context wraps the request and response of one controller call.
// The Request reads params and json bodies, the Response collects values which a registered Renderer writes.
package context

import "net/http"

// Context of one request.
type Context struct {
	Request  *Request
	Response *Response
}

// New returns a Context of the http request and response writer.
func New(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{Request: newRequest(r), Response: newResponse(w)}
}

// Err returns the error of the request context, which is set once the client is gone.
func (c *Context) Err() error {
	if r := c.Request.HTTPRequest(); r != nil {
		return r.Context().Err()
	}
	return nil
}
