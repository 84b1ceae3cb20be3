// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package context

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
)

// MaxBodySize of a request body.
const MaxBodySize = 1 << 20

// Error messages.
var (
	ErrParam = "context: the param %#v does not exist"
	ErrBody  = errors.New("context: request body is empty")
)

// Request struct.
type Request struct {
	r *http.Request

	body   []byte
	params map[string][]string
}

// Body reads the raw body data, limited by MaxBodySize.
func (r *Request) Body() []byte {
	if r.body == nil && r.r.Body != nil {
		b, err := io.ReadAll(io.LimitReader(r.r.Body, MaxBodySize))
		if err == nil {
			r.body = b
		}
	}
	return r.body
}

// Decode the json body into v.
// Numbers are decoded as json.Number.
func (r *Request) Decode(v interface{}) error {
	body := r.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return ErrBody
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("context: %w", err)
	}
	return nil
}

// Pattern returns the router url pattern.
// The pattern will be checked by the request context with the key "router_pattern".
// If the pattern is not set, an empty string will return.
//		Example: http://example.com/api/tables/grupos
// 		/api/tables/:table
func (r *Request) Pattern() string {
	if p, ok := r.HTTPRequest().Context().Value("router_pattern").(string); ok { // used string instead of router.PATTERN because of dependency cycle.
		return p
	}
	return ""
}

// HTTPRequest returns the original *http.Request.
func (r *Request) HTTPRequest() *http.Request {
	return r.r
}

// Param returns a parameter by key.
// It returns a []string because the underlying query param could be an array.
// Error will return if the key does not exist.
func (r *Request) Param(k string) ([]string, error) {
	r.parse()
	if val, ok := r.params[k]; ok {
		return val, nil
	}
	return nil, fmt.Errorf(ErrParam, k)
}

// Params returns all router and query parameters.
func (r *Request) Params() map[string][]string {
	r.parse()
	return r.params
}

// IP of the request.
// The first X-Forwarded-For address is used if set.
func (r *Request) IP() string {
	if ips := r.HTTPRequest().Header.Get("X-Forwarded-For"); ips != "" {
		ip := strings.TrimSpace(strings.Split(ips, ",")[0])
		if rip, _, err := net.SplitHostPort(ip); err == nil {
			return rip
		}
		return ip
	}
	if ip, _, err := net.SplitHostPort(r.HTTPRequest().RemoteAddr); err == nil {
		return ip
	}
	return r.HTTPRequest().RemoteAddr
}

// newRequest is a helper to create a request.
func newRequest(r *http.Request) *Request {
	return &Request{r: r}
}

// parse the router params and the url query params.
// It runs only once, router params have precedence.
func (r *Request) parse() {
	if r.params != nil {
		return
	}
	r.params = make(map[string][]string)

	if r.HTTPRequest().URL != nil {
		for param, val := range r.HTTPRequest().URL.Query() {
			r.params[param] = val
		}
	}
	if params, ok := r.HTTPRequest().Context().Value("router_params").(map[string][]string); ok { // used string instead of router.PARAMS because of dependency cycle.
		for param, val := range params {
			r.params[param] = val
		}
	}
}
