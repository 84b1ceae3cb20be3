// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package context_test

import (
	ctx "context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/patrickascher/timetable/controller/context"
	"github.com/patrickascher/timetable/router"
	"github.com/stretchr/testify/assert"
)

func newRequest(r *http.Request) *context.Context {
	w := httptest.NewRecorder()
	return context.New(w, r)
}

func TestRequest_Body(t *testing.T) {
	asserts := assert.New(t)
	r := &http.Request{Body: io.NopCloser(strings.NewReader("text"))}

	// read request body twice
	req := newRequest(r).Request
	asserts.Equal([]byte("text"), req.Body())
	asserts.Equal([]byte("text"), req.Body())

	// body is limited
	r = &http.Request{Body: io.NopCloser(strings.NewReader(strings.Repeat("a", context.MaxBodySize+10)))}
	req = newRequest(r).Request
	asserts.Equal(context.MaxBodySize, len(req.Body()))
}

func TestRequest_Decode(t *testing.T) {
	asserts := assert.New(t)

	// ok: numbers are json.Number
	r := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(`{"id":{"type":"create","table":"grupos"},"values":{"id":7}}`))
	req := newRequest(r).Request
	var v map[string]interface{}
	asserts.NoError(req.Decode(&v))
	asserts.Equal(json.Number("7"), v["values"].(map[string]interface{})["id"])

	// error: empty body
	r = httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader("  "))
	req = newRequest(r).Request
	asserts.Equal(context.ErrBody, req.Decode(&v))

	// error: invalid json
	r = httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader("{"))
	req = newRequest(r).Request
	asserts.Error(req.Decode(&v))
}

func TestRequest_Pattern(t *testing.T) {
	asserts := assert.New(t)
	r := &http.Request{}

	// read the pattern without value
	req := newRequest(&http.Request{}).Request
	asserts.Equal("", req.Pattern())

	// read the pattern with value
	req = newRequest(r.WithContext(ctx.WithValue(r.Context(), router.PATTERN, "/api/tables/:table"))).Request
	asserts.Equal("/api/tables/:table", req.Pattern())
}

func TestRequest_HTTPRequest(t *testing.T) {
	asserts := assert.New(t)
	r := &http.Request{}

	req := newRequest(r).Request
	asserts.Equal(r, req.HTTPRequest())
}

func TestRequest_IP(t *testing.T) {
	asserts := assert.New(t)

	// X-Forwarded IP.
	header := http.Header{}
	header["X-Forwarded-For"] = []string{"192.168.2.1, 10.0.0.1"}
	req := newRequest(&http.Request{Header: header}).Request
	asserts.Equal("192.168.2.1", req.IP())

	// Remote Addr with port.
	req = newRequest(&http.Request{RemoteAddr: "192.168.2.4:8080"}).Request
	asserts.Equal("192.168.2.4", req.IP())

	// Remote Addr without port.
	req = newRequest(&http.Request{RemoteAddr: "192.168.2.4"}).Request
	asserts.Equal("192.168.2.4", req.IP())
}

func TestRequest_Param(t *testing.T) {
	asserts := assert.New(t)

	u, err := url.Parse("/api/tables/grupos?sheet=a&sheet=b&table=query")
	asserts.NoError(err)
	r := &http.Request{URL: u}
	r = r.WithContext(ctx.WithValue(r.Context(), router.PARAMS, map[string][]string{"table": {"grupos"}}))
	req := newRequest(r).Request

	// router params have precedence
	v, err := req.Param("table")
	asserts.NoError(err)
	asserts.Equal([]string{"grupos"}, v)

	v, err = req.Param("sheet")
	asserts.NoError(err)
	asserts.Equal([]string{"a", "b"}, v)

	// error: unknown param
	v, err = req.Param("unknown")
	asserts.Nil(v)
	asserts.Equal(fmt.Errorf(context.ErrParam, "unknown"), err)

	asserts.Equal(2, len(req.Params()))

	// request without url
	req = newRequest(&http.Request{}).Request
	asserts.Equal(0, len(req.Params()))
}

func TestContext_Err(t *testing.T) {
	asserts := assert.New(t)

	cx, cancel := ctx.WithCancel(ctx.Background())
	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(cx)
	c := context.New(httptest.NewRecorder(), r)
	asserts.NoError(c.Err())
	cancel()
	asserts.Equal(ctx.Canceled, c.Err())

	asserts.NoError(context.New(httptest.NewRecorder(), nil).Err())
}
