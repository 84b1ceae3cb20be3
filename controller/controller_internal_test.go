// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package controller_test

import (
	ctx "context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/patrickascher/timetable/controller"
	"github.com/patrickascher/timetable/controller/context"
	"github.com/patrickascher/timetable/router"
	_ "github.com/patrickascher/timetable/router/jsrouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testController defines actions and a timeout for testing.
type testController struct {
	controller.Base
	tables []string
}

func (c *testController) Tables() {
	c.Set("tables", c.tables)
}

func (c *testController) Fail() {
	c.Error(http.StatusBadRequest, errors.New("dashboard: unknown event type"))
}

func (c *testController) WrongRenderType() {
	c.SetRenderType("does-not-exist")
}

func (c *testController) Panic() {
	var tables map[string]int
	tables["grupos"] = 1
}

func (c *testController) Timeout() {
	time.Sleep(1 * time.Second)
	c.Set("Successful", true)
}

func newServer(t *testing.T, c *testController, mapping map[string]interface{}) *httptest.Server {
	r, err := router.New(router.JSROUTER, nil)
	require.NoError(t, err)
	for pattern, action := range mapping {
		require.NoError(t, r.AddRoute(router.NewRoute(pattern, c, router.NewMapping([]string{http.MethodGet}, action, nil))))
	}
	return httptest.NewServer(r.Handler())
}

func get(asserts *assert.Assertions, url string) (int, string) {
	resp, err := http.Get(url)
	asserts.NoError(err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	asserts.NoError(err)
	return resp.StatusCode, string(body)
}

// TestController_RenderType tests:
// - if the render type gets set
func TestController_RenderType(t *testing.T) {
	asserts := assert.New(t)

	c := &testController{}

	asserts.Equal("", c.RenderType())
	c.SetRenderType("json")
	asserts.Equal("json", c.RenderType())
}

// TestController_RenderType2 tests:
// - if the custom render type will be passed to the new created Controller.
func TestController_RenderType2(t *testing.T) {
	asserts := assert.New(t)

	c := &testController{}
	c.SetRenderType("CUSTOM")
	server := newServer(t, c, map[string]interface{}{"/tables": c.Tables})
	defer server.Close()

	code, body := get(asserts, server.URL+"/tables")
	asserts.Equal(500, code)
	asserts.Equal("context: render: registry: unknown registry name \"render_CUSTOM\", maybe you forgot to import the provider (available: json, none)\n", body)
}

// TestController_Name checks if the correct controller name will return.
func TestController_Name(t *testing.T) {
	asserts := assert.New(t)

	c := testController{}

	// ok: no caller was set
	asserts.Equal("", c.Name())

	// caller is set, correct packageName.struct name should return.
	c.Initialize(&c)
	asserts.Equal("controller_test.testController", c.Name())
}

// TestController_Action checks if the correct action will return.
func TestController_Action(t *testing.T) {
	asserts := assert.New(t)

	c := testController{}
	asserts.Equal("", c.Action())

	c.Initialize(&c)
	fn, err := c.CallAction("Tables")
	asserts.NoError(err)
	asserts.NotNil(fn)
	asserts.Equal("Tables", c.Action())

	// error: not a func()
	fn, err = c.CallAction("Name")
	asserts.Nil(fn)
	asserts.Error(err)
}

// TestController_Set checks if controller key/value pairs can be set.
func TestController_Set(t *testing.T) {
	asserts := assert.New(t)

	c := testController{}

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com", nil)
	c.SetContext(context.New(w, r))

	c.Set("table", "grupos")
	c.Set("active", "materias")

	asserts.Equal(2, len(c.Context().Response.Values()))
	asserts.Equal("grupos", c.Context().Response.Value("table"))
	asserts.Equal("materias", c.Context().Response.Value("active"))
}

// TestController_ServeHTTP tests:
// - correct action calls with the copied dependencies.
// - error if action does not exist.
// - error if render type does not exist.
// - error rendered by the json renderer.
// - a panic in the action.
func TestController_ServeHTTP(t *testing.T) {
	asserts := assert.New(t)

	c := &testController{tables: []string{"grupos", "materias"}}
	server := newServer(t, c, map[string]interface{}{
		"/tables":          c.Tables,
		"/fail":            c.Fail,
		"/doesNotExist":    "does-not-exist",
		"/wrongRenderType": c.WrongRenderType,
		"/panic":           c.Panic,
	})
	defer server.Close()

	code, body := get(asserts, server.URL+"/tables")
	asserts.Equal(200, code)
	asserts.Equal(`{"tables":["grupos","materias"]}`, body)

	code, body = get(asserts, server.URL+"/fail")
	asserts.Equal(400, code)
	asserts.Equal(`{"error":"dashboard: unknown event type"}`, body)

	code, body = get(asserts, server.URL+"/doesNotExist")
	asserts.Equal(501, code)
	asserts.Equal(`{"error":"controller: action does-not-exist does not exist in controller_test.testController"}`, body)

	code, body = get(asserts, server.URL+"/wrongRenderType")
	asserts.Equal(500, code)
	asserts.Equal("context: render: registry: unknown registry name \"render_does-not-exist\", maybe you forgot to import the provider (available: json, none)\n", body)

	code, body = get(asserts, server.URL+"/panic")
	asserts.Equal(500, code)
	asserts.Equal(`{"error":"controller: action Panic panicked: assignment to entry in nil map"}`, body)

	// the registered controller is untouched.
	asserts.Nil(c.Context())
	asserts.Equal("", c.RenderType())
}

// TestController_ServeHTTP_BrowserCancellation tests:
// - if the server cancels the request if the browser cancels.
func TestController_ServeHTTP_BrowserCancellation(t *testing.T) {
	asserts := assert.New(t)

	c := &testController{}
	server := newServer(t, c, map[string]interface{}{"/timeout": c.Timeout})
	defer server.Close()

	// canceled
	cx, cancel := ctx.WithTimeout(ctx.Background(), 300*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(cx, http.MethodGet, server.URL+"/timeout", nil)
	asserts.NoError(err)
	resp, err := http.DefaultClient.Do(req)
	asserts.Error(err)
	asserts.Nil(resp)

	// not canceled
	code, body := get(asserts, server.URL+"/timeout")
	asserts.Equal(200, code)
	asserts.Equal(`{"Successful":true}`, body)
}
