// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package router_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/patrickascher/timetable/controller"
	"github.com/patrickascher/timetable/registry"
	"github.com/patrickascher/timetable/router"
	_ "github.com/patrickascher/timetable/router/jsrouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testController struct {
	controller.Base
}

func (c *testController) List() {}

type handlerMock struct{}

func (h *handlerMock) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(fmt.Sprintf("%v %v", r.Context().Value(router.ACTION), r.Context().Value(router.PARAMS))))
}

func TestNew(t *testing.T) {
	asserts := assert.New(t)

	m, err := router.New(router.JSROUTER, nil)
	asserts.NoError(err)
	asserts.NotNil(m)

	// error: provider does not exist
	m, err = router.New("notExisting", nil)
	asserts.Nil(m)
	asserts.Equal(fmt.Errorf(registry.ErrUnknownEntry, "router_notExisting"), errors.Unwrap(err))

	// error: provider returns an error
	asserts.NoError(router.Register("routerErr", func(router.Manager, interface{}) (router.Provider, error) {
		return nil, errors.New("something went wrong")
	}))
	_, err = router.New("routerErr", nil)
	asserts.Equal("router: something went wrong", err.Error())
}

func TestManager_AddRoute(t *testing.T) {
	asserts := assert.New(t)
	m, err := router.New(router.JSROUTER, nil)
	require.NoError(t, err)

	// ok: handler func with all methods
	asserts.NoError(m.AddRoute(router.NewRoute("/healthz", handler)))
	r, err := m.RouteByPattern("/healthz")
	asserts.NoError(err)
	asserts.Equal([]string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}, r.Mapping()[0].Methods())

	// ok: handler with action mapping
	asserts.NoError(m.AddRoute(router.NewRoute("/api/tables/:table", &handlerMock{}, router.NewMapping([]string{http.MethodGet}, "View", nil))))
	asserts.Equal("View", m.ActionByPatternMethod("/api/tables/:table", http.MethodGet))
	asserts.Equal("", m.ActionByPatternMethod("/api/tables/:table", http.MethodPost))
	asserts.Equal("", m.ActionByPatternMethod("/unknown", http.MethodGet))
	asserts.Equal(2, len(m.Routes()))

	// error: pattern exists
	asserts.Equal(fmt.Errorf(router.ErrPatternExists, "/healthz"), m.AddRoute(router.NewRoute("/healthz", handler)))
	// error: pattern without slash
	asserts.Equal(router.ErrPattern, m.AddRoute(router.NewRoute("healthz", handler)))
	// error: route error
	asserts.True(errors.Is(m.AddRoute(router.NewRoute("/nil", nil)), router.ErrHandler))
	// error: disallowed method
	err = m.AddRoute(router.NewRoute("/trace", handler, router.NewMapping([]string{http.MethodTrace}, nil, nil)))
	asserts.Equal(fmt.Errorf(router.ErrHTTPMethodPattern, http.MethodTrace, "/trace"), err)

	// allow http method
	asserts.NoError(m.AllowHTTPMethod(http.MethodTrace, true))
	asserts.NoError(m.AddRoute(router.NewRoute("/trace", handler, router.NewMapping([]string{http.MethodTrace}, nil, nil))))
	asserts.Equal(fmt.Errorf(router.ErrHTTPMethod, "something"), m.AllowHTTPMethod("something", true))

	// request with params, action and global middleware
	m.Use(mw("global"))
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tables/grupos", nil))
	asserts.Equal(http.StatusOK, w.Code)
	asserts.Equal("before-globalView map[table:[grupos]]after-global", w.Body.String())

	// custom not found
	m.SetNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("custom"))
	}))
	w = httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	asserts.Equal(http.StatusNotFound, w.Code)
	asserts.Equal("before-globalcustomafter-global", w.Body.String())

	// error: route by pattern
	_, err = m.RouteByPattern("/unknown")
	asserts.Equal(fmt.Errorf(router.ErrPatternNotFound, "/unknown"), err)
}

func TestNewRoute(t *testing.T) {
	asserts := assert.New(t)

	// handler func
	r := router.NewRoute("/", handler)
	asserts.NoError(r.Error())
	asserts.NotNil(r.HandlerFunc())
	asserts.Nil(r.Handler())
	asserts.Equal("/", r.Pattern())

	// error: wrong handler type
	r = router.NewRoute("/", "handler")
	asserts.Equal(router.ErrHandler, r.Error())

	// error: handler without action
	r = router.NewRoute("/", &handlerMock{})
	asserts.Equal(fmt.Errorf(router.ErrActionMissing, "/"), r.Error())
	r = router.NewRoute("/", &handlerMock{}, router.NewMapping([]string{http.MethodGet}, nil, nil))
	asserts.Equal(fmt.Errorf(router.ErrActionMissing, "/"), r.Error())

	// error: nil mapping
	r = router.NewRoute("/", handler, nil)
	asserts.Equal(router.ErrMapper, r.Error())

	// error: method not unique
	r = router.NewRoute("/", &handlerMock{}, router.NewMapping([]string{http.MethodGet}, "A", nil), router.NewMapping([]string{http.MethodGet}, "B", nil))
	asserts.Equal(fmt.Errorf(router.ErrMethodUnique, http.MethodGet, "/"), r.Error())

	// controller gets initialized and the action name is read from the method value
	c := &testController{}
	r = router.NewRoute("/", c, router.NewMapping([]string{http.MethodGet}, c.List, router.NewMiddleware(mw("mw1"))))
	asserts.NoError(r.Error())
	asserts.Equal("List", r.Mapping()[0].Action())
	asserts.Equal(1, len(r.Mapping()[0].Middleware().All()))
	asserts.Equal("router_test.testController", c.Name())
}
