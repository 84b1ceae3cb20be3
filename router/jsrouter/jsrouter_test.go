// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jsrouter_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/patrickascher/timetable/router"
	"github.com/patrickascher/timetable/router/jsrouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echo(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(fmt.Sprintf("%v %v %v", r.Context().Value(router.PATTERN), r.Context().Value(router.PARAMS), r.Context().Value(router.ACTION))))
}

func get(t *testing.T, url string) (int, string) {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestNew(t *testing.T) {
	asserts := assert.New(t)

	// the provider is registered on init
	m, err := router.New(router.JSROUTER, jsrouter.Options{})
	asserts.NoError(err)
	asserts.NotNil(m)
}

func TestHttpRouterExtended_AddRoute(t *testing.T) {
	asserts := assert.New(t)

	js, err := jsrouter.New(nil, nil)
	require.NoError(t, err)

	mw := router.NewMiddleware(func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("mw "))
			h(w, r)
		}
	})
	asserts.NoError(js.AddRoute(router.NewRoute("/api/tables/:table", echo, router.NewMapping([]string{http.MethodGet}, nil, mw))))
	asserts.NoError(js.AddRoute(router.NewRoute("/healthz", echo, router.NewMapping([]string{http.MethodGet, http.MethodPost}, nil, nil))))

	server := httptest.NewServer(js.HTTPHandler())
	defer server.Close()

	code, body := get(t, server.URL+"/api/tables/grupos")
	asserts.Equal(http.StatusOK, code)
	asserts.Equal("mw /api/tables/:table map[table:[grupos]] <nil>", body)

	code, body = get(t, server.URL+"/healthz")
	asserts.Equal(http.StatusOK, code)
	asserts.Equal("/healthz map[] <nil>", body)

	// method not allowed
	resp, err := http.Post(server.URL+"/api/tables/grupos", "text/plain", nil)
	asserts.NoError(err)
	asserts.Equal(http.StatusMethodNotAllowed, resp.StatusCode)
	_ = resp.Body.Close()

	// not found
	code, _ = get(t, server.URL+"/unknown")
	asserts.Equal(http.StatusNotFound, code)

	js.SetNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("custom not found"))
	}))
	code, body = get(t, server.URL+"/unknown")
	asserts.Equal(http.StatusNotFound, code)
	asserts.Equal("custom not found", body)
}

func TestHttpRouterExtended_Action(t *testing.T) {
	asserts := assert.New(t)

	m, err := router.New(router.JSROUTER, nil)
	require.NoError(t, err)
	asserts.NoError(m.AddRoute(router.NewRoute("/api/events", http.HandlerFunc(echo), router.NewMapping([]string{http.MethodPost}, "Dispatch", nil))))

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/events", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	asserts.NoError(err)
	asserts.Equal("/api/events map[] Dispatch", string(b))
}
