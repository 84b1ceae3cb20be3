// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package jsrouter implements the router.Provider interface and wraps the julienschmidt.httprouter.
//
// All router params are getting set to the request context with the key router.PARAMS.
// The matched url pattern is set to the request context with the key router.PATTERN.
// If a route action was defined, it gets set as router.ACTION.
package jsrouter

import (
	"context"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/patrickascher/timetable/router"
)

// init registers the js-router provider
func init() {
	err := router.Register(router.JSROUTER, New)
	if err != nil {
		log.Fatal(err)
	}
}

// Options of the router.
type Options struct {
	RedirectTrailingSlash  bool
	RedirectFixedPath      bool
	HandleMethodNotAllowed bool
	HandleOPTIONS          bool
}

// httpRouterExtended was created to override the httprouter.HandlerFunc, to add params to the request.ctx.
type httpRouterExtended struct {
	httprouter.Router
	manager router.Manager
}

// New configured instance.
// If options is nil, all Options are enabled.
func New(manager router.Manager, options interface{}) (router.Provider, error) {
	r := &httpRouterExtended{manager: manager}
	r.NotFound = http.NotFoundHandler()
	r.SaveMatchedRoutePath = true

	opt := Options{RedirectTrailingSlash: true, RedirectFixedPath: true, HandleMethodNotAllowed: true, HandleOPTIONS: true}
	if o, ok := options.(Options); ok {
		opt = o
	}
	r.RedirectTrailingSlash = opt.RedirectTrailingSlash
	r.RedirectFixedPath = opt.RedirectFixedPath
	r.HandleMethodNotAllowed = opt.HandleMethodNotAllowed
	r.HandleOPTIONS = opt.HandleOPTIONS

	return r, nil
}

// HandlerFunc is required, otherwise the default Handler will be called.
func (h *httpRouterExtended) HandlerFunc(method, path string, handler http.HandlerFunc) {
	h.Handler(method, path, handler)
}

// Handler adds the pattern, params and action to the request context.
func (h *httpRouterExtended) Handler(method, path string, handler http.Handler) {
	h.Handle(method, path,
		func(w http.ResponseWriter, req *http.Request, p httprouter.Params) {
			ctx := req.Context()
			ctx = context.WithValue(ctx, router.PATTERN, p.MatchedRoutePath())
			ctx = context.WithValue(ctx, router.PARAMS, paramsToMap(p))
			if h.manager != nil {
				ctx = context.WithValue(ctx, router.ACTION, h.manager.ActionByPatternMethod(p.MatchedRoutePath(), req.Method))
			}
			handler.ServeHTTP(w, req.WithContext(ctx))
		})
}

// HTTPHandler returns the http.Handler.
func (h *httpRouterExtended) HTTPHandler() http.Handler {
	return h
}

// AddRoute to the provider.
// The mapping middlewares wrap the handler.
func (h *httpRouterExtended) AddRoute(r router.Route) error {
	for _, mapping := range r.Mapping() {
		for _, method := range mapping.Methods() {
			var handler http.HandlerFunc
			if r.Handler() != nil {
				handler = r.Handler().ServeHTTP
			} else {
				handler = r.HandlerFunc()
			}
			if mapping.Middleware() != nil {
				handler = mapping.Middleware().Handle(handler)
			}

			h.HandlerFunc(method, r.Pattern(), handler)
		}
	}

	return nil
}

// SetNotFound is a function to add a custom not found handler if a route does not match.
func (h *httpRouterExtended) SetNotFound(handler http.Handler) {
	h.NotFound = handler
}

// paramsToMap maps all router params.
func paramsToMap(params httprouter.Params) map[string][]string {
	rv := make(map[string][]string, len(params))
	for _, p := range params {
		if p.Key == httprouter.MatchedRoutePathParam {
			continue
		}
		rv[p.Key] = []string{p.Value}
	}
	return rv
}
