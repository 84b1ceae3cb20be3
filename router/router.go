// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package router provides a manager to add routes based on an http.Handler or http.HandlerFunc.
// Specific Action<->HTTP Method mapping can be defined.
// Middleware helpers to define middlewares with a strict order, a global chain wraps every route.
// The PATTERN, PARAMS and ACTION will be added as request context.
// The router is provider based.
package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/patrickascher/timetable/registry"
)

// registryPrefix for the registration of the predefined providers.
const registryPrefix = "router_"

// pre-defined providers
const (
	JSROUTER = "jsrouter"
)

// Request context keys.
const (
	// PARAMS of the provider are added as context to the HTTP context.
	PARAMS = registryPrefix + "params"
	// PATTERN of the route is added as context to the HTTP context.
	PATTERN = registryPrefix + "pattern"
	// ACTION is added to the HTTP context if the Route.Action was defined.
	ACTION = registryPrefix + "action"
)

// Error messages.
var (
	ErrHTTPMethod        = "router: HTTP method %s is not allowed"
	ErrHTTPMethodPattern = ErrHTTPMethod + " on pattern %s"
	ErrPatternNotFound   = "router: pattern %s is not defined"
	ErrPattern           = errors.New("router: pattern must begin with a slash")
	ErrPatternExists     = "router: pattern %s already exists"
)

// Provider interface.
type Provider interface {
	// HTTPHandler must return the mux for http/server.
	HTTPHandler() http.Handler
	// custom NotFound handler can be set.
	SetNotFound(http.Handler)
	// AddRoute to the router.
	AddRoute(Route) error
}

// Manager interface of the router.
type Manager interface {
	// Routes return all defined routes.
	Routes() []Route
	// RouteByPattern will return an error if the pattern does not exist.
	RouteByPattern(pattern string) (Route, error)
	// ActionByPatternMethod will return the action by the pattern and HTTP method.
	ActionByPatternMethod(pattern string, method string) string
	// AllowHTTPMethod allows to globally allow/disallow a HTTP Method.
	AllowHTTPMethod(method string, allow bool) error
	// Use adds middlewares which wrap the whole handler.
	Use(...MiddlewareFunc)
	// AddRoute to the router provider.
	AddRoute(Route) error
	// Handler returns the provider handler wrapped by the global middlewares.
	Handler() http.Handler
	// SetNotFound - a custom not found Handler can be added.
	SetNotFound(handler http.Handler)
}

// providerFn alias type.
type providerFn func(Manager, interface{}) (Provider, error)

// Register the router provider. This should be called in the init() of the providers.
// If the router provider/name is empty or is already registered, an error will return.
func Register(provider string, fn providerFn) error {
	return registry.Set(registryPrefix+provider, fn)
}

// New creates the router provider and returns its manager.
func New(provider string, options interface{}) (Manager, error) {
	reg, err := registry.Get(registryPrefix + provider)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	fn, ok := reg.(providerFn)
	if !ok {
		return nil, fmt.Errorf("router: %s is no provider", provider)
	}

	m := &manager{byPattern: map[string]Route{}, allowed: defaultHTTPMethods(), global: NewMiddleware()}
	if m.provider, err = fn(m, options); err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	return m, nil
}

// manager keeps the routes in insertion order and indexed by pattern.
type manager struct {
	provider  Provider
	routes    []Route
	byPattern map[string]Route
	allowed   map[string]bool
	global    *Chain
}

func (m *manager) Routes() []Route {
	return m.routes
}

// RouteByPattern returns the route of the pattern.
func (m *manager) RouteByPattern(pattern string) (Route, error) {
	if r, ok := m.byPattern[pattern]; ok {
		return r, nil
	}
	return nil, fmt.Errorf(ErrPatternNotFound, pattern)
}

// ActionByPatternMethod returns the action of the mapping which serves the method on the pattern.
// An empty string returns if there is none.
func (m *manager) ActionByPatternMethod(pattern string, method string) string {
	r, ok := m.byPattern[pattern]
	if !ok {
		return ""
	}
	for _, mapping := range r.Mapping() {
		if contains(mapping.Methods(), method) {
			return mapping.Action()
		}
	}
	return ""
}

// Use appends global middlewares.
func (m *manager) Use(mw ...MiddlewareFunc) {
	m.global.Append(mw...)
}

// Handler returns the provider handler, wrapped by the global middlewares.
func (m *manager) Handler() http.Handler {
	h := m.provider.HTTPHandler()
	if len(m.global.All()) == 0 {
		return h
	}
	return m.global.Handle(h.ServeHTTP)
}

func (m *manager) SetNotFound(h http.Handler) {
	m.provider.SetNotFound(h)
}

// AllowHTTPMethod allows or forbids the method for all routes added afterwards.
func (m *manager) AllowHTTPMethod(method string, allow bool) error {
	if !contains(httpMethods, method) {
		return fmt.Errorf(ErrHTTPMethod, method)
	}
	m.allowed[method] = allow
	return nil
}

// AddRoute validates the route and adds it to the provider.
// A route without mapping, or a mapping without methods, serves all allowed methods.
func (m *manager) AddRoute(r Route) error {
	if err := r.Error(); err != nil {
		return fmt.Errorf("router: %w", err)
	}

	pattern := r.Pattern()
	if !strings.HasPrefix(pattern, "/") {
		return ErrPattern
	}
	if _, exists := m.byPattern[pattern]; exists {
		return fmt.Errorf(ErrPatternExists, pattern)
	}

	if r.Mapping() == nil {
		rt := r.(*route)
		rt.mapping = append(rt.mapping, &mapping{method: m.allowedMethods()})
	}
	for _, mapping := range r.Mapping() {
		if mapping.Methods() == nil {
			mapping.SetMethods(m.allowedMethods())
			continue
		}
		for _, method := range mapping.Methods() {
			if !m.allowed[method] {
				return fmt.Errorf(ErrHTTPMethodPattern, method, pattern)
			}
		}
	}

	if err := m.provider.AddRoute(r); err != nil {
		return err
	}
	m.routes = append(m.routes, r)
	m.byPattern[pattern] = r
	return nil
}

// allowedMethods returns the allowed methods in the order of httpMethods.
func (m *manager) allowedMethods() []string {
	var rv []string
	for _, method := range httpMethods {
		if m.allowed[method] {
			rv = append(rv, method)
		}
	}
	return rv
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var httpMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodConnect,
	http.MethodTrace,
}

// defaultHTTPMethods allows all methods except CONNECT and TRACE (cross site tracing).
func defaultHTTPMethods() map[string]bool {
	allowed := make(map[string]bool, len(httpMethods))
	for _, method := range httpMethods {
		allowed[method] = method != http.MethodConnect && method != http.MethodTrace
	}
	return allowed
}
