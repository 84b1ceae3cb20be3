// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package router

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"runtime"
	"strings"

	"github.com/patrickascher/timetable/controller"
)

// Error messages.
var (
	ErrHandler       = errors.New("route: handler must be of type http.Handler or http.HandlerFunc")
	ErrMapper        = errors.New("route: a mapper with zero value is not allowed")
	ErrMethodUnique  = "route: HTTP method %s is not unique on pattern %s"
	ErrActionMissing = "route: a action name is mandatory on http.Handler (pattern: %s)"
)

// Route interface.
type Route interface {
	// Pattern of the route.
	Pattern() string
	// Handler of the route.
	// May be nil, Handler or HandlerFunc has a value.
	Handler() http.Handler
	// HandlerFunc of the route.
	// May be nil, Handler or HandlerFunc has a value.
	HandlerFunc() http.HandlerFunc
	// Mapping of the route.
	Mapping() []Mapping
	// Error message.
	Error() error
}

// Mapping interface.
type Mapping interface {
	// Action for the mapping.
	Action() string
	// Methods for the mapping.
	Methods() []string
	SetMethods([]string)
	// Middleware(s) of the mapping
	Middleware() *Chain
}

type route struct {
	pattern     string
	handler     http.Handler
	handlerFunc http.HandlerFunc
	mapping     []Mapping
	err         error
}

// Pattern return the route pattern as string.
func (r route) Pattern() string {
	return r.pattern
}

// Handler returns the Handler of the route.
func (r route) Handler() http.Handler {
	return r.handler
}

// HandlerFunc returns the HandlerFunc of the route.
func (r route) HandlerFunc() http.HandlerFunc {
	return r.handlerFunc
}

// Mapping of the route.
func (r route) Mapping() []Mapping {
	return r.mapping
}

// Error will be set if the handler is nil, has the wrong type or the mapping is invalid.
func (r route) Error() error {
	return r.err
}

type mapping struct {
	action     string
	method     []string
	middleware *Chain
}

// Action of the mapping.
// The controller calls the method with this name.
func (m mapping) Action() string {
	return m.action
}

// Methods of the mapping.
func (m mapping) Methods() []string {
	return m.method
}

// SetMethods of the mapping.
func (m *mapping) SetMethods(method []string) {
	m.method = method
}

// Middleware(s) of the mapping.
func (m mapping) Middleware() *Chain {
	return m.middleware
}

// NewRoute creates a route with the required data.
// handler must be of type http.Handler or http.HandlerFunc.
// A http.Handler needs a mapping with an action name for every HTTP method.
// If the handler is a controller.Interface, it gets initialized.
func NewRoute(pattern string, handler interface{}, mapping ...Mapping) Route {
	r := route{pattern: pattern, mapping: mapping}

	switch h := handler.(type) {
	case nil:
		r.err = ErrHandler
	case http.Handler:
		r.handler = h
		if err := hasActionName(pattern, mapping); err != nil {
			r.err = err
		}
		if c, isController := handler.(controller.Interface); isController {
			c.Initialize(c)
		}
	case func(http.ResponseWriter, *http.Request):
		r.handlerFunc = h
	default:
		r.err = ErrHandler
	}

	// the HTTP method must be unique over the whole pattern.
	unique := make(map[string]bool)
	for _, m := range mapping {
		if m == nil {
			r.err = ErrMapper
			break
		}
		for _, method := range m.Methods() {
			if unique[method] {
				r.err = fmt.Errorf(ErrMethodUnique, method, pattern)
				break
			}
			unique[method] = true
		}
	}

	return &r
}

// NewMapping creates a new mapping.
// Action can be a string or a method value of the controller.
// Middlewares are copied.
func NewMapping(methods []string, action interface{}, mw *Chain) Mapping {
	m := mapping{method: methods}

	if action != nil {
		switch reflect.TypeOf(action).Kind() {
		case reflect.Func:
			name := runtime.FuncForPC(reflect.ValueOf(action).Pointer()).Name()
			parts := strings.Split(name, ".")
			m.action = strings.Split(parts[len(parts)-1], "-")[0]
		case reflect.String:
			m.action = action.(string)
		}
	}

	if mw != nil {
		m.middleware = NewMiddleware(mw.All()...)
	}

	return &m
}

// hasActionName helper to detect missing action names.
func hasActionName(pattern string, mapping []Mapping) error {
	if len(mapping) == 0 {
		return fmt.Errorf(ErrActionMissing, pattern)
	}
	for _, m := range mapping {
		if m == nil || m.Action() == "" {
			return fmt.Errorf(ErrActionMissing, pattern)
		}
	}
	return nil
}
