// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package controller provides a controller / action based http.Handler for the router.
// A Controller can have different renderer and is easy to extend.
// Data and Errors can be set directly in the controller.
// A Context with some helpers for the response and request is provided.
//
// Every request runs on a copy of the registered controller, so dependencies can be set as struct fields.
package controller

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/patrickascher/timetable/controller/context"
)

// Error messages
var (
	ErrAction = "controller: action %v does not exist in %v"
	ErrPanic  = "controller: action %s panicked: %v"
)

// predefined render types
const (
	RenderJSON = context.JSON
	RenderNone = context.NONE
)

// Interface of the controller.
type Interface interface {
	Initialize(caller Interface) // needed to set the caller reference.
	ServeHTTP(http.ResponseWriter, *http.Request)

	// Context
	Context() *context.Context
	SetContext(ctx *context.Context)

	// render type
	RenderType() string
	SetRenderType(string)

	// controller helpers
	Name() string
	Action() string
	Set(key string, value interface{})
	Error(status int, err error)

	// helpers
	CheckBrowserCancellation() bool
	CallAction(action string) (func(), error)
	HasError() bool // returns true if Error(int,err) was called.
}

// Base struct
type Base struct {
	ctx    *context.Context
	caller Interface

	renderType string
	actionName string

	err bool
}

// Initialize the controller.
// Its required to set the correct reference.
func (c *Base) Initialize(caller Interface) {
	c.caller = caller
}

// Context returns the controller context.
func (c *Base) Context() *context.Context {
	return c.ctx
}

// SetContext to the controller.
func (c *Base) SetContext(ctx *context.Context) {
	c.ctx = ctx
}

// Set a controller variable by key and value.
func (c *Base) Set(key string, value interface{}) {
	c.Context().Response.SetValue(key, value)
}

// RenderType of the controller.
// Default json.
func (c *Base) RenderType() string {
	return c.renderType
}

// SetRenderType of the controller.
func (c *Base) SetRenderType(s string) {
	c.renderType = s
}

// Name returns the controller incl. package name.
func (c *Base) Name() string {
	if c.caller == nil {
		return ""
	}
	return reflect.Indirect(reflect.ValueOf(c.caller)).Type().String()
}

// Action name.
func (c *Base) Action() string {
	return c.actionName
}

// Error renders err with the render type of the controller and stops the rendering of the values.
// If the renderer can not write the error, it falls back to http.Error.
func (c *Base) Error(code int, err error) {
	c.err = true
	if rErr := c.ctx.Response.Error(code, err, c.renderType); rErr != nil {
		http.Error(c.ctx.Response.Writer(), rErr.Error(), code)
	}
}

// ServeHTTP runs the action of the "router_action" request context value on a copy of the controller.
// A panic in the action is rendered as http.StatusInternalServerError.
func (c *Base) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rc := newController(c)
	rc.SetContext(context.New(w, r))

	// the router package can not be imported here, the key is router.ACTION.
	name, _ := r.Context().Value("router_action").(string)
	if !run(rc, name) || rc.CheckBrowserCancellation() || rc.HasError() {
		return
	}
	if err := rc.Context().Response.Render(rc.RenderType()); err != nil {
		rc.Error(http.StatusInternalServerError, err)
	}
}

// run calls the action. It returns false if the action panicked.
func run(c Interface, name string) (ok bool) {
	action, err := c.CallAction(name)
	if err != nil {
		c.Error(http.StatusNotImplemented, err)
		return true
	}
	defer func() {
		if rec := recover(); rec != nil {
			c.Error(http.StatusInternalServerError, fmt.Errorf(ErrPanic, name, rec))
			ok = false
		}
	}()
	action()
	return true
}

// HasError reports whether Error was called.
func (c *Base) HasError() bool {
	return c.err
}

// newController copies the registered controller for one request.
// All fields of the caller struct are copied, so dependencies survive. Context, error and action are reset.
func newController(c *Base) Interface {
	src := reflect.ValueOf(c.caller).Elem()
	dst := reflect.New(src.Type())
	dst.Elem().Set(src)

	rc := dst.Interface().(Interface)
	rc.SetContext(nil)
	rt := c.caller.RenderType()
	if rt == "" {
		rt = RenderJSON
	}
	rc.SetRenderType(rt)
	rc.Initialize(rc)
	return rc
}

// CallAction returns the method of the caller with the signature func().
func (c *Base) CallAction(name string) (func(), error) {
	c.actionName = name
	if m := reflect.ValueOf(c.caller).MethodByName(name); m.IsValid() {
		if method, ok := m.Interface().(func()); ok {
			return method, nil
		}
	}
	return nil, fmt.Errorf(ErrAction, name, c.Name())
}

// CheckBrowserCancellation reports whether the client canceled the request.
// A canceled request gets the status 499.
func (c *Base) CheckBrowserCancellation() bool {
	if c.ctx.Err() == nil {
		return false
	}
	c.ctx.Response.Writer().WriteHeader(499)
	return true
}
