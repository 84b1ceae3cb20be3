// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package context

import (
	"fmt"
	"strings"

	"github.com/patrickascher/timetable/registry"
)

// Built-in render types.
const (
	JSON = "json"
	NONE = "none"
)

const registryPrefix = "render_"

// Renderer writes the response values.
// The Content-Type is set by the Response before Write is called, an empty ContentType leaves the header untouched.
// Error must write the complete error response, including its header.
type Renderer interface {
	ContentType() string
	Write(response *Response) error
	Error(response *Response, code int, err error) error
}

// RegisterRenderer under the given name.
func RegisterRenderer(name string, renderer Renderer) error {
	return registry.Set(registryPrefix+name, renderer)
}

// RenderType returns the renderer of the name.
func RenderType(name string) (Renderer, error) {
	i, err := registry.Get(registryPrefix + name)
	if err != nil {
		return nil, fmt.Errorf("render: %w (available: %s)", err, strings.Join(RenderTypes(), ", "))
	}
	r, ok := i.(Renderer)
	if !ok {
		return nil, fmt.Errorf("render: %s is no renderer", name)
	}
	return r, nil
}

// RenderTypes returns the sorted names of all registered renderers.
func RenderTypes() []string {
	var names []string
	for _, key := range registry.Names(registryPrefix) {
		names = append(names, strings.TrimPrefix(key, registryPrefix))
	}
	return names
}
