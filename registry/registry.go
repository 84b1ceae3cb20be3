// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package registry is the container for the pluggable providers of the application.
// Query providers, config providers and response renderers register themselves here in their init functions.
// Entries are grouped by a name prefix, e.g. "query_sqlite" or "render_json".
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Error messages
var (
	ErrUnknownEntry       = "registry: unknown registry name %#v, maybe you forgot to import the provider"
	ErrMandatoryArguments = errors.New("registry: name and value must have a non-zero value")
	ErrAlreadyExists      = "registry: %v is already registered"
)

var (
	mu      sync.RWMutex
	entries = make(map[string]interface{})
)

// Set a value by name.
// The name must be unique and the value must not be nil.
func Set(name string, value interface{}) error {
	if value == nil || name == "" {
		return ErrMandatoryArguments
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := entries[name]; exists {
		return fmt.Errorf(ErrAlreadyExists, name)
	}
	entries[name] = value
	return nil
}

// Get returns the value by the registered name.
func Get(name string) (interface{}, error) {
	mu.RLock()
	defer mu.RUnlock()
	v, ok := entries[name]
	if !ok {
		return nil, fmt.Errorf(ErrUnknownEntry, name)
	}
	return v, nil
}

// Names returns the sorted registry names with the given prefix.
func Names(prefix string) []string {
	mu.RLock()
	defer mu.RUnlock()
	var rv []string
	for n := range entries {
		if strings.HasPrefix(n, prefix) {
			rv = append(rv, n)
		}
	}
	sort.Strings(rv)
	return rv
}
