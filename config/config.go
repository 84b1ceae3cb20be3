// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads configuration files into a configuration struct by a registered provider.
//
// The application configuration is Timetable. There is no global instance, Default returns a fresh value
// which is overlaid by a config file and passed to every component.
package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/patrickascher/timetable/registry"
)

// VIPER is the registry name of the viper provider.
const VIPER = "config_viper"

// Error messages
var (
	ErrInterface = errors.New("config: the type does not implement config.Interface")
	ErrPointer   = errors.New("config: the config argument must be a ptr")
)

// Interface for the config provider.
type Interface interface {
	Parse(config interface{}, options interface{}) error
}

// Hook can be implemented by the configuration struct.
// BeforeLoad is called before the provider parses, AfterLoad after it, also if parsing failed.
type Hook interface {
	BeforeLoad()
	AfterLoad() error
}

// Load parses the configuration of the provider into cfg, which must be a ptr.
// A parse error has priority over an AfterLoad error.
func Load(provider string, cfg interface{}, options interface{}) error {
	if reflect.ValueOf(cfg).Kind() != reflect.Ptr {
		return ErrPointer
	}

	instance, err := registry.Get(provider)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	p, ok := instance.(Interface)
	if !ok {
		return ErrInterface
	}

	h, hooked := cfg.(Hook)
	if hooked {
		h.BeforeLoad()
	}
	err = p.Parse(cfg, options)
	if hooked {
		if hErr := h.AfterLoad(); err == nil {
			err = hErr
		}
	}
	return err
}
