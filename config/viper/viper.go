// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package viper is the config provider on top of https://github.com/spf13/viper.
// Files are read into the configuration struct, environment variables override file values
// and an optional watcher reloads the struct on file changes.
package viper

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/patrickascher/timetable/config"
	"github.com/patrickascher/timetable/registry"
	"github.com/spf13/viper"
)

// init registers the viper provider.
func init() {
	err := registry.Set(config.VIPER, new(viperProvider))
	if err != nil {
		log.Fatal(err)
	}
}

// Error messages
var (
	ErrOptions   = errors.New("viper-provider: options must be of type viper.Options")
	ErrMandatory = errors.New("viper-provider: viper.Options file-name, path and type are mandatory")
)

// Options for the viper provider.
type Options struct {
	// FileName of the configuration, including the extension.
	FileName string
	// FileType of the configuration (yaml, json, toml, ...).
	FileType string
	// FilePath to look into.
	FilePath string
	// Watch for file changes.
	Watch bool
	// WatchCallback is called after the config struct was reloaded.
	WatchCallback func(cfg interface{}, viper *viper.Viper, e fsnotify.Event)
	// EnvPrefix
	EnvPrefix string
	// EnvAutomatic check if environment variables match any of the existing keys.
	EnvAutomatic bool
	// EnvBind binds a Viper key to a ENV variable.
	EnvBind []string
}

// FileOptions splits a config file path into the mandatory options.
// The file type is the extension of the file.
func FileOptions(file string) Options {
	return Options{
		FileName: filepath.Base(file),
		FilePath: filepath.Dir(file),
		FileType: strings.TrimPrefix(filepath.Ext(file), "."),
	}
}

type viperProvider struct{}

// Parse reads the file of the options into cfg. Values which are not part of the file are kept.
// With Options.Watch, cfg is reloaded on every file change and the WatchCallback is called afterwards.
// If cfg implements config.Hook, the hooks run on every reload as well.
func (vp *viperProvider) Parse(cfg interface{}, opt interface{}) error {
	options, ok := opt.(Options)
	if !ok {
		return ErrOptions
	}
	if options.FileName == "" || options.FilePath == "" || options.FileType == "" {
		return ErrMandatory
	}

	name, err := filepath.Abs(filepath.Join(options.FilePath, options.FileName))
	if err == nil {
		_, err = os.Stat(name)
	}
	if err != nil {
		return fmt.Errorf("viper-provider: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(name)
	v.SetConfigType(options.FileType)
	if options.EnvPrefix != "" {
		v.SetEnvPrefix(options.EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	}
	for _, key := range options.EnvBind {
		if err = v.BindEnv(key); err != nil {
			return fmt.Errorf("viper-provider: %w", err)
		}
	}
	if options.EnvAutomatic {
		v.AutomaticEnv()
	}

	if err = v.ReadInConfig(); err != nil {
		return fmt.Errorf("viper-provider: %w", err)
	}
	if err = v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("viper-provider: %w", err)
	}

	if options.Watch {
		var mu sync.Mutex
		v.OnConfigChange(func(e fsnotify.Event) {
			mu.Lock()
			defer mu.Unlock()
			if err := reload(v, cfg); err != nil {
				log.Printf("viper-provider: reload %s: %s", e.Name, err)
				return
			}
			if options.WatchCallback != nil {
				options.WatchCallback(cfg, v, e)
			}
		})
		v.WatchConfig()
	}
	return nil
}

// reload unmarshals the changed file into cfg.
func reload(v *viper.Viper, cfg interface{}) error {
	h, hooked := cfg.(config.Hook)
	if hooked {
		h.BeforeLoad()
	}
	err := v.Unmarshal(cfg)
	if hooked {
		if hErr := h.AfterLoad(); err == nil {
			err = hErr
		}
	}
	return err
}
