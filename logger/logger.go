// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package logger provides an interface for logging. It wraps existing go loggers with that interface.
// In that case, it is easy to change the log provider without breaking anything in the application.
// Log level, fields and time durations can be added.
//
// A Manager is always created explicitly with New and handed to the components which need it.
package logger

import (
	"fmt"
	"strings"
	"time"
)

// ErrLevel - Error message.
var ErrLevel = "logger: unknown log level %q"

// Level - the higher the more critical
const (
	TRACE Level = iota - 1
	DEBUG
	INFO
	WARNING
	ERROR
	PANIC
)

// Level type.
type Level int32

// String converts the level code.
func (lvl Level) String() string {
	switch lvl {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case PANIC:
		return "PANIC"
	default:
		return "unknown level"
	}
}

// ParseLevel converts a config string like "debug" or "WARNING" into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TRACE, nil
	case "DEBUG":
		return DEBUG, nil
	case "INFO", "":
		return INFO, nil
	case "WARNING", "WARN":
		return WARNING, nil
	case "ERROR":
		return ERROR, nil
	case "PANIC":
		return PANIC, nil
	}
	return INFO, fmt.Errorf(ErrLevel, s)
}

// Provider interface.
type Provider interface {
	Log(Entry)
}

// Manager interface.
type Manager interface {
	Trace(msg string)
	Debug(msg string)
	Info(msg string)
	Warning(msg string)
	Error(msg string)
	Panic(msg string)

	WithFields(Fields) Manager
	WithTimer() Manager

	SetLogLevel(Level)
}

// Fields can be used to add more details to a log message.
type Fields map[string]interface{}

// Map converts the Fields to a map[string]interface{}.
func (f Fields) Map() map[string]interface{} {
	return f
}

// Entry struct holds all information for the log message.
type Entry struct {
	Level     Level
	Timestamp time.Time
	Message   string
	Fields    Fields
}

// manager holds the provider and fields information.
// timer will be used for the duration calculation.
type manager struct {
	provider Provider
	fields   Fields
	timer    time.Time
	lvl      Level
}

// New creates a Manager for the provider.
// Only messages equal or greater than lvl will be passed to the provider.
func New(provider Provider, lvl Level) Manager {
	return &manager{provider: provider, lvl: lvl}
}

// SetLogLevel will define the log level.
func (m *manager) SetLogLevel(lvl Level) {
	m.lvl = lvl
}

// WithTimer will add the field "duration" to the Entry.
// It will create a new instance.
func (m *manager) WithTimer() Manager {
	instance := m.copy()
	instance.timer = time.Now()
	return instance
}

// WithFields will create a new Manager with the given fields merged into the existing ones.
func (m *manager) WithFields(fields Fields) Manager {
	instance := m.copy()
	instance.fields = make(Fields, len(m.fields)+len(fields))
	for k, v := range m.fields {
		instance.fields[k] = v
	}
	for k, v := range fields {
		instance.fields[k] = v
	}
	return instance
}

// Trace log.
func (m *manager) Trace(msg string) { m.log(TRACE, msg) }

// Debug log.
func (m *manager) Debug(msg string) { m.log(DEBUG, msg) }

// Info log.
func (m *manager) Info(msg string) { m.log(INFO, msg) }

// Warning log.
func (m *manager) Warning(msg string) { m.log(WARNING, msg) }

// Error log.
func (m *manager) Error(msg string) { m.log(ERROR, msg) }

// Panic log.
func (m *manager) Panic(msg string) { m.log(PANIC, msg) }

func (m *manager) copy() *manager {
	return &manager{provider: m.provider, fields: m.fields, timer: m.timer, lvl: m.lvl}
}

func (m *manager) log(lvl Level, msg string) {
	if lvl < m.lvl || m.provider == nil {
		return
	}

	e := Entry{Message: msg, Level: lvl, Timestamp: time.Now()}
	e.Fields = make(Fields, len(m.fields)+1)
	for k, v := range m.fields {
		e.Fields[k] = v
	}
	if !m.timer.IsZero() {
		e.Fields["duration"] = time.Since(m.timer)
	}

	m.provider.Log(e)
}
