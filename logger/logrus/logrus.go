// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package logrus is the provider of the logger package. Its a wrapper for https://github.com/sirupsen/logrus.
// The logrus logger can be configured by the exported Instance field.
package logrus

import (
	"io"
	"os"

	"github.com/patrickascher/timetable/logger"
	"github.com/sirupsen/logrus"
)

// Formats of the log output.
const (
	TEXT = "text"
	JSON = "json"
)

// Options of the provider.
type Options struct {
	// Output writer, default os.Stderr.
	Output io.Writer
	// Format "text" (default) or "json".
	Format string
}

// New creates a new logrus provider.
func New(opt Options) *provider {
	log := logrus.New()
	log.SetLevel(logrus.TraceLevel)

	log.Out = os.Stderr
	if opt.Output != nil {
		log.Out = opt.Output
	}

	if opt.Format == JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return &provider{Instance: log}
}

type provider struct {
	Instance *logrus.Logger
}

// Log passes the entry to logrus.
func (p *provider) Log(entry logger.Entry) {
	e := p.Instance.WithFields(entry.Fields.Map()).WithTime(entry.Timestamp)
	switch entry.Level {
	case logger.TRACE:
		e.Trace(entry.Message)
	case logger.DEBUG:
		e.Debug(entry.Message)
	case logger.INFO:
		e.Info(entry.Message)
	case logger.WARNING:
		e.Warning(entry.Message)
	case logger.ERROR:
		e.Error(entry.Message)
	case logger.PANIC:
		e.Panic(entry.Message)
	}
}
