// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package query is a small sql statement builder on top of database/sql.
//
// Statements are written with the ? placeholder and rendered for the provider. Identifiers are quoted,
// large inserts are batched, tables can be introspected and driver integrity errors are classified
// as *ConstraintError. With a logger, every statement is logged with its duration on DEBUG level.
package query

import (
	"context"
	"fmt"

	"github.com/patrickascher/timetable/logger"
	"github.com/patrickascher/timetable/registry"
)

const (
	registryPrefix = "query_"
	dbExpr         = "!"
)

type providerFn func(Config) (Provider, error)

// Register a provider factory by name.
func Register(name string, p providerFn) error {
	return registry.Set(registryPrefix+name, p)
}

// New opens the database of the config with the registered provider.
func New(name string, config Config) (Builder, error) {
	r, err := registry.Get(registryPrefix + name)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	fn, ok := r.(providerFn)
	if !ok {
		return nil, fmt.Errorf("query: %s is no provider", name)
	}

	p, err := fn(config)
	if err == nil {
		err = p.Open()
	}
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return &builder{provider: p}, nil
}

// DbExpr marks s as expression, which is used unquoted.
func DbExpr(s string) string {
	return dbExpr + s
}

type builder struct {
	provider Provider
}

func (b *builder) SetLogger(l logger.Manager) {
	b.provider.SetLogger(l)
}

// Query returns a new query, which can hold its own transaction.
func (b *builder) Query() Query {
	return b.provider.Query()
}

func (b *builder) Config() Config {
	return b.provider.Config()
}

func (b *builder) QuoteIdentifier(name string) string {
	return b.provider.QuoteIdentifier(name)
}

// Ping checks the database connection.
func (b *builder) Ping(ctx context.Context) error {
	db := b.provider.DB()
	if db == nil {
		return ErrDbNotSet
	}
	return db.PingContext(ctx)
}

// Close the database handle.
func (b *builder) Close() error {
	if db := b.provider.DB(); db != nil {
		return db.Close()
	}
	return nil
}
