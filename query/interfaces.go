// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"context"
	"database/sql"

	"github.com/patrickascher/timetable/logger"
	"github.com/patrickascher/timetable/query/condition"
)

// Builder is the entry point to a configured database.
type Builder interface {
	SetLogger(logger.Manager)
	Query() Query
	Config() Config
	QuoteIdentifier(string) string
	Ping(context.Context) error
	Close() error
}

// Provider must be implemented by every database provider.
type Provider interface {
	Open() error
	Config() Config
	Placeholder() condition.Placeholder
	QuoteIdentifier(...string) string
	QuoteIdentifierChar() string
	SetLogger(logger.Manager)
	// ConstraintError converts a driver error into a *ConstraintError, if it is one.
	ConstraintError(error) error

	Query
	Query() Query
}

// Query holds an optional transaction and creates the statements.
type Query interface {
	Tx() error
	HasTx() bool
	Commit() error
	Rollback() error

	DB() *sql.DB
	Tables() ([]string, error)

	// Exec, First and All run raw statements with the ? placeholder.
	Exec([]string, [][]interface{}) ([]sql.Result, error)
	First(string, []interface{}) (*sql.Row, error)
	All(string, []interface{}) (*sql.Rows, error)

	Select(string) Select
	Insert(string) Insert
	Update(string) Update
	Delete(string) Delete
	Information(string) Information
}

type Insert interface {
	Batch(int) Insert
	Columns(...string) Insert
	Values([]map[string]interface{}) Insert

	String() ([]string, [][]interface{}, error)
	Exec() ([]sql.Result, error)
}

type Update interface {
	Set(map[string]interface{}) Update
	Columns(...string) Update
	Condition(condition.Condition) Update
	Where(string, ...interface{}) Update

	String() (string, []interface{}, error)
	Exec() (sql.Result, error)
}

type Delete interface {
	Condition(c condition.Condition) Delete
	Where(string, ...interface{}) Delete

	String() (string, []interface{}, error)
	Exec() (sql.Result, error)
}

type Select interface {
	Columns(...string) Select
	First() (*sql.Row, error)
	All() (*sql.Rows, error)
	String() (string, []interface{}, error)

	Condition(c condition.Condition) Select
	Join(joinType int, table string, condition string, args ...interface{}) Select
	Where(condition string, args ...interface{}) Select
	Order(order ...string) Select
	Limit(limit int) Select
	Offset(offset int) Select
}

// Information about a table.
type Information interface {
	Describe(columns ...string) ([]Column, error)
	ForeignKey() ([]ForeignKey, error)
}

// Type of a column.
type Type interface {
	Kind() string
	Raw() string
}
