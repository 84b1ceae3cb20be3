// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/patrickascher/timetable/logger"
)

// Error messages.
var (
	ErrDbNotSet = errors.New("query: DB is not set")
)

// Base struct includes the configuration, logger and transaction logic.
// Providers embed it and set themselves as Provider.
type Base struct {
	db       *sql.DB
	Config   Config
	Logger   logger.Manager
	Provider Provider

	TransactionBase
}

// SetDB sets the *sql.DB.
func (b *Base) SetDB(db *sql.DB) {
	b.db = db
}

// DB returns the *sql.DB.
func (b *Base) DB() *sql.DB {
	return b.db
}

// QuoteIdentifier quotes every string with the providers quote-identifier-character.
// If query.DbExpr was used, the string will not be quoted.
// "main.users AS u" will be converted to "main"."users" AS "u"
func (b *Base) QuoteIdentifier(columns ...string) string {
	quote := b.Provider.QuoteIdentifierChar()
	rv := make([]string, 0, len(columns))
	for _, c := range columns {
		if strings.HasPrefix(c, dbExpr) {
			rv = append(rv, c[1:])
			continue
		}

		c = strings.Replace(c, quote, "", -1)

		// alias "x AS y" or "x y"
		alias := strings.Fields(c)
		if len(alias) == 0 {
			rv = append(rv, quote+quote)
			continue
		}
		parts := strings.Split(alias[0], ".")
		for i := range parts {
			parts[i] = quote + parts[i] + quote
		}
		col := strings.Join(parts, ".")
		if len(alias) >= 2 {
			col += " AS " + quote + alias[len(alias)-1] + quote
		}
		rv = append(rv, col)
	}

	return strings.Join(rv, ", ")
}

// Tx will create a sql.Tx.
// Error will return if a tx was already set or the provider returns an error.
func (b *Base) Tx() error {
	if b.HasTx() {
		return ErrTxExists
	}
	if b.db == nil {
		return ErrDbNotSet
	}
	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	b.TransactionBase.Tx = tx
	return nil
}

// First will return a sql.Row.
// If a logger is defined, the query will be logged on `DEBUG` lvl with a timer.
// If a transaction is set, it will run in the transaction.
func (b *Base) First(stmt string, args []interface{}) (*sql.Row, error) {
	if b.db == nil {
		return nil, ErrDbNotSet
	}
	defer b.debug(stmt, args)()

	if b.HasTx() {
		return b.TransactionBase.Tx.QueryRow(stmt, args...), nil
	}
	return b.db.QueryRow(stmt, args...), nil
}

// All will return the sql.Rows.
// If a logger is defined, the query will be logged on `DEBUG` lvl with a timer.
// If a transaction is set, it will run in the transaction.
func (b *Base) All(stmt string, args []interface{}) (*sql.Rows, error) {
	if b.db == nil {
		return nil, ErrDbNotSet
	}
	defer b.debug(stmt, args)()

	if b.HasTx() {
		return b.TransactionBase.Tx.Query(stmt, args...)
	}
	return b.db.Query(stmt, args...)
}

// Exec will execute the statements.
// Because of the Insert.Batch, multiple statements and arguments can be added and therefore an slice of sql.Result returns.
// If a transaction is set, it will run in the transaction and the caller decides about commit or rollback.
// If its a batch exec and no transaction is set, one will be created, committed on success and rolled back on error.
// Constraint violations are returned as *ConstraintError.
func (b *Base) Exec(stmt []string, args [][]interface{}) ([]sql.Result, error) {
	if b.db == nil {
		return nil, ErrDbNotSet
	}
	defer b.debug(strings.Join(stmt, "; "), nil)()

	var autoCommit bool
	if !b.HasTx() && len(stmt) > 1 {
		if err := b.Tx(); err != nil {
			return nil, err
		}
		autoCommit = true
	}

	results := make([]sql.Result, 0, len(stmt))
	for i := range stmt {
		var arg []interface{}
		if i < len(args) {
			arg = args[i]
		}

		var res sql.Result
		var err error
		if b.HasTx() {
			res, err = b.TransactionBase.Tx.Exec(stmt[i], arg...)
		} else {
			res, err = b.db.Exec(stmt[i], arg...)
		}
		if err != nil {
			if autoCommit {
				if rErr := b.Rollback(); rErr != nil {
					return nil, rErr
				}
			}
			return nil, b.Provider.ConstraintError(err)
		}
		results = append(results, res)
	}

	if autoCommit {
		return results, b.Commit()
	}
	return results, nil
}

// Open will set some basic sql settings and check the connection.
// All defined Config.PreQuery statements will run here.
func (b *Base) Open() error {
	if b.db == nil {
		return ErrDbNotSet
	}

	b.db.SetMaxIdleConns(b.Config.MaxIdleConnections)
	b.db.SetMaxOpenConns(b.Config.MaxOpenConnections)
	b.db.SetConnMaxLifetime(b.Config.MaxConnLifetime)

	if err := b.db.Ping(); err != nil {
		return err
	}

	for _, v := range b.Config.PreQuery {
		if _, err := b.db.Exec(v); err != nil {
			return fmt.Errorf("query: %w", err)
		}
	}

	return nil
}

// SetLogger of the provider.
func (b *Base) SetLogger(logger logger.Manager) {
	b.Logger = logger
}

// debug returns a func which logs the statement with its duration.
func (b *Base) debug(stmt string, args []interface{}) func() {
	if b.Logger == nil {
		return func() {}
	}
	log := b.Logger.WithTimer()
	return func() {
		if len(args) > 0 {
			log = log.WithFields(logger.Fields{"args": args})
		}
		log.Debug(stmt)
	}
}

// addColumns is a helper to create the column list out of the value map.
// The columns are sorted, to get the same statement for the same value keys.
func addColumns(columns []string, values map[string]interface{}) []string {
	if len(columns) == 0 {
		for column := range values {
			columns = append(columns, column)
		}
		sort.Strings(columns)
	}
	return columns
}
