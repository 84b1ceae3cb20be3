// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"database/sql"
	"errors"
	"fmt"
)

// Error messages.
var (
	ErrNoTx     = errors.New("query: no tx exists")
	ErrTxExists = errors.New("query: tx already exists")
	ErrRollback = "query: rollback failed (%s) after: %w"
)

// TransactionBase holds the sql.Tx of one query instance.
type TransactionBase struct {
	Tx *sql.Tx
}

// HasTx reports whether a sql.Tx is open.
func (t *TransactionBase) HasTx() bool {
	return t.Tx != nil
}

// Commit the open transaction.
func (t *TransactionBase) Commit() error {
	return t.finish((*sql.Tx).Commit)
}

// Rollback the open transaction.
func (t *TransactionBase) Rollback() error {
	return t.finish((*sql.Tx).Rollback)
}

// finish ends the transaction with fn. The tx is released even if fn fails.
func (t *TransactionBase) finish(fn func(*sql.Tx) error) error {
	if t.Tx == nil {
		return ErrNoTx
	}
	tx := t.Tx
	t.Tx = nil
	return fn(tx)
}

// Transaction runs fn on a new query instance inside a transaction.
// The transaction is committed if fn returns nil, otherwise it is rolled back and the fn error returns.
// A failing rollback is wrapped around the original error.
func Transaction(b Builder, fn func(Query) error) error {
	q := b.Query()
	if err := q.Tx(); err != nil {
		return err
	}
	if err := fn(q); err != nil {
		if rErr := q.Rollback(); rErr != nil {
			return fmt.Errorf(ErrRollback, rErr, err)
		}
		return err
	}
	return q.Commit()
}
