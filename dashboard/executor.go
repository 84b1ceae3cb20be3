// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dashboard

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/patrickascher/timetable/logger"
	"github.com/patrickascher/timetable/query"
)

// Executor creates, updates and deletes rows of a table.
// Every operation runs in its own transaction.
// The returned message is always set and meant for the user, the error is set if the operation failed.
type Executor struct {
	builder      query.Builder
	introspector *Introspector
	log          logger.Manager
}

// NewExecutor returns an Executor for the builder.
func NewExecutor(b query.Builder, log logger.Manager) *Executor {
	return &Executor{builder: b, introspector: NewIntrospector(b), log: log}
}

// Create inserts the non-empty values as new row.
func (e *Executor) Create(table string, values Row) (string, error) {
	t, err := e.introspector.Table(table)
	if err != nil {
		return e.storageMessage(table, err)
	}

	columns, set := fields(t, values)
	if len(columns) == 0 {
		return "Please provide at least one value for creating a new entry.", ErrNoFields
	}

	err = e.tx(func(q query.Query) error {
		_, err := q.Insert(table).Columns(columns...).Values([]map[string]interface{}{set}).Exec()
		return err
	})
	if err != nil {
		return e.errorMessage(table, err, "Error: %s")
	}
	return fmt.Sprintf("New entry created successfully in %s.", table), nil
}

// Update sets the non-empty values on the selected row.
// The row is identified by the primary key values of the selected row before any edit.
// A selection which matches no row is reported with ErrNoRow.
func (e *Executor) Update(table string, selected Row, values Row) (string, error) {
	if selected == nil {
		return "Please select a row to update.", ErrNoSelection
	}

	t, err := e.introspector.Table(table)
	if err != nil {
		return e.storageMessage(table, err)
	}
	if !hasKeys(t, selected) {
		return "Please select a row to update.", ErrNoSelection
	}

	columns, set := fields(t, values)
	if len(columns) == 0 {
		return "Please provide at least one value to update.", ErrNoFields
	}
	if len(t.PrimaryKeys()) == 0 {
		return e.storageMessage(table, fmt.Errorf(ErrNoPrimaryKey, table))
	}

	err = e.tx(func(q query.Query) error {
		u := q.Update(table).Columns(columns...).Set(set)
		for _, pk := range t.PrimaryKeys() {
			u.Where(e.builder.QuoteIdentifier(pk)+" = ?", coerce(selected[pk]))
		}
		return affected(u.Exec())
	})
	if errors.Is(err, ErrNoRow) {
		return fmt.Sprintf("The selected entry does not exist anymore in %s.", table), err
	}
	if err != nil {
		return e.errorMessage(table, err, "Error: %s")
	}
	return fmt.Sprintf("Entry updated successfully in %s.", table), nil
}

// Delete removes the selected row by its primary key values.
func (e *Executor) Delete(table string, selected Row) (string, error) {
	if selected == nil {
		return "Please select a row to delete.", ErrNoSelection
	}

	t, err := e.introspector.Table(table)
	if err != nil {
		return e.storageMessage(table, err)
	}
	if len(t.PrimaryKeys()) == 0 {
		return e.storageMessage(table, fmt.Errorf(ErrNoPrimaryKey, table))
	}
	if !hasKeys(t, selected) {
		return "Please select a row to delete.", ErrNoSelection
	}

	err = e.tx(func(q query.Query) error {
		d := q.Delete(table)
		for _, pk := range t.PrimaryKeys() {
			d.Where(e.builder.QuoteIdentifier(pk)+" = ?", coerce(selected[pk]))
		}
		return affected(d.Exec())
	})
	if errors.Is(err, ErrNoRow) {
		return fmt.Sprintf("The selected entry does not exist anymore in %s.", table), err
	}
	if err != nil {
		return e.errorMessage(table, err, "Error: This record cannot be deleted due to foreign key constraints. %s")
	}
	return fmt.Sprintf("Entry deleted successfully from %s.", table), nil
}

// affected returns ErrNoRow if the statement changed nothing.
func affected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoRow
	}
	return nil
}

// hasKeys reports if the row has a value for every primary key.
func hasKeys(t Table, row Row) bool {
	for _, pk := range t.PrimaryKeys() {
		if v, ok := row[pk]; !ok || v == nil {
			return false
		}
	}
	return true
}

// tx runs fn in a new transaction.
func (e *Executor) tx(fn func(query.Query) error) error {
	err := query.Transaction(e.builder, fn)
	if err != nil {
		e.log.WithFields(logger.Fields{"error": err.Error()}).Debug("transaction rolled back")
	}
	return err
}

// errorMessage formats constraint violations with the given format, all other errors as database error.
func (e *Executor) errorMessage(table string, err error, format string) (string, error) {
	var cErr *query.ConstraintError
	if !errors.As(err, &cErr) {
		return e.storageMessage(table, err)
	}

	kind := Constraint
	switch {
	case errors.Is(err, query.ErrUnique):
		kind = DuplicateKey
	case errors.Is(err, query.ErrForeignKey):
		kind = ReferentialIntegrity
	}
	e.log.WithFields(logger.Fields{"table": table}).Warning(cErr.Message)
	return fmt.Sprintf(format, cErr.Message), &OperationError{Kind: kind, Table: table, Err: err}
}

func (e *Executor) storageMessage(table string, err error) (string, error) {
	e.log.WithFields(logger.Fields{"table": table}).Error(err.Error())
	return fmt.Sprintf("Database error: %s", err), &OperationError{Kind: Storage, Table: table, Err: err}
}

// fields returns the table columns with a non-empty value in schema order.
// Unknown columns are ignored.
func fields(t Table, values Row) ([]string, map[string]interface{}) {
	var columns []string
	set := map[string]interface{}{}
	for _, c := range t.Columns {
		v, ok := values[c.Name]
		if !ok || empty(v) {
			continue
		}
		columns = append(columns, c.Name)
		set[c.Name] = coerce(v)
	}
	return columns, set
}

// coerce converts decoded json numbers, integral values become int64.
func coerce(v interface{}) interface{} {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
			return int64(n)
		}
	}
	return v
}

func empty(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
