// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/patrickascher/timetable/query/condition"
)

// UpdateBase can be embedded and changed for different providers.
type UpdateBase struct {
	Provider Provider

	UTable     string
	UColumns   []string
	UValues    map[string]interface{}
	UCondition condition.Condition
}

// Set the new column values.
func (u *UpdateBase) Set(values map[string]interface{}) Update {
	u.UValues = values
	return u
}

// Columns restricts the update to the given columns. By default all keys of Set are used.
func (u *UpdateBase) Columns(cols ...string) Update {
	u.UColumns = cols
	return u
}

// Condition replaces the where clauses. Limit, order, offset and joins are removed.
func (u *UpdateBase) Condition(c condition.Condition) Update {
	c.Reset(condition.LIMIT, condition.ORDER, condition.OFFSET, condition.JOIN)
	u.UCondition = c
	return u
}

// Where adds an AND clause.
func (u *UpdateBase) Where(clause string, args ...interface{}) Update {
	if u.UCondition == nil {
		u.UCondition = condition.New()
	}
	u.UCondition.SetWhere(clause, args...)
	return u
}

// String returns the rendered statement and arguments.
func (u *UpdateBase) String() (string, []interface{}, error) {
	return u.Render()
}

// Exec the update statement.
func (u *UpdateBase) Exec() (sql.Result, error) {
	stmt, args, err := u.Render()
	if err != nil {
		return nil, err
	}
	return execOne(u.Provider, stmt, args)
}

// Render the update statement.
// Error returns if no value is set, a column has no value or the where clause is missing.
func (u *UpdateBase) Render() (string, []interface{}, error) {
	if len(u.UValues) == 0 {
		return "", nil, fmt.Errorf(ErrValueMissing, "update", u.UTable)
	}

	columns := addColumns(u.UColumns, u.UValues)
	set := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		val, ok := u.UValues[strings.TrimPrefix(column, u.UTable+".")]
		if !ok {
			return "", nil, fmt.Errorf(ErrColumn, column, u.UTable)
		}
		set = append(set, u.Provider.QuoteIdentifier(column)+" = "+condition.PLACEHOLDER)
		args = append(args, val)
	}

	where, whereArgs, err := renderWhere(u.UCondition)
	if err != nil {
		return "", nil, err
	}
	if where == "" {
		return "", nil, fmt.Errorf(ErrNoCondition, "update", u.UTable)
	}

	stmt := "UPDATE " + u.Provider.QuoteIdentifier(u.UTable) + " SET " + strings.Join(set, ", ") + " " + where
	return condition.ReplacePlaceholders(stmt, u.Provider.Placeholder()), append(args, whereArgs...), nil
}
