// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"database/sql"
	"fmt"

	"github.com/patrickascher/timetable/query/condition"
)

// DeleteBase can be embedded and changed for different providers.
type DeleteBase struct {
	Provider Provider

	DTable     string
	DCondition condition.Condition
}

// Condition replaces the where clauses. Limit, order, offset and joins are removed.
func (d *DeleteBase) Condition(c condition.Condition) Delete {
	c.Reset(condition.LIMIT, condition.ORDER, condition.OFFSET, condition.JOIN)
	d.DCondition = c
	return d
}

// Where adds an AND clause.
func (d *DeleteBase) Where(clause string, args ...interface{}) Delete {
	if d.DCondition == nil {
		d.DCondition = condition.New()
	}
	d.DCondition.SetWhere(clause, args...)
	return d
}

// String returns the rendered statement and arguments.
func (d *DeleteBase) String() (string, []interface{}, error) {
	return d.Render()
}

// Exec the delete statement.
func (d *DeleteBase) Exec() (sql.Result, error) {
	stmt, args, err := d.Render()
	if err != nil {
		return nil, err
	}
	return execOne(d.Provider, stmt, args)
}

// Render the delete statement.
// A delete without where clause is refused.
func (d *DeleteBase) Render() (string, []interface{}, error) {
	where, args, err := renderWhere(d.DCondition)
	if err != nil {
		return "", nil, err
	}
	if where == "" {
		return "", nil, fmt.Errorf(ErrNoCondition, "delete", d.DTable)
	}
	stmt := "DELETE FROM " + d.Provider.QuoteIdentifier(d.DTable) + " " + where
	return condition.ReplacePlaceholders(stmt, d.Provider.Placeholder()), args, nil
}

// renderWhere renders the where clauses of c with the PLACEHOLDER character.
// The caller replaces the placeholders of the complete statement.
func renderWhere(c condition.Condition) (string, []interface{}, error) {
	if c == nil || len(c.Where()) == 0 {
		if c != nil {
			return "", nil, c.Error()
		}
		return "", nil, nil
	}
	return c.Render(condition.Placeholder{Char: condition.PLACEHOLDER})
}

// execOne runs a single statement and returns its result.
func execOne(p Provider, stmt string, args []interface{}) (sql.Result, error) {
	res, err := p.Exec([]string{stmt}, [][]interface{}{args})
	if err != nil {
		return nil, err
	}
	return res[0], nil
}
