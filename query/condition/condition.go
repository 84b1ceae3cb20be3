// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package condition builds the JOIN, WHERE, ORDER BY, LIMIT and OFFSET part of a statement.
package condition

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Error messages.
var (
	ErrValue               = "query: %s was called with no value(s)"
	ErrJoinType            = "query: join type %d is not allowed"
	ErrJoinTable           = errors.New("query: join table is mandatory")
	ErrPlaceholderMismatch = "query: %v placeholder(%d) and arguments(%d) does not fit"
)

// Condition parts, used by Reset.
const (
	WHERE = iota + 1
	LIMIT
	ORDER
	OFFSET
	JOIN
)

// Join types.
const (
	LEFT = iota + 1
	INNER
)

var joinKeyword = map[int]string{
	LEFT:  "LEFT JOIN",
	INNER: "INNER JOIN",
}

// Clause is a rendered WHERE or JOIN part with its arguments.
type Clause struct {
	SQL  string
	Args []interface{}
}

// Condition of a statement.
// The first error of a setter is kept and returned by Render.
type Condition interface {
	SetWhere(clause string, args ...interface{}) Condition
	Where() []Clause
	SetJoin(joinType int, table string, on string, args ...interface{}) Condition
	Join() []Clause
	SetLimit(limit int) Condition
	Limit() int
	SetOffset(offset int) Condition
	Offset() int
	SetOrder(order ...string) Condition
	Order() []string

	Reset(...int)
	Error() error
	Render(p Placeholder) (string, []interface{}, error)
}

type condition struct {
	where  []Clause
	join   []Clause
	order  []string
	limit  int
	offset int
	err    error
}

// New returns an empty Condition.
func New() Condition {
	return &condition{}
}

func (c *condition) Error() error {
	return c.err
}

func (c *condition) setError(err error) {
	if c.err == nil {
		c.err = err
	}
}

// SetWhere adds a clause, multiple clauses are joined by AND.
// A slice argument is expanded into its elements:
//		c.SetWhere("id IN (?)", []int{10, 11, 12})
func (c *condition) SetWhere(clause string, args ...interface{}) Condition {
	clause, args, err := clauseManipulation(clause, args)
	if err != nil {
		c.setError(err)
	}
	c.where = append(c.where, Clause{SQL: clause, Args: args})
	return c
}

func (c *condition) Where() []Clause {
	return c.where
}

// SetJoin adds a LEFT or INNER join of the table on the given clause.
func (c *condition) SetJoin(joinType int, table string, on string, args ...interface{}) Condition {
	if table == "" {
		c.setError(ErrJoinTable)
	}
	keyword, ok := joinKeyword[joinType]
	if !ok {
		c.setError(fmt.Errorf(ErrJoinType, joinType))
	}

	clause, args, err := clauseManipulation(keyword+" "+table+" ON "+strings.TrimSpace(on), args)
	if err != nil {
		c.setError(err)
	}
	c.join = append(c.join, Clause{SQL: clause, Args: args})
	return c
}

func (c *condition) Join() []Clause {
	return c.join
}

func (c *condition) SetLimit(limit int) Condition {
	c.limit = limit
	return c
}

func (c *condition) Limit() int {
	return c.limit
}

func (c *condition) SetOffset(offset int) Condition {
	c.offset = offset
	return c
}

func (c *condition) Offset() int {
	return c.offset
}

// SetOrder replaces the order.
// A `-` prefix orders descending, entries without direction are ordered ascending.
func (c *condition) SetOrder(order ...string) Condition {
	c.order = nil
	if len(order) == 0 || (len(order) == 1 && order[0] == "") {
		c.setError(fmt.Errorf(ErrValue, "SetOrder"))
		return c
	}

	c.order = make([]string, 0, len(order))
	for _, o := range order {
		if strings.HasPrefix(o, "-") {
			c.order = append(c.order, o[1:]+" DESC")
			continue
		}
		fields := strings.Fields(o)
		if len(fields) > 1 {
			if dir := strings.ToUpper(fields[len(fields)-1]); dir == "ASC" || dir == "DESC" {
				c.order = append(c.order, strings.Join(fields[:len(fields)-1], " ")+" "+dir)
				continue
			}
		}
		c.order = append(c.order, o+" ASC")
	}
	return c
}

func (c *condition) Order() []string {
	return c.order
}

// Reset the given parts. Without argument the complete condition and its error are reset.
func (c *condition) Reset(parts ...int) {
	if len(parts) == 0 {
		*c = condition{}
		return
	}
	for _, p := range parts {
		switch p {
		case WHERE:
			c.where = nil
		case JOIN:
			c.join = nil
		case LIMIT:
			c.limit = 0
		case OFFSET:
			c.offset = 0
		case ORDER:
			c.order = nil
		}
	}
}

// Render the condition with the placeholder of the provider.
func (c *condition) Render(p Placeholder) (string, []interface{}, error) {
	if c.err != nil {
		return "", nil, c.err
	}

	var parts []string
	var args []interface{}
	for _, j := range c.join {
		parts = append(parts, j.SQL)
		args = append(args, j.Args...)
	}
	if len(c.where) > 0 {
		where := make([]string, len(c.where))
		for i, w := range c.where {
			where[i] = w.SQL
			args = append(args, w.Args...)
		}
		parts = append(parts, "WHERE "+strings.Join(where, " AND "))
	}
	if len(c.order) > 0 {
		parts = append(parts, "ORDER BY "+strings.Join(c.order, ", "))
	}
	if c.limit > 0 {
		parts = append(parts, "LIMIT "+strconv.Itoa(c.limit))
	}
	if c.offset > 0 {
		parts = append(parts, "OFFSET "+strconv.Itoa(c.offset))
	}

	return ReplacePlaceholders(strings.Join(parts, " "), p), args, nil
}

// clauseManipulation is a helper for array or slice arguments.
// "id IN (?)" with []int{1,2} becomes "id IN (?, ?)" with the arguments 1, 2.
func clauseManipulation(clause string, args []interface{}) (string, []interface{}, error) {
	clause = strings.TrimSpace(clause)

	if count := strings.Count(clause, PLACEHOLDER); count != len(args) {
		return "", nil, fmt.Errorf(ErrPlaceholderMismatch, clause, count, len(args))
	}

	if len(args) == 0 {
		return clause, nil, nil
	}

	parts := strings.SplitAfter(clause, PLACEHOLDER)
	var rvArgs []interface{}
	for i, arg := range args {
		v := reflect.ValueOf(arg)
		if _, isBytes := arg.([]byte); !isBytes && (v.Kind() == reflect.Array || v.Kind() == reflect.Slice) {
			if v.Len() == 0 {
				return "", nil, fmt.Errorf(ErrValue, clause)
			}
			parts[i] = strings.Replace(parts[i], PLACEHOLDER, PLACEHOLDER+strings.Repeat(", "+PLACEHOLDER, v.Len()-1), 1)
			for n := 0; n < v.Len(); n++ {
				rvArgs = append(rvArgs, v.Index(n).Interface())
			}
			continue
		}
		rvArgs = append(rvArgs, arg)
	}

	return strings.Join(parts, ""), rvArgs, nil
}
