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

// MaxVariables is the lowest bound parameter limit of SQLite builds (SQLITE_MAX_VARIABLE_NUMBER).
// Inserts without an explicit batch size are split so that no statement exceeds it.
const MaxVariables = 999

// InsertBase can be embedded and changed for different providers.
type InsertBase struct {
	Provider Provider

	ITable     string
	IValues    []map[string]interface{}
	IColumns   []string
	IBatchSize int
}

// Batch sets the number of rows per statement.
func (i *InsertBase) Batch(size int) Insert {
	i.IBatchSize = size
	return i
}

// Columns define the insert columns. By default the sorted keys of the first value row are used.
func (i *InsertBase) Columns(c ...string) Insert {
	i.IColumns = c
	return i
}

// Values to insert. Every row must contain all columns.
func (i *InsertBase) Values(values []map[string]interface{}) Insert {
	i.IValues = values
	return i
}

// String returns the rendered statements and their arguments.
func (i *InsertBase) String() ([]string, [][]interface{}, error) {
	return i.Render()
}

// Exec the insert. Multiple batches run in one transaction.
func (i *InsertBase) Exec() ([]sql.Result, error) {
	stmt, args, err := i.Render()
	if err != nil {
		return nil, err
	}
	return i.Provider.Exec(stmt, args)
}

// Render one statement per batch.
func (i *InsertBase) Render() ([]string, [][]interface{}, error) {
	if len(i.IValues) == 0 {
		return nil, nil, fmt.Errorf(ErrValueMissing, "insert", i.ITable)
	}
	columns := addColumns(i.IColumns, i.IValues[0])

	head := "INSERT INTO " + i.Provider.QuoteIdentifier(i.ITable) + " (" + i.Provider.QuoteIdentifier(columns...) + ") VALUES "
	row := "(" + strings.TrimSuffix(strings.Repeat(condition.PLACEHOLDER+", ", len(columns)), ", ") + ")"

	size := i.batchSize(len(columns))
	var stmts []string
	var args [][]interface{}
	for start := 0; start < len(i.IValues); start += size {
		end := start + size
		if end > len(i.IValues) {
			end = len(i.IValues)
		}

		batch := make([]interface{}, 0, (end-start)*len(columns))
		for _, values := range i.IValues[start:end] {
			for _, column := range columns {
				val, ok := values[column]
				if !ok {
					return nil, nil, fmt.Errorf(ErrColumn, column, i.ITable)
				}
				batch = append(batch, val)
			}
		}

		stmt := head + strings.TrimSuffix(strings.Repeat(row+", ", end-start), ", ")
		stmts = append(stmts, condition.ReplacePlaceholders(stmt, i.Provider.Placeholder()))
		args = append(args, batch)
	}

	return stmts, args, nil
}

// batchSize returns the configured size or the most rows that fit into MaxVariables.
func (i *InsertBase) batchSize(columns int) int {
	if i.IBatchSize > 0 {
		return i.IBatchSize
	}
	if columns == 0 || columns > MaxVariables {
		return 1
	}
	return MaxVariables / columns
}
