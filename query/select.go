// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"database/sql"
	"strings"

	"github.com/patrickascher/timetable/query/condition"
)

// RowID is the implicit row id column of SQLite tables.
// Ordering by it returns the rows in insertion order.
const RowID = "rowid"

// SelectBase can be embedded and changed for different providers.
type SelectBase struct {
	Provider Provider

	STable     string
	SColumns   []string
	SCondition condition.Condition
}

// Columns define the select list. Without columns * is selected.
func (s *SelectBase) Columns(columns ...string) Select {
	s.SColumns = columns
	return s
}

// First returns the first row. Limit and offset are removed.
func (s *SelectBase) First() (*sql.Row, error) {
	if s.SCondition != nil {
		s.SCondition.Reset(condition.LIMIT, condition.OFFSET)
	}
	stmt, args, err := s.Render()
	if err != nil {
		return nil, err
	}
	return s.Provider.First(stmt, args)
}

// All returns the sql.Rows. The caller must close them.
func (s *SelectBase) All() (*sql.Rows, error) {
	stmt, args, err := s.Render()
	if err != nil {
		return nil, err
	}
	return s.Provider.All(stmt, args)
}

// Render the select statement.
func (s *SelectBase) Render() (string, []interface{}, error) {
	columns := s.SColumns
	if len(columns) == 0 {
		columns = []string{DbExpr("*")}
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(s.Provider.QuoteIdentifier(columns...))
	sb.WriteString(" FROM ")
	sb.WriteString(s.Provider.QuoteIdentifier(s.STable))

	if s.SCondition == nil {
		return sb.String(), nil, nil
	}
	stmt, args, err := s.SCondition.Render(s.Provider.Placeholder())
	if err != nil {
		return "", nil, err
	}
	if stmt != "" {
		sb.WriteString(" ")
		sb.WriteString(stmt)
	}
	return sb.String(), args, nil
}

// String returns the rendered statement and arguments.
func (s *SelectBase) String() (string, []interface{}, error) {
	return s.Render()
}

// Condition replaces the complete condition.
func (s *SelectBase) Condition(c condition.Condition) Select {
	s.SCondition = c
	return s
}

// Join the table, which is quoted. See condition.SetJoin.
func (s *SelectBase) Join(joinType int, table string, clause string, args ...interface{}) Select {
	s.condition().SetJoin(joinType, s.Provider.QuoteIdentifier(table), clause, args...)
	return s
}

// Where adds an AND clause.
func (s *SelectBase) Where(clause string, args ...interface{}) Select {
	s.condition().SetWhere(clause, args...)
	return s
}

// Order by the given columns. A `-` prefix sorts descending.
// Plain column names are quoted, entries with a direction keyword or DbExpr are used as they are.
func (s *SelectBase) Order(order ...string) Select {
	quoted := make([]string, len(order))
	for i, o := range order {
		desc := strings.HasPrefix(o, "-")
		name := strings.TrimPrefix(o, "-")
		switch {
		case strings.ContainsRune(name, ' '), name == "":
			quoted[i] = o
			continue
		case strings.HasPrefix(name, dbExpr):
			name = name[len(dbExpr):]
		default:
			name = s.Provider.QuoteIdentifier(name)
		}
		if desc {
			name = "-" + name
		}
		quoted[i] = name
	}
	s.condition().SetOrder(quoted...)
	return s
}

// Limit the result rows.
func (s *SelectBase) Limit(limit int) Select {
	s.condition().SetLimit(limit)
	return s
}

// Offset of the result rows.
func (s *SelectBase) Offset(offset int) Select {
	s.condition().SetOffset(offset)
	return s
}

// condition returns the condition and creates it on first use.
func (s *SelectBase) condition() condition.Condition {
	if s.SCondition == nil {
		s.SCondition = condition.New()
	}
	return s.SCondition
}
