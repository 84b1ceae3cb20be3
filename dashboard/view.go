// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dashboard

import (
	"database/sql"
	"fmt"

	"github.com/patrickascher/timetable/query"
	"github.com/patrickascher/timetable/query/condition"
	"github.com/patrickascher/timetable/stringer"
)

// DescriptionSuffix is added to a foreign key column name for its resolved label.
const DescriptionSuffix = "_description"

// Row maps the column name to its value.
type Row map[string]interface{}

// ViewColumn is a column of the rendered table.
type ViewColumn struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// View of a table with the resolved foreign key labels.
type View struct {
	Table       string       `json:"table"`
	Title       string       `json:"title"`
	Columns     []ViewColumn `json:"columns"`
	Rows        []Row        `json:"rows"`
	PrimaryKeys []string     `json:"primaryKeys"`
}

// Header returns the column names.
func (v View) Header() []string {
	rv := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		rv[i] = c.Name
	}
	return rv
}

// Values returns the rows in column order.
func (v View) Values() [][]interface{} {
	rv := make([][]interface{}, 0, len(v.Rows))
	for _, r := range v.Rows {
		row := make([]interface{}, len(v.Columns))
		for i, c := range v.Columns {
			row[i] = r[c.ID]
		}
		rv = append(rv, row)
	}
	return rv
}

// Renderer loads the rows of a table.
type Renderer struct {
	builder      query.Builder
	introspector *Introspector
}

// NewRenderer returns a Renderer for the builder.
func NewRenderer(b query.Builder) *Renderer {
	return &Renderer{builder: b, introspector: NewIntrospector(b)}
}

// View renders the table with one query.
// Every foreign key whose referenced table has a display column is left joined
// and its label is added as <column>_description right after the column.
func (r *Renderer) View(table string) (View, error) {
	t, err := r.introspector.Table(table)
	if err != nil {
		return View{}, err
	}

	v := View{Table: table, Title: stringer.Title(table), PrimaryKeys: t.PrimaryKeys()}
	sel := r.builder.Query().Select(table)

	var columns []string
	joins := 0
	for _, c := range t.Columns {
		v.Columns = append(v.Columns, ViewColumn{ID: c.Name, Name: stringer.Title(c.Name)})
		columns = append(columns, table+"."+c.Name)

		fk, ok := t.ForeignKey(c.Name)
		if !ok || fk.Composite {
			continue
		}
		ref, err := r.introspector.Table(fk.RefTable)
		if err != nil {
			return View{}, err
		}
		display, ok := DisplayColumn(ref)
		if !ok {
			continue
		}

		joins++
		alias := fmt.Sprintf("j%d", joins)
		id := c.Name + DescriptionSuffix
		v.Columns = append(v.Columns, ViewColumn{ID: id, Name: stringer.Title(c.Name) + " " + stringer.Title(display)})
		columns = append(columns, alias+"."+display+" "+id)
		sel.Join(condition.LEFT, fk.RefTable+" "+alias, r.builder.QuoteIdentifier(table+"."+c.Name)+" = "+r.builder.QuoteIdentifier(alias+"."+fk.RefColumn))
	}

	rows, err := sel.Columns(columns...).Order(insertionOrder(r.builder, table)).All()
	if err != nil {
		return View{}, fmt.Errorf(errWrap, err)
	}
	defer rows.Close()

	v.Rows, err = scanRows(rows)
	if err != nil {
		return View{}, fmt.Errorf(errWrap, err)
	}
	return v, nil
}

// scanRows maps every row by the result column names.
func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	rv := []Row{}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptr := make([]interface{}, len(cols))
		for i := range values {
			ptr[i] = &values[i]
		}
		if err = rows.Scan(ptr...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			row[c] = normalize(values[i])
		}
		rv = append(rv, row)
	}
	return rv, rows.Err()
}
