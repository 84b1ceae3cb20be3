// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dashboard

import (
	"fmt"

	"github.com/patrickascher/timetable/query"
)

const labelAlias = "label"

// Option of a dropdown.
type Option struct {
	Label string      `json:"label"`
	Value interface{} `json:"value"`
}

// Resolver creates the dropdown options of foreign keys.
type Resolver struct {
	builder      query.Builder
	introspector *Introspector
}

// NewResolver returns a Resolver for the builder.
func NewResolver(b query.Builder) *Resolver {
	return &Resolver{builder: b, introspector: NewIntrospector(b)}
}

// Options returns one option per row of the referenced table.
// The label is the display column of the table or the referenced column itself if none exists.
func (r *Resolver) Options(refTable string, refColumn string) ([]Option, error) {
	t, err := r.introspector.Table(refTable)
	if err != nil {
		return nil, err
	}
	display, ok := DisplayColumn(t)
	if !ok {
		display = refColumn
	}

	rows, err := r.builder.Query().Select(refTable).Columns(refColumn, display+" "+labelAlias).Order(insertionOrder(r.builder, refTable)).All()
	if err != nil {
		return nil, fmt.Errorf(errWrap, err)
	}
	defer rows.Close()

	var rv []Option
	for rows.Next() {
		var value, label interface{}
		if err = rows.Scan(&value, &label); err != nil {
			return nil, fmt.Errorf(errWrap, err)
		}
		l, err := query.SanitizeToString(label)
		if err != nil {
			return nil, fmt.Errorf(errWrap, err)
		}
		rv = append(rv, Option{Label: l, Value: normalize(value)})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf(errWrap, err)
	}
	return rv, nil
}

// ForeignKeyOptions returns the options of every foreign key column of the table.
func (r *Resolver) ForeignKeyOptions(t Table) (map[string][]Option, error) {
	rv := make(map[string][]Option, len(t.ForeignKeys))
	for _, c := range t.Columns {
		fk, ok := t.ForeignKey(c.Name)
		if !ok {
			continue
		}
		opts, err := r.Options(fk.RefTable, fk.RefColumn)
		if err != nil {
			return nil, err
		}
		rv[c.Name] = opts
	}
	return rv, nil
}

// normalize converts driver bytes to a string.
func normalize(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// insertionOrder orders the rows of table by their row id.
func insertionOrder(b query.Builder, table string) string {
	return query.DbExpr(b.QuoteIdentifier(table) + "." + query.RowID)
}
