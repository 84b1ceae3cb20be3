// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package dashboard provides a schema driven CRUD engine over the tables of a database.
//
// Everything is derived from the live database on every call: the columns, the primary keys and the foreign keys.
// Foreign keys get a dropdown with the display values of the referenced table and the rendered rows carry a
// <column>_description field with the resolved label.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/patrickascher/timetable/query"
	"github.com/patrickascher/timetable/query/types"
)

// display column names of a referenced table, compared case-insensitively.
var displayColumns = []string{"name", "nombre"}

// Column of a table.
type Column struct {
	Name       string
	Kind       string
	Raw        string
	NotNull    bool
	PrimaryKey bool
}

// Numeric reports if the column holds integer or real values.
func (c Column) Numeric() bool {
	return types.IsNumeric(c.Kind)
}

// ForeignKey of a table column.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
	// Composite is set if the column is one part of a multi column reference.
	Composite bool
}

// Table descriptor.
type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
}

// PrimaryKeys returns the primary key column names in schema order.
func (t Table) PrimaryKeys() []string {
	var rv []string
	for _, c := range t.Columns {
		if c.PrimaryKey {
			rv = append(rv, c.Name)
		}
	}
	return rv
}

// Column by name.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ForeignKey returns the first foreign key of the column.
func (t Table) ForeignKey(column string) (ForeignKey, bool) {
	for _, fk := range t.ForeignKeys {
		if fk.Column == column {
			return fk, true
		}
	}
	return ForeignKey{}, false
}

// DisplayColumn returns the first column named name or nombre.
func DisplayColumn(t Table) (string, bool) {
	for _, c := range t.Columns {
		for _, d := range displayColumns {
			if strings.EqualFold(c.Name, d) {
				return c.Name, true
			}
		}
	}
	return "", false
}

// Introspector reads the table descriptors of the database.
type Introspector struct {
	builder query.Builder
}

// NewIntrospector returns an Introspector for the builder.
func NewIntrospector(b query.Builder) *Introspector {
	return &Introspector{builder: b}
}

// Table reads the columns and foreign keys of the given table.
// There is no caching: every call queries the database.
func (i *Introspector) Table(name string) (Table, error) {
	info := i.builder.Query().Information(name)

	cols, err := info.Describe()
	if err != nil {
		return Table{}, fmt.Errorf(errWrap, err)
	}
	fks, err := info.ForeignKey()
	if err != nil {
		return Table{}, fmt.Errorf(errWrap, err)
	}

	t := Table{Name: name}
	for _, c := range cols {
		col := Column{Name: c.Name, NotNull: !c.NullAble, PrimaryKey: c.PrimaryKey}
		if c.Type != nil {
			col.Kind = c.Type.Kind()
			col.Raw = c.Type.Raw()
		}
		t.Columns = append(t.Columns, col)
	}
	parts := map[int]int{}
	for _, fk := range fks {
		parts[fk.ID]++
	}
	for _, fk := range fks {
		t.ForeignKeys = append(t.ForeignKeys, ForeignKey{
			Column:    fk.Primary.Column,
			RefTable:  fk.Secondary.Table,
			RefColumn: fk.Secondary.Column,
			Composite: parts[fk.ID] > 1,
		})
	}

	return t, nil
}
