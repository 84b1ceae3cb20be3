// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

// Column as reported by the table introspection.
// Position starts at 1 in the declared column order.
type Column struct {
	Table         string
	Name          string
	Position      int
	NullAble      bool
	PrimaryKey    bool
	Unique        bool
	Autoincrement bool
	Type          Type
	DefaultValue  NullString
	Length        NullInt
}

// ForeignKey of a table.
// Primary is the referencing column of the introspected table, Secondary the referenced column.
// Composite keys are reported as several entries with the same ID and an increasing Seq.
type ForeignKey struct {
	ID        int
	Seq       int
	Name      string
	Primary   Relation
	Secondary Relation
}

// Relation is one side of a foreign key.
type Relation struct {
	Table  string
	Column string
}

// String returns table.column.
func (r Relation) String() string {
	return r.Table + "." + r.Column
}
