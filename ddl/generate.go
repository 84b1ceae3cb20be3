// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ddl

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// header of every generated script.
var header = []string{
	"-- Generated SQLite DDL",
	"PRAGMA encoding = 'UTF-8';",
	"PRAGMA foreign_keys = ON;",
	"",
}

// SQLiteType maps a column type to the sqlite type.
// Unknown types are TEXT.
func SQLiteType(t string) string {
	switch t {
	case NUMBER:
		return "REAL"
	case INTEGER, BOOLEAN:
		return "INTEGER"
	}
	return "TEXT"
}

// Generate renders the creation script. Every table is followed by an empty line.
func Generate(doc *Document) string {
	stmts := append([]string{}, header...)
	if doc != nil && doc.DatabaseSpec != nil {
		for _, t := range doc.DatabaseSpec.Tables {
			stmts = append(stmts, CreateTable(t), "")
		}
	}
	return strings.Join(stmts, "\n")
}

// CreateTable renders the CREATE TABLE statement of a table.
func CreateTable(t Table) string {
	defs := make([]string, 0, len(t.Columns)+len(t.Constraints))
	for _, c := range t.Columns {
		defs = append(defs, ColumnDefinition(c))
	}
	for _, c := range t.Constraints {
		if def := ConstraintDefinition(c); def != "" {
			defs = append(defs, def)
		}
	}

	return strings.Join([]string{
		"CREATE TABLE " + t.Name + " (",
		strings.Join(defs, ",\n    "),
		");",
	}, "\n    ")
}

// ColumnDefinition renders "name TYPE [NOT NULL] [DEFAULT v]".
// A default which is no scalar value is skipped, Validate reports it.
func ColumnDefinition(c Column) string {
	parts := []string{c.Name, SQLiteType(c.Type)}
	if c.NotNull {
		parts = append(parts, "NOT NULL")
	}
	if c.Default != nil && c.Default.Kind == yaml.ScalarNode {
		parts = append(parts, "DEFAULT "+defaultValue(c.Default))
	}
	return strings.Join(parts, " ")
}

// defaultValue renders a default value.
// Strings are quoted, booleans become 1 or 0, anything else is used as written.
func defaultValue(n *yaml.Node) string {
	switch n.Tag {
	case "!!str":
		return "'" + strings.ReplaceAll(n.Value, "'", "''") + "'"
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil && b {
			return "1"
		}
		return "0"
	case "!!null":
		return "NULL"
	}
	return n.Value
}

// ConstraintDefinition renders a table constraint.
// An unknown type returns an empty string.
func ConstraintDefinition(c Constraint) string {
	switch c.Type {
	case PrimaryKey, Unique:
		return c.Type + " (" + strings.Join(c.Columns, ", ") + ")"
	case Check:
		return "CHECK (" + c.Expression + ")"
	case ForeignKey:
		if c.References == nil {
			return ""
		}
		return "FOREIGN KEY (" + strings.Join(c.Columns, ", ") + ") REFERENCES " + c.References.Table + "(" + strings.Join(c.References.Columns, ", ") + ")"
	}
	return ""
}
