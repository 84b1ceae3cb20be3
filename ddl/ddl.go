// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ddl translates a YAML database description into a SQLite creation script and runs such scripts.
//
// A description looks like:
//	DatabaseSpec:
//	  tables:
//	    - name: grupos
//	      columns:
//	        - {name: id, type: integer, not_null: true}
//	        - {name: nombre, type: string}
//	      constraints:
//	        - {type: PRIMARY KEY, columns: [id]}
package ddl

import (
	"errors"
	"fmt"
	"io"
	"os"

	valid "github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Column types.
const (
	STRING  = "string"
	NUMBER  = "number"
	INTEGER = "integer"
	BOOLEAN = "boolean"
)

// Constraint types.
const (
	PrimaryKey = "PRIMARY KEY"
	Unique     = "UNIQUE"
	Check      = "CHECK"
	ForeignKey = "FOREIGN KEY"
)

// Error messages.
var (
	ErrYAML       = "processing YAML file: %w"
	ErrNoSpec     = errors.New("ddl: DatabaseSpec is missing")
	ErrConstraint = "ddl: constraint %q of table %s: %s"
	ErrDefault    = "ddl: default of column %s.%s must be a scalar value"
)

// Document is the root of a description file.
type Document struct {
	DatabaseSpec *Spec `yaml:"DatabaseSpec" validate:"required"`
}

// Spec holds the tables.
type Spec struct {
	Tables []Table `yaml:"tables" validate:"required,min=1,dive"`
}

// Table definition.
type Table struct {
	Name        string       `yaml:"name" validate:"required"`
	Columns     []Column     `yaml:"columns" validate:"required,min=1,dive"`
	Constraints []Constraint `yaml:"constraints" validate:"-"`
}

// Column definition.
// Default keeps the yaml node, to distinguish between string, boolean and number values.
type Column struct {
	Name    string     `yaml:"name" validate:"required"`
	Type    string     `yaml:"type" validate:"required,oneof=string number integer boolean"`
	NotNull bool       `yaml:"not_null"`
	Default *yaml.Node `yaml:"default" validate:"-"`
}

// Constraint definition.
type Constraint struct {
	Type       string     `yaml:"type"`
	Columns    []string   `yaml:"columns"`
	Expression string     `yaml:"expression"`
	References *Reference `yaml:"references"`
}

// Reference of a foreign key.
type Reference struct {
	Table   string   `yaml:"table"`
	Columns []string `yaml:"columns"`
}

// Load decodes a description.
func Load(r io.Reader) (*Document, error) {
	doc := &Document{}
	if err := yaml.NewDecoder(r).Decode(doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoSpec
		}
		return nil, fmt.Errorf(ErrYAML, err)
	}
	if doc.DatabaseSpec == nil {
		return nil, ErrNoSpec
	}
	return doc, nil
}

// LoadFile decodes the description file.
func LoadFile(name string) (*Document, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Validate checks the structure of the document.
// Every table needs a name and columns, every column a name and a known type.
// Defaults must be scalar values and constraints must carry the fields of their type.
func Validate(doc *Document) error {
	if err := valid.New().Struct(doc); err != nil {
		return fmt.Errorf("ddl: %w", err)
	}

	for _, t := range doc.DatabaseSpec.Tables {
		for _, c := range t.Columns {
			if c.Default != nil && c.Default.Kind != yaml.ScalarNode {
				return fmt.Errorf(ErrDefault, t.Name, c.Name)
			}
		}
		for _, c := range t.Constraints {
			if err := validateConstraint(c); err != nil {
				return fmt.Errorf(ErrConstraint, c.Type, t.Name, err)
			}
		}
	}
	return nil
}

func validateConstraint(c Constraint) error {
	switch c.Type {
	case PrimaryKey, Unique:
		if len(c.Columns) == 0 {
			return errors.New("columns are mandatory")
		}
	case Check:
		if c.Expression == "" {
			return errors.New("expression is mandatory")
		}
	case ForeignKey:
		if len(c.Columns) == 0 {
			return errors.New("columns are mandatory")
		}
		if c.References == nil || c.References.Table == "" || len(c.References.Columns) == 0 {
			return errors.New("references table and columns are mandatory")
		}
	default:
		return errors.New("unknown type")
	}
	return nil
}
