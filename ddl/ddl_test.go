// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ddl_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/patrickascher/timetable/ddl"
	"github.com/patrickascher/timetable/query"
	_ "github.com/patrickascher/timetable/query/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const spec = `
DatabaseSpec:
  tables:
    - name: grupos
      columns:
        - {name: id, type: integer, not_null: true}
        - {name: nombre, type: string, not_null: true}
        - {name: activo, type: boolean, default: true}
        - {name: cerrado, type: boolean, default: false}
        - {name: peso, type: number, default: 1.5}
        - {name: nota, type: string, default: "it's"}
        - {name: codigo, type: string, default: "10"}
        - {name: extra, type: blob}
      constraints:
        - {type: PRIMARY KEY, columns: [id]}
        - {type: UNIQUE, columns: [nombre]}
        - {type: CHECK, expression: "peso >= 0"}
        - {type: INDEX, columns: [nombre]}
    - name: grupo_materias
      columns:
        - {name: id, type: integer}
        - {name: grupo_id, type: integer}
      constraints:
        - {type: PRIMARY KEY, columns: [id]}
        - type: FOREIGN KEY
          columns: [grupo_id]
          references: {table: grupos, columns: [id]}
`

const expected = `-- Generated SQLite DDL
PRAGMA encoding = 'UTF-8';
PRAGMA foreign_keys = ON;

CREATE TABLE grupos (
    id INTEGER NOT NULL,
    nombre TEXT NOT NULL,
    activo INTEGER DEFAULT 1,
    cerrado INTEGER DEFAULT 0,
    peso REAL DEFAULT 1.5,
    nota TEXT DEFAULT 'it''s',
    codigo TEXT DEFAULT '10',
    extra TEXT,
    PRIMARY KEY (id),
    UNIQUE (nombre),
    CHECK (peso >= 0)
    );

CREATE TABLE grupo_materias (
    id INTEGER,
    grupo_id INTEGER,
    PRIMARY KEY (id),
    FOREIGN KEY (grupo_id) REFERENCES grupos(id)
    );
`

func TestGenerate(t *testing.T) {
	asserts := assert.New(t)

	doc, err := ddl.Load(strings.NewReader(spec))
	require.NoError(t, err)
	asserts.Equal(expected, ddl.Generate(doc))

	// a default which is no scalar is skipped
	asserts.Equal("a TEXT", ddl.ColumnDefinition(ddl.Column{Name: "a", Type: "string", Default: &yaml.Node{Kind: yaml.MappingNode}}))

	// no tables
	asserts.Equal("-- Generated SQLite DDL\nPRAGMA encoding = 'UTF-8';\nPRAGMA foreign_keys = ON;\n", ddl.Generate(&ddl.Document{DatabaseSpec: &ddl.Spec{}}))
}

func TestSQLiteType(t *testing.T) {
	asserts := assert.New(t)
	asserts.Equal("TEXT", ddl.SQLiteType("string"))
	asserts.Equal("REAL", ddl.SQLiteType("number"))
	asserts.Equal("INTEGER", ddl.SQLiteType("integer"))
	asserts.Equal("INTEGER", ddl.SQLiteType("boolean"))
	asserts.Equal("TEXT", ddl.SQLiteType("date"))
}

func TestLoad(t *testing.T) {
	asserts := assert.New(t)

	// error: yaml
	_, err := ddl.Load(strings.NewReader("DatabaseSpec: [\n"))
	asserts.Error(err)
	asserts.True(strings.HasPrefix(err.Error(), "processing YAML file: "))

	// error: no spec
	_, err = ddl.Load(strings.NewReader("other: 1\n"))
	asserts.Equal(ddl.ErrNoSpec, err)
	_, err = ddl.Load(strings.NewReader(""))
	asserts.Equal(ddl.ErrNoSpec, err)

	// file
	name := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(name, []byte(spec), 0644))
	doc, err := ddl.LoadFile(name)
	asserts.NoError(err)
	asserts.Equal(2, len(doc.DatabaseSpec.Tables))

	_, err = ddl.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	asserts.True(errors.Is(err, os.ErrNotExist))
}

func TestValidate(t *testing.T) {
	var tests = []struct {
		name  string
		spec  string
		error bool
	}{
		{"ok", "DatabaseSpec:\n  tables:\n    - name: a\n      columns: [{name: id, type: integer}]\n", false},
		{"no tables", "DatabaseSpec:\n  tables: []\n", true},
		{"no table name", "DatabaseSpec:\n  tables:\n    - columns: [{name: id, type: integer}]\n", true},
		{"no columns", "DatabaseSpec:\n  tables:\n    - name: a\n", true},
		{"wrong type", "DatabaseSpec:\n  tables:\n    - name: a\n      columns: [{name: id, type: blob}]\n", true},
		{"check without expression", "DatabaseSpec:\n  tables:\n    - name: a\n      columns: [{name: id, type: integer}]\n      constraints: [{type: CHECK}]\n", true},
		{"fk without references", "DatabaseSpec:\n  tables:\n    - name: a\n      columns: [{name: id, type: integer}]\n      constraints: [{type: FOREIGN KEY, columns: [id]}]\n", true},
		{"scalar default", "DatabaseSpec:\n  tables:\n    - name: a\n      columns: [{name: id, type: string, default: 'x'}]\n", false},
		{"mapping default", "DatabaseSpec:\n  tables:\n    - name: a\n      columns: [{name: id, type: string, default: {a: 1}}]\n", true},
		{"sequence default", "DatabaseSpec:\n  tables:\n    - name: a\n      columns: [{name: id, type: integer, default: [1, 2]}]\n", true},
		{"unknown constraint", "DatabaseSpec:\n  tables:\n    - name: a\n      columns: [{name: id, type: integer}]\n      constraints: [{type: INDEX, columns: [id]}]\n", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc, err := ddl.Load(strings.NewReader(test.spec))
			require.NoError(t, err)
			if test.error {
				assert.Error(t, ddl.Validate(doc))
			} else {
				assert.NoError(t, ddl.Validate(doc))
			}
		})
	}
}

func TestSplit(t *testing.T) {
	asserts := assert.New(t)

	asserts.Equal([]string{"CREATE TABLE a (id INTEGER);", "INSERT INTO a VALUES (1);"},
		ddl.Split("CREATE TABLE a (id INTEGER);  \n\n  INSERT INTO a VALUES (1);"))
	// a semicolon inside a line does not split
	asserts.Equal([]string{"INSERT INTO a VALUES ('x;y');"}, ddl.Split("INSERT INTO a VALUES ('x;y');\n"))
	asserts.Nil(ddl.Split(" \n;\n "))
}

func newBuilder(t *testing.T) query.Builder {
	b, err := query.New("sqlite", query.Config{Database: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

// TestRun creates the database out of the generated script.
func TestRun(t *testing.T) {
	asserts := assert.New(t)
	b := newBuilder(t)

	doc, err := ddl.Load(strings.NewReader(spec))
	require.NoError(t, err)

	var out bytes.Buffer
	err = ddl.Run(b, ddl.Generate(doc)+"INSERT INTO nope VALUES (1);\nINSERT INTO grupos (id, nombre) VALUES (1, 'a');\n", &out)
	asserts.NoError(err)
	asserts.Contains(out.String(), "CREATE TABLE grupos (")
	asserts.Contains(out.String(), "Error: ")
	asserts.Contains(out.String(), "ok (1 rows affected)")

	tables, err := b.Query().Tables()
	asserts.NoError(err)
	asserts.Equal([]string{"grupo_materias", "grupos"}, tables)

	// defaults are applied
	row, err := b.Query().Select("grupos").Columns("activo", "cerrado", "nota").First()
	asserts.NoError(err)
	var activo, cerrado int
	var nota string
	asserts.NoError(row.Scan(&activo, &cerrado, &nota))
	asserts.Equal(1, activo)
	asserts.Equal(0, cerrado)
	asserts.Equal("it's", nota)

	fks, err := b.Query().Information("grupo_materias").ForeignKey()
	asserts.NoError(err)
	asserts.Equal(1, len(fks))

	// error: empty
	asserts.Equal(ddl.ErrEmptyScript, ddl.Run(b, "\n", &out))
}

func TestRunStrict(t *testing.T) {
	asserts := assert.New(t)
	b := newBuilder(t)

	asserts.NoError(ddl.RunStrict(b, "CREATE TABLE a (id INTEGER PRIMARY KEY);\nINSERT INTO a VALUES (1);\n"))
	err := ddl.RunStrict(b, "INSERT INTO a VALUES (1);\nINSERT INTO a VALUES (2);\n")
	asserts.True(errors.Is(err, query.ErrUnique))

	row, err := b.Query().Select("a").Columns(query.DbExpr("COUNT(*)")).First()
	asserts.NoError(err)
	var n int
	asserts.NoError(row.Scan(&n))
	asserts.Equal(1, n)
}
