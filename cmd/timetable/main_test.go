// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// execute runs the command line and returns the exit status, stdout and stderr.
func execute(stdin string, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestYAML2SQL(t *testing.T) {
	asserts := assert.New(t)

	// ok
	code, out, _ := execute("", "yaml2sql", "--validate", "../../specs/timetable_db.yaml")
	asserts.Equal(0, code)
	asserts.Contains(out, "PRAGMA foreign_keys = ON;")
	asserts.Contains(out, "CREATE TABLE grupos (")
	asserts.Contains(out, "CREATE TABLE disponibilidad_profesores (")

	// error: argument count
	code, _, errOut := execute("", "yaml2sql")
	asserts.Equal(1, code)
	asserts.Equal("Error: accepts 1 arg(s), received 0\n", errOut)

	// error: file not found
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	code, out, errOut = execute("", "yaml2sql", missing)
	asserts.Equal(1, code)
	asserts.Equal("", out)
	asserts.Equal("Error: File "+missing+" not found\n", errOut)

	// error: yaml
	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("DatabaseSpec: [\n"), 0644))
	code, _, errOut = execute("", "yaml2sql", invalid)
	asserts.Equal(1, code)
	asserts.True(strings.HasPrefix(errOut, "Error: processing YAML file: "))
}

func TestExec(t *testing.T) {
	asserts := assert.New(t)
	db := filepath.Join(t.TempDir(), "exec.db")

	// error: db does not exist
	code, _, errOut := execute("", "exec", db)
	asserts.Equal(1, code)
	asserts.Equal("Error: File "+db+" not found\n", errOut)

	// ok
	require.NoError(t, os.WriteFile(db, nil, 0644))
	code, out, _ := execute("CREATE TABLE t (id INTEGER);\nINSERT INTO t VALUES (1);\nINSERT INTO x VALUES (1);\n", "exec", db)
	asserts.Equal(0, code)
	asserts.Contains(out, "INSERT INTO t VALUES (1);\nok (1 rows affected)\n")
	asserts.Contains(out, "INSERT INTO x VALUES (1);\nError: ")
	asserts.True(strings.HasSuffix(out, "Done creating "+db+"\n"))

	// empty script
	code, out, errOut = execute("  \n", "exec", db)
	asserts.Equal(0, code)
	asserts.Contains(errOut, "empty cmd list\n")
	asserts.Equal("Done creating "+db+"\n", out)
}

func TestLoad(t *testing.T) {
	asserts := assert.New(t)
	db := filepath.Join(t.TempDir(), "data", "timetable.db")

	// ok
	code, out, _ := execute("", "load", "../../data/timetable.pl", "../../data/timetable.sql", db)
	asserts.Equal(0, code)
	asserts.Equal("Database created and loaded successfully at "+db+"\n", out)
	asserts.FileExists(db)

	// error: prolog file
	code, _, errOut := execute("", "load", "missing.pl", "../../data/timetable.sql", db)
	asserts.Equal(1, code)
	asserts.Equal("Error: Prolog file 'missing.pl' does not exist\n", errOut)

	// error: sql file
	code, _, errOut = execute("", "load", "../../data/timetable.pl", "missing.sql", db)
	asserts.Equal(1, code)
	asserts.Equal("Error: SQL file 'missing.sql' does not exist\n", errOut)

	// error: argument count
	code, _, _ = execute("", "load", "../../data/timetable.pl")
	asserts.Equal(1, code)
}

func TestExcel(t *testing.T) {
	asserts := assert.New(t)
	out := filepath.Join(t.TempDir(), "timetable.xlsx")

	code, stdout, _ := execute("", "excel", "../../data/timetable.pl", "--out", out)
	asserts.Equal(0, code)
	asserts.Equal("Excel file '"+out+"' created successfully.\n", stdout)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	asserts.Contains(f.GetSheetList(), "grupos")

	// error: prolog file
	code, _, errOut := execute("", "excel", "missing.pl", "--out", out)
	asserts.Equal(1, code)
	asserts.Equal("Error: Prolog file 'missing.pl' does not exist\n", errOut)
}

func TestConfig(t *testing.T) {
	asserts := assert.New(t)
	dir := t.TempDir()

	// error: config file does not exist
	code, _, errOut := execute("", "--config", filepath.Join(dir, "missing.yaml"), "yaml2sql", "../../specs/timetable_db.yaml")
	asserts.Equal(1, code)
	asserts.True(strings.HasPrefix(errOut, "Error: viper-provider: "))

	// error: invalid config
	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("server:\n  port: 0\n"), 0644))
	code, _, errOut = execute("", "--config", invalid, "yaml2sql", "../../specs/timetable_db.yaml")
	asserts.Equal(1, code)
	asserts.True(strings.HasPrefix(errOut, "Error: config: "))

	// ok: the file replaces the default lists
	a := &app{configFile: filepath.Join(dir, "timetable.yaml")}
	require.NoError(t, os.WriteFile(a.configFile, []byte("dashboard:\n  tables: [grupos]\nlog:\n  level: debug\n"), 0644))
	cmd := newRootCmd()
	require.NoError(t, a.init(cmd))
	asserts.Equal([]string{"grupos"}, a.cfg.Dashboard.Tables)
	asserts.Equal("debug", a.cfg.Log.Level)
	asserts.Equal(4, len(a.cfg.Availability))
	asserts.Equal(8050, a.cfg.Server.Port)

	// ok: sample config
	a = &app{configFile: "../../config/timetable.yaml"}
	require.NoError(t, a.init(cmd))
	asserts.Equal(10, len(a.cfg.Dashboard.Tables))
}
