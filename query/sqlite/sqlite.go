// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sqlite provides the query provider for SQLite database files.
// The pure go driver modernc.org/sqlite is used, foreign keys are enforced on every connection.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/patrickascher/timetable/query"
	"github.com/patrickascher/timetable/query/condition"
	"github.com/patrickascher/timetable/query/types"
	msqlite "modernc.org/sqlite" // sqlite driver
	sqlite3 "modernc.org/sqlite/lib"
)

// Error messages.
var (
	ErrTableDoesNotExist = "sqlite: table %s or column does not exist %s"
	ErrDatabase          = errors.New("sqlite: database file is mandatory")
)

const defaultTimeout = 5 * time.Second

var (
	regLength  = regexp.MustCompile(`\(\s*(\d+)`)
	regMessage = regexp.MustCompile(`^[^:]*: (.*) \(\d+\)(?: \(SQLITE_BUSY\))?$`)
)

type sqlite struct {
	query.Base
}

// init registers the provider under sqlite.
func init() {
	err := query.Register("sqlite", newSqlite)
	if err != nil {
		panic(err)
	}
}

// newSqlite creates a new query.Provider.
func newSqlite(config query.Config) (query.Provider, error) {
	if config.Database == "" {
		return nil, ErrDatabase
	}
	sqliteBuilder := &sqlite{}
	sqliteBuilder.Base.Provider = sqliteBuilder
	sqliteBuilder.Base.Config = config

	return sqliteBuilder, nil
}

// DSN returns the data source name of the database file.
// The path is percent-encoded, so a ? or # in the file name is not read as query or fragment of the uri.
func DSN(database string, timeout time.Duration) string {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	path := (&url.URL{Path: database}).EscapedPath()
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)", path, timeout.Milliseconds())
}

// Placeholder returns the ? placeholder for the sqlite driver.
func (s *sqlite) Placeholder() condition.Placeholder {
	return condition.Placeholder{Char: condition.PLACEHOLDER}
}

// Config returns the query.Config.
func (s *sqlite) Config() query.Config {
	return s.Base.Config
}

// QuoteIdentifierChar for sqlite.
func (s *sqlite) QuoteIdentifierChar() string {
	return `"`
}

// Open creates a new *sql.DB.
func (s *sqlite) Open() error {
	db, err := sql.Open("sqlite", DSN(s.Base.Config.Database, s.Base.Config.Timeout))
	if err != nil {
		return err
	}

	s.SetDB(db)

	// call base Open function.
	return s.Base.Open()
}

// Query creates a new sqlite instance.
func (s *sqlite) Query() query.Query {
	// create a new instance with a new *sql.Tx.
	// Everything else will be copied from the parent.
	instance := sqlite{}
	instance.Base = query.Base{Config: s.Base.Config, Logger: s.Base.Logger}
	instance.Base.Provider = &instance // self ref for TX
	instance.SetDB(s.DB())

	return &instance
}

// Tables returns all user tables ordered by name.
func (s *sqlite) Tables() ([]string, error) {
	rows, err := s.Select("sqlite_master").
		Columns("name").
		Where("type = ?", "table").
		Where("name NOT LIKE ?", "sqlite_%").
		Order("name").
		All()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// Select will return a query.Select.
func (s *sqlite) Select(table string) query.Select {
	return &query.SelectBase{STable: table, Provider: s}
}

// Insert will return a query.Insert.
func (s *sqlite) Insert(table string) query.Insert {
	return &query.InsertBase{ITable: table, Provider: s}
}

// Update will return a query.Update.
func (s *sqlite) Update(table string) query.Update {
	return &query.UpdateBase{UTable: table, Provider: s}
}

// Delete will return a query.Delete.
func (s *sqlite) Delete(table string) query.Delete {
	return &query.DeleteBase{DTable: table, Provider: s}
}

// Information will return a query.Information.
func (s *sqlite) Information(table string) query.Information {
	return &information{table: table, sqlite: s}
}

// ConstraintError classifies integrity errors of the driver.
// Any other error is returned unchanged.
func (s *sqlite) ConstraintError(err error) error {
	if err == nil {
		return nil
	}

	message := err.Error()
	if m := regMessage.FindStringSubmatch(message); m != nil {
		message = m[1]
	}

	var sErr *msqlite.Error
	if errors.As(err, &sErr) {
		switch sErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return query.NewConstraintError(query.ErrUnique, message, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return query.NewConstraintError(query.ErrForeignKey, message, err)
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return query.NewConstraintError(query.ErrNotNull, message, err)
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return query.NewConstraintError(query.ErrCheck, message, err)
		}
		if sErr.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
			return err
		}
	}

	// primary result code or a wrapped driver error.
	switch {
	case strings.Contains(message, "FOREIGN KEY constraint failed"):
		return query.NewConstraintError(query.ErrForeignKey, message, err)
	case strings.Contains(message, "UNIQUE constraint failed"):
		return query.NewConstraintError(query.ErrUnique, message, err)
	case strings.Contains(message, "NOT NULL constraint failed"):
		return query.NewConstraintError(query.ErrNotNull, message, err)
	case strings.Contains(message, "CHECK constraint failed"):
		return query.NewConstraintError(query.ErrCheck, message, err)
	case sErr != nil:
		return query.NewConstraintError(query.ErrConstraint, message, err)
	}

	return err
}

// information helper struct.
type information struct {
	table  string
	sqlite *sqlite
}

// Describe the defined table.
// The columns are returned in schema order.
func (i *information) Describe(columns ...string) ([]query.Column, error) {

	sel := i.sqlite.Query().Select(query.DbExpr("pragma_table_info")).
		Columns("cid", "name", "type", query.DbExpr(`"notnull"`), "dflt_value", "pk").
		Where("arg = ?", i.table).
		Order("cid")

	if len(columns) > 0 {
		sel.Where("name IN (?)", columns)
	}

	rows, err := sel.All()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []query.Column
	pkCount := 0
	for rows.Next() {
		var c query.Column
		c.Table = i.table // adding Table info

		var raw string
		var notNull bool
		var dflt sql.NullString
		var pk int
		if err := rows.Scan(&c.Position, &c.Name, &raw, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		c.DefaultValue = query.NewNullString(unquote(dflt.String), dflt.Valid)
		c.Position++
		c.NullAble = !notNull && pk == 0
		c.PrimaryKey = pk > 0
		if c.PrimaryKey {
			pkCount++
		}
		if m := regLength.FindStringSubmatch(raw); m != nil {
			if l, err := strconv.ParseInt(m[1], 10, 64); err == nil {
				c.Length = query.NewNullInt(l, true)
			}
		}
		c.Type = i.TypeMapping(raw, c)
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(cols) == 0 {
		return nil, fmt.Errorf(ErrTableDoesNotExist, i.table, columns)
	}

	// an INTEGER PRIMARY KEY is an alias of the rowid.
	if pkCount == 1 {
		for n := range cols {
			if cols[n].PrimaryKey && strings.EqualFold(cols[n].Type.Raw(), "INTEGER") {
				cols[n].Autoincrement = true
			}
		}
	}

	unique, err := i.uniqueColumns()
	if err != nil {
		return nil, err
	}
	for n := range cols {
		cols[n].Unique = unique[cols[n].Name]
	}

	return cols, nil
}

// uniqueColumns returns the columns which have a single column unique index.
func (i *information) uniqueColumns() (map[string]bool, error) {
	rows, err := i.sqlite.All(`SELECT ii.name FROM pragma_index_list(?) AS il, pragma_index_info(il.name) AS ii `+
		`WHERE il."unique" = 1 AND il.origin != 'pk' AND (SELECT COUNT(*) FROM pragma_index_info(il.name)) = 1`, []interface{}{i.table})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rv := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		rv[name] = true
	}
	return rv, rows.Err()
}

// ForeignKey will return the foreign keys for the defined table.
// A reference without a column points to the primary key of the referenced table.
func (i *information) ForeignKey() ([]query.ForeignKey, error) {
	rows, err := i.sqlite.Query().Select(query.DbExpr("pragma_foreign_key_list")).
		Columns("id", "seq", "table", "from", "to").
		Where("arg = ?", i.table).
		Order("id", "seq").
		All()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fKeys []query.ForeignKey
	for rows.Next() {
		var to query.NullString
		f := query.ForeignKey{Primary: query.Relation{Table: i.table}}
		if err := rows.Scan(&f.ID, &f.Seq, &f.Secondary.Table, &f.Primary.Column, &to); err != nil {
			return nil, err
		}
		f.Name = fmt.Sprintf("fk_%s_%d_%d", i.table, f.ID, f.Seq)
		f.Secondary.Column = to.String
		fKeys = append(fKeys, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for n := range fKeys {
		if fKeys[n].Secondary.Column != "" {
			continue
		}
		pk, err := i.primaryKey(fKeys[n].Secondary.Table)
		if err != nil {
			return nil, err
		}
		fKeys[n].Secondary.Column = pk
	}

	return fKeys, nil
}

// primaryKey returns the first primary key column of the table.
func (i *information) primaryKey(table string) (string, error) {
	cols, err := i.sqlite.Information(table).Describe()
	if err != nil {
		return "", err
	}
	for _, c := range cols {
		if c.PrimaryKey {
			return c.Name, nil
		}
	}
	return "rowid", nil
}

// TypeMapping converts the declared column type to an unique types.Interface.
// The rules follow the sqlite type affinity.
func (i *information) TypeMapping(raw string, col query.Column) types.Interface {
	t := strings.ToUpper(raw)

	switch {
	case strings.Contains(t, "BOOL"):
		return types.NewBool(raw)
	case strings.Contains(t, "INT"):
		return types.NewInt(raw)
	case strings.Contains(t, "CHAR"), strings.Contains(t, "CLOB"), strings.Contains(t, "TEXT"):
		text := types.NewText(raw)
		if col.Length.Valid {
			text.Size = int(col.Length.Int64)
		}
		return text
	case strings.Contains(t, "DATETIME"), strings.Contains(t, "TIMESTAMP"):
		return types.NewDateTime(raw)
	case strings.Contains(t, "DATE"):
		return types.NewDate(raw)
	case strings.Contains(t, "TIME"):
		return types.NewTime(raw)
	case strings.Contains(t, "REAL"), strings.Contains(t, "FLOA"), strings.Contains(t, "DOUB"),
		strings.Contains(t, "NUMERIC"), strings.Contains(t, "DECIMAL"):
		return types.NewFloat(raw)
	}

	return types.NewText(raw)
}

// unquote returns the value of a string literal default, other defaults are returned as they are.
func unquote(v string) string {
	if len(v) >= 2 && v[0] == '\'' && v[len(v)-1] == '\'' {
		return strings.ReplaceAll(v[1:len(v)-1], "''", "'")
	}
	return v
}
