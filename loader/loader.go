// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package loader creates a timetable database out of a schema script and a Prolog facts file.
package loader

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/patrickascher/timetable/config"
	"github.com/patrickascher/timetable/ddl"
	"github.com/patrickascher/timetable/logger"
	"github.com/patrickascher/timetable/prolog"
	"github.com/patrickascher/timetable/query"
)

// Table names.
const (
	Constants      = "constantes"
	Groups         = "grupos"
	Subjects       = "materias"
	Professors     = "profesores"
	Days           = "dias"
	Blocks         = "bloques"
	Lessons        = "lecciones"
	GroupSubjects  = "grupo_materias"
	Assignments    = "prof_grupo_materias"
	Availabilities = "disponibilidad_profesores"
)

// Error messages.
var (
	ErrInsert = "loader: inserting %s: %w"
	ErrOpener = errors.New("loader: opener is mandatory")
)

// Opener opens the database file.
type Opener func(database string) (query.Builder, error)

// Options of a load.
type Options struct {
	PrologFile   string
	SchemaFile   string
	DBFile       string
	Availability []config.Availability
}

// Load creates the database file and fills it with the facts.
// An existing database file is removed first. The schema script runs before the facts are inserted in one transaction.
// On any error the transaction is rolled back.
func Load(opt Options, open Opener, log logger.Manager) error {
	if open == nil {
		return ErrOpener
	}

	if dir := filepath.Dir(opt.DBFile); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("loader: %w", err)
		}
	}
	if err := os.Remove(opt.DBFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loader: %w", err)
	}

	schema, err := os.ReadFile(opt.SchemaFile)
	if err != nil {
		return fmt.Errorf("loader: %w", err)
	}
	facts, err := prolog.ExtractFile(opt.PrologFile)
	if err != nil {
		return fmt.Errorf("loader: %w", err)
	}

	b, err := open(opt.DBFile)
	if err != nil {
		return fmt.Errorf("loader: %w", err)
	}
	defer b.Close()

	if err = ddl.RunStrict(b, string(schema)); err != nil {
		return fmt.Errorf("loader: schema: %w", err)
	}

	err = query.Transaction(b, func(q query.Query) error {
		return insert(q, facts, opt.Availability, log)
	})
	if err != nil {
		return err
	}

	log.WithFields(logger.Fields{"db": opt.DBFile}).Info("database loaded")
	return nil
}

// insert all facts in table order.
func insert(q query.Query, f prolog.Facts, rules []config.Availability, log logger.Manager) error {
	idx := f.Index()

	var values []map[string]interface{}
	for _, c := range f.Constants {
		values = append(values, map[string]interface{}{"name": c.Name, "value": c.Value})
	}
	if err := insertValues(q, Constants, values, log); err != nil {
		return err
	}

	for _, e := range []struct {
		table    string
		entities []prolog.Entity
	}{{Groups, f.Groups}, {Subjects, f.Subjects}, {Professors, f.Professors}} {
		values = nil
		for _, v := range e.entities {
			values = append(values, map[string]interface{}{"id": v.ID, "nombre": v.Name})
		}
		if err := insertValues(q, e.table, values, log); err != nil {
			return err
		}
	}

	values = nil
	for _, d := range f.Days {
		values = append(values, map[string]interface{}{"nombre": d})
	}
	if err := insertValues(q, Days, values, log); err != nil {
		return err
	}

	values = nil
	for _, b := range f.Blocks {
		values = append(values, map[string]interface{}{"numero": b})
	}
	if err := insertValues(q, Blocks, values, log); err != nil {
		return err
	}

	values = nil
	for _, l := range f.Lessons {
		values = append(values, map[string]interface{}{"id": l})
	}
	if err := insertValues(q, Lessons, values, log); err != nil {
		return err
	}

	values = nil
	for _, gs := range f.GroupSubjects {
		groupID, gOK := idx.Groups[gs.Group]
		subjectID, sOK := idx.Subjects[gs.Subject]
		if !gOK || !sOK {
			log.WithFields(logger.Fields{"id": gs.ID, "grupo": gs.Group, "materia": gs.Subject}).Warning("grupo_materia skipped, unknown reference")
			continue
		}
		values = append(values, map[string]interface{}{"id": gs.ID, "grupo_id": groupID, "materia_id": subjectID, "lecciones": gs.Lessons})
	}
	if err := insertValues(q, GroupSubjects, values, log); err != nil {
		return err
	}

	if err := insertAssignments(q, f.Assignments, idx, log); err != nil {
		return err
	}

	values = nil
	for _, a := range ExpandAvailability(f, rules) {
		values = append(values, map[string]interface{}{"profesor_id": a.ProfessorID, "dia": a.Day, "bloque": a.Block, "leccion": a.Lesson})
	}
	return insertValues(q, Availabilities, values, log)
}

// insertAssignments looks up the grupo_materias id of every assignment.
// Assignments without a group subject and duplicates are skipped.
func insertAssignments(q query.Query, assignments []prolog.Assignment, idx prolog.Index, log logger.Manager) error {
	n := 0
	for _, a := range assignments {
		profID, pOK := idx.Professors[a.Professor]
		groupID, gOK := idx.Groups[a.Group]
		subjectID, sOK := idx.Subjects[a.Subject]
		if !pOK || !gOK || !sOK {
			continue
		}

		row, err := q.Select(GroupSubjects).Columns("id").Where("grupo_id = ?", groupID).Where("materia_id = ?", subjectID).First()
		if err != nil {
			return fmt.Errorf(ErrInsert, Assignments, err)
		}
		var gsID int
		if err = row.Scan(&gsID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return fmt.Errorf(ErrInsert, Assignments, err)
		}

		_, err = q.Insert(Assignments).Values([]map[string]interface{}{{"profesor_id": profID, "grupo_materias_id": gsID}}).Exec()
		if err != nil {
			if errors.Is(err, query.ErrConstraint) {
				log.WithFields(logger.Fields{"profesor": a.Professor, "grupo": a.Group, "materia": a.Subject}).Debug("duplicate prof_grupo_materia skipped")
				continue
			}
			return fmt.Errorf(ErrInsert, Assignments, err)
		}
		n++
	}
	log.WithFields(logger.Fields{"table": Assignments, "rows": n}).Info("inserted")
	return nil
}

func insertValues(q query.Query, table string, values []map[string]interface{}, log logger.Manager) error {
	if len(values) == 0 {
		return nil
	}
	if _, err := q.Insert(table).Values(values).Exec(); err != nil {
		return fmt.Errorf(ErrInsert, table, err)
	}
	log.WithFields(logger.Fields{"table": table, "rows": len(values)}).Info("inserted")
	return nil
}
