// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package export

import (
	"github.com/patrickascher/timetable/config"
	"github.com/patrickascher/timetable/loader"
	"github.com/patrickascher/timetable/prolog"
)

// Rest is the subject which fills up the weekly lessons of a group.
const Rest = "resto"

// restOffset is added to the group id to build the id of the rest row.
const restOffset = 100

// Timetable creates the sheets of all timetable tables out of the facts.
// Every group whose lessons sum below the lessons per week gets a rest row.
// The lecc_por_sem constant of the facts has precedence over lessonsPerWeek.
func Timetable(f prolog.Facts, rules []config.Availability, lessonsPerWeek int) []Sheet {
	if v, ok := f.Constant(prolog.LessonsPerWeek); ok {
		lessonsPerWeek = v
	}

	subjects := f.Subjects
	idx := f.Index()

	// group subjects with resolved ids
	type key struct{ group, subject int }
	gsIDs := map[key]int{}
	sums := map[int]int{}
	var groupSubjects [][]interface{}
	for _, gs := range f.GroupSubjects {
		g, gOK := idx.Groups[gs.Group]
		s, sOK := idx.Subjects[gs.Subject]
		if !gOK || !sOK {
			continue
		}
		gsIDs[key{g, s}] = gs.ID
		sums[g] += gs.Lessons
		groupSubjects = append(groupSubjects, []interface{}{gs.ID, g, s, gs.Lessons})
	}

	for _, g := range f.Groups {
		rest := lessonsPerWeek - sums[g.ID]
		if rest <= 0 {
			continue
		}
		restID, ok := idx.Subjects[Rest]
		if !ok {
			restID = nextID(subjects)
			subjects = append(subjects, prolog.Entity{ID: restID, Name: Rest})
			idx.Subjects[Rest] = restID
		}
		id := restOffset + g.ID
		gsIDs[key{g.ID, restID}] = id
		groupSubjects = append(groupSubjects, []interface{}{id, g.ID, restID, rest})
	}

	var assignments [][]interface{}
	for _, a := range f.Assignments {
		p, pOK := idx.Professors[a.Professor]
		g, gOK := idx.Groups[a.Group]
		s, sOK := idx.Subjects[a.Subject]
		if !pOK || !gOK || !sOK {
			continue
		}
		if id, ok := gsIDs[key{g, s}]; ok {
			assignments = append(assignments, []interface{}{p, id})
		}
	}

	var availability [][]interface{}
	for _, a := range loader.ExpandAvailability(f, rules) {
		availability = append(availability, []interface{}{a.ProfessorID, a.Day, a.Block, a.Lesson})
	}

	var constants [][]interface{}
	for _, c := range f.Constants {
		constants = append(constants, []interface{}{c.Name, c.Value})
	}

	return []Sheet{
		{Name: loader.Constants, Header: []string{"name", "value"}, Rows: constants},
		{Name: loader.Groups, Header: []string{"id", "nombre"}, Rows: entityRows(f.Groups)},
		{Name: loader.Subjects, Header: []string{"id", "nombre"}, Rows: entityRows(subjects)},
		{Name: loader.Professors, Header: []string{"id", "nombre"}, Rows: entityRows(f.Professors)},
		{Name: loader.GroupSubjects, Header: []string{"id", "grupo_id", "materia_id", "lecciones"}, Rows: groupSubjects},
		{Name: loader.Assignments, Header: []string{"profesor_id", "grupo_materias_id"}, Rows: assignments},
		{Name: loader.Days, Header: []string{"nombre"}, Rows: stringRows(f.Days)},
		{Name: loader.Blocks, Header: []string{"numero"}, Rows: intRows(f.Blocks)},
		{Name: loader.Lessons, Header: []string{"id"}, Rows: stringRows(f.Lessons)},
		{Name: loader.Availabilities, Header: []string{"profesor_id", "dia", "bloque", "leccion"}, Rows: availability},
	}
}

func nextID(entities []prolog.Entity) int {
	max := 0
	for _, e := range entities {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}

func entityRows(entities []prolog.Entity) [][]interface{} {
	var rv [][]interface{}
	for _, e := range entities {
		rv = append(rv, []interface{}{e.ID, e.Name})
	}
	return rv
}

func stringRows(s []string) [][]interface{} {
	var rv [][]interface{}
	for _, v := range s {
		rv = append(rv, []interface{}{v})
	}
	return rv
}

func intRows(s []int) [][]interface{} {
	var rv [][]interface{}
	for _, v := range s {
		rv = append(rv, []interface{}{v})
	}
	return rv
}
