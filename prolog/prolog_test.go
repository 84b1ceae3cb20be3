// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prolog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/patrickascher/timetable/prolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const facts = `
% constants
lecc_por_sem(40).
lecc_por_dia(8).
lecc_por_sem(35).

grupo(1, g7a).
grupo(2, 1).
prof(1, ana).
prof(2, beto).
materia(1, mate).
materia(2, edfís).

dia(lun).
dia(mar).
dia(Var).
bloque(1).
bloque(2).
leccion(a).
leccion(b).

grupo_materia_lecciones(1, g7a, mate, 5).
grupo_materia_lecciones(2, 1, edfís, 3).
prof_grupo_materia(ana, g7a, mate).
prof_grupo_materia(beto, 1, edfís).

/* grupo(9, hidden).
   prof(9, hidden). */
% materia(9, hidden).
`

func TestExtract(t *testing.T) {
	asserts := assert.New(t)

	f := prolog.Extract(facts)

	asserts.Equal([]prolog.Constant{{Name: prolog.LessonsPerWeek, Value: 40}, {Name: prolog.LessonsPerDay, Value: 8}}, f.Constants)
	asserts.Equal([]prolog.Entity{{ID: 1, Name: "g7a"}, {ID: 2, Name: "1"}}, f.Groups)
	asserts.Equal([]prolog.Entity{{ID: 1, Name: "ana"}, {ID: 2, Name: "beto"}}, f.Professors)
	asserts.Equal([]prolog.Entity{{ID: 1, Name: "mate"}, {ID: 2, Name: "edfís"}}, f.Subjects)
	// lecc_por_dia(8) is not a day and variables are skipped.
	asserts.Equal([]string{"lun", "mar"}, f.Days)
	asserts.Equal([]int{1, 2}, f.Blocks)
	asserts.Equal([]string{"a", "b"}, f.Lessons)
	asserts.Equal([]prolog.GroupSubject{
		{ID: 1, Group: "g7a", Subject: "mate", Lessons: 5},
		{ID: 2, Group: "1", Subject: "edfís", Lessons: 3},
	}, f.GroupSubjects)
	asserts.Equal([]prolog.Assignment{
		{Professor: "ana", Group: "g7a", Subject: "mate"},
		{Professor: "beto", Group: "1", Subject: "edfís"},
	}, f.Assignments)

	v, ok := f.Constant(prolog.LessonsPerWeek)
	asserts.True(ok)
	asserts.Equal(40, v)
	_, ok = f.Constant("nope")
	asserts.False(ok)
}

func TestExtract_Empty(t *testing.T) {
	asserts := assert.New(t)

	f := prolog.Extract("foo(bar).\n")
	asserts.Nil(f.Constants)
	asserts.Nil(f.Groups)
	asserts.Nil(f.GroupSubjects)
}

func TestFacts_Index(t *testing.T) {
	asserts := assert.New(t)

	idx := prolog.Extract(facts).Index()
	asserts.Equal(map[string]int{"g7a": 1, "1": 2}, idx.Groups)
	asserts.Equal(map[string]int{"mate": 1, "edfís": 2}, idx.Subjects)
	asserts.Equal(map[string]int{"ana": 1, "beto": 2}, idx.Professors)
}

func TestExtractFile(t *testing.T) {
	asserts := assert.New(t)

	name := filepath.Join(t.TempDir(), "tt.pl")
	require.NoError(t, os.WriteFile(name, []byte(facts), 0644))

	f, err := prolog.ExtractFile(name)
	asserts.NoError(err)
	asserts.Equal(2, len(f.Groups))

	_, err = prolog.ExtractFile(filepath.Join(t.TempDir(), "nope.pl"))
	asserts.Error(err)
}
