// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package prolog extracts the timetable facts out of a Prolog source file.
//
// Only fixed fact shapes are recognized:
//	lecc_por_sem(40).                         constant
//	lecc_por_dia(8).                          constant
//	grupo(1, g7a).                            group id and name
//	prof(1, ana).                             professor id and name
//	materia(1, mate).                         subject id and name
//	dia(lun).                                 day
//	bloque(1).                                block
//	leccion(a).                               lesson
//	grupo_materia_lecciones(1, g7a, mate, 5). group subject with lessons per week
//	prof_grupo_materia(ana, g7a, mate).       professor teaching a group subject
// Everything else is ignored. Line comments (%) and block comments are removed before matching.
package prolog

import (
	"os"
	"regexp"
	"strconv"
)

// Constant names.
const (
	LessonsPerWeek = "lecc_por_sem"
	LessonsPerDay  = "lecc_por_dia"
)

// word is an atom or number. Letters of any script are allowed.
const word = `[\p{L}\p{N}_]+`

var (
	regComment        = regexp.MustCompile(`(?s)/\*.*?\*/|%[^\n]*`)
	regLessonsPerWeek = regexp.MustCompile(`\blecc_por_sem\((\d+)\)`)
	regLessonsPerDay  = regexp.MustCompile(`\blecc_por_dia\((\d+)\)`)
	regGroup          = regexp.MustCompile(`\bgrupo\((\d+),\s*(` + word + `)\)`)
	regProfessor      = regexp.MustCompile(`\bprof\((\d+),\s*(` + word + `)\)`)
	regSubject        = regexp.MustCompile(`\bmateria\((\d+),\s*(` + word + `)\)`)
	regDay            = regexp.MustCompile(`\bdia\((\p{Ll}` + `[\p{L}\p{N}_]*)\)`)
	regBlock          = regexp.MustCompile(`\bbloque\((\d+)\)`)
	regLesson         = regexp.MustCompile(`\bleccion\((\p{Ll}` + `[\p{L}\p{N}_]*)\)`)
	regGroupSubject   = regexp.MustCompile(`\bgrupo_materia_lecciones\((\d+),\s*(` + word + `),\s*(` + word + `),\s*(\d+)\)`)
	regAssignment     = regexp.MustCompile(`\bprof_grupo_materia\((` + word + `),\s*(` + word + `),\s*(` + word + `)\)`)
)

// Constant is a named number.
type Constant struct {
	Name  string
	Value int
}

// Entity is a fact with an id and a name.
type Entity struct {
	ID   int
	Name string
}

// GroupSubject defines how many lessons a subject has per week in a group.
// Group and Subject are names.
type GroupSubject struct {
	ID      int
	Group   string
	Subject string
	Lessons int
}

// Assignment of a professor to a group subject, by names.
type Assignment struct {
	Professor string
	Group     string
	Subject   string
}

// Facts of a Prolog file in source order.
type Facts struct {
	Constants     []Constant
	Groups        []Entity
	Professors    []Entity
	Subjects      []Entity
	Days          []string
	Blocks        []int
	Lessons       []string
	GroupSubjects []GroupSubject
	Assignments   []Assignment
}

// Index maps the names of groups, subjects and professors to their ids.
type Index struct {
	Groups     map[string]int
	Subjects   map[string]int
	Professors map[string]int
}

// ExtractFile reads the file and extracts its facts.
func ExtractFile(name string) (Facts, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return Facts{}, err
	}
	return Extract(string(b)), nil
}

// Extract the facts of the content.
// For the constants only the first occurrence counts.
func Extract(content string) Facts {
	content = regComment.ReplaceAllString(content, "")

	var f Facts
	if m := regLessonsPerWeek.FindStringSubmatch(content); m != nil {
		f.Constants = append(f.Constants, Constant{Name: LessonsPerWeek, Value: atoi(m[1])})
	}
	if m := regLessonsPerDay.FindStringSubmatch(content); m != nil {
		f.Constants = append(f.Constants, Constant{Name: LessonsPerDay, Value: atoi(m[1])})
	}

	f.Groups = entities(regGroup, content)
	f.Professors = entities(regProfessor, content)
	f.Subjects = entities(regSubject, content)

	for _, m := range regDay.FindAllStringSubmatch(content, -1) {
		f.Days = append(f.Days, m[1])
	}
	for _, m := range regBlock.FindAllStringSubmatch(content, -1) {
		f.Blocks = append(f.Blocks, atoi(m[1]))
	}
	for _, m := range regLesson.FindAllStringSubmatch(content, -1) {
		f.Lessons = append(f.Lessons, m[1])
	}
	for _, m := range regGroupSubject.FindAllStringSubmatch(content, -1) {
		f.GroupSubjects = append(f.GroupSubjects, GroupSubject{ID: atoi(m[1]), Group: m[2], Subject: m[3], Lessons: atoi(m[4])})
	}
	for _, m := range regAssignment.FindAllStringSubmatch(content, -1) {
		f.Assignments = append(f.Assignments, Assignment{Professor: m[1], Group: m[2], Subject: m[3]})
	}

	return f
}

// Constant returns the value of the named constant.
func (f Facts) Constant(name string) (int, bool) {
	for _, c := range f.Constants {
		if c.Name == name {
			return c.Value, true
		}
	}
	return 0, false
}

// Index builds the name to id maps.
// Group names made of digits are names like any other.
func (f Facts) Index() Index {
	return Index{
		Groups:     index(f.Groups),
		Subjects:   index(f.Subjects),
		Professors: index(f.Professors),
	}
}

func index(entities []Entity) map[string]int {
	rv := make(map[string]int, len(entities))
	for _, e := range entities {
		rv[e.Name] = e.ID
	}
	return rv
}

func entities(reg *regexp.Regexp, content string) []Entity {
	var rv []Entity
	for _, m := range reg.FindAllStringSubmatch(content, -1) {
		rv = append(rv, Entity{ID: atoi(m[1]), Name: m[2]})
	}
	return rv
}

// atoi is only called on \d+ matches.
func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}
