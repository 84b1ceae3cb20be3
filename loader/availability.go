// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package loader

import (
	"github.com/patrickascher/timetable/config"
	"github.com/patrickascher/timetable/prolog"
)

// Availability of a professor in a day, block and lesson.
type Availability struct {
	ProfessorID int
	Day         string
	Block       int
	Lesson      string
}

// ExpandAvailability creates the slots of the rules.
// Empty days, blocks or lessons of a rule stand for all values of the facts.
// Unknown professors are skipped and every slot is returned once, in rule order.
func ExpandAvailability(f prolog.Facts, rules []config.Availability) []Availability {
	idx := f.Index()
	seen := map[Availability]bool{}

	var rv []Availability
	for _, rule := range rules {
		days := rule.Days
		if len(days) == 0 {
			days = f.Days
		}
		blocks := rule.Blocks
		if len(blocks) == 0 {
			blocks = f.Blocks
		}
		lessons := rule.Lessons
		if len(lessons) == 0 {
			lessons = f.Lessons
		}

		for _, prof := range rule.Professors {
			id, ok := idx.Professors[prof]
			if !ok {
				continue
			}
			for _, d := range days {
				for _, b := range blocks {
					for _, l := range lessons {
						a := Availability{ProfessorID: id, Day: d, Block: b, Lesson: l}
						if seen[a] {
							continue
						}
						seen[a] = true
						rv = append(rv, a)
					}
				}
			}
		}
	}
	return rv
}
