// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dashboard

import (
	"github.com/patrickascher/timetable/stringer"
)

// Widget kinds.
const (
	Dropdown = "dropdown"
	Number   = "number"
	Text     = "text"
)

// Widget is the input control of a column.
type Widget struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Label       string   `json:"label"`
	Placeholder string   `json:"placeholder"`
	Options     []Option `json:"options,omitempty"`
	Navigate    *Button  `json:"navigate,omitempty"`
}

// Button with its event identifier.
type Button struct {
	Label string     `json:"label"`
	ID    Identifier `json:"id"`
}

// BuildForm returns one widget per column in schema order.
// Foreign key columns get a dropdown with the given options and a button to navigate to the referenced table.
// Numeric columns get a number field, all others a text field.
func BuildForm(t Table, options map[string][]Option) []Widget {
	widgets := make([]Widget, 0, len(t.Columns))
	for _, c := range t.Columns {
		w := Widget{Name: c.Name, Label: stringer.Title(c.Name) + ":"}

		if fk, ok := t.ForeignKey(c.Name); ok {
			w.Kind = Dropdown
			w.Placeholder = "Select " + stringer.Spaced(c.Name) + "..."
			w.Options = options[c.Name]
			w.Navigate = &Button{
				Label: "Go to " + stringer.Title(fk.RefTable),
				ID:    Identifier{Type: EventNavigate, Name: c.Name, Target: fk.RefTable},
			}
		} else {
			w.Kind = Text
			if c.Numeric() {
				w.Kind = Number
			}
			w.Placeholder = "Enter " + stringer.Spaced(c.Name) + "..."
		}

		widgets = append(widgets, w)
	}
	return widgets
}
