// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stringer converts database identifiers into display labels.
package stringer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Spaced replaces the underscores of the identifier with spaces.
func Spaced(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

// Title of the given identifier.
// "grupo_materias" becomes "Grupo Materias".
func Title(s string) string {
	return cases.Title(language.Und).String(Spaced(s))
}
