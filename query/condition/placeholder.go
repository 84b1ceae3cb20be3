// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package condition

import (
	"strconv"
	"strings"
)

// PLACEHOLDER is the placeholder used in all statements before rendering.
const PLACEHOLDER = "?"

// Placeholder of a provider.
// SQLite accepts "?" and the numbered form "?NNN".
type Placeholder struct {
	Char    string
	Numeric bool
}

// ReplacePlaceholders rewrites every PLACEHOLDER of stmt into the provider form.
// Numbered placeholders start at 1 for each call.
func ReplacePlaceholders(stmt string, p Placeholder) string {
	if !p.Numeric && p.Char == PLACEHOLDER {
		return stmt
	}

	var sb strings.Builder
	n := 0
	for {
		i := strings.Index(stmt, PLACEHOLDER)
		if i == -1 {
			sb.WriteString(stmt)
			return sb.String()
		}
		sb.WriteString(stmt[:i])
		sb.WriteString(p.Char)
		if p.Numeric {
			n++
			sb.WriteString(strconv.Itoa(n))
		}
		stmt = stmt[i+len(PLACEHOLDER):]
	}
}
