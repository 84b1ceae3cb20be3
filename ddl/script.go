// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ddl

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/patrickascher/timetable/query"
)

// Error messages.
var (
	ErrEmptyScript = errors.New("empty cmd list")
)

// a command ends with a semicolon followed by optional blanks and a newline or the end of input.
var regCommandEnd = regexp.MustCompile(`;[^\S\n]*(\n|$)`)

// Split the script into its commands.
// Each command is trimmed and terminated by a semicolon, empty commands are dropped.
func Split(script string) []string {
	var commands []string
	for _, cmd := range regCommandEnd.Split(script, -1) {
		if cmd = strings.TrimSpace(cmd); cmd != "" {
			commands = append(commands, cmd+";")
		}
	}
	return commands
}

// Run executes every command of the script in its own statement.
// The command and its result are written to w. A failing command is reported and the next one is executed.
// ErrEmptyScript returns if the script has no commands.
func Run(b query.Builder, script string, w io.Writer) error {
	commands := Split(script)
	if len(commands) == 0 {
		return ErrEmptyScript
	}

	q := b.Query()
	for _, cmd := range commands {
		fmt.Fprintln(w, cmd)
		res, err := q.Exec([]string{cmd}, nil)
		if err != nil {
			fmt.Fprintf(w, "Error: %s\n", err)
			continue
		}
		n, err := res[0].RowsAffected()
		if err != nil {
			fmt.Fprintln(w, "ok")
			continue
		}
		fmt.Fprintf(w, "ok (%d rows affected)\n", n)
	}
	return nil
}

// RunStrict executes every command of the script and stops at the first error.
func RunStrict(b query.Builder, script string) error {
	q := b.Query()
	for _, cmd := range Split(script) {
		if _, err := q.Exec([]string{cmd}, nil); err != nil {
			return fmt.Errorf("ddl: %s: %w", firstLine(cmd), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
