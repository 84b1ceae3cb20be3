// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/patrickascher/timetable/loader"
	"github.com/spf13/cobra"
)

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load <prolog_file> <sql_file> <db_file>",
		Short: "Create the database and load the Prolog facts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			prologFile, sqlFile, db := args[0], args[1], args[2]
			if !isFile(prologFile) {
				return fmt.Errorf("Prolog file '%s' does not exist", prologFile)
			}
			if !isFile(sqlFile) {
				return fmt.Errorf("SQL file '%s' does not exist", sqlFile)
			}

			err := loader.Load(loader.Options{
				PrologFile:   prologFile,
				SchemaFile:   sqlFile,
				DBFile:       db,
				Availability: a.cfg.Availability,
			}, a.open, a.log)
			if err != nil {
				return fmt.Errorf("creating database: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Database created and loaded successfully at %s\n", db)
			return nil
		},
	}
}

// isFile reports if name is an existing regular file.
func isFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.Mode().IsRegular()
}
