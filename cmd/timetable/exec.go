// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/patrickascher/timetable/ddl"
	"github.com/spf13/cobra"
)

func newExecCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <db_filename.db>",
		Short: "Run the SQL script of stdin against an existing database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db := args[0]
			if _, err := os.Stat(db); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("File %s not found", db)
			}

			script, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}

			b, err := a.open(db)
			if err != nil {
				return err
			}
			defer b.Close()

			err = ddl.Run(b, string(script), cmd.OutOrStdout())
			if errors.Is(err, ddl.ErrEmptyScript) {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			} else if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Done creating %s\n", db)
			return nil
		},
	}
}
