// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/patrickascher/timetable/ddl"
	"github.com/spf13/cobra"
)

func newYAML2SQLCmd() *cobra.Command {
	var validate bool

	cmd := &cobra.Command{
		Use:   "yaml2sql <spec_file.yaml>",
		Short: "Print the SQLite DDL of a YAML database description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("File %s not found", file)
			}

			doc, err := ddl.LoadFile(file)
			if err != nil {
				return err
			}
			if validate {
				if err = ddl.Validate(doc); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), ddl.Generate(doc))
			return nil
		},
	}
	cmd.Flags().BoolVar(&validate, "validate", false, "validate the description before generating")
	return cmd
}
