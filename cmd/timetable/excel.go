// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/patrickascher/timetable/export"
	"github.com/patrickascher/timetable/prolog"
	"github.com/spf13/cobra"
)

func newExcelCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "excel <prolog_file>",
		Short: "Write the Prolog facts as Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isFile(args[0]) {
				return fmt.Errorf("Prolog file '%s' does not exist", args[0])
			}
			facts, err := prolog.ExtractFile(args[0])
			if err != nil {
				return err
			}

			if out == "" {
				out = a.cfg.Data.Excel
			}
			sheets := export.Timetable(facts, a.cfg.Availability, a.cfg.Data.LessonsPerWeek)
			if err = export.WriteFile(out, sheets); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Excel file '%s' created successfully.\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file (default: data.excel of the config)")
	return cmd
}
