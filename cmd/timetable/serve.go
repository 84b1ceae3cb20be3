// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"os/signal"
	"syscall"

	"github.com/patrickascher/timetable/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard on the configured port",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.open(a.cfg.Database.Database)
			if err != nil {
				return err
			}
			defer b.Close()

			s, err := server.New(a.cfg, b, a.log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return s.Start(ctx)
		},
	}
	cmd.Flags().BoolVar(&a.watch, "watch", false, "reload the log level on config file changes")
	return cmd
}

