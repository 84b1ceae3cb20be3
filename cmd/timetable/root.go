// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/patrickascher/timetable/config"
	cfgViper "github.com/patrickascher/timetable/config/viper"
	"github.com/patrickascher/timetable/logger"
	"github.com/patrickascher/timetable/logger/logrus"
	"github.com/patrickascher/timetable/query"
	_ "github.com/patrickascher/timetable/query/sqlite"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix of the environment overrides.
const EnvPrefix = "TIMETABLE"

// envBind are the keys which can be set by environment variables without a config file entry.
var envBind = []string{"database.database", "server.port", "log.level", "log.format"}

// app holds the loaded configuration and logger of a command run.
type app struct {
	configFile string
	watch      bool

	cfg *config.Timetable
	log logger.Manager
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "timetable",
		Short: "Timetable database tools",
		Long: `Timetable creates the timetable SQLite database out of a YAML description
and Prolog facts, exports the facts as Excel workbook and serves a
dashboard to edit the tables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: built-in defaults)")

	root.AddCommand(newYAML2SQLCmd())
	root.AddCommand(newExecCmd(a))
	root.AddCommand(newLoadCmd(a))
	root.AddCommand(newExcelCmd(a))
	root.AddCommand(newServeCmd(a))
	return root
}

// init loads the configuration and creates the logger.
// Without a config file the defaults are used.
func (a *app) init(cmd *cobra.Command) error {
	a.cfg = config.Default()

	provider := logrus.New(logrus.Options{Output: cmd.ErrOrStderr()})
	a.log = logger.New(provider, logger.INFO)

	if a.configFile != "" {
		opt := cfgViper.FileOptions(a.configFile)
		opt.EnvPrefix = EnvPrefix
		opt.EnvAutomatic = true
		opt.EnvBind = envBind
		opt.Watch = a.watch
		opt.WatchCallback = a.reload

		if err := config.Load(config.VIPER, a.cfg, opt); err != nil {
			return err
		}
	} else if err := a.cfg.Validate(); err != nil {
		return err
	}

	provider = logrus.New(logrus.Options{Output: cmd.ErrOrStderr(), Format: a.cfg.Log.Format})
	a.log = logger.New(provider, a.level())
	return nil
}

// reload sets the new log level after a config file change.
func (a *app) reload(cfg interface{}, v *viper.Viper, e fsnotify.Event) {
	a.log.SetLogLevel(a.level())
	a.log.WithFields(logger.Fields{"file": e.Name, "level": a.cfg.Log.Level}).Info("config reloaded")
}

func (a *app) level() logger.Level {
	lvl, err := logger.ParseLevel(a.cfg.Log.Level)
	if err != nil {
		return logger.INFO
	}
	return lvl
}

// open returns a builder for the database file with the configured connection settings.
func (a *app) open(database string) (query.Builder, error) {
	c := a.cfg.Database
	c.Database = database
	b, err := query.New(c.Provider, c)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", database, err)
	}
	b.SetLogger(a.log)
	return b, nil
}
