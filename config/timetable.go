// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"time"

	valid "github.com/go-playground/validator/v10"
	"github.com/patrickascher/timetable/query"
)

// Timetable is the application configuration.
type Timetable struct {
	Database     query.Config   `mapstructure:"database"`
	Data         Data           `mapstructure:"data"`
	Server       Server         `mapstructure:"server"`
	Dashboard    Dashboard      `mapstructure:"dashboard"`
	Availability []Availability `mapstructure:"availability" validate:"dive"`
	Log          Log            `mapstructure:"log"`

	// lists are stashed between BeforeLoad and AfterLoad.
	lists *lists
}

type lists struct {
	tables       []string
	availability []Availability
}

// Data holds the output file of the excel export.
type Data struct {
	Excel string `mapstructure:"excel"`
	// LessonsPerWeek is used if the facts define no lecc_por_sem constant.
	LessonsPerWeek int `mapstructure:"lessonsperweek" validate:"gte=0"`
}

// Server holds the http settings of the dashboard.
type Server struct {
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	AllowedOrigins  []string      `mapstructure:"allowedorigins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdowntimeout"`
	// SessionTimeout is the idle time after which a dashboard session is dropped.
	SessionTimeout time.Duration `mapstructure:"sessiontimeout"`
}

// Dashboard holds the table list and the view settings.
type Dashboard struct {
	Title    string   `mapstructure:"title" validate:"required"`
	Tables   []string `mapstructure:"tables" validate:"min=1,dive,required"`
	PageSize int      `mapstructure:"pagesize" validate:"min=1"`
}

// Availability rule of professors.
// An empty Days, Blocks or Lessons list means every value of the facts.
type Availability struct {
	Professors []string `mapstructure:"professors" validate:"min=1,dive,required"`
	Days       []string `mapstructure:"days"`
	Blocks     []int    `mapstructure:"blocks"`
	Lessons    []string `mapstructure:"lessons"`
}

// Log settings.
type Log struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=trace debug info warning warn error panic TRACE DEBUG INFO WARNING WARN ERROR PANIC"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json"`
}

// Default returns a new configuration with the default values.
func Default() *Timetable {
	return &Timetable{
		Database: query.Config{
			Provider:           "sqlite",
			Database:           "data/timetable.db",
			MaxOpenConnections: 4,
			MaxIdleConnections: 2,
			Timeout:            5 * time.Second,
		},
		Data: Data{
			Excel:          "data/timetable.xlsx",
			LessonsPerWeek: 40,
		},
		Server: Server{
			Port:            8050,
			ShutdownTimeout: 5 * time.Second,
			SessionTimeout:  12 * time.Hour,
		},
		Dashboard: Dashboard{
			Title:    "Timetable Database Manager",
			Tables:   DefaultTables(),
			PageSize: 10,
		},
		Availability: DefaultAvailability(),
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultTables returns the dashboard tables in tab order.
func DefaultTables() []string {
	return []string{
		"constantes",
		"grupos",
		"materias",
		"profesores",
		"grupo_materias",
		"prof_grupo_materias",
		"dias",
		"bloques",
		"lecciones",
		"disponibilidad_profesores",
	}
}

// DefaultAvailability returns the availability rules of the school year the data was collected for.
func DefaultAvailability() []Availability {
	return []Availability{
		{Professors: []string{"angie"}, Days: []string{"mie"}},
		{Professors: []string{"mpaula"}, Days: []string{"lun", "mar", "jue"}},
		{Professors: []string{"alonso"}, Days: []string{"mie"}},
		{Professors: []string{"melissa", "jonathan", "gina", "audry", "daleana", "mayela", "mjose", "sol", "alisson"}},
	}
}

// Validate the configuration.
func (t *Timetable) Validate() error {
	if err := valid.New().Struct(t); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// BeforeLoad clears the list settings.
// The provider decoder merges slices element-wise, a configured list has to replace the default list.
func (t *Timetable) BeforeLoad() {
	t.lists = &lists{tables: t.Dashboard.Tables, availability: t.Availability}
	t.Dashboard.Tables, t.Availability = nil, nil
}

// AfterLoad restores the lists which were not configured and validates the result.
func (t *Timetable) AfterLoad() error {
	if t.lists != nil {
		if t.Dashboard.Tables == nil {
			t.Dashboard.Tables = t.lists.tables
		}
		if t.Availability == nil {
			t.Availability = t.lists.availability
		}
		t.lists = nil
	}
	return t.Validate()
}
