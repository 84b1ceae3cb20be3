// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import "time"

// Config sql struct.
type Config struct {
	Provider string `mapstructure:"provider"`
	Database string `mapstructure:"database" validate:"required"`

	MaxIdleConnections int           `mapstructure:"maxidleconnections"`
	MaxOpenConnections int           `mapstructure:"maxopenconnections"`
	MaxConnLifetime    time.Duration `mapstructure:"maxconnlifetime"`
	// Timeout is the busy timeout of the database file.
	Timeout time.Duration `mapstructure:"timeout"`

	PreQuery []string `mapstructure:"prequery"`
}
