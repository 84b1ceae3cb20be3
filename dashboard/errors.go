// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dashboard

import (
	"errors"
	"fmt"
)

// Error messages.
var (
	ErrNoSelection  = errors.New("dashboard: no row selected")
	ErrNoFields     = errors.New("dashboard: no field values")
	ErrNoRow        = errors.New("dashboard: selected row does not exist")
	ErrSession      = errors.New("dashboard: session is mandatory")
	ErrNoPrimaryKey = "dashboard: table %s has no primary key"
	ErrTable        = "dashboard: table %s is not configured"
	ErrEventType    = "dashboard: event type %s is not supported"
	errWrap         = "dashboard: %w"
)

// Kinds of an OperationError.
const (
	DuplicateKey = iota + 1
	ReferentialIntegrity
	Constraint
	Storage
)

// OperationError is returned if the database rejected a create, update or delete.
type OperationError struct {
	Kind  int
	Table string
	Err   error
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	return fmt.Sprintf("dashboard: %s: %s", e.Table, e.Err)
}

// Unwrap returns the database error.
func (e *OperationError) Unwrap() error {
	return e.Err
}
