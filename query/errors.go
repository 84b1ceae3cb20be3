// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import "errors"

// Statement errors.
var (
	ErrValueMissing = "query: no %s value is set (%s)"
	ErrColumn       = "query: column (%s) does not exist in (%s)"
	ErrNoCondition  = "query: %s of (%s) without where clause"
)

// Constraint kinds.
// A *ConstraintError always matches ErrConstraint and one of the kinds with errors.Is.
var (
	ErrConstraint = errors.New("query: constraint violation")
	ErrUnique     = errors.New("query: unique constraint")
	ErrForeignKey = errors.New("query: foreign key constraint")
	ErrNotNull    = errors.New("query: not null constraint")
	ErrCheck      = errors.New("query: check constraint")
)

// ConstraintError is returned by Exec if the database rejected a statement because of an integrity rule.
type ConstraintError struct {
	Kind error
	// Message is the database message without driver decoration.
	Message string
	Err     error
}

// NewConstraintError creates a new *ConstraintError.
// If message is empty, the error message of err is used.
func NewConstraintError(kind error, message string, err error) *ConstraintError {
	if message == "" && err != nil {
		message = err.Error()
	}
	return &ConstraintError{Kind: kind, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ConstraintError) Error() string {
	return e.Message
}

// Unwrap returns the kind, ErrConstraint and the driver error.
func (e *ConstraintError) Unwrap() []error {
	rv := []error{ErrConstraint}
	if e.Kind != nil && e.Kind != ErrConstraint {
		rv = append(rv, e.Kind)
	}
	if e.Err != nil {
		rv = append(rv, e.Err)
	}
	return rv
}
