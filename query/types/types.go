// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package types holds the sanitized column types over the database providers.
// A provider maps its raw sql type to one of these kinds, the raw type stays accessible.
package types

// sanitized types over multiple databases.
const (
	BOOL     = "Bool"
	INTEGER  = "Integer"
	FLOAT    = "Float"
	TEXT     = "Text"
	TIME     = "Time"
	DATE     = "Date"
	DATETIME = "DateTime"
)

// Interface of the types to access the sanitized kind and the raw sql data.
type Interface interface {
	Kind() string
	Raw() string
}

// NewBool returns a ptr to a Bool.
func NewBool(raw string) *Bool {
	return &Bool{common: common{name: BOOL, raw: raw}}
}

// NewInt returns a ptr to a Int.
func NewInt(raw string) *Int {
	return &Int{common: common{name: INTEGER, raw: raw}}
}

// NewFloat returns a ptr to a Float.
func NewFloat(raw string) *Float {
	return &Float{common: common{name: FLOAT, raw: raw}}
}

// NewText returns a ptr to a Text.
func NewText(raw string) *Text {
	return &Text{common: common{name: TEXT, raw: raw}}
}

// NewTime returns a ptr to a Time.
func NewTime(raw string) *Time {
	return &Time{common: common{name: TIME, raw: raw}}
}

// NewDate returns a ptr to a Date.
func NewDate(raw string) *Date {
	return &Date{common: common{name: DATE, raw: raw}}
}

// NewDateTime returns a ptr to a DateTime.
func NewDateTime(raw string) *DateTime {
	return &DateTime{common: common{name: DATETIME, raw: raw}}
}

// IsNumeric reports if the kind holds numbers.
func IsNumeric(kind string) bool {
	return kind == INTEGER || kind == FLOAT
}

type common struct {
	raw  string
	name string
}

func (c *common) Raw() string {
	return c.raw
}

func (c *common) Kind() string {
	return c.name
}

// Int represents all kind of sql integers
type Int struct {
	common
}

// Bool represents all kind of sql booleans.
type Bool struct {
	common
}

// Text represents all kind of sql character, clob and blob columns.
type Text struct {
	Size int
	common
}

// Time represents all kind of sql time
type Time struct {
	common
}

// Date represents all kind of sql dates
type Date struct {
	common
}

// DateTime represents all kind of sql dateTimes
type DateTime struct {
	common
}

// Float represents all kind of sql floats
type Float struct {
	common
}
