// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/patrickascher/timetable/query"
	"github.com/stretchr/testify/assert"
)

func TestNewNullString(t *testing.T) {
	asserts := assert.New(t)

	test := query.NewNullString("test", true)
	asserts.Equal("test", test.String)
	asserts.True(test.Valid)

	test = query.NewNullString("", false)
	asserts.Equal("", test.String)
	asserts.False(test.Valid)
}

func TestNewNullInt(t *testing.T) {
	asserts := assert.New(t)

	test := query.NewNullInt(1, true)
	asserts.Equal(int64(1), test.Int64)
	asserts.True(test.Valid)

	test = query.NewNullInt(0, false)
	asserts.Equal(int64(0), test.Int64)
	asserts.False(test.Valid)
}

func TestSanitizeToString(t *testing.T) {
	asserts := assert.New(t)

	var tests = []struct {
		value    interface{}
		expected string
	}{
		{nil, ""},
		{"text", "text"},
		{[]byte("bytes"), "bytes"},
		{1, "1"},
		{int64(42), "42"},
		{1.5, "1.5"},
		{float64(40), "40"},
		{true, "1"},
		{query.NewNullString("x", true), "x"},
		{query.NewNullString("x", false), ""},
		{query.NewNullInt(7, true), "7"},
		{query.NewNullInt(7, false), ""},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%v", test.value), func(t *testing.T) {
			v, err := query.SanitizeToString(test.value)
			asserts.NoError(err)
			asserts.Equal(test.expected, v)
		})
	}

	_, err := query.SanitizeToString(struct{}{})
	asserts.Error(err)
	asserts.Equal(fmt.Sprintf(query.ErrSanitize, struct{}{}, "struct {}"), err.Error())
}

func TestNull_JSON(t *testing.T) {
	asserts := assert.New(t)

	b, err := json.Marshal(query.NewNullString("a", true))
	asserts.NoError(err)
	asserts.Equal(`"a"`, string(b))
	b, err = json.Marshal(query.NewNullInt(0, false))
	asserts.NoError(err)
	asserts.Equal(`null`, string(b))

	var s query.NullString
	asserts.NoError(json.Unmarshal([]byte(`null`), &s))
	asserts.False(s.Valid)
	var i query.NullInt
	asserts.NoError(json.Unmarshal([]byte(`"12"`), &i))
	asserts.True(i.Valid)
	asserts.Equal(int64(12), i.Int64)
}
