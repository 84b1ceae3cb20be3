// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package registry_test

import (
	"fmt"
	"testing"

	"github.com/patrickascher/timetable/registry"
	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	test := assert.New(t)

	// error: no name and value
	err := registry.Set("", nil)
	test.Equal(registry.ErrMandatoryArguments, err)

	// error: no value
	err = registry.Set("test_foo", nil)
	test.Equal(registry.ErrMandatoryArguments, err)

	// error: no name
	err = registry.Set("", "bar")
	test.Equal(registry.ErrMandatoryArguments, err)

	// ok
	err = registry.Set("test_foo", "bar")
	test.NoError(err)

	// error: multiple registration
	err = registry.Set("test_foo", "bar")
	test.Error(err)
	test.Equal(fmt.Sprintf(registry.ErrAlreadyExists, "test_foo"), err.Error())
}

func TestGet(t *testing.T) {
	test := assert.New(t)
	test.NoError(registry.Set("get_foo", 1))

	v, err := registry.Get("get_foo")
	test.NoError(err)
	test.Equal(1, v)

	v, err = registry.Get("get_bar")
	test.Error(err)
	test.Nil(v)
	test.Equal(fmt.Sprintf(registry.ErrUnknownEntry, "get_bar"), err.Error())
}

func TestNames(t *testing.T) {
	test := assert.New(t)
	test.NoError(registry.Set("prefix_b", "B"))
	test.NoError(registry.Set("prefix_a", "A"))
	test.NoError(registry.Set("other_c", "C"))

	test.Equal([]string{"prefix_a", "prefix_b"}, registry.Names("prefix_"))
	test.Nil(registry.Names("none_"))
}
