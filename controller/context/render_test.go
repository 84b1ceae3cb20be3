// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package context_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/patrickascher/timetable/controller/context"
	"github.com/patrickascher/timetable/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type rendererMock struct {
	mock.Mock
}

func (m *rendererMock) ContentType() string {
	return m.Called().String(0)
}

func (m *rendererMock) Write(r *context.Response) error {
	return m.Called(r).Error(0)
}

func (m *rendererMock) Error(r *context.Response, code int, err error) error {
	return m.Called(r, code, err).Error(0)
}

// TestRegisterRenderer tests:
// - registration of a renderer
// - error if a renderer was not registered or is no renderer
// - the names of all registered render types
// - the content type is set before Write
func TestRegisterRenderer(t *testing.T) {
	asserts := assert.New(t)
	m := &rendererMock{}

	// ok: register render type
	asserts.NoError(context.RegisterRenderer("mock", m))

	// error: already registered
	asserts.Error(context.RegisterRenderer("mock", m))

	// error: unknown render type
	r, err := context.RenderType("mock-not-existing")
	asserts.Nil(r)
	asserts.Equal(fmt.Sprintf(registry.ErrUnknownEntry, "render_mock-not-existing"), errors.Unwrap(err).Error())

	// error: registry entry of another type
	asserts.NoError(registry.Set("render_string", "no renderer"))
	r, err = context.RenderType("string")
	asserts.Nil(r)
	asserts.Equal("render: string is no renderer", err.Error())

	asserts.Equal([]string{context.JSON, "mock", context.NONE, "string"}, context.RenderTypes())

	// ok: existing renderer
	r, err = context.RenderType("mock")
	asserts.NoError(err)
	asserts.Equal(m, r)

	w := httptest.NewRecorder()
	res := context.New(w, &http.Request{}).Response
	m.On("ContentType").Once().Return("text/csv")
	m.On("Write", res).Once().Return(nil)
	asserts.NoError(res.Render("mock"))
	asserts.Equal("text/csv", w.Header().Get("Content-Type"))

	m.AssertExpectations(t)
}
