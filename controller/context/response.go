// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package context

import (
	"fmt"
	"net/http"
)

// Response struct.
type Response struct {
	w      http.ResponseWriter
	status int
	data   map[string]interface{}
}

// SetValue as key/value pair.
func (w *Response) SetValue(key string, value interface{}) {
	w.data[key] = value
}

// Value by the key.
// If the key does not exist, nil will return.
func (w *Response) Value(key string) interface{} {
	if val, ok := w.data[key]; ok {
		return val
	}
	return nil
}

// Values return all defined values.
func (w *Response) Values() map[string]interface{} {
	return w.data
}

// ResetValues deletes all values.
func (w *Response) ResetValues() {
	w.data = make(map[string]interface{})
}

// SetStatus of the response, default is 200.
func (w *Response) SetStatus(code int) {
	w.status = code
}

// Status of the response.
func (w *Response) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// WriteStatus writes the status header if one was set.
func (w *Response) WriteStatus() {
	if w.status != 0 {
		w.w.WriteHeader(w.status)
	}
}

// Writer returns the http.ResponseWriter.
func (w *Response) Writer() http.ResponseWriter {
	return w.w
}

// Render the values with the renderer of the render type.
func (w *Response) Render(renderType string) error {
	r, err := RenderType(renderType)
	if err != nil {
		return fmt.Errorf("context: %w", err)
	}
	if ct := r.ContentType(); ct != "" {
		w.w.Header().Set("Content-Type", ct)
	}
	return r.Write(w)
}

// Error discards all values and renders the error with the renderer of the render type.
func (w *Response) Error(code int, err error, renderType string) error {
	r, rErr := RenderType(renderType)
	if rErr != nil {
		return fmt.Errorf("context: %w", rErr)
	}
	w.ResetValues()
	return r.Error(w, code, err)
}

// newResponse initialization the Response struct.
func newResponse(w http.ResponseWriter) *Response {
	return &Response{w: w, data: make(map[string]interface{})}
}
