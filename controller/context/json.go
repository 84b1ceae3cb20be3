// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package context

import (
	"encoding/json"
	"net/http"
)

func init() {
	_ = RegisterRenderer(JSON, jsonRenderer{})
}

// jsonRenderer writes all response values as one json object.
type jsonRenderer struct{}

func (jsonRenderer) ContentType() string {
	return "application/json"
}

// Write marshals the values before the status is written, so a marshal error can still be reported.
func (jsonRenderer) Write(r *Response) error {
	j, err := json.Marshal(r.Values())
	if err != nil {
		return err
	}
	r.WriteStatus()
	_, err = r.Writer().Write(j)
	return err
}

// Error writes {"error": message} with the status code.
func (jr jsonRenderer) Error(r *Response, code int, err error) error {
	if code == 0 {
		code = http.StatusInternalServerError
	}
	r.SetValue("error", err.Error())
	r.SetStatus(code)
	return r.Render(JSON)
}
