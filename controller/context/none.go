// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package context

// noneRenderer is used by actions which write the response themselves, like websocket upgrades.
// Error returns the error, so the controller falls back to http.Error.
type noneRenderer struct{}

func init() {
	_ = RegisterRenderer(NONE, noneRenderer{})
}

func (noneRenderer) ContentType() string { return "" }

func (noneRenderer) Write(*Response) error { return nil }

func (noneRenderer) Error(_ *Response, _ int, err error) error { return err }
