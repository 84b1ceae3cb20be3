// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/patrickascher/timetable/controller"
	"github.com/patrickascher/timetable/dashboard"
	"github.com/patrickascher/timetable/export"
	"github.com/patrickascher/timetable/logger"
)

// Error messages.
var (
	ErrTableParam = errors.New("server: table param is mandatory")
)

// dashboardController serves the json api of the dashboard router.
type dashboardController struct {
	controller.Base

	dashboard *dashboard.Router
	sessions  *sessions
	hub       *hub
	title     string
	pageSize  int
}

// Tables returns the title, the page size and the tabs.
func (c *dashboardController) Tables() {
	c.Set("title", c.title)
	c.Set("pageSize", c.pageSize)
	c.Set("tabs", c.dashboard.Tabs())
}

// Table returns the view and the form widgets of a table.
func (c *dashboardController) Table() {
	table, ok := c.table()
	if !ok {
		return
	}

	view, err := c.dashboard.View(table)
	if err != nil {
		c.Error(http.StatusInternalServerError, err)
		return
	}
	form, err := c.dashboard.Form(table)
	if err != nil {
		c.Error(http.StatusInternalServerError, err)
		return
	}
	c.Set("view", view)
	c.Set("form", form)
}

// Export downloads the view of a table as xlsx.
func (c *dashboardController) Export() {
	table, ok := c.table()
	if !ok {
		return
	}

	view, err := c.dashboard.View(table)
	if err != nil {
		c.Error(http.StatusInternalServerError, err)
		return
	}
	c.Set(sheetKey, export.Sheet{Name: view.Table, Header: view.Header(), Rows: view.Values()})
	c.SetRenderType(RenderXLSX)
}

// Event dispatches a json event in the session of the request cookie.
// After a create, update or delete the refreshed views are broadcast to all sockets.
func (c *dashboardController) Event() {
	var ev dashboard.Event
	if err := c.Context().Request.Decode(&ev); err != nil {
		c.Error(http.StatusBadRequest, err)
		return
	}

	r := c.Context().Request.HTTPRequest()
	sess := c.sessions.get(c.Context().Response.Writer(), r)
	state, err := c.dashboard.Dispatch(sess, ev)
	if err != nil {
		c.Error(http.StatusBadRequest, err)
		return
	}
	if state.Mutated {
		c.hub.broadcast(r.Context(), state.Refresh(), nil)
	}
	c.Set("state", state)
}

// Socket upgrades the connection and dispatches the received events in a session of the connection.
// Every state is answered to the sender, after a mutation the refreshed views are broadcast to the other sockets.
func (c *dashboardController) Socket() {
	c.SetRenderType(controller.RenderNone)

	r := c.Context().Request.HTTPRequest()
	ip := c.Context().Request.IP()
	conn, err := websocket.Accept(c.Context().Response.Writer(), r, &websocket.AcceptOptions{OriginPatterns: c.hub.origins})
	if err != nil {
		c.hub.log.WithFields(logger.Fields{"error": err.Error(), "ip": ip}).Warning("websocket accept")
		return
	}
	defer conn.CloseNow()
	c.hub.log.WithFields(logger.Fields{"ip": ip}).Debug("websocket connected")

	c.hub.add(conn)
	defer c.hub.remove(conn)

	ctx := r.Context()
	sess := c.dashboard.NewSession()
	for {
		var ev dashboard.Event
		if err = wsjson.Read(ctx, conn, &ev); err != nil {
			if websocket.CloseStatus(err) == -1 {
				c.hub.log.WithFields(logger.Fields{"error": err.Error(), "ip": ip}).Debug("websocket read")
			}
			return
		}

		state, err := c.dashboard.Dispatch(sess, ev)
		if err != nil {
			if err = wsjson.Write(ctx, conn, map[string]string{"error": err.Error()}); err != nil {
				return
			}
			continue
		}
		if err = wsjson.Write(ctx, conn, state); err != nil {
			return
		}
		if state.Mutated {
			c.hub.broadcast(ctx, state.Refresh(), conn)
		}
	}
}

// table returns the table param.
// A not configured table ends with http.StatusNotFound.
func (c *dashboardController) table() (string, bool) {
	param, err := c.Context().Request.Param("table")
	if err != nil || len(param) == 0 || param[0] == "" {
		c.Error(http.StatusBadRequest, ErrTableParam)
		return "", false
	}
	if !c.dashboard.Allowed(param[0]) {
		c.Error(http.StatusNotFound, fmt.Errorf(dashboard.ErrTable, param[0]))
		return "", false
	}
	return param[0], true
}
