// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package server

import (
	"net/http"

	"github.com/patrickascher/timetable/router"
	"github.com/patrickascher/timetable/router/jsrouter"
	"github.com/patrickascher/timetable/router/middleware"
)

// initHooks will initialize all pre-defined server hooks.
func (s *Server) initHooks() error {
	err := s.routerHook()
	if err != nil {
		return err
	}
	return s.routesHook()
}

// routerHook will create the router manager with the global middlewares.
// The request logger is the outermost middleware.
func (s *Server) routerHook() error {
	var err error
	s.router, err = router.New(router.JSROUTER, jsrouter.Options{
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
	})
	if err != nil {
		return err
	}

	s.router.Use(
		middleware.NewLogger(s.log).MW,
		middleware.NewSecureHeader(false).MW,
		middleware.NewCors(s.cfg.Server.AllowedOrigins).MW,
	)
	return nil
}

// routesHook adds the ui, api, export and websocket routes.
func (s *Server) routesHook() error {
	c := &dashboardController{
		dashboard: s.dashboard,
		sessions:  s.sessions,
		hub:       s.hub,
		title:     s.cfg.Dashboard.Title,
		pageSize:  s.cfg.Dashboard.PageSize,
	}
	get := []string{http.MethodGet}

	routes := []router.Route{
		router.NewRoute("/", index, router.NewMapping(get, nil, nil)),
		router.NewRoute("/healthz", s.health, router.NewMapping(get, nil, nil)),
		router.NewRoute("/api/tables", c, router.NewMapping(get, c.Tables, nil)),
		router.NewRoute("/api/tables/:table", c, router.NewMapping(get, c.Table, nil)),
		router.NewRoute("/api/tables/:table/xlsx", c, router.NewMapping(get, c.Export, nil)),
		router.NewRoute("/api/events", c, router.NewMapping([]string{http.MethodPost}, c.Event, nil)),
		router.NewRoute("/ws", c, router.NewMapping(get, c.Socket, nil)),
	}
	for _, r := range routes {
		if err := s.router.AddRoute(r); err != nil {
			return err
		}
	}
	return nil
}

// health checks the database connection.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := s.builder.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"unavailable"}`))
		return
	}
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
