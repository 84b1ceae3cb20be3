// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package server is the webserver of the timetable dashboard.
// It serves the single-page UI, the json api of the dashboard router, the xlsx download and a websocket for live updates.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/patrickascher/timetable/config"
	"github.com/patrickascher/timetable/dashboard"
	"github.com/patrickascher/timetable/logger"
	"github.com/patrickascher/timetable/query"
	"github.com/patrickascher/timetable/router"
)

// Error messages
var (
	ErrConfig = "server: config %#v is mandatory"
)

// Server of the dashboard.
type Server struct {
	cfg     *config.Timetable
	builder query.Builder
	log     logger.Manager

	router    router.Manager
	dashboard *dashboard.Router
	sessions  *sessions
	hub       *hub
}

// New creates a server for the given configuration and database.
// Error will return if a mandatory argument is missing or a route can not be added.
func New(cfg *config.Timetable, builder query.Builder, log logger.Manager) (*Server, error) {
	switch {
	case cfg == nil:
		return nil, fmt.Errorf(ErrConfig, "config")
	case builder == nil:
		return nil, fmt.Errorf(ErrConfig, "builder")
	case log == nil:
		return nil, fmt.Errorf(ErrConfig, "logger")
	}

	s := &Server{
		cfg:       cfg,
		builder:   builder,
		log:       log,
		dashboard: dashboard.NewRouter(builder, cfg.Dashboard.Tables, log),
		hub:       newHub(cfg.Server.AllowedOrigins, log),
	}
	s.sessions = newSessions(s.dashboard, cfg.Server.SessionTimeout)

	if err := s.initHooks(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the router handler including the global middlewares.
func (s *Server) Handler() http.Handler {
	return s.router.Handler()
}

// Router of the server.
func (s *Server) Router() router.Manager {
	return s.router
}

// Start listens on the configured port until the context is canceled.
// The running requests get the configured shutdown timeout to finish.
func (s *Server) Start(ctx context.Context) error {
	l, err := net.Listen("tcp", fmt.Sprint(":", s.cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return s.Serve(ctx, l)
}

// Serve the dashboard on the listener until the context is canceled.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithFields(logger.Fields{"addr": l.Addr().String()}).Info("dashboard started")
		errCh <- srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.hub.close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	s.log.Info("dashboard stopped")
	return nil
}
