// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/patrickascher/timetable/dashboard"
	"github.com/segmentio/ksuid"
)

// SessionCookie is the cookie name of the dashboard session.
const SessionCookie = "timetable_session"

// sessions holds the dashboard sessions of the http clients by cookie.
type sessions struct {
	mutex   sync.Mutex
	router  *dashboard.Router
	timeout time.Duration
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	session *dashboard.Session
	used    time.Time
}

func newSessions(r *dashboard.Router, timeout time.Duration) *sessions {
	return &sessions{router: r, timeout: timeout, entries: map[string]*sessionEntry{}}
}

// get returns the session of the request cookie.
// A new session and cookie is created if the cookie is missing or the session timed out.
// Idle sessions are dropped on every call.
func (s *sessions) get(w http.ResponseWriter, r *http.Request) *dashboard.Session {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	if s.timeout > 0 {
		for id, e := range s.entries {
			if now.Sub(e.used) > s.timeout {
				delete(s.entries, id)
			}
		}
	}

	if c, err := r.Cookie(SessionCookie); err == nil {
		if e, ok := s.entries[c.Value]; ok {
			e.used = now
			return e.session
		}
	}

	id := ksuid.New().String()
	e := &sessionEntry{session: s.router.NewSession(), used: now}
	s.entries[id] = e
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: id, Path: "/", HttpOnly: true, SameSite: http.SameSiteStrictMode})
	return e.session
}

