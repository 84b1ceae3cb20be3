// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package server

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/patrickascher/timetable/logger"
)

const writeTimeout = 5 * time.Second

// hub holds the connected sockets.
type hub struct {
	mutex   sync.Mutex
	conns   map[*websocket.Conn]struct{}
	origins []string
	log     logger.Manager
}

func newHub(origins []string, log logger.Manager) *hub {
	return &hub{conns: map[*websocket.Conn]struct{}{}, origins: originPatterns(origins), log: log}
}

func (h *hub) add(c *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.conns[c] = struct{}{}
}

func (h *hub) remove(c *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.conns, c)
}

// broadcast writes v to every socket except skip.
// A socket which can not be written is closed.
func (h *hub) broadcast(ctx context.Context, v interface{}, skip *websocket.Conn) {
	h.mutex.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		if c != skip {
			conns = append(conns, c)
		}
	}
	h.mutex.Unlock()

	for _, c := range conns {
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
		if err := wsjson.Write(wctx, c, v); err != nil {
			h.log.WithFields(logger.Fields{"error": err.Error()}).Debug("websocket broadcast")
			h.remove(c)
			c.CloseNow()
		}
		cancel()
	}
}

// close all sockets with the going away status.
func (h *hub) close() {
	h.mutex.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.conns = map[*websocket.Conn]struct{}{}
	h.mutex.Unlock()

	for _, c := range conns {
		_ = c.Close(websocket.StatusGoingAway, "server shutdown")
	}
}

// originPatterns converts the allowed cors origins into host patterns.
// "*" allows every origin.
func originPatterns(origins []string) []string {
	var rv []string
	for _, o := range origins {
		if o == "*" {
			return []string{"*"}
		}
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			rv = append(rv, u.Host)
			continue
		}
		rv = append(rv, o)
	}
	return rv
}
