// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dashboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/patrickascher/timetable/logger"
	"github.com/patrickascher/timetable/query"
	"github.com/patrickascher/timetable/stringer"
)

// Event types.
const (
	EventTab       = "tab"
	EventSelectRow = "select-row"
	EventCreate    = "create"
	EventUpdate    = "update"
	EventDelete    = "delete"
	EventClear     = "clear"
	EventNavigate  = "fk-navigate"
)

// Identifier of the control which triggered an event.
type Identifier struct {
	Type   string `json:"type"`
	Table  string `json:"table,omitempty"`
	Name   string `json:"name,omitempty"`
	Target string `json:"target,omitempty"`
}

// Event of the user interface.
// Values holds the input fields, Row the selected row of a select-row event.
type Event struct {
	ID     Identifier `json:"id"`
	Values Row        `json:"values,omitempty"`
	Row    Row        `json:"row,omitempty"`
}

// Tab of a table.
type Tab struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// State after an event.
// Views holds the rendered tables, after a create, update or delete all tables are rendered.
// Messages holds one message per table, only the triggering table has a non-empty one.
type State struct {
	Active   string            `json:"active"`
	Tabs     []Tab             `json:"tabs"`
	Form     []Widget          `json:"form"`
	Inputs   Row               `json:"inputs"`
	Selected Row               `json:"selected"`
	Views    map[string]View   `json:"views"`
	Messages map[string]string `json:"messages"`
	Mutated  bool              `json:"mutated"`
}

// Refresh is sent to the other clients after a create, update or delete.
// It carries the rendered tables only, the form and the selection of a client are not touched.
type Refresh struct {
	Refresh bool            `json:"refresh"`
	Views   map[string]View `json:"views"`
}

// Refresh returns the views of the state for the other clients.
func (s State) Refresh() Refresh {
	return Refresh{Refresh: true, Views: s.Views}
}

// Session holds the active table and the selected rows of one client.
// A Session is only read and changed by Router.Dispatch.
type Session struct {
	active   string
	selected map[string]Row
}

// Router dispatches the events one at a time.
// The router state is shared by all clients, the per client state lives in a Session.
type Router struct {
	mutex  sync.Mutex
	tables []string

	renderer     *Renderer
	resolver     *Resolver
	executor     *Executor
	introspector *Introspector
	log          logger.Manager
}

// NewRouter returns a Router over the given tables.
func NewRouter(b query.Builder, tables []string, log logger.Manager) *Router {
	return &Router{
		tables:       tables,
		renderer:     NewRenderer(b),
		resolver:     NewResolver(b),
		executor:     NewExecutor(b, log),
		introspector: NewIntrospector(b),
		log:          log,
	}
}

// NewSession returns a session with the first table active and no selection.
func (r *Router) NewSession() *Session {
	s := &Session{selected: map[string]Row{}}
	if len(r.tables) > 0 {
		s.active = r.tables[0]
	}
	return s
}

// Tabs returns the tab of every table.
func (r *Router) Tabs() []Tab {
	rv := make([]Tab, len(r.tables))
	for i, t := range r.tables {
		rv[i] = Tab{Value: t, Label: stringer.Title(t)}
	}
	return rv
}

// Tables returns the configured table names.
func (r *Router) Tables() []string {
	return r.tables
}

// Allowed reports if the table is configured.
func (r *Router) Allowed(table string) bool {
	for _, t := range r.tables {
		if t == table {
			return true
		}
	}
	return false
}

// View renders the given table.
func (r *Router) View(table string) (View, error) {
	if !r.Allowed(table) {
		return View{}, fmt.Errorf(ErrTable, table)
	}
	return r.renderer.View(table)
}

// Form builds the widgets of the given table.
func (r *Router) Form(table string) ([]Widget, error) {
	if !r.Allowed(table) {
		return nil, fmt.Errorf(ErrTable, table)
	}
	t, err := r.introspector.Table(table)
	if err != nil {
		return nil, err
	}
	options, err := r.resolver.ForeignKeyOptions(t)
	if err != nil {
		return nil, err
	}
	return BuildForm(t, options), nil
}

// Dispatch handles the event of the session and returns the new state.
// Events without a table use the active one of the session.
// Storage errors of create, update and delete are reported as message and not as error.
func (r *Router) Dispatch(sess *Session, ev Event) (State, error) {
	if sess == nil {
		return State{}, ErrSession
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()

	table := ev.ID.Table
	if table == "" {
		table = sess.active
	}
	if ev.ID.Type == EventNavigate {
		table = ev.ID.Target
	}
	if !r.Allowed(table) {
		return State{}, fmt.Errorf(ErrTable, table)
	}

	var inputs Row
	var message string
	mutated := false

	switch ev.ID.Type {
	case EventTab, EventNavigate:
		sess.active = table
	case EventSelectRow:
		sess.active = table
		sess.selected[table] = ev.Row
		inputs = ev.Row
	case EventClear:
	case EventCreate:
		message, mutated = r.operation(r.executor.Create(table, ev.Values))
		inputs = ev.Values
	case EventUpdate:
		message, mutated = r.operation(r.executor.Update(table, sess.selected[table], ev.Values))
		if mutated {
			sess.selected[table] = updated(sess.selected[table], ev.Values)
		}
		inputs = ev.Values
	case EventDelete:
		message, mutated = r.operation(r.executor.Delete(table, sess.selected[table]))
		if mutated {
			delete(sess.selected, table)
		} else {
			inputs = ev.Values
		}
	default:
		return State{}, fmt.Errorf(ErrEventType, ev.ID.Type)
	}

	return r.state(sess, table, inputs, message, mutated)
}

// updated returns the selected row with the set values applied, so a changed primary key still identifies the row.
func updated(selected Row, values Row) Row {
	rv := Row{}
	for k, v := range selected {
		rv[k] = v
	}
	for k, v := range values {
		if !empty(v) {
			rv[k] = v
		}
	}
	return rv
}

// operation returns the message and if the database was changed.
func (r *Router) operation(message string, err error) (string, bool) {
	if err != nil && !errors.Is(err, ErrNoSelection) && !errors.Is(err, ErrNoFields) {
		r.log.WithFields(logger.Fields{"error": err.Error()}).Debug("operation failed")
	}
	return message, err == nil
}

// state renders the table of the event, or every table after a mutation.
func (r *Router) state(sess *Session, table string, inputs Row, message string, mutated bool) (State, error) {
	form, err := r.Form(table)
	if err != nil {
		return State{}, err
	}

	s := State{
		Active:   sess.active,
		Tabs:     r.Tabs(),
		Form:     form,
		Inputs:   Row{},
		Selected: sess.selected[table],
		Views:    map[string]View{},
		Messages: map[string]string{},
		Mutated:  mutated,
	}
	for _, w := range form {
		s.Inputs[w.Name] = ""
		if v, ok := inputs[w.Name]; ok && v != nil {
			s.Inputs[w.Name] = v
		}
	}

	rendered := []string{table}
	if mutated {
		rendered = r.tables
	}
	for _, t := range rendered {
		v, err := r.renderer.View(t)
		if err != nil {
			return State{}, err
		}
		s.Views[t] = v
		s.Messages[t] = ""
	}
	s.Messages[table] = message

	return s, nil
}
