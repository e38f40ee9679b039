// Package runtime owns the mutable session state of a loaded mini-app:
// current page, state map, pending alert, and the action index. It is the
// only mutable entity in the system; specs stay immutable after load.
//
// Dispatch is deliberately forgiving: unknown action ids, unknown target
// pages, and malformed params are absorbed as no-ops. Both observed
// pipelines rely on this, so it is specified behavior, not an oversight.
package runtime

import (
	"sync"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/schema"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/value"
)

// DefaultPageID is the sentinel current page when a spec has no pages.
const DefaultPageID = "main"

// Alert is a pending alert raised by an action.
type Alert struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Runtime interprets one loaded spec. A single logical owner drives all
// mutation; the lock keeps concurrent readers (render, snapshots) safe.
type Runtime struct {
	mu            sync.RWMutex
	spec          *schema.Spec
	currentPageID string
	state         map[string]value.Value
	activeAlert   *Alert
	actions       map[string]schema.Action // built once at load
}

// New creates a runtime and loads the spec into it.
func New(spec *schema.Spec) *Runtime {
	r := &Runtime{}
	r.Load(spec)
	return r
}

// Load resets the runtime to the given spec: first page current, state
// seeded from initialState, no pending alert, action index rebuilt.
// Prior state is fully discarded; there is no migration.
func (r *Runtime) Load(spec *schema.Spec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.spec = spec

	r.currentPageID = DefaultPageID
	if len(spec.Pages) > 0 {
		r.currentPageID = spec.Pages[0].ID
	}

	r.state = make(map[string]value.Value, len(spec.InitialState))
	for k, v := range spec.InitialState {
		r.state[k] = v
	}

	r.activeAlert = nil

	r.actions = make(map[string]schema.Action, len(spec.Actions))
	for _, a := range spec.Actions {
		r.actions[a.ID] = a
	}
}

// Spec returns the loaded spec.
func (r *Runtime) Spec() *schema.Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.spec
}

// CurrentPageID returns the id of the current page.
func (r *Runtime) CurrentPageID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.currentPageID
}

// CurrentPage resolves the current page against the spec. It reports false
// when navigation landed on an unknown page id; the renderer degrades to a
// placeholder in that case.
func (r *Runtime) CurrentPage() (*schema.Page, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.spec.FindPage(r.currentPageID)
}

// ReadBinding returns state[key], or the supplied default when unset.
func (r *Runtime) ReadBinding(key string, def value.Value) value.Value {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if v, ok := r.state[key]; ok {
		return v
	}
	return def
}

// WriteBinding sets state[key]. Bindings are not declared ahead of time, so
// no schema validation happens here.
func (r *Runtime) WriteBinding(key string, v value.Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state[key] = v
}

// Toggle reads the current bool at key (default false) and writes its
// negation. Returns the new value.
func (r *Runtime) Toggle(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := false
	if v, ok := r.state[key]; ok {
		if b, bok := v.AsBool(); bok {
			current = b
		}
	}
	next := !current
	r.state[key] = value.Bool(next)
	return next
}

// StateSnapshot returns a copy of the state map.
func (r *Runtime) StateSnapshot() map[string]value.Value {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]value.Value, len(r.state))
	for k, v := range r.state {
		out[k] = v
	}
	return out
}

// ActiveAlert returns a copy of the pending alert, if any.
func (r *Runtime) ActiveAlert() *Alert {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.activeAlert == nil {
		return nil
	}
	alert := *r.activeAlert
	return &alert
}

// DismissAlert clears the pending alert.
func (r *Runtime) DismissAlert() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activeAlert = nil
}

// Dispatch executes the actions in list order. Ids missing from the action
// index are silently skipped.
func (r *Runtime) Dispatch(actionIDs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, actionID := range actionIDs {
		action, ok := r.actions[actionID]
		if !ok {
			continue // dangling actionId is tolerated
		}
		r.execute(&action)
	}
}

// execute runs one action. Caller holds the write lock.
func (r *Runtime) execute(action *schema.Action) {
	switch action.Type {
	case schema.ActionNavigate:
		// The target is not checked against spec.pages: navigating to an
		// unknown page yields "no current page" and the renderer shows a
		// placeholder instead of crashing.
		if target, ok := action.StringParam("targetPageId"); ok {
			r.currentPageID = target
		}

	case schema.ActionShowAlert:
		title, ok := action.StringParam("title")
		if !ok || title == "" {
			title = r.spec.Name
		}
		message, ok := action.StringParam("message")
		if !ok || message == "" {
			message = "Action completed."
		}
		r.activeAlert = &Alert{Title: title, Message: message}

	case schema.ActionSetState:
		key, ok := action.StringParam("key")
		if !ok {
			return
		}
		v, present := action.Params["value"]
		if !present {
			return
		}
		r.state[key] = v

	case schema.ActionToggleFlashlight:
		// Capability stub: real hardware execution is an external
		// collaborator's job.
		r.activeAlert = &Alert{Title: r.spec.Name, Message: "Flashlight toggled."}

	case schema.ActionStartTimer:
		r.activeAlert = &Alert{Title: r.spec.Name, Message: "Timer started."}
	}
}
