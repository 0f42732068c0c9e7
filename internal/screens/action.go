// Package screens holds the controllers behind each screen of the tool. A
// controller validates input, runs one generation call per action, keeps the
// transient result and writes persistent collections through the store.
package screens

import (
	"errors"
	"sync"
)

// State is the lifecycle of one user-triggered action.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// ErrBusy is returned when an action is triggered while it is still in flight.
var ErrBusy = errors.New("action already in progress")

// Status is a snapshot of an action for display.
type Status struct {
	State State  `json:"state"`
	Error string `json:"error,omitempty"`
}

// Action tracks one trigger control. Distinct actions run independently.
type Action struct {
	mu    sync.Mutex
	state State
	err   error
}

func (a *Action) begin() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == StateSubmitting {
		return ErrBusy
	}
	a.state = StateSubmitting
	a.err = nil
	return nil
}

func (a *Action) end(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.state = StateError
		a.err = err
		return
	}
	a.state = StateSuccess
}

// Run executes fn unless the action is already submitting.
func (a *Action) Run(fn func() error) error {
	if err := a.begin(); err != nil {
		return err
	}
	err := fn()
	a.end(err)
	return err
}

// Status returns the current state and the last error message.
func (a *Action) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := Status{State: a.state}
	if s.State == "" {
		s.State = StateIdle
	}
	if a.err != nil {
		s.Error = UserMessage(a.err)
	}
	return s
}
