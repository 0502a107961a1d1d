// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session tracks the client's authentication state.

The controller is a three-state machine:

  - StateUnknown: startup, before the server has confirmed the cookie.
  - StateAuthenticated: the server validated the session.
  - StateUnauthenticated: no session, or the server rejected it.

Route guards consult the current state; while it is still StateUnknown they
defer instead of bouncing the user to the login screen prematurely.
*/
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/taibuivan/papyr/internal/client/api"
)

// State is the client's view of its own authentication.
type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Decision is a route guard's verdict.
type Decision int

const (
	// DecisionPending means the state is not yet known; hold the navigation.
	DecisionPending Decision = iota
	// DecisionAllow lets the navigation proceed.
	DecisionAllow
	// DecisionDeny blocks the navigation (redirect to login or home).
	DecisionDeny
)

// Authenticator is the slice of the API client the controller needs.
type Authenticator interface {
	ValidateSession(context context.Context) (*api.User, error)
	Login(context context.Context, credentials api.Credentials) (*api.User, error)
	Register(context context.Context, input api.RegisterInput) (*api.User, error)
	Logout(context context.Context) error
}

// Controller owns the session state machine. Safe for concurrent use.
type Controller struct {
	client Authenticator

	mu          sync.RWMutex
	state       State
	user        *api.User
	subscribers []func(State, *api.User)
}

// NewController starts in [StateUnknown]; call [Controller.Initialize] to
// resolve the real state.
func NewController(client Authenticator) *Controller {
	return &Controller{
		client: client,
		state:  StateUnknown,
	}
}

// Initialize resolves StateUnknown by asking the server to validate the
// stored cookie. A rejected or missing session is a normal outcome, not an
// error; only transport failures are returned, and they leave the state
// unknown so the caller can retry.
func (controller *Controller) Initialize(context context.Context) error {
	user, err := controller.client.ValidateSession(context)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) || isNotFound(err) {
			controller.transition(StateUnauthenticated, nil)
			return nil
		}
		return err
	}

	controller.transition(StateAuthenticated, user)
	return nil
}

// Login authenticates and, on success, transitions to StateAuthenticated.
// A failed attempt transitions to StateUnauthenticated.
func (controller *Controller) Login(context context.Context, username, password string) (*api.User, error) {
	user, err := controller.client.Login(context, api.Credentials{
		Username: username,
		Password: password,
	})
	if err != nil {
		controller.transition(StateUnauthenticated, nil)
		return nil, err
	}

	controller.transition(StateAuthenticated, user)
	return user, nil
}

// Register enrolls a new account; the server logs it in immediately.
func (controller *Controller) Register(context context.Context, input api.RegisterInput) (*api.User, error) {
	user, err := controller.client.Register(context, input)
	if err != nil {
		return nil, err
	}

	controller.transition(StateAuthenticated, user)
	return user, nil
}

// Logout ends the session. The local state is cleared even when the server
// call fails: the user asked to be logged out.
func (controller *Controller) Logout(context context.Context) error {
	err := controller.client.Logout(context)
	controller.transition(StateUnauthenticated, nil)
	return err
}

// Invalidate drops to StateUnauthenticated without a server round trip.
// Called when any API request comes back 401 mid-session.
func (controller *Controller) Invalidate() {
	controller.transition(StateUnauthenticated, nil)
}

// State returns the current machine state.
func (controller *Controller) State() State {
	controller.mu.RLock()
	defer controller.mu.RUnlock()
	return controller.state
}

// User returns the authenticated account, or nil.
func (controller *Controller) User() *api.User {
	controller.mu.RLock()
	defer controller.mu.RUnlock()
	return controller.user
}

// # Route Guards

// GuardProtected gates routes that require authentication.
func (controller *Controller) GuardProtected() Decision {
	switch controller.State() {
	case StateAuthenticated:
		return DecisionAllow
	case StateUnauthenticated:
		return DecisionDeny
	default:
		return DecisionPending
	}
}

// GuardGuestOnly gates routes meant for logged-out users (login, register).
func (controller *Controller) GuardGuestOnly() Decision {
	switch controller.State() {
	case StateAuthenticated:
		return DecisionDeny
	case StateUnauthenticated:
		return DecisionAllow
	default:
		return DecisionPending
	}
}

// Subscribe registers a callback fired on every state transition. The
// callback runs synchronously under no lock; keep it cheap.
func (controller *Controller) Subscribe(callback func(State, *api.User)) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.subscribers = append(controller.subscribers, callback)
}

func (controller *Controller) transition(state State, user *api.User) {
	controller.mu.Lock()
	controller.state = state
	controller.user = user
	subscribers := make([]func(State, *api.User), len(controller.subscribers))
	copy(subscribers, controller.subscribers)
	controller.mu.Unlock()

	for _, callback := range subscribers {
		callback(state, user)
	}
}

// isNotFound recognizes the "valid token, deleted account" case, which also
// resolves to unauthenticated.
func isNotFound(err error) bool {
	var apiError *api.APIError
	return errors.As(err, &apiError) && apiError.StatusCode == 404
}
