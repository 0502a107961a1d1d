// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/papyr/internal/client/api"
	"github.com/taibuivan/papyr/internal/client/session"
)

// fakeAuthenticator scripts the API client's auth surface.
type fakeAuthenticator struct {
	validateUser *api.User
	validateErr  error
	loginUser    *api.User
	loginErr     error
	logoutErr    error
}

func (fake *fakeAuthenticator) ValidateSession(context.Context) (*api.User, error) {
	return fake.validateUser, fake.validateErr
}

func (fake *fakeAuthenticator) Login(context.Context, api.Credentials) (*api.User, error) {
	return fake.loginUser, fake.loginErr
}

func (fake *fakeAuthenticator) Register(context.Context, api.RegisterInput) (*api.User, error) {
	return fake.loginUser, fake.loginErr
}

func (fake *fakeAuthenticator) Logout(context.Context) error {
	return fake.logoutErr
}

func TestController_StartsUnknown(t *testing.T) {
	controller := session.NewController(&fakeAuthenticator{})
	assert.Equal(t, session.StateUnknown, controller.State())
	assert.Nil(t, controller.User())
}

func TestController_Initialize(t *testing.T) {
	tests := []struct {
		name      string
		fake      *fakeAuthenticator
		wantState session.State
		wantErr   bool
	}{
		{
			name:      "valid_session",
			fake:      &fakeAuthenticator{validateUser: &api.User{ID: "u1", Username: "admin_john"}},
			wantState: session.StateAuthenticated,
		},
		{
			name:      "rejected_session",
			fake:      &fakeAuthenticator{validateErr: api.ErrUnauthorized},
			wantState: session.StateUnauthenticated,
		},
		{
			name:      "deleted_account",
			fake:      &fakeAuthenticator{validateErr: &api.APIError{StatusCode: 404}},
			wantState: session.StateUnauthenticated,
		},
		{
			name:      "transport_failure_stays_unknown",
			fake:      &fakeAuthenticator{validateErr: errors.New("connection refused")},
			wantState: session.StateUnknown,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := session.NewController(tt.fake)
			err := controller.Initialize(context.Background())

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantState, controller.State())
		})
	}
}

func TestController_LoginTransitions(t *testing.T) {
	fake := &fakeAuthenticator{loginErr: api.ErrUnauthorized}
	controller := session.NewController(fake)

	_, err := controller.Login(context.Background(), "admin_john", "wrong")
	require.Error(t, err)
	assert.Equal(t, session.StateUnauthenticated, controller.State())

	fake.loginErr = nil
	fake.loginUser = &api.User{ID: "u1", Username: "admin_john"}

	user, err := controller.Login(context.Background(), "admin_john", "password123")
	require.NoError(t, err)
	assert.Equal(t, session.StateAuthenticated, controller.State())
	assert.Equal(t, "admin_john", user.Username)
	assert.Equal(t, user, controller.User())
}

// Logout clears local state even when the server call fails.
func TestController_LogoutAlwaysClears(t *testing.T) {
	fake := &fakeAuthenticator{
		loginUser: &api.User{ID: "u1"},
		logoutErr: errors.New("server unreachable"),
	}
	controller := session.NewController(fake)

	_, err := controller.Login(context.Background(), "admin_john", "password123")
	require.NoError(t, err)

	err = controller.Logout(context.Background())
	require.Error(t, err)
	assert.Equal(t, session.StateUnauthenticated, controller.State())
	assert.Nil(t, controller.User())
}

func TestController_Guards(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(*session.Controller)
		wantProtected session.Decision
		wantGuestOnly session.Decision
	}{
		{
			name:          "unknown_defers",
			setup:         func(*session.Controller) {},
			wantProtected: session.DecisionPending,
			wantGuestOnly: session.DecisionPending,
		},
		{
			name: "authenticated",
			setup: func(controller *session.Controller) {
				_, _ = controller.Login(context.Background(), "admin_john", "password123")
			},
			wantProtected: session.DecisionAllow,
			wantGuestOnly: session.DecisionDeny,
		},
		{
			name: "unauthenticated",
			setup: func(controller *session.Controller) {
				controller.Invalidate()
			},
			wantProtected: session.DecisionDeny,
			wantGuestOnly: session.DecisionAllow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := session.NewController(&fakeAuthenticator{
				loginUser: &api.User{ID: "u1"},
			})
			tt.setup(controller)

			assert.Equal(t, tt.wantProtected, controller.GuardProtected())
			assert.Equal(t, tt.wantGuestOnly, controller.GuardGuestOnly())
		})
	}
}

func TestController_Subscribe(t *testing.T) {
	controller := session.NewController(&fakeAuthenticator{
		loginUser: &api.User{ID: "u1", Username: "admin_john"},
	})

	var states []session.State
	controller.Subscribe(func(state session.State, _ *api.User) {
		states = append(states, state)
	})

	_, err := controller.Login(context.Background(), "admin_john", "password123")
	require.NoError(t, err)
	require.NoError(t, controller.Logout(context.Background()))

	assert.Equal(t, []session.State{session.StateAuthenticated, session.StateUnauthenticated}, states)
}
