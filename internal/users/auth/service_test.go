// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/papyr/internal/platform/apperr"
	"github.com/taibuivan/papyr/internal/platform/dberr"
	"github.com/taibuivan/papyr/internal/users/auth"
)

// memoryUserRepository is an in-memory UserRepository for service tests.
type memoryUserRepository struct {
	users map[string]*auth.User // keyed by ID
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*auth.User)}
}

func (repository *memoryUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := repository.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, dberr.ErrNotFound
}

func (repository *memoryUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range repository.users {
		if strings.EqualFold(user.Username, username) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repository *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	repository.users[user.ID] = user
	return nil
}

func (repository *memoryUserRepository) Update(_ context.Context, user *auth.User) error {
	repository.users[user.ID] = user
	return nil
}

// staticIssuer returns a fixed token and records the identity it was issued for.
type staticIssuer struct {
	lastUserID string
}

func (issuer *staticIssuer) Issue(userID, username, role string) (string, error) {
	issuer.lastUserID = userID
	return "token-for-" + username, nil
}

func newService() (*auth.Service, *memoryUserRepository, *staticIssuer) {
	repository := newMemoryUserRepository()
	issuer := &staticIssuer{}
	return auth.NewService(repository, issuer), repository, issuer
}

func TestService_Register(t *testing.T) {
	service, _, issuer := newService()

	user, token, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "admin_john",
		Name:     "John Doe",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "admin_john", user.Username)
	assert.True(t, user.IsActive)
	assert.Equal(t, "token-for-admin_john", token)
	assert.Equal(t, user.ID, issuer.lastUserID)

	// The stored hash must not be the plain-text password.
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	service, _, _ := newService()

	_, _, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "admin_john", Name: "John Doe", Password: "password123",
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
	}{
		{"exact_match", "admin_john"},
		{"case_insensitive_match", "Admin_John"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := service.Register(context.Background(), auth.RegisterInput{
				Username: tt.username, Name: "Impostor", Password: "password456",
			})

			require.Error(t, err)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, 400, appError.HTTPStatus)
			assert.Contains(t, appError.Message, "already exists")
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	service, _, _ := newService()

	registered, _, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "admin_john", Name: "John Doe", Password: "password123",
	})
	require.NoError(t, err)

	user, token, err := service.Authenticate(context.Background(), auth.LoginInput{
		Username: "admin_john", Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)
}

// Unknown usernames and wrong passwords must produce the exact same error.
func TestService_Authenticate_OpaqueFailure(t *testing.T) {
	service, repository, _ := newService()

	_, _, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "admin_john", Name: "John Doe", Password: "password123",
	})
	require.NoError(t, err)

	dormant, _, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "dormant", Name: "Gone Fishing", Password: "password123",
	})
	require.NoError(t, err)
	dormant.IsActive = false
	require.NoError(t, repository.Update(context.Background(), dormant))

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown_user", "nobody", "password123"},
		{"wrong_password", "admin_john", "wrong-password"},
		{"deactivated_account", "dormant", "password123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := service.Authenticate(context.Background(), auth.LoginInput{
				Username: tt.username, Password: tt.password,
			})

			require.Error(t, err)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, 401, appError.HTTPStatus)
			assert.Equal(t, "Invalid credentials", appError.Message)
		})
	}
}

func TestService_ValidateSession(t *testing.T) {
	service, repository, _ := newService()

	user, _, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "admin_john", Name: "John Doe", Password: "password123",
	})
	require.NoError(t, err)

	resolved, err := service.ValidateSession(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin_john", resolved.Username)

	// A session referencing a deleted account resolves to 404.
	delete(repository.users, user.ID)
	_, err = service.ValidateSession(context.Background(), user.ID)
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 404, appError.HTTPStatus)
}

// The password hash must never serialize into API responses.
func TestUser_JSONOmitsPasswordHash(t *testing.T) {
	user := auth.User{
		ID:           "u1",
		Username:     "admin_john",
		Name:         "John Doe",
		PasswordHash: "$2a$10$secret",
		IsActive:     true,
	}

	encoded, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "secret")
	assert.NotContains(t, string(encoded), "PasswordHash")
	assert.Contains(t, string(encoded), `"isActive":true`)
}
