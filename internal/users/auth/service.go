// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the core identity and access management system.

It handles user registration, secure password hashing, and session
establishment via signed JWT cookies.

Architecture:

  - Service: Orchestrates business logic (Register, Authenticate, ValidateSession).
  - Repository: Abstracted interface for Postgres user storage.
  - Security: Leverages bcrypt hashing and HMAC-signed JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/taibuivan/papyr/internal/platform/apperr"
	"github.com/taibuivan/papyr/internal/platform/dberr"
	"github.com/taibuivan/papyr/internal/platform/sec"
	"github.com/taibuivan/papyr/pkg/uuid"
)

// # Contracts & Types

// TokenIssuer defines the contract for minting session tokens.
type TokenIssuer interface {
	// Issue creates a signed session token for the given user identity.
	Issue(userID, username, role string) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	tokenIssuer    TokenIssuer
}

// NewService constructs a new [Service] with its dependencies.
func NewService(userRepo UserRepository, issuer TokenIssuer) *Service {
	return &Service{
		userRepository: userRepo,
		tokenIssuer:    issuer,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Name     string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account, then
establishes a session for it.

Description: Deep-enrollment of a new member. Username uniqueness is checked
case-insensitively so "Admin" cannot shadow "admin".

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - string: Signed session token for the new account
  - err: Duplicate (if the username is taken) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, string, error) {

	// Verify username uniqueness. Return a client-safe Duplicate err.
	_, err := service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, "", apperr.Duplicate("Username already exists")
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, "", err
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Name:         input.Name,
		PasswordHash: hashedPassword,
		IsActive:     true,
	}

	// Persist the user. A concurrent registration of the same username loses
	// here on the unique index, surfacing as a Duplicate err.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, "", err
	}

	// New accounts are logged in immediately.
	token, err := service.tokenIssuer.Issue(user.ID, user.Username, "")
	if err != nil {
		return nil, "", fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	return user, token, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

/*
Authenticate validates user credentials and issues a session token.

Description: Verifies identity and performs constant-time password comparison.
Unknown usernames, wrong passwords, and deactivated accounts are
indistinguishable to the caller, both in the returned error and in response
timing.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *User: Authenticated account
  - string: Signed session token
  - err: Unauthorized or internal failures
*/
func (service *Service) Authenticate(context context.Context, input LoginInput) (*User, string, error) {
	user, err := service.userRepository.FindByUsername(context, input.Username)

	// If (err != nil) the user does not exist. Burn a hash comparison anyway
	// so the latency profile matches the wrong-password path, then return the
	// same generic message to prevent enumeration.
	if err != nil {
		sec.DummyCompare(input.Password)
		return nil, "", apperr.Unauthorized("Invalid credentials")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, "", apperr.Unauthorized("Invalid credentials")
	}

	// Deactivated accounts fail with the same opaque message.
	if !user.IsActive {
		return nil, "", apperr.Unauthorized("Invalid credentials")
	}

	token, err := service.tokenIssuer.Issue(user.ID, user.Username, "")
	if err != nil {
		return nil, "", fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	return user, token, nil
}

// # Session Management

/*
ValidateSession resolves verified session claims back into a full account.

Description: Confirms that the account behind an otherwise valid token still
exists. Tokens survive account deletion, so this lookup is what turns a
dangling session into a 404.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated account entity
  - err: apperr.NotFound if the account no longer exists
*/
func (service *Service) ValidateSession(context context.Context, userID string) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}

	return user, nil
}
