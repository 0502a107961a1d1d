// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/papyr/internal/platform/apperr"
	"github.com/taibuivan/papyr/internal/platform/dberr"
	"github.com/taibuivan/papyr/internal/platform/sec"
	"github.com/taibuivan/papyr/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for user profiles.
//
// It ensures that profile updates follow established business constraints,
// most importantly that a username change cannot collide with another account.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

// UpdateProfileInput defines the mutable subset of user profile fields.
// Nil pointers mean "leave unchanged".
type UpdateProfileInput struct {
	Username *string
	Name     *string
	Password *string
	IsActive *bool
}

/*
UpdateProfile applies a partial set of changes to a user's account metadata.

Description: Fetches the existing user state, overrides provided fields, and
synchronizes the change to persistent storage. A new username is checked
against other accounts case-insensitively; a new password is re-hashed.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Duplicate username, update, or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Username changes must not collide with another account. The lookup
	// excludes the user themselves so no-op renames (or case changes of
	// their own name) pass through.
	if input.Username != nil && *input.Username != user.Username {
		existing, err := service.accountRepository.FindByUsername(context, *input.Username)
		if err == nil && existing.ID != user.ID {
			return nil, apperr.Duplicate("Username already exists")
		}
		if err != nil && !errors.Is(err, dberr.ErrNotFound) {
			return nil, fmt.Errorf("account_service_username_check_failed: %w", err)
		}
		user.Username = *input.Username
	}

	// Apply delta updates
	if input.Name != nil {
		user.Name = *input.Name
	}

	// Apply delta updates
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	// A new password is hashed before it ever touches storage.
	if input.Password != nil {
		hashedPassword, err := sec.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("account_service_hash_failed: %w", err)
		}
		user.PasswordHash = hashedPassword
	}

	// Persist changes
	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}
