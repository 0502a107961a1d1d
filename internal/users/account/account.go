// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles user profile management.

It provides functionalities for users to view and update their private
identity data: display name, username, password, and active status.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Storage: The repository contract is satisfied by [auth.PostgresUserRepository].
*/
package account

import (
	"context"

	"github.com/taibuivan/papyr/internal/users/auth"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *User: Loaded account entity
		  - error: dberr.ErrNotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		FindByUsername retrieves a user record by username, case-insensitively.
		Used to reject username changes that collide with another account.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Loaded account entity
		  - error: dberr.ErrNotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*auth.User, error)

	/*
		Update modifies the mutable profile fields of an existing user.

		Parameters:
		  - context: context.Context
		  - user: *User (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, user *auth.User) error
}
