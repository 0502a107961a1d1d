// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entity (User) and the logic for registration,
credential verification, and cookie-based session establishment.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import "time"

// # Domain Entities

// User represents a registered member of the Papyr platform.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername = "username"
	FieldName     = "name"
	FieldPassword = "password"
	FieldUser     = "user"
	FieldMessage  = "message"
)

// # Validation Bounds

// Input length limits enforced at the HTTP boundary.
const (
	UsernameMinLen = 3
	UsernameMaxLen = 50
	NameMinLen     = 2
	NameMaxLen     = 100
	PasswordMinLen = 8
	PasswordMaxLen = 100
)
