// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and session token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via interfaces defined at the point of use.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/papyr/internal/platform/constants"
)

// SessionClaims represents the payload embedded inside a session token.
//
// # Why custom claims?
//
// By embedding the UserID, Username, and Role directly inside the token,
// the session middleware can reconstruct the active user context WITHOUT
// querying the database on every single API request.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the token payload small.
	UserID   string `json:"uid"`
	Username string `json:"unm"`
	Role     string `json:"rol,omitempty"`
}

// ErrInvalidToken is returned for any malformed, tampered, or expired token.
// Callers never learn which of the three it was.
var ErrInvalidToken = errors.New("sec: invalid token")

// TokenService mints, verifies, and renews session tokens using HS256.
//
// # Sliding Expiration
//
// Verification and renewal are deliberately separate operations: [TokenService.Verify]
// is a pure read, and [TokenService.RenewIfNearExpiry] is the only place a new
// token is minted from existing claims. This keeps both testable in isolation.
type TokenService struct {
	secret    []byte
	issuer    string
	ttl       time.Duration
	threshold time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// NewTokenService creates a TokenService signing with the given shared secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: session secret must not be empty")
	}

	return &TokenService{
		secret:    []byte(secret),
		issuer:    issuer,
		ttl:       constants.SessionTokenTTL,
		threshold: constants.SessionRenewalThreshold,
		now:       time.Now,
	}, nil
}

// WithClock overrides the time source. Intended for tests only.
func (service *TokenService) WithClock(now func() time.Time) *TokenService {
	service.now = now
	return service
}

/*
Issue produces a signed session token with a fixed validity window.

Parameters:
  - userID: The ID of the account.
  - username: The username of the account.
  - role: Optional role claim; empty string omits it.

Returns:
  - A signed token string, or an error if signing fails.
*/
func (service *TokenService) Issue(userID, username, role string) (string, error) {
	currentTime := service.now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
		UserID:   userID,
		Username: username,
		Role:     role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and validity of a token string.
//
// It fails with [ErrInvalidToken] for any malformed, tampered, or expired
// token — the caller cannot distinguish the three cases.
func (service *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithTimeFunc(service.now))

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

/*
RenewIfNearExpiry implements the sliding-expiration policy.

If the remaining validity of the claims is below the renewal threshold, a
fresh token with the same identity and a full validity window is issued.
Otherwise no token is minted.

Returns:
  - token: The re-minted token, or "" when no renewal happened.
  - renewed: Whether a new token was issued.
  - err: Signing failures only.
*/
func (service *TokenService) RenewIfNearExpiry(claims *SessionClaims) (token string, renewed bool, err error) {
	if claims == nil || claims.ExpiresAt == nil {
		return "", false, nil
	}

	remaining := claims.ExpiresAt.Time.Sub(service.now())
	if remaining >= service.threshold {
		return "", false, nil
	}

	token, err = service.Issue(claims.UserID, claims.Username, claims.Role)
	if err != nil {
		return "", false, err
	}

	return token, true, nil
}

// TTL returns the configured validity window of freshly issued tokens.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}
