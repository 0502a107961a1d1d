// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/papyr/internal/platform/sec"
)

func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService("unit-test-secret", "papyr.test")
	require.NoError(t, err)
	return service
}

/*
TestTokenService_IssueVerify checks that a minted token decodes back to the
same identity claims.
*/
func TestTokenService_IssueVerify(t *testing.T) {
	service := newTokenService(t)

	token, err := service.Issue("user-1", "admin_john", "")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin_john", claims.Username)
	assert.Empty(t, claims.Role)

	// Validity window must be the full TTL.
	window := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
	assert.Equal(t, service.TTL(), window)
}

/*
TestTokenService_Verify_Invalid ensures malformed, tampered, and expired
tokens all fail with the same opaque error.
*/
func TestTokenService_Verify_Invalid(t *testing.T) {
	service := newTokenService(t)

	otherService, err := sec.NewTokenService("another-secret", "papyr.test")
	require.NoError(t, err)

	foreign, err := otherService.Issue("user-1", "admin_john", "")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong_signature", foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Verify(tt.token)
			assert.ErrorIs(t, err, sec.ErrInvalidToken)
		})
	}
}

/*
TestTokenService_Verify_Expired pins that a token past its window is rejected.
*/
func TestTokenService_Verify_Expired(t *testing.T) {
	service := newTokenService(t)

	issuedAt := time.Now()
	service.WithClock(func() time.Time { return issuedAt })

	token, err := service.Issue("user-1", "admin_john", "")
	require.NoError(t, err)

	// Jump past the 3-hour window.
	service.WithClock(func() time.Time { return issuedAt.Add(service.TTL() + time.Minute) })

	_, err = service.Verify(token)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestTokenService_RenewIfNearExpiry pins both sides of the sliding-expiration
threshold: under 30 minutes remaining renews, at or above does not.
*/
func TestTokenService_RenewIfNearExpiry(t *testing.T) {
	tests := []struct {
		name        string
		elapsed     time.Duration
		wantRenewal bool
	}{
		{"fresh_token", 0, false},
		{"just_above_threshold", 3*time.Hour - 31*time.Minute, false},
		{"exactly_at_threshold", 3*time.Hour - 30*time.Minute, false},
		{"just_below_threshold", 3*time.Hour - 29*time.Minute, true},
		{"almost_expired", 3*time.Hour - time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTokenService(t)

			// JWT numeric dates have second granularity; a sub-second
			// clock would shift the exactly-at-threshold boundary.
			issuedAt := time.Now().Truncate(time.Second)
			service.WithClock(func() time.Time { return issuedAt })

			token, err := service.Issue("user-1", "admin_john", "")
			require.NoError(t, err)

			service.WithClock(func() time.Time { return issuedAt.Add(tt.elapsed) })

			claims, err := service.Verify(token)
			require.NoError(t, err)

			renewedToken, renewed, err := service.RenewIfNearExpiry(claims)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRenewal, renewed)

			if tt.wantRenewal {
				require.NotEmpty(t, renewedToken)

				// The renewed token keeps the identity and gets a fresh window.
				renewedClaims, err := service.Verify(renewedToken)
				require.NoError(t, err)
				assert.Equal(t, claims.UserID, renewedClaims.UserID)
				assert.Equal(t, claims.Username, renewedClaims.Username)
				assert.True(t, renewedClaims.ExpiresAt.Time.After(claims.ExpiresAt.Time))
			} else {
				assert.Empty(t, renewedToken)
			}
		})
	}
}

/*
TestHashPassword verifies bcrypt hashing roundtrip and salting.
*/
func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("password123")
	require.NoError(t, err)
	require.NotEqual(t, "password123", hash)

	assert.True(t, sec.CheckPasswordHash("password123", hash))
	assert.False(t, sec.CheckPasswordHash("password124", hash))

	// Salted: hashing the same input twice yields different digests.
	hash2, err := sec.HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}
