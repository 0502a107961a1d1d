// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/taibuivan/papyr/internal/platform/apperr"
	"github.com/taibuivan/papyr/internal/platform/constants"
	"github.com/taibuivan/papyr/internal/platform/ctxutil"
	"github.com/taibuivan/papyr/internal/platform/respond"
	"github.com/taibuivan/papyr/internal/platform/sec"
)

// SessionVerifier defines the token operations needed by the session middleware.
//
// # Why an interface?
//
// Defining SessionVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing us to easily inject mocks during unit testing.
type SessionVerifier interface {
	Verify(tokenStr string) (*sec.SessionClaims, error)
	RenewIfNearExpiry(claims *sec.SessionClaims) (token string, renewed bool, err error)
}

// SessionAuth extracts and verifies the session token from the session cookie.
//
// # Flow
//  1. Check for the session cookie.
//  2. If absent, request proceeds as anonymous.
//  3. If present, verify the token via [SessionVerifier]; reject with 401 on failure.
//  4. If the remaining validity is below the renewal threshold, re-mint the
//     token and set a fresh cookie BEFORE the handler writes the response.
//  5. Inject [*sec.SessionClaims] into the request context for downstream use.
//
// Renewal is a silent side effect of any authenticated request; the sliding
// window extends the session as long as the user stays active.
func SessionAuth(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Anonymous Access ───────────────────────────────────────────
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.Verify(cookie.Value)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid token"))
				return
			}

			// ── 3. Sliding Renewal ────────────────────────────────────────────
			// Must happen before the handler writes any response bytes.
			if newToken, renewed, renewErr := verifier.RenewIfNearExpiry(claims); renewErr == nil && renewed {
				SetSessionCookie(writer, newToken)
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithSessionUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [SessionAuth].
//
// # Flow
//  1. Check if [*sec.SessionClaims] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetSessionUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// # Cookie Management

// SetSessionCookie attaches a freshly minted session token to the response.
//
// # Attributes
//
// HTTP-only and Secure are mandatory; SameSite=None lets the browser client
// send the cookie from a different origin than the API.
func SetSessionCookie(writer http.ResponseWriter, token string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(constants.SessionTokenTTL.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

// ClearSessionCookie invalidates the session by overwriting the cookie with
// an already-expired empty value.
func ClearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}
