// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth provides the HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle, from account
creation to session validation and logout.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Handles session cookie injection and removal.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/papyr/internal/platform/middleware"
	requestutil "github.com/taibuivan/papyr/internal/platform/request"
	"github.com/taibuivan/papyr/internal/platform/respond"
	"github.com/taibuivan/papyr/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the user lifecycle entry points (Registration, Login,
// Logout, Session validation).
type Handler struct {
	authService *Service
	sessions    middleware.SessionVerifier
}

// NewHandler constructs a new [Handler] with its service dependencies.
func NewHandler(service *Service, sessions middleware.SessionVerifier) *Handler {
	return &Handler{authService: service, sessions: sessions}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account and starts a session.
//   - POST /login    : Authenticates and starts a session.
//   - POST /logout   : Ends the current session.
//   - GET  /validate : Resolves the session cookie to a full account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints. Deliberately outside the session middleware: a stale
	// or garbage session cookie must never lock a user out of logging back in
	// or clearing the cookie. Login and register mint a fresh cookie; logout
	// discards whatever the client was carrying.
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(handler.sessions), middleware.RequireAuth)
		r.Get("/validate", handler.validateSession)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
register handles the creation of a new user account.

POST /api/auth/register

Description: Validates input, persists a new user profile, and sets the
session cookie so the client is logged in immediately.

Request:
  - Body: registerRequest (Username, Name, Password)

Response:
  - 200: {user}: Created user profile
  - 400: ErrInvalidJSON, validation failure, or username already taken
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, UsernameMinLen).
		MaxLen(FieldUsername, input.Username, UsernameMaxLen).
		Username(FieldUsername, input.Username).
		Required(FieldName, input.Name).
		MinLen(FieldName, input.Name, NameMinLen).
		MaxLen(FieldName, input.Name, NameMaxLen).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLen).
		MaxLen(FieldPassword, input.Password, PasswordMaxLen)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, token, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Name:     input.Name,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	middleware.SetSessionCookie(writer, token)
	respond.OK(writer, map[string]any{FieldUser: user})
}

/*
login authenticates a user and establishes a session.

POST /api/auth/login

Description: Verifies credentials and injects the session cookie into the
response. Failure is deliberately opaque.

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: {user}: Authenticated user profile
  - 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, token, err := handler.authService.Authenticate(request.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	middleware.SetSessionCookie(writer, token)
	respond.OK(writer, map[string]any{FieldUser: user})
}

/*
logout terminates the current session.

POST /api/auth/logout

Description: Overwrites the session cookie with an already-expired one. The
JWT itself is stateless, so removal from the browser is the whole operation.
Always succeeds, with or without a current session.

Response:
  - 200: {message}: Confirmation
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	middleware.ClearSessionCookie(writer)
	respond.OK(writer, map[string]any{FieldMessage: "Logged out successfully"})
}

/*
validateSession resolves the current session cookie into a full account.

GET /api/auth/validate

Description: Used by clients on startup to decide between the authenticated
and unauthenticated states.

Response:
  - 200: {user}: Account behind the session
  - 401: No or invalid session cookie
  - 404: Token is valid but the account no longer exists
*/
func (handler *Handler) validateSession(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.ValidateSession(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldUser: user})
}
