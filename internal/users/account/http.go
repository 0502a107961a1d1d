// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account provides the HTTP delivery layer for profile management.

It implements the RESTful interface for users to interact with their own
account data.

# Security

All endpoints in this package require an active authentication session provided
by the RequireAuth middleware.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/papyr/internal/platform/request"
	"github.com/taibuivan/papyr/internal/platform/respond"
	"github.com/taibuivan/papyr/internal/platform/validate"
	"github.com/taibuivan/papyr/internal/users/auth"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.getProfile)
	router.Put("/", handler.updateProfile)

	return router
}

// # User Profile Endpoints

/*
GET /api/profile.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: {user}: Fully hydrated user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{auth.FieldUser: user})
}

// updateProfileRequest defines the expected JSON payload for profile updates.
// Absent fields are left unchanged.
type updateProfileRequest struct {
	Username *string `json:"username"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
	IsActive *bool   `json:"isActive"`
}

/*
PUT /api/profile.

Description: Applies partial updates to the authenticated user's profile.
Provided fields are validated with the same bounds as registration.

Request:
  - body: updateProfileRequest (Partial JSON)

Response:
  - 200: {user}: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input or username already taken
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Username != nil {
		validator.Required(auth.FieldUsername, *input.Username).
			MinLen(auth.FieldUsername, *input.Username, auth.UsernameMinLen).
			MaxLen(auth.FieldUsername, *input.Username, auth.UsernameMaxLen).
			Username(auth.FieldUsername, *input.Username)
	}
	if input.Name != nil {
		validator.Required(auth.FieldName, *input.Name).
			MinLen(auth.FieldName, *input.Name, auth.NameMinLen).
			MaxLen(auth.FieldName, *input.Name, auth.NameMaxLen)
	}
	if input.Password != nil {
		validator.Required(auth.FieldPassword, *input.Password).
			MinLen(auth.FieldPassword, *input.Password, auth.PasswordMinLen).
			MaxLen(auth.FieldPassword, *input.Password, auth.PasswordMaxLen)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		Username: input.Username,
		Name:     input.Name,
		Password: input.Password,
		IsActive: input.IsActive,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{auth.FieldUser: user})
}
