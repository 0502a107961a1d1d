// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api implements the Go client for the Papyr REST API.

The client carries the session transparently: the server sets and renews the
HTTP-only session cookie, and the in-process cookie jar replays it on every
request. Callers never see or handle tokens.
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrUnauthorized signals that the server rejected the session (401).
var ErrUnauthorized = errors.New("api: unauthorized")

// APIError carries the server's error envelope for non-2xx responses.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Client is a session-aware HTTP client for the Papyr API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a [Client] for the given server base URL (e.g.
// "https://papyr.app"). The cookie jar it creates is what keeps the user
// logged in across calls.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("api: cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

// # Wire Types

// User mirrors the server's user resource.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Post mirrors the server's post resource.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	Tags      *string   `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Metadata mirrors the pagination block of list responses.
type Metadata struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// PostPage is one page of the post listing.
type PostPage struct {
	Posts    []Post   `json:"posts"`
	Metadata Metadata `json:"metadata"`
}

type userEnvelope struct {
	User User `json:"user"`
}

// # Auth Operations

// RegisterInput enrolls a new account.
type RegisterInput struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Register creates an account. On success the session cookie is stored and
// the client is immediately authenticated.
func (client *Client) Register(context context.Context, input RegisterInput) (*User, error) {
	var envelope userEnvelope
	if err := client.do(context, http.MethodPost, "/api/auth/register", input, &envelope); err != nil {
		return nil, err
	}
	return &envelope.User, nil
}

// Credentials authenticates an existing account.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates and stores the session cookie.
func (client *Client) Login(context context.Context, credentials Credentials) (*User, error) {
	var envelope userEnvelope
	if err := client.do(context, http.MethodPost, "/api/auth/login", credentials, &envelope); err != nil {
		return nil, err
	}
	return &envelope.User, nil
}

// Logout ends the session server-side; the expired cookie the server sends
// back clears the jar entry.
func (client *Client) Logout(context context.Context) error {
	return client.do(context, http.MethodPost, "/api/auth/logout", nil, nil)
}

// ValidateSession asks the server whether the stored cookie still maps to a
// live account. [ErrUnauthorized] means no usable session.
func (client *Client) ValidateSession(context context.Context) (*User, error) {
	var envelope userEnvelope
	if err := client.do(context, http.MethodGet, "/api/auth/validate", nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.User, nil
}

// # Profile Operations

// Profile fetches the authenticated user's own account.
func (client *Client) Profile(context context.Context) (*User, error) {
	var envelope userEnvelope
	if err := client.do(context, http.MethodGet, "/api/profile", nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.User, nil
}

// ProfileUpdate is a partial profile edit; nil fields are left unchanged.
type ProfileUpdate struct {
	Username *string `json:"username,omitempty"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// UpdateProfile applies a partial edit to the authenticated user's account.
func (client *Client) UpdateProfile(context context.Context, update ProfileUpdate) (*User, error) {
	var envelope userEnvelope
	if err := client.do(context, http.MethodPut, "/api/profile", update, &envelope); err != nil {
		return nil, err
	}
	return &envelope.User, nil
}

// # Post Operations

// ListPostsParams selects a page of the post listing.
type ListPostsParams struct {
	Page   int
	Limit  int
	Search string
}

// ListPosts fetches one page of posts, optionally filtered by a search term.
func (client *Client) ListPosts(context context.Context, params ListPostsParams) (*PostPage, error) {
	values := url.Values{}
	if params.Page > 0 {
		values.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		values.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Search != "" {
		values.Set("search", params.Search)
	}

	path := "/api/posts"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	page := &PostPage{}
	if err := client.do(context, http.MethodGet, path, nil, page); err != nil {
		return nil, err
	}
	return page, nil
}

type postEnvelope struct {
	Post Post `json:"post"`
}

// GetPost fetches a single post by ID.
func (client *Client) GetPost(context context.Context, id string) (*Post, error) {
	var envelope postEnvelope
	if err := client.do(context, http.MethodGet, "/api/posts/"+url.PathEscape(id), nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Post, nil
}

// PostInput holds the fields for authoring a post.
type PostInput struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Published bool    `json:"published"`
	Tags      *string `json:"tags,omitempty"`
}

// CreatePost authors a new post. Requires an authenticated session.
func (client *Client) CreatePost(context context.Context, input PostInput) (*Post, error) {
	var envelope postEnvelope
	if err := client.do(context, http.MethodPost, "/api/posts", input, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Post, nil
}

// UpdatePost applies a partial edit to an existing post.
func (client *Client) UpdatePost(context context.Context, id string, update map[string]any) (*Post, error) {
	var envelope postEnvelope
	if err := client.do(context, http.MethodPut, "/api/posts/"+url.PathEscape(id), update, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Post, nil
}

// DeletePost removes a post. Requires an authenticated session.
func (client *Client) DeletePost(context context.Context, id string) error {
	return client.do(context, http.MethodDelete, "/api/posts/"+url.PathEscape(id), nil, nil)
}

// # Transport

// do performs one JSON round trip and decodes either the success payload or
// the server's error envelope.
func (client *Client) do(context context.Context, method, path string, body, target any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(context, method, client.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	if response.StatusCode >= 400 {
		apiError := &APIError{StatusCode: response.StatusCode}
		if err := json.NewDecoder(response.Body).Decode(apiError); err != nil {
			apiError.Message = http.StatusText(response.StatusCode)
		}
		return apiError
	}

	if target == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}
