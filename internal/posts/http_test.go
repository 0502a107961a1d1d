// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package posts_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/papyr/internal/platform/constants"
	"github.com/taibuivan/papyr/internal/platform/middleware"
	"github.com/taibuivan/papyr/internal/platform/sec"
	"github.com/taibuivan/papyr/internal/posts"
)

// newTestServer wires the post handler behind the real session middleware.
func newTestServer(t *testing.T) (*httptest.Server, *http.Cookie) {
	t.Helper()

	tokenService, err := sec.NewTokenService("test-secret", "papyr.test")
	require.NoError(t, err)

	token, err := tokenService.Issue("user-1", "admin_john", "")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := posts.NewService(newMemoryRepository(), logger)
	handler := posts.NewHandler(service)

	router := chi.NewRouter()
	router.Use(middleware.SessionAuth(tokenService))
	router.Route("/api/posts", handler.RegisterRoutes)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	cookie := &http.Cookie{Name: constants.SessionCookieName, Value: token}
	return server, cookie
}

func doJSON(t *testing.T, method, url string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		request.AddCookie(cookie)
	}

	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	return response
}

func decodeBody(t *testing.T, response *http.Response) map[string]any {
	t.Helper()
	defer response.Body.Close()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(response.Body).Decode(&payload))
	return payload
}

func TestHandler_PostLifecycle(t *testing.T) {
	server, cookie := newTestServer(t)

	// Create
	response := doJSON(t, http.MethodPost, server.URL+"/api/posts", map[string]any{
		"title":     "A Day in the Life",
		"content":   "Full content body with more than ten characters.",
		"published": true,
	}, cookie)
	require.Equal(t, http.StatusCreated, response.StatusCode)

	created := decodeBody(t, response)["post"].(map[string]any)
	postID := created["id"].(string)
	assert.Equal(t, "a-day-in-the-life", created["slug"])
	assert.Nil(t, created["tags"])

	// Read back with the session cookie.
	response = doJSON(t, http.MethodGet, server.URL+"/api/posts/"+postID, nil, cookie)
	require.Equal(t, http.StatusOK, response.StatusCode)
	fetched := decodeBody(t, response)["post"].(map[string]any)
	assert.Equal(t, "A Day in the Life", fetched["title"])

	// Update
	response = doJSON(t, http.MethodPut, server.URL+"/api/posts/"+postID, map[string]any{
		"title": "A Night in the Life",
	}, cookie)
	require.Equal(t, http.StatusOK, response.StatusCode)
	updated := decodeBody(t, response)["post"].(map[string]any)
	assert.Equal(t, "a-night-in-the-life", updated["slug"])

	// Delete
	response = doJSON(t, http.MethodDelete, server.URL+"/api/posts/"+postID, nil, cookie)
	require.Equal(t, http.StatusNoContent, response.StatusCode)
	response.Body.Close()

	// Gone
	response = doJSON(t, http.MethodGet, server.URL+"/api/posts/"+postID, nil, cookie)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
	response.Body.Close()
}

func TestHandler_ListEnvelope(t *testing.T) {
	server, cookie := newTestServer(t)

	for i := 0; i < 3; i++ {
		response := doJSON(t, http.MethodPost, server.URL+"/api/posts", map[string]any{
			"title":   "Listing fixture entry",
			"content": "Body long enough to pass content validation.",
		}, cookie)
		require.Equal(t, http.StatusCreated, response.StatusCode)
		response.Body.Close()
	}

	response := doJSON(t, http.MethodGet, server.URL+"/api/posts?page=1&limit=2", nil, cookie)
	require.Equal(t, http.StatusOK, response.StatusCode)

	payload := decodeBody(t, response)
	items := payload["posts"].([]any)
	metadata := payload["metadata"].(map[string]any)

	assert.Len(t, items, 2)
	assert.Equal(t, float64(3), metadata["total"])
	assert.Equal(t, float64(1), metadata["page"])
	assert.Equal(t, float64(2), metadata["limit"])
	assert.Equal(t, float64(2), metadata["totalPages"])

	// An out-of-range page keeps the envelope shape with an empty array.
	response = doJSON(t, http.MethodGet, server.URL+"/api/posts?page=9", nil, cookie)
	require.Equal(t, http.StatusOK, response.StatusCode)
	payload = decodeBody(t, response)
	assert.Empty(t, payload["posts"].([]any))
	assert.Equal(t, float64(3), payload["metadata"].(map[string]any)["total"])
}

func TestHandler_BadID(t *testing.T) {
	server, cookie := newTestServer(t)

	response := doJSON(t, http.MethodGet, server.URL+"/api/posts/not-a-uuid", nil, cookie)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	response.Body.Close()
}

func TestHandler_AllRoutesRequireAuth(t *testing.T) {
	server, _ := newTestServer(t)

	requests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{name: "list", method: http.MethodGet, path: "/api/posts"},
		{name: "get", method: http.MethodGet, path: "/api/posts/0192aaaa-0000-7000-8000-000000000001"},
		{name: "create", method: http.MethodPost, path: "/api/posts", body: map[string]any{
			"title":   "Should not exist",
			"content": "Anonymous users cannot author posts.",
		}},
	}

	for _, request := range requests {
		t.Run(request.name, func(t *testing.T) {
			response := doJSON(t, request.method, server.URL+request.path, request.body, nil)
			assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
			response.Body.Close()
		})
	}
}
