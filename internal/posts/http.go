// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package posts

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/papyr/internal/platform/middleware"
	requestutil "github.com/taibuivan/papyr/internal/platform/request"
	"github.com/taibuivan/papyr/internal/platform/respond"
	"github.com/taibuivan/papyr/internal/platform/validate"
	"github.com/taibuivan/papyr/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the post endpoints. Every route, reads included,
// requires an authenticated session.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listPosts)
	router.Get("/{id}", handler.getPost)
	router.Post("/", handler.createPost)
	router.Put("/{id}", handler.updatePost)
	router.Delete("/{id}", handler.deletePost)
}

/*
listPosts returns one page of posts, newest first.

GET /api/posts?page=&limit=&search=

Response:
  - 200: {posts, metadata}: Page of posts plus pagination metadata.
    A page past the end yields an empty posts array with the real total.
*/
func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Search: request.URL.Query().Get("search"),
	}

	result, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Serialize an empty page as [] rather than null.
	if result == nil {
		result = []*Post{}
	}

	respond.Paginated(writer, result, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	id, err := postID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldPost: post})
}

type createPostRequest struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Published bool    `json:"published"`
	Tags      *string `json:"tags"`
}

func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	var input createPostRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	post, err := handler.service.Create(request.Context(), CreateInput{
		Title:     input.Title,
		Content:   input.Content,
		Published: input.Published,
		Tags:      input.Tags,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{FieldPost: post})
}

// updatePostRequest distinguishes "tags": null (clear) from an absent key
// (leave unchanged) by tracking raw presence.
type updatePostRequest struct {
	Title     *string         `json:"title"`
	Content   *string         `json:"content"`
	Published *bool           `json:"published"`
	Tags      json.RawMessage `json:"tags"`
}

func (handler *Handler) updatePost(writer http.ResponseWriter, request *http.Request) {
	id, err := postID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updatePostRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	update := UpdateInput{
		Title:     input.Title,
		Content:   input.Content,
		Published: input.Published,
	}

	if len(input.Tags) > 0 {
		if string(input.Tags) == "null" {
			update.ClearTags = true
		} else {
			var tags string
			if err := json.Unmarshal(input.Tags, &tags); err != nil {
				respond.Error(writer, request, validate.ErrInvalidJSON)
				return
			}
			update.Tags = &tags
		}
	}

	post, err := handler.service.Update(request.Context(), id, update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldPost: post})
}

func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	id, err := postID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// postID extracts and validates the {id} route parameter. A malformed UUID is
// a client error, not a 404.
func postID(request *http.Request) (string, error) {
	id := requestutil.ID(request, "id")

	validator := &validate.Validator{}
	validator.Required(FieldID, id).UUID(FieldID, id)
	if err := validator.Err(); err != nil {
		return "", err
	}

	return id, nil
}
