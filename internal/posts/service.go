// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package posts

import (
	"context"
	"log/slog"

	"github.com/taibuivan/papyr/internal/platform/validate"
	"github.com/taibuivan/papyr/pkg/slug"
	"github.com/taibuivan/papyr/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

func (service *Service) Get(context context.Context, id string) (*Post, error) {
	return service.repo.Get(context, id)
}

// CreateInput holds the fields accepted when authoring a post.
type CreateInput struct {
	Title     string
	Content   string
	Published bool
	Tags      *string
}

func (service *Service) Create(context context.Context, input CreateInput) (*Post, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MinLen(FieldTitle, input.Title, TitleMinLen).
		MaxLen(FieldTitle, input.Title, TitleMaxLen).
		Required(FieldContent, input.Content).
		MinLen(FieldContent, input.Content, ContentMinLen)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	post := &Post{
		ID:        uuid.New(),
		Title:     input.Title,
		Slug:      slug.From(input.Title),
		Content:   input.Content,
		Published: input.Published,
		Tags:      input.Tags,
	}

	if err := service.repo.Create(context, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_created",
		slog.String("post_id", post.ID),
		slog.String("slug", post.Slug),
	)
	return post, nil
}

// UpdateInput holds the partial field set for editing a post.
// Nil pointers mean "leave unchanged".
type UpdateInput struct {
	Title     *string
	Content   *string
	Published *bool
	Tags      *string
	ClearTags bool
}

func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Post, error) {
	post, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).
			MinLen(FieldTitle, *input.Title, TitleMinLen).
			MaxLen(FieldTitle, *input.Title, TitleMaxLen)
	}
	if input.Content != nil {
		validator.Required(FieldContent, *input.Content).
			MinLen(FieldContent, *input.Content, ContentMinLen)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
		post.Slug = slug.From(*input.Title)
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Published != nil {
		post.Published = *input.Published
	}
	if input.ClearTags {
		post.Tags = nil
	} else if input.Tags != nil {
		post.Tags = input.Tags
	}

	if err := service.repo.Update(context, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_updated", slog.String("post_id", post.ID))
	return post, nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("post_deleted", slog.String("post_id", id))
	return nil
}
