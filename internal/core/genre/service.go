// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"log/slog"

	"github.com/taibuivan/recenzo/internal/platform/validate"
	slugutil "github.com/taibuivan/recenzo/pkg/slug"
)

// Service implements genre use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new genre [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateInput holds the data for a new genre. An empty slug is derived from
// the name.
type CreateInput struct {
	Name string
	Slug string
}

// Create validates and persists a new genre.
func (service *Service) Create(context context.Context, input CreateInput) (*Genre, error) {
	if input.Slug == "" {
		input.Slug = slugutil.From(input.Name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLen).
		Required(FieldSlug, input.Slug).
		MaxLen(FieldSlug, input.Slug, MaxSlugLen).
		Slug(FieldSlug, input.Slug)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	genre := &Genre{
		Name: input.Name,
		Slug: input.Slug,
	}

	if err := service.repo.Create(context, genre); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "genre_created", slog.String("slug", genre.Slug))
	return genre, nil
}

// List returns a page of genres ordered by name, with an optional name
// substring filter.
func (service *Service) List(context context.Context, search string, limit, offset int) ([]*Genre, int, error) {
	return service.repo.List(context, search, limit, offset)
}

// GetBySlug retrieves a genre by its public identifier.
func (service *Service) GetBySlug(context context.Context, slug string) (*Genre, error) {
	return service.repo.FindBySlug(context, slug)
}

// Delete removes the genre addressed by slug. Junction rows are removed
// with it; titles themselves are untouched.
func (service *Service) Delete(context context.Context, slug string) error {
	if err := service.repo.DeleteBySlug(context, slug); err != nil {
		return err
	}

	service.logger.InfoContext(context, "genre_deleted", slog.String("slug", slug))
	return nil
}
