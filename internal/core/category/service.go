// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"log/slog"

	"github.com/taibuivan/recenzo/internal/platform/validate"
	slugutil "github.com/taibuivan/recenzo/pkg/slug"
)

// Service implements category use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new category [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateInput holds the data for a new category. An empty slug is derived
// from the name.
type CreateInput struct {
	Name string
	Slug string
}

// Create validates and persists a new category. Slug collisions surface as
// field-scoped validation failures via the unique index.
func (service *Service) Create(context context.Context, input CreateInput) (*Category, error) {
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

	category := &Category{
		Name: input.Name,
		Slug: input.Slug,
	}

	if err := service.repo.Create(context, category); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "category_created", slog.String("slug", category.Slug))
	return category, nil
}

// List returns a page of categories ordered by name, with an optional name
// substring filter.
func (service *Service) List(context context.Context, search string, limit, offset int) ([]*Category, int, error) {
	return service.repo.List(context, search, limit, offset)
}

// GetBySlug retrieves a category by its public identifier.
func (service *Service) GetBySlug(context context.Context, slug string) (*Category, error) {
	return service.repo.FindBySlug(context, slug)
}

// Delete removes the category addressed by slug. Titles keep existing with
// their category cleared.
func (service *Service) Delete(context context.Context, slug string) error {
	if err := service.repo.DeleteBySlug(context, slug); err != nil {
		return err
	}

	service.logger.InfoContext(context, "category_deleted", slog.String("slug", slug))
	return nil
}
