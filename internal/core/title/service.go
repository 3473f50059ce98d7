// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/recenzo/internal/core/category"
	"github.com/taibuivan/recenzo/internal/core/genre"
	"github.com/taibuivan/recenzo/internal/platform/apperr"
	"github.com/taibuivan/recenzo/internal/platform/validate"
	"github.com/taibuivan/recenzo/pkg/pointer"
)

// # Contracts

// CategoryResolver resolves a category slug supplied in a payload.
type CategoryResolver interface {
	FindBySlug(ctx context.Context, slug string) (*category.Category, error)
}

// GenreResolver resolves a genre slug supplied in a payload.
type GenreResolver interface {
	FindBySlug(ctx context.Context, slug string) (*genre.Genre, error)
}

// Service implements title use cases.
type Service struct {
	repo       Repository
	categories CategoryResolver
	genres     GenreResolver
	logger     *slog.Logger
}

// NewService constructs a new title [Service] with its dependencies.
func NewService(repo Repository, categories CategoryResolver, genres GenreResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		genres:     genres,
		logger:     logger,
	}
}

// CreateInput holds the data for a new title. Category and genres are
// referenced by slug, matching the public identifiers of those domains.
type CreateInput struct {
	Name         string
	Year         int
	Description  string
	CategorySlug string
	GenreSlugs   []string
}

/*
Create validates slugs, persists the title, and returns it fully hydrated.

Description: An unknown category or genre slug is a client mistake, not a
server failure, so it surfaces as a field-scoped validation error.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Title: Created entity with category, genres, and (null) rating
  - err: Validation or storage errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Title, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLen)
	validateYear(validator, input.Year)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Description == "" {
		input.Description = DefaultDescription
	}

	title := &Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
	}

	if input.CategorySlug != "" {
		resolved, err := service.resolveCategory(context, input.CategorySlug)
		if err != nil {
			return nil, err
		}
		title.Category = resolved
	}

	genreIDs, err := service.resolveGenres(context, input.GenreSlugs)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, title, genreIDs); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "title_created", slog.Int("title_id", title.ID))

	// Re-read for the hydrated response shape (genres ordered, null rating).
	return service.repo.FindByID(context, title.ID)
}

// List returns a hydrated, filtered page of titles.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

// Get retrieves a single hydrated title.
func (service *Service) Get(context context.Context, id int) (*Title, error) {
	return service.repo.FindByID(context, id)
}

// Exists reports whether a title exists, as a nil-or-NotFound error.
// Nested resources use it to 404 on a missing parent.
func (service *Service) Exists(context context.Context, id int) error {
	_, err := service.repo.FindByID(context, id)
	return err
}

// UpdateInput holds a partial title update. Nil fields are left untouched;
// a non-nil GenreSlugs replaces the genre set wholesale.
type UpdateInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

// Update applies a partial update and returns the hydrated result.
func (service *Service) Update(context context.Context, id int, input UpdateInput) (*Title, error) {
	title, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		title.Name = pointer.Val(input.Name)
	}
	if input.Year != nil {
		title.Year = pointer.Val(input.Year)
	}
	if input.Description != nil {
		title.Description = pointer.Val(input.Description)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, title.Name).
		MaxLen(FieldName, title.Name, MaxNameLen)
	validateYear(validator, title.Year)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.CategorySlug != nil {
		if pointer.Val(input.CategorySlug) == "" {
			title.Category = nil
		} else {
			resolved, err := service.resolveCategory(context, pointer.Val(input.CategorySlug))
			if err != nil {
				return nil, err
			}
			title.Category = resolved
		}
	}

	var genreIDs []int
	replaceGenres := input.GenreSlugs != nil
	if replaceGenres {
		genreIDs, err = service.resolveGenres(context, *input.GenreSlugs)
		if err != nil {
			return nil, err
		}
	}

	if err := service.repo.Update(context, title, genreIDs, replaceGenres); err != nil {
		return nil, err
	}

	return service.repo.FindByID(context, id)
}

// Delete removes a title along with its reviews.
func (service *Service) Delete(context context.Context, id int) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.InfoContext(context, "title_deleted", slog.Int("title_id", id))
	return nil
}

// resolveCategory maps a payload slug to its category, downgrading a miss
// to a field-level validation error.
func (service *Service) resolveCategory(context context.Context, slug string) (*category.Category, error) {
	resolved, err := service.categories.FindBySlug(context, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.ValidationError("Unknown category", apperr.FieldError{
				Field:   FieldCategory,
				Message: "Category with slug '" + slug + "' does not exist",
			})
		}
		return nil, err
	}
	return resolved, nil
}

// resolveGenres maps payload slugs to genre IDs, deduplicating repeats.
func (service *Service) resolveGenres(context context.Context, slugs []string) ([]int, error) {
	ids := make([]int, 0, len(slugs))
	seen := make(map[int]bool, len(slugs))

	for _, slug := range slugs {
		resolved, err := service.genres.FindBySlug(context, slug)
		if err != nil {
			if isNotFound(err) {
				return nil, apperr.ValidationError("Unknown genre", apperr.FieldError{
					Field:   FieldGenre,
					Message: "Genre with slug '" + slug + "' does not exist",
				})
			}
			return nil, err
		}
		if !seen[resolved.ID] {
			seen[resolved.ID] = true
			ids = append(ids, resolved.ID)
		}
	}
	return ids, nil
}

// validateYear rejects release years in the future.
func validateYear(validator *validate.Validator, year int) {
	validator.Max(FieldYear, year, time.Now().Year())
}

// isNotFound reports whether err is a 404-shaped [apperr.AppError].
func isNotFound(err error) bool {
	appErr := apperr.As(err)
	return appErr != nil && appErr.Code == "NOT_FOUND"
}
