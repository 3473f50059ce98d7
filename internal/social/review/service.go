// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"

	"github.com/taibuivan/recenzo/internal/platform/policy"
	"github.com/taibuivan/recenzo/internal/platform/sec"
	"github.com/taibuivan/recenzo/internal/platform/validate"
	"github.com/taibuivan/recenzo/pkg/pointer"
)

// TitleDirectory confirms that a parent title exists before any review
// operation touches its subtree.
type TitleDirectory interface {
	Exists(ctx context.Context, titleID int) error
}

// Service implements review use cases.
type Service struct {
	repo   Repository
	titles TitleDirectory
	logger *slog.Logger
}

// NewService constructs a new review [Service] with its dependencies.
func NewService(repo Repository, titles TitleDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		titles: titles,
		logger: logger,
	}
}

// CreateInput holds the member-supplied part of a new review. Author and
// publication date are derived server-side.
type CreateInput struct {
	Text  string
	Score int
}

/*
Create validates and persists a review authored by the caller.

Description: The author is always the authenticated identity. A second
review of the same title by the same author trips the unique index and
surfaces as a validation failure.

Parameters:
  - context: context.Context
  - titleID: int
  - claims: *sec.AuthClaims
  - input: CreateInput

Returns:
  - *Review: Created entity with author username and server pub date
  - err: NotFound (title), validation, or storage errors
*/
func (service *Service) Create(context context.Context, titleID int, claims *sec.AuthClaims, input CreateInput) (*Review, error) {
	if err := service.titles.Exists(context, titleID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text).
		Range(FieldScore, input.Score, MinScore, MaxScore)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	review := &Review{
		TitleID:  titleID,
		AuthorID: claims.UserID,
		Author:   claims.Username,
		Text:     input.Text,
		Score:    input.Score,
	}

	if err := service.repo.Create(context, review); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "review_created",
		slog.Int("title_id", titleID),
		slog.Int("review_id", review.ID),
	)
	return review, nil
}

// List returns a page of a title's reviews in publication order.
func (service *Service) List(context context.Context, titleID, limit, offset int) ([]*Review, int, error) {
	if err := service.titles.Exists(context, titleID); err != nil {
		return nil, 0, err
	}

	return service.repo.ListByTitle(context, titleID, limit, offset)
}

// Get retrieves one review from a title's subtree.
func (service *Service) Get(context context.Context, titleID, id int) (*Review, error) {
	if err := service.titles.Exists(context, titleID); err != nil {
		return nil, err
	}

	return service.repo.FindByID(context, titleID, id)
}

// Exists reports whether a review exists under the title, as a
// nil-or-NotFound error. The comment subtree uses it for parent checks.
func (service *Service) Exists(context context.Context, titleID, id int) error {
	_, err := service.Get(context, titleID, id)
	return err
}

// UpdateInput holds a partial review edit. Nil fields are left untouched.
type UpdateInput struct {
	Text  *string
	Score *int
}

// Update applies a partial edit under the owner-or-staff rule.
func (service *Service) Update(context context.Context, titleID, id int, claims *sec.AuthClaims, input UpdateInput) (*Review, error) {
	review, err := service.Get(context, titleID, id)
	if err != nil {
		return nil, err
	}

	if err := policy.CanModifyOwned(claims, &review.AuthorID); err != nil {
		return nil, err
	}

	if input.Text != nil {
		review.Text = pointer.Val(input.Text)
	}
	if input.Score != nil {
		review.Score = pointer.Val(input.Score)
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, review.Text).
		Range(FieldScore, review.Score, MinScore, MaxScore)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review under the owner-or-staff rule. The title's
// rating reflects the removal on the next read.
func (service *Service) Delete(context context.Context, titleID, id int, claims *sec.AuthClaims) error {
	review, err := service.Get(context, titleID, id)
	if err != nil {
		return err
	}

	if err := policy.CanModifyOwned(claims, &review.AuthorID); err != nil {
		return err
	}

	return service.repo.Delete(context, titleID, id)
}
