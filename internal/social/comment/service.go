// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"

	"github.com/taibuivan/recenzo/internal/platform/policy"
	"github.com/taibuivan/recenzo/internal/platform/sec"
	"github.com/taibuivan/recenzo/internal/platform/validate"
	"github.com/taibuivan/recenzo/pkg/pointer"
)

// ReviewDirectory confirms that the parent review exists under the parent
// title before any comment operation proceeds.
type ReviewDirectory interface {
	Exists(ctx context.Context, titleID, reviewID int) error
}

// Service implements comment use cases.
type Service struct {
	repo    Repository
	reviews ReviewDirectory
	logger  *slog.Logger
}

// NewService constructs a new comment [Service] with its dependencies.
func NewService(repo Repository, reviews ReviewDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		reviews: reviews,
		logger:  logger,
	}
}

// Create persists a reply to a review, authored by the caller.
func (service *Service) Create(context context.Context, titleID, reviewID int, claims *sec.AuthClaims, text string) (*Comment, error) {
	if err := service.reviews.Exists(context, titleID, reviewID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, text)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ReviewID: reviewID,
		AuthorID: claims.UserID,
		Author:   claims.Username,
		Text:     text,
	}

	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "comment_created",
		slog.Int("review_id", reviewID),
		slog.Int("comment_id", comment.ID),
	)
	return comment, nil
}

// List returns a page of a review's comments, oldest first.
func (service *Service) List(context context.Context, titleID, reviewID, limit, offset int) ([]*Comment, int, error) {
	if err := service.reviews.Exists(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}

	return service.repo.ListByReview(context, reviewID, limit, offset)
}

// Get retrieves one comment from a review's subtree.
func (service *Service) Get(context context.Context, titleID, reviewID, id int) (*Comment, error) {
	if err := service.reviews.Exists(context, titleID, reviewID); err != nil {
		return nil, err
	}

	return service.repo.FindByID(context, reviewID, id)
}

// UpdateInput holds a partial comment edit.
type UpdateInput struct {
	Text *string
}

// Update applies a partial edit under the owner-or-staff rule.
func (service *Service) Update(context context.Context, titleID, reviewID, id int, claims *sec.AuthClaims, input UpdateInput) (*Comment, error) {
	comment, err := service.Get(context, titleID, reviewID, id)
	if err != nil {
		return nil, err
	}

	if err := policy.CanModifyOwned(claims, &comment.AuthorID); err != nil {
		return nil, err
	}

	if input.Text != nil {
		comment.Text = pointer.Val(input.Text)
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, comment.Text)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment under the owner-or-staff rule.
func (service *Service) Delete(context context.Context, titleID, reviewID, id int, claims *sec.AuthClaims) error {
	comment, err := service.Get(context, titleID, reviewID, id)
	if err != nil {
		return err
	}

	if err := policy.CanModifyOwned(claims, &comment.AuthorID); err != nil {
		return err
	}

	return service.repo.Delete(context, reviewID, id)
}
