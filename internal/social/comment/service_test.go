// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recenzo/internal/platform/apperr"
	"github.com/taibuivan/recenzo/internal/platform/sec"
	"github.com/taibuivan/recenzo/internal/social/comment"
)

// # Test Doubles

type commentKey struct {
	reviewID int
	id       int
}

// fakeRepository is an in-memory [comment.Repository].
type fakeRepository struct {
	nextID   int
	comments map[commentKey]*comment.Comment
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1, comments: make(map[commentKey]*comment.Comment)}
}

func (f *fakeRepository) Create(_ context.Context, entity *comment.Comment) error {
	entity.ID = f.nextID
	f.nextID++
	entity.PubDate = time.Now()

	stored := *entity
	f.comments[commentKey{entity.ReviewID, entity.ID}] = &stored
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, reviewID, id int) (*comment.Comment, error) {
	stored, ok := f.comments[commentKey{reviewID, id}]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	out := *stored
	return &out, nil
}

func (f *fakeRepository) ListByReview(_ context.Context, reviewID, _, _ int) ([]*comment.Comment, int, error) {
	out := make([]*comment.Comment, 0)
	for key, stored := range f.comments {
		if key.reviewID == reviewID {
			copied := *stored
			out = append(out, &copied)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) Update(_ context.Context, entity *comment.Comment) error {
	key := commentKey{entity.ReviewID, entity.ID}
	if _, ok := f.comments[key]; !ok {
		return apperr.NotFound("Comment")
	}
	stored := *entity
	f.comments[key] = &stored
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, reviewID, id int) error {
	key := commentKey{reviewID, id}
	if _, ok := f.comments[key]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(f.comments, key)
	return nil
}

// fakeReviews knows a fixed set of (titleID, reviewID) pairs.
type fakeReviews struct {
	known map[[2]int]bool
}

func (f *fakeReviews) Exists(_ context.Context, titleID, reviewID int) error {
	if !f.known[[2]int{titleID, reviewID}] {
		return apperr.NotFound("Review")
	}
	return nil
}

const (
	parentTitleID  = 3
	parentReviewID = 11
)

func newTestService(t *testing.T) *comment.Service {
	t.Helper()

	reviews := &fakeReviews{known: map[[2]int]bool{
		{parentTitleID, parentReviewID}: true,
	}}
	return comment.NewService(newFakeRepository(), reviews, slog.Default())
}

func claimsFor(username string, role sec.UserRole) *sec.AuthClaims {
	return &sec.AuthClaims{
		UserID:   "id-" + username,
		Username: username,
		Role:     role,
		IsStaff:  role.IsAdmin(),
	}
}

/*
TestCreate verifies the happy path and the server-derived fields.
*/
func TestCreate(t *testing.T) {
	service := newTestService(t)

	created, err := service.Create(context.Background(), parentTitleID, parentReviewID,
		claimsFor("alice", sec.RoleUser), "Completely agree.")
	require.NoError(t, err)

	assert.Equal(t, "alice", created.Author)
	assert.Equal(t, parentReviewID, created.ReviewID)
	assert.False(t, created.PubDate.IsZero())
}

/*
TestCreate_ParentChecks verifies a comment cannot attach to a review that
is absent, or present only under a different title.
*/
func TestCreate_ParentChecks(t *testing.T) {
	service := newTestService(t)
	author := claimsFor("alice", sec.RoleUser)

	_, err := service.Create(context.Background(), parentTitleID, 999, author, "orphan")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// Right review ID, wrong title subtree.
	_, err = service.Create(context.Background(), parentTitleID+1, parentReviewID, author, "misfiled")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestCreate_BlankTextRejected verifies the only content rule comments have.
*/
func TestCreate_BlankTextRejected(t *testing.T) {
	service := newTestService(t)

	_, err := service.Create(context.Background(), parentTitleID, parentReviewID,
		claimsFor("alice", sec.RoleUser), "   ")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	require.NotEmpty(t, ae.Details)
	assert.Equal(t, comment.FieldText, ae.Details[0].Field)
}

/*
TestMutation_OwnerOrStaff verifies edits and deletes run under the same
policy as reviews.
*/
func TestMutation_OwnerOrStaff(t *testing.T) {
	service := newTestService(t)

	created, err := service.Create(context.Background(), parentTitleID, parentReviewID,
		claimsFor("alice", sec.RoleUser), "original")
	require.NoError(t, err)

	text := "revised"

	// 1. A stranger may neither edit nor delete.
	_, err = service.Update(context.Background(), parentTitleID, parentReviewID, created.ID,
		claimsFor("bob", sec.RoleUser), comment.UpdateInput{Text: &text})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	err = service.Delete(context.Background(), parentTitleID, parentReviewID, created.ID,
		claimsFor("bob", sec.RoleUser))
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// 2. The author edits their own comment.
	updated, err := service.Update(context.Background(), parentTitleID, parentReviewID, created.ID,
		claimsFor("alice", sec.RoleUser), comment.UpdateInput{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Text)

	// 3. A moderator removes it.
	err = service.Delete(context.Background(), parentTitleID, parentReviewID, created.ID,
		claimsFor("mod", sec.RoleModerator))
	require.NoError(t, err)
}
