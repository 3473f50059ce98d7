// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recenzo/internal/platform/apperr"
	"github.com/taibuivan/recenzo/internal/platform/sec"
	"github.com/taibuivan/recenzo/internal/social/review"
)

// # Test Doubles

type reviewKey struct {
	titleID int
	id      int
}

// fakeRepository is an in-memory [review.Repository] enforcing the
// one-review-per-author-per-title rule the way the unique index does.
type fakeRepository struct {
	nextID  int
	reviews map[reviewKey]*review.Review
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1, reviews: make(map[reviewKey]*review.Review)}
}

func (f *fakeRepository) Create(_ context.Context, entity *review.Review) error {
	for _, existing := range f.reviews {
		if existing.TitleID == entity.TitleID && existing.AuthorID == entity.AuthorID {
			return apperr.ValidationError("Already reviewed", apperr.FieldError{
				Field:   review.FieldScore,
				Message: "You have already reviewed this title",
			})
		}
	}

	entity.ID = f.nextID
	f.nextID++
	entity.PubDate = time.Now()

	stored := *entity
	f.reviews[reviewKey{entity.TitleID, entity.ID}] = &stored
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, titleID, id int) (*review.Review, error) {
	stored, ok := f.reviews[reviewKey{titleID, id}]
	if !ok {
		return nil, apperr.NotFound("Review")
	}
	out := *stored
	return &out, nil
}

func (f *fakeRepository) ListByTitle(_ context.Context, titleID, _, _ int) ([]*review.Review, int, error) {
	out := make([]*review.Review, 0)
	for key, stored := range f.reviews {
		if key.titleID == titleID {
			copied := *stored
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (f *fakeRepository) Update(_ context.Context, entity *review.Review) error {
	key := reviewKey{entity.TitleID, entity.ID}
	if _, ok := f.reviews[key]; !ok {
		return apperr.NotFound("Review")
	}
	stored := *entity
	f.reviews[key] = &stored
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, titleID, id int) error {
	key := reviewKey{titleID, id}
	if _, ok := f.reviews[key]; !ok {
		return apperr.NotFound("Review")
	}
	delete(f.reviews, key)
	return nil
}

// fakeTitles knows a fixed set of title IDs.
type fakeTitles struct {
	known map[int]bool
}

func (f *fakeTitles) Exists(_ context.Context, titleID int) error {
	if !f.known[titleID] {
		return apperr.NotFound("Title")
	}
	return nil
}

const knownTitleID = 7

func newTestService(t *testing.T) (*review.Service, *fakeRepository) {
	t.Helper()

	repo := newFakeRepository()
	titles := &fakeTitles{known: map[int]bool{knownTitleID: true}}
	return review.NewService(repo, titles, slog.Default()), repo
}

func claimsFor(username string, role sec.UserRole) *sec.AuthClaims {
	return &sec.AuthClaims{
		UserID:   "id-" + username,
		Username: username,
		Role:     role,
		IsStaff:  role.IsAdmin(),
	}
}

// # Create

/*
TestCreate_AuthorDerivedFromCaller verifies the author is always the
authenticated identity, with the publication date set server-side.
*/
func TestCreate_AuthorDerivedFromCaller(t *testing.T) {
	service, _ := newTestService(t)
	author := claimsFor("alice", sec.RoleUser)

	created, err := service.Create(context.Background(), knownTitleID, author, review.CreateInput{
		Text:  "Memorable.",
		Score: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", created.Author)
	assert.Equal(t, author.UserID, created.AuthorID)
	assert.Equal(t, 8, created.Score)
	assert.False(t, created.PubDate.IsZero())
}

/*
TestCreate_MissingTitleIs404 verifies the parent check runs before any
validation.
*/
func TestCreate_MissingTitleIs404(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Create(context.Background(), 999, claimsFor("alice", sec.RoleUser), review.CreateInput{
		Text:  "orphan",
		Score: 5,
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestCreate_ScoreBounds verifies the score must sit inside the 1..10 scale.
*/
func TestCreate_ScoreBounds(t *testing.T) {
	service, _ := newTestService(t)

	for _, score := range []int{0, 11, -3} {
		_, err := service.Create(context.Background(), knownTitleID, claimsFor("alice", sec.RoleUser), review.CreateInput{
			Text:  "out of scale",
			Score: score,
		})
		require.Error(t, err, "score %d", score)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		require.NotEmpty(t, ae.Details)
		assert.Equal(t, review.FieldScore, ae.Details[0].Field)
	}
}

/*
TestCreate_SecondReviewRejected verifies one review per author per title.
*/
func TestCreate_SecondReviewRejected(t *testing.T) {
	service, _ := newTestService(t)
	author := claimsFor("alice", sec.RoleUser)

	_, err := service.Create(context.Background(), knownTitleID, author, review.CreateInput{
		Text: "first take", Score: 6,
	})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), knownTitleID, author, review.CreateInput{
		Text: "second take", Score: 9,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

// # Mutation Policy

/*
TestUpdate_OwnershipMatrix exercises the owner-or-staff rule: the author
and staff may edit, a stranger may not.
*/
func TestUpdate_OwnershipMatrix(t *testing.T) {
	cases := []struct {
		name     string
		caller   *sec.AuthClaims
		wantCode string
	}{
		{name: "author_edits_own", caller: claimsFor("alice", sec.RoleUser)},
		{name: "moderator_edits_any", caller: claimsFor("mod", sec.RoleModerator)},
		{name: "admin_edits_any", caller: claimsFor("root", sec.RoleAdmin)},
		{name: "stranger_forbidden", caller: claimsFor("bob", sec.RoleUser), wantCode: "FORBIDDEN"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service, _ := newTestService(t)

			created, err := service.Create(context.Background(), knownTitleID, claimsFor("alice", sec.RoleUser), review.CreateInput{
				Text: "original", Score: 5,
			})
			require.NoError(t, err)

			text := "edited"
			updated, err := service.Update(context.Background(), knownTitleID, created.ID, tc.caller, review.UpdateInput{
				Text: &text,
			})

			if tc.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tc.wantCode, apperr.As(err).Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "edited", updated.Text)

			// 2. A partial edit keeps the untouched score.
			assert.Equal(t, 5, updated.Score)
		})
	}
}

/*
TestDelete_StrangerForbidden verifies delete runs under the same rule.
*/
func TestDelete_StrangerForbidden(t *testing.T) {
	service, repo := newTestService(t)

	created, err := service.Create(context.Background(), knownTitleID, claimsFor("alice", sec.RoleUser), review.CreateInput{
		Text: "keep me", Score: 7,
	})
	require.NoError(t, err)

	err = service.Delete(context.Background(), knownTitleID, created.ID, claimsFor("bob", sec.RoleUser))
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	err = service.Delete(context.Background(), knownTitleID, created.ID, claimsFor("mod", sec.RoleModerator))
	require.NoError(t, err)
	assert.Empty(t, repo.reviews)
}

// # Subtree Scoping

/*
TestGet_WrongSubtreeIs404 verifies a review is only reachable through its
own title's subtree.
*/
func TestGet_WrongSubtreeIs404(t *testing.T) {
	service, repo := newTestService(t)

	created, err := service.Create(context.Background(), knownTitleID, claimsFor("alice", sec.RoleUser), review.CreateInput{
		Text: "scoped", Score: 4,
	})
	require.NoError(t, err)

	// Register a second title and look the review up through it.
	otherTitle := knownTitleID + 1
	titles := &fakeTitles{known: map[int]bool{knownTitleID: true, otherTitle: true}}
	scoped := review.NewService(repo, titles, slog.Default())

	_, err = scoped.Get(context.Background(), otherTitle, created.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
