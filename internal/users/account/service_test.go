// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recenzo/internal/platform/apperr"
	"github.com/taibuivan/recenzo/internal/platform/sec"
	"github.com/taibuivan/recenzo/internal/users/account"
)

// fakeRepository is an in-memory [account.Repository] keyed by user ID.
type fakeRepository struct {
	users map[string]*account.User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: make(map[string]*account.User)}
}

func (f *fakeRepository) Create(_ context.Context, user *account.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return apperr.ValidationError("Already exists", apperr.FieldError{
				Field: account.FieldUsername, Message: "Already in use",
			})
		}
		if existing.Email == user.Email {
			return apperr.ValidationError("Already exists", apperr.FieldError{
				Field: account.FieldEmail, Message: "Already in use",
			})
		}
	}

	stored := *user
	stored.DateJoined = time.Now()
	stored.UpdatedAt = stored.DateJoined
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*account.User, error) {
	if user, ok := f.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeRepository) FindByUsername(_ context.Context, username string) (*account.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeRepository) FindByUsernameEmail(_ context.Context, username, email string) (*account.User, error) {
	for _, user := range f.users {
		if user.Username == username && user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeRepository) List(_ context.Context, search string, limit, offset int) ([]*account.User, int, error) {
	results := make([]*account.User, 0)
	for _, user := range f.users {
		results = append(results, user)
	}
	return results, len(results), nil
}

func (f *fakeRepository) Update(_ context.Context, user *account.User) error {
	stored, ok := f.users[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}

	*stored = *user
	stored.UpdatedAt = time.Now()
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, username string) error {
	for id, user := range f.users {
		if user.Username == username {
			delete(f.users, id)
			return nil
		}
	}
	return apperr.NotFound("User")
}

func newTestService(t *testing.T) (*account.Service, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	return account.NewService(repo, slog.Default()), repo
}

/*
TestService_Create covers username canonicalization, role defaulting, and
rejection of malformed or reserved identities.
*/
func TestService_Create(t *testing.T) {
	t.Run("defaults_and_normalization", func(t *testing.T) {
		service, _ := newTestService(t)

		user, err := service.Create(context.Background(), account.CreateInput{
			Username: "  Alice  ",
			Email:    "alice@example.com",
		})
		require.NoError(t, err)

		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, sec.RoleUser, user.Role)
		assert.True(t, user.IsActive)
		assert.NotEmpty(t, user.ID)
	})

	t.Run("explicit_role", func(t *testing.T) {
		service, _ := newTestService(t)

		user, err := service.Create(context.Background(), account.CreateInput{
			Username: "mod",
			Email:    "mod@example.com",
			Role:     "moderator",
		})
		require.NoError(t, err)
		assert.Equal(t, sec.RoleModerator, user.Role)
	})

	t.Run("rejections", func(t *testing.T) {
		service, _ := newTestService(t)

		tests := []struct {
			name  string
			input account.CreateInput
			field string
		}{
			{"reserved_username", account.CreateInput{Username: "me", Email: "a@b.com"}, account.FieldUsername},
			{"reserved_username_cased", account.CreateInput{Username: "ME", Email: "a@b.com"}, account.FieldUsername},
			{"bad_characters", account.CreateInput{Username: "no spaces", Email: "a@b.com"}, account.FieldUsername},
			{"bad_email", account.CreateInput{Username: "ok", Email: "nope"}, account.FieldEmail},
			{"unknown_role", account.CreateInput{Username: "ok", Email: "a@b.com", Role: "root"}, account.FieldRole},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := service.Create(context.Background(), tt.input)
				require.Error(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			})
		}
	})

	t.Run("duplicate_username_is_field_error", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.Create(context.Background(), account.CreateInput{
			Username: "alice", Email: "alice@example.com",
		})
		require.NoError(t, err)

		_, err = service.Create(context.Background(), account.CreateInput{
			Username: "alice", Email: "other@example.com",
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})
}

/*
TestService_UpdateProfile verifies that a self-service edit can never
change the stored role, even when a role value is submitted.
*/
func TestService_UpdateProfile(t *testing.T) {
	service, _ := newTestService(t)

	user, err := service.Create(context.Background(), account.CreateInput{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	role := "admin"
	bio := "I review things."

	updated, err := service.UpdateProfile(context.Background(), user.ID, account.UpdateInput{
		Bio:  &bio,
		Role: &role,
	})
	require.NoError(t, err)

	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, sec.RoleUser, updated.Role, "self-service update must not escalate role")
}

/*
TestService_Update verifies the administrator path honors role changes.
*/
func TestService_Update(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Create(context.Background(), account.CreateInput{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	role := "moderator"
	updated, err := service.Update(context.Background(), "Alice", account.UpdateInput{Role: &role})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleModerator, updated.Role)
}

/*
TestService_LoadIdentity verifies identity resolution for the auth
middleware, including the deactivated-account rejection.
*/
func TestService_LoadIdentity(t *testing.T) {
	service, repo := newTestService(t)

	user, err := service.Create(context.Background(), account.CreateInput{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     "moderator",
	})
	require.NoError(t, err)

	// 1. Active account resolves to live claims
	claims, err := service.LoadIdentity(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.Role.IsModerator())

	// 2. Deactivation takes effect on the next request
	repo.users[user.ID].IsActive = false
	_, err = service.LoadIdentity(context.Background(), user.ID)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// 3. Unknown IDs surface as not found
	_, err = service.LoadIdentity(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
