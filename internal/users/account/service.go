// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"

	"github.com/taibuivan/recenzo/internal/platform/apperr"
	"github.com/taibuivan/recenzo/internal/platform/sec"
	"github.com/taibuivan/recenzo/internal/platform/validate"
	"github.com/taibuivan/recenzo/pkg/pointer"
	"github.com/taibuivan/recenzo/pkg/uuid"
)

// Service implements account management use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new account [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Administration

// CreateInput holds the data for an administrator-created account.
type CreateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string // empty defaults to "user"
}

/*
Create provisions a new account on behalf of an administrator.

Description: Validates identity fields, canonicalizes the username, and
persists the account. Uniqueness races are resolved by the storage layer's
unique indexes, never by a read-then-write check.

Returns:
  - *User: Created entity
  - error: Field-scoped validation failures, including duplicates
*/
func (service *Service) Create(context context.Context, input CreateInput) (*User, error) {
	input.Username = NormalizeUsername(input.Username)

	role := sec.RoleUser
	if input.Role != "" {
		role = sec.UserRole(input.Role)
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, input.Username).
		Username(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, MaxUsernameLen).
		NotReserved(FieldUsername, input.Username, ReservedUsername).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, MaxEmailLen).
		MaxLen(FieldFirstName, input.FirstName, MaxNameLen).
		MaxLen(FieldLastName, input.LastName, MaxNameLen).
		OneOf(FieldRole, string(role), sec.RoleStrings()...)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	user := &User{
		ID:        uuid.New(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
		IsActive:  true,
	}

	if err := service.repo.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("account_created", slog.String("username", user.Username))
	return user, nil
}

// List returns a page of accounts, optionally filtered by a username substring.
func (service *Service) List(context context.Context, search string, limit, offset int) ([]*User, int, error) {
	return service.repo.List(context, search, limit, offset)
}

// GetByUsername retrieves an account by its canonical username.
func (service *Service) GetByUsername(context context.Context, username string) (*User, error) {
	return service.repo.FindByUsername(context, NormalizeUsername(username))
}

// GetByUsernameEmail retrieves the account matching the exact username/email
// pair. Used by the signup flow to detect code re-requests.
func (service *Service) GetByUsernameEmail(context context.Context, username, email string) (*User, error) {
	return service.repo.FindByUsernameEmail(context, NormalizeUsername(username), email)
}

// UpdateInput holds a partial account update. Nil fields are left untouched.
type UpdateInput struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

/*
Update applies a partial, administrator-initiated update to the account
addressed by username. Administrators may change any field, including role.
*/
func (service *Service) Update(context context.Context, username string, input UpdateInput) (*User, error) {
	user, err := service.repo.FindByUsername(context, NormalizeUsername(username))
	if err != nil {
		return nil, err
	}

	return service.applyUpdate(context, user, input, true)
}

// Delete removes the account addressed by username.
func (service *Service) Delete(context context.Context, username string) error {
	if err := service.repo.Delete(context, NormalizeUsername(username)); err != nil {
		return err
	}

	service.logger.Info("account_deleted", slog.String("username", NormalizeUsername(username)))
	return nil
}

// # Self-Service

// GetProfile retrieves the caller's own account.
func (service *Service) GetProfile(context context.Context, userID string) (*User, error) {
	return service.repo.FindByID(context, userID)
}

/*
UpdateProfile applies a partial self-service update.

Description: Identical to [Service.Update] except that the role field is
forced to the caller's pre-existing role: a self-edit may never escalate (or
accidentally drop) its own privileges, even when a role value is submitted.
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateInput) (*User, error) {
	user, err := service.repo.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	return service.applyUpdate(context, user, input, false)
}

// applyUpdate merges a partial update into the loaded entity, validates the
// result, and persists it. allowRole gates whether the role field is honored.
func (service *Service) applyUpdate(context context.Context, user *User, input UpdateInput, allowRole bool) (*User, error) {
	if input.Username != nil {
		user.Username = NormalizeUsername(*input.Username)
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if allowRole && input.Role != nil {
		user.Role = sec.UserRole(pointer.Val(input.Role))
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, user.Username).
		Username(FieldUsername, user.Username).
		MaxLen(FieldUsername, user.Username, MaxUsernameLen).
		NotReserved(FieldUsername, user.Username, ReservedUsername).
		Required(FieldEmail, user.Email).
		Email(FieldEmail, user.Email).
		MaxLen(FieldEmail, user.Email, MaxEmailLen).
		MaxLen(FieldFirstName, user.FirstName, MaxNameLen).
		MaxLen(FieldLastName, user.LastName, MaxNameLen).
		OneOf(FieldRole, string(user.Role), sec.RoleStrings()...)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Identity Resolution

/*
LoadIdentity resolves a verified account ID into live request claims.

Description: Called by the authentication middleware on every authenticated
request, so role changes take effect immediately instead of persisting in
stale tokens. Deactivated accounts resolve to an error.
*/
func (service *Service) LoadIdentity(context context.Context, userID string) (*sec.AuthClaims, error) {
	user, err := service.repo.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, apperr.Unauthorized("Account is deactivated")
	}

	return &sec.AuthClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		IsStaff:  user.IsStaff,
	}, nil
}
