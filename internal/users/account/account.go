// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account implements the user identity domain.

It defines the User entity, the persistence contract, and the management
use cases: administrator CRUD over accounts and the self-service profile
("me") endpoint.

# Architecture

This layer is the "Truth" of the identity system. The auth package builds
the signup and token-exchange flow on top of the entity and repository
defined here.
*/
package account

import (
	"context"
	"strings"
	"time"

	"github.com/taibuivan/recenzo/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Recenzo platform.
//
// Role is server-controlled: self-service updates can never change it, only
// an administrator can.
type User struct {
	ID         string       `json:"-"`
	Username   string       `json:"username"`
	Email      string       `json:"email"`
	FirstName  string       `json:"first_name"`
	LastName   string       `json:"last_name"`
	Bio        string       `json:"bio"`
	Role       sec.UserRole `json:"role"`
	IsStaff    bool         `json:"-"`
	IsActive   bool         `json:"-"`
	DateJoined time.Time    `json:"-"`

	// UpdatedAt participates in confirmation-code binding: any persisted
	// change to the account silently invalidates outstanding codes.
	UpdatedAt time.Time `json:"-"`
}

// CodeState projects the fields a confirmation code is bound to.
func (user *User) CodeState() sec.CodeState {
	return sec.CodeState{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		UpdatedAt: user.UpdatedAt,
	}
}

// # Constraints

const (
	// MaxUsernameLen is the maximum username length.
	MaxUsernameLen = 150

	// MaxEmailLen is the maximum email length.
	MaxEmailLen = 254

	// MaxNameLen is the maximum first/last name length.
	MaxNameLen = 150

	// ReservedUsername can never be registered: it addresses the
	// self-service endpoint /users/me.
	ReservedUsername = "me"
)

// NormalizeUsername lower-cases and trims a raw username. Usernames are
// stored and compared in this canonical form.
func NormalizeUsername(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// # Field Identifiers

// Global field names for validation and identity mapping in the users domain.
const (
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldBio       = "bio"
	FieldRole      = "role"
)

// # Repository Contract

// Repository defines the persistence contract for user accounts.
type Repository interface {
	// Create persists a new account. Unique-constraint violations surface
	// as field-scoped validation errors.
	Create(ctx context.Context, user *User) error

	// FindByID retrieves an account by its UUID.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByUsername retrieves an account by its canonical username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByUsernameEmail retrieves the account exactly matching both the
	// canonical username and the email.
	FindByUsernameEmail(ctx context.Context, username, email string) (*User, error)

	// List returns a page of accounts, optionally filtered by a username
	// substring, plus the unfiltered-total for pagination.
	List(ctx context.Context, search string, limit, offset int) ([]*User, int, error)

	// Update rewrites the mutable fields of an account and bumps UpdatedAt.
	Update(ctx context.Context, user *User) error

	// Delete removes an account by canonical username. Reviews and comments
	// authored by the account are cascade-deleted by the storage layer.
	Delete(ctx context.Context, username string) error
}
