// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Constraint Mapping
//
// Uniqueness across the platform (usernames, emails, slugs, one review per
// title and author) is guarded by database unique indexes, not by
// read-then-write checks. A violated constraint therefore surfaces here as
// a field-scoped 400 validation error rather than a 500.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/recenzo/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// uniqueViolation describes the client-facing shape of one unique constraint.
type uniqueViolation struct {
	field   string
	message string
}

// uniqueConstraints maps Postgres constraint names (see data/migrations) to
// the JSON field and message reported to the client.
var uniqueConstraints = map[string]uniqueViolation{
	"uq_account_username":    {field: "username", message: "Username is already taken"},
	"uq_account_email":       {field: "email", message: "Email is already registered"},
	"uq_category_slug":       {field: "slug", message: "Category slug is already in use"},
	"uq_genre_slug":          {field: "slug", message: "Genre slug is already in use"},
	"uq_review_title_author": {field: "title", message: "You have already reviewed this title"},
}

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations become field-scoped validation errors
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		if violation, known := uniqueConstraints[pgErr.ConstraintName]; known {
			return apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   violation.field,
				Message: violation.message,
			})
		}
		return apperr.ValidationError("Resource already exists")
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, optionally restricted to a specific constraint name.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
