// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recenzo/internal/platform/apperr"
	"github.com/taibuivan/recenzo/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Recenzo", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Username checks the username character-set rule.
*/
func TestValidator_Username(t *testing.T) {
	tests := []struct {
		name     string
		username string
		isValid  bool
	}{
		{"plain", "alice", true},
		{"with_allowed_symbols", "a.b@c+d-e_f", true},
		{"digits", "user2026", true},
		{"space", "bad user", false},
		{"slash", "bad/user", false},
		{"unicode", "ユーザー", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Username("username", tt.username)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_NotReserved checks reserved-word rejection regardless of case.
*/
func TestValidator_NotReserved(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"free_name", "alice", true},
		{"reserved_exact", "me", false},
		{"reserved_uppercase", "ME", false},
		{"reserved_mixed", "Me", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.NotReserved("username", tt.value, "me")

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Range checks inclusive integer bounds.
*/
func TestValidator_Range(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		isValid bool
	}{
		{"lower_bound", 1, true},
		{"upper_bound", 10, true},
		{"middle", 7, true},
		{"below", 0, false},
		{"above", 11, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Range("score", tt.value, 1, 10)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Max checks the integer upper bound used for release years.
*/
func TestValidator_Max(t *testing.T) {
	v := &validate.Validator{}
	v.Max("year", 2030, 2026)
	assert.True(t, v.HasErrors())

	v = &validate.Validator{}
	v.Max("year", 2026, 2026)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Slug checks the URL-safe slug format rule.
*/
func TestValidator_Slug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		isValid bool
	}{
		{"simple", "movies", true},
		{"hyphenated", "sci-fi", true},
		{"with_digits", "top-10", true},
		{"uppercase", "Movies", false},
		{"space", "bad slug", false},
		{"trailing_symbol", "movies!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Slug("slug", tt.slug)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_OneOf checks enumerated-value membership.
*/
func TestValidator_OneOf(t *testing.T) {
	allowed := []string{"user", "moderator", "admin"}

	v := &validate.Validator{}
	v.OneOf("role", "moderator", allowed...)
	assert.False(t, v.HasErrors())

	v = &validate.Validator{}
	v.OneOf("role", "superuser", allowed...)
	assert.True(t, v.HasErrors())
}

/*
TestValidator_ChainAccumulates verifies that multiple failures are collected
into a single validation error with one detail per field.
*/
func TestValidator_ChainAccumulates(t *testing.T) {
	v := &validate.Validator{}
	v.Required("username", "").
		Required("email", "").
		Email("email", "")

	err := v.Err()
	require.NotNil(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.GreaterOrEqual(t, len(ae.Details), 2)
}
