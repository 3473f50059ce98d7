// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the confirmation-code authentication flow.

There are no passwords. A signup either creates an account or re-requests a
code for an existing one, a confirmation code is delivered by email, and the
code is later exchanged for a JWT access token.

# Architecture

  - Service: Orchestrates signup and token exchange.
  - Accounts: Account lookup and creation, delegated to the account domain.
  - CodeIssuer: Stateless confirmation code generation and verification.
  - AttemptRepository: Redis-backed exchange attempt counter per username.

# Flow

 1. POST /auth/signup   → account created (or found), code emailed.
 2. POST /auth/token    → code verified, JWT access token returned.
*/
package auth

import (
	"context"
	"time"

	"github.com/taibuivan/recenzo/internal/platform/sec"
	"github.com/taibuivan/recenzo/internal/users/account"
)

// # Contracts

// Accounts is the slice of the account domain the auth flow depends on.
type Accounts interface {
	// Create provisions a new account, validating input and defaulting the role.
	Create(ctx context.Context, input account.CreateInput) (*account.User, error)

	// GetByUsername retrieves an account by its canonical username.
	GetByUsername(ctx context.Context, username string) (*account.User, error)

	// GetByUsernameEmail retrieves the account matching the exact pair.
	GetByUsernameEmail(ctx context.Context, username, email string) (*account.User, error)
}

// CodeIssuer generates and verifies confirmation codes bound to a snapshot
// of the account's identity fields.
type CodeIssuer interface {
	Generate(state sec.CodeState) string
	Verify(state sec.CodeState, code string) bool
}

// TokenProvider defines the contract for minting access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user ID.
	GenerateAccessToken(userID string, timeToLive time.Duration) (string, error)
}

// AttemptRepository tracks failed token-exchange attempts per username so
// the exchange endpoint can refuse brute-force guessing.
type AttemptRepository interface {
	// Incr increments the failure counter and returns the new value. The
	// counter expires after window from its first increment.
	Incr(ctx context.Context, username string, window time.Duration) (int64, error)

	// Count returns the current failure counter, zero if absent.
	Count(ctx context.Context, username string) (int64, error)

	// Reset clears the failure counter.
	Reset(ctx context.Context, username string) error
}

// # Field Identifiers

// JSON field names used in auth payloads and validation errors.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
)
