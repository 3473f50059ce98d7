// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recenzo/internal/platform/apperr"
	"github.com/taibuivan/recenzo/internal/platform/constants"
	"github.com/taibuivan/recenzo/internal/platform/sec"
	"github.com/taibuivan/recenzo/internal/users/account"
	"github.com/taibuivan/recenzo/internal/users/auth"
)

// # Test Doubles

// fakeAccounts is an in-memory [auth.Accounts].
type fakeAccounts struct {
	users   map[string]*account.User // keyed by username
	created int
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{users: make(map[string]*account.User)}
}

func (f *fakeAccounts) Create(_ context.Context, input account.CreateInput) (*account.User, error) {
	username := account.NormalizeUsername(input.Username)

	for _, user := range f.users {
		if user.Username == username || user.Email == input.Email {
			return nil, apperr.ValidationError("Already exists", apperr.FieldError{
				Field: account.FieldUsername, Message: "Already in use",
			})
		}
	}

	user := &account.User{
		ID:        "id-" + username,
		Username:  username,
		Email:     input.Email,
		Role:      sec.RoleUser,
		IsActive:  true,
		UpdatedAt: time.Now(),
	}
	f.users[username] = user
	f.created++
	return user, nil
}

func (f *fakeAccounts) GetByUsername(_ context.Context, username string) (*account.User, error) {
	if user, ok := f.users[account.NormalizeUsername(username)]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeAccounts) GetByUsernameEmail(_ context.Context, username, email string) (*account.User, error) {
	user, err := f.GetByUsername(context.Background(), username)
	if err != nil || user.Email != email {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

// fakeAttempts counts failures in memory.
type fakeAttempts struct {
	counts map[string]int64
}

func newFakeAttempts() *fakeAttempts {
	return &fakeAttempts{counts: make(map[string]int64)}
}

func (f *fakeAttempts) Incr(_ context.Context, username string, _ time.Duration) (int64, error) {
	f.counts[username]++
	return f.counts[username], nil
}

func (f *fakeAttempts) Count(_ context.Context, username string) (int64, error) {
	return f.counts[username], nil
}

func (f *fakeAttempts) Reset(_ context.Context, username string) error {
	delete(f.counts, username)
	return nil
}

// recordingMailer captures dispatched messages.
type recordingMailer struct {
	recipients []string
	bodies     []string
	fail       bool
}

func (m *recordingMailer) Send(_ context.Context, to, _, body string) error {
	if m.fail {
		return assert.AnError
	}
	m.recipients = append(m.recipients, to)
	m.bodies = append(m.bodies, body)
	return nil
}

// staticTokens mints a fixed token string.
type staticTokens struct{}

func (staticTokens) GenerateAccessToken(userID string, _ time.Duration) (string, error) {
	return "jwt-for-" + userID, nil
}

type authFixture struct {
	service  *auth.Service
	accounts *fakeAccounts
	attempts *fakeAttempts
	mailer   *recordingMailer
	codes    *sec.ConfirmationCodeService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	accounts := newFakeAccounts()
	attempts := newFakeAttempts()
	dispatcher := &recordingMailer{}
	codes := sec.NewConfirmationCodeService("test-secret", 24*time.Hour)

	service := auth.NewService(accounts, codes, staticTokens{}, attempts, dispatcher, slog.Default())

	return &authFixture{
		service:  service,
		accounts: accounts,
		attempts: attempts,
		mailer:   dispatcher,
		codes:    codes,
	}
}

// # Signup

/*
TestSignup_CreatesAccountAndDispatchesCode covers the happy path: account
created, confirmation code emailed, identity echoed back.
*/
func TestSignup_CreatesAccountAndDispatchesCode(t *testing.T) {
	fx := newAuthFixture(t)

	result, err := fx.service.Signup(context.Background(), auth.SignupInput{
		Username: "Alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", result.Username)
	assert.Equal(t, "alice@example.com", result.Email)
	assert.Equal(t, 1, fx.accounts.created)
	require.Len(t, fx.mailer.recipients, 1)
	assert.Equal(t, "alice@example.com", fx.mailer.recipients[0])
}

/*
TestSignup_ExactPairResendsCode verifies that repeating a signup with the
same username/email pair re-issues a code instead of failing, and creates
no second account.
*/
func TestSignup_ExactPairResendsCode(t *testing.T) {
	fx := newAuthFixture(t)
	input := auth.SignupInput{Username: "alice", Email: "alice@example.com"}

	_, err := fx.service.Signup(context.Background(), input)
	require.NoError(t, err)

	result, err := fx.service.Signup(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "alice", result.Username)
	assert.Equal(t, 1, fx.accounts.created, "resend must not create a second account")
	assert.Len(t, fx.mailer.recipients, 2, "resend must dispatch a fresh code")
}

/*
TestSignup_PartialPairCollision verifies that reusing only the username (or
only the email) of an existing account is rejected as a validation error.
*/
func TestSignup_PartialPairCollision(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.service.Signup(context.Background(), auth.SignupInput{
		Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)

	_, err = fx.service.Signup(context.Background(), auth.SignupInput{
		Username: "alice", Email: "impostor@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestSignup_DispatchFailureIsNonFatal verifies that a broken mail relay does
not fail the signup; the client can simply request a new code later.
*/
func TestSignup_DispatchFailureIsNonFatal(t *testing.T) {
	fx := newAuthFixture(t)
	fx.mailer.fail = true

	result, err := fx.service.Signup(context.Background(), auth.SignupInput{
		Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", result.Username)
	assert.Equal(t, 1, fx.accounts.created)
}

// # Token Exchange

/*
TestToken_UnknownUsernameIs404 verifies the exchange distinguishes a
missing account (404) from a bad code (400).
*/
func TestToken_UnknownUsernameIs404(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.service.Token(context.Background(), auth.TokenInput{
		Username:         "ghost",
		ConfirmationCode: "whatever",
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestToken_BadCodeIsFieldErrorAndCounted verifies that a wrong code yields a
confirmation_code field error and increments the attempt counter.
*/
func TestToken_BadCodeIsFieldErrorAndCounted(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.service.Signup(context.Background(), auth.SignupInput{
		Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)

	_, err = fx.service.Token(context.Background(), auth.TokenInput{
		Username:         "alice",
		ConfirmationCode: "bogus-code",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	require.NotEmpty(t, ae.Details)
	assert.Equal(t, auth.FieldConfirmationCode, ae.Details[0].Field)
	assert.Equal(t, int64(1), fx.attempts.counts["alice"])
}

/*
TestToken_RateLimitedAfterMaxAttempts verifies the brute-force guard: past
the attempt budget even a correct code is refused with 429.
*/
func TestToken_RateLimitedAfterMaxAttempts(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.service.Signup(context.Background(), auth.SignupInput{
		Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)

	fx.attempts.counts["alice"] = constants.MaxCodeAttempts

	user := fx.accounts.users["alice"]
	goodCode := fx.codes.Generate(user.CodeState())

	_, err = fx.service.Token(context.Background(), auth.TokenInput{
		Username:         "alice",
		ConfirmationCode: goodCode,
	})
	require.Error(t, err)
	assert.Equal(t, "RATE_LIMITED", apperr.As(err).Code)
}

/*
TestToken_SuccessIssuesJWTAndResetsCounter covers the full happy path of
the exchange.
*/
func TestToken_SuccessIssuesJWTAndResetsCounter(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.service.Signup(context.Background(), auth.SignupInput{
		Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)

	// A couple of earlier failures should not block a valid exchange.
	fx.attempts.counts["alice"] = 2

	user := fx.accounts.users["alice"]
	code := fx.codes.Generate(user.CodeState())

	result, err := fx.service.Token(context.Background(), auth.TokenInput{
		Username:         "Alice", // exchange is case-insensitive on username
		ConfirmationCode: code,
	})
	require.NoError(t, err)

	assert.Equal(t, "jwt-for-"+user.ID, result.Token)
	assert.Zero(t, fx.attempts.counts["alice"], "success must reset the failure counter")
}

/*
TestToken_CodeInvalidatedByProfileChange verifies the stateless
invalidation property: once the account's bound state changes, previously
issued codes stop verifying.
*/
func TestToken_CodeInvalidatedByProfileChange(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.service.Signup(context.Background(), auth.SignupInput{
		Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)

	user := fx.accounts.users["alice"]
	code := fx.codes.Generate(user.CodeState())

	// Any persisted profile change bumps UpdatedAt.
	user.UpdatedAt = user.UpdatedAt.Add(time.Minute)

	_, err = fx.service.Token(context.Background(), auth.TokenInput{
		Username:         "alice",
		ConfirmationCode: code,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
