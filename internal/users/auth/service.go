// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/recenzo/internal/platform/apperr"
	"github.com/taibuivan/recenzo/internal/platform/constants"
	"github.com/taibuivan/recenzo/internal/platform/mailer"
	"github.com/taibuivan/recenzo/internal/users/account"
)

// Service implements the signup and token-exchange use cases.
//
// # Review Process
//
// This service gates all token issuance. Changes to code verification or
// the attempt counter must be reviewed by the security team.
type Service struct {
	accounts      Accounts
	codes         CodeIssuer
	tokenProvider TokenProvider
	attempts      AttemptRepository
	dispatcher    mailer.Mailer
	logger        *slog.Logger
}

// NewService constructs a new auth [Service] with its dependencies.
func NewService(
	accounts Accounts,
	codes CodeIssuer,
	tokenProvider TokenProvider,
	attempts AttemptRepository,
	dispatcher mailer.Mailer,
	logger *slog.Logger,
) *Service {
	return &Service{
		accounts:      accounts,
		codes:         codes,
		tokenProvider: tokenProvider,
		attempts:      attempts,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// # Signup Flow

// SignupInput holds the data required to enroll a new member or re-request
// a confirmation code.
type SignupInput struct {
	Username string
	Email    string
}

// SignupResult echoes back the identity the confirmation code was sent to.
type SignupResult struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

/*
Signup creates an account or re-issues a confirmation code.

Description: When the exact username/email pair already belongs to an
account, a fresh code is generated and emailed, making the endpoint safe to
retry. A username or email that collides with a different account surfaces
as a field-scoped validation failure.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *SignupResult: The identity the code was dispatched to
  - err: Validation or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*SignupResult, error) {
	username := account.NormalizeUsername(input.Username)

	// Exact pair match means an existing member lost their code; re-issue
	// instead of rejecting the duplicate.
	user, err := service.accounts.GetByUsernameEmail(context, username, input.Email)
	if err == nil {
		service.dispatchCode(context, user)
		return &SignupResult{Username: user.Username, Email: user.Email}, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	user, err = service.accounts.Create(context, account.CreateInput{
		Username: username,
		Email:    input.Email,
	})
	if err != nil {
		return nil, err
	}

	service.dispatchCode(context, user)
	return &SignupResult{Username: user.Username, Email: user.Email}, nil
}

// dispatchCode generates and emails a confirmation code. Delivery failures
// are logged but never fail the signup; the client can simply retry.
func (service *Service) dispatchCode(context context.Context, user *account.User) {
	code := service.codes.Generate(user.CodeState())

	body := fmt.Sprintf(
		"Hello %s,\n\nYour confirmation code is: %s\n\nExchange it at /api/v1/auth/token to obtain an access token.\n",
		user.Username, code,
	)

	if err := service.dispatcher.Send(context, user.Email, "Your confirmation code", body); err != nil {
		service.logger.ErrorContext(context, "confirmation_code_dispatch_failed",
			slog.String("username", user.Username),
			slog.String("error", err.Error()),
		)
	}
}

// # Token Exchange

// TokenInput holds the credentials for the code-for-token exchange.
type TokenInput struct {
	Username         string
	ConfirmationCode string
}

// TokenResult carries the issued JWT access token.
type TokenResult struct {
	Token string `json:"token"`
}

/*
Token exchanges a confirmation code for a JWT access token.

Description: The username must belong to an existing account (404
otherwise, distinguishing it from a bad code). Failed exchanges count
against a per-username Redis window; past the limit the endpoint refuses
further attempts until the window lapses. A successful exchange resets the
counter and invalidates nothing server-side: the stateless code simply
stops matching once the account's profile next changes or the code's
validity window passes.

Parameters:
  - context: context.Context
  - input: TokenInput

Returns:
  - *TokenResult: Signed access token
  - err: NotFound, ValidationError, RateLimited, or storage errors
*/
func (service *Service) Token(context context.Context, input TokenInput) (*TokenResult, error) {
	username := account.NormalizeUsername(input.Username)

	user, err := service.accounts.GetByUsername(context, username)
	if err != nil {
		return nil, err
	}

	failures, err := service.attempts.Count(context, username)
	if err != nil {
		return nil, err
	}
	if failures >= constants.MaxCodeAttempts {
		return nil, apperr.RateLimited(int(constants.CodeAttemptWindow.Seconds()))
	}

	if !service.codes.Verify(user.CodeState(), input.ConfirmationCode) {
		if _, err := service.attempts.Incr(context, username, constants.CodeAttemptWindow); err != nil {
			service.logger.ErrorContext(context, "code_attempt_incr_failed",
				slog.String("username", username),
				slog.String("error", err.Error()),
			)
		}
		return nil, apperr.ValidationError("Invalid confirmation code", apperr.FieldError{
			Field:   FieldConfirmationCode,
			Message: "The confirmation code is invalid or has expired",
		})
	}

	if err := service.attempts.Reset(context, username); err != nil {
		service.logger.ErrorContext(context, "code_attempt_reset_failed",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
	}

	token, err := service.tokenProvider.GenerateAccessToken(user.ID, constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &TokenResult{Token: token}, nil
}

// isNotFound reports whether err is a 404-shaped [apperr.AppError].
func isNotFound(err error) bool {
	appErr := apperr.As(err)
	return appErr != nil && appErr.Code == "NOT_FOUND"
}
