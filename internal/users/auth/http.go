// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/recenzo/internal/platform/request"
	"github.com/taibuivan/recenzo/internal/platform/respond"
	"github.com/taibuivan/recenzo/internal/platform/validate"
	"github.com/taibuivan/recenzo/internal/users/account"
)

// Handler implements the authentication HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new auth [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with the authentication routes.
//
// # Endpoints
//   - POST /signup : Creates an account (or re-requests a code).
//   - POST /token  : Exchanges a confirmation code for a JWT.
//
// Both endpoints are public.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signup)
	router.Post("/token", handler.token)

	return router
}

// # Request Payloads

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

/*
Signup enrolls a new member or re-requests a confirmation code.

POST /api/v1/auth/signup

Description: Validates input, creates the account when the pair is new, and
dispatches a confirmation code by email. Repeating the same pair re-issues
a code with the same 200 response.

Request:
  - Body: signupRequest (Username, Email)

Response:
  - 200: SignupResult: Echo of username and email
  - 400: Validation failure, reserved username, or pair collision
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, account.MaxUsernameLen).
		Username(FieldUsername, input.Username).
		NotReserved(FieldUsername, input.Username, account.ReservedUsername).
		Required(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, account.MaxEmailLen).
		Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Signup(request.Context(), SignupInput{
		Username: input.Username,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Token exchanges a confirmation code for an access token.

POST /api/v1/auth/token

Description: Verifies the code against the account's current identity
snapshot and issues a signed JWT on success.

Request:
  - Body: tokenRequest (Username, ConfirmationCode)

Response:
  - 200: TokenResult: Signed access token
  - 400: ErrInvalidJSON or invalid confirmation code
  - 404: ErrNotFound: Unknown username
  - 429: ErrRateLimited: Too many failed attempts
*/
func (handler *Handler) token(writer http.ResponseWriter, request *http.Request) {
	var input tokenRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldConfirmationCode, input.ConfirmationCode)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Token(request.Context(), TokenInput{
		Username:         input.Username,
		ConfirmationCode: input.ConfirmationCode,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
