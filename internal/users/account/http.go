// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/recenzo/internal/platform/middleware"
	"github.com/taibuivan/recenzo/internal/platform/policy"
	requestutil "github.com/taibuivan/recenzo/internal/platform/request"
	"github.com/taibuivan/recenzo/internal/platform/respond"
	"github.com/taibuivan/recenzo/internal/platform/sec"
	"github.com/taibuivan/recenzo/internal/platform/validate"
	"github.com/taibuivan/recenzo/pkg/pagination"
)

// Handler implements the HTTP layer for user administration and self-service.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
//
// # Endpoints
//   - GET    /            : List users (admin)
//   - POST   /            : Create a user (admin)
//   - GET    /me          : Own profile
//   - PATCH  /me          : Update own profile (role immutable)
//   - GET    /{username}  : Get a user (admin)
//   - PATCH  /{username}  : Update a user (admin)
//   - DELETE /{username}  : Delete a user (admin)
//
// The /me routes are registered before /{username} so the reserved segment
// never falls through to the admin lookup.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Self-service
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.getMe)
		r.Patch("/me", handler.updateMe)
	})

	// Administration
	router.Group(func(r chi.Router) {
		r.Use(middleware.Require(policy.AdminOnly))
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Get("/{username}", handler.get)
		r.Patch("/{username}", handler.update)
		r.Delete("/{username}", handler.delete)
	})

	return router
}

// # Request Payloads

type createUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

type updateUserRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// # Administration Endpoints

/*
GET /api/v1/users.

Description: Lists user accounts ordered by username, with optional
substring filtering via the "search" query parameter.

Response:
  - 200: []User with pagination metadata
  - 403: ErrForbidden: Caller is not an administrator
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	users, total, err := handler.accountService.List(request.Context(), search, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/users.

Description: Creates a user account with an explicit role. Accounts created
here still complete the confirmation flow before obtaining a token.

Request:
  - Body: createUserRequest

Response:
  - 201: User: The created account
  - 400: Validation failure or duplicate username/email
  - 403: ErrForbidden: Caller is not an administrator
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Create(request.Context(), CreateInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
GET /api/v1/users/{username}.

Response:
  - 200: User
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	username := chi.URLParam(request, "username")

	user, err := handler.accountService.GetByUsername(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/{username}.

Description: Applies partial updates to any account, including its role.

Request:
  - Body: updateUserRequest (partial JSON)

Response:
  - 200: User: The updated account
  - 400: Validation failure or duplicate username/email
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	username := chi.URLParam(request, "username")

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateUpdate(&input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Update(request.Context(), username, UpdateInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/users/{username}.

Description: Removes the account. Authored reviews and comments are removed
with it.

Response:
  - 204: No Content
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	username := chi.URLParam(request, "username")

	if err := handler.accountService.Delete(request.Context(), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Self-Service Endpoints

/*
GET /api/v1/users/me.

Response:
  - 200: User: The caller's own profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/me.

Description: Applies partial updates to the caller's own profile. A "role"
field in the payload is ignored; the stored role always survives.

Request:
  - Body: updateUserRequest (partial JSON, role ignored)

Response:
  - 200: User: The updated profile
  - 400: Validation failure or duplicate username/email
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input.Role = nil

	if err := validateUpdate(&input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), claims.UserID, UpdateInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// validateUpdate checks the transport-level constraints shared by the admin
// and self-service update endpoints.
func validateUpdate(input *updateUserRequest) error {
	validator := &validate.Validator{}

	if input.Username != nil {
		validator.Required(FieldUsername, *input.Username).
			MaxLen(FieldUsername, *input.Username, MaxUsernameLen).
			Username(FieldUsername, *input.Username).
			NotReserved(FieldUsername, *input.Username, ReservedUsername)
	}
	if input.Email != nil {
		validator.Required(FieldEmail, *input.Email).
			MaxLen(FieldEmail, *input.Email, MaxEmailLen).
			Email(FieldEmail, *input.Email)
	}
	if input.FirstName != nil {
		validator.MaxLen(FieldFirstName, *input.FirstName, MaxNameLen)
	}
	if input.LastName != nil {
		validator.MaxLen(FieldLastName, *input.LastName, MaxNameLen)
	}
	if input.Role != nil {
		validator.OneOf(FieldRole, *input.Role, sec.RoleStrings()...)
	}

	return validator.Err()
}
