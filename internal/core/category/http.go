// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/recenzo/internal/platform/middleware"
	"github.com/taibuivan/recenzo/internal/platform/policy"
	requestutil "github.com/taibuivan/recenzo/internal/platform/request"
	"github.com/taibuivan/recenzo/internal/platform/respond"
	"github.com/taibuivan/recenzo/pkg/pagination"
)

// Handler implements the category HTTP endpoints.
type Handler struct {
	categoryService *Service
}

// NewHandler constructs a new category [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{categoryService: service}
}

// Routes returns a [chi.Router] configured with the category endpoints.
//
// # Endpoints
//   - GET    /        : List categories (public, ?search=)
//   - POST   /        : Create a category (admin)
//   - DELETE /{slug}  : Delete a category (admin)
//
// The {slug} resource supports deletion only; other verbs get 405 via the
// router's MethodNotAllowed handler.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.MethodNotAllowed(respond.MethodNotAllowed)

	router.With(middleware.Require(policy.AdminOrReadOnly)).Get("/", handler.list)
	router.With(middleware.Require(policy.AdminOrReadOnly)).Post("/", handler.create)
	router.With(middleware.Require(policy.AdminOrReadOnly)).Delete("/{slug}", handler.delete)

	return router
}

type createCategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

/*
GET /api/v1/categories.

Description: Lists categories ordered by name. The "search" query parameter
filters by name substring, case-insensitively.

Response:
  - 200: []Category with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	categories, total, err := handler.categoryService.List(request.Context(), search, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/categories.

Description: Creates a category. The slug is derived from the name when
omitted.

Request:
  - Body: createCategoryRequest (Name, Slug)

Response:
  - 201: Category: The created category
  - 400: Validation failure or duplicate slug
  - 403: ErrForbidden: Caller is not an administrator
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createCategoryRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categoryService.Create(request.Context(), CreateInput{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

/*
DELETE /api/v1/categories/{slug}.

Response:
  - 204: No Content
  - 403: ErrForbidden: Caller is not an administrator
  - 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	if err := handler.categoryService.Delete(request.Context(), slug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
