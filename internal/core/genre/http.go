// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/recenzo/internal/platform/middleware"
	"github.com/taibuivan/recenzo/internal/platform/policy"
	requestutil "github.com/taibuivan/recenzo/internal/platform/request"
	"github.com/taibuivan/recenzo/internal/platform/respond"
	"github.com/taibuivan/recenzo/pkg/pagination"
)

// Handler implements the genre HTTP endpoints.
type Handler struct {
	genreService *Service
}

// NewHandler constructs a new genre [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{genreService: service}
}

// Routes returns a [chi.Router] configured with the genre endpoints.
//
// # Endpoints
//   - GET    /        : List genres (public, ?search=)
//   - POST   /        : Create a genre (admin)
//   - DELETE /{slug}  : Delete a genre (admin)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.MethodNotAllowed(respond.MethodNotAllowed)

	router.With(middleware.Require(policy.AdminOrReadOnly)).Get("/", handler.list)
	router.With(middleware.Require(policy.AdminOrReadOnly)).Post("/", handler.create)
	router.With(middleware.Require(policy.AdminOrReadOnly)).Delete("/{slug}", handler.delete)

	return router
}

type createGenreRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

/*
GET /api/v1/genres.

Description: Lists genres ordered by name, filtered by the optional
"search" query parameter.

Response:
  - 200: []Genre with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	genres, total, err := handler.genreService.List(request.Context(), search, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, genres, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/genres.

Request:
  - Body: createGenreRequest (Name, Slug)

Response:
  - 201: Genre: The created genre
  - 400: Validation failure or duplicate slug
  - 403: ErrForbidden: Caller is not an administrator
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createGenreRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.genreService.Create(request.Context(), CreateInput{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, genre)
}

/*
DELETE /api/v1/genres/{slug}.

Response:
  - 204: No Content
  - 403: ErrForbidden: Caller is not an administrator
  - 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	if err := handler.genreService.Delete(request.Context(), slug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
