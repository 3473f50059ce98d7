// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/recenzo/internal/platform/middleware"
	"github.com/taibuivan/recenzo/internal/platform/policy"
	requestutil "github.com/taibuivan/recenzo/internal/platform/request"
	"github.com/taibuivan/recenzo/internal/platform/respond"
	"github.com/taibuivan/recenzo/pkg/pagination"
)

// Handler implements the title HTTP endpoints.
type Handler struct {
	titleService *Service
}

// NewHandler constructs a new title [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{titleService: service}
}

// Routes returns a [chi.Router] configured with the title endpoints.
//
// # Endpoints
//   - GET    /       : List titles (public, filterable)
//   - POST   /       : Create a title (admin)
//   - GET    /{id}   : Get a title (public)
//   - PATCH  /{id}   : Update a title (admin)
//   - DELETE /{id}   : Delete a title (admin)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.MethodNotAllowed(respond.MethodNotAllowed)
	router.Use(middleware.Require(policy.AdminOrReadOnly))

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// # Request Payloads

type createTitleRequest struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

type updateTitleRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

/*
GET /api/v1/titles.

Description: Lists titles ordered by name. Supported query filters:
"category" (slug), "genre" (slug), "name" (substring), "year" (exact).

Response:
  - 200: []Title with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	filter := Filter{
		CategorySlug: request.URL.Query().Get("category"),
		GenreSlug:    request.URL.Query().Get("genre"),
		Name:         request.URL.Query().Get("name"),
	}
	if raw := request.URL.Query().Get("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			filter.Year = &year
		}
	}

	titles, total, err := handler.titleService.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/titles.

Description: Creates a title. Category and genres are referenced by slug;
unknown slugs fail validation rather than erroring server-side.

Request:
  - Body: createTitleRequest

Response:
  - 201: Title: Hydrated entity with null rating
  - 400: Validation failure (future year, unknown slug)
  - 403: ErrForbidden: Caller is not an administrator
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createTitleRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Create(request.Context(), CreateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

/*
GET /api/v1/titles/{id}.

Response:
  - 200: Title: Hydrated entity
  - 404: ErrNotFound: Unknown or non-numeric ID
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
PATCH /api/v1/titles/{id}.

Description: Applies a partial update. A "genre" array replaces the genre
set wholesale; a "category" of "" clears the category.

Request:
  - Body: updateTitleRequest (partial JSON)

Response:
  - 200: Title: The updated, hydrated entity
  - 400: Validation failure (future year, unknown slug)
  - 403: ErrForbidden: Caller is not an administrator
  - 404: ErrNotFound: Unknown ID
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateTitleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Update(request.Context(), id, UpdateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
DELETE /api/v1/titles/{id}.

Response:
  - 204: No Content
  - 403: ErrForbidden: Caller is not an administrator
  - 404: ErrNotFound: Unknown ID
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.titleService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
