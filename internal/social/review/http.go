// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/recenzo/internal/platform/middleware"
	"github.com/taibuivan/recenzo/internal/platform/policy"
	requestutil "github.com/taibuivan/recenzo/internal/platform/request"
	"github.com/taibuivan/recenzo/internal/platform/respond"
	"github.com/taibuivan/recenzo/pkg/pagination"
)

// Handler implements the review HTTP endpoints, mounted under a title.
type Handler struct {
	reviewService *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{reviewService: service}
}

// Routes returns a [chi.Router] for the /titles/{titleID}/reviews subtree.
//
// # Endpoints
//   - GET    /       : List a title's reviews (public)
//   - POST   /       : Create a review (authenticated)
//   - GET    /{id}   : Get a review (public)
//   - PATCH  /{id}   : Edit a review (author, moderator, or admin)
//   - DELETE /{id}   : Delete a review (author, moderator, or admin)
//
// Writes require authentication up front; the finer owner-or-staff rule is
// enforced per object in the service.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.MethodNotAllowed(respond.MethodNotAllowed)
	router.Use(middleware.Require(policy.AuthenticatedOrReadOnly))

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// # Request Payloads

type createReviewRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type updateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

/*
GET /api/v1/titles/{titleID}/reviews.

Description: Lists the title's reviews, oldest first.

Response:
  - 200: []Review with pagination metadata
  - 404: ErrNotFound: Unknown title
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	reviews, total, err := handler.reviewService.List(request.Context(), titleID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/titles/{titleID}/reviews.

Description: Creates the caller's review of the title. The author and
publication date come from the server, never the payload.

Request:
  - Body: createReviewRequest (Text, Score 1-10)

Response:
  - 201: Review: The created review
  - 400: Validation failure or second review of the same title
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Unknown title
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.Create(request.Context(), titleID, claims, CreateInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

/*
GET /api/v1/titles/{titleID}/reviews/{id}.

Response:
  - 200: Review
  - 404: ErrNotFound: Unknown title or review
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.IntParam(request, "id", "Review")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.Get(request.Context(), titleID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
PATCH /api/v1/titles/{titleID}/reviews/{id}.

Request:
  - Body: updateReviewRequest (partial JSON)

Response:
  - 200: Review: The updated review
  - 400: Validation failure
  - 403: ErrForbidden: Caller is neither author nor staff
  - 404: ErrNotFound: Unknown title or review
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.IntParam(request, "id", "Review")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.Update(request.Context(), titleID, id, claims, UpdateInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
DELETE /api/v1/titles/{titleID}/reviews/{id}.

Response:
  - 204: No Content
  - 403: ErrForbidden: Caller is neither author nor staff
  - 404: ErrNotFound: Unknown title or review
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.IntParam(request, "id", "Review")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.reviewService.Delete(request.Context(), titleID, id, claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
