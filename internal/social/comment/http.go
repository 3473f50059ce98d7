// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/recenzo/internal/platform/middleware"
	"github.com/taibuivan/recenzo/internal/platform/policy"
	requestutil "github.com/taibuivan/recenzo/internal/platform/request"
	"github.com/taibuivan/recenzo/internal/platform/respond"
	"github.com/taibuivan/recenzo/pkg/pagination"
)

// Handler implements the comment HTTP endpoints, mounted under a review.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// Routes returns a [chi.Router] for the
// /titles/{titleID}/reviews/{reviewID}/comments subtree.
//
// # Endpoints
//   - GET    /       : List a review's comments (public)
//   - POST   /       : Create a comment (authenticated)
//   - GET    /{id}   : Get a comment (public)
//   - PATCH  /{id}   : Edit a comment (author, moderator, or admin)
//   - DELETE /{id}   : Delete a comment (author, moderator, or admin)
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

type createCommentRequest struct {
	Text string `json:"text"`
}

type updateCommentRequest struct {
	Text *string `json:"text"`
}

// parentIDs extracts and validates the title and review path segments.
func parentIDs(request *http.Request) (int, int, error) {
	titleID, err := requestutil.IntParam(request, "titleID", "Title")
	if err != nil {
		return 0, 0, err
	}

	reviewID, err := requestutil.IntParam(request, "reviewID", "Review")
	if err != nil {
		return 0, 0, err
	}

	return titleID, reviewID, nil
}

/*
GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments.

Description: Lists the review's comments, oldest first.

Response:
  - 200: []Comment with pagination metadata
  - 404: ErrNotFound: Unknown title or review
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	comments, total, err := handler.commentService.List(request.Context(), titleID, reviewID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/titles/{titleID}/reviews/{reviewID}/comments.

Request:
  - Body: createCommentRequest (Text)

Response:
  - 201: Comment: The created comment
  - 400: Validation failure
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Unknown title or review
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Create(request.Context(), titleID, reviewID, claims, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{id}.

Response:
  - 200: Comment
  - 404: ErrNotFound: Unknown title, review, or comment
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.IntParam(request, "id", "Comment")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Get(request.Context(), titleID, reviewID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

/*
PATCH /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{id}.

Request:
  - Body: updateCommentRequest (partial JSON)

Response:
  - 200: Comment: The updated comment
  - 400: Validation failure
  - 403: ErrForbidden: Caller is neither author nor staff
  - 404: ErrNotFound: Unknown title, review, or comment
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.IntParam(request, "id", "Comment")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Update(request.Context(), titleID, reviewID, id, claims, UpdateInput{
		Text: input.Text,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

/*
DELETE /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{id}.

Response:
  - 204: No Content
  - 403: ErrForbidden: Caller is neither author nor staff
  - 404: ErrNotFound: Unknown title, review, or comment
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.IntParam(request, "id", "Comment")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.commentService.Delete(request.Context(), titleID, reviewID, id, claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
