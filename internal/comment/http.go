// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/ctxutil"
	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Handler implements the comment endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for /comments.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{videoId}", handler.list)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Post("/{videoId}", handler.add)
		protected.Patch("/c/{commentId}", handler.update)
		protected.Delete("/c/{commentId}", handler.delete)
	})

	return router
}

type contentRequest struct {
	Content string `json:"content"`
}

// list handles GET /comments/{videoId}.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	videoID, err := requestutil.ID(request, "videoId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.List(request.Context(), ListQuery{
		VideoID:  videoID,
		ViewerID: ctxutil.ActorID(request.Context()),
		Query:    requestutil.Query(request, "query"),
		SortBy:   requestutil.Query(request, "sortBy"),
		SortType: requestutil.Query(request, "sortType"),
	}, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page, "Comments fetched successfully")
}

// add handles POST /comments/{videoId}.
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID, err := requestutil.ID(request, "videoId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contentRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Add(request.Context(), videoID, actorID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created, "Comment added successfully")
}

// update handles PATCH /comments/c/{commentId}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.ID(request, "commentId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contentRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(request.Context(), commentID, actorID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated, "Comment updated successfully")
}

// delete handles DELETE /comments/c/{commentId}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.ID(request, "commentId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.service.Delete(request.Context(), commentID, actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, deleted, "Comment deleted successfully")
}
