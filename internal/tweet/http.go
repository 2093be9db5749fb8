// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tweet

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Handler implements the tweet endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new tweet [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for /tweets.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/user/{userId}", handler.listByUser)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Post("/", handler.create)
		protected.Patch("/{tweetId}", handler.update)
		protected.Delete("/{tweetId}", handler.delete)
	})

	return router
}

type contentRequest struct {
	Content string `json:"content"`
}

func filterFrom(request *http.Request) Filter {
	return Filter{
		Query:    requestutil.Query(request, "query"),
		SortBy:   requestutil.Query(request, "sortBy"),
		SortType: requestutil.Query(request, "sortType"),
	}
}

// list handles GET /tweets.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	filter := filterFrom(request)

	ownerID, err := requestutil.QueryID(request, "userId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	filter.OwnerID = ownerID

	page, err := handler.service.List(request.Context(), filter, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page, "Tweets fetched successfully")
}

// listByUser handles GET /tweets/user/{userId}.
func (handler *Handler) listByUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "userId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.ListByUser(request.Context(), userID, filterFrom(request), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page, "User tweets fetched successfully")
}

// create handles POST /tweets.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contentRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), actorID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created, "Tweet created successfully")
}

// update handles PATCH /tweets/{tweetId}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tweetID, err := requestutil.ID(request, "tweetId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contentRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(request.Context(), tweetID, actorID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated, "Tweet updated successfully")
}

// delete handles DELETE /tweets/{tweetId}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tweetID, err := requestutil.ID(request, "tweetId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.service.Delete(request.Context(), tweetID, actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, deleted, "Tweet deleted successfully")
}
