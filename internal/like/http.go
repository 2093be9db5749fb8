// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Handler implements the like endpoints. Every route requires authentication.
type Handler struct {
	service *Service
}

// NewHandler constructs a new like [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for /likes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/toggle/v/{videoId}", handler.toggle(TargetVideo, "videoId"))
	router.Post("/toggle/c/{commentId}", handler.toggle(TargetComment, "commentId"))
	router.Post("/toggle/t/{tweetId}", handler.toggle(TargetTweet, "tweetId"))
	router.Get("/videos", handler.likedVideos)

	return router
}

// toggle handles POST /likes/toggle/{v|c|t}/{id}.
func (handler *Handler) toggle(target Target, param string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		actorID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		targetID, err := requestutil.ID(request, param)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		toggled, err := handler.service.Toggle(request.Context(), actorID, target, targetID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		message := target.resource() + " unliked successfully"
		if toggled.Liked {
			message = target.resource() + " liked successfully"
		}
		respond.OK(writer, toggled, message)
	}
}

// likedVideos handles GET /likes/videos.
func (handler *Handler) likedVideos(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.LikedVideos(
		request.Context(),
		actorID,
		requestutil.Query(request, "sortBy"),
		requestutil.Query(request, "sortType"),
		pagination.FromRequest(request),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page, "Liked videos fetched successfully")
}
