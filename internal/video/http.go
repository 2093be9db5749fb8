// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/ctxutil"
	"github.com/taibuivan/vidtube/internal/platform/media"
	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// # Handler Implementation

// Handler implements the video endpoints.
type Handler struct {
	service *Service
	uploads media.Limits
}

// NewHandler constructs a new video [Handler].
func NewHandler(service *Service, uploads media.Limits) *Handler {
	return &Handler{service: service, uploads: uploads}
}

// Routes returns a [chi.Router] for /videos.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{videoId}", handler.get)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Post("/", handler.publish)
		protected.Patch("/{videoId}", handler.update)
		protected.Delete("/{videoId}", handler.delete)
		protected.Patch("/toggle/publish/{videoId}", handler.togglePublish)
	})

	return router
}

// # Reading

// list handles GET /videos.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.QueryID(request, "userId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.List(request.Context(), ListInput{
		Query:    requestutil.Query(request, "query"),
		OwnerID:  ownerID,
		SortBy:   requestutil.Query(request, "sortBy"),
		SortType: requestutil.Query(request, "sortType"),
		ActorID:  ctxutil.ActorID(request.Context()),
	}, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page, "Videos fetched successfully")
}

// get handles GET /videos/{videoId}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "videoId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.Get(request.Context(), id, Viewer{
		UserID:  ctxutil.ActorID(request.Context()),
		Address: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail, "Video fetched successfully")
}

// # Owner Operations

// publish handles POST /videos (multipart: title, description, videoFile, thumbnail).
func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := media.ParseForm(writer, request, handler.uploads); err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoPath, err := media.FormFile(request, FieldVideoFile, handler.uploads, media.KindVideo, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer media.Discard(videoPath)

	thumbnailPath, err := media.FormFile(request, FieldThumbnail, handler.uploads, media.KindImage, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer media.Discard(thumbnailPath)

	published, err := handler.service.Publish(request.Context(), PublishInput{
		OwnerID:       ownerID,
		Title:         request.FormValue("title"),
		Description:   request.FormValue("description"),
		VideoPath:     videoPath,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, published, "Video published successfully")
}

// update handles PATCH /videos/{videoId} (multipart: title, description, optional thumbnail).
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "videoId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := media.ParseForm(writer, request, handler.uploads); err != nil {
		respond.Error(writer, request, err)
		return
	}

	thumbnailPath, err := media.FormFile(request, FieldThumbnail, handler.uploads, media.KindImage, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer media.Discard(thumbnailPath)

	updated, err := handler.service.Update(request.Context(), UpdateInput{
		ID:            id,
		ActorID:       actorID,
		Title:         request.FormValue("title"),
		Description:   request.FormValue("description"),
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated, "Video updated successfully")
}

// delete handles DELETE /videos/{videoId}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "videoId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id, actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, struct{}{}, "Video deleted successfully")
}

// togglePublish handles PATCH /videos/toggle/publish/{videoId}.
func (handler *Handler) togglePublish(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.ID(request, "videoId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	toggled, err := handler.service.TogglePublish(request.Context(), id, actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, toggled, "Publish status toggled successfully")
}
