// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/ctxutil"
	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Handler implements the playlist endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new playlist [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for /playlists.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/user/{userId}", handler.listByUser)
	router.Get("/{playlistId}", handler.get)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Post("/", handler.create)
		protected.Patch("/{playlistId}", handler.update)
		protected.Delete("/{playlistId}", handler.delete)
		protected.Patch("/add/{videoId}/{playlistId}", handler.addVideo)
		protected.Patch("/remove/{videoId}/{playlistId}", handler.removeVideo)
	})

	return router
}

// create handles POST /playlists.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), actorID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created, "Playlist created successfully")
}

// listByUser handles GET /playlists/user/{userId}.
func (handler *Handler) listByUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "userId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sort := Sort{By: requestutil.Query(request, "sortBy"), Type: requestutil.Query(request, "sortType")}
	page, err := handler.service.ListByUser(request.Context(), userID, sort, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page, "Playlists fetched successfully")
}

// get handles GET /playlists/{playlistId}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	playlistID, err := requestutil.ID(request, "playlistId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.Get(request.Context(), playlistID, ctxutil.ActorID(request.Context()))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail, "Playlist fetched successfully")
}

// update handles PATCH /playlists/{playlistId}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlistID, err := requestutil.ID(request, "playlistId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(request.Context(), playlistID, actorID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated, "Playlist updated successfully")
}

// delete handles DELETE /playlists/{playlistId}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlistID, err := requestutil.ID(request, "playlistId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), playlistID, actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"id": playlistID}, "Playlist deleted successfully")
}

// entryIDs reads the video and playlist ids of the add/remove routes.
func entryIDs(request *http.Request) (videoID, playlistID string, err error) {
	if videoID, err = requestutil.ID(request, "videoId"); err != nil {
		return "", "", err
	}
	if playlistID, err = requestutil.ID(request, "playlistId"); err != nil {
		return "", "", err
	}
	return videoID, playlistID, nil
}

// addVideo handles PATCH /playlists/add/{videoId}/{playlistId}.
func (handler *Handler) addVideo(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID, playlistID, err := entryIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.AddVideo(request.Context(), playlistID, videoID, actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail, "Video added to playlist successfully")
}

// removeVideo handles PATCH /playlists/remove/{videoId}/{playlistId}.
func (handler *Handler) removeVideo(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID, playlistID, err := entryIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.RemoveVideo(request.Context(), playlistID, videoID, actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail, "Video removed from playlist successfully")
}
