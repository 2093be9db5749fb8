// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subscription

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Handler implements the subscription endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new subscription [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for /subscriptions.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/c/{channelId}", handler.subscribers)
	router.Get("/u/{subscriberId}", handler.channels)
	router.With(middleware.RequireAuth).Post("/c/{channelId}", handler.toggle)

	return router
}

func sortFrom(request *http.Request) Sort {
	return Sort{By: requestutil.Query(request, "sortBy"), Type: requestutil.Query(request, "sortType")}
}

// toggle handles POST /subscriptions/c/{channelId}.
func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	channelID, err := requestutil.ID(request, "channelId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	toggled, err := handler.service.Toggle(request.Context(), actorID, channelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	message := "Unsubscribed successfully"
	if toggled.Subscribed {
		message = "Subscribed successfully"
	}
	respond.OK(writer, toggled, message)
}

// subscribers handles GET /subscriptions/c/{channelId}.
func (handler *Handler) subscribers(writer http.ResponseWriter, request *http.Request) {
	channelID, err := requestutil.ID(request, "channelId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.Subscribers(request.Context(), channelID, sortFrom(request), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page, "Subscribers fetched successfully")
}

// channels handles GET /subscriptions/u/{subscriberId}.
func (handler *Handler) channels(writer http.ResponseWriter, request *http.Request) {
	subscriberID, err := requestutil.ID(request, "subscriberId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.Channels(request.Context(), subscriberID, sortFrom(request), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page, "Subscribed channels fetched successfully")
}
