// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subscription

import (
	"context"
	"log/slog"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/ownership"
	"github.com/taibuivan/vidtube/internal/platform/pipeline"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// UserChecker confirms that an account exists.
type UserChecker interface {
	Exists(context context.Context, userID string) error
}

// Service implements subscription use cases.
type Service struct {
	repository Repository
	users      UserChecker
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, users UserChecker, logger *slog.Logger) *Service {
	return &Service{repository: repository, users: users, logger: logger}
}

// Toggle subscribes the actor to the channel, or unsubscribes when already subscribed.
func (service *Service) Toggle(context context.Context, actorID, channelID string) (*Toggled, error) {
	if ownership.SameID(actorID, channelID) {
		return nil, apperr.ValidationError("You cannot subscribe to your own channel", apperr.FieldError{
			Field:   "channelId",
			Message: "Must be another user's channel",
		})
	}

	if err := service.channelExists(context, channelID); err != nil {
		return nil, err
	}

	result, err := service.repository.Toggle(context, actorID, channelID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("subscription_toggled",
		slog.String("channel_id", channelID),
		slog.String("state", string(result.State)),
	)

	return &Toggled{State: result.State, Subscribed: result.Active(), Subscription: result.Record}, nil
}

// Subscribers pages the users subscribed to a channel.
func (service *Service) Subscribers(context context.Context, channelID string, sort Sort, params pagination.Params) (*pipeline.Page[Subscriber], error) {
	if err := service.channelExists(context, channelID); err != nil {
		return nil, err
	}
	return service.repository.Subscribers(context, channelID, sort, params)
}

// Channels pages the channels a user is subscribed to.
func (service *Service) Channels(context context.Context, subscriberID string, sort Sort, params pagination.Params) (*pipeline.Page[Channel], error) {
	if err := service.users.Exists(context, subscriberID); err != nil {
		return nil, err
	}
	return service.repository.Channels(context, subscriberID, sort, params)
}

func (service *Service) channelExists(context context.Context, channelID string) error {
	err := service.users.Exists(context, channelID)
	if apperr.HasCode(err, apperr.CodeNotFound) {
		return apperr.NotFound("Channel")
	}
	return err
}
