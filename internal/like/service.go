// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"context"
	"log/slog"

	"github.com/taibuivan/vidtube/internal/platform/pipeline"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Checker confirms that a like target exists and that viewerID may see it.
type Checker interface {
	Visible(context context.Context, id, viewerID string) error
}

// Service implements like use cases.
type Service struct {
	repository Repository
	targets    map[Target]Checker
	logger     *slog.Logger
}

// NewService constructs a new [Service]. Each checker guards one target kind.
func NewService(repository Repository, videos, comments, tweets Checker, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		targets: map[Target]Checker{
			TargetVideo:   videos,
			TargetComment: comments,
			TargetTweet:   tweets,
		},
		logger: logger,
	}
}

// Toggle likes the target when the actor has not, and unlikes it otherwise.
func (service *Service) Toggle(context context.Context, actorID string, target Target, targetID string) (*Toggled, error) {
	// ── 1. Target must be visible to the actor ──
	if err := service.targets[target].Visible(context, targetID, actorID); err != nil {
		return nil, err
	}

	// ── 2. Flip ──
	result, err := service.repository.Toggle(context, actorID, target, targetID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("like_toggled",
		slog.String("target", string(target)),
		slog.String("target_id", targetID),
		slog.String("state", string(result.State)),
	)

	return &Toggled{State: result.State, Liked: result.Active(), Like: result.Record}, nil
}

// LikedVideos pages the videos the actor liked.
func (service *Service) LikedVideos(context context.Context, actorID, sortBy, sortType string, params pagination.Params) (*pipeline.Page[LikedVideo], error) {
	return service.repository.LikedVideos(context, actorID, sortBy, sortType, params)
}
