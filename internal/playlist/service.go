// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist

import (
	"context"
	"log/slog"

	"github.com/taibuivan/vidtube/internal/platform/ownership"
	"github.com/taibuivan/vidtube/internal/platform/pipeline"
	"github.com/taibuivan/vidtube/internal/platform/validate"
	"github.com/taibuivan/vidtube/pkg/normalize"
	"github.com/taibuivan/vidtube/pkg/pagination"
	"github.com/taibuivan/vidtube/pkg/uuid"
)

const resourceName = "Playlist"

// Checker confirms that a referenced account exists.
type Checker interface {
	Exists(context context.Context, id string) error
}

// VideoChecker confirms that a video exists and that viewerID may see it.
type VideoChecker interface {
	Visible(context context.Context, id, viewerID string) error
}

// Service implements playlist use cases.
type Service struct {
	repository Repository
	users      Checker
	videos     VideoChecker
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, users Checker, videos VideoChecker, logger *slog.Logger) *Service {
	return &Service{repository: repository, users: users, videos: videos, logger: logger}
}

// Input carries the editable playlist fields.
type Input struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (input Input) normalized() (Input, error) {
	input.Name = normalize.Text(input.Name)
	input.Description = normalize.Text(input.Description)

	v := &validate.Validator{}
	v.Required("name", input.Name).
		MaxLen("name", input.Name, maxNameLength).
		MaxLen("description", input.Description, maxDescriptionLength)
	return input, v.Err()
}

// Create makes an empty playlist owned by ownerID.
func (service *Service) Create(context context.Context, ownerID string, input Input) (*Playlist, error) {
	input, err := input.normalized()
	if err != nil {
		return nil, err
	}

	created := &Playlist{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
	}
	if err := service.repository.Create(context, created); err != nil {
		return nil, err
	}

	service.logger.Info("playlist_created", slog.String("playlist_id", created.ID))
	return created, nil
}

// ListByUser pages the playlists of an existing user.
func (service *Service) ListByUser(context context.Context, userID string, sort Sort, params pagination.Params) (*pipeline.Page[Summary], error) {
	if err := service.users.Exists(context, userID); err != nil {
		return nil, err
	}
	return service.repository.ListByOwner(context, userID, sort, params)
}

// Get returns the playlist with its videos in order.
func (service *Service) Get(context context.Context, id, viewerID string) (*Detail, error) {
	return service.repository.FindDetail(context, id, viewerID)
}

// Update renames the actor's playlist.
func (service *Service) Update(context context.Context, id, actorID string, input Input) (*Playlist, error) {
	input, err := input.normalized()
	if err != nil {
		return nil, err
	}

	existing, err := ownership.Guard(context, resourceName, id, actorID, service.repository.FindByID)
	if err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.Description = input.Description
	return service.repository.Update(context, existing)
}

// Delete removes the actor's playlist.
func (service *Service) Delete(context context.Context, id, actorID string) error {
	if _, err := ownership.Guard(context, resourceName, id, actorID, service.repository.FindByID); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("playlist_deleted", slog.String("playlist_id", id))
	return nil
}

// AddVideo appends a video to the actor's playlist and returns the updated playlist.
func (service *Service) AddVideo(context context.Context, playlistID, videoID, actorID string) (*Detail, error) {
	// ── 1. Ownership ──
	if _, err := ownership.Guard(context, resourceName, playlistID, actorID, service.repository.FindByID); err != nil {
		return nil, err
	}

	// ── 2. Video must be visible to the actor ──
	if err := service.videos.Visible(context, videoID, actorID); err != nil {
		return nil, err
	}

	// ── 3. Append ──
	if err := service.repository.AddVideo(context, playlistID, videoID); err != nil {
		return nil, err
	}

	service.logger.Info("playlist_video_added", slog.String("playlist_id", playlistID), slog.String("video_id", videoID))
	return service.repository.FindDetail(context, playlistID, actorID)
}

// RemoveVideo drops a video from the actor's playlist and returns the updated playlist.
func (service *Service) RemoveVideo(context context.Context, playlistID, videoID, actorID string) (*Detail, error) {
	if _, err := ownership.Guard(context, resourceName, playlistID, actorID, service.repository.FindByID); err != nil {
		return nil, err
	}

	if err := service.repository.RemoveVideo(context, playlistID, videoID); err != nil {
		return nil, err
	}

	service.logger.Info("playlist_video_removed", slog.String("playlist_id", playlistID), slog.String("video_id", videoID))
	return service.repository.FindDetail(context, playlistID, actorID)
}
