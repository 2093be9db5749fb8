// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import (
	"context"
	"log/slog"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/dberr"
	"github.com/taibuivan/vidtube/internal/platform/media"
	"github.com/taibuivan/vidtube/internal/platform/ownership"
	"github.com/taibuivan/vidtube/internal/platform/pipeline"
	"github.com/taibuivan/vidtube/internal/platform/validate"
	"github.com/taibuivan/vidtube/pkg/normalize"
	"github.com/taibuivan/vidtube/pkg/pagination"
	"github.com/taibuivan/vidtube/pkg/uuid"
)

// resourceName is used in NOT_FOUND and FORBIDDEN messages.
const resourceName = "Video"

// Service implements video use cases.
type Service struct {
	repository Repository
	media      media.Store
	views      ViewCounter
	history    HistoryRecorder
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, store media.Store, views ViewCounter, history HistoryRecorder, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		media:      store,
		views:      views,
		history:    history,
		logger:     logger,
	}
}

// # Publishing

// PublishInput holds the publish form. Both paths are spooled temp files.
type PublishInput struct {
	OwnerID       string
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

/*
Publish uploads the video file and thumbnail and stores the video.

# Flow
 1. Validate.
 2. Upload the video file, then the thumbnail.
 3. Persist. Any failure after an upload releases what was uploaded.
*/
func (service *Service) Publish(context context.Context, input PublishInput) (*Video, error) {
	input.Title = normalize.Text(input.Title)
	input.Description = normalize.Text(input.Description)

	// ── 1. Validation ─────────────────────────────────────────────────────

	v := &validate.Validator{}
	v.Required("title", input.Title).MaxLen("title", input.Title, maxTitleLength)
	v.Required("description", input.Description).MaxLen("description", input.Description, maxDescriptionLength)
	v.Custom(FieldVideoFile, input.VideoPath == "", "Video file is required")
	v.Custom(FieldThumbnail, input.ThumbnailPath == "", "Thumbnail is required")
	if err := v.Err(); err != nil {
		return nil, err
	}

	// ── 2. Media ──────────────────────────────────────────────────────────

	file, err := service.media.Upload(context, input.VideoPath, media.KindVideo)
	if err != nil {
		return nil, apperr.MutationFailed("upload video", err)
	}

	thumbnail, err := service.media.Upload(context, input.ThumbnailPath, media.KindImage)
	if err != nil {
		media.Release(context, service.media, service.logger, file)
		return nil, apperr.MutationFailed("upload thumbnail", err)
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	created := &Video{
		ID:           uuid.New(),
		OwnerID:      input.OwnerID,
		VideoFileURL: file.URL,
		ThumbnailURL: thumbnail.URL,
		Title:        input.Title,
		Description:  input.Description,
		Duration:     file.Duration,
		IsPublished:  true,
	}

	if err := service.repository.Create(context, created); err != nil {
		media.Release(context, service.media, service.logger, file, thumbnail)
		return nil, err
	}

	service.logger.Info("video_published",
		slog.String("video_id", created.ID),
		slog.String("owner_id", created.OwnerID),
	)
	return created, nil
}

// # Reading

// ListInput carries the list query of GET /videos.
type ListInput struct {
	Query    string
	OwnerID  string
	SortBy   string
	SortType string
	// ActorID is the caller (may be empty).
	ActorID string
}

// List pages videos. Owners listing their own channel also see unpublished videos.
func (service *Service) List(context context.Context, input ListInput, params pagination.Params) (*pipeline.Page[Detail], error) {
	filter := Filter{
		Query:    input.Query,
		OwnerID:  input.OwnerID,
		SortBy:   input.SortBy,
		SortType: input.SortType,
	}
	filter.IncludeUnpublished = input.OwnerID != "" && ownership.SameID(input.OwnerID, input.ActorID)

	return service.repository.List(context, filter, params)
}

// Viewer identifies who is watching.
type Viewer struct {
	// UserID is empty for anonymous viewers.
	UserID string
	// Address is the client IP, used to de-duplicate anonymous views.
	Address string
}

func (viewer Viewer) key() string {
	if viewer.UserID != "" {
		return viewer.UserID
	}
	return "ip:" + viewer.Address
}

/*
Get returns the denormalised video and records the view.

A view increments the counter once per viewer per window and, for signed-in
viewers, moves the video to the front of their watch history. Counting and
history are best effort: failures are logged and the video is still returned.
*/
func (service *Service) Get(context context.Context, id string, viewer Viewer) (*Detail, error) {
	detail, err := service.repository.FindDetail(context, id)
	if err != nil {
		return nil, err
	}

	if !detail.IsPublished && !ownership.SameID(detail.OwnerID, viewer.UserID) {
		return nil, apperr.NotFound(resourceName)
	}

	first, err := service.views.FirstView(context, id, viewer.key())
	switch {
	case err != nil:
		service.logger.Warn("video_view_dedupe_failed", slog.String("video_id", id), slog.Any("error", err))
	case first:
		if err := service.repository.IncrementViews(context, id); err != nil {
			service.logger.Warn("video_view_increment_failed", slog.String("video_id", id), slog.Any("error", err))
		} else {
			detail.Views++
		}
	}

	if viewer.UserID != "" {
		if err := service.history.RecordWatch(context, viewer.UserID, id); err != nil {
			service.logger.Warn("video_history_record_failed",
				slog.String("video_id", id),
				slog.String("user_id", viewer.UserID),
				slog.Any("error", err),
			)
		}
	}

	return detail, nil
}

// # Owner Operations

// UpdateInput holds the editable fields. Blank fields keep their current value.
type UpdateInput struct {
	ID            string
	ActorID       string
	Title         string
	Description   string
	ThumbnailPath string
}

/*
Update changes title, description and optionally the thumbnail.

A new thumbnail replaces the old one, which is released after the row is
saved. If saving fails, the new upload is released instead.
*/
func (service *Service) Update(context context.Context, input UpdateInput) (*Video, error) {
	existing, err := ownership.Guard(context, resourceName, input.ID, input.ActorID, service.repository.FindByID)
	if err != nil {
		return nil, err
	}

	title := normalize.Text(input.Title)
	description := normalize.Text(input.Description)

	v := &validate.Validator{}
	v.MaxLen("title", title, maxTitleLength)
	v.MaxLen("description", description, maxDescriptionLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	changed := *existing
	if title != "" {
		changed.Title = title
	}
	if description != "" {
		changed.Description = description
	}

	var thumbnail *media.Asset
	if input.ThumbnailPath != "" {
		thumbnail, err = service.media.Upload(context, input.ThumbnailPath, media.KindImage)
		if err != nil {
			return nil, apperr.MutationFailed("upload thumbnail", err)
		}
		changed.ThumbnailURL = thumbnail.URL
	}

	updated, err := service.repository.Update(context, &changed)
	if err != nil {
		media.Release(context, service.media, service.logger, thumbnail)
		return nil, err
	}

	if thumbnail != nil {
		media.Release(context, service.media, service.logger, &media.Asset{URL: existing.ThumbnailURL, Kind: media.KindImage})
	}

	return updated, nil
}

// Delete removes the video, then its hosted file and thumbnail.
func (service *Service) Delete(context context.Context, id, actorID string) error {
	existing, err := ownership.Guard(context, resourceName, id, actorID, service.repository.FindByID)
	if err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		if dberr.IsNotFound(err) {
			return apperr.NotFound(resourceName)
		}
		return err
	}

	media.Release(context, service.media, service.logger,
		&media.Asset{URL: existing.VideoFileURL, Kind: media.KindVideo},
		&media.Asset{URL: existing.ThumbnailURL, Kind: media.KindImage},
	)

	service.logger.Info("video_deleted", slog.String("video_id", id))
	return nil
}

// TogglePublish flips the publish flag.
func (service *Service) TogglePublish(context context.Context, id, actorID string) (*Video, error) {
	if _, err := ownership.Guard(context, resourceName, id, actorID, service.repository.FindByID); err != nil {
		return nil, err
	}

	return service.repository.TogglePublished(context, id)
}

// Visible reports whether viewerID may see the video. Drafts are visible to
// their owner only; anyone else gets NOT_FOUND. Used by comments, likes and playlists.
func (service *Service) Visible(context context.Context, id, viewerID string) error {
	found, err := service.repository.FindByID(context, id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return apperr.NotFound(resourceName)
		}
		return err
	}

	if !found.IsPublished && !ownership.SameID(found.OwnerID, viewerID) {
		return apperr.NotFound(resourceName)
	}
	return nil
}
