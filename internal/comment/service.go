// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

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

const resourceName = "Comment"

// VideoChecker confirms that a video exists and that viewerID may see it.
type VideoChecker interface {
	Visible(context context.Context, id, viewerID string) error
}

// Service implements comment use cases.
type Service struct {
	repository Repository
	videos     VideoChecker
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, videos VideoChecker, logger *slog.Logger) *Service {
	return &Service{repository: repository, videos: videos, logger: logger}
}

// List pages the comments of a video the viewer can see.
func (service *Service) List(context context.Context, query ListQuery, params pagination.Params) (*pipeline.Page[View], error) {
	if err := service.videos.Visible(context, query.VideoID, query.ViewerID); err != nil {
		return nil, err
	}
	return service.repository.List(context, query, params)
}

// Add comments on videoID as ownerID.
func (service *Service) Add(context context.Context, videoID, ownerID, content string) (*Comment, error) {
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}

	if err := service.videos.Visible(context, videoID, ownerID); err != nil {
		return nil, err
	}

	created := &Comment{
		ID:      uuid.New(),
		VideoID: videoID,
		OwnerID: ownerID,
		Content: content,
	}
	if err := service.repository.Create(context, created); err != nil {
		return nil, err
	}

	service.logger.Info("comment_added", slog.String("comment_id", created.ID), slog.String("video_id", videoID))
	return created, nil
}

// Update replaces the content of the actor's comment.
func (service *Service) Update(context context.Context, id, actorID, content string) (*Comment, error) {
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}

	if _, err := ownership.Guard(context, resourceName, id, actorID, service.repository.FindByID); err != nil {
		return nil, err
	}

	return service.repository.Update(context, id, content)
}

// Delete removes the actor's comment and returns it.
func (service *Service) Delete(context context.Context, id, actorID string) (*Comment, error) {
	if _, err := ownership.Guard(context, resourceName, id, actorID, service.repository.FindByID); err != nil {
		return nil, err
	}

	deleted, err := service.repository.Delete(context, id)
	if err != nil {
		return nil, err
	}

	service.logger.Info("comment_deleted", slog.String("comment_id", id))
	return deleted, nil
}

// Visible reports whether the comment exists on a video viewerID can see. Used by likes.
func (service *Service) Visible(context context.Context, id, viewerID string) error {
	found, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}
	return service.videos.Visible(context, found.VideoID, viewerID)
}

func validContent(content string) (string, error) {
	content = normalize.Text(content)

	v := &validate.Validator{}
	v.Required("content", content).MaxLen("content", content, maxContentLength)
	return content, v.Err()
}
