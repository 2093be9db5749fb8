// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tweet

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

const resourceName = "Tweet"

// UserChecker confirms that an account exists.
type UserChecker interface {
	Exists(context context.Context, userID string) error
}

// Service implements tweet use cases.
type Service struct {
	repository Repository
	users      UserChecker
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, users UserChecker, logger *slog.Logger) *Service {
	return &Service{repository: repository, users: users, logger: logger}
}

// Create posts a tweet as ownerID.
func (service *Service) Create(context context.Context, ownerID, content string) (*Tweet, error) {
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}

	created := &Tweet{ID: uuid.New(), OwnerID: ownerID, Content: content}
	if err := service.repository.Create(context, created); err != nil {
		return nil, err
	}

	service.logger.Info("tweet_created", slog.String("tweet_id", created.ID))
	return created, nil
}

// List pages tweets across all channels.
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) (*pipeline.Page[View], error) {
	return service.repository.List(context, filter, params)
}

// ListByUser pages one user's tweets. The user must exist.
func (service *Service) ListByUser(context context.Context, userID string, filter Filter, params pagination.Params) (*pipeline.Page[View], error) {
	if err := service.users.Exists(context, userID); err != nil {
		return nil, err
	}
	filter.OwnerID = userID
	return service.repository.List(context, filter, params)
}

// Update replaces the content of the actor's tweet.
func (service *Service) Update(context context.Context, id, actorID, content string) (*Tweet, error) {
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}

	if _, err := ownership.Guard(context, resourceName, id, actorID, service.repository.FindByID); err != nil {
		return nil, err
	}

	return service.repository.Update(context, id, content)
}

// Delete removes the actor's tweet and returns it.
func (service *Service) Delete(context context.Context, id, actorID string) (*Tweet, error) {
	if _, err := ownership.Guard(context, resourceName, id, actorID, service.repository.FindByID); err != nil {
		return nil, err
	}

	deleted, err := service.repository.Delete(context, id)
	if err != nil {
		return nil, err
	}

	service.logger.Info("tweet_deleted", slog.String("tweet_id", id))
	return deleted, nil
}

// Visible reports whether the tweet exists. Tweets have no drafts, so every
// viewer sees every tweet. Used by likes.
func (service *Service) Visible(context context.Context, id, _ string) error {
	_, err := service.repository.FindByID(context, id)
	return err
}

func validContent(content string) (string, error) {
	content = normalize.Text(content)

	v := &validate.Validator{}
	v.Required("content", content).MaxLen("content", content, maxContentLength)
	return content, v.Err()
}
