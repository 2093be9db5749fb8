// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tweet

import (
	"context"

	"github.com/taibuivan/vidtube/internal/platform/pipeline"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Repository defines the data access contract for tweets.
type Repository interface {
	Create(context context.Context, tweet *Tweet) error

	// FindByID returns the tweet, or NOT_FOUND.
	FindByID(context context.Context, id string) (*Tweet, error)

	/*
		List pages tweets with their authors flattened.

		Returns:
		  - *pipeline.Page[View]: labelled "tweets"
		  - error: VALIDATION_ERROR on unknown sort keys, FETCH_FAILED on store failure
	*/
	List(context context.Context, filter Filter, params pagination.Params) (*pipeline.Page[View], error)

	// Update replaces the content and returns the updated tweet.
	Update(context context.Context, id, content string) (*Tweet, error)

	// Delete removes the tweet and returns what was removed.
	Delete(context context.Context, id string) (*Tweet, error)
}
