// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"

	"github.com/taibuivan/vidtube/internal/platform/pipeline"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// ListQuery narrows the comments of one video.
type ListQuery struct {
	VideoID  string
	ViewerID string
	Query    string
	SortBy   string
	SortType string
}

// Repository defines the data access contract for comments.
type Repository interface {

	// Create persists a new comment. A vanished video surfaces as NOT_FOUND.
	Create(context context.Context, comment *Comment) error

	// FindByID returns the comment, or NOT_FOUND.
	FindByID(context context.Context, id string) (*Comment, error)

	/*
		List pages the comments of a video with author and video flattened.

		Returns:
		  - *pipeline.Page[View]: labelled "comments"
		  - error: VALIDATION_ERROR on unknown sort keys, FETCH_FAILED on store failure
	*/
	List(context context.Context, query ListQuery, params pagination.Params) (*pipeline.Page[View], error)

	// Update replaces the content and returns the updated comment.
	Update(context context.Context, id, content string) (*Comment, error)

	// Delete removes the comment and returns what was removed.
	Delete(context context.Context, id string) (*Comment, error)
}
