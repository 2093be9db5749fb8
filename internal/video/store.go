// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import (
	"context"

	"github.com/taibuivan/vidtube/internal/platform/pipeline"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// # Video Data Access

// Repository defines the data access contract for videos.
type Repository interface {

	/*
		Create persists a new video.

		Parameters:
		  - context: context.Context
		  - video: *Video (ID, owner and media already set)

		Returns:
		  - error: NOT_FOUND if the owner is gone
	*/
	Create(context context.Context, video *Video) error

	// FindByID returns the bare video row, or NOT_FOUND.
	FindByID(context context.Context, id string) (*Video, error)

	/*
		FindDetail returns the video with its owner and counters.

		Returns:
		  - *Detail: Denormalised view
		  - error: NOT_FOUND if missing
	*/
	FindDetail(context context.Context, id string) (*Detail, error)

	/*
		List pages videos through the query pipeline.

		Parameters:
		  - context: context.Context
		  - filter: Filter (search, owner, sort)
		  - params: pagination.Params

		Returns:
		  - *pipeline.Page[Detail]: labelled "videos"
		  - error: VALIDATION_ERROR on unknown sort keys, FETCH_FAILED on store failure
	*/
	List(context context.Context, filter Filter, params pagination.Params) (*pipeline.Page[Detail], error)

	// Update overwrites the editable fields and returns the updated row.
	Update(context context.Context, video *Video) (*Video, error)

	// TogglePublished flips isPublished in a single statement.
	TogglePublished(context context.Context, id string) (*Video, error)

	// Delete removes the video. Comments, likes, playlist entries and history rows cascade.
	Delete(context context.Context, id string) error

	// IncrementViews adds one view.
	IncrementViews(context context.Context, id string) error
}

// # View De-duplication

// ViewCounter decides whether a view should be counted.
type ViewCounter interface {
	// FirstView reports true the first time viewerKey sees videoID within the window.
	FirstView(context context.Context, videoID, viewerKey string) (bool, error)
}

// HistoryRecorder appends a video to a user's watch history.
type HistoryRecorder interface {
	RecordWatch(context context.Context, userID, videoID string) error
}
