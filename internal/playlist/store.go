// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist

import (
	"context"

	"github.com/taibuivan/vidtube/internal/platform/pipeline"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Repository defines the data access contract for playlists.
type Repository interface {
	Create(context context.Context, playlist *Playlist) error

	// FindByID returns the bare playlist, or NOT_FOUND.
	FindByID(context context.Context, id string) (*Playlist, error)

	/*
		FindDetail returns the playlist with its owner and ordered videos.

		Parameters:
		  - id: playlist id
		  - viewerID: the caller, or "" when anonymous. Drafts owned by the viewer are included.

		Returns:
		  - *Detail: Videos is never nil
		  - error: NOT_FOUND when the playlist does not exist
	*/
	FindDetail(context context.Context, id, viewerID string) (*Detail, error)

	// ListByOwner pages the playlists of one user with their video counts.
	ListByOwner(context context.Context, ownerID string, sort Sort, params pagination.Params) (*pipeline.Page[Summary], error)

	// Update writes name and description and returns the stored row.
	Update(context context.Context, playlist *Playlist) (*Playlist, error)

	// Delete removes the playlist and its entries.
	Delete(context context.Context, id string) error

	// AddVideo appends videoID at the end of the playlist. CONFLICT when already present.
	AddVideo(context context.Context, playlistID, videoID string) error

	// RemoveVideo drops videoID from the playlist. NOT_FOUND when absent.
	RemoveVideo(context context.Context, playlistID, videoID string) error
}
