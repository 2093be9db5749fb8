// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"context"

	"github.com/taibuivan/vidtube/internal/platform/pipeline"
	"github.com/taibuivan/vidtube/internal/platform/toggle"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Repository defines the data access contract for likes.
type Repository interface {

	/*
		Toggle flips the like of actorID on (target, targetID).

		Parameters:
		  - actorID: the liking user
		  - target: video, comment or tweet
		  - targetID: the liked entity

		Returns:
		  - toggle.Result[*Like]: Activated with the new like, or Deactivated with the removed one
		  - error: MUTATION_FAILED on store failure
	*/
	Toggle(context context.Context, actorID string, target Target, targetID string) (toggle.Result[*Like], error)

	// LikedVideos pages the published videos actorID liked. Sort keys: createdAt (like time), views, title.
	LikedVideos(context context.Context, actorID, sortBy, sortType string, params pagination.Params) (*pipeline.Page[LikedVideo], error)
}
