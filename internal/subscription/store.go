// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subscription

import (
	"context"

	"github.com/taibuivan/vidtube/internal/platform/pipeline"
	"github.com/taibuivan/vidtube/internal/platform/toggle"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Sort narrows the order of a member listing. Keys: createdAt (subscription time), username.
type Sort struct {
	By   string
	Type string
}

// Repository defines the data access contract for subscriptions.
type Repository interface {

	// Toggle flips the subscription of subscriberID to channelID.
	Toggle(context context.Context, subscriberID, channelID string) (toggle.Result[*Subscription], error)

	// Subscribers pages the users subscribed to channelID.
	Subscribers(context context.Context, channelID string, sort Sort, params pagination.Params) (*pipeline.Page[Subscriber], error)

	// Channels pages the channels subscriberID is subscribed to.
	Channels(context context.Context, subscriberID string, sort Sort, params pagination.Params) (*pipeline.Page[Channel], error)
}
