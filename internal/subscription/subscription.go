// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package subscription toggles channel subscriptions and lists both sides of them.
//
// A channel is a user account. Nobody can subscribe to their own channel.
package subscription

import (
	"time"

	"github.com/taibuivan/vidtube/internal/platform/toggle"
	"github.com/taibuivan/vidtube/internal/user"
)

// Subscription links a subscriber to a channel.
type Subscription struct {
	ID           string    `json:"id"`
	SubscriberID string    `json:"subscriber"`
	ChannelID    string    `json:"channel"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Toggled is the outcome of a subscription toggle.
type Toggled struct {
	State        toggle.State  `json:"state"`
	Subscribed   bool          `json:"subscribed"`
	Subscription *Subscription `json:"subscription"`
}

// Subscriber is a user subscribed to a channel.
type Subscriber struct {
	SubscriptionID   string       `json:"subscriptionId"`
	SubscribedAt     time.Time    `json:"subscribedAt"`
	Subscriber       user.Summary `json:"subscriber"`
	SubscribersCount int64        `json:"subscribersCount"`
}

// Channel is a channel a user subscribed to.
type Channel struct {
	SubscriptionID   string       `json:"subscriptionId"`
	SubscribedAt     time.Time    `json:"subscribedAt"`
	Channel          user.Summary `json:"channel"`
	SubscribersCount int64        `json:"subscribersCount"`
}
