// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tweet owns short text posts published on a channel.
package tweet

import (
	"time"

	"github.com/taibuivan/vidtube/internal/user"
)

// Tweet is a short post by one user.
type Tweet struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerIdentifier implements ownership.Owned.
func (tweet *Tweet) OwnerIdentifier() string { return tweet.OwnerID }

// View is a tweet with its author flattened and likes counted.
type View struct {
	ID         string       `json:"id"`
	Content    string       `json:"content"`
	Owner      user.Summary `json:"owner"`
	LikesCount int64        `json:"likesCount"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// Filter narrows a tweet listing. A blank OwnerID lists every channel.
type Filter struct {
	Query    string
	OwnerID  string
	SortBy   string
	SortType string
}

const maxContentLength = 280
