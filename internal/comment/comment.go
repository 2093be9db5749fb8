// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment owns comments on videos.
package comment

import (
	"time"

	"github.com/taibuivan/vidtube/internal/user"
)

// Comment is a user's remark on a video.
type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"videoId"`
	OwnerID   string    `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerIdentifier implements ownership.Owned.
func (comment *Comment) OwnerIdentifier() string { return comment.OwnerID }

// VideoSummary is the commented video, flattened into a [View].
type VideoSummary struct {
	ID           string  `json:"id"`
	VideoFileURL string  `json:"videoFile"`
	ThumbnailURL string  `json:"thumbnail"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Duration     float64 `json:"duration"`
	Views        int64   `json:"views"`
	IsPublished  bool    `json:"isPublished"`
}

// View is a listed comment with author and video flattened.
type View struct {
	ID         string       `json:"id"`
	Content    string       `json:"content"`
	Owner      user.Summary `json:"owner"`
	Video      VideoSummary `json:"video"`
	LikesCount int64        `json:"likesCount"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// maxContentLength bounds a comment body.
const maxContentLength = 1000
