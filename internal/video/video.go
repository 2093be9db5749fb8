// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package video owns publishing, listing, viewing and moderating videos.
//
// # Rules
//   - The owner is fixed at publish time. Only the owner may update, delete or
//     toggle the publish flag (see platform/ownership).
//   - Unpublished videos are visible to their owner only.
//   - A view is counted at most once per viewer within the de-duplication window.
package video

import (
	"time"

	"github.com/taibuivan/vidtube/internal/user"
)

// # Entities

// Video is a published (or draft) upload.
type Video struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId"`
	VideoFileURL string    `json:"videoFile"`
	ThumbnailURL string    `json:"thumbnail"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// OwnerIdentifier implements ownership.Owned.
func (video *Video) OwnerIdentifier() string { return video.OwnerID }

// Detail is the denormalised read view: owner flattened, relations counted.
type Detail struct {
	Video
	Owner         user.Summary `json:"owner"`
	LikesCount    int64        `json:"likesCount"`
	CommentsCount int64        `json:"commentsCount"`
}

// # Queries

// Filter narrows a listing.
type Filter struct {
	// Query is a case-insensitive substring of the title.
	Query string
	// OwnerID restricts the list to one channel.
	OwnerID  string
	SortBy   string
	SortType string
	// IncludeUnpublished is set when the owner lists their own channel.
	IncludeUnpublished bool
}

// # Field Limits

const (
	maxTitleLength       = 200
	maxDescriptionLength = 5000
)

// Multipart field names.
const (
	FieldVideoFile = "videoFile"
	FieldThumbnail = "thumbnail"
)
