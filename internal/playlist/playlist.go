// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package playlist owns user-curated, ordered lists of videos.
//
// # Rules
//   - Only the owner may rename, delete or change the contents of a playlist.
//   - A video appears at most once per playlist; entries keep insertion order.
//   - Unpublished entries are shown to their video's owner only.
package playlist

import (
	"time"

	"github.com/taibuivan/vidtube/internal/user"
	"github.com/taibuivan/vidtube/internal/video"
)

// Playlist is a named list owned by one user.
type Playlist struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OwnerIdentifier implements ownership.Owned.
func (playlist *Playlist) OwnerIdentifier() string { return playlist.OwnerID }

// Summary is a playlist row in a listing.
type Summary struct {
	Playlist
	VideosCount int64 `json:"videosCount"`
}

// Entry is one video of a playlist at its position.
type Entry struct {
	Position int         `json:"position"`
	AddedAt  time.Time   `json:"addedAt"`
	Video    video.Video `json:"video"`
}

// Detail is a playlist with its owner and its videos in order.
type Detail struct {
	Playlist
	Owner  user.Summary `json:"owner"`
	Videos []Entry      `json:"videos"`
}

// Sort narrows the order of a playlist listing. Keys: createdAt, updatedAt, name.
type Sort struct {
	By   string
	Type string
}

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
)
