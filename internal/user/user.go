// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package user owns accounts, sessions, channel profiles and watch history.
//
// # Rules
//   - Username and email are unique after normalisation (see pkg/normalize).
//   - PasswordHash is produced by bcrypt and never serialised.
//   - At most one refresh token is valid per user. Only its SHA-256 hash is
//     stored; login replaces it, refresh rotates it with compare-and-swap and
//     logout clears it.
package user

import "time"

// # Entities

// User is a registered account.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	FullName         string    `json:"fullName"`
	AvatarURL        string    `json:"avatar"`
	CoverImageURL    string    `json:"coverImage"`
	PasswordHash     string    `json:"-"`
	RefreshTokenHash *string   `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Summary is the public projection of a user embedded in other resources
// (video owners, comment authors, subscribers).
type Summary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatar"`
}

// Channel is a user's public profile with subscription counters.
type Channel struct {
	ID                        string `json:"id"`
	Username                  string `json:"username"`
	FullName                  string `json:"fullName"`
	Email                     string `json:"email"`
	AvatarURL                 string `json:"avatar"`
	CoverImageURL             string `json:"coverImage"`
	SubscribersCount          int64  `json:"subscribersCount"`
	ChannelsSubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `json:"isSubscribed"`
}

// WatchedVideo is one watch-history entry with its owner flattened in.
type WatchedVideo struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoFileURL string    `json:"videoFile"`
	ThumbnailURL string    `json:"thumbnail"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	CreatedAt    time.Time `json:"createdAt"`
	WatchedAt    time.Time `json:"watchedAt"`
	Owner        Summary   `json:"owner"`
}

// Session is the result of a successful login or refresh.
type Session struct {
	User         *User  `json:"user,omitempty"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// # Field Limits

const (
	minUsernameLength = 3
	maxUsernameLength = 30
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt input limit
	maxFullNameLength = 80
	maxEmailLength    = 254
)

// Multipart field names.
const (
	FieldAvatar     = "avatar"
	FieldCoverImage = "coverImage"
)
