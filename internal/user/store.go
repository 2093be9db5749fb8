// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"

	"github.com/taibuivan/vidtube/internal/platform/pipeline"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// # Account Data Access

// Repository defines the data access contract for accounts.
type Repository interface {

	/*
		Create persists a new account.

		Parameters:
		  - context: context.Context
		  - user: *User (ID, credentials and media already set)

		Returns:
		  - error: CONFLICT when username or email is taken
	*/
	Create(context context.Context, user *User) error

	/*
		FindByID returns the account including credential hashes.

		Returns:
		  - *User: The account
		  - error: NOT_FOUND if missing
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByLogin returns the account whose email or username matches.
		Blank arguments never match.

		Returns:
		  - *User: The account
		  - error: NOT_FOUND if neither matches
	*/
	FindByLogin(context context.Context, email, username string) (*User, error)

	// Exists reports whether any account already uses username or email.
	Exists(context context.Context, username, email string) (bool, error)

	/*
		UpdateAccount changes the display name and email.

		Returns:
		  - *User: The updated account
		  - error: NOT_FOUND, or CONFLICT when email is taken
	*/
	UpdateAccount(context context.Context, id, fullName, email string) (*User, error)

	// UpdatePassword stores a new password hash and drops the refresh token.
	UpdatePassword(context context.Context, id, passwordHash string) error

	// UpdateAvatar replaces the avatar URL and returns the updated account.
	UpdateAvatar(context context.Context, id, url string) (*User, error)

	// UpdateCoverImage replaces the cover image URL and returns the updated account.
	UpdateCoverImage(context context.Context, id, url string) (*User, error)

	// # Refresh Token

	// SetRefreshToken overwrites the stored refresh-token hash (login).
	SetRefreshToken(context context.Context, id, tokenHash string) error

	/*
		RotateRefreshToken swaps the stored hash only if it still equals oldHash.

		Returns:
		  - bool: false when another refresh or a logout won the race
		  - error: Database failures
	*/
	RotateRefreshToken(context context.Context, id, oldHash, newHash string) (bool, error)

	// ClearRefreshToken removes the stored hash (logout).
	ClearRefreshToken(context context.Context, id string) error

	// # Channel & History

	/*
		FindChannel returns the public profile of username.

		Parameters:
		  - context: context.Context
		  - username: string (normalised)
		  - viewerID: string (may be empty for anonymous viewers)

		Returns:
		  - *Channel: Profile with subscriber counters
		  - error: NOT_FOUND if missing
	*/
	FindChannel(context context.Context, username, viewerID string) (*Channel, error)

	// WatchHistory pages the user's watched videos, most recent first.
	WatchHistory(context context.Context, userID string, params pagination.Params) (*pipeline.Page[WatchedVideo], error)

	// RecordWatch moves videoID to the front of the user's history.
	RecordWatch(context context.Context, userID, videoID string) error
}
