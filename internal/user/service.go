// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/dberr"
	"github.com/taibuivan/vidtube/internal/platform/media"
	"github.com/taibuivan/vidtube/internal/platform/pipeline"
	"github.com/taibuivan/vidtube/internal/platform/sec"
	"github.com/taibuivan/vidtube/internal/platform/validate"
	"github.com/taibuivan/vidtube/pkg/normalize"
	"github.com/taibuivan/vidtube/pkg/pagination"
	"github.com/taibuivan/vidtube/pkg/uuid"
)

// TokenIssuer signs and verifies the session tokens.
type TokenIssuer interface {
	GenerateAccessToken(identity sec.Identity, timeToLive time.Duration) (string, error)
	GenerateRefreshToken(userID string, timeToLive time.Duration) (string, error)
	VerifyRefreshToken(token string) (*sec.AuthClaims, error)
}

// TokenTTL holds token lifetimes.
type TokenTTL struct {
	Access  time.Duration
	Refresh time.Duration
}

// Service implements account and session use cases.
type Service struct {
	repository Repository
	tokens     TokenIssuer
	media      media.Store
	ttl        TokenTTL
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, tokens TokenIssuer, store media.Store, ttl TokenTTL, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		tokens:     tokens,
		media:      store,
		ttl:        ttl,
		logger:     logger,
	}
}

// # Registration

// RegisterInput holds the registration form. AvatarPath is required;
// CoverImagePath is optional. Both are spooled temp files.
type RegisterInput struct {
	FullName       string
	Email          string
	Username       string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

/*
Register creates an account with its avatar (and optional cover image).

# Flow
 1. Validate and normalise.
 2. Reject taken username/email (409).
 3. Upload media.
 4. Persist. If persisting fails, the uploaded media is released.
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	input.FullName = normalize.DisplayName(input.FullName)
	input.Email = normalize.Email(input.Email)
	input.Username = normalize.Username(input.Username)

	// ── 1. Validation ─────────────────────────────────────────────────────

	v := &validate.Validator{}
	v.Required("fullName", input.FullName).MaxLen("fullName", input.FullName, maxFullNameLength)
	v.Email("email", input.Email).MaxLen("email", input.Email, maxEmailLength)
	v.Required("username", input.Username).
		MinLen("username", input.Username, minUsernameLength).
		MaxLen("username", input.Username, maxUsernameLength)
	v.Required("password", input.Password).
		MinLen("password", input.Password, minPasswordLength).
		MaxLen("password", input.Password, maxPasswordLength)
	v.Custom(FieldAvatar, input.AvatarPath == "", "Avatar is required")
	if err := v.Err(); err != nil {
		return nil, err
	}

	// ── 2. Uniqueness ─────────────────────────────────────────────────────

	exists, err := service.repository.Exists(context, input.Username, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("User with this email or username already exists")
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("user_service_hash_failed: %w", err)
	}

	// ── 3. Media ──────────────────────────────────────────────────────────

	avatar, err := service.media.Upload(context, input.AvatarPath, media.KindImage)
	if err != nil {
		return nil, apperr.MutationFailed("upload avatar", err)
	}

	var cover *media.Asset
	if input.CoverImagePath != "" {
		cover, err = service.media.Upload(context, input.CoverImagePath, media.KindImage)
		if err != nil {
			media.Release(context, service.media, service.logger, avatar)
			return nil, apperr.MutationFailed("upload cover image", err)
		}
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		FullName:     input.FullName,
		AvatarURL:    avatar.URL,
		PasswordHash: passwordHash,
	}
	if cover != nil {
		user.CoverImageURL = cover.URL
	}

	if err := service.repository.Create(context, user); err != nil {
		media.Release(context, service.media, service.logger, avatar, cover)
		return nil, err
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID))
	return user, nil
}

// # Sessions

// LoginInput carries credentials. Either Email or Username identifies the account.
type LoginInput struct {
	Email    string
	Username string
	Password string
}

// Login verifies credentials and starts a session, replacing any previous refresh token.
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	email := normalize.Email(input.Email)
	username := normalize.Username(input.Username)

	if email == "" && username == "" {
		return nil, validate.RequiredError("email", "Email or username is required")
	}
	if input.Password == "" {
		return nil, validate.RequiredError("password", "Password is required")
	}

	user, err := service.repository.FindByLogin(context, email, username)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	session, err := service.issue(user)
	if err != nil {
		return nil, err
	}

	if err := service.repository.SetRefreshToken(context, user.ID, sec.HashToken(session.RefreshToken)); err != nil {
		return nil, err
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))
	return session, nil
}

// Logout invalidates the user's refresh token.
func (service *Service) Logout(context context.Context, userID string) error {
	return service.repository.ClearRefreshToken(context, userID)
}

/*
Refresh rotates a refresh token.

The presented token must verify, belong to an existing user and match the
stored hash. The swap is conditional on the stored hash being unchanged, so
two concurrent refreshes with the same token cannot both succeed.
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, apperr.Unauthorized("Refresh token not found")
	}

	claims, err := service.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	user, err := service.repository.FindByID(context, claims.UserID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid refresh token")
		}
		return nil, err
	}

	presented := sec.HashToken(refreshToken)
	if user.RefreshTokenHash == nil || *user.RefreshTokenHash != presented {
		return nil, apperr.Unauthorized("Refresh token is used or expired")
	}

	session, err := service.issue(user)
	if err != nil {
		return nil, err
	}

	swapped, err := service.repository.RotateRefreshToken(context, user.ID, presented, sec.HashToken(session.RefreshToken))
	if err != nil {
		return nil, err
	}
	if !swapped {
		return nil, apperr.Unauthorized("Refresh token is used or expired")
	}

	return session, nil
}

func (service *Service) issue(user *User) (*Session, error) {
	accessToken, err := service.tokens.GenerateAccessToken(sec.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
	}, service.ttl.Access)
	if err != nil {
		return nil, fmt.Errorf("user_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.tokens.GenerateRefreshToken(user.ID, service.ttl.Refresh)
	if err != nil {
		return nil, fmt.Errorf("user_service_refresh_token_failed: %w", err)
	}

	return &Session{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// # Account

// ChangePassword replaces the password after verifying the old one. Other sessions end.
func (service *Service) ChangePassword(context context.Context, userID, oldPassword, newPassword string) error {
	v := &validate.Validator{}
	v.Required("oldPassword", oldPassword)
	v.Required("newPassword", newPassword).
		MinLen("newPassword", newPassword, minPasswordLength).
		MaxLen("newPassword", newPassword, maxPasswordLength)
	if err := v.Err(); err != nil {
		return err
	}

	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return apperr.ValidationError("Invalid old password", apperr.FieldError{Field: "oldPassword", Message: "Does not match"})
	}

	hash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("user_service_hash_failed: %w", err)
	}

	return service.repository.UpdatePassword(context, userID, hash)
}

// Current returns the caller's account.
func (service *Service) Current(context context.Context, userID string) (*User, error) {
	return service.repository.FindByID(context, userID)
}

// UpdateAccount changes the display name and email.
func (service *Service) UpdateAccount(context context.Context, userID, fullName, email string) (*User, error) {
	fullName = normalize.DisplayName(fullName)
	email = normalize.Email(email)

	v := &validate.Validator{}
	v.Required("fullName", fullName).MaxLen("fullName", fullName, maxFullNameLength)
	v.Email("email", email).MaxLen("email", email, maxEmailLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	return service.repository.UpdateAccount(context, userID, fullName, email)
}

// UpdateAvatar uploads a new avatar and releases the previous one.
func (service *Service) UpdateAvatar(context context.Context, userID, localPath string) (*User, error) {
	return service.replaceImage(context, userID, localPath, FieldAvatar, service.repository.UpdateAvatar,
		func(user *User) string { return user.AvatarURL })
}

// UpdateCoverImage uploads a new cover image and releases the previous one.
func (service *Service) UpdateCoverImage(context context.Context, userID, localPath string) (*User, error) {
	return service.replaceImage(context, userID, localPath, FieldCoverImage, service.repository.UpdateCoverImage,
		func(user *User) string { return user.CoverImageURL })
}

func (service *Service) replaceImage(
	context context.Context,
	userID, localPath, field string,
	update func(context.Context, string, string) (*User, error),
	current func(*User) string,
) (*User, error) {
	if localPath == "" {
		return nil, validate.RequiredError(field, "File is required")
	}

	existing, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	asset, err := service.media.Upload(context, localPath, media.KindImage)
	if err != nil {
		return nil, apperr.MutationFailed("upload "+field, err)
	}

	user, err := update(context, userID, asset.URL)
	if err != nil {
		media.Release(context, service.media, service.logger, asset)
		return nil, err
	}

	if previous := current(existing); previous != "" {
		media.Release(context, service.media, service.logger, &media.Asset{URL: previous, Kind: media.KindImage})
	}

	return user, nil
}

// # Channel & History

// Channel returns username's public profile as seen by viewerID (may be empty).
func (service *Service) Channel(context context.Context, username, viewerID string) (*Channel, error) {
	username = normalize.Username(username)
	if username == "" {
		return nil, validate.RequiredError("username", "Username is required")
	}
	return service.repository.FindChannel(context, username, viewerID)
}

// WatchHistory pages the caller's watched videos.
func (service *Service) WatchHistory(context context.Context, userID string, params pagination.Params) (*pipeline.Page[WatchedVideo], error) {
	return service.repository.WatchHistory(context, userID, params)
}

// RecordWatch appends a video to the user's history.
func (service *Service) RecordWatch(context context.Context, userID, videoID string) error {
	return service.repository.RecordWatch(context, userID, videoID)
}

// Exists reports whether the account exists. Used by subscriptions and playlists.
func (service *Service) Exists(context context.Context, userID string) error {
	_, err := service.repository.FindByID(context, userID)
	return err
}
