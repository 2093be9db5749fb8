// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/vidtube/internal/platform/database/schema"
	"github.com/taibuivan/vidtube/internal/platform/dberr"
	"github.com/taibuivan/vidtube/internal/platform/pipeline"
	"github.com/taibuivan/vidtube/internal/platform/postgres"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// # PostgreSQL Repository

type repository struct {
	db postgres.DBTX
}

// NewRepository constructs a PostgreSQL backed account store.
func NewRepository(db postgres.DBTX) Repository {
	return &repository{db: db}
}

var account = schema.UserAccount

// accountColumns is the scan order of [scanUser].
var accountColumns = strings.Join([]string{
	account.ID, account.Username, account.Email, account.FullName,
	account.AvatarURL, account.CoverImageURL, account.Password, account.RefreshTokenHash,
	account.CreatedAt, account.UpdatedAt,
}, ", ")

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.AvatarURL,
		&user.CoverImageURL,
		&user.PasswordHash,
		&user.RefreshTokenHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// # Account

func (repository *repository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		account.Table,
		account.ID, account.Username, account.Email, account.FullName,
		account.AvatarURL, account.CoverImageURL, account.Password,
		account.CreatedAt, account.UpdatedAt,
	)

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FullName,
		user.AvatarURL,
		user.CoverImageURL,
		user.PasswordHash,
		now,
	)
	if err != nil {
		return dberr.WrapAs(err, "postgres_user_create_failed", "User")
	}

	return nil
}

func (repository *repository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, accountColumns, account.Table, account.ID)

	user, err := scanUser(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapAs(err, "postgres_user_find_by_id_failed", "User")
	}
	return user, nil
}

func (repository *repository) FindByLogin(context context.Context, email, username string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE ($1 <> '' AND %s = $1) OR ($2 <> '' AND %s = $2)
		LIMIT 1`,
		accountColumns, account.Table, account.Email, account.Username,
	)

	user, err := scanUser(repository.db.QueryRow(context, query, email, username))
	if err != nil {
		return nil, dberr.WrapAs(err, "postgres_user_find_by_login_failed", "User")
	}
	return user, nil
}

func (repository *repository) Exists(context context.Context, username, email string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 OR %s = $2)`,
		account.Table, account.Username, account.Email)

	var exists bool
	if err := repository.db.QueryRow(context, query, username, email).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "postgres_user_exists_failed")
	}
	return exists, nil
}

func (repository *repository) UpdateAccount(context context.Context, id, fullName, email string) (*User, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		account.Table, account.FullName, account.Email, account.UpdatedAt,
		account.ID, accountColumns,
	)

	user, err := scanUser(repository.db.QueryRow(context, query, id, fullName, email))
	if err != nil {
		return nil, dberr.WrapAs(err, "postgres_user_update_account_failed", "User")
	}
	return user, nil
}

func (repository *repository) UpdatePassword(context context.Context, id, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NULL, %s = NOW() WHERE %s = $1`,
		account.Table, account.Password, account.RefreshTokenHash, account.UpdatedAt, account.ID)

	return repository.execOne(context, "postgres_user_update_password_failed", query, id, passwordHash)
}

func (repository *repository) UpdateAvatar(context context.Context, id, url string) (*User, error) {
	return repository.updateMedia(context, account.AvatarURL, id, url)
}

func (repository *repository) UpdateCoverImage(context context.Context, id, url string) (*User, error) {
	return repository.updateMedia(context, account.CoverImageURL, id, url)
}

func (repository *repository) updateMedia(context context.Context, column, id, url string) (*User, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 RETURNING %s`,
		account.Table, column, account.UpdatedAt, account.ID, accountColumns)

	user, err := scanUser(repository.db.QueryRow(context, query, id, url))
	if err != nil {
		return nil, dberr.WrapAs(err, "postgres_user_update_"+column+"_failed", "User")
	}
	return user, nil
}

// # Refresh Token

func (repository *repository) SetRefreshToken(context context.Context, id, tokenHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		account.Table, account.RefreshTokenHash, account.ID)

	return repository.execOne(context, "postgres_user_set_refresh_failed", query, id, tokenHash)
}

func (repository *repository) RotateRefreshToken(context context.Context, id, oldHash, newHash string) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $3 WHERE %s = $1 AND %s = $2`,
		account.Table, account.RefreshTokenHash, account.ID, account.RefreshTokenHash)

	tag, err := repository.db.Exec(context, query, id, oldHash, newHash)
	if err != nil {
		return false, dberr.Wrap(err, "postgres_user_rotate_refresh_failed")
	}
	return tag.RowsAffected() == 1, nil
}

func (repository *repository) ClearRefreshToken(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s = $1`,
		account.Table, account.RefreshTokenHash, account.ID)

	_, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_user_clear_refresh_failed")
	}
	return nil
}

func (repository *repository) execOne(context context.Context, action, query string, args ...any) error {
	tag, err := repository.db.Exec(context, query, args...)
	if err != nil {
		return dberr.WrapAs(err, action, "User")
	}
	if tag.RowsAffected() == 0 {
		return dberr.WrapAs(pgx.ErrNoRows, action, "User")
	}
	return nil
}

// # Channel & History

func (repository *repository) FindChannel(context context.Context, username, viewerID string) (*Channel, error) {
	subscription := schema.SocialSubscription
	query := fmt.Sprintf(`
		SELECT a.%[1]s, a.%[2]s, a.%[3]s, a.%[4]s, a.%[5]s, a.%[6]s,
			(SELECT COUNT(*) FROM %[7]s s WHERE s.%[8]s = a.%[1]s),
			(SELECT COUNT(*) FROM %[7]s s WHERE s.%[9]s = a.%[1]s),
			EXISTS (SELECT 1 FROM %[7]s s WHERE s.%[8]s = a.%[1]s AND s.%[9]s = $2::uuid)
		FROM %[10]s a
		WHERE a.%[2]s = $1`,
		account.ID, account.Username, account.FullName, account.Email, account.AvatarURL, account.CoverImageURL,
		subscription.Table, subscription.ChannelID, subscription.SubscriberID,
		account.Table,
	)

	var viewer any
	if viewerID != "" {
		viewer = viewerID
	}

	channel := &Channel{}
	err := repository.db.QueryRow(context, query, username, viewer).Scan(
		&channel.ID,
		&channel.Username,
		&channel.FullName,
		&channel.Email,
		&channel.AvatarURL,
		&channel.CoverImageURL,
		&channel.SubscribersCount,
		&channel.ChannelsSubscribedToCount,
		&channel.IsSubscribed,
	)
	if err != nil {
		return nil, dberr.WrapAs(err, "postgres_user_find_channel_failed", "Channel")
	}
	return channel, nil
}

func (repository *repository) WatchHistory(context context.Context, userID string, params pagination.Params) (*pipeline.Page[WatchedVideo], error) {
	history := schema.UserWatchHistory
	video := schema.MediaVideo

	composed, err := pipeline.Compose(pipeline.Spec{
		Table: history.Table,
		Alias: "h",
		Match: []pipeline.Eq{{Column: "h." + history.UserID, Value: userID}},
		Joins: []pipeline.Join{
			pipeline.One(video.Table, "v", "v."+video.ID+" = h."+history.VideoID,
				pipeline.Col("v."+video.ID),
				pipeline.Col("v."+video.Title),
				pipeline.Col("v."+video.Description),
				pipeline.Col("v."+video.VideoFileURL),
				pipeline.Col("v."+video.ThumbnailURL),
				pipeline.Col("v."+video.Duration),
				pipeline.Col("v."+video.Views),
				pipeline.Col("v."+video.CreatedAt),
			),
			pipeline.One(account.Table, "o", "o."+account.ID+" = v."+video.OwnerID,
				pipeline.ColAs("o."+account.ID, "owner_id"),
				pipeline.ColAs("o."+account.Username, "owner_username"),
				pipeline.ColAs("o."+account.FullName, "owner_fullname"),
				pipeline.ColAs("o."+account.AvatarURL, "owner_avatar"),
			),
		},
		Project:     []pipeline.Column{pipeline.Col("h." + history.WatchedAt)},
		Sortable:    map[string]string{"watchedAt": "h." + history.WatchedAt},
		DefaultSort: "watchedAt",
	})
	if err != nil {
		return nil, err
	}

	return pipeline.Paginate(context, repository.db, composed, params, "history", scanWatchedVideo)
}

func scanWatchedVideo(row pgx.Row) (WatchedVideo, error) {
	var entry WatchedVideo
	err := row.Scan(
		&entry.WatchedAt,
		&entry.ID,
		&entry.Title,
		&entry.Description,
		&entry.VideoFileURL,
		&entry.ThumbnailURL,
		&entry.Duration,
		&entry.Views,
		&entry.CreatedAt,
		&entry.Owner.ID,
		&entry.Owner.Username,
		&entry.Owner.FullName,
		&entry.Owner.AvatarURL,
	)
	return entry, err
}

func (repository *repository) RecordWatch(context context.Context, userID, videoID string) error {
	history := schema.UserWatchHistory
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s) VALUES ($1, $2, NOW())
		ON CONFLICT (%[2]s, %[3]s) DO UPDATE SET %[4]s = EXCLUDED.%[4]s`,
		history.Table, history.UserID, history.VideoID, history.WatchedAt)

	if _, err := repository.db.Exec(context, query, userID, videoID); err != nil {
		return dberr.Wrap(err, "postgres_user_record_watch_failed")
	}
	return nil
}
