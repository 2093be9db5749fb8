// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/video"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

func newMockRepository(t *testing.T) (video.Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return video.NewRepository(mock), mock
}

var detailColumns = []string{
	"id", "ownerid", "videofileurl", "thumbnailurl", "title", "description", "duration", "views",
	"ispublished", "createdat", "updatedat", "owner_id", "owner_username", "owner_fullname", "owner_avatar",
	"likescount", "commentscount",
}

/*
TestRepository_List renders filters, search and sort into one parameterised query.
*/
func TestRepository_List(t *testing.T) {
	repository, mock := newMockRepository(t)
	now := time.Now().UTC()

	filter := video.Filter{Query: "50%_off", OwnerID: ownerID, SortBy: "views", SortType: "asc"}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM media\.video v INNER JOIN users\.account o ON o\.id = v\.ownerid WHERE v\.ownerid = \$1 AND v\.ispublished = \$2 AND \(v\.title ILIKE \$3 ESCAPE '\\'\)`).
		WithArgs(ownerID, true, `%50\%\_off%`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(`\(SELECT COUNT\(\*\) FROM social\.like l WHERE l\.videoid = v\.id\) AS likescount, \(SELECT COUNT\(\*\) FROM social\.comment c WHERE c\.videoid = v\.id\) AS commentscount FROM media\.video v .* ORDER BY v\.views ASC, v\.id ASC LIMIT \$4 OFFSET \$5`).
		WithArgs(ownerID, true, `%50\%\_off%`, 10, 0).
		WillReturnRows(pgxmock.NewRows(detailColumns).AddRow(
			"v-1", ownerID, "vf", "th", "50%_off sale", "d", 3.0, int64(9), true, now, now,
			ownerID, "chai", "Chai", "a", int64(2), int64(5),
		))

	page, err := repository.List(context.Background(), filter, pagination.New(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	item := page.Items[0]
	assert.Equal(t, "videos", page.Label)
	assert.Equal(t, "chai", item.Owner.Username)
	assert.Equal(t, int64(2), item.LikesCount)
	assert.Equal(t, int64(5), item.CommentsCount)
}

/*
TestRepository_List_UnknownSort fails before touching the database.
*/
func TestRepository_List_UnknownSort(t *testing.T) {
	repository, _ := newMockRepository(t)

	_, err := repository.List(context.Background(), video.Filter{SortBy: "passwordhash"}, pagination.New(1, 10))

	require.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.Equal(t, "sortBy", apperr.As(err).Details[0].Field)
}

/*
TestRepository_FindDetailMissing maps no rows to NOT_FOUND.
*/
func TestRepository_FindDetailMissing(t *testing.T) {
	repository, mock := newMockRepository(t)
	mock.ExpectQuery(`FROM media\.video v INNER JOIN users\.account o .* WHERE v\.id = \$1 ORDER BY v\.createdat DESC, v\.id DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("v-9", 1, 0).
		WillReturnError(pgx.ErrNoRows)

	_, err := repository.FindDetail(context.Background(), "v-9")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.Equal(t, "Video not found", apperr.As(err).Message)
}

/*
TestRepository_TogglePublished flips the flag in SQL.
*/
func TestRepository_TogglePublished(t *testing.T) {
	repository, mock := newMockRepository(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`UPDATE media\.video SET ispublished = NOT ispublished, updatedat = NOW\(\) WHERE id = \$1 RETURNING`).
		WithArgs("v-1").
		WillReturnRows(pgxmock.NewRows(detailColumns[:11]).AddRow(
			"v-1", ownerID, "vf", "th", "t", "d", 3.0, int64(0), false, now, now,
		))

	toggled, err := repository.TogglePublished(context.Background(), "v-1")
	require.NoError(t, err)
	assert.False(t, toggled.IsPublished)
}

/*
TestRepository_DeleteMissing reports NOT_FOUND when nothing was deleted.
*/
func TestRepository_DeleteMissing(t *testing.T) {
	repository, mock := newMockRepository(t)
	mock.ExpectExec(`DELETE FROM media\.video WHERE id = \$1`).
		WithArgs("v-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repository.Delete(context.Background(), "v-1")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestRepository_IncrementViews adds one view.
*/
func TestRepository_IncrementViews(t *testing.T) {
	repository, mock := newMockRepository(t)
	mock.ExpectExec(`UPDATE media\.video SET views = views \+ 1 WHERE id = \$1`).
		WithArgs("v-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repository.IncrementViews(context.Background(), "v-1"))
}

// # Redis

type fakeKeySetter struct {
	keys   map[string]time.Duration
	failed bool
}

func (setter *fakeKeySetter) SetNX(_ context.Context, key string, _ any, expiration time.Duration) *redis.BoolCmd {
	if setter.failed {
		return redis.NewBoolResult(false, errors.New("connection refused"))
	}
	if _, exists := setter.keys[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	setter.keys[key] = expiration
	return redis.NewBoolResult(true, nil)
}

/*
TestRedisViewCounter marks each (video, viewer) pair once with the configured window.
*/
func TestRedisViewCounter(t *testing.T) {
	setter := &fakeKeySetter{keys: map[string]time.Duration{}}
	counter := video.NewRedisViewCounter(setter, time.Hour)

	first, err := counter.FirstView(context.Background(), "v-1", "u-1")
	require.NoError(t, err)
	assert.True(t, first)

	again, err := counter.FirstView(context.Background(), "v-1", "u-1")
	require.NoError(t, err)
	assert.False(t, again)

	other, err := counter.FirstView(context.Background(), "v-1", "ip:10.0.0.1")
	require.NoError(t, err)
	assert.True(t, other)

	assert.Equal(t, time.Hour, setter.keys["video:view:v-1:u-1"])

	setter.failed = true
	_, err = counter.FirstView(context.Background(), "v-2", "u-1")
	assert.Error(t, err)
}
