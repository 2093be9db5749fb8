// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/comment"
	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

func newMockRepository(t *testing.T) (comment.Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return comment.NewRepository(mock), mock
}

var commentColumns = []string{"id", "videoid", "ownerid", "content", "createdat", "updatedat"}

/*
TestRepository_List flattens owner and video columns and counts likes.
*/
func TestRepository_List(t *testing.T) {
	repository, mock := newMockRepository(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM social\.comment c INNER JOIN users\.account o ON o\.id = c\.ownerid INNER JOIN media\.video v ON v\.id = c\.videoid WHERE c\.videoid = \$1 AND \(c\.content ILIKE \$2 ESCAPE '\\'\)`).
		WithArgs(videoID, "%nice%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery(`SELECT c\.id, c\.content, c\.createdat, c\.updatedat, o\.id AS owner_id, .* \(SELECT COUNT\(\*\) FROM social\.like l WHERE l\.commentid = c\.id\) AS likescount FROM social\.comment c .* ORDER BY c\.createdat DESC, c\.id DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(videoID, "%nice%", 2, 2).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "content", "createdat", "updatedat",
			"owner_id", "owner_username", "owner_fullname", "owner_avatar",
			"video_id", "video_file", "video_thumbnail", "video_title", "video_description",
			"video_duration", "video_views", "video_ispublished", "likescount",
		}).AddRow(
			"c-3", "nice one", now, now,
			ownerID, "chai", "Chai", "a",
			videoID, "vf", "th", "Clip", "d", 12.0, int64(4), true, int64(7),
		))

	page, err := repository.List(context.Background(), comment.ListQuery{VideoID: videoID, Query: "nice"}, pagination.New(2, 2))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	item := page.Items[0]
	assert.Equal(t, "comments", page.Label)
	assert.Equal(t, "chai", item.Owner.Username)
	assert.Equal(t, "Clip", item.Video.Title)
	assert.Equal(t, int64(7), item.LikesCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.HasNextPage)
}

/*
TestRepository_CreateMissingVideo maps a foreign key violation to NOT_FOUND.
*/
func TestRepository_CreateMissingVideo(t *testing.T) {
	repository, mock := newMockRepository(t)
	mock.ExpectExec(`INSERT INTO social\.comment`).
		WithArgs("c-1", missingID, ownerID, "hi", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repository.Create(context.Background(), &comment.Comment{ID: "c-1", VideoID: missingID, OwnerID: ownerID, Content: "hi"})

	require.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.Equal(t, "Video not found", apperr.As(err).Message)
}

/*
TestRepository_UpdateAndDelete return the affected row or NOT_FOUND.
*/
func TestRepository_UpdateAndDelete(t *testing.T) {
	repository, mock := newMockRepository(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`UPDATE social\.comment SET content = \$2, updatedat = NOW\(\) WHERE id = \$1 RETURNING`).
		WithArgs("c-1", "edited").
		WillReturnRows(pgxmock.NewRows(commentColumns).AddRow("c-1", videoID, ownerID, "edited", now, now))
	mock.ExpectQuery(`DELETE FROM social\.comment WHERE id = \$1 RETURNING`).
		WithArgs("c-2").
		WillReturnError(pgx.ErrNoRows)

	updated, err := repository.Update(context.Background(), "c-1", "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	_, err = repository.Delete(context.Background(), "c-2")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.Equal(t, "Comment not found", apperr.As(err).Message)
}
