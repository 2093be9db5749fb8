// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/playlist"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

func newMockRepository(t *testing.T) (playlist.Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return playlist.NewRepository(mock), mock
}

const playlistID = "0191d5a0-0000-7000-8000-0000000000b1"

/*
TestRepository_FindDetail loads the head row, then the entries in position order, in one transaction.
*/
func TestRepository_FindDetail(t *testing.T) {
	repository, mock := newMockRepository(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT p\.id, p\.ownerid, .* FROM media\.playlist p INNER JOIN users\.account o ON o\.id = p\.ownerid WHERE p\.id = \$1`).
		WithArgs(playlistID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "ownerid", "name", "description", "createdat", "updatedat", "id", "username", "fullname", "avatarurl",
		}).AddRow(playlistID, ownerID, "Mix", "", now, now, ownerID, "chai", "Chai", "a"))
	mock.ExpectQuery(`FROM media\.playlistvideo e INNER JOIN media\.video v ON v\.id = e\.videoid\s+WHERE e\.playlistid = \$1 AND \(v\.ispublished OR v\.ownerid = \$2\) ORDER BY e\.position ASC`).
		WithArgs(playlistID, nil).
		WillReturnRows(pgxmock.NewRows([]string{
			"position", "addedat", "id", "ownerid", "videofileurl", "thumbnailurl", "title", "description",
			"duration", "views", "ispublished", "createdat", "updatedat",
		}).
			AddRow(0, now, videoA, ownerID, "vf", "th", "First", "", 1.0, int64(1), true, now, now).
			AddRow(1, now, videoB, ownerID, "vf", "th", "Second", "", 2.0, int64(2), true, now, now))

	detail, err := repository.FindDetail(context.Background(), playlistID, "")
	require.NoError(t, err)
	assert.Equal(t, "chai", detail.Owner.Username)
	require.Len(t, detail.Videos, 2)
	assert.Equal(t, "Second", detail.Videos[1].Video.Title)
}

/*
TestRepository_FindDetailMissing maps no rows to NOT_FOUND without loading entries.
*/
func TestRepository_FindDetailMissing(t *testing.T) {
	repository, mock := newMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM media\.playlist p`).WithArgs(missingID).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := repository.FindDetail(context.Background(), missingID, ownerID)
	require.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.Equal(t, "Playlist not found", apperr.As(err).Message)
}

/*
TestRepository_AddVideo appends after the last position and maps duplicates to CONFLICT.
*/
func TestRepository_AddVideo(t *testing.T) {
	repository, mock := newMockRepository(t)

	mock.ExpectExec(`INSERT INTO media\.playlistvideo \(playlistid, videoid, position, addedat\)\s+SELECT \$1, \$2, COALESCE\(MAX\(position\) \+ 1, 0\), NOW\(\) FROM media\.playlistvideo WHERE playlistid = \$1`).
		WithArgs(playlistID, videoA).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO media\.playlistvideo`).
		WithArgs(playlistID, videoA).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	require.NoError(t, repository.AddVideo(context.Background(), playlistID, videoA))

	err := repository.AddVideo(context.Background(), playlistID, videoA)
	require.True(t, apperr.HasCode(err, apperr.CodeConflict))
	assert.Equal(t, "Video already added to playlist", apperr.As(err).Message)
}

/*
TestRepository_RemoveVideoMissing reports NOT_FOUND when the video is not in the playlist.
*/
func TestRepository_RemoveVideoMissing(t *testing.T) {
	repository, mock := newMockRepository(t)
	mock.ExpectExec(`DELETE FROM media\.playlistvideo WHERE playlistid = \$1 AND videoid = \$2`).
		WithArgs(playlistID, videoB).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repository.RemoveVideo(context.Background(), playlistID, videoB)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestRepository_ListByOwner counts entries per playlist.
*/
func TestRepository_ListByOwner(t *testing.T) {
	repository, mock := newMockRepository(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM media\.playlist p WHERE p\.ownerid = \$1`).
		WithArgs(ownerID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(`\(SELECT COUNT\(\*\) FROM media\.playlistvideo e WHERE e\.playlistid = p\.id\) AS videoscount .* ORDER BY p\.name ASC, p\.id ASC`).
		WithArgs(ownerID, 10, 0).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "ownerid", "name", "description", "createdat", "updatedat", "videoscount",
		}).AddRow(playlistID, ownerID, "Mix", "", now, now, int64(2)))

	page, err := repository.ListByOwner(context.Background(), ownerID, playlist.Sort{By: "name", Type: "asc"}, pagination.New(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Items[0].VideosCount)
}
