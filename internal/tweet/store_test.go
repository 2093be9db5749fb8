// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tweet_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/tweet"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

func newMockRepository(t *testing.T) (tweet.Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return tweet.NewRepository(mock), mock
}

/*
TestRepository_List_AllChannels omits the owner match when no user is given.
*/
func TestRepository_List_AllChannels(t *testing.T) {
	repository, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM social\.tweet t INNER JOIN users\.account o ON o\.id = t\.ownerid$`).
		WithArgs().
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

	page, err := repository.List(context.Background(), tweet.Filter{}, pagination.New(1, 10))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
}

/*
TestRepository_List_ByOwner applies the owner match before the search.
*/
func TestRepository_List_ByOwner(t *testing.T) {
	repository, mock := newMockRepository(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`WHERE t\.ownerid = \$1 AND \(t\.content ILIKE \$2 ESCAPE '\\'\)`).
		WithArgs(ownerID, "%hello%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(`\(SELECT COUNT\(\*\) FROM social\.like l WHERE l\.tweetid = t\.id\) AS likescount FROM social\.tweet t .* ORDER BY t\.updatedat DESC, t\.id DESC`).
		WithArgs(ownerID, "%hello%", 10, 0).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "content", "createdat", "updatedat", "owner_id", "owner_username", "owner_fullname", "owner_avatar", "likescount",
		}).AddRow("t-1", "hello world", now, now, ownerID, "chai", "Chai", "a", int64(2)))

	page, err := repository.List(context.Background(), tweet.Filter{OwnerID: ownerID, Query: "hello", SortBy: "updatedAt"}, pagination.New(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "chai", page.Items[0].Owner.Username)
	assert.Equal(t, int64(2), page.Items[0].LikesCount)
}

/*
TestRepository_List_FetchFailed surfaces store failures as FETCH_FAILED.
*/
func TestRepository_List_FetchFailed(t *testing.T) {
	repository, mock := newMockRepository(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM social\.tweet`).WillReturnError(errors.New("timeout"))

	_, err := repository.List(context.Background(), tweet.Filter{}, pagination.New(1, 10))
	assert.True(t, apperr.HasCode(err, apperr.CodeFetchFailed))
}
