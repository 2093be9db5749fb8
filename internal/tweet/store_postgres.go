// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tweet

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

type repository struct {
	db postgres.DBTX
}

// NewRepository constructs a PostgreSQL backed tweet store.
func NewRepository(db postgres.DBTX) Repository {
	return &repository{db: db}
}

var table = schema.SocialTweet

var tweetColumns = strings.Join([]string{table.ID, table.OwnerID, table.Content, table.CreatedAt, table.UpdatedAt}, ", ")

func scanTweet(row pgx.Row) (*Tweet, error) {
	t := &Tweet{}
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

func (repository *repository) Create(context context.Context, tweet *Tweet) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $4)`, table.Table, tweetColumns)

	now := time.Now().UTC()
	tweet.CreatedAt = now
	tweet.UpdatedAt = now

	if _, err := repository.db.Exec(context, query, tweet.ID, tweet.OwnerID, tweet.Content, now); err != nil {
		return dberr.WrapAs(err, "postgres_tweet_create_failed", "Owner")
	}
	return nil
}

func (repository *repository) FindByID(context context.Context, id string) (*Tweet, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, tweetColumns, table.Table, table.ID)

	t, err := scanTweet(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapAs(err, "postgres_tweet_find_by_id_failed", "Tweet")
	}
	return t, nil
}

func (repository *repository) List(context context.Context, filter Filter, params pagination.Params) (*pipeline.Page[View], error) {
	account := schema.UserAccount
	like := schema.SocialLike

	var match []pipeline.Eq
	if filter.OwnerID != "" {
		match = append(match, pipeline.Eq{Column: "t." + table.OwnerID, Value: filter.OwnerID})
	}

	composed, err := pipeline.Compose(pipeline.Spec{
		Table:  table.Table,
		Alias:  "t",
		Match:  match,
		Search: pipeline.Search{Columns: []string{"t." + table.Content}, Term: filter.Query},
		Joins: []pipeline.Join{
			pipeline.One(account.Table, "o", "o."+account.ID+" = t."+table.OwnerID,
				pipeline.ColAs("o."+account.ID, "owner_id"),
				pipeline.ColAs("o."+account.Username, "owner_username"),
				pipeline.ColAs("o."+account.FullName, "owner_fullname"),
				pipeline.ColAs("o."+account.AvatarURL, "owner_avatar"),
			),
			pipeline.Count(like.Table, "l", "l."+like.TweetID+" = t."+table.ID, "likescount"),
		},
		Project: []pipeline.Column{
			pipeline.Col("t." + table.ID),
			pipeline.Col("t." + table.Content),
			pipeline.Col("t." + table.CreatedAt),
			pipeline.Col("t." + table.UpdatedAt),
		},
		Sortable: map[string]string{
			"createdAt": "t." + table.CreatedAt,
			"updatedAt": "t." + table.UpdatedAt,
		},
		DefaultSort: "createdAt",
		SortBy:      filter.SortBy,
		SortType:    filter.SortType,
	})
	if err != nil {
		return nil, err
	}

	return pipeline.Paginate(context, repository.db, composed, params, "tweets", func(row pgx.Row) (View, error) {
		var v View
		err := row.Scan(
			&v.ID, &v.Content, &v.CreatedAt, &v.UpdatedAt,
			&v.Owner.ID, &v.Owner.Username, &v.Owner.FullName, &v.Owner.AvatarURL,
			&v.LikesCount,
		)
		return v, err
	})
}

func (repository *repository) Update(context context.Context, id, content string) (*Tweet, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 RETURNING %s`,
		table.Table, table.Content, table.UpdatedAt, table.ID, tweetColumns)

	t, err := scanTweet(repository.db.QueryRow(context, query, id, content))
	if err != nil {
		return nil, dberr.WrapAs(err, "postgres_tweet_update_failed", "Tweet")
	}
	return t, nil
}

func (repository *repository) Delete(context context.Context, id string) (*Tweet, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING %s`, table.Table, table.ID, tweetColumns)

	t, err := scanTweet(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapAs(err, "postgres_tweet_delete_failed", "Tweet")
	}
	return t, nil
}
