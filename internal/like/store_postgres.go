// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/vidtube/internal/platform/database/schema"
	"github.com/taibuivan/vidtube/internal/platform/pipeline"
	"github.com/taibuivan/vidtube/internal/platform/postgres"
	"github.com/taibuivan/vidtube/internal/platform/toggle"
	"github.com/taibuivan/vidtube/pkg/pagination"
	"github.com/taibuivan/vidtube/pkg/uuid"
)

type repository struct {
	db postgres.DBTX
}

// NewRepository constructs a PostgreSQL backed like store.
func NewRepository(db postgres.DBTX) Repository {
	return &repository{db: db}
}

var table = schema.SocialLike

func scanLike(row pgx.Row) (*Like, error) {
	l := &Like{}
	if err := row.Scan(&l.ID, &l.LikedBy, &l.VideoID, &l.CommentID, &l.TweetID, &l.CreatedAt); err != nil {
		return nil, err
	}
	return l, nil
}

func (repository *repository) Toggle(context context.Context, actorID string, target Target, targetID string) (toggle.Result[*Like], error) {
	pair := &toggle.Pair[*Like]{
		DB:       repository.db,
		Table:    table.Table,
		IDColumn: table.ID,
		NewID:    uuid.New,
		Keys: []toggle.Key{
			{Column: table.LikedBy, Value: actorID},
			{Column: target.column(), Value: targetID},
		},
		Returning: []string{table.ID, table.LikedBy, table.VideoID, table.CommentID, table.TweetID, table.CreatedAt},
		Scan:      scanLike,
	}

	return toggle.Toggle(context, "toggle "+string(target)+" like", pair)
}

func (repository *repository) LikedVideos(context context.Context, actorID, sortBy, sortType string, params pagination.Params) (*pipeline.Page[LikedVideo], error) {
	video := schema.MediaVideo
	account := schema.UserAccount

	composed, err := pipeline.Compose(pipeline.Spec{
		Table: table.Table,
		Alias: "l",
		Match: []pipeline.Eq{
			{Column: "l." + table.LikedBy, Value: actorID},
			{Column: "v." + video.IsPublished, Value: true},
		},
		Joins: []pipeline.Join{
			pipeline.One(video.Table, "v", "v."+video.ID+" = l."+table.VideoID,
				pipeline.Col("v."+video.ID),
				pipeline.Col("v."+video.OwnerID),
				pipeline.Col("v."+video.VideoFileURL),
				pipeline.Col("v."+video.ThumbnailURL),
				pipeline.Col("v."+video.Title),
				pipeline.Col("v."+video.Description),
				pipeline.Col("v."+video.Duration),
				pipeline.Col("v."+video.Views),
				pipeline.Col("v."+video.IsPublished),
				pipeline.Col("v."+video.CreatedAt),
				pipeline.Col("v."+video.UpdatedAt),
			),
			pipeline.One(account.Table, "o", "o."+account.ID+" = v."+video.OwnerID,
				pipeline.ColAs("o."+account.ID, "owner_id"),
				pipeline.ColAs("o."+account.Username, "owner_username"),
				pipeline.ColAs("o."+account.FullName, "owner_fullname"),
				pipeline.ColAs("o."+account.AvatarURL, "owner_avatar"),
			),
		},
		Project: []pipeline.Column{
			pipeline.Col("l." + table.ID),
			pipeline.Col("l." + table.CreatedAt),
		},
		Sortable: map[string]string{
			"createdAt": "l." + table.CreatedAt,
			"views":     "v." + video.Views,
			"title":     "v." + video.Title,
		},
		DefaultSort: "createdAt",
		SortBy:      sortBy,
		SortType:    sortType,
	})
	if err != nil {
		return nil, err
	}

	return pipeline.Paginate(context, repository.db, composed, params, "videos", scanLikedVideo)
}

func scanLikedVideo(row pgx.Row) (LikedVideo, error) {
	var l LikedVideo
	v := &l.Video
	err := row.Scan(
		&l.ID,
		&l.LikedAt,
		&v.ID,
		&v.OwnerID,
		&v.VideoFileURL,
		&v.ThumbnailURL,
		&v.Title,
		&v.Description,
		&v.Duration,
		&v.Views,
		&v.IsPublished,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.Owner.ID,
		&v.Owner.Username,
		&v.Owner.FullName,
		&v.Owner.AvatarURL,
	)
	return l, err
}
