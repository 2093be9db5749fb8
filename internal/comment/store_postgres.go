// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

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

// NewRepository constructs a PostgreSQL backed comment store.
func NewRepository(db postgres.DBTX) Repository {
	return &repository{db: db}
}

var table = schema.SocialComment

var commentColumns = strings.Join([]string{
	table.ID, table.VideoID, table.OwnerID, table.Content, table.CreatedAt, table.UpdatedAt,
}, ", ")

func scanComment(row pgx.Row) (*Comment, error) {
	c := &Comment{}
	if err := row.Scan(&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (repository *repository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $5)`, table.Table, commentColumns)

	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	if _, err := repository.db.Exec(context, query, comment.ID, comment.VideoID, comment.OwnerID, comment.Content, now); err != nil {
		return dberr.WrapAs(err, "postgres_comment_create_failed", "Video")
	}
	return nil
}

func (repository *repository) FindByID(context context.Context, id string) (*Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, commentColumns, table.Table, table.ID)

	c, err := scanComment(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapAs(err, "postgres_comment_find_by_id_failed", "Comment")
	}
	return c, nil
}

func (repository *repository) List(context context.Context, query ListQuery, params pagination.Params) (*pipeline.Page[View], error) {
	video := schema.MediaVideo
	account := schema.UserAccount
	like := schema.SocialLike

	composed, err := pipeline.Compose(pipeline.Spec{
		Table:  table.Table,
		Alias:  "c",
		Match:  []pipeline.Eq{{Column: "c." + table.VideoID, Value: query.VideoID}},
		Search: pipeline.Search{Columns: []string{"c." + table.Content}, Term: query.Query},
		Joins: []pipeline.Join{
			pipeline.One(account.Table, "o", "o."+account.ID+" = c."+table.OwnerID,
				pipeline.ColAs("o."+account.ID, "owner_id"),
				pipeline.ColAs("o."+account.Username, "owner_username"),
				pipeline.ColAs("o."+account.FullName, "owner_fullname"),
				pipeline.ColAs("o."+account.AvatarURL, "owner_avatar"),
			),
			pipeline.One(video.Table, "v", "v."+video.ID+" = c."+table.VideoID,
				pipeline.ColAs("v."+video.ID, "video_id"),
				pipeline.ColAs("v."+video.VideoFileURL, "video_file"),
				pipeline.ColAs("v."+video.ThumbnailURL, "video_thumbnail"),
				pipeline.ColAs("v."+video.Title, "video_title"),
				pipeline.ColAs("v."+video.Description, "video_description"),
				pipeline.ColAs("v."+video.Duration, "video_duration"),
				pipeline.ColAs("v."+video.Views, "video_views"),
				pipeline.ColAs("v."+video.IsPublished, "video_ispublished"),
			),
			pipeline.Count(like.Table, "l", "l."+like.CommentID+" = c."+table.ID, "likescount"),
		},
		Project: []pipeline.Column{
			pipeline.Col("c." + table.ID),
			pipeline.Col("c." + table.Content),
			pipeline.Col("c." + table.CreatedAt),
			pipeline.Col("c." + table.UpdatedAt),
		},
		Sortable: map[string]string{
			"createdAt": "c." + table.CreatedAt,
			"updatedAt": "c." + table.UpdatedAt,
		},
		DefaultSort: "createdAt",
		SortBy:      query.SortBy,
		SortType:    query.SortType,
	})
	if err != nil {
		return nil, err
	}

	return pipeline.Paginate(context, repository.db, composed, params, "comments", scanView)
}

func scanView(row pgx.Row) (View, error) {
	var v View
	err := row.Scan(
		&v.ID,
		&v.Content,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.Owner.ID,
		&v.Owner.Username,
		&v.Owner.FullName,
		&v.Owner.AvatarURL,
		&v.Video.ID,
		&v.Video.VideoFileURL,
		&v.Video.ThumbnailURL,
		&v.Video.Title,
		&v.Video.Description,
		&v.Video.Duration,
		&v.Video.Views,
		&v.Video.IsPublished,
		&v.LikesCount,
	)
	return v, err
}

func (repository *repository) Update(context context.Context, id, content string) (*Comment, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 RETURNING %s`,
		table.Table, table.Content, table.UpdatedAt, table.ID, commentColumns)

	c, err := scanComment(repository.db.QueryRow(context, query, id, content))
	if err != nil {
		return nil, dberr.WrapAs(err, "postgres_comment_update_failed", "Comment")
	}
	return c, nil
}

func (repository *repository) Delete(context context.Context, id string) (*Comment, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING %s`, table.Table, table.ID, commentColumns)

	c, err := scanComment(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapAs(err, "postgres_comment_delete_failed", "Comment")
	}
	return c, nil
}
