// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

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

// NewRepository constructs a PostgreSQL backed video store.
func NewRepository(db postgres.DBTX) Repository {
	return &repository{db: db}
}

var (
	video   = schema.MediaVideo
	account = schema.UserAccount
)

// videoColumns is the scan order of [scanVideo].
var videoColumns = strings.Join(video.Columns(), ", ")

func scanVideo(row pgx.Row) (*Video, error) {
	v := &Video{}
	err := row.Scan(
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
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// # Read Views

// sortable maps public sort keys onto columns.
var sortable = map[string]string{
	"createdAt": "v." + video.CreatedAt,
	"views":     "v." + video.Views,
	"duration":  "v." + video.Duration,
	"title":     "v." + video.Title,
}

// detailSpec is the shared pipeline behind List and FindDetail.
func detailSpec(match []pipeline.Eq, search, sortBy, sortType string) pipeline.Spec {
	like := schema.SocialLike
	comment := schema.SocialComment

	project := make([]pipeline.Column, 0, len(video.Columns()))
	for _, column := range video.Columns() {
		project = append(project, pipeline.Col("v."+column))
	}

	return pipeline.Spec{
		Table:  video.Table,
		Alias:  "v",
		Match:  match,
		Search: pipeline.Search{Columns: []string{"v." + video.Title}, Term: search},
		Joins: []pipeline.Join{
			pipeline.One(account.Table, "o", "o."+account.ID+" = v."+video.OwnerID,
				pipeline.ColAs("o."+account.ID, "owner_id"),
				pipeline.ColAs("o."+account.Username, "owner_username"),
				pipeline.ColAs("o."+account.FullName, "owner_fullname"),
				pipeline.ColAs("o."+account.AvatarURL, "owner_avatar"),
			),
			pipeline.Count(like.Table, "l", "l."+like.VideoID+" = v."+video.ID, "likescount"),
			pipeline.Count(comment.Table, "c", "c."+comment.VideoID+" = v."+video.ID, "commentscount"),
		},
		Project:     project,
		Sortable:    sortable,
		DefaultSort: "createdAt",
		SortBy:      sortBy,
		SortType:    sortType,
	}
}

func scanDetail(row pgx.Row) (Detail, error) {
	var d Detail
	err := row.Scan(
		&d.ID,
		&d.OwnerID,
		&d.VideoFileURL,
		&d.ThumbnailURL,
		&d.Title,
		&d.Description,
		&d.Duration,
		&d.Views,
		&d.IsPublished,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.Owner.ID,
		&d.Owner.Username,
		&d.Owner.FullName,
		&d.Owner.AvatarURL,
		&d.LikesCount,
		&d.CommentsCount,
	)
	return d, err
}

func (repository *repository) List(context context.Context, filter Filter, params pagination.Params) (*pipeline.Page[Detail], error) {
	var match []pipeline.Eq
	if filter.OwnerID != "" {
		match = append(match, pipeline.Eq{Column: "v." + video.OwnerID, Value: filter.OwnerID})
	}
	if !filter.IncludeUnpublished {
		match = append(match, pipeline.Eq{Column: "v." + video.IsPublished, Value: true})
	}

	composed, err := pipeline.Compose(detailSpec(match, filter.Query, filter.SortBy, filter.SortType))
	if err != nil {
		return nil, err
	}

	return pipeline.Paginate(context, repository.db, composed, params, "videos", scanDetail)
}

func (repository *repository) FindDetail(context context.Context, id string) (*Detail, error) {
	composed, err := pipeline.Compose(detailSpec(
		[]pipeline.Eq{{Column: "v." + video.ID, Value: id}}, "", "", "",
	))
	if err != nil {
		return nil, err
	}

	query, args := composed.SelectSQL(1, 0)
	detail, err := scanDetail(repository.db.QueryRow(context, query, args...))
	if err != nil {
		return nil, dberr.WrapAs(err, "postgres_video_find_detail_failed", "Video")
	}
	return &detail, nil
}

// # Writes

func (repository *repository) Create(context context.Context, v *Video) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		video.Table, videoColumns,
	)

	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		v.ID,
		v.OwnerID,
		v.VideoFileURL,
		v.ThumbnailURL,
		v.Title,
		v.Description,
		v.Duration,
		v.Views,
		v.IsPublished,
		now,
	)
	if err != nil {
		return dberr.WrapAs(err, "postgres_video_create_failed", "Owner")
	}
	return nil
}

func (repository *repository) FindByID(context context.Context, id string) (*Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, videoColumns, video.Table, video.ID)

	v, err := scanVideo(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapAs(err, "postgres_video_find_by_id_failed", "Video")
	}
	return v, nil
}

func (repository *repository) Update(context context.Context, v *Video) (*Video, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		video.Table, video.Title, video.Description, video.ThumbnailURL, video.UpdatedAt,
		video.ID, videoColumns,
	)

	updated, err := scanVideo(repository.db.QueryRow(context, query, v.ID, v.Title, v.Description, v.ThumbnailURL))
	if err != nil {
		return nil, dberr.WrapAs(err, "postgres_video_update_failed", "Video")
	}
	return updated, nil
}

func (repository *repository) TogglePublished(context context.Context, id string) (*Video, error) {
	query := fmt.Sprintf(`
		UPDATE %[1]s SET %[2]s = NOT %[2]s, %[3]s = NOW()
		WHERE %[4]s = $1
		RETURNING %[5]s`,
		video.Table, video.IsPublished, video.UpdatedAt, video.ID, videoColumns,
	)

	updated, err := scanVideo(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapAs(err, "postgres_video_toggle_published_failed", "Video")
	}
	return updated, nil
}

func (repository *repository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, video.Table, video.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.WrapAs(err, "postgres_video_delete_failed", "Video")
	}
	if tag.RowsAffected() == 0 {
		return dberr.WrapAs(pgx.ErrNoRows, "postgres_video_delete_failed", "Video")
	}
	return nil
}

func (repository *repository) IncrementViews(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %[1]s SET %[2]s = %[2]s + 1 WHERE %[3]s = $1`, video.Table, video.Views, video.ID)

	if _, err := repository.db.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "postgres_video_increment_views_failed")
	}
	return nil
}
