// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/database/schema"
	"github.com/taibuivan/vidtube/internal/platform/dberr"
	"github.com/taibuivan/vidtube/internal/platform/pipeline"
	"github.com/taibuivan/vidtube/internal/platform/postgres"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

type repository struct {
	db postgres.DBTX
}

// NewRepository constructs a PostgreSQL backed playlist store.
func NewRepository(db postgres.DBTX) Repository {
	return &repository{db: db}
}

var (
	table   = schema.MediaPlaylist
	entries = schema.MediaPlaylistVideo
)

var playlistColumns = []string{table.ID, table.OwnerID, table.Name, table.Description, table.CreatedAt, table.UpdatedAt}

func prefixed(alias string, columns []string) string {
	out := make([]string, len(columns))
	for i, column := range columns {
		out[i] = alias + "." + column
	}
	return strings.Join(out, ", ")
}

func scanPlaylist(row pgx.Row) (*Playlist, error) {
	p := &Playlist{}
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// # Playlists

func (repository *repository) Create(context context.Context, playlist *Playlist) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $5)`,
		table.Table, strings.Join(playlistColumns, ", "))

	now := time.Now().UTC()
	playlist.CreatedAt = now
	playlist.UpdatedAt = now

	if _, err := repository.db.Exec(context, query, playlist.ID, playlist.OwnerID, playlist.Name, playlist.Description, now); err != nil {
		return dberr.WrapAs(err, "postgres_playlist_create_failed", "Owner")
	}
	return nil
}

func (repository *repository) FindByID(context context.Context, id string) (*Playlist, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, strings.Join(playlistColumns, ", "), table.Table, table.ID)

	p, err := scanPlaylist(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapAs(err, "postgres_playlist_find_by_id_failed", "Playlist")
	}
	return p, nil
}

func (repository *repository) FindDetail(context context.Context, id, viewerID string) (*Detail, error) {
	account := schema.UserAccount
	video := schema.MediaVideo

	headQuery := fmt.Sprintf(`SELECT %s, o.%s, o.%s, o.%s, o.%s FROM %s p INNER JOIN %s o ON o.%s = p.%s WHERE p.%s = $1`,
		prefixed("p", playlistColumns),
		account.ID, account.Username, account.FullName, account.AvatarURL,
		table.Table, account.Table, account.ID, table.OwnerID, table.ID)

	entriesQuery := fmt.Sprintf(`SELECT e.%s, e.%s, %s FROM %s e INNER JOIN %s v ON v.%s = e.%s
		WHERE e.%s = $1 AND (v.%s OR v.%s = $2) ORDER BY e.%s ASC, e.%s ASC`,
		entries.Position, entries.AddedAt, prefixed("v", video.Columns()),
		entries.Table, video.Table, video.ID, entries.VideoID,
		entries.PlaylistID, video.IsPublished, video.OwnerID, entries.Position, entries.AddedAt)

	var viewer any
	if viewerID != "" {
		viewer = viewerID
	}

	detail := &Detail{Videos: []Entry{}}

	// Head and entries are read in one transaction so a concurrent delete cannot split them.
	err := postgres.InTx(context, repository.db, func(tx pgx.Tx) error {

		// ── 1. Playlist and owner ──
		p := &detail.Playlist
		err := tx.QueryRow(context, headQuery, id).Scan(
			&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt,
			&detail.Owner.ID, &detail.Owner.Username, &detail.Owner.FullName, &detail.Owner.AvatarURL,
		)
		if err != nil {
			return dberr.WrapAs(err, "postgres_playlist_find_detail_failed", "Playlist")
		}

		// ── 2. Entries in order ──
		rows, err := tx.Query(context, entriesQuery, id, viewer)
		if err != nil {
			return apperr.FetchFailed(fmt.Errorf("postgres_playlist_entries_failed: %w", err))
		}
		defer rows.Close()

		for rows.Next() {
			var entry Entry
			v := &entry.Video
			if err := rows.Scan(
				&entry.Position, &entry.AddedAt,
				&v.ID, &v.OwnerID, &v.VideoFileURL, &v.ThumbnailURL, &v.Title, &v.Description,
				&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
			); err != nil {
				return apperr.FetchFailed(fmt.Errorf("postgres_playlist_entries_scan_failed: %w", err))
			}
			detail.Videos = append(detail.Videos, entry)
		}
		if err := rows.Err(); err != nil {
			return apperr.FetchFailed(fmt.Errorf("postgres_playlist_entries_failed: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, apperr.FetchFailed(err)
	}

	return detail, nil
}

func (repository *repository) ListByOwner(context context.Context, ownerID string, sort Sort, params pagination.Params) (*pipeline.Page[Summary], error) {
	project := make([]pipeline.Column, len(playlistColumns))
	for i, column := range playlistColumns {
		project[i] = pipeline.Col("p." + column)
	}

	composed, err := pipeline.Compose(pipeline.Spec{
		Table:   table.Table,
		Alias:   "p",
		Match:   []pipeline.Eq{{Column: "p." + table.OwnerID, Value: ownerID}},
		Joins:   []pipeline.Join{pipeline.Count(entries.Table, "e", "e."+entries.PlaylistID+" = p."+table.ID, "videoscount")},
		Project: project,
		Sortable: map[string]string{
			"createdAt": "p." + table.CreatedAt,
			"updatedAt": "p." + table.UpdatedAt,
			"name":      "p." + table.Name,
		},
		DefaultSort: "createdAt",
		SortBy:      sort.By,
		SortType:    sort.Type,
	})
	if err != nil {
		return nil, err
	}

	return pipeline.Paginate(context, repository.db, composed, params, "playlists", func(row pgx.Row) (Summary, error) {
		var s Summary
		p := &s.Playlist
		err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt, &s.VideosCount)
		return s, err
	})
}

func (repository *repository) Update(context context.Context, playlist *Playlist) (*Playlist, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = NOW() WHERE %s = $1 RETURNING %s`,
		table.Table, table.Name, table.Description, table.UpdatedAt, table.ID, strings.Join(playlistColumns, ", "))

	p, err := scanPlaylist(repository.db.QueryRow(context, query, playlist.ID, playlist.Name, playlist.Description))
	if err != nil {
		return nil, dberr.WrapAs(err, "postgres_playlist_update_failed", "Playlist")
	}
	return p, nil
}

func (repository *repository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.WrapAs(err, "postgres_playlist_delete_failed", "Playlist")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Playlist")
	}
	return nil
}

// # Entries

func (repository *repository) AddVideo(context context.Context, playlistID, videoID string) error {
	query := fmt.Sprintf(`INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s)
		SELECT $1, $2, COALESCE(MAX(%[4]s) + 1, 0), NOW() FROM %[1]s WHERE %[2]s = $1`,
		entries.Table, entries.PlaylistID, entries.VideoID, entries.Position, entries.AddedAt)

	if _, err := repository.db.Exec(context, query, playlistID, videoID); err != nil {
		wrapped := dberr.WrapAs(err, "postgres_playlist_add_video_failed", "Video")
		if apperr.HasCode(wrapped, apperr.CodeConflict) {
			conflict := apperr.Conflict("Video already added to playlist")
			conflict.Cause = err
			return conflict
		}
		return wrapped
	}
	return nil
}

func (repository *repository) RemoveVideo(context context.Context, playlistID, videoID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, entries.Table, entries.PlaylistID, entries.VideoID)

	tag, err := repository.db.Exec(context, query, playlistID, videoID)
	if err != nil {
		return dberr.WrapAs(err, "postgres_playlist_remove_video_failed", "Video")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Video in playlist")
	}
	return nil
}
