// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Querier is the read side of a pool or transaction.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Scanner maps one result row onto T. Column order follows [Pipeline].
type Scanner[T any] func(row pgx.Row) (T, error)

// # Page

// Page is one slice of a list plus its metadata. It serialises as
//
//	{"<label>": [...], "total": n, "page": p, "limit": l, "totalPages": t, "hasNextPage": b, "hasPrevPage": b}
type Page[T any] struct {
	Label string
	Items []T
	pagination.Meta
}

// MarshalJSON flattens the items under Label next to the metadata.
func (page Page[T]) MarshalJSON() ([]byte, error) {
	items := page.Items
	if items == nil {
		items = []T{}
	}

	label := page.Label
	if label == "" {
		label = "items"
	}

	return json.Marshal(map[string]any{
		label:         items,
		"total":       page.Total,
		"page":        page.Page,
		"limit":       page.Limit,
		"totalPages":  page.TotalPages,
		"hasNextPage": page.HasNextPage,
		"hasPrevPage": page.HasPrevPage,
	})
}

// # Paginate

/*
Paginate counts the pipeline's matches, then fetches the requested slice.

The count runs first. When it is zero, or the page starts at or past the
end, the select is skipped and an empty page with accurate metadata comes
back. Any database failure is a FETCH_FAILED.

Parameters:
  - ctx: context.Context
  - db: Querier (pool or tx)
  - pipeline: *Pipeline from [Compose]
  - params: pagination.Params (already clamped)
  - label: string key for the items array
  - scan: Scanner[T]

Returns:
  - *Page[T]: items and metadata
  - error: FETCH_FAILED on any query or scan failure
*/
func Paginate[T any](ctx context.Context, db Querier, pipeline *Pipeline, params pagination.Params, label string, scan Scanner[T]) (*Page[T], error) {
	countSQL, countArgs := pipeline.CountSQL()

	var total int64
	if err := db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, apperr.FetchFailed(fmt.Errorf("pipeline_count_failed: %w", err))
	}

	page := &Page[T]{
		Label: label,
		Items: []T{},
		Meta:  pagination.NewMeta(params, int(total)),
	}
	if total == 0 || int64(params.Offset()) >= total {
		return page, nil
	}

	selectSQL, selectArgs := pipeline.SelectSQL(params.Limit, params.Offset())
	rows, err := db.Query(ctx, selectSQL, selectArgs...)
	if err != nil {
		return nil, apperr.FetchFailed(fmt.Errorf("pipeline_select_failed: %w", err))
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, apperr.FetchFailed(fmt.Errorf("pipeline_scan_failed: %w", err))
		}
		page.Items = append(page.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.FetchFailed(fmt.Errorf("pipeline_rows_failed: %w", err))
	}

	return page, nil
}
