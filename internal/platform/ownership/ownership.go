// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ownership guards mutations of owned resources.

Every update or delete of a comment, tweet, video or playlist goes through
[Guard]: the resource must exist (404 otherwise) and its owner must be the
authenticated actor (403 otherwise). The guard runs before any mutation.
*/
package ownership

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/dberr"
)

// Owned is any resource with a single owning user.
type Owned interface {
	OwnerIdentifier() string
}

// Fetch loads the resource by id. It may return a NOT_FOUND AppError or pgx.ErrNoRows for absence.
type Fetch[T Owned] func(ctx context.Context, id string) (T, error)

// Guard loads resource id and checks that actorID owns it.
//
// resource names the entity in error messages (e.g. "Comment").
func Guard[T Owned](ctx context.Context, resource, id, actorID string, fetch Fetch[T]) (T, error) {
	var zero T

	if strings.TrimSpace(actorID) == "" {
		return zero, apperr.Unauthorized("Authentication required")
	}

	entity, err := fetch(ctx, id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return zero, apperr.NotFound(resource)
		}
		return zero, err
	}

	if !SameID(entity.OwnerIdentifier(), actorID) {
		return zero, apperr.Forbidden("You do not have permission to modify this " + strings.ToLower(resource))
	}

	return entity, nil
}

// SameID compares two identifiers canonically, so differently cased or
// braced renderings of the same UUID are equal.
func SameID(a, b string) bool {
	left, errA := uuid.Parse(strings.TrimSpace(a))
	right, errB := uuid.Parse(strings.TrimSpace(b))
	if errA == nil && errB == nil {
		return left == right
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) && strings.TrimSpace(a) != ""
}
