// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr maps pgx and Postgres errors onto [apperr] kinds.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
)

// SQLSTATE codes the stores care about.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
	invalidTextRep      = "22P02"
)

// Wrap classifies a database error.
//
//   - pgx.ErrNoRows: NOT_FOUND for resource "Resource"
//   - 23505: CONFLICT
//   - 23503: NOT_FOUND (the referenced row is gone)
//   - 22P02 / 23514: VALIDATION_ERROR
//   - anything else: INTERNAL_ERROR with the action and cause kept for logs
func Wrap(err error, action string) error {
	return WrapAs(err, action, "Resource")
}

// WrapAs is [Wrap] with the resource name used for NOT_FOUND messages.
func WrapAs(err error, action, resource string) error {
	if err == nil {
		return nil
	}

	// Already classified upstream.
	if apperr.IsAppError(err) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case uniqueViolation:
			conflict := apperr.Conflict(resource + " already exists")
			conflict.Cause = err
			return conflict
		case foreignKeyViolation:
			missing := apperr.NotFound(resource)
			missing.Cause = err
			return missing
		case invalidTextRep, checkViolation:
			invalid := apperr.ValidationError("Invalid " + resource + " identifier")
			invalid.Cause = err
			return invalid
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsNotFound reports whether err is a NOT_FOUND kind or a bare pgx.ErrNoRows.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || apperr.HasCode(err, apperr.CodeNotFound)
}
