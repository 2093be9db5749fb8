// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package toggle flips the presence of an (actor, target) relation record.

A toggle removes the record when it exists and creates it when it does not.
Both directions are single atomic statements guarded by a unique index on the
pair, so two concurrent toggles by the same actor can never leave duplicates:

	DELETE ... RETURNING                      -> row came back: Deactivated
	INSERT ... ON CONFLICT DO NOTHING RETURNING -> row came back: Activated
	SELECT                                    -> a concurrent insert won: Activated

Likes (video, comment and tweet) and subscriptions are built on it.
*/
package toggle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
)

// State is the relation state after a toggle.
type State string

const (
	Activated   State = "activated"
	Deactivated State = "deactivated"
)

// maxAttempts bounds the delete/insert cycle under contention.
const maxAttempts = 3

// Result reports the new state and the record that was removed or created.
type Result[T any] struct {
	State  State
	Record T
}

// Active reports whether the relation now exists.
func (result Result[T]) Active() bool { return result.State == Activated }

// Relation is one (actor, target) pair. Each method reports whether a row was affected.
type Relation[T any] interface {
	// DeleteIfPresent removes the record and returns it.
	DeleteIfPresent(ctx context.Context) (T, bool, error)
	// InsertIfAbsent creates the record unless one already exists.
	InsertIfAbsent(ctx context.Context) (T, bool, error)
	// Find returns the current record.
	Find(ctx context.Context) (T, bool, error)
}

// Toggle flips relation. Store failures surface as MUTATION_FAILED.
func Toggle[T any](ctx context.Context, action string, relation Relation[T]) (Result[T], error) {
	var zero Result[T]

	for attempt := 0; attempt < maxAttempts; attempt++ {
		record, deleted, err := relation.DeleteIfPresent(ctx)
		if err != nil {
			return zero, apperr.MutationFailed(action, err)
		}
		if deleted {
			return Result[T]{State: Deactivated, Record: record}, nil
		}

		record, inserted, err := relation.InsertIfAbsent(ctx)
		if err != nil {
			return zero, apperr.MutationFailed(action, err)
		}
		if inserted {
			return Result[T]{State: Activated, Record: record}, nil
		}

		// Lost the insert race: the other request's record stands.
		record, found, err := relation.Find(ctx)
		if err != nil {
			return zero, apperr.MutationFailed(action, err)
		}
		if found {
			return Result[T]{State: Activated, Record: record}, nil
		}
	}

	return zero, apperr.MutationFailed(action, fmt.Errorf("toggle_contended: %d attempts", maxAttempts))
}

// # Postgres

// Querier is the read side of a pool or transaction.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Key is one column of the pair's unique key.
type Key struct {
	Column string
	Value  any
}

// Pair is a [Relation] over a table whose rows are identified by Keys.
type Pair[T any] struct {
	DB    Querier
	Table string
	// IDColumn and NewID fill the primary key on insert.
	IDColumn string
	NewID    func() string
	Keys     []Key
	// Returning is the column list handed to Scan.
	Returning []string
	Scan      func(row pgx.Row) (T, error)
}

// DeleteIfPresent implements [Relation].
func (pair *Pair[T]) DeleteIfPresent(ctx context.Context) (T, bool, error) {
	where, args := pair.where()
	query := fmt.Sprintf("DELETE FROM %s WHERE %s RETURNING %s", pair.Table, where, strings.Join(pair.Returning, ", "))
	return pair.scanOne(ctx, query, args)
}

// InsertIfAbsent implements [Relation].
func (pair *Pair[T]) InsertIfAbsent(ctx context.Context) (T, bool, error) {
	columns := []string{pair.IDColumn}
	args := []any{pair.NewID()}
	for _, key := range pair.Keys {
		columns = append(columns, key.Column)
		args = append(args, key.Value)
	}

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING RETURNING %s",
		pair.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "), strings.Join(pair.Returning, ", "))
	return pair.scanOne(ctx, query, args)
}

// Find implements [Relation].
func (pair *Pair[T]) Find(ctx context.Context) (T, bool, error) {
	where, args := pair.where()
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s", strings.Join(pair.Returning, ", "), pair.Table, where)
	return pair.scanOne(ctx, query, args)
}

func (pair *Pair[T]) where() (string, []any) {
	clauses := make([]string, len(pair.Keys))
	args := make([]any, len(pair.Keys))
	for i, key := range pair.Keys {
		clauses[i] = fmt.Sprintf("%s = $%d", key.Column, i+1)
		args[i] = key.Value
	}
	return strings.Join(clauses, " AND "), args
}

func (pair *Pair[T]) scanOne(ctx context.Context, query string, args []any) (T, bool, error) {
	record, err := pair.Scan(pair.DB.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, err
	}
	return record, true, nil
}
