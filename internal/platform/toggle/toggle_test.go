// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package toggle_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/toggle"
)

// memoryTable emulates a table with a unique (actor, target) index.
type memoryTable struct {
	mu   sync.Mutex
	rows map[string]string
	seq  int
}

type memoryRelation struct {
	table *memoryTable
	key   string

	// raceOnInsert simulates a concurrent insert landing between our delete and insert.
	raceOnInsert bool
}

func (relation *memoryRelation) DeleteIfPresent(context.Context) (string, bool, error) {
	relation.table.mu.Lock()
	defer relation.table.mu.Unlock()
	id, ok := relation.table.rows[relation.key]
	if ok {
		delete(relation.table.rows, relation.key)
	}
	return id, ok, nil
}

func (relation *memoryRelation) InsertIfAbsent(context.Context) (string, bool, error) {
	relation.table.mu.Lock()
	defer relation.table.mu.Unlock()
	if relation.raceOnInsert {
		relation.raceOnInsert = false
		relation.table.rows[relation.key] = "winner"
	}
	if _, exists := relation.table.rows[relation.key]; exists {
		return "", false, nil
	}
	relation.table.seq++
	id := relation.key + "#" + string(rune('0'+relation.table.seq))
	relation.table.rows[relation.key] = id
	return id, true, nil
}

func (relation *memoryRelation) Find(context.Context) (string, bool, error) {
	relation.table.mu.Lock()
	defer relation.table.mu.Unlock()
	id, ok := relation.table.rows[relation.key]
	return id, ok, nil
}

/*
TestToggle_DoubleToggleRestores verifies that two toggles return to the original state.
*/
func TestToggle_DoubleToggleRestores(t *testing.T) {
	table := &memoryTable{rows: map[string]string{}}
	relation := &memoryRelation{table: table, key: "u1:v1"}

	first, err := toggle.Toggle[string](context.Background(), "toggle like", relation)
	require.NoError(t, err)
	assert.Equal(t, toggle.Activated, first.State)
	assert.True(t, first.Active())
	assert.Len(t, table.rows, 1)

	second, err := toggle.Toggle[string](context.Background(), "toggle like", relation)
	require.NoError(t, err)
	assert.Equal(t, toggle.Deactivated, second.State)
	assert.Equal(t, first.Record, second.Record)
	assert.Empty(t, table.rows)
}

/*
TestToggle_LostInsertRace resolves a unique-index conflict as Activated with the winner's record.
*/
func TestToggle_LostInsertRace(t *testing.T) {
	table := &memoryTable{rows: map[string]string{}}
	relation := &memoryRelation{table: table, key: "u1:v1", raceOnInsert: true}

	result, err := toggle.Toggle[string](context.Background(), "toggle like", relation)
	require.NoError(t, err)
	assert.Equal(t, toggle.Activated, result.State)
	assert.Equal(t, "winner", result.Record)
	assert.Len(t, table.rows, 1)
}

/*
TestToggle_Concurrent never leaves more than one record per pair.
*/
func TestToggle_Concurrent(t *testing.T) {
	table := &memoryTable{rows: map[string]string{}}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := toggle.Toggle[string](context.Background(), "toggle like", &memoryRelation{table: table, key: "u1:v1"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, len(table.rows), 1)
}

type failingRelation struct{ err error }

func (relation failingRelation) DeleteIfPresent(context.Context) (string, bool, error) {
	return "", false, relation.err
}
func (relation failingRelation) InsertIfAbsent(context.Context) (string, bool, error) {
	return "", false, nil
}
func (relation failingRelation) Find(context.Context) (string, bool, error) { return "", false, nil }

/*
TestToggle_StoreFailure surfaces store errors as MUTATION_FAILED.
*/
func TestToggle_StoreFailure(t *testing.T) {
	_, err := toggle.Toggle[string](context.Background(), "toggle like", failingRelation{err: errors.New("connection refused")})
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeMutationFailed))
	assert.Equal(t, "Failed to toggle like", err.Error())
}

func newPair(db toggle.Querier) *toggle.Pair[string] {
	return &toggle.Pair[string]{
		DB:        db,
		Table:     "social.like",
		IDColumn:  "id",
		NewID:     func() string { return "like-1" },
		Keys:      []toggle.Key{{Column: "likedby", Value: "u1"}, {Column: "videoid", Value: "v1"}},
		Returning: []string{"id"},
		Scan: func(row pgx.Row) (string, error) {
			var id string
			err := row.Scan(&id)
			return id, err
		},
	}
}

/*
TestPair_SQL drives the Postgres relation through both toggle directions.
*/
func TestPair_SQL(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// Absent -> Activated.
	mock.ExpectQuery(`DELETE FROM social\.like WHERE likedby = \$1 AND videoid = \$2 RETURNING id`).
		WithArgs("u1", "v1").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO social\.like \(id, likedby, videoid\) VALUES \(\$1, \$2, \$3\) ON CONFLICT DO NOTHING RETURNING id`).
		WithArgs("like-1", "u1", "v1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("like-1"))

	// Present -> Deactivated.
	mock.ExpectQuery(`DELETE FROM social\.like`).
		WithArgs("u1", "v1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("like-1"))

	pair := newPair(mock)

	result, err := toggle.Toggle[string](context.Background(), "toggle like", pair)
	require.NoError(t, err)
	assert.Equal(t, toggle.Activated, result.State)

	result, err = toggle.Toggle[string](context.Background(), "toggle like", pair)
	require.NoError(t, err)
	assert.Equal(t, toggle.Deactivated, result.State)
	assert.Equal(t, "like-1", result.Record)

	assert.NoError(t, mock.ExpectationsWereMet())
}
