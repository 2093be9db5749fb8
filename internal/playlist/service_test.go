// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/pipeline"
	"github.com/taibuivan/vidtube/internal/playlist"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

const (
	ownerID    = "0191d5a0-0000-7000-8000-000000000001"
	strangerID = "0191d5a0-0000-7000-8000-000000000002"
	videoA     = "0191d5a0-0000-7000-8000-0000000000a1"
	videoB     = "0191d5a0-0000-7000-8000-0000000000a2"
	draftID    = "0191d5a0-0000-7000-8000-0000000000a3"
	missingID  = "0191d5a0-0000-7000-8000-0000000000ff"
)

// # Fakes

type memoryRepository struct {
	mu        sync.Mutex
	playlists map[string]*playlist.Playlist
	videos    map[string][]string
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{playlists: map[string]*playlist.Playlist{}, videos: map[string][]string{}}
}

func (repository *memoryRepository) Create(_ context.Context, p *playlist.Playlist) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	copied := *p
	repository.playlists[p.ID] = &copied
	return nil
}

func (repository *memoryRepository) FindByID(_ context.Context, id string) (*playlist.Playlist, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	p, ok := repository.playlists[id]
	if !ok {
		return nil, apperr.NotFound("Playlist")
	}
	copied := *p
	return &copied, nil
}

func (repository *memoryRepository) FindDetail(context context.Context, id, _ string) (*playlist.Detail, error) {
	p, err := repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	repository.mu.Lock()
	defer repository.mu.Unlock()
	detail := &playlist.Detail{Playlist: *p, Videos: []playlist.Entry{}}
	for position, videoID := range repository.videos[id] {
		entry := playlist.Entry{Position: position}
		entry.Video.ID = videoID
		detail.Videos = append(detail.Videos, entry)
	}
	return detail, nil
}

func (repository *memoryRepository) ListByOwner(_ context.Context, _ string, _ playlist.Sort, params pagination.Params) (*pipeline.Page[playlist.Summary], error) {
	return &pipeline.Page[playlist.Summary]{Label: "playlists", Meta: pagination.NewMeta(params, 0)}, nil
}

func (repository *memoryRepository) Update(_ context.Context, p *playlist.Playlist) (*playlist.Playlist, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	copied := *p
	repository.playlists[p.ID] = &copied
	return &copied, nil
}

func (repository *memoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	delete(repository.playlists, id)
	delete(repository.videos, id)
	return nil
}

func (repository *memoryRepository) AddVideo(_ context.Context, playlistID, videoID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if slices.Contains(repository.videos[playlistID], videoID) {
		return apperr.Conflict("Video already added to playlist")
	}
	repository.videos[playlistID] = append(repository.videos[playlistID], videoID)
	return nil
}

func (repository *memoryRepository) RemoveVideo(_ context.Context, playlistID, videoID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	index := slices.Index(repository.videos[playlistID], videoID)
	if index < 0 {
		return apperr.NotFound("Video in playlist")
	}
	repository.videos[playlistID] = slices.Delete(repository.videos[playlistID], index, index+1)
	return nil
}

type known map[string]bool

func (ids known) Exists(_ context.Context, id string) error {
	if !ids[id] {
		return apperr.NotFound("Resource")
	}
	return nil
}

// videoOwners maps a video id to its owner when the video is a draft, or to "" when published.
type videoOwners map[string]string

func (videos videoOwners) Visible(_ context.Context, id, viewerID string) error {
	draftOwner, ok := videos[id]
	if !ok || (draftOwner != "" && draftOwner != viewerID) {
		return apperr.NotFound("Video")
	}
	return nil
}

type fixture struct {
	repository *memoryRepository
	service    *playlist.Service
}

func newFixture() *fixture {
	repository := newMemoryRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		repository: repository,
		service: playlist.NewService(repository,
			known{ownerID: true, strangerID: true},
			videoOwners{videoA: "", videoB: "", draftID: strangerID},
			logger,
		),
	}
}

func (f *fixture) create(t *testing.T) *playlist.Playlist {
	t.Helper()
	p, err := f.service.Create(context.Background(), ownerID, playlist.Input{Name: " Favourites ", Description: "best"})
	require.NoError(t, err)
	return p
}

func entryIDs(detail *playlist.Detail) []string {
	ids := make([]string, len(detail.Videos))
	for i, entry := range detail.Videos {
		ids[i] = entry.Video.ID
	}
	return ids
}

/*
TestCreate validates the name and description.
*/
func TestCreate(t *testing.T) {
	tests := []struct {
		name    string
		input   playlist.Input
		wantErr bool
	}{
		{"valid", playlist.Input{Name: "Mix"}, false},
		{"blank_name", playlist.Input{Name: "  "}, true},
		{"long_name", playlist.Input{Name: strings.Repeat("n", 101)}, true},
		{"long_description", playlist.Input{Name: "Mix", Description: strings.Repeat("d", 501)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.service.Create(context.Background(), ownerID, tt.input)
			if tt.wantErr {
				assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
				return
			}
			require.NoError(t, err)
		})
	}
}

/*
TestEntries keeps insertion order, rejects duplicates and reports missing entries.
*/
func TestEntries(t *testing.T) {
	f := newFixture()
	p := f.create(t)
	ctx := context.Background()

	_, err := f.service.AddVideo(ctx, p.ID, videoA, ownerID)
	require.NoError(t, err)
	detail, err := f.service.AddVideo(ctx, p.ID, videoB, ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{videoA, videoB}, entryIDs(detail))

	_, err = f.service.AddVideo(ctx, p.ID, videoA, ownerID)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	_, err = f.service.AddVideo(ctx, p.ID, missingID, ownerID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = f.service.AddVideo(ctx, p.ID, draftID, ownerID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound), "another user's draft")

	detail, err = f.service.RemoveVideo(ctx, p.ID, videoA, ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{videoB}, entryIDs(detail))

	_, err = f.service.RemoveVideo(ctx, p.ID, videoA, ownerID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestGuarded refuses every mutation by someone other than the owner.
*/
func TestGuarded(t *testing.T) {
	f := newFixture()
	p := f.create(t)
	ctx := context.Background()

	_, err := f.service.Update(ctx, p.ID, strangerID, playlist.Input{Name: "Mine now"})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	assert.True(t, apperr.HasCode(f.service.Delete(ctx, p.ID, strangerID), apperr.CodeForbidden))

	_, err = f.service.AddVideo(ctx, p.ID, videoA, strangerID)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	_, err = f.service.RemoveVideo(ctx, p.ID, videoA, strangerID)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	assert.Equal(t, "Favourites", f.repository.playlists[p.ID].Name)
	assert.Empty(t, f.repository.videos[p.ID])
}

/*
TestUpdateAndDelete_Owner succeeds for the owner.
*/
func TestUpdateAndDelete_Owner(t *testing.T) {
	f := newFixture()
	p := f.create(t)
	ctx := context.Background()

	updated, err := f.service.Update(ctx, p.ID, ownerID, playlist.Input{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Empty(t, updated.Description)

	require.NoError(t, f.service.Delete(ctx, p.ID, ownerID))
	_, err = f.service.Get(ctx, p.ID, "")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestListByUser requires the user to exist.
*/
func TestListByUser(t *testing.T) {
	f := newFixture()

	_, err := f.service.ListByUser(context.Background(), missingID, playlist.Sort{}, pagination.New(1, 10))
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	page, err := f.service.ListByUser(context.Background(), ownerID, playlist.Sort{}, pagination.New(1, 10))
	require.NoError(t, err)
	assert.Equal(t, "playlists", page.Label)
}
