// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like_test

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/like"
	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/pipeline"
	"github.com/taibuivan/vidtube/internal/platform/toggle"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

const (
	actorID   = "0191d5a0-0000-7000-8000-000000000001"
	otherID   = "0191d5a0-0000-7000-8000-000000000002"
	draftID   = "0191d5a0-0000-7000-8000-0000000000a2"
	videoID   = "0191d5a0-0000-7000-8000-0000000000a1"
	commentID = "0191d5a0-0000-7000-8000-0000000000c1"
	tweetID   = "0191d5a0-0000-7000-8000-0000000000d1"
	missingID = "0191d5a0-0000-7000-8000-0000000000ff"
)

// # Fakes

// memoryRepository keeps likes in a set keyed by actor, target kind and target id.
type memoryRepository struct {
	mu    sync.Mutex
	likes map[string]*like.Like
	seq   int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{likes: map[string]*like.Like{}}
}

func (repository *memoryRepository) Toggle(_ context.Context, actorID string, target like.Target, targetID string) (toggle.Result[*like.Like], error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	key := actorID + "|" + string(target) + "|" + targetID
	if existing, ok := repository.likes[key]; ok {
		delete(repository.likes, key)
		return toggle.Result[*like.Like]{State: toggle.Deactivated, Record: existing}, nil
	}

	repository.seq++
	created := &like.Like{ID: "like-" + strconv.Itoa(repository.seq), LikedBy: actorID}
	switch target {
	case like.TargetVideo:
		created.VideoID = &targetID
	case like.TargetComment:
		created.CommentID = &targetID
	case like.TargetTweet:
		created.TweetID = &targetID
	}
	repository.likes[key] = created
	return toggle.Result[*like.Like]{State: toggle.Activated, Record: created}, nil
}

func (repository *memoryRepository) LikedVideos(_ context.Context, _, _, _ string, params pagination.Params) (*pipeline.Page[like.LikedVideo], error) {
	return &pipeline.Page[like.LikedVideo]{Label: "videos", Meta: pagination.NewMeta(params, 0)}, nil
}

// known maps a target id to the only viewer allowed to see it, or to "" when anyone may.
type known map[string]string

func (ids known) Visible(_ context.Context, id, viewerID string) error {
	onlyFor, ok := ids[id]
	if !ok || (onlyFor != "" && onlyFor != viewerID) {
		return apperr.NotFound("Target")
	}
	return nil
}

func newService() (*like.Service, *memoryRepository) {
	repository := newMemoryRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := like.NewService(repository,
		known{videoID: "", draftID: otherID},
		known{commentID: ""},
		known{tweetID: ""},
		logger,
	)
	return service, repository
}

/*
TestToggle_RoundTrip likes then unlikes each target kind, returning the same record.
*/
func TestToggle_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		target   like.Target
		targetID string
	}{
		{"video", like.TargetVideo, videoID},
		{"comment", like.TargetComment, commentID},
		{"tweet", like.TargetTweet, tweetID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repository := newService()

			liked, err := service.Toggle(context.Background(), actorID, tt.target, tt.targetID)
			require.NoError(t, err)
			assert.True(t, liked.Liked)
			assert.Equal(t, toggle.Activated, liked.State)
			assert.Len(t, repository.likes, 1)

			unliked, err := service.Toggle(context.Background(), actorID, tt.target, tt.targetID)
			require.NoError(t, err)
			assert.False(t, unliked.Liked)
			assert.Equal(t, toggle.Deactivated, unliked.State)
			assert.Equal(t, liked.Like.ID, unliked.Like.ID)
			assert.Empty(t, repository.likes)
		})
	}
}

/*
TestToggle_MissingTarget refuses to like something that does not exist.
*/
func TestToggle_MissingTarget(t *testing.T) {
	service, repository := newService()

	for _, target := range []like.Target{like.TargetVideo, like.TargetComment, like.TargetTweet} {
		_, err := service.Toggle(context.Background(), actorID, target, missingID)
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound), string(target))
	}
	assert.Empty(t, repository.likes)
}

/*
TestToggle_DraftVideo lets only the owner of a draft like it.
*/
func TestToggle_DraftVideo(t *testing.T) {
	service, repository := newService()

	_, err := service.Toggle(context.Background(), actorID, like.TargetVideo, draftID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.Empty(t, repository.likes)

	liked, err := service.Toggle(context.Background(), otherID, like.TargetVideo, draftID)
	require.NoError(t, err)
	assert.True(t, liked.Liked)
}
