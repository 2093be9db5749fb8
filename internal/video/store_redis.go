// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/vidtube/internal/platform/constants"
)

// KeySetter is the slice of redis.Cmdable the counter needs. *redis.Client satisfies it.
type KeySetter interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
}

// RedisViewCounter marks (video, viewer) pairs with an expiring key.
type RedisViewCounter struct {
	client KeySetter
	window time.Duration
}

// NewRedisViewCounter creates a [ViewCounter] whose markers live for window.
func NewRedisViewCounter(client KeySetter, window time.Duration) *RedisViewCounter {
	return &RedisViewCounter{client: client, window: window}
}

/*
FirstView sets the marker only if it is absent.

Parameters:
  - context: context.Context
  - videoID: string
  - viewerKey: string (user id, or "ip:<addr>" for anonymous viewers)

Returns:
  - bool: true when the marker was created by this call
  - error: Connectivity errors
*/
func (counter *RedisViewCounter) FirstView(context context.Context, videoID, viewerKey string) (bool, error) {
	key := constants.RedisPrefixVideoView + videoID + ":" + viewerKey

	created, err := counter.client.SetNX(context, key, 1, counter.window).Result()
	if err != nil {
		return false, fmt.Errorf("redis_video_view_setnx_failed: %w", err)
	}
	return created, nil
}
