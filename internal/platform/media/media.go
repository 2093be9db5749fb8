// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media is the boundary to the remote media host.

Uploaded files are first spooled to a local temp file ([SaveUpload]), then
pushed to a [Store]. The temp file is removed after every upload attempt,
successful or not. When a later step of the same request fails, the caller
hands the uploaded assets to [Release] so nothing is orphaned remotely.

Two backends exist: Cloudinary (the default) and any S3-compatible bucket.
*/
package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/taibuivan/vidtube/internal/platform/config"
)

// Kind is the media class of an asset.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Asset is a file hosted by a [Store].
type Asset struct {
	URL      string
	PublicID string
	Kind     Kind
	// Duration is the playback length in seconds, when the host reports it.
	Duration float64
}

// Store uploads and deletes remote media.
type Store interface {
	// Upload pushes the local file and removes it afterwards.
	Upload(ctx context.Context, localPath string, kind Kind) (*Asset, error)
	// Delete removes the asset served at url.
	Delete(ctx context.Context, url string, kind Kind) error
}

// New builds the store selected by cfg.MediaBackend.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.MediaBackend {
	case config.MediaCloudinary:
		return NewCloudinaryStore(cfg.CloudinaryURL, cfg.MediaFolder)
	case config.MediaS3:
		return NewS3Store(ctx, S3Options{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			PublicBaseURL: cfg.S3PublicBaseURL,
			Prefix:        cfg.MediaFolder,
		})
	default:
		return nil, fmt.Errorf("media: unknown backend %q", cfg.MediaBackend)
	}
}

// Release deletes assets that were uploaded for a request that later failed.
// Failures are logged, never returned: the request has already failed.
func Release(ctx context.Context, store Store, logger *slog.Logger, assets ...*Asset) {
	for _, asset := range assets {
		if asset == nil || asset.URL == "" {
			continue
		}
		if err := store.Delete(ctx, asset.URL, asset.Kind); err != nil {
			logger.Warn("media_release_failed",
				slog.String("url", asset.URL),
				slog.String("kind", string(asset.Kind)),
				slog.Any("error", err),
			)
		}
	}
}

// Discard removes spooled temp files that never reached the store.
func Discard(paths ...string) {
	for _, path := range paths {
		if path != "" {
			_ = os.Remove(path)
		}
	}
}
