// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package mediatest provides an in-memory [media.Store] for service tests.
package mediatest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/taibuivan/vidtube/internal/platform/media"
)

// ErrUpload is returned by Upload when the store is told to fail.
var ErrUpload = errors.New("mediatest: upload failed")

// Store records uploads and deletes.
type Store struct {
	mu sync.Mutex

	// FailOn makes Upload fail for these local file names (base name).
	FailOn map[string]bool
	// Duration is reported for every video upload.
	Duration float64

	Uploaded []string
	Deleted  []string
}

// New returns an empty recording store.
func New() *Store {
	return &Store{FailOn: map[string]bool{}}
}

// Upload implements [media.Store].
func (store *Store) Upload(_ context.Context, localPath string, kind media.Kind) (*media.Asset, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	name := filepath.Base(localPath)
	if store.FailOn[name] {
		return nil, ErrUpload
	}

	url := fmt.Sprintf("https://media.test/%s/%s", kind, name)
	store.Uploaded = append(store.Uploaded, url)

	asset := &media.Asset{URL: url, PublicID: name, Kind: kind}
	if kind == media.KindVideo {
		asset.Duration = store.Duration
	}
	return asset, nil
}

// Delete implements [media.Store].
func (store *Store) Delete(_ context.Context, url string, _ media.Kind) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.Deleted = append(store.Deleted, url)
	return nil
}

// URL is the address Upload assigns to localPath.
func URL(kind media.Kind, localPath string) string {
	return fmt.Sprintf("https://media.test/%s/%s", kind, filepath.Base(localPath))
}
