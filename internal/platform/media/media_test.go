// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/platform/media"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func multipartRequest(t *testing.T, field, filename, contentType string, body []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if field != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(body)
		require.NoError(t, err)
	}
	require.NoError(t, writer.WriteField("title", "x"))
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, request.ParseMultipartForm(1<<20))
	return request
}

/*
TestSaveUpload covers spooling, sniffing and missing parts.
*/
func TestSaveUpload(t *testing.T) {
	dir := t.TempDir()

	t.Run("image_spooled", func(t *testing.T) {
		request := multipartRequest(t, "avatar", "me.PNG", "image/png", pngHeader)

		path, err := media.SaveUpload(request, "avatar", dir, media.KindImage)
		require.NoError(t, err)
		assert.FileExists(t, path)
		assert.Contains(t, path, ".png")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, pngHeader, content)
	})

	t.Run("wrong_kind", func(t *testing.T) {
		request := multipartRequest(t, "videoFile", "clip.mp4", "video/mp4", pngHeader)

		_, err := media.SaveUpload(request, "videoFile", dir, media.KindVideo)
		assert.ErrorIs(t, err, media.ErrWrongKind)
	})

	t.Run("sniffed_video_container", func(t *testing.T) {
		mp4 := []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom")
		request := multipartRequest(t, "videoFile", "clip.mp4", "application/octet-stream", mp4)

		path, err := media.SaveUpload(request, "videoFile", dir, media.KindVideo)
		require.NoError(t, err)
		assert.FileExists(t, path)
	})

	t.Run("declared_type_for_opaque_bytes", func(t *testing.T) {
		request := multipartRequest(t, "videoFile", "clip.mkv", "video/x-matroska", []byte{0x1a, 0x45, 0xdf, 0xa3, 0x00})

		path, err := media.SaveUpload(request, "videoFile", dir, media.KindVideo)
		require.NoError(t, err)
		assert.FileExists(t, path)
	})

	t.Run("missing_part", func(t *testing.T) {
		request := multipartRequest(t, "", "", "", nil)

		_, err := media.SaveUpload(request, "avatar", dir, media.KindImage)
		assert.ErrorIs(t, err, media.ErrNoFile)
	})

	t.Run("not_multipart", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/upload", nil)

		_, err := media.SaveUpload(request, "avatar", dir, media.KindImage)
		assert.ErrorIs(t, err, media.ErrNoFile)
	})
}

/*
TestPublicIDFromURL checks public id extraction from delivery URLs.
*/
func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://res.cloudinary.com/demo/video/upload/v1712345/vidtube/clip.mp4", "vidtube/clip", false},
		{"https://res.cloudinary.com/demo/image/upload/avatar.jpg", "avatar", false},
		{"https://res.cloudinary.com/demo/image/upload/v9/a/b/c.webp", "a/b/c", false},
		{"https://example.com/files/clip.mp4", "", true},
		{"://bad", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := media.PublicIDFromURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type recordingStore struct {
	deleted []string
	fail    map[string]bool
}

func (store *recordingStore) Upload(context.Context, string, media.Kind) (*media.Asset, error) {
	return nil, errors.New("not used")
}

func (store *recordingStore) Delete(_ context.Context, url string, _ media.Kind) error {
	store.deleted = append(store.deleted, url)
	if store.fail[url] {
		return errors.New("host unavailable")
	}
	return nil
}

/*
TestRelease deletes every uploaded asset and keeps going past failures.
*/
func TestRelease(t *testing.T) {
	store := &recordingStore{fail: map[string]bool{"https://cdn/a.mp4": true}}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	media.Release(context.Background(), store, logger,
		&media.Asset{URL: "https://cdn/a.mp4", Kind: media.KindVideo},
		nil,
		&media.Asset{URL: "https://cdn/b.png", Kind: media.KindImage},
		&media.Asset{},
	)

	assert.Equal(t, []string{"https://cdn/a.mp4", "https://cdn/b.png"}, store.deleted)
}

/*
TestDiscard removes spooled files and ignores blanks.
*/
func TestDiscard(t *testing.T) {
	path := t.TempDir() + "/upload-1.png"
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	media.Discard(path, "")
	assert.NoFileExists(t, path)
}
