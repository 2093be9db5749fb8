// Copyright (c) 2026 Vidtube. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/taibuivan/vidtube/pkg/uuid"
)

const s3PartSize = 5 * 1024 * 1024

// S3Options configures an [S3Store].
type S3Options struct {
	Bucket   string
	Region   string
	Endpoint string
	// PublicBaseURL prefixes object keys to form public URLs.
	PublicBaseURL string
	// Prefix is the key folder every object is written under.
	Prefix string
}

// objectDeleter is the slice of *s3.Client the store deletes through.
type objectDeleter interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store hosts media in an S3-compatible bucket (AWS, R2, MinIO).
type S3Store struct {
	uploader *manager.Uploader
	client   objectDeleter
	bucket   string
	baseURL  string
	prefix   string
}

// NewS3Store configures an uploader targeting the bucket.
func NewS3Store(ctx context.Context, options S3Options) (*S3Store, error) {
	if strings.TrimSpace(options.Bucket) == "" {
		return nil, fmt.Errorf("media: s3 bucket is required")
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(options.Region))
	if err != nil {
		return nil, fmt.Errorf("media: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.UsePathStyle = true
		if endpoint := strings.TrimSpace(options.Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = s3PartSize
		u.LeavePartsOnError = false
	})

	baseURL := strings.TrimSuffix(options.PublicBaseURL, "/")
	if baseURL == "" && options.Endpoint != "" {
		baseURL = strings.TrimSuffix(options.Endpoint, "/") + "/" + options.Bucket
	}

	return &S3Store{
		uploader: uploader,
		client:   client,
		bucket:   options.Bucket,
		baseURL:  baseURL,
		prefix:   strings.Trim(options.Prefix, "/"),
	}, nil
}

// Upload implements [Store]. S3 does not probe media, so Duration stays zero.
func (store *S3Store) Upload(ctx context.Context, localPath string, kind Kind) (*Asset, error) {
	defer os.Remove(localPath)

	file, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("media: open upload: %w", err)
	}
	defer file.Close()

	key := store.objectKey(kind, filepath.Ext(localPath))
	_, err = store.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
		Body:   file,
		ACL:    s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return nil, fmt.Errorf("media: s3 upload %s: %w", key, err)
	}

	return &Asset{URL: store.publicURL(key), PublicID: key, Kind: kind}, nil
}

// Delete implements [Store].
func (store *S3Store) Delete(ctx context.Context, assetURL string, _ Kind) error {
	key := store.keyFromURL(assetURL)
	if key == "" {
		return fmt.Errorf("media: not an object url of this bucket: %q", assetURL)
	}

	_, err := store.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("media: s3 delete %s: %w", key, err)
	}

	return nil
}

func (store *S3Store) objectKey(kind Kind, ext string) string {
	return path.Join(store.prefix, string(kind), uuid.New()+strings.ToLower(ext))
}

func (store *S3Store) publicURL(key string) string {
	if store.baseURL == "" {
		return key
	}
	return store.baseURL + "/" + key
}

func (store *S3Store) keyFromURL(assetURL string) string {
	if store.baseURL == "" {
		return strings.TrimLeft(assetURL, "/")
	}
	key, found := strings.CutPrefix(assetURL, store.baseURL+"/")
	if !found {
		return ""
	}
	return key
}
