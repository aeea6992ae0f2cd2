// Package storage uploads public assets to an S3-compatible bucket.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/amai-mens-care/internal/config"
	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/retry"
)

// ObjectStore is the subset of the S3 client the uploader uses.
type ObjectStore interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Uploader struct {
	client        ObjectStore
	bucket        string
	publicBaseURL string
}

// NewS3Uploader returns nil when no bucket is configured.
func NewS3Uploader(cfg config.StorageConfig) *Uploader {
	if cfg.Bucket == "" {
		return nil
	}

	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.Endpoint != "",
	}
	if cfg.AccessKey != "" {
		opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		)
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	base := cfg.PublicBaseURL
	if base == "" {
		if cfg.Endpoint != "" {
			base = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
		} else {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return NewUploader(s3.New(opts), cfg.Bucket, base)
}

func NewUploader(client ObjectStore, bucket, publicBaseURL string) *Uploader {
	return &Uploader{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Put stores body under key and returns its public URL. The key fully
// determines the object, so the upload is retried on transient failures.
func (u *Uploader) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if u == nil {
		return "", httperr.ErrUnavailable("storage_not_configured")
	}

	err := retry.Do(ctx, retry.DefaultConfig(), "s3.put", func(ctx context.Context) error {
		_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:       aws.String(u.bucket),
			Key:          aws.String(key),
			Body:         bytes.NewReader(body),
			ContentType:  aws.String(contentType),
			CacheControl: aws.String("public, max-age=31536000, immutable"),
		})
		return err
	})
	if err != nil {
		return "", errors.Wrapf(err, "put object %s", key)
	}
	return u.URL(key), nil
}

func (u *Uploader) Delete(ctx context.Context, key string) error {
	if u == nil {
		return nil
	}
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	return errors.Wrapf(err, "delete object %s", key)
}

func (u *Uploader) URL(key string) string {
	return u.publicBaseURL + "/" + key
}

// KeyFromURL reverses URL; ok is false for URLs outside this bucket.
func (u *Uploader) KeyFromURL(url string) (string, bool) {
	if u == nil || !strings.HasPrefix(url, u.publicBaseURL+"/") {
		return "", false
	}
	return strings.TrimPrefix(url, u.publicBaseURL+"/"), true
}
