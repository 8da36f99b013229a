package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

// Config for the image bucket
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Store keeps uploaded images in a MinIO/S3 bucket.
type Store struct {
	client     *minio.Client
	bucketName string
	endpoint   *url.URL
}

// New buat koneksi MinIO
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, errors.New("storage: endpoint and bucket are required")
	}
	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}

	// pastikan bucket ada
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &Store{client: cli, bucketName: cfg.Bucket, endpoint: cli.EndpointURL()}, nil
}

// Upload implementasi analysis.ImageStore
func (s *Store) Upload(ctx context.Context, key string, u *analysis.Upload) (string, error) {
	if u.Empty() {
		return "", analysis.ErrImageRequired
	}
	_, err := s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(u.Data), int64(len(u.Data)),
		minio.PutObjectOptions{ContentType: u.MIMEType()})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return objectURL(s.endpoint, s.bucketName, key), nil
}

// URL publik (jika bucket public), kalau private harus generate presigned URL
func objectURL(endpoint *url.URL, bucket, key string) string {
	scheme := "http"
	if endpoint.Scheme != "" {
		scheme = endpoint.Scheme
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, endpoint.Host, bucket, key)
}
