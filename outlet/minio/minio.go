// Package minio is the outlet backend for S3-compatible servers.
package minio

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/kbukum/ocdsoutlet/errors"
	"github.com/kbukum/ocdsoutlet/logger"
	"github.com/kbukum/ocdsoutlet/outlet"
)

// Backend is the registry name of this backend.
const Backend = "minio"

// API is the subset of *minio.Client used by the backend.
type API interface {
	GetBucketLocation(ctx context.Context, bucketName string) (string, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	EndpointURL() *url.URL
}

// Register adds the minio backend to reg.
func Register(reg *outlet.Registry) error {
	return reg.Register(Backend, connect)
}

func connect(ctx context.Context, providerCfg any, log *logger.Logger) (outlet.Bucket, error) {
	c, ok := providerCfg.(*Config)
	if !ok || c == nil {
		return nil, errors.InvalidInput("minio", fmt.Sprintf("expected *minio.Config, got %T", providerCfg))
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	b, err := Connect(ctx, c, log)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Connect creates a minio client and opens the bucket.
func Connect(ctx context.Context, cfg *Config, log *logger.Logger) (*Bucket, error) {
	opts := &minio.Options{
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Creds = credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, "")
	} else {
		opts.Creds = credentials.NewEnvMinio()
	}
	client, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, errors.ConnectionFailed(cfg.Endpoint).WithCause(err)
	}
	return NewBucket(ctx, client, cfg.Bucket, log)
}

// Bucket is an opened bucket on an S3-compatible server.
type Bucket struct {
	api      API
	name     string
	location string
	base     string
}

var _ outlet.Bucket = (*Bucket)(nil)

// NewBucket checks the bucket by resolving its location once.
func NewBucket(ctx context.Context, api API, name string, log *logger.Logger) (*Bucket, error) {
	location, err := api.GetBucketLocation(ctx, name)
	if err != nil {
		return nil, classifyConnectError(name, err)
	}
	b := &Bucket{
		api:      api,
		name:     name,
		location: location,
		base:     strings.TrimSuffix(api.EndpointURL().String(), "/"),
	}
	if log != nil {
		log.Debug("bucket location resolved", logger.Fields(
			logger.FieldBucket, name,
			"location", location,
			"endpoint", b.base,
		))
	}
	return b, nil
}

// Name returns the bucket name.
func (b *Bucket) Name() string { return b.name }

// Location returns the cached bucket location.
func (b *Bucket) Location() string { return b.location }

// Put uploads body under key in a single request.
func (b *Bucket) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := b.api.PutObject(ctx, b.name, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		appErr := errors.UploadFailed(key, err).WithDetail("bucket", b.name)
		if code := minio.ToErrorResponse(err).Code; code != "" {
			appErr.WithDetail("code", code)
		}
		return appErr
	}
	return nil
}

// URL returns <endpoint-url>/<bucket>/<key>.
func (b *Bucket) URL(key string) string {
	return fmt.Sprintf("%s/%s/%s", b.base, b.name, key)
}

func classifyConnectError(bucket string, err error) *errors.AppError {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return errors.Timeout("get bucket location").WithCause(err)
	}
	switch code := minio.ToErrorResponse(err).Code; code {
	case "NoSuchBucket":
		return errors.NotFound("bucket", bucket).WithCause(err)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return errors.Forbidden("access to bucket "+bucket+" denied").WithCause(err).WithDetail("code", code)
	default:
		return errors.ConnectionFailed(Backend).WithCause(err).WithDetail("bucket", bucket)
	}
}
