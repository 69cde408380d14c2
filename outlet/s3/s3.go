// Package s3 is the Amazon S3 outlet backend.
package s3

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/kbukum/ocdsoutlet/errors"
	"github.com/kbukum/ocdsoutlet/logger"
	"github.com/kbukum/ocdsoutlet/outlet"
)

// Backend is the registry name of this backend.
const Backend = "s3"

// API is the subset of the S3 client used by the backend.
type API interface {
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
	GetBucketLocation(ctx context.Context, params *awss3.GetBucketLocationInput, optFns ...func(*awss3.Options)) (*awss3.GetBucketLocationOutput, error)
}

// Register adds the s3 backend to reg.
func Register(reg *outlet.Registry) error {
	return reg.Register(Backend, connect)
}

func connect(ctx context.Context, providerCfg any, log *logger.Logger) (outlet.Bucket, error) {
	c := &Config{}
	if providerCfg != nil {
		pc, ok := providerCfg.(*Config)
		if !ok {
			return nil, errors.InvalidInput("s3", fmt.Sprintf("expected *s3.Config, got %T", providerCfg))
		}
		c = pc
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	b, err := Connect(ctx, c, log)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Connect builds an S3 client from cfg and opens the bucket.
func Connect(ctx context.Context, cfg *Config, log *logger.Logger) (*Bucket, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.StaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.ConnectionFailed(Backend).WithCause(fmt.Errorf("load aws config: %w", err))
	}
	if awsCfg.Region == "" {
		awsCfg.Region = DefaultRegion
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})
	return NewBucket(ctx, client, cfg.Bucket, log)
}

// Bucket is an opened S3 bucket with its location resolved.
type Bucket struct {
	api      API
	name     string
	location string
}

var _ outlet.Bucket = (*Bucket)(nil)

// NewBucket resolves the bucket location once and returns the handle.
func NewBucket(ctx context.Context, api API, name string, log *logger.Logger) (*Bucket, error) {
	out, err := api.GetBucketLocation(ctx, &awss3.GetBucketLocationInput{Bucket: aws.String(name)})
	if err != nil {
		return nil, classifyConnectError(name, err)
	}
	b := &Bucket{api: api, name: name, location: string(out.LocationConstraint)}
	if log != nil {
		log.Debug("bucket location resolved", logger.Fields(
			logger.FieldBucket, name,
			"location", b.location,
		))
	}
	return b, nil
}

// Name returns the bucket name.
func (b *Bucket) Name() string { return b.name }

// Location returns the cached location constraint. It is empty for us-east-1.
func (b *Bucket) Location() string { return b.location }

// Put uploads body under key in a single PutObject call.
func (b *Bucket) Put(ctx context.Context, key string, body []byte, contentType string) error {
	input := &awss3.PutObjectInput{
		Bucket:        aws.String(b.name),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := b.api.PutObject(ctx, input); err != nil {
		appErr := errors.UploadFailed(key, err).WithDetail("bucket", b.name)
		if code := apiErrorCode(err); code != "" {
			appErr.WithDetail("aws_code", code)
		}
		return appErr
	}
	return nil
}

// URL returns https://s3-<location>.amazonaws.com/<bucket>/<key>.
func (b *Bucket) URL(key string) string {
	return fmt.Sprintf("https://s3-%s.amazonaws.com/%s/%s", b.location, b.name, key)
}

func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

func classifyConnectError(bucket string, err error) *errors.AppError {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return errors.Timeout("get bucket location").WithCause(err)
	}
	switch code := apiErrorCode(err); code {
	case "NoSuchBucket":
		return errors.NotFound("bucket", bucket).WithCause(err)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken":
		return errors.Forbidden("access to bucket "+bucket+" denied").WithCause(err).WithDetail("aws_code", code)
	default:
		return errors.ConnectionFailed(Backend).WithCause(err).WithDetail("bucket", bucket)
	}
}
