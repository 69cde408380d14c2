package minio

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/ocdsoutlet/errors"
	"github.com/kbukum/ocdsoutlet/outlet"
)

type mockAPI struct {
	endpoint         string
	GetLocationFunc  func(ctx context.Context, bucket string) (string, error)
	PutObjectFunc    func(ctx context.Context, bucket, object string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	locationRequests int
}

func (m *mockAPI) GetBucketLocation(ctx context.Context, bucket string) (string, error) {
	m.locationRequests++
	if m.GetLocationFunc != nil {
		return m.GetLocationFunc(ctx, bucket)
	}
	return "us-east-1", nil
}

func (m *mockAPI) PutObject(ctx context.Context, bucket, object string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if m.PutObjectFunc != nil {
		return m.PutObjectFunc(ctx, bucket, object, r, size, opts)
	}
	return minio.UploadInfo{Bucket: bucket, Key: object, Size: size}, nil
}

func (m *mockAPI) EndpointURL() *url.URL {
	u, _ := url.Parse(m.endpoint)
	return u
}

func TestNewBucketAndURL(t *testing.T) {
	api := &mockAPI{endpoint: "http://localhost:9000"}
	b, err := NewBucket(context.Background(), api, "releases", nil)
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", b.Location())
	assert.Equal(t, "http://localhost:9000/releases/dumps/page1.json", b.URL("dumps/page1.json"))
	assert.Equal(t, 1, api.locationRequests)
}

func TestNewBucketErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.ErrorCode
	}{
		{"missing bucket", minio.ErrorResponse{Code: "NoSuchBucket"}, errors.ErrCodeNotFound},
		{"access denied", minio.ErrorResponse{Code: "AccessDenied"}, errors.ErrCodeForbidden},
		{"canceled", context.Canceled, errors.ErrCodeTimeout},
		{"network", fmt.Errorf("connection refused"), errors.ErrCodeConnectionFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			api := &mockAPI{
				endpoint:        "http://localhost:9000",
				GetLocationFunc: func(context.Context, string) (string, error) { return "", tc.err },
			}
			_, err := NewBucket(context.Background(), api, "releases", nil)
			assert.Equal(t, tc.want, errors.CodeOf(err))
		})
	}
}

func TestPut(t *testing.T) {
	var gotKey, gotType string
	var gotBody []byte
	api := &mockAPI{
		endpoint: "https://minio.example.org",
		PutObjectFunc: func(_ context.Context, bucket, object string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
			gotKey, gotType = object, opts.ContentType
			gotBody, _ = io.ReadAll(r)
			assert.Equal(t, int64(len(gotBody)), size)
			return minio.UploadInfo{}, nil
		},
	}
	b, err := NewBucket(context.Background(), api, "releases", nil)
	require.NoError(t, err)

	require.NoError(t, b.Put(context.Background(), "dumps/page1.json", []byte(`{"a":1}`), "application/json"))
	assert.Equal(t, "dumps/page1.json", gotKey)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, `{"a":1}`, string(gotBody))
}

func TestPutError(t *testing.T) {
	api := &mockAPI{
		endpoint: "http://localhost:9000",
		PutObjectFunc: func(context.Context, string, string, io.Reader, int64, minio.PutObjectOptions) (minio.UploadInfo, error) {
			return minio.UploadInfo{}, minio.ErrorResponse{Code: "AccessDenied", Message: "denied"}
		},
	}
	b, err := NewBucket(context.Background(), api, "releases", nil)
	require.NoError(t, err)

	err = b.Put(context.Background(), "k.json", []byte("{}"), "")
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUploadFailed, appErr.Code)
	assert.Equal(t, "AccessDenied", appErr.Details["code"])
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, (&Config{Endpoint: "localhost:9000", Bucket: "b"}).Validate())
	assert.Error(t, (&Config{Endpoint: "http://localhost:9000", Bucket: "b"}).Validate(), "endpoint carries no scheme")
	assert.Error(t, (&Config{Endpoint: "localhost:9000"}).Validate())
	assert.Error(t, (&Config{Endpoint: "localhost:9000", Bucket: "b", SecretKey: "s"}).Validate())
}

func TestConnectorRequiresConfig(t *testing.T) {
	reg := outlet.NewRegistry()
	require.NoError(t, Register(reg))
	connect, err := reg.Lookup(Backend)
	require.NoError(t, err)

	_, err = connect(context.Background(), nil, nil)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.CodeOf(err))
}
