//go:build integration

package s3_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/localstack"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kbukum/ocdsoutlet/errors"
	"github.com/kbukum/ocdsoutlet/manifest"
	"github.com/kbukum/ocdsoutlet/outlet"
	"github.com/kbukum/ocdsoutlet/outlet/s3"
	"github.com/kbukum/ocdsoutlet/release"
)

func startLocalStack(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := localstack.Run(ctx,
		"localstack/localstack:latest",
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/_localstack/health").
				WithPort("4566").
				WithStartupTimeout(2*time.Minute),
		),
	)
	require.NoError(t, err, "Failed to start LocalStack container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate LocalStack container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "4566")
	require.NoError(t, err)
	return fmt.Sprintf("http://%s:%s", host, port.Port())
}

func rawClient(t *testing.T, endpoint string) *awss3.Client {
	t.Helper()
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "")),
	)
	require.NoError(t, err)
	return awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String(endpoint)
	})
}

func TestIntegrationWriteToLocalStack(t *testing.T) {
	endpoint := startLocalStack(t)
	ctx := context.Background()

	client := rawClient(t, endpoint)
	_, err := client.CreateBucket(ctx, &awss3.CreateBucketInput{Bucket: aws.String("releases")})
	require.NoError(t, err)

	reg := outlet.NewRegistry()
	require.NoError(t, s3.Register(reg))

	m := manifest.New()
	cfg := &s3.Config{
		Bucket:    "releases",
		Region:    "us-east-1",
		Endpoint:  endpoint,
		AccessKey: "test",
		SecretKey: "test",
	}
	o, err := outlet.New(s3.Backend, reg, cfg, outlet.Options{KeyPrefix: "dumps", Manifest: m}, nil)
	require.NoError(t, err)

	base := release.NewPackage(map[string]any{"uri": "page1.json", "publishedDate": "2024-01-01"})
	h, err := o.Create(ctx, base)
	require.NoError(t, err)

	res, err := h.Write(ctx, []release.Release{{"id": "r1"}})
	require.NoError(t, err)
	require.True(t, res.OK(), "upload failed: %v", res.Err)
	assert.Equal(t, []string{"https://s3-.amazonaws.com/releases/dumps/page1.json"}, m.Releases())

	obj, err := client.GetObject(ctx, &awss3.GetObjectInput{Bucket: aws.String("releases"), Key: aws.String("dumps/page1.json")})
	require.NoError(t, err)
	defer obj.Body.Close()
	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "page1.json", body["uri"])
	assert.Equal(t, []any{map[string]any{"id": "r1"}}, body["releases"])
	assert.Equal(t, "application/json", aws.ToString(obj.ContentType))
}

func TestIntegrationMissingBucket(t *testing.T) {
	endpoint := startLocalStack(t)

	reg := outlet.NewRegistry()
	require.NoError(t, s3.Register(reg))
	cfg := &s3.Config{Bucket: "does-not-exist", Region: "us-east-1", Endpoint: endpoint, AccessKey: "test", SecretKey: "test"}
	o, err := outlet.New(s3.Backend, reg, cfg, outlet.Options{}, nil)
	require.NoError(t, err)

	_, err = o.Create(context.Background(), release.NewPackage(nil))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
}
