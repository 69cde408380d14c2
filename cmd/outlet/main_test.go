package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/ocdsoutlet/manifest"
	"github.com/kbukum/ocdsoutlet/packer"
)

const testPackage = `{
  "uri": "page{page}.json",
  "publishedDate": "2024-01-01T00:00:00Z",
  "version": "1.1",
  "releases": [{"ocid": "ocds-1", "id": "a"}, {"ocid": "ocds-1", "id": "b"}, {"ocid": "ocds-2", "id": "c"}]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfigFile(t *testing.T) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "config.yml", "name: ocds-outlet\nenvironment: staging\nlogging:\n  level: error\n")
}

func TestRunLocal(t *testing.T) {
	work := t.TempDir()
	in := writeFile(t, work, "package.json", testPackage)
	out := filepath.Join(work, "out")
	manifestPath := filepath.Join(work, "manifest.json")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"local",
		"--config", testConfigFile(t),
		"--input", in,
		"--base-path", out,
		"--key-prefix", "dumps",
		"--batch-size", "2",
		"--manifest", manifestPath,
	}, nil, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var report packer.Report
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
	assert.Equal(t, 2, report.Pages)
	assert.Equal(t, 2, report.Uploaded)
	assert.Equal(t, []string{"dumps/page1.json", "dumps/page2.json"}, report.Keys)

	page2, err := os.ReadFile(filepath.Join(out, "dumps", "page2.json"))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(page2, &doc))
	assert.Equal(t, "page2.json", doc["uri"])
	assert.Len(t, doc["releases"], 1)

	data, err := os.ReadFile(manifestPath)
	require.NoError(t, err)
	m := manifest.New()
	require.NoError(t, json.Unmarshal(data, m))
	require.Equal(t, 2, m.Len())
	assert.Contains(t, m.Releases()[1], "/dumps/page2.json")
}

func TestRunReadsStdin(t *testing.T) {
	out := t.TempDir()
	single := `{"uri":"page1.json","publishedDate":"2024-01-01","releases":[{"id":"a"}]}`

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"local", "--config", testConfigFile(t), "--base-path", out, "--renderer", "json-pretty",
	}, bytes.NewBufferString(single), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	body, err := os.ReadFile(filepath.Join(out, "page1.json"))
	require.NoError(t, err)
	assert.Contains(t, string(body), "\n  \"releases\"")
}

func TestRunErrors(t *testing.T) {
	cfgFile := testConfigFile(t)
	in := writeFile(t, t.TempDir(), "package.json", testPackage)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no command", nil, 2},
		{"unknown command", []string{"ftp"}, 2},
		{"bad flag", []string{"local", "--nope"}, 2},
		{"s3 without bucket", []string{"s3", "--config", cfgFile, "--input", in}, 1},
		{"minio without endpoint", []string{"minio", "--config", cfgFile, "--bucket", "releases", "--input", in}, 1},
		{"unknown renderer", []string{"local", "--config", cfgFile, "--renderer", "xml", "--input", in}, 1},
		{"missing input", []string{"local", "--config", cfgFile, "--input", "/nonexistent/package.json"}, 1},
		{"pages without placeholder", []string{"local", "--config", cfgFile, "--base-path", t.TempDir(), "--batch-size", "1",
			"--input", writeFile(t, t.TempDir(), "p.json", `{"uri":"all.json","releases":[{"id":"a"},{"id":"b"}]}`)}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tc.code, run(context.Background(), tc.args, nil, &stdout, &stderr))
		})
	}
}

func TestRunVersionAndHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run(context.Background(), []string{"version"}, nil, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "outlet ")

	stdout.Reset()
	require.Equal(t, 0, run(context.Background(), []string{"help"}, nil, &stdout, &stderr))
	for _, want := range []string{"s3", "minio", "local", "version"} {
		assert.Contains(t, stdout.String(), want)
	}

	stdout.Reset()
	assert.Equal(t, 0, run(context.Background(), []string{"s3", "--help"}, nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "--aws-access-key")
}

func TestNewRegistry(t *testing.T) {
	reg, err := newRegistry()
	require.NoError(t, err)
	assert.Equal(t, []string{"local", "minio", "s3"}, reg.Names())
}

func TestLoadConfigBindsFlags(t *testing.T) {
	cmd := commands()["s3"]
	require.NoError(t, cmd.flags.Parse([]string{
		"--config", testConfigFile(t),
		"--bucket", "releases",
		"--aws-access-key", "AKIA",
		"--aws-secret-key", "secret",
		"--fail-fast",
	}))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "releases", cfg.S3.Bucket)
	assert.Equal(t, "AKIA", cfg.S3.AccessKey)
	assert.Equal(t, "secret", cfg.S3.SecretKey)
	assert.True(t, cfg.Packer.FailFast)
	assert.Equal(t, "staging", cfg.Environment)
	assert.NotEmpty(t, cfg.Version)

	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())
	providerCfg, err := cfg.providerConfig()
	require.NoError(t, err)
	assert.Same(t, &cfg.S3, providerCfg)
}
