// Package local is the filesystem outlet backend.
package local

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/kbukum/ocdsoutlet/errors"
	"github.com/kbukum/ocdsoutlet/logger"
	"github.com/kbukum/ocdsoutlet/outlet"
)

// Backend is the registry name of this backend.
const Backend = "local"

// Register adds the local backend to reg.
func Register(reg *outlet.Registry) error {
	return reg.Register(Backend, func(_ context.Context, providerCfg any, log *logger.Logger) (outlet.Bucket, error) {
		c := &Config{}
		if providerCfg != nil {
			pc, ok := providerCfg.(*Config)
			if !ok {
				return nil, errors.InvalidInput("local", fmt.Sprintf("expected *local.Config, got %T", providerCfg))
			}
			c = pc
		}
		c.ApplyDefaults()
		if err := c.Validate(); err != nil {
			return nil, err
		}
		d, err := Open(c.BasePath)
		if err != nil {
			return nil, err
		}
		if log != nil {
			log.Debug("writing to directory", logger.Fields(logger.FieldBucket, d.Name()))
		}
		return d, nil
	})
}

// Dir writes objects as files below a base directory.
type Dir struct {
	basePath string
}

var _ outlet.Bucket = (*Dir)(nil)

// Open creates basePath if needed and returns the directory handle.
func Open(basePath string) (*Dir, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, errors.ConnectionFailed(basePath).WithCause(fmt.Errorf("resolve base path: %w", err))
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		if os.IsPermission(err) {
			return nil, errors.Forbidden("cannot create " + abs).WithCause(err)
		}
		return nil, errors.ConnectionFailed(abs).WithCause(err)
	}
	return &Dir{basePath: abs}, nil
}

// Name returns the absolute base directory.
func (d *Dir) Name() string { return d.basePath }

// Put writes body to the file for key, replacing it atomically.
func (d *Dir) Put(_ context.Context, key string, body []byte, _ string) error {
	fullPath, err := d.resolve(key)
	if err != nil {
		return errors.UploadFailed(key, err)
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return errors.UploadFailed(key, fmt.Errorf("create directory: %w", err))
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".upload-*")
	if err != nil {
		return errors.UploadFailed(key, fmt.Errorf("create file: %w", err))
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return errors.UploadFailed(key, fmt.Errorf("write file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return errors.UploadFailed(key, fmt.Errorf("write file: %w", err))
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.UploadFailed(key, err)
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return errors.UploadFailed(key, fmt.Errorf("rename file: %w", err))
	}
	return nil
}

// URL returns a file:// URL for key.
func (d *Dir) URL(key string) string {
	fullPath := filepath.Join(d.basePath, filepath.FromSlash(strings.TrimPrefix(key, "/")))
	u := &url.URL{Scheme: "file", Path: filepath.ToSlash(fullPath)}
	return u.String()
}

// resolve maps key below the base directory. Absolute keys are taken
// relative to it; keys climbing out of it are rejected.
func (d *Dir) resolve(key string) (string, error) {
	rel := filepath.FromSlash(strings.TrimPrefix(key, "/"))
	if rel == "" || !filepath.IsLocal(rel) {
		return "", &fs.PathError{Op: "put", Path: key, Err: fs.ErrInvalid}
	}
	return filepath.Join(d.basePath, rel), nil
}
