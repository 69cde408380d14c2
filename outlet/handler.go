package outlet

import (
	"context"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/ocdsoutlet/logger"
	"github.com/kbukum/ocdsoutlet/observability"
	"github.com/kbukum/ocdsoutlet/release"
)

// Result describes one write.
type Result struct {
	// Key is the object key the package was written to.
	Key string
	// URL is the public URL of the object. Empty when the upload failed.
	URL string
	// Bytes is the size of the rendered body.
	Bytes int
	// Err is the storage error of a failed upload.
	Err error
}

// OK reports whether the upload succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Handler writes batches of releases through one connection.
type Handler struct {
	backend string
	bucket  Bucket
	base    release.Package
	opts    Options
	log     *logger.Logger
}

// Name is the default object name derived from the package publication date.
func (h *Handler) Name() string {
	return h.base.PublishedDate() + ".json"
}

// Base returns the package the handler writes.
func (h *Handler) Base() release.Package { return h.base }

// Bucket returns the connected storage target.
func (h *Handler) Bucket() Bucket { return h.bucket }

// Backend returns the backend name.
func (h *Handler) Backend() string { return h.backend }

// WithPackage returns a handler for another base package sharing the connection.
func (h *Handler) WithPackage(base release.Package) *Handler {
	cp := *h
	cp.base = base
	return &cp
}

// Key returns the object key for the current package.
func (h *Handler) Key() string {
	return JoinKey(h.opts.KeyPrefix, h.base.URI())
}

// Write renders the package with releases and stores it in one put. A render
// error is returned. A storage error is logged at fatal severity and carried
// in Result.Err with a nil error; the manifest only grows on success.
func (h *Handler) Write(ctx context.Context, releases []release.Release) (Result, error) {
	key := h.Key()
	res := Result{Key: key}

	ctx, span := observability.StartSpan(ctx, observability.SpanWrite, trace.WithAttributes(
		attribute.String(observability.AttrBackend, h.backend),
		attribute.String(observability.AttrKey, key),
		attribute.Int(observability.AttrReleases, len(releases)),
	))
	defer span.End()
	start := time.Now()

	body, err := h.opts.Renderer.Dumps(h.base.WithReleases(releases))
	if err != nil {
		observability.SetSpanError(span, err)
		h.opts.Metrics.RecordWrite(ctx, h.backend, observability.StatusFailed, 0, time.Since(start))
		return res, err
	}
	res.Bytes = len(body)
	span.SetAttributes(attribute.Int(observability.AttrBytes, res.Bytes))

	log := h.log.WithContext(ctx)
	if err := h.bucket.Put(ctx, key, body, mimetype.Detect(body).String()); err != nil {
		res.Err = err
		observability.SetSpanError(span, err)
		h.opts.Metrics.RecordWrite(ctx, h.backend, observability.StatusFailed, res.Bytes, time.Since(start))
		log.Critical("failed to upload release package", logger.MergeWithError(logger.Fields(
			logger.FieldKey, key,
			logger.FieldReleases, len(releases),
		), err))
		return res, nil
	}

	res.URL = h.bucket.URL(key)
	if h.opts.Manifest != nil {
		h.opts.Manifest.Append(res.URL)
	}

	elapsed := time.Since(start)
	h.opts.Metrics.RecordWrite(ctx, h.backend, observability.StatusOK, res.Bytes, elapsed)
	log.Debug("release package uploaded", logger.Fields(
		logger.FieldKey, key,
		logger.FieldURL, res.URL,
		logger.FieldBytes, res.Bytes,
		logger.FieldDuration, elapsed.Milliseconds(),
	))
	return res, nil
}

// JoinKey joins prefix and uri the way a path join does: an empty prefix or
// an absolute uri yields uri, otherwise exactly one "/" separates them.
func JoinKey(prefix, uri string) string {
	switch {
	case prefix == "":
		return uri
	case strings.HasPrefix(uri, "/"):
		return uri
	case strings.HasSuffix(prefix, "/"):
		return prefix + uri
	default:
		return prefix + "/" + uri
	}
}
