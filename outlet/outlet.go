package outlet

import (
	"context"

	"github.com/kbukum/ocdsoutlet/errors"
	"github.com/kbukum/ocdsoutlet/logger"
	"github.com/kbukum/ocdsoutlet/manifest"
	"github.com/kbukum/ocdsoutlet/observability"
	"github.com/kbukum/ocdsoutlet/release"
	"github.com/kbukum/ocdsoutlet/render"
)

// Options are the backend-independent settings of one run.
type Options struct {
	// KeyPrefix is joined in front of the package uri to form object keys.
	KeyPrefix string
	// Renderer serializes documents. Nil selects render.Default.
	Renderer render.Renderer
	// Manifest receives the URL of every successful write. Nil disables it.
	Manifest *manifest.Manifest
	// Metrics records write outcomes. Nil disables it.
	Metrics *observability.Metrics
}

// Outlet binds a backend and its configuration for one run.
type Outlet struct {
	backend     string
	connect     Connector
	providerCfg any
	opts        Options
	log         *logger.Logger
}

// New resolves backend in reg. Nothing is connected until Create.
func New(backend string, reg *Registry, providerCfg any, opts Options, log *logger.Logger) (*Outlet, error) {
	connect, err := reg.Lookup(backend)
	if err != nil {
		return nil, err
	}
	if opts.Renderer == nil {
		r, err := render.ByName(render.Default)
		if err != nil {
			return nil, err
		}
		opts.Renderer = r
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Outlet{
		backend:     backend,
		connect:     connect,
		providerCfg: providerCfg,
		opts:        opts,
		log:         log.WithComponent("outlet." + backend),
	}, nil
}

// Backend returns the backend name.
func (o *Outlet) Backend() string { return o.backend }

// Create connects to the backend and returns a handler bound to base.
// Connection and credential failures are returned as is and never retried.
func (o *Outlet) Create(ctx context.Context, base release.Package) (*Handler, error) {
	bucket, err := o.connect(ctx, o.providerCfg, o.log)
	if err != nil {
		o.log.Error("failed to connect to storage", logger.ErrorFields("connect", err))
		if _, ok := errors.AsAppError(err); ok {
			return nil, err
		}
		return nil, errors.ConnectionFailed(o.backend).WithCause(err)
	}

	o.log.Info("connected to storage", logger.Fields(
		logger.FieldBackend, o.backend,
		logger.FieldBucket, bucket.Name(),
	))

	return &Handler{
		backend: o.backend,
		bucket:  bucket,
		base:    base,
		opts:    o.opts,
		log:     o.log.WithFields(map[string]interface{}{logger.FieldBucket: bucket.Name()}),
	}, nil
}
