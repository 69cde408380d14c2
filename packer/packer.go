package packer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/ocdsoutlet/errors"
	"github.com/kbukum/ocdsoutlet/logger"
	"github.com/kbukum/ocdsoutlet/manifest"
	"github.com/kbukum/ocdsoutlet/observability"
	"github.com/kbukum/ocdsoutlet/outlet"
	"github.com/kbukum/ocdsoutlet/release"
	"github.com/kbukum/ocdsoutlet/validation"
)

// Report summarizes a run.
type Report struct {
	RunID    string   `json:"run_id"`
	Pages    int      `json:"pages"`
	Uploaded int      `json:"uploaded"`
	Failed   int      `json:"failed"`
	Keys     []string `json:"keys"`
}

// Packer pages releases through one handler.
type Packer struct {
	handler  *outlet.Handler
	cfg      Config
	manifest *manifest.Manifest
	log      *logger.Logger
}

// New validates cfg and binds it to h. m is the manifest the outlet appends
// to; it is written to cfg.ManifestPath after a run and may be nil.
func New(h *outlet.Handler, cfg Config, m *manifest.Manifest, log *logger.Logger) (*Packer, error) {
	if h == nil {
		return nil, errors.MissingField("handler")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Packer{handler: h, cfg: cfg, manifest: m, log: log.WithComponent("packer")}, nil
}

// Run writes releases page by page. Failed uploads are counted and the run
// continues unless FailFast is set. Render errors and cancellation abort it.
func (p *Packer) Run(ctx context.Context, releases []release.Release) (Report, error) {
	report := Report{RunID: uuid.NewString(), Keys: []string{}}
	ctx = logger.ContextWithRunID(ctx, report.RunID)
	log := p.log.WithContext(ctx)

	ctx, span := observability.StartSpan(ctx, observability.SpanRun, trace.WithAttributes(
		attribute.String(observability.AttrRunID, report.RunID),
		attribute.String(observability.AttrBackend, p.handler.Backend()),
		attribute.Int(observability.AttrReleases, len(releases)),
	))
	defer span.End()

	base := p.handler.Base()
	pages := newPager(releases, p.cfg.BatchSize)
	if err := checkURI(base.URI(), pages.count()); err != nil {
		observability.SetSpanError(span, err)
		return report, err
	}

	if !base.Has(release.FieldPublishedDate) {
		log.Warn("release package has no publishedDate", logger.Fields(logger.FieldKey, p.handler.Key()))
	}
	log.Info("packing releases", logger.Fields(
		logger.FieldBackend, p.handler.Backend(),
		logger.FieldReleases, len(releases),
		"pages", pages.count(),
	))
	start := time.Now()

	for {
		pg, ok, err := pages.Next(ctx)
		if err != nil {
			observability.SetSpanError(span, err)
			return report, err
		}
		if !ok {
			break
		}

		h := p.handler.WithPackage(base.WithURI(pageURI(base.URI(), pg.number)))
		res, err := h.Write(ctx, pg.releases)
		report.Pages++
		if err != nil {
			observability.SetSpanError(span, err)
			return report, fmt.Errorf("page %d: %w", pg.number, err)
		}
		if !res.OK() {
			report.Failed++
			if p.cfg.FailFast {
				observability.SetSpanError(span, res.Err)
				return report, fmt.Errorf("page %d: %w", pg.number, res.Err)
			}
			continue
		}
		report.Uploaded++
		report.Keys = append(report.Keys, res.Key)
	}

	if err := p.writeManifest(); err != nil {
		observability.SetSpanError(span, err)
		return report, err
	}

	span.SetAttributes(attribute.Int(observability.AttrPage, report.Pages))
	log.Info("run complete", logger.Fields(
		"pages", report.Pages,
		"uploaded", report.Uploaded,
		"failed", report.Failed,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return report, nil
}

func (p *Packer) writeManifest() error {
	if p.cfg.ManifestPath == "" || p.manifest == nil {
		return nil
	}
	if err := p.manifest.WriteFile(p.cfg.ManifestPath); err != nil {
		return errors.Internal(err).WithDetail("path", p.cfg.ManifestPath)
	}
	p.log.Debug("manifest written", logger.Fields("path", p.cfg.ManifestPath, "urls", p.manifest.Len()))
	return nil
}

// checkURI requires a uri, and the page placeholder in it when the run
// writes more than one page.
func checkURI(uri string, pages int) error {
	return validation.New().
		Required(release.FieldURI, uri).
		Custom(pages <= 1 || strings.Contains(uri, PagePlaceholder), release.FieldURI,
			fmt.Sprintf("must contain %s to write %d pages", PagePlaceholder, pages)).
		Error()
}

func pageURI(uri string, number int) string {
	return strings.ReplaceAll(uri, PagePlaceholder, strconv.Itoa(number))
}
