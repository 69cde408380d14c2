// Package packer drives an outlet handler over a release package.
//
// A run reads one release package document, splits its releases into pages
// of batch_size and writes every page through the same connection:
//
//	base, releases, err := packer.Load(f)
//	h, err := o.Create(ctx, base)
//	p, err := packer.New(h, cfg, m, log)
//	report, err := p.Run(ctx, releases)
//
// With more than one page the base uri must contain the {page} placeholder,
// which is replaced with the 1-based page number.
package packer
