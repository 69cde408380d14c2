package packer

import (
	"context"

	"github.com/kbukum/ocdsoutlet/release"
)

type page struct {
	number   int
	releases []release.Release
}

// pager yields consecutive pages of up to size releases.
// size <= 0 yields everything as one page. No releases still yields one
// empty page so the package itself is published.
type pager struct {
	items  []release.Release
	size   int
	offset int
	number int
}

func newPager(items []release.Release, size int) *pager {
	if size <= 0 {
		size = len(items)
	}
	return &pager{items: items, size: size}
}

// count is the number of pages the pager yields in total.
func (p *pager) count() int {
	if len(p.items) == 0 || p.size == 0 {
		return 1
	}
	return (len(p.items) + p.size - 1) / p.size
}

// Next returns the next page. Returns ok=false when exhausted.
func (p *pager) Next(ctx context.Context) (page, bool, error) {
	if err := ctx.Err(); err != nil {
		return page{}, false, err
	}
	if p.number >= p.count() {
		return page{}, false, nil
	}

	end := p.offset + p.size
	if end > len(p.items) {
		end = len(p.items)
	}
	p.number++
	pg := page{number: p.number, releases: p.items[p.offset:end]}
	p.offset = end
	return pg, true, nil
}
