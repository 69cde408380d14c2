package packer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kbukum/ocdsoutlet/errors"
	"github.com/kbukum/ocdsoutlet/release"
)

// Load reads a release package document. Every top-level field except
// releases becomes the base package. Numbers are kept as written.
func Load(r io.Reader) (release.Package, []release.Release, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return release.Package{}, nil, errors.InvalidInput("input", "not a JSON object").WithCause(err)
	}
	if doc == nil {
		return release.Package{}, nil, errors.InvalidInput("input", "not a JSON object")
	}

	raw, ok := doc[release.FieldReleases]
	if !ok || raw == nil {
		return release.Package{}, nil, errors.MissingField(release.FieldReleases)
	}
	items, ok := raw.([]any)
	if !ok {
		return release.Package{}, nil, errors.InvalidInput(release.FieldReleases, "must be an array")
	}

	releases := make([]release.Release, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return release.Package{}, nil, errors.InvalidInput(
				fmt.Sprintf("%s[%d]", release.FieldReleases, i), "must be an object")
		}
		releases = append(releases, release.Release(obj))
	}

	return release.NewPackage(doc), releases, nil
}
