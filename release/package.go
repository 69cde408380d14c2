package release

import "maps"

// Well-known package fields.
const (
	FieldReleases      = "releases"
	FieldURI           = "uri"
	FieldPublishedDate = "publishedDate"
)

// Release is a single OCDS release. Its contents are opaque to the outlet.
type Release map[string]any

// Document is a package with its releases, ready for rendering.
type Document map[string]any

// Package is an immutable release package envelope.
type Package struct {
	fields map[string]any
}

// NewPackage copies fields into a Package. A "releases" entry is dropped.
func NewPackage(fields map[string]any) Package {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == FieldReleases {
			continue
		}
		copied[k] = v
	}
	return Package{fields: copied}
}

// URI returns the package uri, used as the object key below the key prefix.
func (p Package) URI() string {
	return p.StringField(FieldURI)
}

// PublishedDate returns the package publication date.
func (p Package) PublishedDate() string {
	return p.StringField(FieldPublishedDate)
}

// StringField returns the named field when it holds a string.
func (p Package) StringField(key string) string {
	s, _ := p.fields[key].(string)
	return s
}

// Has reports whether the named field is set.
func (p Package) Has(key string) bool {
	_, ok := p.fields[key]
	return ok
}

// With returns a copy of p with key set to value. Setting "releases" is a no-op.
func (p Package) With(key string, value any) Package {
	if key == FieldReleases {
		return p
	}
	fields := make(map[string]any, len(p.fields)+1)
	maps.Copy(fields, p.fields)
	fields[key] = value
	return Package{fields: fields}
}

// WithURI returns a copy of p with a different uri.
func (p Package) WithURI(uri string) Package {
	return p.With(FieldURI, uri)
}

// WithReleases composes the document written for one batch. The release
// slice is copied so later changes by the caller do not leak into it.
func (p Package) WithReleases(releases []Release) Document {
	doc := make(Document, len(p.fields)+1)
	maps.Copy(doc, p.fields)
	rs := make([]Release, len(releases))
	copy(rs, releases)
	doc[FieldReleases] = rs
	return doc
}
