// Package release models OCDS release packages.
//
// A Package is the envelope (publishedDate, uri, publisher and other
// metadata) without its releases. It is immutable: WithReleases composes a
// new Document for one write and leaves the Package untouched, so a single
// base can be shared by concurrent writers.
package release
