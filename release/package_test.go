package release

import "testing"

func TestNewPackageStripsReleases(t *testing.T) {
	src := map[string]any{
		FieldURI:           "page1.json",
		FieldPublishedDate: "2024-01-01",
		FieldReleases:      []any{map[string]any{"id": "stale"}},
	}
	p := NewPackage(src)

	if p.Has(FieldReleases) {
		t.Error("expected releases to be dropped")
	}
	if p.URI() != "page1.json" || p.PublishedDate() != "2024-01-01" {
		t.Errorf("unexpected envelope uri=%q publishedDate=%q", p.URI(), p.PublishedDate())
	}

	src[FieldURI] = "changed.json"
	if p.URI() != "page1.json" {
		t.Error("package must not alias the source map")
	}
}

func TestWithReleasesLeavesBaseUntouched(t *testing.T) {
	base := NewPackage(map[string]any{FieldURI: "page1.json", FieldPublishedDate: "2024-01-01"})
	releases := []Release{{"id": "r1"}}

	doc := base.WithReleases(releases)

	if base.Has(FieldReleases) {
		t.Fatal("base package must not carry releases")
	}
	if got, _ := doc[FieldReleases].([]Release); len(got) != 1 || got[0]["id"] != "r1" {
		t.Errorf("unexpected document releases %v", got)
	}
	if doc[FieldURI] != "page1.json" {
		t.Errorf("expected envelope fields in document, got %v", doc)
	}

	releases[0] = Release{"id": "mutated"}
	if got := doc[FieldReleases].([]Release); got[0]["id"] != "r1" {
		t.Error("document must not alias the caller's slice")
	}
}

func TestWithCopies(t *testing.T) {
	base := NewPackage(map[string]any{FieldURI: "page-{page}.json"})
	page := base.WithURI("page-2.json")

	if base.URI() != "page-{page}.json" {
		t.Errorf("base changed to %q", base.URI())
	}
	if page.URI() != "page-2.json" {
		t.Errorf("expected page-2.json, got %q", page.URI())
	}
	if same := base.With(FieldReleases, []Release{}); same.Has(FieldReleases) {
		t.Error("With must not set releases")
	}
}

func TestStringAccessors(t *testing.T) {
	p := NewPackage(map[string]any{FieldPublishedDate: 20240101})
	if p.PublishedDate() != "" {
		t.Errorf("expected non-string date to read as empty, got %q", p.PublishedDate())
	}
	var zero Package
	if zero.URI() != "" || zero.Has(FieldURI) {
		t.Error("zero package should be empty")
	}
}
