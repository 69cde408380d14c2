package render

import (
	"math"
	"testing"

	"github.com/kbukum/ocdsoutlet/errors"
)

func TestJSONDumps(t *testing.T) {
	doc := map[string]any{
		"uri":           "page1.json",
		"publishedDate": "2024-01-01",
		"releases":      []map[string]any{{"id": "r1", "title": "<roads & bridges>"}},
	}

	tests := []struct {
		name     string
		renderer Renderer
		want     string
	}{
		{"compact", NewJSON(), `{"publishedDate":"2024-01-01","releases":[{"id":"r1","title":"<roads & bridges>"}],"uri":"page1.json"}`},
		{"pretty", NewPrettyJSON(), "{\n  \"publishedDate\": \"2024-01-01\",\n  \"releases\": [\n    {\n      \"id\": \"r1\",\n      \"title\": \"<roads & bridges>\"\n    }\n  ],\n  \"uri\": \"page1.json\"\n}"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.renderer.Dumps(doc)
			if err != nil {
				t.Fatalf("Dumps failed: %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("Dumps() =\n%s\nwant\n%s", got, tc.want)
			}
		})
	}
}

func TestJSONDumpsDeterministic(t *testing.T) {
	doc := map[string]any{"b": 1, "a": 2, "c": []any{"x"}}
	first, _ := NewJSON().Dumps(doc)
	second, _ := NewJSON().Dumps(doc)
	if string(first) != string(second) {
		t.Errorf("expected identical output, got %s and %s", first, second)
	}
}

func TestJSONDumpsError(t *testing.T) {
	_, err := NewJSON().Dumps(map[string]any{"bad": math.Inf(1)})
	if err == nil {
		t.Fatal("expected error for unsupported value")
	}
	if errors.CodeOf(err) != errors.ErrCodeRenderFailed {
		t.Errorf("expected RENDER_FAILED, got %s", errors.CodeOf(err))
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"", "json", "json-pretty"} {
		r, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q) failed: %v", name, err)
		}
		want := name
		if want == "" {
			want = Default
		}
		if r.Name() != want {
			t.Errorf("ByName(%q).Name() = %q", name, r.Name())
		}
	}

	if _, err := ByName("yaml"); errors.CodeOf(err) != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT for unknown renderer, got %v", err)
	}

	names := Names()
	if len(names) != 2 || names[0] != "json" || names[1] != "json-pretty" {
		t.Errorf("unexpected names %v", names)
	}
}
