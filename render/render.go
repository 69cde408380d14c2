// Package render serializes release package documents for upload.
package render

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/kbukum/ocdsoutlet/errors"
)

// Default is the renderer used when none is configured.
const Default = "json"

// Renderer turns a document into the bytes stored in the bucket.
type Renderer interface {
	Name() string
	Dumps(v any) ([]byte, error)
}

// JSON renders documents as JSON. An empty Indent produces compact output.
type JSON struct {
	name   string
	Indent string
}

// NewJSON returns the compact JSON renderer.
func NewJSON() *JSON { return &JSON{name: "json"} }

// NewPrettyJSON returns a JSON renderer indenting with two spaces.
func NewPrettyJSON() *JSON { return &JSON{name: "json-pretty", Indent: "  "} }

// Name implements Renderer.
func (j *JSON) Name() string { return j.name }

// Dumps implements Renderer. HTML characters are written as is.
func (j *JSON) Dumps(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if j.Indent != "" {
		enc.SetIndent("", j.Indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, errors.RenderFailed(j.name, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

var builtin = map[string]func() Renderer{
	"json":        func() Renderer { return NewJSON() },
	"json-pretty": func() Renderer { return NewPrettyJSON() },
}

// ByName returns the named renderer. An empty name selects Default.
func ByName(name string) (Renderer, error) {
	if name == "" {
		name = Default
	}
	newFn, ok := builtin[name]
	if !ok {
		return nil, errors.InvalidInput("renderer", "unknown renderer "+name)
	}
	return newFn(), nil
}

// Names lists the available renderers.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
