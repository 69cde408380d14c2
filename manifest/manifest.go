// Package manifest records the public URLs of everything written in a run.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Manifest is an ordered, append-only list of URLs. It is safe for
// concurrent use; appends keep the order in which they were made.
type Manifest struct {
	mu       sync.Mutex
	releases []string
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{releases: make([]string, 0)}
}

// Append records url.
func (m *Manifest) Append(url string) {
	m.mu.Lock()
	m.releases = append(m.releases, url)
	m.mu.Unlock()
}

// Len returns the number of recorded URLs.
func (m *Manifest) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.releases)
}

// Releases returns a copy of the recorded URLs.
func (m *Manifest) Releases() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.releases))
	copy(out, m.releases)
	return out
}

type document struct {
	Releases []string `json:"releases"`
}

// MarshalJSON renders {"releases": [...]}.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{Releases: m.Releases()})
}

// UnmarshalJSON replaces the recorded URLs.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	m.mu.Lock()
	m.releases = doc.Releases
	if m.releases == nil {
		m.releases = make([]string, 0)
	}
	m.mu.Unlock()
	return nil
}

// WriteFile stores the manifest at path, replacing it atomically.
func (m *Manifest) WriteFile(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create manifest dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".manifest-*")
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
