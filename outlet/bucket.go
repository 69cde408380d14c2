package outlet

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kbukum/ocdsoutlet/errors"
	"github.com/kbukum/ocdsoutlet/logger"
)

// Bucket is a connected storage target.
type Bucket interface {
	// Name identifies the target (bucket name or base directory).
	Name() string
	// Put stores body under key, replacing any existing object.
	Put(ctx context.Context, key string, body []byte, contentType string) error
	// URL returns the public URL of the object stored under key.
	URL(key string) string
}

// Connector opens a Bucket. Each backend type-asserts providerCfg to its
// own config type; a nil providerCfg means the backend defaults.
type Connector func(ctx context.Context, providerCfg any, log *logger.Logger) (Bucket, error)

// Registry holds the backends available to a process, keyed by name.
type Registry struct {
	mu         sync.RWMutex
	connectors map[string]Connector
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{connectors: make(map[string]Connector)}
}

// Register adds a backend. Names are unique.
func (r *Registry) Register(name string, c Connector) error {
	if name == "" || c == nil {
		return errors.InvalidInput("backend", "name and connector are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.connectors[name]; exists {
		return fmt.Errorf("outlet: backend %q already registered", name)
	}
	r.connectors[name] = c
	return nil
}

// Lookup returns the connector registered under name.
func (r *Registry) Lookup(name string) (Connector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.connectors[name]
	if !ok {
		return nil, errors.UnknownBackend(name)
	}
	return c, nil
}

// Names lists the registered backends in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.connectors))
	for name := range r.connectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
