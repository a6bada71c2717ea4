package store

import (
	"fmt"
	"sort"
	"strings"
)

// Factory creates a store for a file path.
type Factory func(path string) (Store, error)

// Registry maps backend names to factory functions.
// It is not safe for concurrent use; registration should happen at startup.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a Registry with the json and sqlite backends.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(BackendJSON, func(path string) (Store, error) {
		return NewFileStore(path), nil
	})
	r.Register(BackendSQLite, func(path string) (Store, error) {
		return NewSQLiteStore(path), nil
	})
	return r
}

// Register adds a named backend factory. Overwrites if name already exists.
// Panics if name is empty or f is nil (programmer error).
func (r *Registry) Register(name string, f Factory) {
	if name == "" {
		panic("store: Register called with empty name")
	}
	if f == nil {
		panic("store: Register called with nil factory")
	}
	r.factories[name] = f
}

// New instantiates the named backend for path.
func (r *Registry) New(name, path string) (Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store: empty book path")
	}
	f, ok := r.factories[name]
	if !ok {
		return nil, &UnknownBackendError{
			Name:      name,
			Available: r.Available(),
		}
	}
	s, err := f(path)
	if err != nil {
		return nil, fmt.Errorf("store backend %q: %w", name, err)
	}
	return s, nil
}

// Available returns registered backend names in sorted order.
func (r *Registry) Available() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownBackendError indicates a backend name is not registered.
type UnknownBackendError struct {
	Name      string
	Available []string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown store backend %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}
