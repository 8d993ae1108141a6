package views

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry = make(map[string]View)
	mu       sync.RWMutex
)

// Register adds a view to the registry.
func Register(v View) {
	mu.Lock()
	defer mu.Unlock()
	registry[v.Name()] = v
}

// Get retrieves a view by name.
func Get(name string) (View, error) {
	mu.RLock()
	defer mu.RUnlock()

	v, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown view: %s", name)
	}
	return v, nil
}

// List returns all registered view names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered views.
func All() []View {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	all := make([]View, 0, len(names))
	for _, name := range names {
		all = append(all, registry[name])
	}
	return all
}
