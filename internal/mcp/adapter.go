package mcp

import (
	"context"
	"errors"
	"sort"
	"sync"

	"awsmcp/internal/config"
)

// Adapter is one resource-domain service exposing a fixed tool
// catalog. Init builds provider clients once; Register fills the
// adapter's registry.
type Adapter interface {
	ID() string
	Version() string
	Init(ctx context.Context, cfg *config.Config) error
	Register(reg Registry) error
}

type AdapterFactory func() Adapter

type adapterRegistry struct {
	mu        sync.RWMutex
	factories map[string]AdapterFactory
}

var adapters = adapterRegistry{factories: map[string]AdapterFactory{}}

func RegisterAdapter(id string, factory AdapterFactory) error {
	if id == "" {
		return errors.New("adapter id required")
	}
	if factory == nil {
		return errors.New("adapter factory required")
	}
	adapters.mu.Lock()
	defer adapters.mu.Unlock()
	if _, exists := adapters.factories[id]; exists {
		return errors.New("adapter already registered")
	}
	adapters.factories[id] = factory
	return nil
}

func MustRegisterAdapter(id string, factory AdapterFactory) {
	if err := RegisterAdapter(id, factory); err != nil {
		panic(err)
	}
}

func AdapterFactoryFor(id string) (AdapterFactory, bool) {
	adapters.mu.RLock()
	defer adapters.mu.RUnlock()
	factory, ok := adapters.factories[id]
	return factory, ok
}

func RegisteredAdapters() []string {
	adapters.mu.RLock()
	defer adapters.mu.RUnlock()
	ids := make([]string, 0, len(adapters.factories))
	for id := range adapters.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
