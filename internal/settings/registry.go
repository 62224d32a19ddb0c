package settings

import (
	"context"
	"fmt"
	"slices"
)

// Factory builds a handler. Factories are closures over whatever the
// handler needs (a DB connection, a Redis client, a table name...).
type Factory func(ctx context.Context) (Handler, error)

// HandlerSpec is one configured entry of the handler chain.
type HandlerSpec struct {
	Name     string
	Writable bool
}

// Link is a handler placed in the chain together with its writable flag.
type Link struct {
	Name     string
	Handler  Handler
	Writable bool
}

// Registry maps handler names to factories. It replaces looking handlers up
// by type name at runtime: every handler that may appear in configuration is
// registered once at startup.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds name to factory, replacing any previous binding.
func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
}

// Names returns the registered handler names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Chain builds the ordered handler chain for specs. Each factory is invoked
// exactly once, in order.
func (r *Registry) Chain(ctx context.Context, specs []HandlerSpec) ([]Link, error) {
	links := make([]Link, 0, len(specs))

	for _, spec := range specs {
		factory, ok := r.factories[spec.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownHandler, spec.Name, r.Names())
		}

		handler, err := factory(ctx)
		if err != nil {
			return nil, fmt.Errorf("error creating %q settings handler: %w", spec.Name, err)
		}

		links = append(links, Link{Name: spec.Name, Handler: handler, Writable: spec.Writable})
	}

	return links, nil
}
