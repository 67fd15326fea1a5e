package render

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-formspec/pkg/normalize"
)

// ErrUnknownRenderer is returned when a lookup names a renderer that was never
// registered.
var ErrUnknownRenderer = errors.New("render: unknown renderer")

// Registry maps renderer names to the presentation collaborators that can turn
// a normalized form into output. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	byKey map[string]Renderer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]Renderer)}
}

// Register adds renderer under its Name. Names are unique.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: cannot register a nil renderer")
	}
	key := renderer.Name()
	if key == "" {
		return errors.New("render: renderer has no name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byKey[key]; taken {
		return fmt.Errorf("render: %q is already registered", key)
	}
	r.byKey[key] = renderer
	return nil
}

// MustRegister is Register for wiring code that cannot recover.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer registered as name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	renderer, ok := r.byKey[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownRenderer, name)
	}
	return renderer, nil
}

// Resolve picks the renderer for a request. An explicit name must exist. An
// empty name falls back to fallback when registered, then to the first name
// in sorted order.
func (r *Registry) Resolve(name, fallback string) (Renderer, error) {
	if name != "" {
		return r.Get(name)
	}
	if fallback != "" {
		if renderer, err := r.Get(fallback); err == nil {
			return renderer, nil
		}
	}
	names := r.List()
	if len(names) == 0 {
		return nil, errors.New("render: registry is empty")
	}
	return r.Get(names[0])
}

// RenderForm resolves a renderer as Resolve does and renders form with it. It
// returns the renderer used so callers can report its content type.
func (r *Registry) RenderForm(ctx context.Context, name, fallback string, form *normalize.Form, opts RenderOptions) ([]byte, Renderer, error) {
	if form == nil {
		return nil, nil, errors.New("render: form is nil")
	}
	renderer, err := r.Resolve(name, fallback)
	if err != nil {
		return nil, nil, err
	}
	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, renderer, fmt.Errorf("render: %s: %w", renderer.Name(), err)
	}
	return output, renderer, nil
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.byKey))
	for name := range r.byKey {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byKey[name]
	return ok
}
