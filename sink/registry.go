package sink

import (
	"fmt"
	"sort"
	"sync"
)

// RendererFactory creates a new renderer instance.
type RendererFactory func() Renderer

var (
	registryMu sync.RWMutex
	renderers  = make(map[string]RendererFactory)
)

// Register makes a renderer available by name. It is typically called from
// init in the renderer's package:
//
//	func init() {
//	    sink.Register("svg", func() sink.Renderer { return New() })
//	}
//
// Register panics if factory is nil or name is already registered.
func Register(name string, factory RendererFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("sink: Register factory is nil")
	}
	if _, dup := renderers[name]; dup {
		panic("sink: Register called twice for " + name)
	}
	renderers[name] = factory
}

// Unregister removes a renderer. Unknown names are ignored.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(renderers, name)
}

// NewRenderer creates a renderer by name.
func NewRenderer(name string) (Renderer, error) {
	registryMu.RLock()
	factory, ok := renderers[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("sink: unknown renderer %q (forgotten import?)", name)
	}
	return factory(), nil
}

// MustRenderer is like NewRenderer but panics on error.
func MustRenderer(name string) Renderer {
	r, err := NewRenderer(name)
	if err != nil {
		panic(err)
	}
	return r
}

// Renderers returns the registered renderer names in sorted order.
func Renderers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a renderer with the given name exists.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := renderers[name]
	return ok
}
