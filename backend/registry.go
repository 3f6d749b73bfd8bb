package backend

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/flashlight"
)

// BackendFactory creates an uninitialized backend.
type BackendFactory func() RenderBackend

// selectionOrder ranks the known backends: the GPU presents to a window,
// the CPU rasterizer only renders offscreen. Unknown names rank after
// both, alphabetically.
var selectionOrder = []string{BackendWGPU, BackendSoftware}

var (
	registryMu sync.RWMutex
	factories  = make(map[string]BackendFactory)
)

// Register makes a backend available under name, replacing any previous
// registration. Backend packages call it from init.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	factories[name] = factory
	registryMu.Unlock()
}

// Unregister removes name from the registry.
func Unregister(name string) {
	registryMu.Lock()
	delete(factories, name)
	registryMu.Unlock()
}

// IsRegistered reports whether name has a factory.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

func rank(name string) int {
	if i := slices.Index(selectionOrder, name); i >= 0 {
		return i
	}
	return len(selectionOrder)
}

// Available returns the registered names in selection order.
func Available() []string {
	registryMu.RLock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	registryMu.RUnlock()

	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(rank(a), rank(b)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return names
}

// Get creates the backend registered as name, or returns nil.
func Get(name string) RenderBackend {
	registryMu.RLock()
	factory := factories[name]
	registryMu.RUnlock()

	if factory == nil {
		return nil
	}
	return factory()
}

// Default creates the first backend in selection order whose factory
// returns one, or nil when nothing is registered.
func Default() RenderBackend {
	for _, name := range Available() {
		if b := Get(name); b != nil {
			return b
		}
	}
	return nil
}

// InitDefault creates and initializes the default backend.
func InitDefault() (RenderBackend, error) {
	b := Default()
	if b == nil {
		return nil, ErrBackendNotAvailable
	}
	if err := b.Init(); err != nil {
		return nil, fmt.Errorf("init %s backend: %w", b.Name(), err)
	}
	flashlight.Logger().Info("backend: initialized", "backend", b.Name(), "default", true)
	return b, nil
}

// Open creates and initializes the backend registered as name. An empty
// name selects the default.
func Open(name string) (RenderBackend, error) {
	if name == "" {
		return InitDefault()
	}
	b := Get(name)
	if b == nil {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrBackendNotAvailable, name, Available())
	}
	if err := b.Init(); err != nil {
		return nil, fmt.Errorf("init %s backend: %w", name, err)
	}
	flashlight.Logger().Info("backend: initialized", "backend", b.Name())
	return b, nil
}
