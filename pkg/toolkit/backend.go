package toolkit

import (
	"fmt"
	"sync"
)

// Backend loads the platform support a context needs, such as native
// libraries or a display connection.
type Backend interface {
	Name() string
	Load() error
}

var (
	backendLock sync.Mutex
	backend     Backend
)

// LoadBackend loads b unless a backend is already loaded, in which case it
// does nothing and the first backend stays in place. A failed load leaves
// no backend loaded.
func LoadBackend(b Backend) error {
	backendLock.Lock()
	defer backendLock.Unlock()
	if backend != nil {
		return nil
	}
	if err := b.Load(); err != nil {
		return fmt.Errorf("load backend %s: %w", b.Name(), err)
	}
	backend = b
	return nil
}

// LoadedBackend returns the loaded backend, or nil.
func LoadedBackend() Backend {
	backendLock.Lock()
	defer backendLock.Unlock()
	return backend
}
