package internal

import (
	"sort"
	"sync"
)

// ConnectionManager tracks live connections by ID.
type ConnectionManager[C any] struct {
	mu          sync.RWMutex
	connections map[int]C
}

func NewConnectionManager[C any]() *ConnectionManager[C] {
	return &ConnectionManager[C]{
		connections: make(map[int]C),
	}
}

// GetAll returns the connections ordered by ID.
func (cm *ConnectionManager[C]) GetAll() []C {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	ids := make([]int, 0, len(cm.connections))
	for id := range cm.connections {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	all := make([]C, 0, len(ids))
	for _, id := range ids {
		all = append(all, cm.connections[id])
	}
	return all
}

func (cm *ConnectionManager[C]) Get(id int) (C, bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	c, ok := cm.connections[id]
	return c, ok
}

func (cm *ConnectionManager[C]) Register(id int, conn C) {
	cm.mu.Lock()
	cm.connections[id] = conn
	cm.mu.Unlock()
}

// Unregister reports whether id was registered.
func (cm *ConnectionManager[C]) Unregister(id int) bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if _, ok := cm.connections[id]; !ok {
		return false
	}
	delete(cm.connections, id)
	return true
}

func (cm *ConnectionManager[C]) Len() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}
