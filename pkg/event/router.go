package event

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/CoverConnect/egonet/pkg/endpoint"
)

// Router delivers received objects by their registered type name. Each
// object is looked up once and only the handlers routed to its name run,
// in the order they were added. Add the Router to an endpoint as a
// listener.
type Router struct {
	endpoint.Adapter
	registry *endpoint.Registry
	lock     sync.RWMutex
	routes   map[string][]func(*endpoint.Connection, any)
}

func NewRouter(registry *endpoint.Registry) *Router {
	return &Router{
		registry: registry,
		routes:   make(map[string][]func(*endpoint.Connection, any)),
	}
}

// Route adds fn for objects of type T, which must already be registered.
// Received objects are decoded as values, so T must not be a pointer type.
func Route[T any](r *Router, fn EventListener[T]) error {
	var zero T
	if t := reflect.TypeOf((*T)(nil)).Elem(); t.Kind() == reflect.Pointer {
		return fmt.Errorf("route %s: pointer types are never received, route %s: %w",
			t, t.Elem(), endpoint.ErrUnregisteredType)
	}
	name, ok := r.registry.NameOf(zero)
	if !ok {
		return fmt.Errorf("route %T: %w", zero, endpoint.ErrUnregisteredType)
	}
	handler := func(conn *endpoint.Connection, object any) {
		switch v := object.(type) {
		case T:
			fn(conn, v)
		case *T:
			fn(conn, *v)
		}
	}
	r.lock.Lock()
	r.routes[name] = append(r.routes[name], handler)
	r.lock.Unlock()
	return nil
}

func (r *Router) Received(conn *endpoint.Connection, object any) {
	name, ok := r.registry.NameOf(object)
	if !ok {
		return
	}
	r.lock.RLock()
	handlers := r.routes[name]
	r.lock.RUnlock()
	for _, handler := range handlers {
		handler(conn, object)
	}
}

var _ endpoint.Listener = (*Router)(nil)
