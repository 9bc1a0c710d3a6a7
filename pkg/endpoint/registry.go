package endpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	ErrUnregisteredType = errors.New("type is not registered")
	ErrUnknownType      = errors.New("unknown message type")
	ErrDuplicate        = errors.New("already registered")
	ErrNilObject        = errors.New("nil object")
)

// Envelope is the wire form of every object: an explicit type discriminant
// followed by the JSON encoded value.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Registry maps type discriminants to Go types. Both ends of a connection
// must register the same names.
type Registry struct {
	lock   sync.RWMutex
	byName map[string]reflect.Type
	byType map[reflect.Type]string
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]reflect.Type),
		byType: make(map[reflect.Type]string),
	}
}

// Register binds name to T. Received objects of this name are decoded as
// values of T, never as pointers.
func Register[T any](r *Registry, name string) error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() == reflect.Interface {
		return fmt.Errorf("register %q: %s is an interface", name, t)
	}
	if name == "" {
		return fmt.Errorf("register %s: empty name", t)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if existing, ok := r.byName[name]; ok {
		return fmt.Errorf("register %q: name %w to %s", name, ErrDuplicate, existing)
	}
	if existing, ok := r.byType[t]; ok {
		return fmt.Errorf("register %q: %s %w as %q", name, t, ErrDuplicate, existing)
	}
	r.byName[name] = t
	r.byType[t] = name
	return nil
}

// MustRegister is Register that panics on error, for package level setup.
func MustRegister[T any](r *Registry, name string) {
	if err := Register[T](r, name); err != nil {
		panic(err)
	}
}

// NameOf returns the discriminant registered for the dynamic type of object.
// A pointer to a registered type resolves to the same name.
func (r *Registry) NameOf(object any) (string, bool) {
	if object == nil {
		return "", false
	}
	t := reflect.TypeOf(object)
	r.lock.RLock()
	defer r.lock.RUnlock()
	if name, ok := r.byType[t]; ok {
		return name, true
	}
	if t.Kind() == reflect.Pointer {
		name, ok := r.byType[t.Elem()]
		return name, ok
	}
	return "", false
}

// Names returns every registered discriminant.
func (r *Registry) Names() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	return names
}

// Encode wraps object in an Envelope. Nil pointers are rejected since they
// would arrive as zero values.
func (r *Registry) Encode(object any) ([]byte, error) {
	if v := reflect.ValueOf(object); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, fmt.Errorf("encode %T: %w", object, ErrNilObject)
	}
	name, ok := r.NameOf(object)
	if !ok {
		return nil, fmt.Errorf("encode %T: %w", object, ErrUnregisteredType)
	}
	data, err := json.Marshal(object)
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", name, err)
	}
	return json.Marshal(Envelope{Type: name, Data: data})
}

func (r *Registry) Decode(data []byte) (any, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	r.lock.RLock()
	t, ok := r.byName[env.Type]
	r.lock.RUnlock()
	if !ok {
		return nil, fmt.Errorf("decode %q: %w", env.Type, ErrUnknownType)
	}
	value := reflect.New(t)
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, value.Interface()); err != nil {
			return nil, fmt.Errorf("decode %q: %w", env.Type, err)
		}
	}
	return value.Elem().Interface(), nil
}
