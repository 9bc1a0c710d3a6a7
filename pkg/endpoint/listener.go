package endpoint

import "sync"

// Listener receives connection activity from an Endpoint.
//
// Connected, Received and Idle are called from the endpoint's dispatch
// goroutine and must not block for long, since no other network activity is
// delivered until they return. Connected is always called before any
// Received for the same connection. Disconnected has no goroutine guarantee.
type Listener interface {
	Connected(conn *Connection)
	Disconnected(conn *Connection)
	Received(conn *Connection, object any)
	Idle(conn *Connection)
}

// Adapter implements Listener with empty methods. Embed it to override only
// the events of interest.
type Adapter struct{}

func (Adapter) Connected(*Connection)     {}
func (Adapter) Disconnected(*Connection)  {}
func (Adapter) Received(*Connection, any) {}
func (Adapter) Idle(*Connection)          {}

// Observable is anything that accepts listeners.
type Observable interface {
	AddListener(listener Listener)
	RemoveListener(listener Listener)
}

// Listeners is an ordered observer list. It is itself a Listener that
// forwards every call to each registered listener in registration order.
type Listeners struct {
	lock sync.RWMutex
	list []Listener
}

// AddListener appends listener. The same listener may be added more than
// once and is then notified once per registration.
func (l *Listeners) AddListener(listener Listener) {
	if listener == nil {
		return
	}
	l.lock.Lock()
	list := make([]Listener, len(l.list), len(l.list)+1)
	copy(list, l.list)
	l.list = append(list, listener)
	l.lock.Unlock()
}

// RemoveListener removes the first registration of listener. Listeners are
// compared by identity, so register pointers if the concrete type is not
// comparable.
func (l *Listeners) RemoveListener(listener Listener) {
	if listener == nil {
		return
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	for i, one := range l.list {
		if one == listener {
			list := make([]Listener, 0, len(l.list)-1)
			list = append(list, l.list[:i]...)
			l.list = append(list, l.list[i+1:]...)
			return
		}
	}
}

func (l *Listeners) Len() int {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return len(l.list)
}

func (l *Listeners) snapshot() []Listener {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.list
}

func (l *Listeners) Connected(conn *Connection) {
	for _, listener := range l.snapshot() {
		listener.Connected(conn)
	}
}

func (l *Listeners) Disconnected(conn *Connection) {
	for _, listener := range l.snapshot() {
		listener.Disconnected(conn)
	}
}

func (l *Listeners) Received(conn *Connection, object any) {
	for _, listener := range l.snapshot() {
		listener.Received(conn, object)
	}
}

func (l *Listeners) Idle(conn *Connection) {
	for _, listener := range l.snapshot() {
		listener.Idle(conn)
	}
}
