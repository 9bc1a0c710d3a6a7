package event

import "github.com/CoverConnect/egonet/pkg/endpoint"

// ConnectionListener handles an event that carries only the connection.
type ConnectionListener func(conn *endpoint.Connection)

// EventListener is the type of the function that handles received objects
// of type T.
type EventListener[T any] func(conn *endpoint.Connection, event T)

type connectListener struct {
	endpoint.Adapter
	fn ConnectionListener
}

func (l *connectListener) Connected(conn *endpoint.Connection) { l.fn(conn) }

type disconnectListener struct {
	endpoint.Adapter
	fn ConnectionListener
}

func (l *disconnectListener) Disconnected(conn *endpoint.Connection) { l.fn(conn) }

type idleListener struct {
	endpoint.Adapter
	fn ConnectionListener
}

func (l *idleListener) Idle(conn *endpoint.Connection) { l.fn(conn) }

type receiveListener[T any] struct {
	endpoint.Adapter
	fn EventListener[T]
}

func (l *receiveListener[T]) Received(conn *endpoint.Connection, object any) {
	if event, ok := object.(T); ok {
		l.fn(conn, event)
	}
}

// OnConnect calls fn when the remote end of ep has connected. fn runs on the
// endpoint's dispatch goroutine before any object from that connection is
// received, and must not block for long since other network activity waits
// for it to return.
func OnConnect(ep endpoint.Observable, fn ConnectionListener) {
	ep.AddListener(&connectListener{fn: fn})
}

// OnDisconnect calls fn when the remote end is no longer connected. There is
// no guarantee as to which goroutine calls fn.
func OnDisconnect(ep endpoint.Observable, fn ConnectionListener) {
	ep.AddListener(&disconnectListener{fn: fn})
}

// OnReceive calls fn for every received object of type T. Objects of any
// other type are ignored by this registration. When T is an interface, fn is
// called for every object implementing it. fn runs on the dispatch goroutine
// and must not block for long.
func OnReceive[T any](ep endpoint.Observable, fn EventListener[T]) {
	ep.AddListener(&receiveListener[T]{fn: fn})
}

// OnIdle calls fn when the connection has been idle for longer than its
// threshold (see Connection.SetIdleThreshold).
func OnIdle(ep endpoint.Observable, fn ConnectionListener) {
	ep.AddListener(&idleListener{fn: fn})
}
