package endpoint

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/CoverConnect/egonet/internal"
	"github.com/CoverConnect/egonet/pkg/instrument"
)

// Endpoint is the behavior shared by Server and Client.
type Endpoint interface {
	Observable
	Registry() *Registry
	// Run delivers events to listeners until ctx is done or the endpoint is
	// closed. The endpoint is closed when Run returns.
	Run(ctx context.Context) error
	Close() error
}

type eventKind int

const (
	kindConnected eventKind = iota
	kindDisconnected
	kindReceived
	kindIdle
)

func (k eventKind) String() string {
	switch k {
	case kindConnected:
		return "connected"
	case kindDisconnected:
		return "disconnected"
	case kindReceived:
		return "received"
	case kindIdle:
		return "idle"
	default:
		return "unknown"
	}
}

type update struct {
	kind   eventKind
	conn   *Connection
	object any
}

// dispatcher owns the observer list, the live connections and the single
// goroutine that delivers every event. Events for one connection arrive in
// the order connected, received..., disconnected.
type dispatcher struct {
	listeners   Listeners
	deliverLock sync.Mutex
	opts        options
	updates     chan update
	connections *internal.ConnectionManager[*Connection]
	nextID      atomic.Int64
	running     atomic.Bool
	closeOnce   sync.Once
	closed      chan struct{}
}

func newDispatcher(opts []Option) *dispatcher {
	o := newOptions(opts)
	return &dispatcher{
		opts:        o,
		updates:     make(chan update, o.queueSize),
		connections: internal.NewConnectionManager[*Connection](),
		closed:      make(chan struct{}),
	}
}

func (d *dispatcher) Registry() *Registry { return d.opts.registry }

func (d *dispatcher) AddListener(listener Listener) { d.listeners.AddListener(listener) }

func (d *dispatcher) RemoveListener(listener Listener) { d.listeners.RemoveListener(listener) }

func (d *dispatcher) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return fmt.Errorf("endpoint is already running")
	}
	defer d.running.Store(false)
	ticker := time.NewTicker(d.opts.idleCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			d.Close()
			return ctx.Err()
		case <-d.closed:
			return nil
		case u := <-d.updates:
			if d.isClosed() {
				d.settle(u)
				return nil
			}
			d.deliver(ctx, u)
		case <-ticker.C:
			d.checkIdle(ctx)
		}
	}
}

func (d *dispatcher) isClosed() bool {
	select {
	case <-d.closed:
		return true
	default:
		return false
	}
}

func (d *dispatcher) enqueue(u update) bool {
	select {
	case d.updates <- u:
		return true
	case <-d.closed:
		return false
	}
}

// accept registers ws as a new connection. The connected event is queued
// before the reader starts so it always precedes received events.
func (d *dispatcher) accept(ws *websocket.Conn) (*Connection, error) {
	if d.isClosed() {
		_ = ws.Close()
		return nil, ErrClosed
	}
	conn := newConnection(int(d.nextID.Add(1)), ws, d)
	d.connections.Register(conn.id, conn)
	d.opts.metrics.Opened()
	d.opts.logger.Debug().Int("conn", conn.id).Stringer("remote", ws.RemoteAddr()).Msg("connection opened")
	if !d.enqueue(update{kind: kindConnected, conn: conn}) {
		conn.Close()
		d.connections.Unregister(conn.id)
		d.opts.metrics.Closed()
		return nil, ErrClosed
	}
	go conn.keepAlive()
	go conn.readLoop()
	return conn, nil
}

// disconnected is called from the reader goroutine once it exits. The event
// is queued behind the connection's pending events. After the endpoint is
// closed there is no dispatch loop left, so it is delivered in place.
func (d *dispatcher) disconnected(conn *Connection) {
	if !d.connections.Unregister(conn.id) {
		return
	}
	d.opts.metrics.Closed()
	d.opts.logger.Debug().Int("conn", conn.id).Msg("connection closed")
	u := update{kind: kindDisconnected, conn: conn}
	if !d.enqueue(u) {
		d.deliver(context.Background(), u)
	}
}

func (d *dispatcher) checkIdle(ctx context.Context) {
	for _, conn := range d.connections.GetAll() {
		if conn.announced.Load() && conn.IsConnected() && conn.IsIdle() && conn.idleNotified.CompareAndSwap(false, true) {
			d.deliver(ctx, update{kind: kindIdle, conn: conn})
		}
	}
}

// deliver notifies listeners. A panicking listener is logged and the
// remaining events keep flowing. Events for a connection whose connect was
// never delivered, or whose disconnect already was, are dropped.
func (d *dispatcher) deliver(ctx context.Context, u update) {
	d.deliverLock.Lock()
	defer d.deliverLock.Unlock()
	if u.kind != kindConnected && !u.conn.announced.Load() {
		return
	}
	if u.kind == kindDisconnected {
		u.conn.announced.Store(false)
	}
	kind := u.kind.String()
	_, span := instrument.StartSpan(ctx, d.opts.tracer, kind, u.conn.id)
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("listener panic on %s: %v", kind, r)
			d.opts.metrics.Panicked(kind)
			d.opts.logger.Error().Err(err).Int("conn", u.conn.id).Msg("recovered from panic in listener")
			instrument.Fail(span, err)
		}
		d.opts.metrics.Dispatched(kind, time.Since(start))
		span.End()
	}()
	switch u.kind {
	case kindConnected:
		u.conn.announced.Store(true)
		d.listeners.Connected(u.conn)
	case kindDisconnected:
		d.listeners.Disconnected(u.conn)
	case kindReceived:
		d.listeners.Received(u.conn, u.object)
	case kindIdle:
		d.listeners.Idle(u.conn)
	}
}

// settle delivers u only if it is a disconnect. Other events queued when the
// endpoint closes are dropped.
func (d *dispatcher) settle(u update) {
	if u.kind == kindDisconnected {
		d.deliver(context.Background(), u)
	}
}

// Connections returns the open connections ordered by ID.
func (d *dispatcher) Connections() []*Connection {
	return d.connections.GetAll()
}

// Close stops the dispatch loop and closes every connection. Queued
// disconnects are still delivered; everything else still queued is dropped.
func (d *dispatcher) Close() error {
	d.closeOnce.Do(func() {
		close(d.closed)
		for _, conn := range d.connections.GetAll() {
			conn.Close()
		}
		var pending []update
		for drained := false; !drained; {
			select {
			case u := <-d.updates:
				pending = append(pending, u)
			default:
				drained = true
			}
		}
		// Close may be called from a listener, so deliver off this goroutine.
		go func() {
			for _, u := range pending {
				d.settle(u)
			}
		}()
	})
	return nil
}
