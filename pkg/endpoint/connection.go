package endpoint

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

var (
	ErrNotConnected = errors.New("not connected")
	ErrClosed       = errors.New("endpoint closed")
)

// Connection is one websocket channel between two endpoints.
type Connection struct {
	id       int
	ws       *websocket.Conn
	endpoint *dispatcher

	name          atomic.Pointer[string]
	idleThreshold atomic.Int64
	lastActive    atomic.Int64
	idleNotified  atomic.Bool
	connected     atomic.Bool
	announced     atomic.Bool

	writeLock sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

func newConnection(id int, ws *websocket.Conn, d *dispatcher) *Connection {
	c := &Connection{
		id:       id,
		ws:       ws,
		endpoint: d,
		done:     make(chan struct{}),
	}
	c.idleThreshold.Store(int64(d.opts.idleThreshold))
	c.touch()
	c.connected.Store(true)
	return c
}

// ID is unique among the connections of one endpoint.
func (c *Connection) ID() int { return c.id }

func (c *Connection) Name() string {
	if n := c.name.Load(); n != nil {
		return *n
	}
	return ""
}

// SetName sets a friendly name used by String.
func (c *Connection) SetName(name string) { c.name.Store(&name) }

func (c *Connection) String() string {
	if name := c.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("Connection %d", c.id)
}

func (c *Connection) RemoteAddr() net.Addr { return c.ws.RemoteAddr() }

func (c *Connection) IsConnected() bool { return c.connected.Load() }

// SetIdleThreshold sets how long the connection may go without sending or
// receiving an object before idle listeners are notified. Zero disables it.
func (c *Connection) SetIdleThreshold(d time.Duration) {
	c.idleThreshold.Store(int64(d))
}

func (c *Connection) IdleThreshold() time.Duration {
	return time.Duration(c.idleThreshold.Load())
}

// IdleTime is the time since an object was last sent or received.
// Keepalive frames are not counted.
func (c *Connection) IdleTime() time.Duration {
	return time.Since(time.Unix(0, c.lastActive.Load()))
}

func (c *Connection) IsIdle() bool {
	threshold := c.IdleThreshold()
	return threshold > 0 && c.IdleTime() > threshold
}

func (c *Connection) touch() {
	c.lastActive.Store(time.Now().UnixNano())
	c.idleNotified.Store(false)
}

// Send encodes object with the endpoint registry and writes it. It returns
// the number of bytes written.
func (c *Connection) Send(object any) (int, error) {
	if !c.IsConnected() {
		return 0, fmt.Errorf("send to %s: %w", c, ErrNotConnected)
	}
	data, err := c.endpoint.opts.registry.Encode(object)
	if err != nil {
		return 0, err
	}
	c.writeLock.Lock()
	defer c.writeLock.Unlock()
	if timeout := c.endpoint.opts.timeout; timeout > 0 {
		_ = c.ws.SetWriteDeadline(time.Now().Add(timeout))
	}
	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		c.Close()
		return 0, fmt.Errorf("send to %s: %w", c, err)
	}
	c.touch()
	c.endpoint.opts.metrics.Sent()
	return len(data), nil
}

// Close sends a close frame and closes the socket. The disconnected
// notification follows once the reader goroutine exits.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.connected.Store(false)
		close(c.done)
		deadline := time.Now().Add(time.Second)
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		err = c.ws.Close()
	})
	return err
}

func (c *Connection) extendReadDeadline() {
	if timeout := c.endpoint.opts.timeout; timeout > 0 {
		_ = c.ws.SetReadDeadline(time.Now().Add(timeout))
	}
}

func (c *Connection) keepAlive() {
	interval := c.endpoint.opts.keepAlive
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(interval)); err != nil {
				c.endpoint.opts.logger.Debug().Err(err).Int("conn", c.id).Msg("keepalive failed")
				c.Close()
				return
			}
		}
	}
}

// readLoop runs on its own goroutine for the life of the connection and
// reports the disconnect itself when the socket fails.
func (c *Connection) readLoop() {
	d := c.endpoint
	c.ws.SetReadLimit(d.opts.readLimit)
	c.extendReadDeadline()
	c.ws.SetPongHandler(func(string) error {
		c.extendReadDeadline()
		return nil
	})
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && c.IsConnected() {
				d.opts.logger.Debug().Err(err).Int("conn", c.id).Msg("read failed")
			}
			break
		}
		c.extendReadDeadline()
		c.touch()
		object, err := d.opts.registry.Decode(data)
		if err != nil {
			d.opts.metrics.DecodeFailed()
			d.opts.logger.Warn().Err(err).Int("conn", c.id).Msg("dropping message")
			continue
		}
		if !d.enqueue(update{kind: kindReceived, conn: c, object: object}) {
			break
		}
	}
	c.Close()
	d.disconnected(c)
}
