package endpoint

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Client holds at most one connection to a Server.
type Client struct {
	*dispatcher
	dialer *websocket.Dialer
	lock   sync.RWMutex
	conn   *Connection
}

func NewClient(options ...Option) *Client {
	dialer := *websocket.DefaultDialer
	return &Client{
		dispatcher: newDispatcher(options),
		dialer:     &dialer,
	}
}

// Connect dials url (ws:// or wss://), closing any previous connection.
func (c *Client) Connect(ctx context.Context, url string, header http.Header) error {
	ws, _, err := c.dialer.DialContext(ctx, url, header)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", url, err)
	}
	conn, err := c.accept(ws)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", url, err)
	}
	c.lock.Lock()
	previous := c.conn
	c.conn = conn
	c.lock.Unlock()
	if previous != nil {
		previous.Close()
	}
	return nil
}

// Connection returns the current connection, or nil.
func (c *Client) Connection() *Connection {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.conn
}

func (c *Client) Send(object any) (int, error) {
	conn := c.Connection()
	if conn == nil {
		return 0, ErrNotConnected
	}
	return conn.Send(object)
}

var _ Endpoint = (*Client)(nil)
