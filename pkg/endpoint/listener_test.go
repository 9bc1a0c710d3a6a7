package endpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	Adapter
	name string
	log  *[]string
}

func (r *recorder) Connected(*Connection)     { *r.log = append(*r.log, r.name+":connected") }
func (r *recorder) Received(*Connection, any) { *r.log = append(*r.log, r.name+":received") }

func TestListenersFanOutInOrder(t *testing.T) {
	var log []string
	var l Listeners
	l.AddListener(&recorder{name: "a", log: &log})
	l.AddListener(&recorder{name: "b", log: &log})

	conn := &Connection{id: 1}
	l.Connected(conn)
	l.Received(conn, "x")
	l.Idle(conn)
	l.Disconnected(conn)

	assert.Equal(t, []string{"a:connected", "b:connected", "a:received", "b:received"}, log)
}

func TestListenersRemove(t *testing.T) {
	var log []string
	var l Listeners
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log}
	l.AddListener(a)
	l.AddListener(b)
	l.RemoveListener(a)
	l.RemoveListener(&recorder{name: "a", log: &log})

	assert.Equal(t, 1, l.Len())
	l.Connected(&Connection{id: 1})
	assert.Equal(t, []string{"b:connected"}, log)
}

func TestListenersEmptyIsNoop(t *testing.T) {
	var l Listeners
	l.AddListener(nil)
	assert.Equal(t, 0, l.Len())
	assert.NotPanics(t, func() {
		conn := &Connection{id: 1}
		l.Connected(conn)
		l.Disconnected(conn)
		l.Received(conn, 42)
		l.Idle(conn)
	})
}

func TestListenersAddDuringDispatch(t *testing.T) {
	var l Listeners
	calls := 0
	var adder Listener
	adder = &funcListener{onConnected: func(*Connection) {
		calls++
		l.AddListener(adder)
	}}
	l.AddListener(adder)
	l.Connected(&Connection{id: 1})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, l.Len())
}

type funcListener struct {
	Adapter
	onConnected func(*Connection)
}

func (f *funcListener) Connected(c *Connection) { f.onConnected(c) }
