package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoverConnect/egonet/pkg/api/handler"
	"github.com/CoverConnect/egonet/pkg/dmetric"
	"github.com/CoverConnect/egonet/pkg/endpoint"
	"github.com/CoverConnect/egonet/pkg/event"
	"github.com/CoverConnect/egonet/pkg/message"
)

type fixture struct {
	ts     *httptest.Server
	server *endpoint.Server
	ctx    context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	reg := prometheus.NewRegistry()
	server := endpoint.NewServer(
		endpoint.WithRegistry(message.NewRegistry()),
		endpoint.WithLogger(zerolog.Nop()),
		endpoint.WithMetrics(dmetric.NewRecorder(reg, "egonet")),
	)
	go func() { _ = server.Run(ctx) }()
	ts := httptest.NewServer(NewRouter(server, "/ws", reg))
	t.Cleanup(func() {
		cancel()
		_ = server.Close()
		ts.Close()
	})
	return &fixture{ts: ts, server: server, ctx: ctx}
}

func (f *fixture) dial(t *testing.T) (*endpoint.Client, <-chan message.Chat) {
	t.Helper()
	chats := make(chan message.Chat, 8)
	client := endpoint.NewClient(endpoint.WithRegistry(message.NewRegistry()), endpoint.WithLogger(zerolog.Nop()))
	connected := make(chan struct{})
	event.OnConnect(client, func(*endpoint.Connection) { close(connected) })
	event.OnReceive(client, func(_ *endpoint.Connection, c message.Chat) { chats <- c })
	go func() { _ = client.Run(f.ctx) }()
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Connect(f.ctx, "ws"+strings.TrimPrefix(f.ts.URL, "http")+"/ws", nil))
	select {
	case <-connected:
	case <-time.After(5 * time.Second):
		t.Fatal("client did not connect")
	}
	require.Eventually(t, func() bool { return len(f.server.Connections()) == 1 }, 5*time.Second, 5*time.Millisecond)
	return client, chats
}

func getJSON(t *testing.T, u string, v any) {
	t.Helper()
	resp, err := http.Get(u)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	var info handler.ProcessInfoResponse
	getJSON(t, f.ts.URL+"/health", &info)
	assert.Equal(t, 0, info.Connections)
	assert.NotEmpty(t, info.Name)
}

func TestConnectionsListsPeers(t *testing.T) {
	f := newFixture(t)
	f.dial(t)

	var resp handler.GetConnectionsResponse
	getJSON(t, f.ts.URL+"/connections", &resp)
	require.Len(t, resp.Connections, 1)
	assert.Equal(t, 1, resp.Connections[0].ID)
	assert.NotEmpty(t, resp.Connections[0].Remote)
}

func TestBroadcastReachesClients(t *testing.T) {
	f := newFixture(t)
	_, chats := f.dial(t)

	resp, err := http.PostForm(f.ts.URL+"/broadcast", url.Values{"text": {"hello"}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	select {
	case c := <-chats:
		assert.Equal(t, "server", c.From)
		assert.Equal(t, "hello", c.Text)
	case <-time.After(5 * time.Second):
		t.Fatal("broadcast not received")
	}
}

func TestBroadcastRequiresText(t *testing.T) {
	f := newFixture(t)
	resp, err := http.PostForm(f.ts.URL+"/broadcast", url.Values{})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetricsExposed(t *testing.T) {
	f := newFixture(t)
	f.dial(t)

	resp, err := http.Get(f.ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "egonet_endpoint_connections 1")
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "127.0.0.1:0", http.NotFoundHandler()) }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return")
	}
}
