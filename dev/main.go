package main

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/CoverConnect/egonet/pkg/endpoint"
	"github.com/CoverConnect/egonet/pkg/event"
	"github.com/CoverConnect/egonet/pkg/logging"
	"github.com/CoverConnect/egonet/pkg/message"
)

// dev runs a server and a client in one process and prints what flows
// between them.
func main() {
	logging.Init("debug", nil)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := endpoint.NewServer(endpoint.WithRegistry(message.NewRegistry()), endpoint.WithIdleThreshold(3*time.Second))
	event.OnConnect(server, func(conn *endpoint.Connection) { fmt.Println("server: connected", conn) })
	event.OnReceive(server, func(conn *endpoint.Connection, chat message.Chat) {
		fmt.Printf("server: %s says %q\n", conn, chat.Text)
		chat.From = "echo"
		_, _ = conn.Send(chat)
	})
	event.OnIdle(server, func(conn *endpoint.Connection) { fmt.Println("server: idle", conn) })
	event.OnDisconnect(server, func(conn *endpoint.Connection) { fmt.Println("server: disconnected", conn) })
	go func() { _ = server.Run(ctx) }()
	ts := httptest.NewServer(server)
	defer ts.Close()
	defer server.Close()

	client := endpoint.NewClient(endpoint.WithRegistry(message.NewRegistry()))
	event.OnReceive(client, func(_ *endpoint.Connection, chat message.Chat) {
		fmt.Printf("client: %s replied %q\n", chat.From, chat.Text)
	})
	go func() { _ = client.Run(ctx) }()
	defer client.Close()
	if err := client.Connect(ctx, "ws"+strings.TrimPrefix(ts.URL, "http"), nil); err != nil {
		fmt.Println(err)
		return
	}

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := client.Send(message.Chat{From: "dev", Text: fmt.Sprintf("ping %d", i)}); err != nil {
				fmt.Println(err)
				return
			}
		}
	}
}
