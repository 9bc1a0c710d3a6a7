package egonet

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/CoverConnect/egonet/pkg/api"
	"github.com/CoverConnect/egonet/pkg/config"
	"github.com/CoverConnect/egonet/pkg/dmetric"
	"github.com/CoverConnect/egonet/pkg/endpoint"
	"github.com/CoverConnect/egonet/pkg/event"
	"github.com/CoverConnect/egonet/pkg/instrument"
	"github.com/CoverConnect/egonet/pkg/logging"
	"github.com/CoverConnect/egonet/pkg/message"
)

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chat relay server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				config.Set("port", port)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides egonet.port)")
	return cmd
}

func runServer(ctx context.Context) error {
	logger := logging.Component("serve")
	if collector := config.String("otlpendpoint"); collector != "" {
		shutdown, err := instrument.InitializeTracer(ctx, "egonet", collector)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialize tracer")
		} else {
			defer func() {
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(flushCtx)
			}()
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	server := endpoint.NewServer(endpointOptions(dmetric.NewRecorder(reg, "egonet"))...)
	defer server.Close()
	relay(server)

	runErr := make(chan error, 1)
	go func() { runErr <- server.Run(ctx) }()

	path := config.String("path")
	err := api.Serve(ctx, ":"+config.String("port"), api.NewRouter(server, path, reg))
	if err != nil {
		return err
	}
	if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// relay wires the chat relay onto server: chats are forwarded to every
// other peer, and joins and leaves are announced as presence.
func relay(server *endpoint.Server) {
	logger := logging.Component("relay")

	event.OnConnect(server, func(conn *endpoint.Connection) {
		logger.Info().Int("conn", conn.ID()).Stringer("remote", conn.RemoteAddr()).Msg("peer connected")
		if err := server.SendToAllExcept(conn.ID(), message.Presence{Name: conn.String(), Online: true}); err != nil {
			logger.Warn().Err(err).Msg("presence broadcast failed")
		}
	})

	event.OnReceive(server, func(conn *endpoint.Connection, chat message.Chat) {
		if chat.From != "" && conn.Name() == "" {
			conn.SetName(chat.From)
		}
		chat.From = conn.String()
		if chat.SentAt.IsZero() {
			chat.SentAt = time.Now().UTC()
		}
		if err := server.SendToAllExcept(conn.ID(), chat); err != nil {
			logger.Warn().Err(err).Msg("relay failed")
		}
	})

	event.OnIdle(server, func(conn *endpoint.Connection) {
		logger.Debug().Int("conn", conn.ID()).Dur("idle", conn.IdleTime()).Msg("peer idle")
	})

	event.OnDisconnect(server, func(conn *endpoint.Connection) {
		logger.Info().Int("conn", conn.ID()).Msg("peer disconnected")
		if err := server.SendToAllExcept(conn.ID(), message.Presence{Name: conn.String(), Online: false}); err != nil {
			logger.Warn().Err(err).Msg("presence broadcast failed")
		}
	})
}
