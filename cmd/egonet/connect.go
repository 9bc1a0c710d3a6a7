package egonet

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/CoverConnect/egonet/pkg/config"
	"github.com/CoverConnect/egonet/pkg/endpoint"
	"github.com/CoverConnect/egonet/pkg/event"
	"github.com/CoverConnect/egonet/pkg/message"
)

func newConnectCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "connect URL",
		Short: "Connect to a relay and chat from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = config.String("name")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runClient(ctx, args[0], name, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Name shown to other peers")
	return cmd
}

func runClient(ctx context.Context, url, name string, in io.Reader, out io.Writer) error {
	client := endpoint.NewClient(endpointOptions(nil)...)
	defer client.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	router := event.NewRouter(client.Registry())
	if err := event.Route(router, func(_ *endpoint.Connection, chat message.Chat) {
		fmt.Fprintf(out, "[%s] %s: %s\n", chat.SentAt.Local().Format(time.Kitchen), chat.From, chat.Text)
	}); err != nil {
		return err
	}
	if err := event.Route(router, func(_ *endpoint.Connection, p message.Presence) {
		state := "left"
		if p.Online {
			state = "joined"
		}
		fmt.Fprintf(out, "* %s %s\n", p.Name, state)
	}); err != nil {
		return err
	}
	client.AddListener(router)
	event.OnDisconnect(client, func(*endpoint.Connection) {
		fmt.Fprintln(out, "* disconnected")
		cancel()
	})

	runErr := make(chan error, 1)
	go func() { runErr <- client.Run(ctx) }()

	if err := client.Connect(ctx, url, nil); err != nil {
		return err
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if line == "" {
				continue
			}
			if _, err := client.Send(message.Chat{From: name, Text: line, SentAt: time.Now().UTC()}); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}
}
