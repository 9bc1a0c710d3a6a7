package egonet

import (
	"github.com/CoverConnect/egonet/pkg/config"
	"github.com/CoverConnect/egonet/pkg/dmetric"
	"github.com/CoverConnect/egonet/pkg/endpoint"
	"github.com/CoverConnect/egonet/pkg/logging"
	"github.com/CoverConnect/egonet/pkg/message"
)

// endpointOptions builds endpoint options from the loaded configuration.
func endpointOptions(metrics *dmetric.Recorder) []endpoint.Option {
	return []endpoint.Option{
		endpoint.WithRegistry(message.NewRegistry()),
		endpoint.WithLogger(logging.Component("endpoint")),
		endpoint.WithIdleThreshold(config.Duration("idlethreshold")),
		endpoint.WithIdleCheckInterval(config.Duration("idlecheckinterval")),
		endpoint.WithKeepAlive(config.Duration("keepalive")),
		endpoint.WithTimeout(config.Duration("timeout")),
		endpoint.WithQueueSize(config.Int("queuesize")),
		endpoint.WithReadLimit(int64(config.Int("readlimit"))),
		endpoint.WithMetrics(metrics),
	}
}
