package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/communities-gateway/internal/config"
	"github.com/heartmarshall/communities-gateway/internal/dispatch"
	"github.com/heartmarshall/communities-gateway/internal/gateway"
	"github.com/heartmarshall/communities-gateway/internal/store"
)

// Client bundles the gateway and both cache stores over one dispatcher.
type Client struct {
	Gateway    *gateway.Gateway
	Source     *store.GatewaySource
	Discovery  *store.Discovery
	Membership *store.Membership
}

// NewClient wires a Client from the gateway configuration. When reg is
// non-nil the dispatcher registers its request metrics there.
func NewClient(cfg config.GatewayConfig, logger *slog.Logger, reg prometheus.Registerer) *Client {
	opts := []dispatch.Option{
		dispatch.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		dispatch.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	}
	if reg != nil {
		opts = append(opts, dispatch.WithMetrics(dispatch.NewMetrics(reg)))
	}

	userAgent := cfg.UserAgent
	if userAgent != "" {
		userAgent += "/" + Version
	}
	d := dispatch.New(dispatch.Config{
		BaseURL:      cfg.BaseURL,
		RoutesPrefix: cfg.RoutesPrefix,
		Token:        cfg.Token,
		UserAgent:    userAgent,
	}, logger, opts...)

	gw := gateway.New(d, logger)
	src := store.NewGatewaySource(gw)

	return &Client{
		Gateway:    gw,
		Source:     src,
		Discovery:  store.NewDiscovery(src, logger),
		Membership: store.NewMembership(src, logger),
	}
}

// Sync refreshes both stores concurrently and returns the first failure.
// Both fetches run to completion, so one store failing leaves the other
// loaded.
func (c *Client) Sync(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return c.Discovery.FetchAll(ctx) })
	g.Go(func() error { return c.Membership.FetchMine(ctx) })
	return g.Wait()
}
