// Command forumctl is a command-line client of the communities service.
// It exposes every gateway operation plus the discovery and membership
// caches, and prints results as indented JSON on stdout. Logs go to stderr.
//
// Configuration comes from CONFIG_PATH / ./config.yaml and GATEWAY_* env
// variables; the global flags override both.
//
// Exit codes: 0 = success, 1 = error or refused request, 2 = usage error.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/communities-gateway/internal/app"
	"github.com/heartmarshall/communities-gateway/internal/config"
)

// env is the state shared by all subcommands, built in the Before hook.
type env struct {
	cfg    *config.Config
	log    *slog.Logger
	client *app.Client
	reg    *prometheus.Registry
	out    io.Writer
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "forumctl:", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	e := &env{out: out}

	return &cli.App{
		Name:    "forumctl",
		Usage:   "talk to the communities service",
		Version: app.BuildVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "base-url", Usage: "service base URL"},
			&cli.StringFlag{Name: "prefix", Usage: "routes prefix"},
			&cli.StringFlag{Name: "token", Usage: "bearer token", EnvVars: []string{"FORUMCTL_TOKEN"}},
			&cli.BoolFlag{Name: "metrics", Usage: "print request metrics to stderr on exit"},
		},
		Before: e.init,
		After:  e.dumpMetrics,
		Commands: []*cli.Command{
			healthCommand(e),
			whoamiCommand(e),
			endpointsCommand(e),
			communitiesCommand(e),
			categoriesCommand(e),
			topicsCommand(e),
			discoverCommand(e),
			mineCommand(e),
			syncCommand(e),
		},
	}
}

func (e *env) init(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.IsSet("base-url") {
		cfg.Gateway.BaseURL = c.String("base-url")
	}
	if c.IsSet("prefix") {
		cfg.Gateway.RoutesPrefix = c.String("prefix")
	}
	if c.IsSet("token") {
		cfg.Gateway.Token = c.String("token")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	e.cfg = cfg
	e.log = app.NewLogger(cfg.Log)
	e.reg = prometheus.NewRegistry()
	e.client = app.NewClient(cfg.Gateway, e.log, e.reg)
	return nil
}

// dumpMetrics writes the gathered metrics to the app's error writer in the
// Prometheus text exposition format.
func (e *env) dumpMetrics(c *cli.Context) error {
	if !c.Bool("metrics") || e.reg == nil {
		return nil
	}
	families, err := e.reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	w := c.App.ErrWriter
	if w == nil {
		w = os.Stderr
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
