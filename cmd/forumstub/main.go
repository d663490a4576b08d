// Command forumstub runs the in-memory reference communities service and
// mints bearer tokens it accepts. It exists for local development and
// end-to-end checks of forumctl.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/communities-gateway/internal/app"
	"github.com/heartmarshall/communities-gateway/internal/auth"
	"github.com/heartmarshall/communities-gateway/internal/config"
)

func main() {
	a := &cli.App{
		Name:    "forumstub",
		Usage:   "in-memory communities service",
		Version: app.BuildVersion(),
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "serve the API until SIGINT or SIGTERM",
				Action: serve,
			},
			{
				Name:  "mint-token",
				Usage: "print a bearer token for a user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Usage: "user id (token subject)", Required: true},
					&cli.StringFlag{Name: "name", Usage: "display name"},
				},
				Action: mintToken,
			},
		},
	}

	if err := a.Run(os.Args); err != nil {
		log.Fatalf("forumstub: %v", err)
	}
}

func loadStubConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateStub(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func serve(c *cli.Context) error {
	cfg, err := loadStubConfig()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.RunStub(ctx, cfg.Stub, logger)
}

func mintToken(c *cli.Context) error {
	cfg, err := loadStubConfig()
	if err != nil {
		return err
	}

	name := c.String("name")
	if name == "" {
		name = c.String("user")
	}
	token, err := app.NewJWTManager(cfg.Stub).GenerateAccessToken(auth.Identity{
		UserID: c.String("user"),
		Name:   name,
	})
	if err != nil {
		return fmt.Errorf("mint token: %w", err)
	}
	fmt.Fprintln(c.App.Writer, token)
	return nil
}

