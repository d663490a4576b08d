package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/communities-gateway/internal/auth"
	"github.com/heartmarshall/communities-gateway/internal/contract"
)

var (
	offsetFlag = &cli.IntFlag{Name: "offset", Usage: "number of items to skip"}
	limitFlag  = &cli.IntFlag{Name: "limit", Usage: "maximum number of items"}
)

func pageQuery(c *cli.Context) contract.PageQuery {
	var q contract.PageQuery
	if c.IsSet("offset") {
		q.Offset = contract.Int(c.Int("offset"))
	}
	if c.IsSet("limit") {
		q.Limit = contract.Int(c.Int("limit"))
	}
	return q
}

func categoryRequest(c *cli.Context) contract.ForumCategoryRequest {
	req := contract.ForumCategoryRequest{Name: c.String("name")}
	if c.IsSet("description") {
		d := c.String("description")
		req.Description = &d
	}
	return req
}

func healthCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "check the service is up",
		Action: func(c *cli.Context) error {
			resp, err := e.client.Gateway.CheckHealth(c.Context)
			return emit(e, resp, err)
		},
	}
}

func whoamiCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "decode the configured token without verifying it",
		Action: func(c *cli.Context) error {
			token := e.client.Gateway.Dispatcher().Token()
			if token == "" {
				return cli.Exit("no token configured", 1)
			}
			id, exp, err := auth.UnverifiedIdentity(token)
			if err != nil {
				return fmt.Errorf("decode token: %w", err)
			}
			out := map[string]any{"user_id": id.UserID, "name": id.Name}
			if exp != nil {
				out["expires_at"] = exp.Format(time.RFC3339)
				out["expired"] = exp.Before(time.Now())
			}
			return e.print(out)
		},
	}
}

func endpointsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "endpoints",
		Usage: "list the capabilities of the service",
		Action: func(c *cli.Context) error {
			for _, d := range contract.All() {
				path := d.Path
				if !d.Root {
					path = e.cfg.Gateway.RoutesPrefix + path
				}
				fmt.Fprintf(e.out, "%-7s %-62s %-6s %s\n", d.Method, path, d.Auth, d.Summary)
			}
			return nil
		},
	}
}

func communitiesCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "communities",
		Usage: "create, list and join communities",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list one page of all communities",
				Flags: []cli.Flag{offsetFlag, limitFlag},
				Action: func(c *cli.Context) error {
					resp, err := e.client.Gateway.ListAllCommunities(c.Context, pageQuery(c))
					return emit(e, resp, err)
				},
			},
			{
				Name:  "mine",
				Usage: "list communities you created or joined",
				Action: func(c *cli.Context) error {
					resp, err := e.client.Gateway.ListMyCommunities(c.Context)
					return emit(e, resp, err)
				},
			},
			{
				Name:      "get",
				Usage:     "show one community",
				ArgsUsage: "<community-id>",
				Action: func(c *cli.Context) error {
					if err := requireArgs(c, "community-id"); err != nil {
						return err
					}
					resp, err := e.client.Gateway.GetCommunity(c.Context, c.Args().Get(0))
					return emit(e, resp, err)
				},
			},
			{
				Name:  "create",
				Usage: "create a community",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "description"},
				},
				Action: func(c *cli.Context) error {
					resp, err := e.client.Gateway.CreateCommunity(c.Context, contract.CreateCommunityRequest{
						Name:        c.String("name"),
						Description: c.String("description"),
					})
					return emit(e, resp, err)
				},
			},
			{
				Name:      "join",
				Usage:     "join a community",
				ArgsUsage: "<community-id>",
				Action: func(c *cli.Context) error {
					if err := requireArgs(c, "community-id"); err != nil {
						return err
					}
					resp, err := e.client.Gateway.JoinCommunity(c.Context, c.Args().Get(0))
					return emit(e, resp, err)
				},
			},
			{
				Name:      "status",
				Usage:     "show your membership in a community",
				ArgsUsage: "<community-id>",
				Action: func(c *cli.Context) error {
					if err := requireArgs(c, "community-id"); err != nil {
						return err
					}
					resp, err := e.client.Gateway.GetMembershipStatus(c.Context, c.Args().Get(0))
					return emit(e, resp, err)
				},
			},
		},
	}
}

func categoriesCommand(e *env) *cli.Command {
	categoryFlags := []cli.Flag{
		&cli.StringFlag{Name: "name", Required: true},
		&cli.StringFlag{Name: "description"},
	}

	return &cli.Command{
		Name:  "categories",
		Usage: "manage forum categories of a community",
		Subcommands: []*cli.Command{
			{
				Name:      "list",
				ArgsUsage: "<community-id>",
				Action: func(c *cli.Context) error {
					if err := requireArgs(c, "community-id"); err != nil {
						return err
					}
					resp, err := e.client.Gateway.ListForumCategories(c.Context, c.Args().Get(0))
					return emit(e, resp, err)
				},
			},
			{
				Name:      "create",
				ArgsUsage: "<community-id>",
				Flags:     categoryFlags,
				Action: func(c *cli.Context) error {
					if err := requireArgs(c, "community-id"); err != nil {
						return err
					}
					resp, err := e.client.Gateway.CreateForumCategory(c.Context, c.Args().Get(0), categoryRequest(c))
					return emit(e, resp, err)
				},
			},
			{
				Name:      "update",
				ArgsUsage: "<community-id> <category-id>",
				Flags:     categoryFlags,
				Action: func(c *cli.Context) error {
					if err := requireArgs(c, "community-id", "category-id"); err != nil {
						return err
					}
					resp, err := e.client.Gateway.UpdateForumCategory(c.Context, c.Args().Get(0), c.Args().Get(1), categoryRequest(c))
					return emit(e, resp, err)
				},
			},
			{
				Name:      "delete",
				ArgsUsage: "<community-id> <category-id>",
				Action: func(c *cli.Context) error {
					if err := requireArgs(c, "community-id", "category-id"); err != nil {
						return err
					}
					resp, err := e.client.Gateway.DeleteForumCategory(c.Context, c.Args().Get(0), c.Args().Get(1))
					return emit(e, resp, err)
				},
			},
		},
	}
}

func topicsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "topics",
		Usage: "read and write forum topics",
		Subcommands: []*cli.Command{
			{
				Name:      "list",
				ArgsUsage: "<community-id> <category-id>",
				Flags:     []cli.Flag{offsetFlag, limitFlag},
				Action: func(c *cli.Context) error {
					if err := requireArgs(c, "community-id", "category-id"); err != nil {
						return err
					}
					resp, err := e.client.Gateway.ListForumTopicsInCategory(c.Context, c.Args().Get(0), c.Args().Get(1), pageQuery(c))
					return emit(e, resp, err)
				},
			},
			{
				Name:      "latest",
				ArgsUsage: "<community-id>",
				Flags:     []cli.Flag{limitFlag},
				Action: func(c *cli.Context) error {
					if err := requireArgs(c, "community-id"); err != nil {
						return err
					}
					var q contract.LatestQuery
					if c.IsSet("limit") {
						q.Limit = contract.Int(c.Int("limit"))
					}
					resp, err := e.client.Gateway.ListLatestForumTopics(c.Context, c.Args().Get(0), q)
					return emit(e, resp, err)
				},
			},
			{
				Name:      "get",
				ArgsUsage: "<community-id> <topic-id>",
				Action: func(c *cli.Context) error {
					if err := requireArgs(c, "community-id", "topic-id"); err != nil {
						return err
					}
					resp, err := e.client.Gateway.GetForumTopic(c.Context, c.Args().Get(0), c.Args().Get(1))
					return emit(e, resp, err)
				},
			},
			{
				Name:      "create",
				ArgsUsage: "<community-id> <category-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "content"},
				},
				Action: func(c *cli.Context) error {
					if err := requireArgs(c, "community-id", "category-id"); err != nil {
						return err
					}
					resp, err := e.client.Gateway.CreateForumTopic(c.Context, c.Args().Get(0), c.Args().Get(1), contract.ForumTopicRequest{
						Title:   c.String("title"),
						Content: c.String("content"),
					})
					return emit(e, resp, err)
				},
			},
			{
				Name:      "delete",
				ArgsUsage: "<community-id> <topic-id>",
				Action: func(c *cli.Context) error {
					if err := requireArgs(c, "community-id", "topic-id"); err != nil {
						return err
					}
					resp, err := e.client.Gateway.DeleteForumTopic(c.Context, c.Args().Get(0), c.Args().Get(1))
					return emit(e, resp, err)
				},
			},
		},
	}
}
