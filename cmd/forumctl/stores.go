package main

import (
	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/communities-gateway/internal/store"
)

func discoverCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "discover",
		Usage: "load the community catalog and filter it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Usage: "case-insensitive match on name or description"},
		},
		Action: func(c *cli.Context) error {
			d := e.client.Discovery
			d.SetSearchTerm(c.String("search"))
			if err := d.FetchAll(c.Context); err != nil {
				return err
			}
			return e.print(d.State())
		},
	}
}

func mineCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "mine",
		Usage: "load your communities and optionally select one",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "select", Usage: "community id to select"},
		},
		Action: func(c *cli.Context) error {
			m := e.client.Membership
			if err := m.FetchMine(c.Context); err != nil {
				return err
			}
			if c.IsSet("select") {
				m.Select(c.String("select"))
			}

			out := struct {
				store.MembershipState
				Selected any `json:"selected"`
			}{MembershipState: m.State()}
			if sel, ok := m.Selected(); ok {
				out.Selected = sel
			}
			return e.print(out)
		},
	}
}

func syncCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "load the catalog and your communities concurrently",
		Action: func(c *cli.Context) error {
			err := e.client.Sync(c.Context)
			if perr := e.print(struct {
				Discovery  store.DiscoveryState  `json:"discovery"`
				Membership store.MembershipState `json:"membership"`
			}{e.client.Discovery.State(), e.client.Membership.State()}); perr != nil {
				return perr
			}
			return err
		},
	}
}
