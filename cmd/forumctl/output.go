package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/communities-gateway/internal/dispatch"
	"github.com/heartmarshall/communities-gateway/internal/domain"
)

type refusal struct {
	Status int                 `json:"status"`
	Detail string              `json:"detail,omitempty"`
	Errors []domain.FieldError `json:"errors,omitempty"`
}

func (e *env) print(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// emit prints the decoded body of a successful response. A refused request
// prints the error body and exits with status 1.
func emit[T any](e *env, resp *dispatch.Response[T], err error) error {
	if err != nil {
		return err
	}
	if !resp.OK() {
		body, perr := resp.ErrorBody()
		if perr != nil {
			e.log.Debug("unparsed error body", "error", perr.Error())
		}
		if err := e.print(refusal{Status: resp.StatusCode(), Detail: body.Detail, Errors: body.Issues}); err != nil {
			return err
		}
		return cli.Exit(resp.Err().Error(), 1)
	}

	v, err := resp.Data()
	if err != nil {
		return err
	}
	if _, empty := any(v).(dispatch.NoContent); empty {
		return e.print(map[string]int{"status": resp.StatusCode()})
	}
	return e.print(v)
}

// requireArgs checks the number of positional arguments.
func requireArgs(c *cli.Context, names ...string) error {
	if c.NArg() != len(names) {
		return cli.Exit(fmt.Sprintf("usage: %s %s", c.Command.FullName(), argList(names)), 2)
	}
	return nil
}

func argList(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " "
		}
		out += "<" + n + ">"
	}
	return out
}
