package main

import (
	"fmt"
	"os"

	"oss.nandlabs.io/golly/cli"

	"github.com/queuectl/queuectl/job"
	"github.com/queuectl/queuectl/queue"
)

func (a *app) listCommand() *cli.Command {
	cmd := cli.NewCommand("list", "List the active set, optionally filtered", "0.1.0", a.runList)
	cmd.Flags = []*cli.Flag{
		{Name: "state", Usage: "pending|processing|completed|failed|dead", Aliases: []string{"state"}, Default: ""},
		{Name: "limit", Usage: "maximum number of jobs to print", Aliases: []string{"limit"}, Default: ""},
	}
	return cmd
}

func (a *app) runList(ctx *cli.Context) error {
	filter, err := parseListFilter(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	jobs, err := a.svc.List(filter)
	if err != nil {
		fmt.Fprintln(os.Stderr, "list failed:", err)
		return err
	}
	renderJobs(jobs)
	return nil
}

// parseListFilter resolves --state/--limit into a queue.Filter.
// "failed" is not a job.State (see queue.Filter.Failed's doc comment);
// every other recognized value round-trips through job.ParseState.
func parseListFilter(ctx *cli.Context) (queue.Filter, error) {
	var filter queue.Filter
	if stateStr, ok := ctx.GetFlag("state"); ok && stateStr != "" {
		if stateStr == "failed" {
			filter.Failed = true
		} else {
			st, err := job.ParseState(stateStr)
			if err != nil {
				return filter, fmt.Errorf("invalid --state=%q: %w", stateStr, err)
			}
			filter.State = st
		}
	}
	limit, err := parseLimit(ctx)
	if err != nil {
		return filter, err
	}
	filter.Limit = limit
	return filter, nil
}
