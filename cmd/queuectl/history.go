package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"oss.nandlabs.io/golly/cli"
)

func (a *app) historyCommand() *cli.Command {
	cmd := cli.NewCommand("history", "Print recorded lifecycle events for a job: history <id>", "0.1.0", a.runHistory)
	cmd.Flags = []*cli.Flag{
		{Name: "limit", Usage: "maximum number of events to print", Aliases: []string{"limit"}, Default: ""},
	}
	return cmd
}

func (a *app) runHistory(ctx *cli.Context) error {
	args := positionalArgs(ctx)
	if len(args) != 1 {
		err := fmt.Errorf("usage: history <id>")
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	limit, err := parseLimit(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	events, err := a.svc.History(context.Background(), args[0], limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "history failed:", err)
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	defer tw.Flush()
	fmt.Fprintln(tw, "AT\tKIND\tDETAIL")
	for _, ev := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", ev.At.Format("2006-01-02T15:04:05Z07:00"), ev.Kind, ev.Detail)
	}
	return nil
}
