package main

import (
	"context"
	"fmt"
	"os"

	"oss.nandlabs.io/golly/cli"
)

func (a *app) dlqCommand() *cli.Command {
	cmd := cli.NewCommand("dlq", "Inspect and requeue dead-lettered jobs", "0.1.0", a.runDLQUsage)
	list := cli.NewCommand("list", "List dead-lettered jobs", "0.1.0", a.runDLQList)
	list.Flags = []*cli.Flag{
		{Name: "limit", Usage: "maximum number of jobs to print", Aliases: []string{"limit"}, Default: ""},
	}
	retry := cli.NewCommand("retry", "Requeue a dead-lettered job: dlq retry <id>", "0.1.0", a.runDLQRetry)
	cmd.AddSubCommand(list)
	cmd.AddSubCommand(retry)
	return cmd
}

func (a *app) runDLQUsage(ctx *cli.Context) error {
	fmt.Println("usage: dlq list [--limit=N] | dlq retry <id>")
	return nil
}

func (a *app) runDLQList(ctx *cli.Context) error {
	limit, err := parseLimit(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	jobs, err := a.svc.DLQList(limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dlq list failed:", err)
		return err
	}
	renderJobs(jobs)
	return nil
}

func (a *app) runDLQRetry(ctx *cli.Context) error {
	args := positionalArgs(ctx)
	if len(args) != 1 {
		err := fmt.Errorf("usage: dlq retry <id>")
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	j, err := a.svc.DLQRequeue(context.Background(), args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "dlq retry failed:", err)
		return err
	}
	fmt.Printf("requeued %s\n", j.Id)
	return nil
}
