package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"oss.nandlabs.io/golly/cli"

	"github.com/queuectl/queuectl/job"
)

func (a *app) enqueueCommand() *cli.Command {
	return cli.NewCommand("enqueue", `Enqueue a job: enqueue '{"id":"...","command":"...","max_retries":3}'`, "0.1.0", a.runEnqueue)
}

func (a *app) runEnqueue(ctx *cli.Context) error {
	args := positionalArgs(ctx)
	if len(args) != 1 {
		err := fmt.Errorf("usage: enqueue <json>")
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	var spec job.Spec
	if err := json.Unmarshal([]byte(args[0]), &spec); err != nil {
		err = fmt.Errorf("invalid job spec: %w", err)
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	j, err := a.svc.Enqueue(context.Background(), spec)
	if err != nil {
		fmt.Fprintln(os.Stderr, "enqueue failed:", err)
		return err
	}
	fmt.Printf("enqueued %s\n", j.Id)
	return nil
}
