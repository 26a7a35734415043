package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"oss.nandlabs.io/golly/cli"

	"github.com/queuectl/queuectl/worker"
)

// pollInterval and executionTimeout are spec.md §4.4's defaults: poll
// every second, allow up to five minutes per attempt. stopTimeout bounds
// how long `worker start` waits, on shutdown, for an in-flight attempt
// to finish before giving up and returning lifecycle.ErrStopTimeout;
// it is set equal to executionTimeout since that is the worst case for
// a single attempt already underway.
const (
	pollInterval     = time.Second
	executionTimeout = 300 * time.Second
	stopTimeout      = executionTimeout
)

func (a *app) workerCommand() *cli.Command {
	cmd := cli.NewCommand("worker", "Manage worker processes", "0.1.0", a.runWorkerUsage)
	start := cli.NewCommand("start", "Start worker goroutine(s) and supervise until signaled", "0.1.0", a.runWorkerStart)
	start.Flags = []*cli.Flag{
		{Name: "count", Usage: "number of workers to run (default 1)", Aliases: []string{"count"}, Default: "1"},
	}
	cmd.AddSubCommand(start)
	return cmd
}

func (a *app) runWorkerUsage(ctx *cli.Context) error {
	fmt.Println("usage: worker start [--count=N]")
	return nil
}

func (a *app) runWorkerStart(ctx *cli.Context) error {
	count := 1
	if countStr, ok := ctx.GetFlag("count"); ok && countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil || n < 1 {
			err := fmt.Errorf("invalid --count=%q: must be a positive integer", countStr)
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		count = n
	}

	sup := worker.NewSupervisor(count, a.svc, a.log, pollInterval, executionTimeout)
	if err := sup.Run(context.Background(), stopTimeout); err != nil {
		fmt.Fprintln(os.Stderr, "worker shutdown:", err)
		return err
	}
	return nil
}
