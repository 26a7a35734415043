package main

import (
	"fmt"
	"os"

	"oss.nandlabs.io/golly/cli"
)

func (a *app) statusCommand() *cli.Command {
	return cli.NewCommand("status", "Print job counts per state", "0.1.0", a.runStatus)
}

func (a *app) runStatus(ctx *cli.Context) error {
	stats, err := a.svc.Stats()
	if err != nil {
		fmt.Fprintln(os.Stderr, "status failed:", err)
		return err
	}
	fmt.Printf("pending:    %d\n", stats.Pending)
	fmt.Printf("processing: %d\n", stats.Processing)
	fmt.Printf("completed:  %d\n", stats.Completed)
	fmt.Printf("dead:       %d\n", stats.Dead)
	return nil
}
