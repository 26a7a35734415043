package main

import (
	"fmt"
	"os"

	"oss.nandlabs.io/golly/cli"
)

func (a *app) configCommand() *cli.Command {
	cmd := cli.NewCommand("config", "Show or update queue configuration", "0.1.0", a.runConfigUsage)
	show := cli.NewCommand("show", "Print the current configuration", "0.1.0", a.runConfigShow)
	set := cli.NewCommand("set", "config set <key> <value>, key in {max-retries, backoff-base, backoff-max-delay}", "0.1.0", a.runConfigSet)
	cmd.AddSubCommand(show)
	cmd.AddSubCommand(set)
	return cmd
}

func (a *app) runConfigUsage(ctx *cli.Context) error {
	fmt.Println("usage: config show | config set <key> <value>")
	return nil
}

func (a *app) runConfigShow(ctx *cli.Context) error {
	cfg, err := a.st.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config show failed:", err)
		return err
	}
	fmt.Printf("max-retries:       %d\n", cfg.MaxRetries)
	fmt.Printf("backoff-base:      %v\n", cfg.BackoffBase)
	fmt.Printf("backoff-max-delay: %v\n", cfg.BackoffMaxDelay)
	return nil
}

func (a *app) runConfigSet(ctx *cli.Context) error {
	args := positionalArgs(ctx)
	if len(args) != 2 {
		err := fmt.Errorf("usage: config set <key> <value>")
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	cfg, err := a.st.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config set failed:", err)
		return err
	}
	if err := cfg.Set(args[0], args[1]); err != nil {
		fmt.Fprintln(os.Stderr, "config set failed:", err)
		return err
	}
	if err := a.st.SaveConfig(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "config set failed:", err)
		return err
	}
	fmt.Printf("%s = %s\n", args[0], args[1])
	return nil
}
