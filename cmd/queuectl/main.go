package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"oss.nandlabs.io/golly/cli"

	"github.com/queuectl/queuectl/audit"
	"github.com/queuectl/queuectl/clock"
	"github.com/queuectl/queuectl/queue"
	"github.com/queuectl/queuectl/store"
)

// defaultRoot is spec.md §6's documented default; QUEUECTL_ROOT
// overrides it, per §6's "an environment variable ... MAY override it".
const defaultRoot = "./.queuectl"

func rootDir() string {
	if v := os.Getenv("QUEUECTL_ROOT"); v != "" {
		return v
	}
	return defaultRoot
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	root := rootDir()
	st, err := store.New(root)
	if err != nil {
		log.Error("store init failed", "root", root, "err", err)
		os.Exit(exitIO)
	}

	auditLog, err := audit.Open(context.Background(), filepath.Join(root, "audit.db"), log)
	if err != nil {
		log.Error("audit log init failed", "root", root, "err", err)
		os.Exit(exitIO)
	}
	defer auditLog.Close()

	app := &app{
		svc: queue.New(st, clock.System{}, auditLog),
		st:  st,
		log: log,
	}

	c := cli.NewCLI()
	c.AddVersion("0.1.0")
	c.AddCommand(app.enqueueCommand())
	c.AddCommand(app.workerCommand())
	c.AddCommand(app.statusCommand())
	c.AddCommand(app.listCommand())
	c.AddCommand(app.dlqCommand())
	c.AddCommand(app.configCommand())
	c.AddCommand(app.historyCommand())

	if err := c.Execute(); err != nil {
		os.Exit(exitFor(err))
	}
}
