// Command queuectl is the CLI surface spec.md §6 describes: enqueue,
// worker start, status, list, dlq list/retry, config show/set, and the
// supplemental history command backed by the audit package.
//
// queuectl holds no business logic of its own — every command is a
// thin adapter from parsed arguments to a queue.Service call, per
// SPEC_FULL.md's "external collaborator" framing of this package.
package main

import (
	"log/slog"

	"github.com/queuectl/queuectl/queue"
	"github.com/queuectl/queuectl/store"
)

// app bundles the collaborators every command needs. It is built once
// in main and closed over by each command's Action.
//
// st is used directly (bypassing queue.Service) only by the config
// commands: config.json is not part of the job state machine, so
// Service deliberately does not wrap it beyond the config it reads
// internally for defaults.
type app struct {
	svc *queue.Service
	st  *store.Store
	log *slog.Logger
}
