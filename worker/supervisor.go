package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/queuectl/queuectl/queue"
)

// Supervisor runs a fixed-size pool of Workers against the same
// queue.Service, for `worker start --count N`. Every Worker shares the
// store's locks, so at most one of them will ever claim any given job.
type Supervisor struct {
	workers []*Worker
	log     *slog.Logger
}

// NewSupervisor creates count independent Worker instances.
func NewSupervisor(count int, q *queue.Service, log *slog.Logger, pollInterval, execTimeout time.Duration) *Supervisor {
	workers := make([]*Worker, count)
	for i := range workers {
		id := fmt.Sprintf("worker-%d-%s", i, uuid.NewString()[:8])
		workers[i] = New(id, q, log, pollInterval, execTimeout)
	}
	return &Supervisor{workers: workers, log: log}
}

// Run starts every worker, installs SIGTERM/SIGINT handlers that set the
// stopping flag described in spec.md §4.4, and blocks until a signal
// arrives or ctx is canceled by the caller. It then stops every worker,
// allowing up to stopTimeout each for its in-flight attempt to finish.
func (s *Supervisor) Run(ctx context.Context, stopTimeout time.Duration) error {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, os.Interrupt)
	defer stop()

	for _, w := range s.workers {
		if err := w.Start(sigCtx); err != nil {
			return fmt.Errorf("worker: start: %w", err)
		}
	}
	s.log.Info("workers started", "count", len(s.workers))

	<-sigCtx.Done()
	s.log.Info("shutdown requested, stopping workers")

	var errs error
	for _, w := range s.workers {
		if err := w.Stop(stopTimeout); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}
