package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/queuectl/queuectl/internal/lifecycle"
	"github.com/queuectl/queuectl/job"
	"github.com/queuectl/queuectl/queue"
	"github.com/queuectl/queuectl/runner"
	"github.com/queuectl/queuectl/store"
)

// Worker runs spec.md §4.4's poll loop: claim a job, execute it,
// record the outcome, repeat. One Worker handles one job at a time;
// Supervisor runs several for concurrency.
//
// Worker has the same strict lifecycle as the teacher's Worker: Start
// may only be called once, and Stop waits for the in-flight attempt (if
// any) to finish, or for its timeout to expire, whichever comes first.
type Worker struct {
	lifecycle.Base

	id    string
	queue *queue.Service
	log   *slog.Logger

	pollInterval time.Duration
	execTimeout  time.Duration

	cancel   context.CancelFunc
	loopDone lifecycle.Done
}

// New creates a Worker identified by id (used only for log correlation)
// over q, polling every pollInterval and allowing execTimeout per
// attempt.
func New(id string, q *queue.Service, log *slog.Logger, pollInterval, execTimeout time.Duration) *Worker {
	return &Worker{
		id:           id,
		queue:        q,
		log:          log,
		pollInterval: pollInterval,
		execTimeout:  execTimeout,
	}
}

// Start runs the recovery sweep once, then begins the poll loop in the
// background. It returns lifecycle.ErrDoubleStarted if already running.
//
// ctx governs claiming and polling only: once a job is claimed, it runs
// to completion even if ctx is later canceled, per spec.md §4.4 ("finish
// the current attempt — do not abort it — then exit").
func (w *Worker) Start(ctx context.Context) error {
	if err := w.TryStart(); err != nil {
		return err
	}
	if n, err := w.queue.Recover(ctx); err != nil {
		w.log.Error("recovery sweep failed", "worker", w.id, "err", err)
	} else if n > 0 {
		w.log.Info("recovered crashed jobs", "worker", w.id, "count", n)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.loopDone = make(lifecycle.Done)
	go w.loop(loopCtx)
	return nil
}

// Stop requests the poll loop exit and waits up to timeout for the
// current attempt, if any, to finish. It returns lifecycle.ErrStopTimeout
// if the worker is still shutting down when timeout elapses, and
// lifecycle.ErrDoubleStopped if the worker was never started or was
// already stopped.
func (w *Worker) Stop(timeout time.Duration) error {
	return w.TryStop(timeout, func() lifecycle.Done {
		w.cancel()
		return w.loopDone
	})
}

func (w *Worker) loop(ctx context.Context) {
	defer close(w.loopDone)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		j, lock, err := w.queue.ClaimNext(ctx)
		if err != nil {
			w.log.Error("claim failed", "worker", w.id, "err", err)
			w.sleep(ctx)
			continue
		}
		if j == nil {
			w.sleep(ctx)
			continue
		}
		w.handle(j, lock)
	}
}

func (w *Worker) sleep(ctx context.Context) {
	timer := time.NewTimer(w.pollInterval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// handle runs a claimed job to completion and records its outcome. It
// runs against context.Background(), deliberately detached from the
// poll loop's ctx, so that a shutdown request never aborts an attempt
// already in flight.
//
// A panic escaping runner.Run (or the queue bookkeeping that follows it)
// is recovered here so the job's lock is released on every path,
// including this one — the "finally-style guarantee" spec.md §4.4
// requires beyond what MarkSucceeded/MarkFailed's own deferred release
// already covers for the non-panicking case.
func (w *Worker) handle(j *job.Job, lock *store.Lock) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("panic while handling job", "worker", w.id, "id", j.Id, "panic", r)
			lock.Release()
		}
	}()

	ctx := context.Background()
	runErr := runner.Run(ctx, j.Command, w.execTimeout)
	if runErr == nil {
		if err := w.queue.MarkSucceeded(ctx, j, lock); err != nil {
			w.log.Error("mark succeeded failed", "worker", w.id, "id", j.Id, "err", err)
		}
		return
	}
	if err := w.queue.MarkFailed(ctx, j, lock, runErr.Error()); err != nil {
		w.log.Error("mark failed failed", "worker", w.id, "id", j.Id, "err", err)
	}
}
