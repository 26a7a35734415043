// Package worker implements the supervised poll loop described in
// spec.md §4.4: claim a job, run it through package runner, record the
// outcome through queue.Service, and repeat, until asked to stop.
//
// Worker's lifecycle (Start once, Stop waits for the in-flight attempt
// to finish or a timeout to expire) is grounded on the teacher's
// Worker/CleanWorker pair — lc_base.go's tryStart/tryStop guard and
// internal.TimerTask's ctx-or-ticker select loop — adapted here to a
// single-job-at-a-time poll rather than the teacher's
// pull-batch-then-dispatch-to-a-pool pipeline, since spec.md has no
// concept of concurrency within one worker: each Worker instance
// processes one job at a time, and concurrency is achieved by running
// several Worker instances (Supervisor, for `worker start --count N`).
package worker
