package scheduler

import (
	"math"
	"time"

	"github.com/queuectl/queuectl/job"
)

// Backoff holds the parameters that govern retry delay and retirement,
// mirroring config.Config's tunables without depending on the config
// package (config.Config is built from these same three fields).
type Backoff struct {
	MaxRetries      uint32
	Base            float64
	MaxDelaySeconds float64
}

// NextRetryDelay computes the delay before a job's next retry attempt,
// per spec.md §4.2:
//
//	delay_seconds = min( base ^ (attempts - 1), max_delay )
//
// attempts is the job's Attempts count immediately after the failed
// attempt that triggered this computation, so attempts is always >= 1
// here; the exponent attempts-1 makes the first failure's delay
// base^0 = 1 second when base = 2.
//
// Unlike the teacher's backoffCounter.next, this is deliberately
// unjittered: spec.md property P5 requires the delay to be exactly
// reproducible from attempts, base and max_delay, which a
// RandomizationFactor term (as the teacher applies) would violate.
func (b Backoff) NextRetryDelay(attempts uint32) time.Duration {
	exp := math.Pow(b.Base, float64(attempts-1))
	if exp > b.MaxDelaySeconds {
		exp = b.MaxDelaySeconds
	}
	return time.Duration(exp * float64(time.Second))
}

// ShouldRetire reports whether a job whose Attempts just reached
// attempts (after a failed run) has exhausted its retry budget and must
// move to the DLQ rather than being rescheduled. Per spec.md §4.2 the
// threshold is inclusive on attempts: with maxRetries = 1, the job
// retires on its first failure, at which point attempts = 1.
func ShouldRetire(attempts, maxRetries uint32) bool {
	return attempts >= maxRetries
}

// Eligible reports whether j may be claimed at instant now: it must be
// Pending, and its NextRetryAt, if set, must not be in the future. This
// mirrors the WHERE clause the teacher's SQL Puller.Pull applies
// (next_run_at <= now AND status = Pending [OR an expired lock]); the
// lock-expiry half of that clause has no analogue here because store's
// per-job flock is released by the OS on process exit rather than
// expiring on a timer, so Eligible only ever needs to consider
// NextRetryAt.
func Eligible(j *job.Job, now time.Time) bool {
	return j.Claimable(now)
}
