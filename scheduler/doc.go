// Package scheduler implements the pure, stateless decisions the queue
// makes about a job: how long to delay its next retry, whether it is
// eligible to run right now, and whether a failed attempt should be
// retried or retired to the dead letter queue.
//
// Nothing in this package touches storage or the clock's wall-time
// source directly; every function takes the instants it needs as
// arguments, mirroring the teacher's backoffCounter.next, which computes
// a delay from a retry count alone.
package scheduler
