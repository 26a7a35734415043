// Package job defines the job entity managed by the queue: its fields,
// its lifecycle state, and the validated spec a caller submits to enqueue
// one.
//
// A Job is a plain snapshot of storage state. It is produced by store and
// queue operations and returned to callers for inspection; mutating a
// returned Job does not change the underlying queue state. Transitions must
// go through the queue package.
package job
