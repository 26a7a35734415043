// Package queue implements the state-machine layer described in
// spec.md §4.3 and §2: Enqueue, ClaimNext, MarkSucceeded, MarkFailed,
// List, Stats, DLQList and DLQRequeue.
//
// The teacher (RomanQed-gqs) splits this role across four interfaces
// (Pusher, Puller, Observer, Cleaner) so storage backends can implement
// whichever subset they support. spec.md §2 describes a single "Queue
// service" component instead, so Service collapses that split into one
// type backed directly by package store and package scheduler — there is
// only ever one storage backend here (the filesystem), so the
// interface-segregation the teacher's split buys has no payoff in this
// design.
package queue
