// Package store implements the durable, crash-safe persistence layer
// described in spec.md §4.1: the active set (jobs.json), the dead letter
// queue (dlq.json), the configuration record (config.json), and one
// advisory lock file per job that has ever been claimed
// (locks/<job-id>.lock).
//
// Store replaces the teacher's (RomanQed-gqs) bun/SQL-backed
// implementation of the same Pusher/Puller/Observer/Cleaner role with a
// flat-file one, because spec.md §6 fixes the on-disk contract to plain
// JSON files rather than a relational schema. The interface-level shape
// survives: constructors that take the storage handle (here, a root
// directory instead of a *bun.DB), idempotent bootstrap (New creates
// ROOT and locks/ the way the teacher's InitDB creates tables and
// indexes), and atomic, re-validated state transitions.
//
// Writers use the temp-file-then-rename protocol spec.md §4.1 mandates:
// rename is the durability boundary, so a reader never observes a torn
// file. Per-job mutations (Update) are gated by the caller holding that
// job's lock, but — per spec.md's explicit statement that this guarantee
// is scoped per-job, not per-collection — Update itself does not take
// the root lock; only the structural operations that can corrupt the
// collection across disjoint IDs (Add, MoveToDLQ, RequeueFromDLQ) do.
package store
