// Package audit is a supplemental, not-in-spec enrichment: an embedded,
// queryable event log recording every transition a job goes through
// (enqueued, claimed, succeeded, failed, retired, requeued, recovered).
//
// It exists purely for the operator-facing `queuectl history <id>`
// command. The authoritative state for every invariant and property in
// spec.md §8 remains the JSON files in package store; audit never
// participates in a state transition's correctness and a failure to
// record an event never fails the originating queue operation.
//
// audit reuses the teacher's (RomanQed-gqs) bun/SQLite storage technique
// — the one part of the teacher's stack that does not fit package store,
// since spec.md §6 mandates flat JSON files there — repurposed to a
// genuinely additive concern: a queryable history a flat, rewritten-whole
// JSON array is a poor fit for, but an indexed SQL table suits exactly
// the way the teacher's sql.Observer suits read-heavy inspection queries.
package audit
