// Package config defines the single configuration record persisted at
// ROOT/config.json (spec.md §3), loaded lazily by store with defaults
// when the file is absent.
//
// Config is a plain struct with JSON tags, following the teacher's
// BackoffConfig/WorkerConfig convention (plain fields, a DefaultConfig-style
// constructor) rather than the generic key/value Attributes/Properties
// abstraction the wider retrieval pack offers (oss.nandlabs.io/golly's
// config package): that abstraction targets heterogeneous,
// user-extensible property sets loaded from arbitrary text formats, while
// spec.md fixes this record to exactly three named, typed fields
// persisted as JSON — a narrower contract a generic properties store
// would only complicate.
package config
