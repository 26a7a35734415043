// Package runner implements the external process execution collaborator
// spec.md §1 treats as opaque: "run this command, give me exit status and
// error text". It has no analogue in the teacher, whose MessageHandler is
// a user-supplied Go function rather than a shell command — this package
// is new, built directly against spec.md §4.4's contract (exit code 0 is
// success; non-zero exit, timeout, or spawn failure are all
// ExecutionFailure/ExecutionTimeout with a captured error_text).
//
// No third-party process-execution library appears anywhere in the
// retrieval pack for this concern, so runner is built on os/exec, which
// is the idiomatic and sufficient tool for "run a shell command with a
// deadline and capture its outcome".
package runner
