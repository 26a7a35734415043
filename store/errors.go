package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Update, MoveToDLQ and RequeueFromDLQ when
	// the targeted job id is absent from the collection they expect it in.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicateID is returned by Add and RequeueFromDLQ when the id
	// already exists in the active set or the DLQ (ids are unique across
	// both, per spec.md invariant I1).
	ErrDuplicateID = errors.New("store: duplicate id")

	// ErrLockBusy names the case where another holder already owns a
	// job's lock. TryLock does not return it: it reports that case as
	// ok=false with a nil error, and ClaimNext moves on to the next
	// candidate without surfacing anything to the CLI caller.
	ErrLockBusy = errors.New("store: lock busy")

	// ErrIO marks a filesystem failure (read, write, rename, or lock).
	// Callers match it with errors.Is; the wrapped error carries the
	// underlying cause.
	ErrIO = errors.New("store: io error")
)

func ioErrorf(op string, cause error) error {
	return fmt.Errorf("store: %s: %w: %w", op, ErrIO, cause)
}
