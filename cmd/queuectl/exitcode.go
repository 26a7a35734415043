package main

import (
	"errors"

	"github.com/queuectl/queuectl/queue"
	"github.com/queuectl/queuectl/store"
)

// Exit codes per spec.md §6: 0 on success, non-zero on
// validation/not-found/IO errors. The distinct non-zero values are an
// addition beyond the letter of the spec (which only requires
// non-zero), kept distinguishable for scripts that want to branch on
// the failure kind.
const (
	exitOK         = 0
	exitValidation = 1
	exitNotFound   = 2
	exitIO         = 3
)

func exitFor(err error) int {
	if err == nil {
		return exitOK
	}
	switch {
	case queue.IsValidation(err):
		return exitValidation
	case errors.Is(err, queue.ErrDuplicateID):
		return exitValidation
	case errors.Is(err, queue.ErrNotFound):
		return exitNotFound
	case errors.Is(err, store.ErrIO):
		return exitIO
	default:
		return exitValidation
	}
}
