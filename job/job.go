package job

import "time"

// Job is the central entity managed by the queue. It is stored as a JSON
// object inside either jobs.json (active set) or dlq.json (the dead
// letter queue), never both at once.
//
// Job values returned by the store and queue packages are snapshots:
// mutating fields on a returned *Job has no effect on persisted state.
// Transitions happen only through queue.Service.
type Job struct {
	Id         string `json:"id"`
	Command    string `json:"command"`
	State      State  `json:"state"`
	Attempts   uint32 `json:"attempts"`
	MaxRetries uint32 `json:"max_retries"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// NextRetryAt is nil when the job has no scheduled delay (it was just
	// enqueued, or just completed). While set and in the future, the job
	// is not eligible for claiming.
	NextRetryAt *time.Time `json:"next_retry_at,omitempty"`

	// ErrorMessage holds the last failure reason. It is cleared on success
	// and on requeue from the DLQ.
	ErrorMessage string `json:"error_message,omitempty"`
}

// Spec carries the caller-supplied fields of an enqueue request, before
// defaults from config and server-assigned fields (State, timestamps) are
// filled in.
type Spec struct {
	Id         string `json:"id"`
	Command    string `json:"command"`
	MaxRetries *int64 `json:"max_retries,omitempty"`
}

// Claimable reports whether the job may be claimed by a worker right now,
// per spec.md §4.2: state is Pending and NextRetryAt, if set, is not in
// the future.
func (j *Job) Claimable(now time.Time) bool {
	if j.State != Pending {
		return false
	}
	if j.NextRetryAt == nil {
		return true
	}
	return !j.NextRetryAt.After(now)
}

// Clone returns an independent deep copy of the job, so callers holding a
// pointer into a Store's in-memory snapshot cannot mutate it out from
// under later reads.
func (j *Job) Clone() *Job {
	cp := *j
	if j.NextRetryAt != nil {
		t := *j.NextRetryAt
		cp.NextRetryAt = &t
	}
	return &cp
}
