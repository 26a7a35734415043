package queue

import (
	"context"
	"sort"

	"github.com/queuectl/queuectl/audit"
	"github.com/queuectl/queuectl/clock"
	"github.com/queuectl/queuectl/job"
	"github.com/queuectl/queuectl/scheduler"
	"github.com/queuectl/queuectl/store"
)

// Service is the queue state-machine layer: it enforces legal
// transitions and glues together store (durable state and per-job
// mutual exclusion) and scheduler (pure backoff/eligibility/retirement
// decisions).
type Service struct {
	store *store.Store
	clock clock.Clock
	audit *audit.Log // nil is valid: audit recording is entirely optional
}

// New creates a Service over st, using clk as the source of "now". auditLog
// may be nil, in which case history is not recorded.
func New(st *store.Store, clk clock.Clock, auditLog *audit.Log) *Service {
	return &Service{store: st, clock: clk, audit: auditLog}
}

// Filter narrows List to a subset of the active set.
type Filter struct {
	// State, if non-zero, restricts results to jobs in this state.
	State job.State

	// Failed, when true, restricts results to jobs that look like a
	// settled failure: Pending with a non-empty ErrorMessage. This
	// resolves the "failed filter" Open Question from spec.md §9 as
	// option (b): "failed" is not a persisted job.State (the teacher's
	// own job.Status has no Failed value either), only a filter alias.
	// State is ignored when Failed is true.
	Failed bool

	Limit int
}

// Stats summarizes job counts per state plus DLQ size.
type Stats struct {
	Pending    int
	Processing int
	Completed  int
	Dead       int
}

// Enqueue validates spec, fills in defaults from the stored config, and
// persists a new Pending job. It fails with a *ValidationError for a
// missing/empty id or command or a negative max_retries, or with
// ErrDuplicateID if the id already exists in the active set or the DLQ.
func (s *Service) Enqueue(ctx context.Context, spec job.Spec) (*job.Job, error) {
	if spec.Id == "" {
		return nil, validationErr("id", "must not be empty")
	}
	if spec.Command == "" {
		return nil, validationErr("command", "must not be empty")
	}
	cfg, err := s.store.LoadConfig()
	if err != nil {
		return nil, err
	}
	maxRetries := cfg.MaxRetries
	if spec.MaxRetries != nil {
		if *spec.MaxRetries < 0 {
			return nil, validationErr("max_retries", "must not be negative")
		}
		maxRetries = uint32(*spec.MaxRetries)
	}

	now := s.clock.Now()
	j := &job.Job{
		Id:         spec.Id,
		Command:    spec.Command,
		State:      job.Pending,
		Attempts:   0,
		MaxRetries: maxRetries,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Add(j); err != nil {
		return nil, err
	}
	s.audit.RecordBestEffort(ctx, j.Id, audit.KindEnqueued, j.Command)
	return j, nil
}

// ClaimNext returns a job now owned by the caller, with state Processing
// already persisted, and a lock handle the caller must release (directly,
// or by calling MarkSucceeded/MarkFailed, which release it for you). It
// returns (nil, nil, nil) if no job is currently claimable.
//
// Candidates are walked oldest-CreatedAt-first, tie-broken on Id, trying
// a non-blocking lock on each; a lock held elsewhere (reported by
// store.TryLock as ok=false) just advances to the next candidate. Once a
// lock is acquired, the job is re-read and re-checked for eligibility
// before the Processing transition is committed, closing the
// snapshot-to-lock TOCTOU window — the same principle the teacher's SQL
// Pull enforces with a single atomic UPDATE ... RETURNING statement,
// applied here as an explicit re-check because flat files have no
// equivalent atomic compare-and-swap.
func (s *Service) ClaimNext(ctx context.Context) (*job.Job, *store.Lock, error) {
	active, err := s.store.LoadActive()
	if err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	var candidates []*job.Job
	for _, j := range active {
		if scheduler.Eligible(j, now) {
			candidates = append(candidates, j)
		}
	}
	sort.SliceStable(candidates, func(i, k int) bool {
		if !candidates[i].CreatedAt.Equal(candidates[k].CreatedAt) {
			return candidates[i].CreatedAt.Before(candidates[k].CreatedAt)
		}
		return candidates[i].Id < candidates[k].Id
	})

	for _, candidate := range candidates {
		lock, ok, err := s.store.TryLock(candidate.Id)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			continue
		}

		fresh, err := s.reread(candidate.Id)
		if err != nil {
			lock.Release()
			return nil, nil, err
		}
		if fresh == nil || !scheduler.Eligible(fresh, now) {
			lock.Release()
			continue
		}

		fresh.State = job.Processing
		fresh.UpdatedAt = now
		if err := s.store.Update(fresh); err != nil {
			lock.Release()
			return nil, nil, err
		}
		s.audit.RecordBestEffort(ctx, fresh.Id, audit.KindClaimed, "")
		return fresh, lock, nil
	}
	return nil, nil, nil
}

func (s *Service) reread(id string) (*job.Job, error) {
	active, err := s.store.LoadActive()
	if err != nil {
		return nil, err
	}
	for _, j := range active {
		if j.Id == id {
			return j, nil
		}
	}
	return nil, nil
}

// Recover implements the startup recovery sweep from spec.md §5 and §8
// B4: it scans the active set for jobs left in Processing whose lock is
// currently free — the signature of a worker that crashed mid-attempt —
// and, under that lock, treats each one as if it had just failed:
// Attempts is incremented, ErrorMessage is set to "worker crashed", and
// scheduler.ShouldRetire decides whether it is rescheduled or moved to
// the DLQ. Recover returns the number of jobs it reclaimed.
func (s *Service) Recover(ctx context.Context) (int, error) {
	active, err := s.store.LoadActive()
	if err != nil {
		return 0, err
	}

	recovered := 0
	for _, candidate := range active {
		if candidate.State != job.Processing {
			continue
		}
		lock, ok, err := s.store.TryLock(candidate.Id)
		if err != nil {
			return recovered, err
		}
		if !ok {
			// Still held by a live worker; not abandoned.
			continue
		}

		fresh, err := s.reread(candidate.Id)
		if err != nil {
			lock.Release()
			return recovered, err
		}
		if fresh == nil || fresh.State != job.Processing {
			lock.Release()
			continue
		}

		if err := s.MarkFailed(ctx, fresh, lock, "worker crashed"); err != nil {
			return recovered, err
		}
		s.audit.RecordBestEffort(ctx, fresh.Id, audit.KindRecovered, "worker crashed")
		recovered++
	}
	return recovered, nil
}

// MarkSucceeded records a successful attempt: Attempts is incremented,
// State becomes Completed, NextRetryAt and ErrorMessage are cleared, and
// the job's lock is released regardless of whether the persist step
// succeeds.
func (s *Service) MarkSucceeded(ctx context.Context, j *job.Job, lock *store.Lock) error {
	defer lock.Release()

	j.Attempts++
	j.State = job.Completed
	j.NextRetryAt = nil
	j.ErrorMessage = ""
	j.UpdatedAt = s.clock.Now()

	if err := s.store.Update(j); err != nil {
		return err
	}
	s.audit.RecordBestEffort(ctx, j.Id, audit.KindSucceeded, "")
	return nil
}

// MarkFailed records a failed attempt: Attempts is incremented and
// ErrorMessage is set to errText. scheduler.ShouldRetire decides whether
// the job moves to the DLQ or is rescheduled with backoff. The job's
// lock is released regardless of outcome.
func (s *Service) MarkFailed(ctx context.Context, j *job.Job, lock *store.Lock, errText string) error {
	defer lock.Release()

	now := s.clock.Now()
	j.Attempts++
	j.ErrorMessage = errText
	j.UpdatedAt = now

	if scheduler.ShouldRetire(j.Attempts, j.MaxRetries) {
		j.State = job.Dead
		if err := s.store.MoveToDLQ(j); err != nil {
			return err
		}
		s.audit.RecordBestEffort(ctx, j.Id, audit.KindRetired, errText)
		return nil
	}

	cfg, err := s.store.LoadConfig()
	if err != nil {
		return err
	}
	backoff := scheduler.Backoff{
		MaxRetries:      j.MaxRetries,
		Base:            cfg.BackoffBase,
		MaxDelaySeconds: cfg.BackoffMaxDelay,
	}
	delay := backoff.NextRetryDelay(j.Attempts)
	nextRetry := now.Add(delay)
	j.State = job.Pending
	j.NextRetryAt = &nextRetry

	if err := s.store.Update(j); err != nil {
		return err
	}
	s.audit.RecordBestEffort(ctx, j.Id, audit.KindFailed, errText)
	return nil
}

// List returns a read-only snapshot of the active set, optionally
// restricted by Filter.
func (s *Service) List(filter Filter) ([]*job.Job, error) {
	active, err := s.store.LoadActive()
	if err != nil {
		return nil, err
	}
	var out []*job.Job
	for _, j := range active {
		if filter.Failed {
			if j.State != job.Pending || j.ErrorMessage == "" {
				continue
			}
		} else if filter.State != 0 && j.State != filter.State {
			continue
		}
		out = append(out, j)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

// Stats counts jobs per state across the active set and the DLQ.
func (s *Service) Stats() (Stats, error) {
	var st Stats
	active, err := s.store.LoadActive()
	if err != nil {
		return st, err
	}
	for _, j := range active {
		switch j.State {
		case job.Pending:
			st.Pending++
		case job.Processing:
			st.Processing++
		case job.Completed:
			st.Completed++
		}
	}
	dlq, err := s.store.LoadDLQ()
	if err != nil {
		return st, err
	}
	st.Dead = len(dlq)
	return st, nil
}

// DLQList returns a read-only snapshot of the dead letter queue, limited
// to limit entries when limit > 0.
func (s *Service) DLQList(limit int) ([]*job.Job, error) {
	dlq, err := s.store.LoadDLQ()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(dlq) > limit {
		dlq = dlq[:limit]
	}
	return dlq, nil
}

// DLQRequeue moves the job identified by id from the DLQ back into the
// active set as Pending with Attempts, NextRetryAt and ErrorMessage
// reset, per law L2. It fails with ErrNotFound if id is not in the DLQ.
func (s *Service) DLQRequeue(ctx context.Context, id string) (*job.Job, error) {
	revived, err := s.store.RequeueFromDLQ(id)
	if err != nil {
		return nil, err
	}
	s.audit.RecordBestEffort(ctx, id, audit.KindRequeued, "")
	return revived, nil
}

// History returns the recorded audit events for id, newest first. It
// returns an empty slice (not an error) if no audit log is configured.
func (s *Service) History(ctx context.Context, id string, limit int) ([]*audit.Event, error) {
	if s.audit == nil {
		return nil, nil
	}
	return s.audit.History(ctx, id, limit)
}
