package store

import (
	"path/filepath"

	"oss.nandlabs.io/golly/fsutils"

	"github.com/queuectl/queuectl/config"
	"github.com/queuectl/queuectl/job"
)

// Store is the durable persistence layer over a ROOT directory. ROOT is
// passed in explicitly rather than read from a global or an environment
// variable, per the Design Notes' "Global state" re-architecture point.
type Store struct {
	root       string
	jobsPath   string
	dlqPath    string
	configPath string
	locksDir   string
	rootLock   string
}

// New returns a Store rooted at root, creating ROOT and its locks/
// subdirectory if they do not already exist. New is idempotent and safe
// to call once per process even when other processes share the same
// ROOT.
func New(root string) (*Store, error) {
	s := &Store{
		root:       root,
		jobsPath:   filepath.Join(root, "jobs.json"),
		dlqPath:    filepath.Join(root, "dlq.json"),
		configPath: filepath.Join(root, "config.json"),
		locksDir:   filepath.Join(root, "locks"),
		rootLock:   filepath.Join(root, "locks", ".root.lock"),
	}
	if !fsutils.DirExists(root) {
		if err := ensureDir(root); err != nil {
			return nil, err
		}
	}
	if !fsutils.DirExists(s.locksDir) {
		if err := ensureDir(s.locksDir); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Root returns the directory this Store is rooted at.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) lockPath(id string) string {
	return filepath.Join(s.locksDir, id+".lock")
}

// LoadActive reads the active set (jobs.json), returning an empty slice
// if the file does not exist yet.
func (s *Store) LoadActive() ([]*job.Job, error) {
	var jobs []*job.Job
	if err := readOrDefault(s.jobsPath, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// SaveActive atomically overwrites jobs.json with jobs.
func (s *Store) SaveActive(jobs []*job.Job) error {
	if jobs == nil {
		jobs = []*job.Job{}
	}
	return writeAtomic(s.jobsPath, jobs)
}

// LoadDLQ reads the dead letter queue (dlq.json), returning an empty
// slice if the file does not exist yet.
func (s *Store) LoadDLQ() ([]*job.Job, error) {
	var jobs []*job.Job
	if err := readOrDefault(s.dlqPath, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// SaveDLQ atomically overwrites dlq.json with jobs.
func (s *Store) SaveDLQ(jobs []*job.Job) error {
	if jobs == nil {
		jobs = []*job.Job{}
	}
	return writeAtomic(s.dlqPath, jobs)
}

// LoadConfig reads config.json, returning config.Default() if the file
// does not exist yet.
func (s *Store) LoadConfig() (*config.Config, error) {
	cfg := config.Default()
	if err := readOrDefault(s.configPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig atomically overwrites config.json with cfg.
func (s *Store) SaveConfig(cfg *config.Config) error {
	return writeAtomic(s.configPath, cfg)
}

func findByID(jobs []*job.Job, id string) (int, *job.Job) {
	for i, j := range jobs {
		if j.Id == id {
			return i, j
		}
	}
	return -1, nil
}

// Add appends a new job to the active set, failing with ErrDuplicateID if
// the id already exists in either the active set or the DLQ (per
// invariant I1). Add takes the root lock for the duration of its
// read-modify-write, serializing it against MoveToDLQ and
// RequeueFromDLQ — the other structural mutations that touch collection
// membership rather than a single job's fields.
func (s *Store) Add(j *job.Job) error {
	lock, err := lockRoot(s.rootLock)
	if err != nil {
		return err
	}
	defer lock.Release()

	active, err := s.LoadActive()
	if err != nil {
		return err
	}
	if i, _ := findByID(active, j.Id); i >= 0 {
		return ErrDuplicateID
	}
	dlq, err := s.LoadDLQ()
	if err != nil {
		return err
	}
	if i, _ := findByID(dlq, j.Id); i >= 0 {
		return ErrDuplicateID
	}

	active = append(active, j)
	return s.SaveActive(active)
}

// Update replaces the active-set job matching j.Id with j, failing with
// ErrNotFound if no such job exists. Per spec.md §4.1, callers must hold
// the job's lock (via TryLock) before calling Update; Update itself does
// not take the root lock, so concurrent Updates to two different job ids
// race at the file level exactly as the spec's "scoped per-job, not
// per-collection" guarantee describes.
func (s *Store) Update(j *job.Job) error {
	active, err := s.LoadActive()
	if err != nil {
		return err
	}
	i, _ := findByID(active, j.Id)
	if i < 0 {
		return ErrNotFound
	}
	active[i] = j
	return s.SaveActive(active)
}

// MoveToDLQ removes j from the active set and appends it to the DLQ in a
// single logical, root-locked operation, per spec.md §4.1. The caller is
// responsible for having already set j.State to job.Dead before calling
// MoveToDLQ.
func (s *Store) MoveToDLQ(j *job.Job) error {
	lock, err := lockRoot(s.rootLock)
	if err != nil {
		return err
	}
	defer lock.Release()

	active, err := s.LoadActive()
	if err != nil {
		return err
	}
	i, _ := findByID(active, j.Id)
	if i < 0 {
		return ErrNotFound
	}
	active = append(active[:i], active[i+1:]...)

	dlq, err := s.LoadDLQ()
	if err != nil {
		return err
	}
	dlq = append(dlq, j)

	if err := s.SaveActive(active); err != nil {
		return err
	}
	return s.SaveDLQ(dlq)
}

// RequeueFromDLQ removes the job identified by id from the DLQ and
// reinserts it into the active set as job.Pending with Attempts, NextRetryAt
// and ErrorMessage reset, per spec.md §4.1 and law L2. CreatedAt is
// preserved, so the job's age (and therefore its FIFO position under
// claim_next's ordering) survives the round trip.
func (s *Store) RequeueFromDLQ(id string) (*job.Job, error) {
	lock, err := lockRoot(s.rootLock)
	if err != nil {
		return nil, err
	}
	defer lock.Release()

	dlq, err := s.LoadDLQ()
	if err != nil {
		return nil, err
	}
	i, found := findByID(dlq, id)
	if i < 0 {
		return nil, ErrNotFound
	}
	dlq = append(dlq[:i], dlq[i+1:]...)

	revived := found.Clone()
	revived.State = job.Pending
	revived.Attempts = 0
	revived.NextRetryAt = nil
	revived.ErrorMessage = ""

	active, err := s.LoadActive()
	if err != nil {
		return nil, err
	}
	if k, _ := findByID(active, id); k >= 0 {
		return nil, ErrDuplicateID
	}
	active = append(active, revived)

	if err := s.SaveDLQ(dlq); err != nil {
		return nil, err
	}
	if err := s.SaveActive(active); err != nil {
		return nil, err
	}
	return revived, nil
}

// TryLock attempts to acquire the exclusive, non-blocking lock for job
// id, creating its lock file on first use. It returns ok=false (never an
// error) if the lock is already held, so claim_next can move on to the
// next candidate per spec.md §4.1/§5.
func (s *Store) TryLock(id string) (lock *Lock, ok bool, err error) {
	return tryLock(s.lockPath(id))
}
