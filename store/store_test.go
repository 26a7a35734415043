package store_test

import (
	"testing"
	"time"

	"github.com/queuectl/queuectl/job"
	"github.com/queuectl/queuectl/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func newJob(id string) *job.Job {
	now := time.Now().UTC()
	return &job.Job{
		Id:        id,
		Command:   "true",
		State:     job.Pending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestLoadActiveEmptyWhenAbsent(t *testing.T) {
	st := newTestStore(t)
	jobs, err := st.LoadActive()
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected empty active set, got %d jobs", len(jobs))
	}
}

func TestLoadConfigDefaultWhenAbsent(t *testing.T) {
	st := newTestStore(t)
	cfg, err := st.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxRetries != 3 {
		t.Fatalf("expected default config, got max_retries=%d", cfg.MaxRetries)
	}
}

func TestSaveActiveRoundTrips(t *testing.T) {
	st := newTestStore(t)
	jobs := []*job.Job{newJob("a"), newJob("b")}
	if err := st.SaveActive(jobs); err != nil {
		t.Fatal(err)
	}
	got, err := st.LoadActive()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Id != "a" || got[1].Id != "b" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestAddRejectsDuplicateInActive(t *testing.T) {
	st := newTestStore(t)
	if err := st.Add(newJob("a")); err != nil {
		t.Fatal(err)
	}
	if err := st.Add(newJob("a")); err != store.ErrDuplicateID {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestAddRejectsDuplicateAcrossDLQ(t *testing.T) {
	st := newTestStore(t)
	dead := newJob("a")
	dead.State = job.Dead
	if err := st.SaveDLQ([]*job.Job{dead}); err != nil {
		t.Fatal(err)
	}
	if err := st.Add(newJob("a")); err != store.ErrDuplicateID {
		t.Fatalf("expected ErrDuplicateID for an id already dead-lettered, got %v", err)
	}
}

func TestUpdateRejectsMissingID(t *testing.T) {
	st := newTestStore(t)
	if err := st.Update(newJob("missing")); err != store.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateReplacesJob(t *testing.T) {
	st := newTestStore(t)
	j := newJob("a")
	if err := st.Add(j); err != nil {
		t.Fatal(err)
	}
	j.State = job.Processing
	if err := st.Update(j); err != nil {
		t.Fatal(err)
	}
	got, err := st.LoadActive()
	if err != nil {
		t.Fatal(err)
	}
	if got[0].State != job.Processing {
		t.Fatalf("expected Processing, got %v", got[0].State)
	}
}

func TestMoveToDLQTransfersJob(t *testing.T) {
	st := newTestStore(t)
	j := newJob("a")
	if err := st.Add(j); err != nil {
		t.Fatal(err)
	}
	j.State = job.Dead
	if err := st.MoveToDLQ(j); err != nil {
		t.Fatal(err)
	}

	active, err := st.LoadActive()
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Fatalf("expected active set empty after move, got %d", len(active))
	}

	dlq, err := st.LoadDLQ()
	if err != nil {
		t.Fatal(err)
	}
	if len(dlq) != 1 || dlq[0].Id != "a" {
		t.Fatalf("expected job a in dlq, got %+v", dlq)
	}
}

func TestMoveToDLQRejectsMissingID(t *testing.T) {
	st := newTestStore(t)
	if err := st.MoveToDLQ(newJob("missing")); err != store.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRequeueFromDLQResetsFields(t *testing.T) {
	st := newTestStore(t)
	created := time.Now().UTC().Add(-time.Hour)
	dead := newJob("a")
	dead.CreatedAt = created
	dead.State = job.Dead
	dead.Attempts = 2
	dead.MaxRetries = 2
	dead.ErrorMessage = "boom"
	future := time.Now().UTC().Add(time.Minute)
	dead.NextRetryAt = &future

	if err := st.SaveDLQ([]*job.Job{dead}); err != nil {
		t.Fatal(err)
	}

	revived, err := st.RequeueFromDLQ("a")
	if err != nil {
		t.Fatal(err)
	}
	if revived.State != job.Pending {
		t.Fatalf("expected Pending, got %v", revived.State)
	}
	if revived.Attempts != 0 {
		t.Fatalf("expected Attempts reset to 0, got %d", revived.Attempts)
	}
	if revived.NextRetryAt != nil {
		t.Fatal("expected NextRetryAt cleared")
	}
	if revived.ErrorMessage != "" {
		t.Fatal("expected ErrorMessage cleared")
	}
	if revived.MaxRetries != 2 {
		t.Fatalf("expected MaxRetries preserved, got %d", revived.MaxRetries)
	}
	if !revived.CreatedAt.Equal(created) {
		t.Fatalf("expected CreatedAt preserved, got %v", revived.CreatedAt)
	}

	dlq, err := st.LoadDLQ()
	if err != nil {
		t.Fatal(err)
	}
	if len(dlq) != 0 {
		t.Fatalf("expected dlq empty after requeue, got %d", len(dlq))
	}
}

func TestRequeueFromDLQRejectsMissingID(t *testing.T) {
	st := newTestStore(t)
	if _, err := st.RequeueFromDLQ("missing"); err != store.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTryLockExclusive(t *testing.T) {
	st := newTestStore(t)
	lock1, ok, err := st.TryLock("a")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected first lock acquisition to succeed")
	}

	_, ok2, err := st.TryLock("a")
	if err != nil {
		t.Fatal(err)
	}
	if ok2 {
		t.Fatal("expected second concurrent lock attempt to fail")
	}

	if err := lock1.Release(); err != nil {
		t.Fatal(err)
	}

	lock2, ok3, err := st.TryLock("a")
	if err != nil {
		t.Fatal(err)
	}
	if !ok3 {
		t.Fatal("expected lock to be acquirable again after release")
	}
	lock2.Release()
}

func TestTryLockIndependentPerID(t *testing.T) {
	st := newTestStore(t)
	lockA, okA, err := st.TryLock("a")
	if err != nil {
		t.Fatal(err)
	}
	if !okA {
		t.Fatal("expected lock a to be acquired")
	}
	defer lockA.Release()

	lockB, okB, err := st.TryLock("b")
	if err != nil {
		t.Fatal(err)
	}
	if !okB {
		t.Fatal("expected lock b to be acquired independently of lock a")
	}
	lockB.Release()
}
