package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"
)

// Log is an embedded SQLite-backed event log rooted at a single file
// (ROOT/audit.db). It mirrors the teacher's sql package's bootstrap
// style: InitDB creates the table and its indexes idempotently inside a
// transaction.
type Log struct {
	db  *bun.DB
	log *slog.Logger
}

// Open opens (creating if absent) the audit database at path and
// ensures its schema exists.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Log, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("audit: open: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: init schema: %w", err)
	}
	return &Log{db: db, log: logger}, nil
}

func initSchema(ctx context.Context, db *bun.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.NewCreateTable().Model((*Event)(nil)).IfNotExists().Exec(ctx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	if _, err := tx.NewCreateIndex().Model((*Event)(nil)).
		Index("idx_events_job_at").Column("job_id", "at").IfNotExists().Exec(ctx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	return tx.Commit()
}

// Close closes the underlying database handle.
func (l *Log) Close() error {
	return l.db.Close()
}

// Record appends an event. Record is best-effort: callers in the queue
// package log and drop a Record error rather than failing
// the queue operation that triggered it — mirroring the teacher's
// CleanWorker.clean, which logs a Clean error instead of propagating it
// into the scheduling loop.
func (l *Log) Record(ctx context.Context, jobID, kind, detail string) error {
	_, err := l.db.NewInsert().Model(newEvent(jobID, kind, detail)).Exec(ctx)
	return err
}

// RecordBestEffort calls Record and, on failure, logs at warn rather than
// returning the error to the caller.
func (l *Log) RecordBestEffort(ctx context.Context, jobID, kind, detail string) {
	if l == nil {
		return
	}
	if err := l.Record(ctx, jobID, kind, detail); err != nil {
		l.log.Warn("audit record failed", "job_id", jobID, "kind", kind, "err", err)
	}
}

// History returns up to limit events for jobID, newest first. A limit of
// zero or less returns all recorded events.
func (l *Log) History(ctx context.Context, jobID string, limit int) ([]*Event, error) {
	var events []*Event
	q := l.db.NewSelect().Model(&events).Where("job_id = ?", jobID).Order("at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("audit: history: %w", err)
	}
	return events, nil
}
