package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Event is one append-only record of a job lifecycle transition.
type Event struct {
	bun.BaseModel `bun:"table:events"`

	Id     uuid.UUID `bun:"id,pk,type:uuid"`
	JobId  string    `bun:"job_id,notnull"`
	Kind   string    `bun:"kind,notnull"`
	Detail string    `bun:"detail"`
	At     time.Time `bun:"at,notnull,default:current_timestamp"`
}

// Event kinds recorded by the queue package.
const (
	KindEnqueued  = "enqueued"
	KindClaimed   = "claimed"
	KindSucceeded = "succeeded"
	KindFailed    = "failed"
	KindRetired   = "retired"
	KindRequeued  = "requeued"
	KindRecovered = "recovered"
)

func newEvent(jobID, kind, detail string) *Event {
	return &Event{
		Id:     uuid.New(),
		JobId:  jobID,
		Kind:   kind,
		Detail: detail,
		At:     time.Now().UTC(),
	}
}
