package shift

import (
	"context"
	"time"
)

// ShiftRepository returns shifts ordered by (date, start_time). The List methods
// only return shifts whose status is in ActiveStatuses; from and to are inclusive days.
type ShiftRepository interface {
	GetByID(ctx context.Context, id string) (Shift, error)
	ListActiveByWorker(ctx context.Context, workerID string, from, to time.Time) ([]Shift, error)
	ListActiveByWorkers(ctx context.Context, workerIDs []string, from, to time.Time) ([]Shift, error)

	// UpdateAttentionIfVersion writes the attention flag only when the stored
	// row_version still equals expectedVersion. It reports whether a row was updated.
	UpdateAttentionIfVersion(ctx context.Context, id string, requiresAttention bool, note *string, expectedVersion int64) (bool, error)
}
