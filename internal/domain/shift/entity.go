package shift

import "time"

type Shift struct {
	ID                string
	WorkerID          string
	CenterID          string
	Date              time.Time
	StartTime         string // "HH:MM"
	EndTime           string // "HH:MM", earlier than StartTime when the shift crosses midnight
	Status            Status
	Origin            Origin
	RequiresAttention bool
	AttentionNote     *string
	RowVersion        int64
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined fields
	CenterName *string
}

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusExcluded   Status = "excluded"
)

// ActiveStatuses are the statuses that count towards worked hours.
var ActiveStatuses = []Status{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}

func (s Status) IsActive() bool {
	for _, active := range ActiveStatuses {
		if s == active {
			return true
		}
	}
	return false
}

type Origin string

const (
	OriginGenerated Origin = "generated"
	OriginManual    Origin = "manual"
)

// Day returns the shift date as a UTC midnight.
func (s Shift) Day() time.Time {
	return time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), 0, 0, 0, 0, time.UTC)
}
