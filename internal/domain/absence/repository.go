package absence

import (
	"context"
	"time"
)

type AbsenceRepository interface {
	GetByID(ctx context.Context, id string) (Absence, error)
	// ListByWorkersOverlapping returns absences whose [start, effective end] window
	// intersects [from, to]. An empty statuses slice means every status.
	ListByWorkersOverlapping(ctx context.Context, workerIDs []string, from, to time.Time, statuses []Status) ([]Absence, error)
}

type AbsenceTypeRepository interface {
	GetByID(ctx context.Context, id string) (AbsenceType, error)
	ListByIDs(ctx context.Context, ids []string) ([]AbsenceType, error)
}
