package worker

import "context"

// WorkerRepository loads workers together with their category and individual agreements.
// Agreements are returned in insertion order.
type WorkerRepository interface {
	GetByID(ctx context.Context, id string) (Worker, error)
	ListByIDs(ctx context.Context, ids []string) ([]Worker, error)
	ListActive(ctx context.Context) ([]Worker, error)
}
