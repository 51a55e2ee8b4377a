package worker

import "errors"

var (
	ErrWorkerNotFound   = errors.New("worker not found")
	ErrCategoryNotFound = errors.New("category not found")
)
