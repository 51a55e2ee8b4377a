package absence

import "context"

type CompensationService interface {
	Calculate(ctx context.Context, absenceID string) (CompensationResult, error)
}
