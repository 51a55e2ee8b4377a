package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	// ListBetween returns national holidays plus the regional ones of region, inclusive of both days.
	ListBetween(ctx context.Context, from, to time.Time, region string) ([]Holiday, error)
}
