package holiday

import (
	"context"
	"time"
)

// Oracle answers whether a calendar day is a public holiday.
type Oracle interface {
	IsHoliday(ctx context.Context, day time.Time) (bool, error)
}
