package holiday

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/holiday"
	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/es"
)

const dateLayout = "2006-01-02"

// Calendar answers holiday lookups from the Spanish national calendar plus the
// regional and company holidays stored in the database. Stored rows are cached per year.
type Calendar struct {
	national *cal.BusinessCalendar
	repo     holiday.HolidayRepository
	region   string

	mu    sync.RWMutex
	years map[int]map[string]string // year -> date -> name
}

// NewCalendar builds a calendar for region. A nil repo limits lookups to national holidays.
func NewCalendar(repo holiday.HolidayRepository, region string) *Calendar {
	national := cal.NewBusinessCalendar()
	national.AddHoliday(es.Holidays...)

	return &Calendar{
		national: national,
		repo:     repo,
		region:   region,
		years:    make(map[int]map[string]string),
	}
}

var _ holiday.Oracle = (*Calendar)(nil)

func (c *Calendar) IsHoliday(ctx context.Context, day time.Time) (bool, error) {
	d := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.UTC)
	if actual, _, _ := c.national.IsHoliday(d); actual {
		return true, nil
	}
	if c.repo == nil {
		return false, nil
	}

	stored, err := c.year(ctx, d.Year())
	if err != nil {
		return false, err
	}
	_, ok := stored[d.Format(dateLayout)]
	return ok, nil
}

// Refresh reloads the stored holidays of the given years, replacing any cached copy.
func (c *Calendar) Refresh(ctx context.Context, years ...int) error {
	if c.repo == nil {
		return nil
	}
	for _, y := range years {
		stored, err := c.load(ctx, y)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.years[y] = stored
		c.mu.Unlock()
		slog.Info("Holiday calendar refreshed", "year", y, "region", c.region, "stored_holidays", len(stored))
	}
	return nil
}

// RefreshCurrent reloads the current and next year. It is the body of the refresh cron job.
func (c *Calendar) RefreshCurrent(ctx context.Context) error {
	y := time.Now().UTC().Year()
	return c.Refresh(ctx, y, y+1)
}

func (c *Calendar) year(ctx context.Context, y int) (map[string]string, error) {
	c.mu.RLock()
	stored, ok := c.years[y]
	c.mu.RUnlock()
	if ok {
		return stored, nil
	}

	stored, err := c.load(ctx, y)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.years[y] = stored
	c.mu.Unlock()
	return stored, nil
}

func (c *Calendar) load(ctx context.Context, y int) (map[string]string, error) {
	from := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC)

	rows, err := c.repo.ListBetween(ctx, from, to, c.region)
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays for %d: %w", y, err)
	}

	stored := make(map[string]string, len(rows))
	for _, h := range rows {
		stored[h.Date.Format(dateLayout)] = h.Name
	}
	return stored, nil
}
