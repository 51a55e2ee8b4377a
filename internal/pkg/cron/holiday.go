package cron

import (
	"context"
	"time"
)

// HolidayRefresher reloads the stored holiday calendar.
type HolidayRefresher interface {
	RefreshCurrent(ctx context.Context) error
}

// HolidayJobs keeps the in-memory holiday calendar in sync with the holidays table.
type HolidayJobs struct {
	calendar HolidayRefresher
	interval time.Duration
}

func NewHolidayJobs(calendar HolidayRefresher, interval time.Duration) *HolidayJobs {
	return &HolidayJobs{
		calendar: calendar,
		interval: interval,
	}
}

// RegisterJobs registers the calendar refresh.
func (j *HolidayJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(
		"refresh_holiday_calendar",
		j.interval,
		j.RefreshHolidayCalendar,
	)
}

// RefreshHolidayCalendar reloads the current and next year.
func (j *HolidayJobs) RefreshHolidayCalendar(ctx context.Context) error {
	return j.calendar.RefreshCurrent(ctx)
}
